package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/fluxhq/flux/internal/wire"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current session's state",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(_ *cobra.Command, _ []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	resp, err := client.Call(context.Background(), wire.Request{Kind: wire.RequestGetStatus})
	if err != nil {
		return err
	}
	if resp.Kind == wire.ResponseError {
		return fmt.Errorf("daemon: %s", resp.Message)
	}

	if !resp.Active {
		fmt.Println("no active session")
		return nil
	}

	mode := "ai-assisted"
	if resp.HasMode {
		mode = resp.Mode.String()
	}
	state := "running"
	if resp.Paused {
		state = "paused"
	}
	remaining := time.Duration(resp.RemainingSeconds) * time.Second
	fmt.Printf("%s, mode=%s, remaining=%s\n", state, mode, remaining.Round(time.Second))
	return nil
}
