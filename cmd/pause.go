package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fluxhq/flux/internal/wire"
)

var pauseCmd = &cobra.Command{
	Use:   "pause",
	Short: "Pause the current focus session",
	RunE:  runPause,
}

func init() {
	rootCmd.AddCommand(pauseCmd)
}

func runPause(_ *cobra.Command, _ []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	resp, err := client.Call(context.Background(), wire.Request{Kind: wire.RequestPauseSession})
	if err != nil {
		return err
	}
	if resp.Kind == wire.ResponseError {
		return fmt.Errorf("daemon: %s", resp.Message)
	}
	fmt.Println("session paused")
	return nil
}
