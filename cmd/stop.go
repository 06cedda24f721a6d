package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fluxhq/flux/internal/wire"
)

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the current focus session",
	RunE:  runStop,
}

func init() {
	rootCmd.AddCommand(stopCmd)
}

func runStop(_ *cobra.Command, _ []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	resp, err := client.Call(context.Background(), wire.Request{Kind: wire.RequestStopSession})
	if err != nil {
		return err
	}
	if resp.Kind == wire.ResponseError {
		return fmt.Errorf("daemon: %s", resp.Message)
	}
	fmt.Println("session stopped")
	return nil
}
