package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fluxhq/flux/internal/wire"
)

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check whether the daemon is reachable, spawning it if needed",
	RunE:  runPing,
}

func init() {
	rootCmd.AddCommand(pingCmd)
}

func runPing(_ *cobra.Command, _ []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	resp, err := client.Call(context.Background(), wire.Request{Kind: wire.RequestPing})
	if err != nil {
		return err
	}
	if resp.Kind != wire.ResponsePong {
		return fmt.Errorf("unexpected response: %v", resp)
	}
	fmt.Println("pong")
	return nil
}
