package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fluxhq/flux/internal/wire"
)

var resumeCmd = &cobra.Command{
	Use:   "resume",
	Short: "Resume the paused focus session",
	RunE:  runResume,
}

func init() {
	rootCmd.AddCommand(resumeCmd)
}

func runResume(_ *cobra.Command, _ []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	resp, err := client.Call(context.Background(), wire.Request{Kind: wire.RequestResumeSession})
	if err != nil {
		return err
	}
	if resp.Kind == wire.ResponseError {
		return fmt.Errorf("daemon: %s", resp.Message)
	}
	fmt.Println("session resumed")
	return nil
}
