package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fluxhq/flux/internal/domain"
	"github.com/fluxhq/flux/internal/wire"
)

var (
	startDurationMinutes int
	startMode            string
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start a focus session",
	RunE:  runStart,
}

func init() {
	rootCmd.AddCommand(startCmd)
	startCmd.Flags().IntVar(&startDurationMinutes, "duration", 0,
		"planned session length in minutes (defaults to 25)")
	startCmd.Flags().StringVar(&startMode, "mode", "",
		"session mode: ai-assisted, review, architecture, or a custom label")
}

func runStart(_ *cobra.Command, _ []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	req := wire.Request{Kind: wire.RequestStartSession}
	if startDurationMinutes > 0 {
		req.HasDuration = true
		req.DurationMinutes = uint64(startDurationMinutes)
	}
	if startMode != "" {
		req.HasMode = true
		req.Mode = domain.ParseMode(startMode)
	}

	resp, err := client.Call(context.Background(), req)
	if err != nil {
		return err
	}
	if resp.Kind == wire.ResponseError {
		return fmt.Errorf("daemon: %s", resp.Message)
	}
	fmt.Println("session started")
	return nil
}
