package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/fluxhq/flux/internal/daemon"
	"github.com/fluxhq/flux/internal/log"
)

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Run the Flux daemon",
	Long: `Run Flux as a background daemon: tracks session state, samples
foreground application usage, and serves the control socket that the flux
CLI and tray talk to.`,
	RunE: runDaemon,
}

func init() {
	rootCmd.AddCommand(daemonCmd)
}

func runDaemon(_ *cobra.Command, _ []string) error {
	cleanup := initDebugLogging("flux-daemon")
	defer cleanup()

	d, err := daemon.New(cfg)
	if err != nil {
		return fmt.Errorf("building daemon: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		log.Info(log.CatDaemon, "received shutdown signal", "signal", sig.String())
		d.Shutdown()
	}()

	return d.Run(ctx)
}
