// Package cmd implements Flux's command line surface: the daemon command
// that runs the actor fleet, and a set of thin client commands that talk to
// it over the IPC socket.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fluxhq/flux/internal/config"
	"github.com/fluxhq/flux/internal/log"
)

var (
	version   = "dev"
	cfgFile   string
	cfg       config.Config
	cfgPath   string
	debugFlag bool
)

var rootCmd = &cobra.Command{
	Use:     "flux",
	Short:   "A personal focus-session daemon",
	Long:    `Flux tracks focus sessions, samples foreground application usage, and checks in with you on a schedule you configure.`,
	Version: version,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ${XDG_CONFIG_HOME}/flux/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&debugFlag, "debug", "d", false,
		"enable debug logging (also: FLUX_DEBUG=1)")
}

func initConfig() {
	loaded, path, err := config.Load(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "flux: %v\n", err)
		os.Exit(1)
	}
	loaded, err = config.ResolveStoragePaths(loaded)
	if err != nil {
		fmt.Fprintf(os.Stderr, "flux: resolving storage paths: %v\n", err)
		os.Exit(1)
	}
	cfg = loaded
	cfgPath = path
}

func initDebugLogging(component string) func() {
	debug := os.Getenv("FLUX_DEBUG") != "" || debugFlag
	if !debug {
		return func() {}
	}
	logPath := os.Getenv("FLUX_LOG")
	if logPath == "" {
		logPath = component + ".log"
	}
	cleanup, err := log.Init(logPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "flux: initializing logging: %v\n", err)
		return func() {}
	}
	log.Info(log.CatConfig, "flux starting", "component", component, "version", version, "configPath", cfgPath)
	return cleanup
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags).
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
