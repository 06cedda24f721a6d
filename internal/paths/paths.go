// Package paths resolves the filesystem and socket locations Flux uses for
// its config, database, traces, and IPC transport, following each
// platform's conventional locations rather than hardcoding a single layout.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
	"strconv"
)

const appDirName = "flux"

// ConfigDir returns the directory holding config.toml, state.toml, and
// suggestions.json: $XDG_CONFIG_HOME/flux on Unix (falling back to
// ~/.config/flux), or %APPDATA%\flux on Windows.
func ConfigDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, appDirName), nil
}

// DefaultDatabasePath returns the default SQLite database location,
// ${ConfigDir}/flux.db.
func DefaultDatabasePath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "flux.db"), nil
}

// DefaultConfigPath returns the default config.toml location.
func DefaultConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// DefaultStatePath returns the default state.toml location.
func DefaultStatePath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "state.toml"), nil
}

// DefaultSuggestionsPath returns the default suggestions.json location.
func DefaultSuggestionsPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "suggestions.json"), nil
}

// DefaultTracesFilePath returns the default path for trace file export,
// ${ConfigDir}/traces/traces.jsonl.
func DefaultTracesFilePath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "traces", "traces.jsonl"), nil
}

// SocketPath returns the local transport address the IPC server listens on
// and the client dials. On Unix it prefers $XDG_RUNTIME_DIR/flux.sock,
// falling back to /run/user/<uid>/flux.sock, then ${ConfigDir}/flux.sock if
// neither runtime directory exists; on Windows it returns
// %LOCALAPPDATA%\flux\flux.sock, using the user config directory in place of
// %LOCALAPPDATA% when that variable is unset.
func SocketPath() (string, error) {
	if runtime.GOOS == "windows" {
		base := os.Getenv("LOCALAPPDATA")
		if base == "" {
			var err error
			base, err = os.UserConfigDir()
			if err != nil {
				return "", err
			}
		}
		return filepath.Join(base, appDirName, "flux.sock"), nil
	}

	if dir := os.Getenv("XDG_RUNTIME_DIR"); dir != "" {
		return filepath.Join(dir, "flux.sock"), nil
	}

	runDir := filepath.Join("/run/user", strconv.Itoa(os.Getuid()))
	if info, err := os.Stat(runDir); err == nil && info.IsDir() {
		return filepath.Join(runDir, "flux.sock"), nil
	}

	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "flux.sock"), nil
}
