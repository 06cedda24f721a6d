package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// State is the small set of values Flux persists across restarts outside
// config.toml: the user's last-selected mode profile. LoadState and
// SaveState read and write it; the CLI's --mode flag does not consult it.
type State struct {
	ActiveProfile string `toml:"active_profile"`
}

// LoadState reads state.toml at path. A missing file returns a zero-value
// State rather than an error, since the daemon's first run has none yet.
func LoadState(path string) (State, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return State{}, nil
	}
	if err != nil {
		return State{}, fmt.Errorf("config: read state %s: %w", path, err)
	}

	var s State
	if err := toml.Unmarshal(data, &s); err != nil {
		return State{}, fmt.Errorf("config: parse state %s: %w", path, err)
	}
	return s, nil
}

// SaveState writes s to state.toml at path, creating its parent directory
// if necessary.
func SaveState(path string, s State) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("config: create state dir: %w", err)
	}

	data, err := toml.Marshal(s)
	if err != nil {
		return fmt.Errorf("config: marshal state: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("config: write state: %w", err)
	}
	return os.Rename(tmp, path)
}
