package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadState_MissingFileReturnsZeroValue(t *testing.T) {
	s, err := LoadState(filepath.Join(t.TempDir(), "state.toml"))
	require.NoError(t, err)
	require.Empty(t, s.ActiveProfile)
}

func TestSaveThenLoadState_RoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.toml")

	require.NoError(t, SaveState(path, State{ActiveProfile: "deep-work"}))

	loaded, err := LoadState(path)
	require.NoError(t, err)
	require.Equal(t, "deep-work", loaded.ActiveProfile)
}
