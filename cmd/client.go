package cmd

import (
	"fmt"

	"github.com/fluxhq/flux/internal/ipc"
	"github.com/fluxhq/flux/internal/paths"
)

// newClient builds an IPC client against the default socket path, wired to
// auto-spawn the daemon (via the currently running flux binary) when the
// socket is unreachable.
func newClient() (*ipc.Client, error) {
	socketPath, err := paths.SocketPath()
	if err != nil {
		return nil, fmt.Errorf("resolving socket path: %w", err)
	}
	return ipc.NewClient(socketPath, ipc.DefaultSpawn), nil
}
