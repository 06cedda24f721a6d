package ipc

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/exec"
	"time"

	"github.com/fluxhq/flux/internal/log"
	"github.com/fluxhq/flux/internal/wire"
)

// EndToEndTimeout bounds a full request/response round trip.
const EndToEndTimeout = 5 * time.Second

// ConnectTimeout bounds the initial dial.
const ConnectTimeout = 2 * time.Second

// ErrTransport is returned for connection failures the client could not
// recover from, including after the auto-spawn retry.
var ErrTransport = errors.New("ipc: impossible to reach daemon")

// SpawnFunc starts a detached daemon process. The CLI wires this to
// exec.Command against its own binary's "daemon" subcommand; DaemonPathEnv
// lets a test or packaging script override the binary location.
type SpawnFunc func() error

// DaemonPathEnv names the environment variable that overrides the daemon
// binary path used by DefaultSpawn.
const DaemonPathEnv = "FLUX_DAEMON_PATH"

// DefaultSpawn launches the daemon as a detached background process using
// the current executable (or FLUX_DAEMON_PATH, if set) with a "daemon"
// argument.
func DefaultSpawn() error {
	path := os.Getenv(DaemonPathEnv)
	if path == "" {
		self, err := os.Executable()
		if err != nil {
			return err
		}
		path = self
	}
	cmd := exec.Command(path, "daemon")
	cmd.Stdin = nil
	cmd.Stdout = nil
	cmd.Stderr = nil
	return cmd.Start()
}

// Client sends one request and reads one response per call, dialing
// socketPath fresh each time per the wire format's one-exchange-per-
// connection rule.
type Client struct {
	socketPath string
	spawn      SpawnFunc
}

// NewClient constructs a Client. spawn may be nil to disable auto-spawn, in
// which case a transport failure is returned without a retry.
func NewClient(socketPath string, spawn SpawnFunc) *Client {
	return &Client{socketPath: socketPath, spawn: spawn}
}

// Call sends req and returns the decoded response, auto-spawning the daemon
// and retrying once on connection refusal if spawn is configured.
func (c *Client) Call(ctx context.Context, req wire.Request) (wire.Response, error) {
	ctx, cancel := context.WithTimeout(ctx, EndToEndTimeout)
	defer cancel()

	resp, err := c.callOnce(ctx, req)
	if err == nil {
		return resp, nil
	}
	if c.spawn == nil {
		return wire.Response{}, fmt.Errorf("%w: %v", ErrTransport, err)
	}

	log.Info(log.CatIPC, "daemon unreachable, auto-spawning", "error", err.Error())
	if spawnErr := c.spawn(); spawnErr != nil {
		return wire.Response{}, fmt.Errorf("%w: spawn failed: %v", ErrTransport, spawnErr)
	}

	resp, err = c.retryAfterSpawn(ctx, req)
	if err != nil {
		return wire.Response{}, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	return resp, nil
}

// retryAfterSpawn makes the single retry that follows an auto-spawn, after a
// short fixed delay that gives the new daemon time to bind its socket.
func (c *Client) retryAfterSpawn(ctx context.Context, req wire.Request) (wire.Response, error) {
	const spawnRetryDelay = 500 * time.Millisecond
	select {
	case <-time.After(spawnRetryDelay):
	case <-ctx.Done():
		return wire.Response{}, ctx.Err()
	}
	return c.callOnce(ctx, req)
}

func (c *Client) callOnce(ctx context.Context, req wire.Request) (wire.Response, error) {
	dialer := net.Dialer{Timeout: ConnectTimeout}
	conn, err := dialer.DialContext(ctx, "unix", c.socketPath)
	if err != nil {
		return wire.Response{}, err
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	if err := wire.WriteRequest(conn, req); err != nil {
		return wire.Response{}, err
	}
	return wire.ReadResponse(conn)
}
