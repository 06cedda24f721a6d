// Package ipc implements the IPC Server and Client: a length-prefixed
// binary request/response exchange over a local stream socket, dispatching
// to the Timer's handle.
package ipc

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"

	"go.opentelemetry.io/otel/trace"

	"github.com/fluxhq/flux/internal/domain"
	"github.com/fluxhq/flux/internal/log"
	"github.com/fluxhq/flux/internal/shutdown"
	tracing "github.com/fluxhq/flux/internal/telemetry"
	"github.com/fluxhq/flux/internal/timer"
	"github.com/fluxhq/flux/internal/wire"
)

// TimerPort is the subset of the Timer's handle the IPC Server dispatches
// requests to.
type TimerPort interface {
	Start(hasDuration bool, durationMinutes uint64, hasMode bool, mode domain.Mode) error
	Stop() error
	Pause() error
	Resume() error
	GetStatus(ctx context.Context) (timer.Status, error)
}

// Server binds the Flux control socket and serves one request/response
// exchange per connection.
type Server struct {
	socketPath string
	timer      TimerPort
	shutdown   *shutdown.Signal
	listener   net.Listener
	tracer     trace.Tracer
}

// NewServer constructs a Server bound to socketPath. shutdown is triggered
// when a Shutdown request is received.
func NewServer(socketPath string, timerHandle TimerPort, sig *shutdown.Signal) *Server {
	return &Server{socketPath: socketPath, timer: timerHandle, shutdown: sig}
}

// WithTracer sets the tracer used to span each dispatched request. Passing
// a nil tracer (the zero value) keeps dispatch a pass-through, matching the
// no-op tracer provider returned when tracing is disabled in config.
func (s *Server) WithTracer(tracer trace.Tracer) *Server {
	s.tracer = tracer
	return s
}

// Run removes any stale socket file, binds the listener, and accepts
// connections until ctx is cancelled or the shutdown signal fires. The
// socket file is unlinked before Run returns.
func (s *Server) Run(ctx context.Context) error {
	if err := removeStaleSocket(s.socketPath); err != nil {
		return fmt.Errorf("ipc: remove stale socket: %w", err)
	}

	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("ipc: listen %s: %w", s.socketPath, err)
	}
	s.listener = listener
	defer os.Remove(s.socketPath)

	go func() {
		select {
		case <-s.shutdown.C():
			_ = listener.Close()
		case <-ctx.Done():
			_ = listener.Close()
		}
	}()

	for {
		conn, err := listener.Accept()
		if err != nil {
			select {
			case <-s.shutdown.C():
				return nil
			case <-ctx.Done():
				return nil
			default:
				log.ErrorErr(log.CatIPC, "accept failed", err)
				return err
			}
		}
		go s.handleConn(ctx, conn)
	}
}

func removeStaleSocket(path string) error {
	if _, err := os.Stat(path); err == nil {
		return os.Remove(path)
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func (s *Server) handleConn(ctx context.Context, conn net.Conn) {
	defer conn.Close()

	req, err := wire.ReadRequest(conn)
	if err != nil {
		log.Warn(log.CatIPC, "read request failed", "error", err.Error())
		return
	}

	resp := s.dispatch(ctx, req)

	if err := wire.WriteResponse(conn, resp); err != nil {
		log.Warn(log.CatIPC, "write response failed", "error", err.Error())
	}
}

func (s *Server) dispatch(ctx context.Context, req wire.Request) wire.Response {
	var resp wire.Response
	handler := tracing.WrapActorHandle(s.tracer, "ipc", requestKindName(req.Kind), nil, func(ctx context.Context) error {
		resp = s.handleRequest(ctx, req)
		if resp.Kind == wire.ResponseError {
			return errors.New(resp.Message)
		}
		return nil
	})
	_ = handler(ctx)
	return resp
}

func requestKindName(kind wire.RequestKind) string {
	switch kind {
	case wire.RequestPing:
		return "Ping"
	case wire.RequestGetStatus:
		return "GetStatus"
	case wire.RequestStartSession:
		return "StartSession"
	case wire.RequestStopSession:
		return "StopSession"
	case wire.RequestPauseSession:
		return "PauseSession"
	case wire.RequestResumeSession:
		return "ResumeSession"
	case wire.RequestShutdown:
		return "Shutdown"
	default:
		return "Unknown"
	}
}

func (s *Server) handleRequest(ctx context.Context, req wire.Request) wire.Response {
	switch req.Kind {
	case wire.RequestPing:
		return wire.Pong()

	case wire.RequestGetStatus:
		status, err := s.timer.GetStatus(ctx)
		if err != nil {
			return wire.Err(fmt.Sprintf("impossible to get status: %v", err))
		}
		return wire.Response{
			Kind:             wire.ResponseSessionStatus,
			Active:           status.Active,
			RemainingSeconds: status.RemainingSeconds,
			HasMode:          status.HasMode,
			Mode:             status.Mode,
			Paused:           status.Paused,
		}

	case wire.RequestStartSession:
		mode := domain.ModeAiAssisted
		if req.HasMode {
			mode = req.Mode
		}
		durationMinutes := req.DurationMinutes
		hasDuration := req.HasDuration
		if !hasDuration {
			durationMinutes = 25
			hasDuration = true
		}
		if err := s.timer.Start(hasDuration, durationMinutes, true, mode); err != nil {
			return wire.Err(fmt.Sprintf("impossible to start session: %v", err))
		}
		return wire.Ok()

	case wire.RequestStopSession:
		if err := s.timer.Stop(); err != nil {
			return wire.Err(fmt.Sprintf("impossible to stop session: %v", err))
		}
		return wire.Ok()

	case wire.RequestPauseSession:
		if err := s.timer.Pause(); err != nil {
			return wire.Err(fmt.Sprintf("impossible to pause session: %v", err))
		}
		return wire.Ok()

	case wire.RequestResumeSession:
		if err := s.timer.Resume(); err != nil {
			return wire.Err(fmt.Sprintf("impossible to resume session: %v", err))
		}
		return wire.Ok()

	case wire.RequestShutdown:
		s.shutdown.Trigger()
		return wire.Ok()

	default:
		return wire.Err("impossible to handle unknown request")
	}
}
