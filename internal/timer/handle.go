package timer

import (
	"context"
	"errors"
	"fmt"

	"github.com/fluxhq/flux/internal/domain"
	"github.com/fluxhq/flux/internal/mailbox"
)

// ErrTransport is returned by Handle methods when the Timer's mailbox
// cannot accept a message (actor shut down or backlog saturated). Per the
// spec, a transport error on the Timer handle becomes an Error{"impossible
// to ..."} response at the IPC layer.
var ErrTransport = errors.New("timer: impossible to deliver message")

// Handle is the external-facing entry point to a running Timer actor. The
// IPC Server and Tray State hold a Handle rather than the actor itself.
type Handle struct {
	mbox *mailbox.Mailbox[Msg]
}

func newHandle(mbox *mailbox.Mailbox[Msg]) Handle {
	return Handle{mbox: mbox}
}

// Start requests a new session.
func (h Handle) Start(hasDuration bool, durationMinutes uint64, hasMode bool, mode domain.Mode) error {
	return h.send(StartMsg{HasDuration: hasDuration, DurationMinutes: durationMinutes, HasMode: hasMode, Mode: mode})
}

// Stop ends the active session.
func (h Handle) Stop() error {
	return h.send(StopMsg{})
}

// Pause pauses the active session.
func (h Handle) Pause() error {
	return h.send(PauseMsg{})
}

// Resume resumes a paused session.
func (h Handle) Resume() error {
	return h.send(ResumeMsg{})
}

// GetStatus synchronously retrieves the Timer's current status.
func (h Handle) GetStatus(ctx context.Context) (Status, error) {
	reply := make(chan Status, 1)
	if err := h.send(GetStatusMsg{Reply: reply}); err != nil {
		return Status{}, err
	}
	select {
	case status := <-reply:
		return status, nil
	case <-ctx.Done():
		return Status{}, fmt.Errorf("%w: %v", ErrTransport, ctx.Err())
	}
}

func (h Handle) send(msg Msg) error {
	if err := h.mbox.TrySend(msg); err != nil {
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}
	return nil
}
