package apptracker

import (
	"github.com/fluxhq/flux/internal/log"
	"github.com/fluxhq/flux/internal/mailbox"
)

// Handle is the Timer's entry point to a running App Tracker actor. It
// implements timer.TrackerPort structurally (Started/Ended/Paused/Resumed),
// so internal/timer never imports internal/apptracker.
type Handle struct {
	mbox *mailbox.Mailbox[Msg]
}

func newHandle(mbox *mailbox.Mailbox[Msg]) Handle {
	return Handle{mbox: mbox}
}

// Started begins tracking for sessionID.
func (h Handle) Started(sessionID int64) { h.send(StartedMsg{SessionID: sessionID}) }

// Ended flushes and persists the session's tracked usage.
func (h Handle) Ended() { h.send(EndedMsg{}) }

// Paused persists the accumulated usage and clears per-app state.
func (h Handle) Paused() { h.send(PausedMsg{}) }

// Resumed unsets paused.
func (h Handle) Resumed() { h.send(ResumedMsg{}) }

// send is best-effort: a full or closed mailbox only ever means the tracker
// is shutting down or badly backlogged, and the Timer's port contract has
// no error return for this, so a transport failure here is logged rather
// than surfaced.
func (h Handle) send(msg Msg) {
	if err := h.mbox.TrySend(msg); err != nil {
		log.Warn(log.CatTracker, "dropped message, mailbox unavailable", "error", err.Error())
	}
}
