package timer

import (
	"time"

	"github.com/fluxhq/flux/internal/domain"
)

// CheckInReply is the user's answer to a dispatched check-in prompt.
type CheckInReply int

const (
	Focused CheckInReply = iota
	NotFocused
)

// TrayState mirrors the tray projection's state enum; defined here (rather
// than imported from internal/tray) so the Timer has no compile-time
// dependency on the tray package, matching the spec's leaves-first
// dependency order (Notifier -> Tray -> App Tracker -> Timer -> IPC ->
// Digest): the Timer is upstream of Tray, not the other way around.
type TrayState int

const (
	TrayInactive TrayState = iota
	TrayActive
	TrayPaused
	TrayCheckInPending
)

// NotifierPort is the subset of the Notifier's inbound surface the Timer
// depends on. notifier.Handle implements this structurally.
type NotifierPort interface {
	SessionStart(mode domain.Mode)
	SessionEnded(durationMinutes float64)
	SessionPaused()
	SessionResumed()
	CheckIn(percent int) <-chan CheckInReply
	PersistenceError(operation string)
}

// TrackerPort is the subset of the App Tracker's inbound surface the Timer
// depends on. apptracker.Handle implements this structurally.
type TrackerPort interface {
	Started(sessionID int64)
	Ended()
	Paused()
	Resumed()
}

// TrayPort is the subset of the tray projection's inbound surface the Timer
// depends on. tray.Box implements this structurally.
type TrayPort interface {
	Update(state TrayState, remaining time.Duration, mode domain.Mode, hasMode bool)
}
