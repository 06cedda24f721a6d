package notifier

import (
	"github.com/fluxhq/flux/internal/apptracker"
	"github.com/fluxhq/flux/internal/domain"
	"github.com/fluxhq/flux/internal/timer"
)

// Msg is the union of messages the Notifier actor's mailbox carries.
type Msg interface{ isNotifierMsg() }

// SessionStartMsg announces a new session began.
type SessionStartMsg struct{ Mode domain.Mode }

// SessionEndedMsg announces a session ended, carrying its final duration.
type SessionEndedMsg struct{ DurationMinutes float64 }

// SessionPausedMsg announces a session was paused.
type SessionPausedMsg struct{}

// SessionResumedMsg announces a paused session resumed.
type SessionResumedMsg struct{}

// CheckInMsg asks whether the user is still focused. Reply is a one-shot
// channel the Timer polls without blocking.
type CheckInMsg struct {
	Percent int
	Reply   chan timer.CheckInReply
}

// PersistenceErrorMsg reports a storage failure the caller recovered from
// by continuing in memory.
type PersistenceErrorMsg struct{ Operation string }

// DistractionAlertMsg reports a distraction-app burst crossed its alert
// threshold.
type DistractionAlertMsg struct{ App string }

// FrictionReminderMsg is the first friction prompt within a burst. Reply is
// a one-shot channel the App Tracker polls without blocking.
type FrictionReminderMsg struct {
	App   string
	Reply chan apptracker.FrictionReply
}

// FrictionEscalatedMsg is a subsequent friction prompt within the same
// burst.
type FrictionEscalatedMsg struct {
	App   string
	Reply chan apptracker.FrictionReply
}

// GenericAlertMsg is a free-form, non-interactive notification.
type GenericAlertMsg struct{ Message string }

// WeeklyDigestMsg summarizes the trailing week's completed sessions.
type WeeklyDigestMsg struct {
	TotalMinutes float64
	SessionCount int
	Link         *ExternalLink
}

func (SessionStartMsg) isNotifierMsg()      {}
func (SessionEndedMsg) isNotifierMsg()      {}
func (SessionPausedMsg) isNotifierMsg()     {}
func (SessionResumedMsg) isNotifierMsg()    {}
func (CheckInMsg) isNotifierMsg()           {}
func (PersistenceErrorMsg) isNotifierMsg()  {}
func (DistractionAlertMsg) isNotifierMsg()  {}
func (FrictionReminderMsg) isNotifierMsg()  {}
func (FrictionEscalatedMsg) isNotifierMsg() {}
func (GenericAlertMsg) isNotifierMsg()      {}
func (WeeklyDigestMsg) isNotifierMsg()      {}
