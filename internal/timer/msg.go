package timer

import "github.com/fluxhq/flux/internal/domain"

// Msg is the union of messages the Timer actor's mailbox carries.
type Msg interface{ isTimerMsg() }

// StartMsg requests a new session. HasDuration/HasMode false mean "use the
// configured default."
type StartMsg struct {
	HasDuration     bool
	DurationMinutes uint64
	HasMode         bool
	Mode            domain.Mode
}

// StopMsg ends the active session immediately.
type StopMsg struct{}

// PauseMsg pauses the active session.
type PauseMsg struct{}

// ResumeMsg resumes a paused session.
type ResumeMsg struct{}

// Status is GetStatusMsg's synchronous reply payload.
type Status struct {
	Active           bool
	RemainingSeconds uint64
	HasMode          bool
	Mode             domain.Mode
	Paused           bool
}

// GetStatusMsg requests the current status via a synchronous reply channel.
type GetStatusMsg struct {
	Reply chan Status
}

func (StartMsg) isTimerMsg()     {}
func (StopMsg) isTimerMsg()      {}
func (PauseMsg) isTimerMsg()     {}
func (ResumeMsg) isTimerMsg()    {}
func (GetStatusMsg) isTimerMsg() {}
