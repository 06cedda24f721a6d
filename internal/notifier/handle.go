package notifier

import (
	"github.com/fluxhq/flux/internal/apptracker"
	"github.com/fluxhq/flux/internal/domain"
	"github.com/fluxhq/flux/internal/log"
	"github.com/fluxhq/flux/internal/mailbox"
	"github.com/fluxhq/flux/internal/timer"
)

// Handle is the entry point to a running Notifier actor. It implements
// timer.NotifierPort and apptracker.NotifierPort structurally, so neither
// of those packages imports this one.
type Handle struct {
	mbox *mailbox.Mailbox[Msg]
}

func newHandle(mbox *mailbox.Mailbox[Msg]) Handle {
	return Handle{mbox: mbox}
}

// SessionStart implements timer.NotifierPort.
func (h Handle) SessionStart(mode domain.Mode) { h.send(SessionStartMsg{Mode: mode}) }

// SessionEnded implements timer.NotifierPort.
func (h Handle) SessionEnded(durationMinutes float64) {
	h.send(SessionEndedMsg{DurationMinutes: durationMinutes})
}

// SessionPaused implements timer.NotifierPort.
func (h Handle) SessionPaused() { h.send(SessionPausedMsg{}) }

// SessionResumed implements timer.NotifierPort.
func (h Handle) SessionResumed() { h.send(SessionResumedMsg{}) }

// CheckIn implements timer.NotifierPort. The returned channel is nil if the
// mailbox rejected the message, which the Timer's poll treats the same as
// "no reply yet."
func (h Handle) CheckIn(percent int) <-chan timer.CheckInReply {
	reply := make(chan timer.CheckInReply, 1)
	if err := h.send(CheckInMsg{Percent: percent, Reply: reply}); err != nil {
		close(reply)
	}
	return reply
}

// PersistenceError implements timer.NotifierPort.
func (h Handle) PersistenceError(operation string) { h.send(PersistenceErrorMsg{Operation: operation}) }

// DistractionAlert implements apptracker.NotifierPort.
func (h Handle) DistractionAlert(app string) { h.send(DistractionAlertMsg{App: app}) }

// FrictionReminder implements apptracker.NotifierPort.
func (h Handle) FrictionReminder(app string) <-chan apptracker.FrictionReply {
	reply := make(chan apptracker.FrictionReply, 1)
	if err := h.send(FrictionReminderMsg{App: app, Reply: reply}); err != nil {
		close(reply)
	}
	return reply
}

// FrictionEscalated implements apptracker.NotifierPort.
func (h Handle) FrictionEscalated(app string) <-chan apptracker.FrictionReply {
	reply := make(chan apptracker.FrictionReply, 1)
	if err := h.send(FrictionEscalatedMsg{App: app, Reply: reply}); err != nil {
		close(reply)
	}
	return reply
}

// Alert sends a free-form non-interactive notification, used outside the
// Timer/App Tracker ports (e.g. daemon startup warnings).
func (h Handle) Alert(message string) { h.send(GenericAlertMsg{Message: message}) }

// WeeklyDigest is the Digest Scheduler's entry point.
func (h Handle) WeeklyDigest(totalMinutes float64, sessionCount int, link *ExternalLink) {
	h.send(WeeklyDigestMsg{TotalMinutes: totalMinutes, SessionCount: sessionCount, Link: link})
}

func (h Handle) send(msg Msg) error {
	if err := h.mbox.TrySend(msg); err != nil {
		log.Warn(log.CatNotifier, "dropped message, mailbox unavailable", "error", err.Error())
		return err
	}
	return nil
}
