// Package timer implements the Timer actor: the single session state
// machine that counts down a focus session, dispatches percentage-based
// check-ins, and persists session lifecycle through a domain.SessionRepository.
package timer

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/fluxhq/flux/internal/domain"
	"github.com/fluxhq/flux/internal/log"
	"github.com/fluxhq/flux/internal/mailbox"
	tracing "github.com/fluxhq/flux/internal/telemetry"
)

// defaultThresholds are the default check-in percentages; Config.Thresholds
// overrides them when non-empty.
var defaultThresholds = []int{25, 50, 75}

// Config configures a new Actor. Notifier and Tracker are required;
// Tray is optional (nil when the daemon runs headless).
type Config struct {
	Repo                domain.SessionRepository
	Notifier            NotifierPort
	Tracker             TrackerPort
	Tray                TrayPort
	Clock               Clock
	Thresholds          []int
	DefaultDuration     time.Duration
	DefaultMode         domain.Mode
	Shutdown            <-chan struct{}
	MailboxCapacity     int
	Tracer              trace.Tracer
}

// Actor runs the Timer state machine. Construct with New and drive with Run
// in its own goroutine; interact with it through the Handle returned by
// New.
type Actor struct {
	cfg  Config
	mbox *mailbox.Mailbox[Msg]

	session    *domain.Session
	total      time.Duration
	remaining  time.Duration
	lastTick   time.Time
	paused     bool
	dispatched [3]bool
	pending    <-chan CheckInReply
}

// New constructs a Timer actor and its Handle.
func New(cfg Config) (*Actor, Handle) {
	if len(cfg.Thresholds) == 0 {
		cfg.Thresholds = defaultThresholds
	}
	if cfg.Clock == nil {
		cfg.Clock = RealClock{}
	}
	if cfg.DefaultDuration == 0 {
		cfg.DefaultDuration = 50 * time.Minute
	}
	mbox := mailbox.New[Msg](cfg.MailboxCapacity)
	a := &Actor{cfg: cfg, mbox: mbox}
	return a, newHandle(mbox)
}

// Run drives the actor's select loop until ctx is cancelled or the shutdown
// channel fires. It performs a final flush of any active session (the same
// bookkeeping as Stop) before returning.
func (a *Actor) Run(ctx context.Context) {
	ticker := a.cfg.Clock.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case msg, ok := <-a.mbox.C():
			if !ok {
				a.flushOnShutdown()
				return
			}
			a.handle(ctx, msg)

		case now := <-ticker.C():
			_, end := tracing.StartTick(ctx, a.cfg.Tracer, "timer")
			a.tick(now)
			end(nil)

		case <-a.cfg.Shutdown:
			a.flushOnShutdown()
			return

		case <-ctx.Done():
			a.flushOnShutdown()
			return
		}
	}
}

func (a *Actor) flushOnShutdown() {
	if a.session != nil {
		a.completeSession(a.cfg.Clock.Now())
	}
}

func (a *Actor) handle(ctx context.Context, msg Msg) {
	msgType := fmt.Sprintf("%T", msg)
	handler := tracing.WrapActorHandle(a.cfg.Tracer, "timer", msgType, nil, func(context.Context) error {
		switch m := msg.(type) {
		case StartMsg:
			a.handleStart(m)
		case StopMsg:
			a.handleStop()
		case PauseMsg:
			a.handlePause()
		case ResumeMsg:
			a.handleResume()
		case GetStatusMsg:
			a.handleGetStatus(m)
		}
		return nil
	})
	_ = handler(ctx)
}

func (a *Actor) handleStart(m StartMsg) {
	if a.session != nil {
		log.Warn(log.CatTimer, "start ignored, session already active")
		return
	}

	duration := a.cfg.DefaultDuration
	if m.HasDuration {
		duration = time.Duration(m.DurationMinutes) * time.Minute
	}
	mode := a.cfg.DefaultMode
	if m.HasMode {
		mode = m.Mode
	}

	now := a.cfg.Clock.Now()
	session := domain.NewSession(mode, now)

	persisted, err := a.cfg.Repo.StartSession(context.Background(), mode, now)
	if err != nil {
		log.ErrorErr(log.CatTimer, "persist session start failed", err)
		a.cfg.Notifier.PersistenceError("start session")
		// continue in memory without a persisted id
	} else {
		session = persisted
	}

	a.session = &session
	a.total = duration
	a.remaining = duration
	a.lastTick = now
	a.paused = false
	a.dispatched = [3]bool{}
	a.pending = nil

	a.cfg.Notifier.SessionStart(mode)
	if id, ok := session.ID(); ok {
		a.cfg.Tracker.Started(id)
	}
	a.refreshTray(TrayActive)
}

func (a *Actor) handleStop() {
	if a.session == nil {
		log.Warn(log.CatTimer, "stop ignored, no active session")
		return
	}
	a.completeSession(a.cfg.Clock.Now())
}

func (a *Actor) handlePause() {
	if a.session == nil || a.paused {
		return
	}
	a.paused = true
	a.cfg.Notifier.SessionPaused()
	a.cfg.Tracker.Paused()
	a.refreshTray(TrayPaused)
}

func (a *Actor) handleResume() {
	if a.session == nil || !a.paused {
		return
	}
	a.paused = false
	a.lastTick = a.cfg.Clock.Now()
	a.cfg.Notifier.SessionResumed()
	a.cfg.Tracker.Resumed()
	a.refreshTray(TrayActive)
}

func (a *Actor) handleGetStatus(m GetStatusMsg) {
	status := Status{}
	if a.session != nil {
		status.Active = true
		status.RemainingSeconds = uint64(a.remaining.Seconds())
		status.HasMode = true
		status.Mode = a.session.Mode()
		status.Paused = a.paused
	}
	select {
	case m.Reply <- status:
	default:
	}
}

func (a *Actor) tick(now time.Time) {
	if a.session == nil {
		return
	}

	elapsed := now.Sub(a.lastTick)
	a.lastTick = now

	if !a.paused {
		if a.remaining <= elapsed {
			a.completeSession(now)
			return
		}
		a.remaining -= elapsed
	}

	a.refreshTray(a.trayStateFor())
	a.pollCheckIn()
	a.maybeDispatchCheckIn()
}

func (a *Actor) trayStateFor() TrayState {
	if a.paused {
		return TrayPaused
	}
	if a.pending != nil {
		return TrayCheckInPending
	}
	return TrayActive
}

func (a *Actor) pollCheckIn() {
	if a.pending == nil {
		return
	}
	select {
	case reply, ok := <-a.pending:
		if !ok {
			a.pending = nil
			return
		}
		a.pending = nil
		if reply == NotFocused {
			a.handlePause()
		}
	default:
	}
}

func (a *Actor) maybeDispatchCheckIn() {
	if a.pending != nil || a.total <= 0 {
		return
	}

	elapsedPercent := int((a.total - a.remaining).Seconds() / a.total.Seconds() * 100)

	lowest := -1
	for i, threshold := range a.cfg.Thresholds {
		if i >= len(a.dispatched) {
			break
		}
		if a.dispatched[i] {
			continue
		}
		if threshold <= elapsedPercent {
			lowest = i
			break
		}
	}
	if lowest < 0 {
		return
	}

	a.dispatched[lowest] = true
	if id, ok := a.session.ID(); ok {
		if err := a.cfg.Repo.IncrementCheckIn(context.Background(), id); err != nil {
			log.ErrorErr(log.CatTimer, "persist check-in failed", err, "session_id", id)
			a.cfg.Notifier.PersistenceError("increment check-in")
		}
	}
	*a.session = a.session.WithCheckInIncremented()

	a.refreshTray(TrayCheckInPending)
	a.pending = a.cfg.Notifier.CheckIn(a.cfg.Thresholds[lowest])
}

func (a *Actor) completeSession(now time.Time) {
	ended := a.session.End(now)
	if id, ok := ended.ID(); ok {
		if err := a.cfg.Repo.EndSession(context.Background(), ended); err != nil {
			log.ErrorErr(log.CatTimer, "persist session end failed", err, "session_id", id)
			a.cfg.Notifier.PersistenceError("end session")
		}
	}

	durationSeconds, _ := ended.DurationSeconds()
	a.cfg.Notifier.SessionEnded(float64(durationSeconds) / 60)
	a.cfg.Tracker.Ended()
	a.refreshTray(TrayInactive)

	a.session = nil
	a.pending = nil
	a.paused = false
}

func (a *Actor) refreshTray(state TrayState) {
	if a.cfg.Tray == nil {
		return
	}
	var mode domain.Mode
	hasMode := a.session != nil
	if hasMode {
		mode = a.session.Mode()
	}
	a.cfg.Tray.Update(state, a.remaining, mode, hasMode)
}
