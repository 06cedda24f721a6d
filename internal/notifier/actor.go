package notifier

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sourcegraph/conc/pool"
	"go.opentelemetry.io/otel/trace"

	"github.com/fluxhq/flux/internal/apptracker"
	"github.com/fluxhq/flux/internal/cachemanager"
	"github.com/fluxhq/flux/internal/log"
	"github.com/fluxhq/flux/internal/mailbox"
	tracing "github.com/fluxhq/flux/internal/telemetry"
	"github.com/fluxhq/flux/internal/timer"
)

// persistenceAlertSuppressionWindow bounds how often a repeat storage
// failure on the same operation re-notifies the user, so a flapping disk
// doesn't spam notifications once per failed write.
const persistenceAlertSuppressionWindow = 60 * time.Second

// Config configures a new Actor.
type Config struct {
	Renderer              Renderer
	CheckInTimeout        time.Duration
	FrictionPromptTimeout time.Duration
	MaxConcurrentDispatch int
	NotificationTitle     string
	MailboxCapacity       int
	Tracer                trace.Tracer
}

// Actor runs the Notifier state machine. Every message is dispatched onto a
// bounded worker pool so a slow or blocking render never stalls the
// mailbox's receive loop.
type Actor struct {
	cfg                Config
	mbox               *mailbox.Mailbox[Msg]
	pool               *pool.Pool
	persistenceAlerted cachemanager.CacheManager[string, bool]
}

// New constructs a Notifier actor and its Handle.
func New(cfg Config) (*Actor, Handle) {
	if cfg.Renderer == nil {
		cfg.Renderer = LogRenderer{}
	}
	if cfg.CheckInTimeout == 0 {
		cfg.CheckInTimeout = 120 * time.Second
	}
	if cfg.FrictionPromptTimeout == 0 {
		cfg.FrictionPromptTimeout = 60 * time.Second
	}
	if cfg.MaxConcurrentDispatch <= 0 {
		cfg.MaxConcurrentDispatch = 4
	}
	if cfg.NotificationTitle == "" {
		cfg.NotificationTitle = "Flux"
	}
	mbox := mailbox.New[Msg](cfg.MailboxCapacity)
	a := &Actor{
		cfg:  cfg,
		mbox: mbox,
		pool: pool.New().WithMaxGoroutines(cfg.MaxConcurrentDispatch),
		persistenceAlerted: cachemanager.NewInMemoryCacheManager[string, bool](
			"notifier-persistence-alerts", persistenceAlertSuppressionWindow, 5*time.Minute,
		),
	}
	return a, newHandle(mbox)
}

// Run drives the actor's select loop until ctx is cancelled or shutdown
// fires, then drains every in-flight dispatch before returning.
func (a *Actor) Run(ctx context.Context, shutdown <-chan struct{}) {
	defer a.pool.Wait()

	for {
		select {
		case msg, ok := <-a.mbox.C():
			if !ok {
				return
			}
			a.dispatch(ctx, msg)

		case <-shutdown:
			return

		case <-ctx.Done():
			return
		}
	}
}

func (a *Actor) dispatch(ctx context.Context, msg Msg) {
	dispatchID := uuid.NewString()
	msgType := fmt.Sprintf("%T", msg)
	log.Debug(log.CatNotifier, "dispatching", "dispatchID", dispatchID, "type", msgType)

	var body func(context.Context) error
	switch m := msg.(type) {
	case SessionStartMsg:
		body = func(context.Context) error {
			return a.cfg.Renderer.ShowInfo(a.cfg.NotificationTitle, fmt.Sprintf("Focus session started: %s", m.Mode.String()))
		}

	case SessionEndedMsg:
		body = func(context.Context) error {
			return a.cfg.Renderer.ShowInfo(a.cfg.NotificationTitle, fmt.Sprintf("Session ended after %.0f minutes", m.DurationMinutes))
		}

	case SessionPausedMsg:
		body = func(context.Context) error {
			return a.cfg.Renderer.ShowInfo(a.cfg.NotificationTitle, "Session paused")
		}

	case SessionResumedMsg:
		body = func(context.Context) error {
			return a.cfg.Renderer.ShowInfo(a.cfg.NotificationTitle, "Session resumed")
		}

	case CheckInMsg:
		body = func(ctx context.Context) error { a.handleCheckIn(ctx, m); return nil }

	case PersistenceErrorMsg:
		body = func(ctx context.Context) error { a.handlePersistenceError(ctx, m); return nil }

	case DistractionAlertMsg:
		body = func(context.Context) error {
			return a.cfg.Renderer.ShowInfo(a.cfg.NotificationTitle, fmt.Sprintf("Distraction detected: %s", m.App))
		}

	case FrictionReminderMsg:
		body = func(ctx context.Context) error { a.handleFriction(ctx, m.App, false, m.Reply); return nil }

	case FrictionEscalatedMsg:
		body = func(ctx context.Context) error { a.handleFriction(ctx, m.App, true, m.Reply); return nil }

	case GenericAlertMsg:
		body = func(context.Context) error {
			return a.cfg.Renderer.ShowInfo(a.cfg.NotificationTitle, m.Message)
		}

	case WeeklyDigestMsg:
		body = func(context.Context) error { a.handleWeeklyDigest(m); return nil }

	default:
		return
	}

	handler := tracing.WrapActorHandle(a.cfg.Tracer, "notifier", msgType, nil, body)
	a.pool.Go(func() { _ = handler(ctx) })
}

func (a *Actor) handlePersistenceError(ctx context.Context, m PersistenceErrorMsg) {
	if _, alreadyShown := a.persistenceAlerted.Get(ctx, m.Operation); alreadyShown {
		log.Debug(log.CatNotifier, "suppressing repeat persistence alert", "operation", m.Operation)
		return
	}
	a.persistenceAlerted.Set(ctx, m.Operation, true, persistenceAlertSuppressionWindow)
	_ = a.cfg.Renderer.ShowInfo(a.cfg.NotificationTitle, fmt.Sprintf("Storage error during %s, continuing in memory", m.Operation))
}

func (a *Actor) handleCheckIn(ctx context.Context, m CheckInMsg) {
	timeoutCtx, cancel := context.WithTimeout(ctx, a.cfg.CheckInTimeout)
	defer cancel()

	title := fmt.Sprintf("Still focused? (%d%% through your session)", m.Percent)
	answer, err := a.cfg.Renderer.AskCheckIn(timeoutCtx, title, m.Percent)
	if err != nil {
		log.Warn(log.CatNotifier, "check-in render failed, defaulting to focused", "error", err.Error())
		answer = FocusAnswerFocused
	}

	reply := timer.Focused
	if answer == FocusAnswerNotFocused {
		reply = timer.NotFocused
	}
	m.Reply <- reply
}

func (a *Actor) handleFriction(ctx context.Context, app string, escalated bool, replyCh chan apptracker.FrictionReply) {
	timeoutCtx, cancel := context.WithTimeout(ctx, a.cfg.FrictionPromptTimeout)
	defer cancel()

	answer, err := a.cfg.Renderer.AskFriction(timeoutCtx, app, escalated)
	if err != nil {
		log.Warn(log.CatNotifier, "friction render failed, defaulting to continue", "error", err.Error())
		answer = FrictionAnswerContinue
	}

	var reply apptracker.FrictionReply
	switch answer {
	case FrictionAnswerBackToWork:
		reply = apptracker.BackToWork
	case FrictionAnswerStopSession:
		reply = apptracker.StopSession
	default:
		reply = apptracker.Continue
	}
	replyCh <- reply
}

func (a *Actor) handleWeeklyDigest(m WeeklyDigestMsg) {
	body := fmt.Sprintf("%d sessions, %.0f minutes this week", m.SessionCount, m.TotalMinutes)
	if m.Link != nil {
		body += fmt.Sprintf(" (%s: %s)", m.Link.Label, m.Link.URL)
	}
	_ = a.cfg.Renderer.ShowInfo(fmt.Sprintf("%s weekly digest", a.cfg.NotificationTitle), body)
}
