// Package apptracker implements the App Tracker actor: per-session
// foreground-window accounting, context-switch and short-burst metrics, and
// distraction/friction detection.
package apptracker

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/fluxhq/flux/internal/domain"
	"github.com/fluxhq/flux/internal/log"
	"github.com/fluxhq/flux/internal/mailbox"
	tracing "github.com/fluxhq/flux/internal/telemetry"
)

// Config configures a new Actor.
type Config struct {
	AppUsage    domain.AppUsageRepository
	Metrics     domain.MetricsRepository
	Suggestions domain.SuggestionStore
	Notifier    NotifierPort
	Detector    Detector
	Clock       Clock

	SampleInterval       time.Duration
	ShortBurstThreshold  time.Duration
	DistractionApps      []string
	FrictionApps         []string
	Whitelist            []string
	AlertingEnabled      bool
	DistractionThreshold time.Duration
	FrictionThreshold    time.Duration
	MailboxCapacity      int
	Tracer               trace.Tracer
}

// Actor runs the App Tracker state machine.
type Actor struct {
	cfg  Config
	mbox *mailbox.Mailbox[Msg]

	active    bool
	paused    bool
	sessionID int64

	usage     map[domain.AppUsageKey]int64
	appTotals map[string]int64

	lastApp     string
	lastAppSecs int64

	distractionApp         string
	distractionConsecutive time.Duration
	distractionAlertSent   bool

	frictionApp           string
	frictionConsecutive   time.Duration
	frictionPending       <-chan FrictionReply
	frictionEscalatedSent bool

	metrics domain.SessionMetrics
}

// New constructs an App Tracker actor and its Handle.
func New(cfg Config) (*Actor, Handle) {
	if cfg.Clock == nil {
		cfg.Clock = RealClock{}
	}
	if cfg.SampleInterval == 0 {
		cfg.SampleInterval = 5 * time.Second
	}
	if cfg.Detector == nil {
		cfg.Detector = NoopDetector{}
	}
	mbox := mailbox.New[Msg](cfg.MailboxCapacity)
	a := &Actor{cfg: cfg, usage: make(map[domain.AppUsageKey]int64), appTotals: make(map[string]int64)}
	a.mbox = mbox
	return a, newHandle(mbox)
}

// Run drives the actor's select loop until ctx is cancelled or shutdown
// fires, flushing any tracked session the same way Ended does.
func (a *Actor) Run(ctx context.Context, shutdown <-chan struct{}) {
	ticker := a.cfg.Clock.NewTicker(a.cfg.SampleInterval)
	defer ticker.Stop()

	for {
		select {
		case msg, ok := <-a.mbox.C():
			if !ok {
				a.flushOnShutdown()
				return
			}
			a.handle(ctx, msg)

		case <-ticker.C():
			tickCtx, end := tracing.StartTick(ctx, a.cfg.Tracer, "apptracker")
			a.tick(tickCtx)
			end(nil)

		case <-shutdown:
			a.flushOnShutdown()
			return

		case <-ctx.Done():
			a.flushOnShutdown()
			return
		}
	}
}

func (a *Actor) flushOnShutdown() {
	if a.active {
		a.handleEnded(context.Background())
	}
}

func (a *Actor) handle(ctx context.Context, msg Msg) {
	msgType := fmt.Sprintf("%T", msg)
	handler := tracing.WrapActorHandle(a.cfg.Tracer, "apptracker", msgType, nil, func(ctx context.Context) error {
		switch m := msg.(type) {
		case StartedMsg:
			a.handleStarted(m)
		case EndedMsg:
			a.handleEnded(ctx)
		case PausedMsg:
			a.handlePaused(ctx)
		case ResumedMsg:
			a.handleResumed()
		}
		return nil
	})
	_ = handler(ctx)
}

func (a *Actor) handleStarted(m StartedMsg) {
	a.active = true
	a.paused = false
	a.sessionID = m.SessionID
	a.usage = make(map[domain.AppUsageKey]int64)
	a.appTotals = make(map[string]int64)
	a.lastApp = ""
	a.lastAppSecs = 0
	a.resetDistraction()
	a.resetFriction()
	a.metrics = domain.NewSessionMetrics(m.SessionID)
}

func (a *Actor) handlePaused(ctx context.Context) {
	a.flushUsage(ctx)
	a.lastApp = ""
	a.lastAppSecs = 0
	a.resetDistraction()
	a.resetFriction()
	a.paused = true
}

func (a *Actor) handleResumed() {
	a.paused = false
}

func (a *Actor) handleEnded(ctx context.Context) {
	if !a.active {
		return
	}
	a.flushUsage(ctx)
	a.metrics.TotalShortBursts = sumValues(a.metrics.ShortBurstsByApp)
	if err := a.cfg.Metrics.SaveMetrics(ctx, a.metrics); err != nil {
		log.ErrorErr(log.CatTracker, "persist session metrics failed", err, "session_id", a.sessionID)
	}

	if len(a.metrics.ShortBurstsByApp) > 0 {
		report := a.buildSuggestionReport()
		if err := a.cfg.Suggestions.Save(report); err != nil {
			log.ErrorErr(log.CatTracker, "persist suggestion report failed", err, "session_id", a.sessionID)
		}
	}

	a.active = false
	a.paused = false
	a.sessionID = 0
}

func (a *Actor) flushUsage(ctx context.Context) {
	for key, seconds := range a.usage {
		if seconds == 0 {
			continue
		}
		if err := a.cfg.AppUsage.AddUsage(ctx, key, seconds); err != nil {
			log.ErrorErr(log.CatTracker, "persist app usage failed", err, "session_id", a.sessionID, "application", key.ApplicationName)
		}
	}
	a.usage = make(map[domain.AppUsageKey]int64)
}

func (a *Actor) tick(ctx context.Context) {
	if !a.active || a.paused {
		return
	}

	app, title, ok := a.cfg.Detector.Sample(ctx)
	if !ok {
		return
	}

	interval := a.cfg.SampleInterval
	intervalSecs := int64(interval.Seconds())

	a.accumulateUsage(app, title, intervalSecs)
	a.bookkeepContextSwitch(app, intervalSecs)
	a.detectDistraction(app, interval)
	a.detectFriction(ctx, app, interval)
}

func (a *Actor) accumulateUsage(app, title string, seconds int64) {
	key := domain.AppUsageKey{SessionID: a.sessionID, ApplicationName: app, WindowTitle: title}
	a.usage[key] += seconds
	a.appTotals[app] += seconds
}

func (a *Actor) bookkeepContextSwitch(app string, intervalSecs int64) {
	if app == a.lastApp {
		a.lastAppSecs += intervalSecs
		return
	}

	if a.lastApp != "" {
		prevWhitelisted := containsFold(a.cfg.Whitelist, a.lastApp)
		currWhitelisted := containsFold(a.cfg.Whitelist, app)
		if !(prevWhitelisted && currWhitelisted) {
			a.metrics = a.metrics.RecordContextSwitch()
		}
		if a.lastAppSecs > 0 && a.lastAppSecs < int64(a.cfg.ShortBurstThreshold.Seconds()) {
			a.metrics = a.metrics.RecordShortBurst(a.lastApp)
		}
	}

	a.lastApp = app
	a.lastAppSecs = intervalSecs
}

func (a *Actor) detectDistraction(app string, interval time.Duration) {
	if !matchesAnyFold(a.cfg.DistractionApps, app) {
		a.resetDistraction()
		return
	}

	if app == a.distractionApp {
		a.distractionConsecutive += interval
	} else {
		a.distractionApp = app
		a.distractionConsecutive = interval
		a.distractionAlertSent = false
	}

	if a.cfg.AlertingEnabled && !a.distractionAlertSent && a.distractionConsecutive >= a.cfg.DistractionThreshold {
		a.cfg.Notifier.DistractionAlert(app)
		a.distractionAlertSent = true
	}
}

func (a *Actor) resetDistraction() {
	a.distractionApp = ""
	a.distractionConsecutive = 0
	a.distractionAlertSent = false
}

func (a *Actor) detectFriction(_ context.Context, app string, interval time.Duration) {
	if !matchesAnyFold(a.cfg.FrictionApps, app) {
		return
	}

	if a.frictionPending != nil {
		select {
		case <-a.frictionPending:
			// Continue/BackToWork/StopSession, or a closed channel (treated
			// as Continue), all reset consecutive seconds the same way.
			a.frictionConsecutive = 0
			a.frictionPending = nil
		default:
		}
		return
	}

	if app != a.frictionApp {
		a.frictionApp = app
		a.frictionConsecutive = 0
		a.frictionEscalatedSent = false
	}
	a.frictionConsecutive += interval

	if a.frictionConsecutive >= a.cfg.FrictionThreshold {
		if !a.frictionEscalatedSent {
			a.frictionPending = a.cfg.Notifier.FrictionReminder(app)
			a.frictionEscalatedSent = true
		} else {
			a.frictionPending = a.cfg.Notifier.FrictionEscalated(app)
		}
		a.frictionConsecutive = 0
	}
}

func (a *Actor) resetFriction() {
	a.frictionApp = ""
	a.frictionConsecutive = 0
	a.frictionPending = nil
	a.frictionEscalatedSent = false
}

// minShortBurstsForSuggestion is the fewest short bursts an app must
// accumulate in one session before it's worth suggesting a distraction
// rule for it.
const minShortBurstsForSuggestion = 3

// buildSuggestionReport turns the session's per-app short-burst counts into
// suggestions: apps the user hasn't already flagged as a distraction or
// whitelisted, that were short-burst-switched to often enough to look like
// an emerging distraction rather than noise.
func (a *Actor) buildSuggestionReport() domain.SuggestionReport {
	report := domain.SuggestionReport{
		SessionID:   a.sessionID,
		GeneratedAt: a.cfg.Clock.Now(),
	}
	for app, count := range a.metrics.ShortBurstsByApp {
		if count < minShortBurstsForSuggestion {
			continue
		}
		if matchesAnyFold(a.cfg.DistractionApps, app) {
			continue
		}
		if containsFold(a.cfg.Whitelist, app) {
			continue
		}
		report.Suggestions = append(report.Suggestions, domain.DistractionSuggestion{
			ApplicationName: app,
			Reason:          "frequent short bursts during focus sessions",
			OccurrenceCount: count,
		})
	}
	sort.Slice(report.Suggestions, func(i, j int) bool {
		return report.Suggestions[i].OccurrenceCount > report.Suggestions[j].OccurrenceCount
	})
	return report
}

func sumValues(m map[string]int) int {
	total := 0
	for _, v := range m {
		total += v
	}
	return total
}

func containsFold(set []string, app string) bool {
	for _, s := range set {
		if strings.EqualFold(s, app) {
			return true
		}
	}
	return false
}

func matchesAnyFold(set []string, app string) bool {
	lower := strings.ToLower(app)
	for _, s := range set {
		if strings.Contains(lower, strings.ToLower(s)) {
			return true
		}
	}
	return false
}
