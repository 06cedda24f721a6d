// Package digest implements the Digest Scheduler actor: a weekly summary
// of completed sessions, computed from a configured weekday/hour and the
// session repository's trailing-week window.
package digest

import (
	"context"
	"strings"
	"time"

	"github.com/fluxhq/flux/internal/domain"
	"github.com/fluxhq/flux/internal/log"
	"github.com/fluxhq/flux/internal/notifier"
)

// NotifierPort is the subset of the Notifier's inbound surface the Digest
// Scheduler depends on. notifier.Handle implements this structurally.
//
// This imports notifier.ExternalLink directly rather than mirroring it: Go
// requires a concrete method's parameter types to name the same type the
// interface declares, so the package that produces the conforming method
// (notifier) has to be the one whose type this signature names.
type NotifierPort interface {
	WeeklyDigest(totalMinutes float64, sessionCount int, link *notifier.ExternalLink)
}

// Clock abstracts wall-clock access for deterministic scenario tests.
type Clock interface {
	Now() time.Time
	After(d time.Duration) <-chan time.Time
}

// RealClock implements Clock using the standard time package.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time { return time.Now() }

// After wraps time.After.
func (RealClock) After(d time.Duration) <-chan time.Time { return time.After(d) }

// Config configures a new Actor.
type Config struct {
	Repo     domain.SessionRepository
	Notifier NotifierPort
	Clock    Clock
	Location *time.Location

	// Weekday and Hour pin the local-time instant the weekly digest fires.
	Weekday  time.Weekday
	Hour     int
	Lookback time.Duration
}

// Actor runs the Digest Scheduler's sleep-and-wake loop.
type Actor struct {
	cfg Config
}

// New constructs a Digest Scheduler actor. There is no mailbox: the
// scheduler has no inbound operations per the spec, only a sleep-or-shutdown
// select.
func New(cfg Config) *Actor {
	if cfg.Clock == nil {
		cfg.Clock = RealClock{}
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if cfg.Lookback == 0 {
		cfg.Lookback = 7 * 24 * time.Hour
	}
	return &Actor{cfg: cfg}
}

// Run sleeps until the next scheduled digest instant or shutdown, whichever
// comes first, firing one digest per wake and then rescheduling.
func (a *Actor) Run(ctx context.Context, shutdown <-chan struct{}) {
	for {
		next := a.nextOccurrence(a.cfg.Clock.Now())
		wait := next.Sub(a.cfg.Clock.Now())
		if wait < 0 {
			wait = 0
		}

		select {
		case <-a.cfg.Clock.After(wait):
			a.fire(ctx)

		case <-shutdown:
			return

		case <-ctx.Done():
			return
		}
	}
}

// nextOccurrence returns the next local-time instant matching the
// configured weekday and hour: today's occurrence if it is still in the
// future, otherwise seven days out.
func (a *Actor) nextOccurrence(now time.Time) time.Time {
	now = now.In(a.cfg.Location)
	candidate := time.Date(now.Year(), now.Month(), now.Day(), a.cfg.Hour, 0, 0, 0, a.cfg.Location)

	daysUntil := int(a.cfg.Weekday-now.Weekday()+7) % 7
	candidate = candidate.AddDate(0, 0, daysUntil)

	if !candidate.After(now) {
		candidate = candidate.AddDate(0, 0, 7)
	}
	return candidate
}

func (a *Actor) fire(ctx context.Context) {
	since := a.cfg.Clock.Now().Add(-a.cfg.Lookback)
	sessions, err := a.cfg.Repo.RecentSessions(ctx, since)
	if err != nil {
		log.ErrorErr(log.CatDigest, "load recent sessions failed", err)
		return
	}
	if len(sessions) == 0 {
		return
	}

	var totalSeconds int64
	for _, s := range sessions {
		if seconds, ok := s.DurationSeconds(); ok {
			totalSeconds += seconds
		}
	}

	a.cfg.Notifier.WeeklyDigest(float64(totalSeconds)/60, len(sessions), nil)
}

// ParseWeekday parses config.toml's digest.weekday string ("monday",
// case-insensitive) into a time.Weekday, defaulting to Monday on an
// unrecognized value.
func ParseWeekday(name string) time.Weekday {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "sunday":
		return time.Sunday
	case "monday":
		return time.Monday
	case "tuesday":
		return time.Tuesday
	case "wednesday":
		return time.Wednesday
	case "thursday":
		return time.Thursday
	case "friday":
		return time.Friday
	case "saturday":
		return time.Saturday
	default:
		return time.Monday
	}
}
