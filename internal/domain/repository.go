package domain

import (
	"context"
	"time"
)

// SessionRepository persists Session rows. Implementations must enforce the
// at-most-one-active-session invariant: StartSession fails with
// ErrSessionAlreadyActive if an unended session already exists.
type SessionRepository interface {
	// StartSession inserts a new active session and returns it with its
	// assigned id.
	StartSession(ctx context.Context, mode Mode, startedAt time.Time) (Session, error)

	// ActiveSession returns the current active session, or
	// ErrNoActiveSession if none is running.
	ActiveSession(ctx context.Context) (Session, error)

	// EndSession marks the active session ended and persists its final
	// duration and check-in count.
	EndSession(ctx context.Context, session Session) error

	// IncrementCheckIn persists an incremented check-in count for session.
	IncrementCheckIn(ctx context.Context, sessionID int64) error

	// SessionByID looks up a session regardless of active state.
	SessionByID(ctx context.Context, id int64) (Session, error)

	// RecentSessions returns sessions that ended within the trailing
	// window, most recent first, used by the Digest Scheduler.
	RecentSessions(ctx context.Context, since time.Time) ([]Session, error)
}

// AppUsageRepository persists per-application foreground time for a
// session.
type AppUsageRepository interface {
	// AddUsage additively upserts seconds onto the row keyed by key,
	// creating it if absent.
	AddUsage(ctx context.Context, key AppUsageKey, seconds int64) error

	// UsageForSession returns every AppUsage row recorded for sessionID.
	UsageForSession(ctx context.Context, sessionID int64) ([]AppUsage, error)
}

// MetricsRepository persists the per-session SessionMetrics rollup.
type MetricsRepository interface {
	// SaveMetrics upserts m, replacing any prior row for m.SessionID.
	SaveMetrics(ctx context.Context, m SessionMetrics) error

	// MetricsForSession returns the stored metrics for sessionID, or a
	// zeroed SessionMetrics if none have been recorded yet.
	MetricsForSession(ctx context.Context, sessionID int64) (SessionMetrics, error)
}

// SuggestionStore persists SuggestionReport documents outside the database,
// per the spec's file-based suggestions.json format.
type SuggestionStore interface {
	// Save writes report, overwriting any prior report for the same
	// session.
	Save(report SuggestionReport) error

	// Load reads back the most recently saved report, or a zero-value
	// report with IsEmpty() true if none exists yet.
	Load() (SuggestionReport, error)
}
