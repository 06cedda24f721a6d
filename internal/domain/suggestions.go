package domain

import "time"

// DistractionSuggestion is one actionable recommendation surfaced to the
// user after a session ends, e.g. "block reddit.com during focus sessions."
type DistractionSuggestion struct {
	ApplicationName string
	WindowTitlePat  string // substring/glob the suggestion matched on, for display
	Reason          string
	OccurrenceCount int
}

// SuggestionReport is the persisted output of one session's distraction
// analysis, written to suggestions.json rather than the database (see the
// external interfaces section of the spec for the on-disk format).
type SuggestionReport struct {
	SessionID   int64
	GeneratedAt time.Time
	Suggestions []DistractionSuggestion
}

// IsEmpty reports whether the report carries no suggestions, in which case
// the Notifier skips the end-of-session suggestion prompt entirely.
func (r SuggestionReport) IsEmpty() bool {
	return len(r.Suggestions) == 0
}
