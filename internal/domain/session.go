package domain

import (
	"fmt"
	"time"
)

// Session is one focus session: a span of time in a single Mode, tracked
// from start until it is stopped or completes.
//
// Invariant: EndedAt is set if and only if DurationSeconds is set. A session
// is "active" exactly when both are unset.
type Session struct {
	id              int64
	hasID           bool
	mode            Mode
	startedAt       time.Time
	endedAt         time.Time
	hasEndedAt      bool
	durationSeconds int64
	hasDuration     bool
	checkInCount    int
}

// NewSession starts a new session in the given mode at startedAt. The
// returned Session has no id until it is persisted; repositories assign one
// via Reconstitute on the row they insert.
func NewSession(mode Mode, startedAt time.Time) Session {
	return Session{
		mode:      mode,
		startedAt: startedAt.UTC(),
	}
}

// ReconstituteSession rebuilds a Session from stored fields. Repositories
// use this instead of exporting Session's internals, so storage format
// changes never leak into actor code.
func ReconstituteSession(id int64, mode Mode, startedAt time.Time, endedAt *time.Time, durationSeconds *int64, checkInCount int) (Session, error) {
	s := Session{
		id:           id,
		hasID:        true,
		mode:         mode,
		startedAt:    startedAt.UTC(),
		checkInCount: checkInCount,
	}
	if endedAt != nil {
		s.endedAt = endedAt.UTC()
		s.hasEndedAt = true
	}
	if durationSeconds != nil {
		s.durationSeconds = *durationSeconds
		s.hasDuration = true
	}
	if s.hasEndedAt != s.hasDuration {
		return Session{}, fmt.Errorf("%w: session %d has ended_at=%v duration=%v, must both be set or both unset", ErrInvalidSession, id, s.hasEndedAt, s.hasDuration)
	}
	return s, nil
}

// ID returns the session's persisted identifier and whether one has been
// assigned yet.
func (s Session) ID() (int64, bool) { return s.id, s.hasID }

// WithID returns a copy of s carrying id, used by the repository immediately
// after insert to hand the caller a fully-identified Session.
func (s Session) WithID(id int64) Session {
	s.id = id
	s.hasID = true
	return s
}

// Mode returns the session's mode.
func (s Session) Mode() Mode { return s.mode }

// StartedAt returns the UTC instant the session began.
func (s Session) StartedAt() time.Time { return s.startedAt }

// IsActive reports whether the session has neither ended nor been assigned
// a duration.
func (s Session) IsActive() bool { return !s.hasEndedAt }

// EndedAt returns the UTC instant the session ended and whether it has
// ended.
func (s Session) EndedAt() (time.Time, bool) { return s.endedAt, s.hasEndedAt }

// DurationSeconds returns the session's elapsed duration and whether it has
// been finalized.
func (s Session) DurationSeconds() (int64, bool) { return s.durationSeconds, s.hasDuration }

// CheckInCount returns how many check-in prompts the Timer has dispatched
// for this session so far.
func (s Session) CheckInCount() int { return s.checkInCount }

// End returns a copy of s marked ended at endedAt, with duration computed
// from StartedAt. Calling End on an already-ended session is a no-op that
// returns s unchanged, since the Timer only ever transitions Active->Ended
// once.
func (s Session) End(endedAt time.Time) Session {
	if s.hasEndedAt {
		return s
	}
	endedAt = endedAt.UTC()
	s.endedAt = endedAt
	s.hasEndedAt = true
	duration := int64(endedAt.Sub(s.startedAt).Seconds())
	if duration < 0 {
		duration = 0
	}
	s.durationSeconds = duration
	s.hasDuration = true
	return s
}

// WithCheckInIncremented returns a copy of s with CheckInCount incremented
// by one, recorded each time the Timer crosses a 25/50/75% threshold.
func (s Session) WithCheckInIncremented() Session {
	s.checkInCount++
	return s
}

// Elapsed returns how long the session has been running as of now. For an
// ended session this equals its final duration; for an active session it
// grows with the wall clock.
func (s Session) Elapsed(now time.Time) time.Duration {
	if s.hasEndedAt {
		return s.endedAt.Sub(s.startedAt)
	}
	return now.UTC().Sub(s.startedAt)
}
