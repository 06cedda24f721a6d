package domain

import "errors"

// Sentinel errors returned by the domain and store layers. Actors compare
// against these with errors.Is rather than inspecting messages, matching the
// error-handling taxonomy's distinction between expected domain outcomes and
// unexpected infrastructure failures.
var (
	// ErrNoActiveSession is returned when an operation requires a running
	// session (pause, stop, check-in) but the Timer is idle.
	ErrNoActiveSession = errors.New("domain: no active session")

	// ErrSessionAlreadyActive is returned by StartSession when a session is
	// already running. The spec allows at most one active session.
	ErrSessionAlreadyActive = errors.New("domain: a session is already active")

	// ErrSessionNotFound is returned by repository lookups for an id that
	// does not exist.
	ErrSessionNotFound = errors.New("domain: session not found")

	// ErrInvalidSession is returned when a Session fails its own invariant
	// checks (e.g. ended_at set without duration, or vice versa).
	ErrInvalidSession = errors.New("domain: invalid session")
)
