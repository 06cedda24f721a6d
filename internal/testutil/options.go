package testutil

import "time"

// sessionData holds all data for a session row to be inserted.
type sessionData struct {
	mode            string
	startedAt       time.Time
	endedAt         *time.Time
	durationSeconds *int64
	checkInCount    int
}

// defaultSession returns a sessionData in the AiAssisted mode, started now,
// still active.
func defaultSession() sessionData {
	return sessionData{mode: "ai-assisted", startedAt: time.Now().UTC()}
}

// SessionOption configures a session during builder setup.
type SessionOption func(*sessionData)

// Mode sets the session's mode tag, e.g. "review" or "architecture".
func Mode(mode string) SessionOption {
	return func(s *sessionData) { s.mode = mode }
}

// StartedAt sets the session's start instant.
func StartedAt(t time.Time) SessionOption {
	return func(s *sessionData) { s.startedAt = t }
}

// Ended marks the session as completed after duration, ending at
// startedAt+duration.
func Ended(duration time.Duration) SessionOption {
	return func(s *sessionData) {
		end := s.startedAt.Add(duration)
		seconds := int64(duration.Seconds())
		s.endedAt = &end
		s.durationSeconds = &seconds
	}
}

// CheckInCount sets the number of check-ins already dispatched.
func CheckInCount(n int) SessionOption {
	return func(s *sessionData) { s.checkInCount = n }
}

// appUsageData holds one app_tracking row to be inserted against a session.
type appUsageData struct {
	applicationName string
	windowTitle     string
	durationSeconds int64
}
