package domain

// SessionMetrics summarizes the App Tracker's distraction/friction analysis
// for one session: how often the foreground window changed, and how many
// short bursts (a window held for less than the short-burst threshold, see
// config.TrackerConfig.ShortBurstThresholdSecs) occurred, both in aggregate and broken
// down per application.
type SessionMetrics struct {
	SessionID          int64
	ContextSwitchCount int
	ShortBurstsByApp   map[string]int
	TotalShortBursts   int
}

// NewSessionMetrics returns a zeroed SessionMetrics for sessionID.
func NewSessionMetrics(sessionID int64) SessionMetrics {
	return SessionMetrics{
		SessionID:        sessionID,
		ShortBurstsByApp: make(map[string]int),
	}
}

// RecordContextSwitch increments ContextSwitchCount by one, called each
// time the App Tracker observes the foreground application change.
func (m SessionMetrics) RecordContextSwitch() SessionMetrics {
	m.ContextSwitchCount++
	return m
}

// RecordShortBurst increments the short-burst count for appName, called
// when a foreground window is held for less than the short-burst threshold
// before switching away.
func (m SessionMetrics) RecordShortBurst(appName string) SessionMetrics {
	if m.ShortBurstsByApp == nil {
		m.ShortBurstsByApp = make(map[string]int)
	}
	m.ShortBurstsByApp[appName]++
	m.TotalShortBursts++
	return m
}
