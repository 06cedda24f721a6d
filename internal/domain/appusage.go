package domain

// AppUsage accumulates how long a single (application, window title) pair
// was foregrounded during a session. The App Tracker upserts rows
// additively as it samples; it never overwrites DurationSeconds, only adds
// to it.
type AppUsage struct {
	SessionID       int64
	ApplicationName string
	WindowTitle     string
	DurationSeconds int64
}

// Key identifies the natural primary key (session_id, application_name,
// window_title) used by the App Tracker's upsert and by AppUsageRepository.AddUsage.
type AppUsageKey struct {
	SessionID       int64
	ApplicationName string
	WindowTitle     string
}

// Key returns u's natural key.
func (u AppUsage) Key() AppUsageKey {
	return AppUsageKey{
		SessionID:       u.SessionID,
		ApplicationName: u.ApplicationName,
		WindowTitle:     u.WindowTitle,
	}
}

// Add returns a copy of u with seconds added to DurationSeconds.
func (u AppUsage) Add(seconds int64) AppUsage {
	u.DurationSeconds += seconds
	return u
}
