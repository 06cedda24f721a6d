package testutil

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"
)

type usageRow struct {
	sessionIndex int
	appUsageData
}

// Builder accumulates session fixtures and inserts them in dependency
// order: sessions, then the app usage rows that reference them.
type Builder struct {
	t        *testing.T
	db       *sql.DB
	sessions []sessionData
	usage    []usageRow
}

// NewBuilder creates a builder for the given test database.
func NewBuilder(t *testing.T, db *sql.DB) *Builder {
	t.Helper()
	return &Builder{t: t, db: db}
}

// WithSession adds a session with optional configuration and returns its
// index for use with WithAppUsage.
func (b *Builder) WithSession(opts ...SessionOption) int {
	session := defaultSession()
	for _, opt := range opts {
		opt(&session)
	}
	b.sessions = append(b.sessions, session)
	return len(b.sessions) - 1
}

// WithAppUsage records applicationName's foreground duration against the
// session at sessionIndex (the value WithSession returned).
func (b *Builder) WithAppUsage(sessionIndex int, applicationName string, duration int64) *Builder {
	b.usage = append(b.usage, usageRow{
		sessionIndex: sessionIndex,
		appUsageData: appUsageData{applicationName: applicationName, durationSeconds: duration},
	})
	return b
}

// Build inserts every accumulated session and usage row, returning the
// assigned session ids in the order WithSession was called.
func (b *Builder) Build() []int64 {
	b.t.Helper()
	ids := make([]int64, len(b.sessions))
	for i, s := range b.sessions {
		ids[i] = b.insertSession(s)
	}
	for _, row := range b.usage {
		b.insertAppUsage(ids[row.sessionIndex], row.appUsageData)
	}
	return ids
}

func (b *Builder) insertSession(s sessionData) int64 {
	b.t.Helper()
	result, err := b.db.Exec(
		`INSERT INTO sessions (mode, started_at, ended_at, duration_seconds, check_in_count) VALUES (?, ?, ?, ?, ?)`,
		s.mode, s.startedAt, s.endedAt, s.durationSeconds, s.checkInCount,
	)
	require.NoError(b.t, err)
	id, err := result.LastInsertId()
	require.NoError(b.t, err)
	return id
}

func (b *Builder) insertAppUsage(sessionID int64, u appUsageData) {
	b.t.Helper()
	_, err := b.db.Exec(
		`INSERT INTO app_tracking (session_id, application_name, window_title, duration_seconds) VALUES (?, ?, ?, ?)`,
		sessionID, u.applicationName, u.windowTitle, u.durationSeconds,
	)
	require.NoError(b.t, err)
}
