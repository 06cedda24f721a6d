package testutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestBuilder_WithSession_DefersInsertUntilBuild(t *testing.T) {
	db := NewTestDB(t)

	b := NewBuilder(t, db)
	b.WithSession()

	var count int
	err := db.QueryRow(`SELECT COUNT(*) FROM sessions`).Scan(&count)
	require.NoError(t, err)
	require.Equal(t, 0, count, "Build has not been called yet")
}

func TestBuilder_WithSession_Defaults(t *testing.T) {
	db := NewTestDB(t)

	b := NewBuilder(t, db)
	idx := b.WithSession()
	ids := b.Build()

	var mode string
	var endedAt *time.Time
	err := db.QueryRow(`SELECT mode, ended_at FROM sessions WHERE id = ?`, ids[idx]).Scan(&mode, &endedAt)
	require.NoError(t, err)
	require.Equal(t, "ai-assisted", mode)
	require.Nil(t, endedAt)
}

func TestBuilder_WithSession_EndedAndMode(t *testing.T) {
	db := NewTestDB(t)

	start := time.Now().UTC().Add(-time.Hour).Truncate(time.Second)

	b := NewBuilder(t, db)
	idx := b.WithSession(Mode("review"), StartedAt(start), Ended(50*time.Minute), CheckInCount(2))
	ids := b.Build()

	var mode string
	var durationSeconds int64
	var checkInCount int
	err := db.QueryRow(`SELECT mode, duration_seconds, check_in_count FROM sessions WHERE id = ?`, ids[idx]).
		Scan(&mode, &durationSeconds, &checkInCount)
	require.NoError(t, err)
	require.Equal(t, "review", mode)
	require.Equal(t, int64(3000), durationSeconds)
	require.Equal(t, 2, checkInCount)
}

func TestBuilder_WithAppUsage(t *testing.T) {
	db := NewTestDB(t)

	b := NewBuilder(t, db)
	idx := b.WithSession()
	b.WithAppUsage(idx, "vscode", 120)
	ids := b.Build()

	var appName string
	var seconds int64
	err := db.QueryRow(`SELECT application_name, duration_seconds FROM app_tracking WHERE session_id = ?`, ids[idx]).
		Scan(&appName, &seconds)
	require.NoError(t, err)
	require.Equal(t, "vscode", appName)
	require.Equal(t, int64(120), seconds)
}

func TestBuilder_MultipleSessions(t *testing.T) {
	db := NewTestDB(t)

	b := NewBuilder(t, db)
	first := b.WithSession(Mode("review"), Ended(time.Hour))
	second := b.WithSession(Mode("architecture"), StartedAt(time.Now().UTC().Add(2*time.Hour)))
	ids := b.Build()

	require.NotEqual(t, ids[first], ids[second])

	var count int
	err := db.QueryRow(`SELECT COUNT(*) FROM sessions`).Scan(&count)
	require.NoError(t, err)
	require.Equal(t, 2, count)
}
