// Package testutil provides fixtures for exercising Flux's domain
// repositories and actors against a real in-memory SQLite database.
package testutil

import (
	"database/sql"
	"testing"

	"github.com/fluxhq/flux/internal/store/sqlite"
	"github.com/stretchr/testify/require"
)

// NewTestDB opens an in-memory SQLite database with every migration
// applied, using the same Open path the daemon uses in production.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sqlite.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}
