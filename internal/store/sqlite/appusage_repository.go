package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fluxhq/flux/internal/domain"
)

// appUsageRepository implements domain.AppUsageRepository using SQLite.
type appUsageRepository struct {
	db *sql.DB
}

// NewAppUsageRepository creates a domain.AppUsageRepository backed by db.
func NewAppUsageRepository(db *sql.DB) domain.AppUsageRepository {
	return &appUsageRepository{db: db}
}

var _ domain.AppUsageRepository = (*appUsageRepository)(nil)

func (r *appUsageRepository) AddUsage(ctx context.Context, key domain.AppUsageKey, seconds int64) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO app_tracking (session_id, application_name, window_title, duration_seconds)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT (session_id, application_name, window_title)
		 DO UPDATE SET duration_seconds = duration_seconds + excluded.duration_seconds`,
		key.SessionID, key.ApplicationName, key.WindowTitle, seconds,
	)
	if err != nil {
		return fmt.Errorf("sqlite: add usage for session %d app %s: %w", key.SessionID, key.ApplicationName, err)
	}
	return nil
}

func (r *appUsageRepository) UsageForSession(ctx context.Context, sessionID int64) ([]domain.AppUsage, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT session_id, application_name, window_title, duration_seconds
		 FROM app_tracking WHERE session_id = ? ORDER BY duration_seconds DESC`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: usage for session %d: %w", sessionID, err)
	}
	defer rows.Close()

	var usages []domain.AppUsage
	for rows.Next() {
		var u domain.AppUsage
		if err := rows.Scan(&u.SessionID, &u.ApplicationName, &u.WindowTitle, &u.DurationSeconds); err != nil {
			return nil, fmt.Errorf("sqlite: scan usage for session %d: %w", sessionID, err)
		}
		usages = append(usages, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: usage for session %d: %w", sessionID, err)
	}
	return usages, nil
}
