package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/fluxhq/flux/internal/domain"
)

// metricsRepository implements domain.MetricsRepository using SQLite,
// storing the per-app short-burst breakdown as a JSON blob column since it
// is a variable-shape map rather than a relation Flux ever queries into.
type metricsRepository struct {
	db *sql.DB
}

// NewMetricsRepository creates a domain.MetricsRepository backed by db.
func NewMetricsRepository(db *sql.DB) domain.MetricsRepository {
	return &metricsRepository{db: db}
}

var _ domain.MetricsRepository = (*metricsRepository)(nil)

func (r *metricsRepository) SaveMetrics(ctx context.Context, m domain.SessionMetrics) error {
	byApp, err := json.Marshal(m.ShortBurstsByApp)
	if err != nil {
		return fmt.Errorf("sqlite: marshal short bursts for session %d: %w", m.SessionID, err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO session_metrics (session_id, context_switch_count, total_short_bursts, short_bursts_by_app)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT (session_id) DO UPDATE SET
			context_switch_count = excluded.context_switch_count,
			total_short_bursts = excluded.total_short_bursts,
			short_bursts_by_app = excluded.short_bursts_by_app`,
		m.SessionID, m.ContextSwitchCount, m.TotalShortBursts, string(byApp),
	)
	if err != nil {
		return fmt.Errorf("sqlite: save metrics for session %d: %w", m.SessionID, err)
	}
	return nil
}

func (r *metricsRepository) MetricsForSession(ctx context.Context, sessionID int64) (domain.SessionMetrics, error) {
	var byAppJSON string
	m := domain.NewSessionMetrics(sessionID)

	row := r.db.QueryRowContext(ctx,
		`SELECT context_switch_count, total_short_bursts, short_bursts_by_app FROM session_metrics WHERE session_id = ?`,
		sessionID,
	)
	err := row.Scan(&m.ContextSwitchCount, &m.TotalShortBursts, &byAppJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return m, nil
	}
	if err != nil {
		return domain.SessionMetrics{}, fmt.Errorf("sqlite: metrics for session %d: %w", sessionID, err)
	}
	if err := json.Unmarshal([]byte(byAppJSON), &m.ShortBurstsByApp); err != nil {
		return domain.SessionMetrics{}, fmt.Errorf("sqlite: unmarshal short bursts for session %d: %w", sessionID, err)
	}
	return m, nil
}
