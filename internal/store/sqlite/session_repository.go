package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fluxhq/flux/internal/domain"
)

const sessionColumns = `id, mode, started_at, ended_at, duration_seconds, check_in_count`

// sessionRepository implements domain.SessionRepository using SQLite.
type sessionRepository struct {
	db *sql.DB
}

// NewSessionRepository creates a domain.SessionRepository backed by db.
func NewSessionRepository(db *sql.DB) domain.SessionRepository {
	return &sessionRepository{db: db}
}

var _ domain.SessionRepository = (*sessionRepository)(nil)

func (r *sessionRepository) StartSession(ctx context.Context, mode domain.Mode, startedAt time.Time) (domain.Session, error) {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO sessions (mode, started_at) VALUES (?, ?)`,
		mode.String(), startedAt.UTC(),
	)
	if err != nil {
		if isUniqueConstraintErr(err) {
			return domain.Session{}, domain.ErrSessionAlreadyActive
		}
		return domain.Session{}, fmt.Errorf("sqlite: start session: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return domain.Session{}, fmt.Errorf("sqlite: start session id: %w", err)
	}
	return domain.NewSession(mode, startedAt).WithID(id), nil
}

func (r *sessionRepository) ActiveSession(ctx context.Context) (domain.Session, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+sessionColumns+` FROM sessions WHERE ended_at IS NULL LIMIT 1`,
	)
	model, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Session{}, domain.ErrNoActiveSession
	}
	if err != nil {
		return domain.Session{}, fmt.Errorf("sqlite: active session: %w", err)
	}
	return model.toDomain()
}

func (r *sessionRepository) EndSession(ctx context.Context, session domain.Session) error {
	id, ok := session.ID()
	if !ok {
		return fmt.Errorf("sqlite: end session: %w: session has no id", domain.ErrInvalidSession)
	}
	endedAt, ok := session.EndedAt()
	if !ok {
		return fmt.Errorf("sqlite: end session %d: %w: session is not ended", id, domain.ErrInvalidSession)
	}
	duration, _ := session.DurationSeconds()

	result, err := r.db.ExecContext(ctx,
		`UPDATE sessions SET ended_at = ?, duration_seconds = ?, check_in_count = ? WHERE id = ?`,
		endedAt, duration, session.CheckInCount(), id,
	)
	if err != nil {
		return fmt.Errorf("sqlite: end session %d: %w", id, err)
	}
	return checkRowAffected(result, id)
}

func (r *sessionRepository) IncrementCheckIn(ctx context.Context, sessionID int64) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE sessions SET check_in_count = check_in_count + 1 WHERE id = ? AND ended_at IS NULL`,
		sessionID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: increment check-in for session %d: %w", sessionID, err)
	}
	return checkRowAffected(result, sessionID)
}

func (r *sessionRepository) SessionByID(ctx context.Context, id int64) (domain.Session, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+sessionColumns+` FROM sessions WHERE id = ?`, id)
	model, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Session{}, domain.ErrSessionNotFound
	}
	if err != nil {
		return domain.Session{}, fmt.Errorf("sqlite: session %d: %w", id, err)
	}
	return model.toDomain()
}

func (r *sessionRepository) RecentSessions(ctx context.Context, since time.Time) ([]domain.Session, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+sessionColumns+` FROM sessions WHERE ended_at IS NOT NULL AND ended_at >= ? ORDER BY ended_at DESC`,
		since.UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: recent sessions: %w", err)
	}
	defer rows.Close()

	var sessions []domain.Session
	for rows.Next() {
		model, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scan recent session: %w", err)
		}
		session, err := model.toDomain()
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: recent sessions: %w", err)
	}
	return sessions, nil
}

func checkRowAffected(result sql.Result, sessionID int64) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: rows affected for session %d: %w", sessionID, err)
	}
	if n == 0 {
		return domain.ErrSessionNotFound
	}
	return nil
}

// isUniqueConstraintErr reports whether err is a UNIQUE constraint
// violation, the shape the idx_sessions_active partial index raises when a
// second active session is attempted.
func isUniqueConstraintErr(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
