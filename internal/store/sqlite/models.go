package sqlite

import (
	"database/sql"
	"time"

	"github.com/fluxhq/flux/internal/domain"
)

// sessionModel mirrors the sessions table's column layout, matching the
// teacher's row-struct-between-SQL-and-domain pattern.
type sessionModel struct {
	ID              int64
	Mode            string
	StartedAt       time.Time
	EndedAt         sql.NullTime
	DurationSeconds sql.NullInt64
	CheckInCount    int
}

func (m sessionModel) toDomain() (domain.Session, error) {
	var endedAt *time.Time
	if m.EndedAt.Valid {
		endedAt = &m.EndedAt.Time
	}
	var duration *int64
	if m.DurationSeconds.Valid {
		duration = &m.DurationSeconds.Int64
	}
	return domain.ReconstituteSession(m.ID, domain.ParseMode(m.Mode), m.StartedAt, endedAt, duration, m.CheckInCount)
}

func scanSession(scanner interface{ Scan(...any) error }) (sessionModel, error) {
	var m sessionModel
	err := scanner.Scan(&m.ID, &m.Mode, &m.StartedAt, &m.EndedAt, &m.DurationSeconds, &m.CheckInCount)
	return m, err
}
