package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rpggio/moveit/internal/domain/phase"
	"github.com/rpggio/moveit/internal/domain/session"
	"github.com/rpggio/moveit/internal/repository"
)

// SessionRepository implements session.Repository for SQLite
type SessionRepository struct {
	db *DB
}

// NewSessionRepository creates a new SessionRepository
func NewSessionRepository(db *DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Load returns the whole session log in insertion order
func (r *SessionRepository) Load(ctx context.Context) ([]session.Record, error) {
	query := `
		SELECT id, phase, start_date, end_date, duration
		FROM sessions
		ORDER BY position
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to load sessions: %w", err)
	}
	defer rows.Close()

	records := []session.Record{}
	for rows.Next() {
		var rec session.Record
		var p string
		var start, duration int64
		var end sql.NullInt64
		if err := rows.Scan(&rec.ID, &p, &start, &end, &duration); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		rec.Phase = phase.Phase(p)
		rec.StartDate = fromUnix(start)
		rec.EndDate = timePtr(end)
		rec.Duration = time.Duration(duration)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sessions: %w", err)
	}

	return records, nil
}

// Save replaces the stored log with records in a single transaction
func (r *SessionRepository) Save(ctx context.Context, records []session.Record) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM sessions"); err != nil {
		return fmt.Errorf("failed to clear sessions: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO sessions (id, position, phase, start_date, end_date, duration)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare session insert: %w", err)
	}
	defer stmt.Close()

	for i, rec := range records {
		_, err := stmt.ExecContext(ctx,
			rec.ID,
			i,
			string(rec.Phase),
			toUnix(rec.StartDate),
			nullableTime(rec.EndDate),
			int64(rec.Duration),
		)
		if err != nil {
			if isUniqueViolation(err) || isCheckViolation(err) {
				return fmt.Errorf("session %s: %w", rec.ID, repository.ErrInvalidInput)
			}
			return fmt.Errorf("failed to insert session: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit sessions: %w", err)
	}
	return nil
}
