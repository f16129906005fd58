package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rpggio/moveit/internal/domain/phase"
	"github.com/rpggio/moveit/internal/domain/stats"
	"github.com/rpggio/moveit/internal/repository"
)

// TransitionRepository implements stats.TransitionRepository for SQLite
type TransitionRepository struct {
	db *DB
}

// NewTransitionRepository creates a new TransitionRepository
func NewTransitionRepository(db *DB) *TransitionRepository {
	return &TransitionRepository{db: db}
}

const transitionColumns = `
	id, from_phase, to_phase, start_date, end_date, duration,
	was_paused, pause_duration, pause_started_at
`

// Create inserts a new transition
func (r *TransitionRepository) Create(ctx context.Context, t *stats.PhaseTransition) error {
	query := `INSERT INTO phase_transitions (` + transitionColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		t.ID,
		string(t.From),
		string(t.To),
		toUnix(t.StartDate),
		nullableTime(t.EndDate),
		int64(t.Duration),
		t.WasPaused,
		int64(t.PauseDuration),
		nullableTime(t.PauseStartedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("transition %s: %w", t.ID, repository.ErrInvalidInput)
		}
		return fmt.Errorf("failed to create transition: %w", err)
	}

	return nil
}

// Update writes every mutable field of an existing transition
func (r *TransitionRepository) Update(ctx context.Context, t *stats.PhaseTransition) error {
	query := `
		UPDATE phase_transitions
		SET end_date = ?, duration = ?, was_paused = ?,
			pause_duration = ?, pause_started_at = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		nullableTime(t.EndDate),
		int64(t.Duration),
		t.WasPaused,
		int64(t.PauseDuration),
		nullableTime(t.PauseStartedAt),
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update transition: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// GetOpen returns the most recent transition without an end date
func (r *TransitionRepository) GetOpen(ctx context.Context) (*stats.PhaseTransition, error) {
	query := `SELECT ` + transitionColumns + `
		FROM phase_transitions
		WHERE end_date IS NULL
		ORDER BY start_date DESC
		LIMIT 1
	`

	t, err := scanTransition(r.db.QueryRowContext(ctx, query))
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get open transition: %w", err)
	}
	return t, nil
}

// ListBetween returns transitions that started in [from, to), oldest first
func (r *TransitionRepository) ListBetween(ctx context.Context, from, to time.Time) ([]stats.PhaseTransition, error) {
	query := `SELECT ` + transitionColumns + `
		FROM phase_transitions
		WHERE start_date >= ? AND start_date < ?
		ORDER BY start_date
	`

	rows, err := r.db.QueryContext(ctx, query, toUnix(from), toUnix(to))
	if err != nil {
		return nil, fmt.Errorf("failed to list transitions: %w", err)
	}
	defer rows.Close()

	list := []stats.PhaseTransition{}
	for rows.Next() {
		t, err := scanTransition(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transition: %w", err)
		}
		list = append(list, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transitions: %w", err)
	}

	return list, nil
}

// DeleteAll removes every transition
func (r *TransitionRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM phase_transitions"); err != nil {
		return fmt.Errorf("failed to delete transitions: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransition(row rowScanner) (*stats.PhaseTransition, error) {
	var t stats.PhaseTransition
	var from, to string
	var start, duration, pauseDuration int64
	var end, pauseStarted sql.NullInt64
	err := row.Scan(
		&t.ID,
		&from,
		&to,
		&start,
		&end,
		&duration,
		&t.WasPaused,
		&pauseDuration,
		&pauseStarted,
	)
	if err != nil {
		return nil, err
	}
	t.From = phase.Phase(from)
	t.To = phase.Phase(to)
	t.StartDate = fromUnix(start)
	t.EndDate = timePtr(end)
	t.Duration = time.Duration(duration)
	t.PauseDuration = time.Duration(pauseDuration)
	t.PauseStartedAt = timePtr(pauseStarted)
	return &t, nil
}
