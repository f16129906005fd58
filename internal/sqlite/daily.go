package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rpggio/moveit/internal/domain/stats"
	"github.com/rpggio/moveit/internal/repository"
)

// DailyRepository implements stats.DailyRepository for SQLite
type DailyRepository struct {
	db *DB
}

// NewDailyRepository creates a new DailyRepository
func NewDailyRepository(db *DB) *DailyRepository {
	return &DailyRepository{db: db}
}

const dailyColumns = `
	date, sitting_duration, standing_duration, paused_duration,
	number_of_transitions, last_updated
`

// Get returns the record for date ("2006-01-02")
func (r *DailyRepository) Get(ctx context.Context, date string) (*stats.DailyStatistics, error) {
	query := `SELECT ` + dailyColumns + ` FROM daily_statistics WHERE date = ?`

	day, err := scanDaily(r.db.QueryRowContext(ctx, query, date))
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get daily statistics: %w", err)
	}
	return day, nil
}

// Upsert inserts or replaces the record for day.Date
func (r *DailyRepository) Upsert(ctx context.Context, day *stats.DailyStatistics) error {
	if day.Date == "" {
		return repository.ErrInvalidInput
	}
	query := `
		INSERT INTO daily_statistics (` + dailyColumns + `)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET
			sitting_duration = excluded.sitting_duration,
			standing_duration = excluded.standing_duration,
			paused_duration = excluded.paused_duration,
			number_of_transitions = excluded.number_of_transitions,
			last_updated = excluded.last_updated
	`

	_, err := r.db.ExecContext(ctx, query,
		day.Date,
		int64(day.SittingDuration),
		int64(day.StandingDuration),
		int64(day.PausedDuration),
		day.NumberOfTransitions,
		toUnix(day.LastUpdated),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert daily statistics: %w", err)
	}
	return nil
}

// ListBetween returns records for days in [fromDate, toDate], oldest first
func (r *DailyRepository) ListBetween(ctx context.Context, fromDate, toDate string) ([]stats.DailyStatistics, error) {
	query := `SELECT ` + dailyColumns + `
		FROM daily_statistics
		WHERE date >= ? AND date <= ?
		ORDER BY date
	`

	rows, err := r.db.QueryContext(ctx, query, fromDate, toDate)
	if err != nil {
		return nil, fmt.Errorf("failed to list daily statistics: %w", err)
	}
	defer rows.Close()

	list := []stats.DailyStatistics{}
	for rows.Next() {
		day, err := scanDaily(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan daily statistics: %w", err)
		}
		list = append(list, *day)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate daily statistics: %w", err)
	}
	return list, nil
}

// DeleteAll removes every daily record
func (r *DailyRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM daily_statistics"); err != nil {
		return fmt.Errorf("failed to delete daily statistics: %w", err)
	}
	return nil
}

func scanDaily(row rowScanner) (*stats.DailyStatistics, error) {
	var d stats.DailyStatistics
	var sitting, standing, paused, updated int64
	err := row.Scan(&d.Date, &sitting, &standing, &paused, &d.NumberOfTransitions, &updated)
	if err != nil {
		return nil, err
	}
	d.SittingDuration = time.Duration(sitting)
	d.StandingDuration = time.Duration(standing)
	d.PausedDuration = time.Duration(paused)
	d.LastUpdated = fromUnix(updated)
	return &d, nil
}
