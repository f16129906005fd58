package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rpggio/moveit/internal/domain/schedule"
	"github.com/rpggio/moveit/internal/repository"
)

// ScheduleRepository implements schedule.Repository for SQLite
type ScheduleRepository struct {
	db *DB
}

// NewScheduleRepository creates a new ScheduleRepository
func NewScheduleRepository(db *DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

// Load returns the stored schedule, or repository.ErrNotFound before the first save.
func (r *ScheduleRepository) Load(ctx context.Context) (*schedule.Schedule, error) {
	query := `
		SELECT
			sitting_duration, standing_duration, notifications_enabled,
			sound_enabled, auto_start, ask_before_transition,
			snooze_duration, work_start_time, work_end_time
		FROM schedule
		WHERE id = 1
	`

	var s schedule.Schedule
	var sitting, standing, snooze int64
	err := r.db.QueryRowContext(ctx, query).Scan(
		&sitting,
		&standing,
		&s.NotificationsEnabled,
		&s.SoundEnabled,
		&s.AutoStart,
		&s.AskBeforeTransition,
		&snooze,
		&s.WorkStartTime,
		&s.WorkEndTime,
	)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load schedule: %w", err)
	}

	s.SittingDuration = time.Duration(sitting)
	s.StandingDuration = time.Duration(standing)
	s.SnoozeDuration = time.Duration(snooze)
	return &s, nil
}

// Save replaces the stored schedule
func (r *ScheduleRepository) Save(ctx context.Context, s schedule.Schedule) error {
	query := `
		INSERT INTO schedule (
			id, sitting_duration, standing_duration, notifications_enabled,
			sound_enabled, auto_start, ask_before_transition,
			snooze_duration, work_start_time, work_end_time, updated_at
		) VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			sitting_duration = excluded.sitting_duration,
			standing_duration = excluded.standing_duration,
			notifications_enabled = excluded.notifications_enabled,
			sound_enabled = excluded.sound_enabled,
			auto_start = excluded.auto_start,
			ask_before_transition = excluded.ask_before_transition,
			snooze_duration = excluded.snooze_duration,
			work_start_time = excluded.work_start_time,
			work_end_time = excluded.work_end_time,
			updated_at = excluded.updated_at
	`

	_, err := r.db.ExecContext(ctx, query,
		int64(s.SittingDuration),
		int64(s.StandingDuration),
		s.NotificationsEnabled,
		s.SoundEnabled,
		s.AutoStart,
		s.AskBeforeTransition,
		int64(s.SnoozeDuration),
		s.WorkStartTime,
		s.WorkEndTime,
		toUnix(time.Now()),
	)
	if err != nil {
		return fmt.Errorf("failed to save schedule: %w", err)
	}

	return nil
}
