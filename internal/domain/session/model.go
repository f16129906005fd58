package session

import (
	"time"

	"github.com/rpggio/moveit/internal/domain/phase"
)

// Record is one continuous interval spent in a working phase.
type Record struct {
	ID        string        `json:"id"`
	Phase     phase.Phase   `json:"phase"`
	StartDate time.Time     `json:"start_date"`
	EndDate   *time.Time    `json:"end_date,omitempty"`
	Duration  time.Duration `json:"duration"`
}

// IsOpen reports whether the record is still running.
func (r Record) IsOpen() bool {
	return r.EndDate == nil
}

// Elapsed returns the closed duration, or the live duration for an open record.
func (r Record) Elapsed(now time.Time) time.Duration {
	if r.EndDate != nil {
		return r.Duration
	}
	if d := now.Sub(r.StartDate); d > 0 {
		return d
	}
	return 0
}
