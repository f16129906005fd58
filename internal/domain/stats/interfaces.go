package stats

import (
	"context"
	"time"
)

// TransitionRepository persists phase transitions.
type TransitionRepository interface {
	Create(ctx context.Context, t *PhaseTransition) error
	Update(ctx context.Context, t *PhaseTransition) error
	GetOpen(ctx context.Context) (*PhaseTransition, error)
	ListBetween(ctx context.Context, from, to time.Time) ([]PhaseTransition, error)
	DeleteAll(ctx context.Context) error
}

// DailyRepository persists per-day statistics.
type DailyRepository interface {
	Get(ctx context.Context, date string) (*DailyStatistics, error)
	Upsert(ctx context.Context, day *DailyStatistics) error
	ListBetween(ctx context.Context, fromDate, toDate string) ([]DailyStatistics, error)
	DeleteAll(ctx context.Context) error
}
