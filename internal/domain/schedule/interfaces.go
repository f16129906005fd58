package schedule

import "context"

// Repository persists the schedule as a single record.
type Repository interface {
	Load(ctx context.Context) (*Schedule, error)
	Save(ctx context.Context, s Schedule) error
}
