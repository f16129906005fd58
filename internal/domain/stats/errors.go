package stats

import "errors"

var (
	// ErrInvalidPeriod indicates an unknown reporting period.
	ErrInvalidPeriod = errors.New("invalid period")
)
