package stats

import (
	"time"

	"github.com/rpggio/moveit/internal/domain/phase"
)

// PhaseTransition is the statistics-of-record interval spent in To, entered
// from From.
type PhaseTransition struct {
	ID             string        `json:"id"`
	From           phase.Phase   `json:"from_phase"`
	To             phase.Phase   `json:"to_phase"`
	StartDate      time.Time     `json:"start_date"`
	EndDate        *time.Time    `json:"end_date,omitempty"`
	Duration       time.Duration `json:"duration"`
	WasPaused      bool          `json:"was_paused"`
	PauseDuration  time.Duration `json:"pause_duration"`
	PauseStartedAt *time.Time    `json:"pause_started_at,omitempty"`
}

// IsOpen reports whether the transition has not been closed yet.
func (t PhaseTransition) IsOpen() bool {
	return t.EndDate == nil
}

// ActiveDuration is the closed duration minus time spent paused.
func (t PhaseTransition) ActiveDuration() time.Duration {
	active := t.Duration - t.PauseDuration
	if active < 0 {
		return 0
	}
	return active
}

// DailyStatistics is the durable per-day total, keyed by local calendar day.
type DailyStatistics struct {
	Date                string        `json:"date"`
	SittingDuration     time.Duration `json:"sitting_duration"`
	StandingDuration    time.Duration `json:"standing_duration"`
	PausedDuration      time.Duration `json:"paused_duration"`
	NumberOfTransitions int           `json:"number_of_transitions"`
	LastUpdated         time.Time     `json:"last_updated"`
}

// ActiveDuration is sitting plus standing time.
func (d DailyStatistics) ActiveDuration() time.Duration {
	return d.SittingDuration + d.StandingDuration
}

// DailyStats is the live today view derived from the session log.
type DailyStats struct {
	SittingTime  time.Duration `json:"sitting_time"`
	StandingTime time.Duration `json:"standing_time"`
	LastUpdated  time.Time     `json:"last_updated"`
}

// TotalTime is sitting plus standing time.
func (d DailyStats) TotalTime() time.Duration {
	return d.SittingTime + d.StandingTime
}

// SittingPercentage is the sitting share of the total, 0.5 when nothing was
// recorded yet.
func (d DailyStats) SittingPercentage() float64 {
	total := d.TotalTime()
	if total == 0 {
		return 0.5
	}
	return float64(d.SittingTime) / float64(total)
}

// StandingPercentage is 1 - SittingPercentage.
func (d DailyStats) StandingPercentage() float64 {
	return 1 - d.SittingPercentage()
}

// Period selects a reporting window.
type Period string

const (
	PeriodToday Period = "today"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
)

// Days is the window length in calendar days, today included.
func (p Period) Days() int {
	switch p {
	case PeriodWeek:
		return 7
	case PeriodMonth:
		return 30
	default:
		return 1
	}
}

// ParsePeriod resolves a period name; empty means today.
func ParsePeriod(value string) (Period, error) {
	switch Period(value) {
	case "", PeriodToday:
		return PeriodToday, nil
	case PeriodWeek:
		return PeriodWeek, nil
	case PeriodMonth:
		return PeriodMonth, nil
	default:
		return "", ErrInvalidPeriod
	}
}

// DailyAverage holds per-day means over a window.
type DailyAverage struct {
	Days        int           `json:"days"`
	Sitting     time.Duration `json:"sitting"`
	Standing    time.Duration `json:"standing"`
	Paused      time.Duration `json:"paused"`
	Transitions float64       `json:"transitions"`
}

// Summary is the derived report for a period.
type Summary struct {
	Period            Period        `json:"period"`
	Days              int           `json:"days"`
	TotalSitting      time.Duration `json:"total_sitting"`
	TotalStanding     time.Duration `json:"total_standing"`
	TotalPaused       time.Duration `json:"total_paused"`
	AverageSitting    time.Duration `json:"average_sitting"`
	AverageStanding   time.Duration `json:"average_standing"`
	AveragePaused     time.Duration `json:"average_paused"`
	Transitions       int           `json:"transitions"`
	ProductivityScore float64       `json:"productivity_score"`
	BalanceScore      float64       `json:"balance_score"`
}
