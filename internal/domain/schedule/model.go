package schedule

import (
	"errors"
	"time"

	"github.com/rpggio/moveit/internal/domain/phase"
)

// ErrInvalidSchedule indicates a schedule with a non-positive duration.
var ErrInvalidSchedule = errors.New("invalid schedule")

const (
	DefaultSittingDuration  = 30 * time.Minute
	DefaultStandingDuration = 15 * time.Minute
	DefaultSnoozeDuration   = 5 * time.Minute
	DefaultWorkStart        = "09:00"
	DefaultWorkEnd          = "17:00"
)

// Schedule configures phase lengths and reminder behaviour.
// WorkStartTime and WorkEndTime are advisory and not used by the timer.
type Schedule struct {
	SittingDuration      time.Duration `json:"sitting_duration"`
	StandingDuration     time.Duration `json:"standing_duration"`
	NotificationsEnabled bool          `json:"notifications_enabled"`
	SoundEnabled         bool          `json:"sound_enabled"`
	AutoStart            bool          `json:"auto_start"`
	AskBeforeTransition  bool          `json:"ask_before_transition"`
	SnoozeDuration       time.Duration `json:"snooze_duration"`
	WorkStartTime        string        `json:"work_start_time"`
	WorkEndTime          string        `json:"work_end_time"`
}

// Default returns the out-of-the-box schedule.
func Default() Schedule {
	return Schedule{
		SittingDuration:      DefaultSittingDuration,
		StandingDuration:     DefaultStandingDuration,
		NotificationsEnabled: true,
		SoundEnabled:         true,
		AutoStart:            false,
		AskBeforeTransition:  true,
		SnoozeDuration:       DefaultSnoozeDuration,
		WorkStartTime:        DefaultWorkStart,
		WorkEndTime:          DefaultWorkEnd,
	}
}

// DurationFor returns the configured length of p; zero for non-working phases.
func (s Schedule) DurationFor(p phase.Phase) time.Duration {
	switch p {
	case phase.Sitting:
		return s.SittingDuration
	case phase.Standing:
		return s.StandingDuration
	default:
		return 0
	}
}

// Validate checks that every duration is positive and the work hours parse.
func (s Schedule) Validate() error {
	if s.SittingDuration <= 0 || s.StandingDuration <= 0 || s.SnoozeDuration <= 0 {
		return ErrInvalidSchedule
	}
	for _, hhmm := range []string{s.WorkStartTime, s.WorkEndTime} {
		if hhmm == "" {
			continue
		}
		if _, err := time.Parse("15:04", hhmm); err != nil {
			return ErrInvalidSchedule
		}
	}
	return nil
}
