package schedule

import (
	"testing"
	"time"

	"github.com/rpggio/moveit/internal/domain/phase"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	s := Default()
	require.NoError(t, s.Validate())
	require.Equal(t, 1800*time.Second, s.DurationFor(phase.Sitting))
	require.Equal(t, 900*time.Second, s.DurationFor(phase.Standing))
	require.Equal(t, 300*time.Second, s.SnoozeDuration)
	require.Zero(t, s.DurationFor(phase.Inactive))
}

func TestValidate(t *testing.T) {
	s := Default()
	s.StandingDuration = 0
	require.ErrorIs(t, s.Validate(), ErrInvalidSchedule)

	s = Default()
	s.SnoozeDuration = -time.Second
	require.ErrorIs(t, s.Validate(), ErrInvalidSchedule)

	s = Default()
	s.WorkEndTime = "25:99"
	require.ErrorIs(t, s.Validate(), ErrInvalidSchedule)
}
