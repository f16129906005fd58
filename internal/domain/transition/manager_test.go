package transition_test

import (
	"testing"
	"time"

	"github.com/rpggio/moveit/internal/domain/phase"
	"github.com/rpggio/moveit/internal/domain/transition"
	"github.com/rpggio/moveit/internal/platform/clock"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 5, 6, 9, 0, 0, 0, time.UTC)

func TestManager_AutoAdvanceStaysIdle(t *testing.T) {
	m := transition.NewManager(clock.NewFake(now), nil)

	p := m.HandlePhaseCompleted(phase.Sitting, false)
	require.Equal(t, phase.Sitting, p.From)
	require.Equal(t, phase.Standing, p.To)
	require.Equal(t, now, p.Timestamp)

	require.Equal(t, transition.StateIdle, m.State())
	require.False(t, m.IsAwaitingConfirmation())
	_, ok := m.Pending()
	require.False(t, ok)
}

func TestManager_AskHoldsTransition(t *testing.T) {
	m := transition.NewManager(clock.NewFake(now), nil)

	p := m.HandlePhaseCompleted(phase.Standing, true)
	require.Equal(t, phase.Sitting, p.To)
	require.True(t, m.IsAwaitingConfirmation())

	held, ok := m.Pending()
	require.True(t, ok)
	require.Equal(t, p, held)

	confirmed, ok := m.Confirm()
	require.True(t, ok)
	require.Equal(t, p, confirmed)
	require.Equal(t, transition.StateIdle, m.State())

	_, ok = m.Confirm()
	require.False(t, ok)
}

func TestManager_Snooze(t *testing.T) {
	m := transition.NewManager(clock.NewFake(now), nil)

	_, ok := m.Snooze(5 * time.Minute)
	require.False(t, ok)

	m.HandlePhaseCompleted(phase.Sitting, true)
	p, ok := m.Snooze(5 * time.Minute)
	require.True(t, ok)
	require.Equal(t, phase.Standing, p.To)
	require.False(t, m.IsAwaitingConfirmation())
	_, held := m.Pending()
	require.False(t, held)
}

func TestManager_CancelIsUnconditional(t *testing.T) {
	m := transition.NewManager(clock.NewFake(now), nil)
	m.Cancel()
	require.Equal(t, transition.StateIdle, m.State())

	m.HandlePhaseCompleted(phase.Sitting, true)
	m.Cancel()
	require.False(t, m.IsAwaitingConfirmation())
	_, ok := m.Pending()
	require.False(t, ok)
}
