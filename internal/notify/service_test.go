package notify_test

import (
	"context"
	"testing"
	"time"

	"github.com/rpggio/moveit/internal/domain/phase"
	"github.com/rpggio/moveit/internal/notify"
	"github.com/rpggio/moveit/internal/platform/clock"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type responder struct {
	mock.Mock
}

func (r *responder) ConfirmTransition(ctx context.Context) bool {
	return r.Called(ctx).Bool(0)
}

func (r *responder) ContinuePhase(ctx context.Context) bool {
	return r.Called(ctx).Bool(0)
}

func (r *responder) SnoozeTransition(ctx context.Context, d time.Duration) bool {
	return r.Called(ctx, d).Bool(0)
}

var now = time.Date(2024, 5, 6, 9, 0, 0, 0, time.UTC)

func TestService_ScheduledReminderIsDelivered(t *testing.T) {
	c := clock.NewFake(now)
	svc := notify.NewService(c, true, nil)

	svc.SchedulePhaseNotification(phase.Sitting, 30*time.Minute)
	require.Equal(t, 1, svc.Scheduled())
	require.Empty(t, svc.Notifications())

	c.Advance(30 * time.Minute)
	require.Zero(t, svc.Scheduled())

	inbox := svc.Notifications()
	require.Len(t, inbox, 1)
	require.Equal(t, notify.KindPhaseReminder, inbox[0].Kind)
	require.Equal(t, phase.Sitting, inbox[0].Phase)
	require.Equal(t, now.Add(30*time.Minute), inbox[0].DeliveredAt)
	require.NotEmpty(t, inbox[0].ID)
}

func TestService_TransitionPrompt(t *testing.T) {
	svc := notify.NewService(clock.NewFake(now), true, nil)

	svc.SendTransitionNotification(phase.Sitting, phase.Standing, true)
	inbox := svc.Notifications()
	require.Len(t, inbox, 1)
	require.Equal(t, notify.KindTransitionPrompt, inbox[0].Kind)
	require.Equal(t, phase.Standing, inbox[0].To)
	require.True(t, inbox[0].Sound)
	require.Equal(t, []notify.Action{notify.ActionTransition, notify.ActionContinue, notify.ActionSnooze}, inbox[0].Actions)
}

func TestService_DeclinesWithoutPermission(t *testing.T) {
	c := clock.NewFake(now)
	svc := notify.NewService(c, false, nil)

	svc.SchedulePhaseNotification(phase.Standing, time.Minute)
	svc.SendTransitionNotification(phase.Standing, phase.Sitting, false)
	c.Advance(time.Hour)

	require.Empty(t, svc.Notifications())
	require.Zero(t, c.Pending())
}

func TestService_CancelAll(t *testing.T) {
	c := clock.NewFake(now)
	svc := notify.NewService(c, true, nil)

	svc.SchedulePhaseNotification(phase.Sitting, time.Minute)
	svc.SendTransitionNotification(phase.Sitting, phase.Standing, true)
	svc.CancelAllNotifications()
	c.Advance(time.Hour)

	require.Empty(t, svc.Notifications())
	require.Zero(t, svc.Scheduled())
}

func TestService_CancelPhaseKeepsInbox(t *testing.T) {
	c := clock.NewFake(now)
	svc := notify.NewService(c, true, nil)

	svc.SendTransitionNotification(phase.Sitting, phase.Standing, true)
	svc.SchedulePhaseNotification(phase.Standing, time.Minute)
	svc.CancelPhaseNotifications()
	c.Advance(time.Hour)

	inbox := svc.Notifications()
	require.Len(t, inbox, 1)
	require.Equal(t, notify.KindTransitionPrompt, inbox[0].Kind)
	require.Zero(t, svc.Scheduled())
}

func TestService_RevokingPermissionDropsReminders(t *testing.T) {
	c := clock.NewFake(now)
	svc := notify.NewService(c, true, nil)

	svc.SchedulePhaseNotification(phase.Sitting, time.Minute)
	svc.SetPermitted(false)
	c.Advance(time.Hour)
	require.Empty(t, svc.Notifications())
}

func TestService_InboxIsCapped(t *testing.T) {
	svc := notify.NewService(clock.NewFake(now), true, nil)
	for i := 0; i < notify.InboxLimit+5; i++ {
		svc.SendTransitionNotification(phase.Sitting, phase.Standing, false)
	}
	require.Len(t, svc.Notifications(), notify.InboxLimit)
}

func TestService_HandleAction(t *testing.T) {
	ctx := context.Background()
	svc := notify.NewService(clock.NewFake(now), true, nil)

	_, err := svc.HandleAction(ctx, notify.ActionTransition, 0)
	require.ErrorIs(t, err, notify.ErrNoResponder)

	r := &responder{}
	r.On("ConfirmTransition", ctx).Return(true)
	r.On("ContinuePhase", ctx).Return(false)
	r.On("SnoozeTransition", ctx, 5*time.Minute).Return(true)
	svc.SetResponder(r)

	applied, err := svc.HandleAction(ctx, notify.ActionTransition, 0)
	require.NoError(t, err)
	require.True(t, applied)

	applied, err = svc.HandleAction(ctx, notify.ActionContinue, 0)
	require.NoError(t, err)
	require.False(t, applied)

	applied, err = svc.HandleAction(ctx, notify.ActionSnooze, 5*time.Minute)
	require.NoError(t, err)
	require.True(t, applied)

	_, err = svc.HandleAction(ctx, notify.Action("dismiss"), 0)
	require.ErrorIs(t, err, notify.ErrUnknownAction)
	r.AssertExpectations(t)
}

func TestParseAction(t *testing.T) {
	a, err := notify.ParseAction("snooze")
	require.NoError(t, err)
	require.Equal(t, notify.ActionSnooze, a)

	_, err = notify.ParseAction("later")
	require.ErrorIs(t, err, notify.ErrUnknownAction)
}
