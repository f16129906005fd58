package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/moveit/internal/coordinator"
	"github.com/rpggio/moveit/internal/domain/schedule"
	"github.com/rpggio/moveit/internal/domain/session"
	"github.com/rpggio/moveit/internal/domain/stats"
	"github.com/rpggio/moveit/internal/notify"
	"github.com/rpggio/moveit/internal/platform/clock"
	"github.com/rpggio/moveit/internal/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	clock    *clock.Fake
	timer    *coordinator.Coordinator
	notifier *notify.Service
	session  *sdkmcp.ClientSession
}

func newFixture(t *testing.T, ask bool) *fixture {
	t.Helper()
	ctx := context.Background()

	db, err := sqlite.New(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())

	clk := clock.NewFake(time.Date(2024, 5, 6, 9, 0, 0, 0, time.Local))
	sched := schedule.Default()
	sched.SittingDuration = 5 * time.Second
	sched.AskBeforeTransition = ask

	notifier := notify.NewService(clk, true, nil)
	timer := coordinator.New(ctx, coordinator.Deps{
		Clock:     clk,
		Schedules: sqlite.NewScheduleRepository(db),
		Sessions:  session.NewService(sqlite.NewSessionRepository(db), clk, nil),
		Stats:     stats.NewService(sqlite.NewTransitionRepository(db), sqlite.NewDailyRepository(db), clk, nil),
		Notifier:  notifier,
		Fallback:  sched,
	}, nil)
	notifier.SetResponder(timer)

	server := NewServer(Config{Timer: timer, Notifications: notifier})
	serverTransport, clientTransport := sdkmcp.NewInMemoryTransports()
	serverSession, err := server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "1.0.0"}, nil)
	clientSession, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)

	t.Cleanup(func() {
		clientSession.Close()
		serverSession.Close()
		timer.Close(ctx)
		db.Close()
	})

	return &fixture{clock: clk, timer: timer, notifier: notifier, session: clientSession}
}

func (f *fixture) call(t *testing.T, name string, args map[string]any) *sdkmcp.CallToolResult {
	t.Helper()
	result, err := f.session.CallTool(context.Background(), &sdkmcp.CallToolParams{
		Name:      name,
		Arguments: args,
	})
	require.NoError(t, err, "CallTool %s", name)
	require.NotEmpty(t, result.Content)
	return result
}

func (f *fixture) callOK(t *testing.T, name string, args map[string]any, out any) {
	t.Helper()
	result := f.call(t, name, args)
	require.False(t, result.IsError, "tool %s failed: %s", name, textOf(t, result))
	require.NoError(t, json.Unmarshal([]byte(textOf(t, result)), out))
}

func (f *fixture) callError(t *testing.T, name string, args map[string]any) APIError {
	t.Helper()
	result := f.call(t, name, args)
	require.True(t, result.IsError, "tool %s should fail", name)
	var apiErr APIError
	require.NoError(t, json.Unmarshal([]byte(textOf(t, result)), &apiErr))
	return apiErr
}

func textOf(t *testing.T, result *sdkmcp.CallToolResult) string {
	t.Helper()
	text, ok := result.Content[0].(*sdkmcp.TextContent)
	require.True(t, ok, "expected text content")
	return text.Text
}

func TestTools_ListsCatalog(t *testing.T) {
	f := newFixture(t, false)

	result, err := f.session.ListTools(context.Background(), nil)
	require.NoError(t, err)

	names := make(map[string]bool, len(result.Tools))
	for _, tool := range result.Tools {
		names[tool.Name] = true
		require.NotEmpty(t, tool.Description, tool.Name)
	}
	require.Len(t, names, len(buildToolCatalog()))
	for _, name := range []string{"start_session", "answer_prompt", "get_statistics", "reset_statistics"} {
		require.True(t, names[name], name)
	}
}

func TestTools_StartSessionAndState(t *testing.T) {
	f := newFixture(t, false)

	var started CommandResponse
	f.callOK(t, "start_session", map[string]any{"phase": "standing"}, &started)
	require.True(t, started.Applied)
	require.Equal(t, "standing", started.State.Phase)
	require.Equal(t, "15:00", started.State.Remaining)

	f.clock.Advance(time.Minute)

	var state StateResponse
	f.callOK(t, "get_state", nil, &state)
	require.Equal(t, "running", state.Status)
	require.Equal(t, int64(14*60), state.RemainingSeconds)

	var paused CommandResponse
	f.callOK(t, "pause_session", nil, &paused)
	require.True(t, paused.Applied)
	require.Equal(t, "paused", paused.State.DisplayPhase)

	var again CommandResponse
	f.callOK(t, "pause_session", nil, &again)
	require.False(t, again.Applied)
}

func TestTools_InvalidPhase(t *testing.T) {
	f := newFixture(t, false)

	apiErr := f.callError(t, "start_session", map[string]any{"phase": "lying"})
	require.Equal(t, "INVALID_PHASE", apiErr.Code)

	var state StateResponse
	f.callOK(t, "get_state", nil, &state)
	require.Equal(t, "inactive", state.Phase)
}

func TestTools_AutoAdvance(t *testing.T) {
	f := newFixture(t, false)

	var started CommandResponse
	f.callOK(t, "start_session", map[string]any{"phase": "sitting"}, &started)
	f.clock.Advance(5 * time.Second)

	var state StateResponse
	f.callOK(t, "get_state", nil, &state)
	require.Equal(t, "standing", state.Phase)
	require.False(t, state.AwaitingConfirmation)

	var sessions []SessionResponse
	f.callOK(t, "get_today_sessions", nil, &sessions)
	require.Len(t, sessions, 1)
	require.Equal(t, "sitting", sessions[0].Phase)
	require.Equal(t, int64(5), sessions[0].DurationSeconds)
}

func TestTools_AnswerPrompt(t *testing.T) {
	f := newFixture(t, true)

	var started CommandResponse
	f.callOK(t, "start_session", map[string]any{"phase": "sitting"}, &started)
	f.clock.Advance(5 * time.Second)

	var state StateResponse
	f.callOK(t, "get_state", nil, &state)
	require.True(t, state.AwaitingConfirmation)
	require.NotNil(t, state.PendingTransition)
	require.Equal(t, "sitting", state.PendingTransition.From)
	require.Equal(t, "standing", state.PendingTransition.To)
	require.Len(t, f.notifier.Notifications(), 1)

	var snoozed CommandResponse
	f.callOK(t, "answer_prompt", map[string]any{"action": "snooze", "seconds": 60}, &snoozed)
	require.True(t, snoozed.Applied)
	require.True(t, snoozed.State.IsPaused)

	f.clock.Advance(time.Minute)
	prompts := 0
	for _, n := range f.notifier.Notifications() {
		if n.Kind == notify.KindTransitionPrompt {
			prompts++
		}
	}
	require.Equal(t, 2, prompts)

	var confirmed CommandResponse
	f.callOK(t, "answer_prompt", map[string]any{"action": "transition"}, &confirmed)
	require.True(t, confirmed.Applied)
	require.Equal(t, "standing", confirmed.State.Phase)
	require.False(t, confirmed.State.AwaitingConfirmation)

	apiErr := f.callError(t, "answer_prompt", map[string]any{"action": "dismiss"})
	require.Equal(t, "INVALID_ACTION", apiErr.Code)
}

func TestTools_UpdateSchedule(t *testing.T) {
	f := newFixture(t, false)

	var updated ScheduleResponse
	f.callOK(t, "update_schedule", map[string]any{"standing_minutes": 20, "sound_enabled": false}, &updated)
	require.Equal(t, 20.0, updated.StandingMinutes)
	require.False(t, updated.SoundEnabled)
	require.Equal(t, 20*time.Minute, f.timer.Schedule().StandingDuration)

	apiErr := f.callError(t, "update_schedule", map[string]any{"sitting_minutes": 0})
	require.Equal(t, "INVALID_SCHEDULE", apiErr.Code)
}

func TestHandle_ConcurrentScheduleUpdatesKeepBothFields(t *testing.T) {
	f := newFixture(t, false)
	h := NewHandler(f.timer, f.notifier)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 1; i <= 10; i++ {
		sitting := json.RawMessage(fmt.Sprintf(`{"sitting_minutes":%d}`, 20+i))
		standing := json.RawMessage(fmt.Sprintf(`{"standing_minutes":%d}`, 5+i))
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := h.Handle(ctx, "update_schedule", sitting)
			assert.NoError(t, err)
		}()
		go func() {
			defer wg.Done()
			_, err := h.Handle(ctx, "update_schedule", standing)
			assert.NoError(t, err)
		}()
		wg.Wait()

		got := f.timer.Schedule()
		require.Equal(t, time.Duration(20+i)*time.Minute, got.SittingDuration)
		require.Equal(t, time.Duration(5+i)*time.Minute, got.StandingDuration)
	}
}

func TestTools_Statistics(t *testing.T) {
	f := newFixture(t, false)

	var started CommandResponse
	f.callOK(t, "start_session", map[string]any{"phase": "sitting"}, &started)
	f.clock.Advance(5 * time.Second)

	var summary StatisticsResponse
	f.callOK(t, "get_statistics", map[string]any{"period": "today"}, &summary)
	require.Equal(t, "today", summary.Period)
	require.Equal(t, int64(5), summary.TotalSittingSeconds)
	require.Equal(t, 2, summary.Transitions)

	apiErr := f.callError(t, "get_statistics", map[string]any{"period": "decade"})
	require.Equal(t, "INVALID_PERIOD", apiErr.Code)

	var reset StatisticsResponse
	f.callOK(t, "reset_statistics", nil, &reset)
	require.Zero(t, reset.TotalSittingSeconds)
	require.Zero(t, reset.Transitions)
}

func TestDocsResource(t *testing.T) {
	f := newFixture(t, false)

	result, err := f.session.ReadResource(context.Background(), &sdkmcp.ReadResourceParams{URI: "moveit://docs/guide"})
	require.NoError(t, err)
	require.Len(t, result.Contents, 1)
	require.Contains(t, result.Contents[0].Text, "# moveit guide")
}

func TestHandle_InvalidParams(t *testing.T) {
	f := newFixture(t, false)
	h := NewHandler(f.timer, f.notifier)

	_, err := h.Handle(context.Background(), "start_session", json.RawMessage(`{"phase":`))
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "INVALID_PARAMS", apiErr.Code)

	_, err = h.Handle(context.Background(), "fly", nil)
	require.Error(t, err)
	require.Nil(t, MapError(err))
}
