package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/rpggio/moveit/internal/app"
	"github.com/rpggio/moveit/internal/cli/formatter"
	"github.com/rpggio/moveit/internal/config"
	"github.com/rpggio/moveit/internal/domain/phase"
	"github.com/rpggio/moveit/internal/domain/session"
	"github.com/rpggio/moveit/internal/domain/stats"
	"github.com/rpggio/moveit/internal/platform/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testStart = time.Date(2024, 5, 6, 9, 0, 0, 0, time.Local)

// testApp points an App at a fresh database file and a fake clock.
func testApp(t *testing.T) (*App, *clock.Fake) {
	t.Helper()
	formatter.Plain = true

	cfg := config.Default()
	cfg.DB.Path = filepath.Join(t.TempDir(), "moveit.db")
	clk := clock.NewFake(testStart)
	return &App{Config: cfg, Clock: clk}, clk
}

// seedDay books 40m sitting and 20m standing, and two closed sessions.
func seedDay(t *testing.T, a *App, clk *clock.Fake) {
	t.Helper()
	ctx := context.Background()

	store, err := app.OpenStore(a.Config.DB.Path)
	require.NoError(t, err)
	defer store.Close()

	svc := store.StatsService(clk, nil)
	sessions := store.SessionService(clk, nil)

	svc.StartTransition(ctx, phase.Inactive, phase.Sitting)
	_, err = sessions.StartSession(ctx, phase.Sitting)
	require.NoError(t, err)
	clk.Advance(40 * time.Minute)

	svc.StartTransition(ctx, phase.Sitting, phase.Standing)
	_, err = sessions.StartSession(ctx, phase.Standing)
	require.NoError(t, err)
	clk.Advance(20 * time.Minute)

	svc.EndTransition(ctx)
	sessions.EndCurrentSession(ctx)
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, a *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(a)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func TestStatsCmd_Today(t *testing.T) {
	a, clk := testApp(t)
	seedDay(t, a, clk)

	out, err := executeCmd(t, a, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "STATISTICS: TODAY")
	assert.Contains(t, out, "40m")
	assert.Contains(t, out, "20m")
	assert.Contains(t, out, "Balance")
}

func TestStatsCmd_JSON(t *testing.T) {
	a, clk := testApp(t)
	seedDay(t, a, clk)

	out, err := executeCmd(t, a, "stats", "--period", "week", "--json")
	require.NoError(t, err)

	var payload struct {
		Summary stats.Summary           `json:"summary"`
		Daily   []stats.DailyStatistics `json:"daily"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &payload))
	assert.Equal(t, stats.PeriodWeek, payload.Summary.Period)
	assert.Equal(t, 40*time.Minute, payload.Summary.TotalSitting)
	assert.Equal(t, 20*time.Minute, payload.Summary.TotalStanding)
	assert.Equal(t, 2, payload.Summary.Transitions)
	assert.InDelta(t, 66.67, payload.Summary.BalanceScore, 0.01)
	require.Len(t, payload.Daily, 1)
}

func TestStatsCmd_InvalidPeriod(t *testing.T) {
	a, _ := testApp(t)

	_, err := executeCmd(t, a, "stats", "--period", "year")
	require.ErrorIs(t, err, stats.ErrInvalidPeriod)
}

func TestHistoryCmd(t *testing.T) {
	a, clk := testApp(t)
	seedDay(t, a, clk)

	out, err := executeCmd(t, a, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "SESSIONS")
	assert.Contains(t, out, "2 sessions: 1 sitting, 1 standing")

	clk.Advance(48 * time.Hour)
	out, err = executeCmd(t, a, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "No sessions recorded.")

	out, err = executeCmd(t, a, "history", "--days", "3", "--json")
	require.NoError(t, err)
	var records []session.Record
	require.NoError(t, json.Unmarshal([]byte(out), &records))
	assert.Len(t, records, 2)

	_, err = executeCmd(t, a, "history", "--days", "0")
	require.Error(t, err)
}

func TestScheduleCmd_ShowDefault(t *testing.T) {
	a, _ := testApp(t)

	out, err := executeCmd(t, a, "schedule", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "SCHEDULE")
	assert.Contains(t, out, "30m")
	assert.Contains(t, out, "15m")
}

func TestScheduleCmd_Set(t *testing.T) {
	a, _ := testApp(t)

	_, err := executeCmd(t, a, "schedule", "set", "--standing", "20m", "--ask=false")
	require.NoError(t, err)

	store, err := app.OpenStore(a.Config.DB.Path)
	require.NoError(t, err)
	defer store.Close()
	saved, err := store.Schedules.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 20*time.Minute, saved.StandingDuration)
	assert.Equal(t, 30*time.Minute, saved.SittingDuration)
	assert.False(t, saved.AskBeforeTransition)
	assert.True(t, saved.NotificationsEnabled)
}

func TestScheduleCmd_SetRejectsInvalid(t *testing.T) {
	a, _ := testApp(t)

	_, err := executeCmd(t, a, "schedule", "set", "--sitting", "0s")
	require.Error(t, err)

	_, err = executeCmd(t, a, "schedule", "set", "--work-start", "9am")
	require.Error(t, err)

	_, err = executeCmd(t, a, "schedule", "set")
	require.Error(t, err)
}

func TestResetStatsCmd(t *testing.T) {
	a, clk := testApp(t)
	seedDay(t, a, clk)

	_, err := executeCmd(t, a, "reset-stats")
	require.Error(t, err)

	out, err := executeCmd(t, a, "reset-stats", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "cleared")

	out, err = executeCmd(t, a, "stats", "--json")
	require.NoError(t, err)
	var payload struct {
		Summary stats.Summary `json:"summary"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &payload))
	assert.Zero(t, payload.Summary.TotalSitting)
	assert.Zero(t, payload.Summary.Transitions)

	out, err = executeCmd(t, a, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "No sessions recorded.")
}

func TestServeCmd(t *testing.T) {
	a, _ := testApp(t)

	var got config.Config
	a.Serve = func(_ context.Context, cfg config.Config) error {
		got = cfg
		return nil
	}

	_, err := executeCmd(t, a, "serve", "--transport", "http", "--db", "/tmp/other.db")
	require.NoError(t, err)
	assert.Equal(t, "http", got.Transport.Mode)
	assert.Equal(t, "/tmp/other.db", got.DB.Path)

	_, err = executeCmd(t, a, "serve", "--transport", "carrier-pigeon")
	require.Error(t, err)
}
