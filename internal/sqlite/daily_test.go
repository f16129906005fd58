package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/rpggio/moveit/internal/domain/phase"
	"github.com/rpggio/moveit/internal/domain/stats"
	"github.com/rpggio/moveit/internal/platform/clock"
	"github.com/rpggio/moveit/internal/repository"
	"github.com/stretchr/testify/require"
)

func TestDailyRepository_UpsertGet(t *testing.T) {
	ctx := context.Background()
	repo := NewDailyRepository(NewTestDB(t))
	now := time.Date(2024, 5, 6, 12, 0, 0, 0, time.Local)

	_, err := repo.Get(ctx, "2024-05-06")
	require.ErrorIs(t, err, repository.ErrNotFound)

	day := &stats.DailyStatistics{Date: "2024-05-06", SittingDuration: time.Hour, NumberOfTransitions: 2, LastUpdated: now}
	require.NoError(t, repo.Upsert(ctx, day))

	day.StandingDuration = 20 * time.Minute
	day.PausedDuration = 5 * time.Minute
	day.NumberOfTransitions = 3
	require.NoError(t, repo.Upsert(ctx, day))

	loaded, err := repo.Get(ctx, "2024-05-06")
	require.NoError(t, err)
	require.Equal(t, time.Hour, loaded.SittingDuration)
	require.Equal(t, 20*time.Minute, loaded.StandingDuration)
	require.Equal(t, 5*time.Minute, loaded.PausedDuration)
	require.Equal(t, 3, loaded.NumberOfTransitions)
	require.True(t, loaded.LastUpdated.Equal(now))

	require.ErrorIs(t, repo.Upsert(ctx, &stats.DailyStatistics{}), repository.ErrInvalidInput)
}

func TestDailyRepository_ListBetween(t *testing.T) {
	ctx := context.Background()
	repo := NewDailyRepository(NewTestDB(t))
	for _, date := range []string{"2024-04-29", "2024-04-30", "2024-05-03", "2024-05-06", "2024-05-07"} {
		require.NoError(t, repo.Upsert(ctx, &stats.DailyStatistics{Date: date, LastUpdated: time.Now()}))
	}

	list, err := repo.ListBetween(ctx, "2024-04-30", "2024-05-06")
	require.NoError(t, err)
	require.Len(t, list, 3)
	require.Equal(t, "2024-04-30", list[0].Date)
	require.Equal(t, "2024-05-06", list[2].Date)

	require.NoError(t, repo.DeleteAll(ctx))
	list, err = repo.ListBetween(ctx, "2024-01-01", "2024-12-31")
	require.NoError(t, err)
	require.Empty(t, list)
}

// Statistics survive a restart: a second aggregator over the same database
// sees the first one's totals and closes its dangling transition.
func TestStatisticsRoundTripThroughStore(t *testing.T) {
	ctx := context.Background()
	db := NewTestDB(t)
	c := clock.NewFake(time.Date(2024, 5, 6, 9, 0, 0, 0, time.Local))

	first := stats.NewService(NewTransitionRepository(db), NewDailyRepository(db), c, nil)
	first.StartTransition(ctx, phase.Sitting, phase.Standing)
	c.Advance(100 * time.Second)
	first.StartTransition(ctx, phase.Standing, phase.Sitting)
	c.Advance(time.Minute)

	second := stats.NewService(NewTransitionRepository(db), NewDailyRepository(db), c, nil)
	require.NoError(t, second.Restore(ctx))
	_, err := NewTransitionRepository(db).GetOpen(ctx)
	require.ErrorIs(t, err, repository.ErrNotFound)

	today := second.LoadOrCreateToday(ctx)
	require.Equal(t, 100*time.Second, today.StandingDuration)
	require.Zero(t, today.SittingDuration)
	require.Equal(t, 2, today.NumberOfTransitions)
}
