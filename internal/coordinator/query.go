package coordinator

import (
	"context"
	"time"

	"github.com/rpggio/moveit/internal/domain/phase"
	"github.com/rpggio/moveit/internal/domain/schedule"
	"github.com/rpggio/moveit/internal/domain/session"
	"github.com/rpggio/moveit/internal/domain/stats"
	"github.com/rpggio/moveit/internal/platform/clock"
	"github.com/rpggio/moveit/internal/timer"
)

// State returns the current snapshot.
func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot()
}

// Schedule returns the active schedule.
func (c *Coordinator) Schedule() schedule.Schedule {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.schedule
}

// TodaySessions returns today's closed sessions.
func (c *Coordinator) TodaySessions() []session.Record {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sessions.TodaySessions()
}

// History returns the whole session log, oldest first.
func (c *Coordinator) History() []session.Record {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sessions.All()
}

// Statistics summarises the durable statistics for p.
func (c *Coordinator) Statistics(ctx context.Context, p stats.Period) (stats.Summary, []stats.DailyStatistics, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	days, err := c.stats.ForPeriod(ctx, p)
	if err != nil {
		return stats.Summary{}, nil, err
	}
	return stats.Summarize(p, days), days, nil
}

// Subscribe returns a channel receiving a snapshot after every change. The
// channel holds only the latest snapshot; slow readers miss intermediate
// ones. The returned func unsubscribes and closes the channel.
func (c *Coordinator) Subscribe() (<-chan State, func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ch := make(chan State, 1)
	if c.closed {
		close(ch)
		return ch, func() {}
	}
	c.subscribers[ch] = struct{}{}
	ch <- c.snapshot()

	return ch, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if _, ok := c.subscribers[ch]; ok {
			delete(c.subscribers, ch)
			close(ch)
		}
	}
}

func (c *Coordinator) publish() {
	if len(c.subscribers) == 0 {
		return
	}
	st := c.snapshot()
	for ch := range c.subscribers {
		select {
		case <-ch:
		default:
		}
		ch <- st
	}
}

func (c *Coordinator) snapshot() State {
	now := c.clock.Now()
	current := c.engine.Phase()
	display := current
	if c.engine.IsPaused() {
		display = phase.Paused
	}
	remaining := c.engine.Remaining()

	st := State{
		CurrentPhase:          current,
		DisplayPhase:          display,
		Status:                c.engine.Status(),
		Remaining:             remaining,
		RemainingText:         timer.FormatRemaining(remaining),
		Progress:              c.engine.Progress(),
		IsPaused:              c.engine.IsPaused(),
		IsCompleted:           c.engine.IsCompleted(),
		IsShowingConfirmation: c.transitions.IsAwaitingConfirmation(),
		TodayStats:            c.todayStats(now),
		Schedule:              c.schedule,
		At:                    now,
	}
	if p, ok := c.transitions.Pending(); ok {
		st.PendingTransition = &p
	}
	return st
}

// todayStats derives the live view from the session log, counting the open
// session's wall-clock time since midnight.
func (c *Coordinator) todayStats(now time.Time) stats.DailyStats {
	out := stats.DailyStats{LastUpdated: now}
	add := func(p phase.Phase, d time.Duration) {
		switch p {
		case phase.Sitting:
			out.SittingTime += d
		case phase.Standing:
			out.StandingTime += d
		}
	}
	for _, rec := range c.sessions.TodaySessions() {
		add(rec.Phase, rec.Duration)
	}
	if rec, ok := c.sessions.Current(); ok {
		start := rec.StartDate
		if midnight := clock.StartOfDay(now); start.Before(midnight) {
			start = midnight
		}
		if d := now.Sub(start); d > 0 {
			add(rec.Phase, d)
		}
	}
	return out
}
