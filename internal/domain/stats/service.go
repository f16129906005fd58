package stats

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rpggio/moveit/internal/domain/phase"
	"github.com/rpggio/moveit/internal/platform/clock"
	"github.com/rpggio/moveit/internal/repository"
)

// Service aggregates durable per-day statistics from phase transitions.
// It is not safe for concurrent use.
type Service struct {
	transitions TransitionRepository
	daily       DailyRepository
	clock       clock.Clock
	logger      *slog.Logger

	open *PhaseTransition
	days map[string]*DailyStatistics
}

// NewService creates a statistics aggregator.
func NewService(transitions TransitionRepository, daily DailyRepository, clk clock.Clock, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{
		transitions: transitions,
		daily:       daily,
		clock:       clk,
		logger:      logger,
		days:        make(map[string]*DailyStatistics),
	}
}

// Restore closes a transition left open by a previous process. Its interval
// is unknown, so nothing is booked for it.
func (s *Service) Restore(ctx context.Context) error {
	t, err := s.transitions.GetOpen(ctx)
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("loading open transition: %w", err)
	}

	end := t.StartDate
	t.EndDate = &end
	t.Duration = 0
	t.PauseStartedAt = nil
	if err := s.transitions.Update(ctx, t); err != nil {
		return fmt.Errorf("closing dangling transition: %w", err)
	}
	s.logger.Warn("closed transition left open by a previous run", "id", t.ID, "to", t.To)
	return nil
}

// StartTransition closes the open transition and opens a new one into to.
func (s *Service) StartTransition(ctx context.Context, from, to phase.Phase) PhaseTransition {
	now := s.clock.Now()
	s.closeOpen(ctx, now)

	t := &PhaseTransition{
		ID:        uuid.NewString(),
		From:      from,
		To:        to,
		StartDate: now,
	}
	if err := s.transitions.Create(ctx, t); err != nil {
		s.logger.Error("failed to save transition", "error", err)
	}
	s.open = t

	day := s.day(ctx, clock.DayKey(now))
	day.NumberOfTransitions++
	day.LastUpdated = now
	s.saveDay(ctx, day)

	s.logger.Debug("transition started", "id", t.ID, "from", from, "to", to)
	return *t
}

// EndTransition closes the open transition without opening another.
func (s *Service) EndTransition(ctx context.Context) (PhaseTransition, bool) {
	return s.closeOpen(ctx, s.clock.Now())
}

// PauseTransition marks the start of a pause in the open transition.
func (s *Service) PauseTransition(ctx context.Context) bool {
	if s.open == nil || s.open.PauseStartedAt != nil {
		return false
	}
	now := s.clock.Now()
	s.open.PauseStartedAt = &now
	s.open.WasPaused = true
	if err := s.transitions.Update(ctx, s.open); err != nil {
		s.logger.Error("failed to save transition pause", "error", err)
	}
	return true
}

// ResumeTransition folds the running pause into the open transition.
func (s *Service) ResumeTransition(ctx context.Context) bool {
	if s.open == nil || s.open.PauseStartedAt == nil {
		return false
	}
	foldPause(s.open, s.clock.Now())
	if err := s.transitions.Update(ctx, s.open); err != nil {
		s.logger.Error("failed to save transition resume", "error", err)
	}
	return true
}

// OpenTransition returns the transition currently being timed.
func (s *Service) OpenTransition() (PhaseTransition, bool) {
	if s.open == nil {
		return PhaseTransition{}, false
	}
	return *s.open, true
}

// ResetAllStatistics deletes every transition and daily record and starts a
// fresh record for today.
func (s *Service) ResetAllStatistics(ctx context.Context) DailyStatistics {
	if err := s.transitions.DeleteAll(ctx); err != nil {
		s.logger.Error("failed to delete transitions", "error", err)
	}
	if err := s.daily.DeleteAll(ctx); err != nil {
		s.logger.Error("failed to delete daily statistics", "error", err)
	}
	s.open = nil
	s.days = make(map[string]*DailyStatistics)

	now := s.clock.Now()
	today := &DailyStatistics{Date: clock.DayKey(now), LastUpdated: now}
	s.days[today.Date] = today
	s.saveDay(ctx, today)
	s.logger.Info("statistics reset")
	return *today
}

// LoadOrCreateToday returns today's record, creating it when missing.
func (s *Service) LoadOrCreateToday(ctx context.Context) DailyStatistics {
	key := clock.DayKey(s.clock.Now())
	_, cached := s.days[key]
	day := s.day(ctx, key)
	if !cached {
		s.saveDay(ctx, day)
	}
	return *day
}

// ForDate returns the record for the day t falls in; a zero record when none.
func (s *Service) ForDate(ctx context.Context, t time.Time) (DailyStatistics, error) {
	key := clock.DayKey(t)
	if day, ok := s.days[key]; ok {
		return *day, nil
	}
	day, err := s.daily.Get(ctx, key)
	if errors.Is(err, repository.ErrNotFound) {
		return DailyStatistics{Date: key}, nil
	}
	if err != nil {
		return DailyStatistics{}, fmt.Errorf("loading daily statistics: %w", err)
	}
	return *day, nil
}

// LastWeek returns the records of the last 7 days, today included.
func (s *Service) LastWeek(ctx context.Context) ([]DailyStatistics, error) {
	return s.window(ctx, PeriodWeek.Days())
}

// LastMonth returns the records of the last 30 days, today included.
func (s *Service) LastMonth(ctx context.Context) ([]DailyStatistics, error) {
	return s.window(ctx, PeriodMonth.Days())
}

// ForPeriod returns the records of the given reporting window.
func (s *Service) ForPeriod(ctx context.Context, p Period) ([]DailyStatistics, error) {
	if p == PeriodToday {
		today, err := s.ForDate(ctx, s.clock.Now())
		if err != nil {
			return nil, err
		}
		if today.LastUpdated.IsZero() {
			return nil, nil
		}
		return []DailyStatistics{today}, nil
	}
	return s.window(ctx, p.Days())
}

// AveragePerDay averages over the days that have a record.
func AveragePerDay(days []DailyStatistics) DailyAverage {
	if len(days) == 0 {
		return DailyAverage{}
	}
	var sitting, standing, paused time.Duration
	transitions := 0
	for _, d := range days {
		sitting += d.SittingDuration
		standing += d.StandingDuration
		paused += d.PausedDuration
		transitions += d.NumberOfTransitions
	}
	n := time.Duration(len(days))
	return DailyAverage{
		Days:        len(days),
		Sitting:     sitting / n,
		Standing:    standing / n,
		Paused:      paused / n,
		Transitions: float64(transitions) / float64(len(days)),
	}
}

// Summarize derives totals, averages and scores from daily records.
func Summarize(p Period, days []DailyStatistics) Summary {
	sum := Summary{Period: p, Days: len(days)}
	for _, d := range days {
		sum.TotalSitting += d.SittingDuration
		sum.TotalStanding += d.StandingDuration
		sum.TotalPaused += d.PausedDuration
		sum.Transitions += d.NumberOfTransitions
	}
	avg := AveragePerDay(days)
	sum.AverageSitting = avg.Sitting
	sum.AverageStanding = avg.Standing
	sum.AveragePaused = avg.Paused

	active := sum.TotalSitting + sum.TotalStanding
	if total := active + sum.TotalPaused; total > 0 {
		sum.ProductivityScore = float64(active) / float64(total) * 100
	}
	if active > 0 {
		standingRatio := float64(sum.TotalStanding) / float64(active)
		sum.BalanceScore = min(standingRatio*200, 100)
	}
	return sum
}

// Summary reports on the given period.
func (s *Service) Summary(ctx context.Context, p Period) (Summary, error) {
	days, err := s.ForPeriod(ctx, p)
	if err != nil {
		return Summary{}, err
	}
	return Summarize(p, days), nil
}

// Transitions lists transitions that started within [from, to).
func (s *Service) Transitions(ctx context.Context, from, to time.Time) ([]PhaseTransition, error) {
	list, err := s.transitions.ListBetween(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("listing transitions: %w", err)
	}
	return list, nil
}

func (s *Service) window(ctx context.Context, days int) ([]DailyStatistics, error) {
	now := s.clock.Now()
	to := clock.DayKey(now)
	from := clock.DayKey(clock.StartOfDay(now).AddDate(0, 0, -(days - 1)))

	list, err := s.daily.ListBetween(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("listing daily statistics: %w", err)
	}

	byDate := make(map[string]DailyStatistics, len(list))
	for _, d := range list {
		byDate[d.Date] = d
	}
	for key, d := range s.days {
		if key >= from && key <= to {
			byDate[key] = *d
		}
	}

	out := make([]DailyStatistics, 0, len(byDate))
	for _, d := range byDate {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

func (s *Service) closeOpen(ctx context.Context, now time.Time) (PhaseTransition, bool) {
	if s.open == nil {
		return PhaseTransition{}, false
	}
	t := s.open
	s.open = nil

	foldPause(t, now)
	t.EndDate = &now
	t.Duration = now.Sub(t.StartDate)
	if t.Duration < 0 {
		t.Duration = 0
	}
	if t.PauseDuration > t.Duration {
		t.PauseDuration = t.Duration
	}
	if err := s.transitions.Update(ctx, t); err != nil {
		s.logger.Error("failed to close transition", "error", err)
	}

	day := s.day(ctx, clock.DayKey(now))
	switch t.To {
	case phase.Sitting:
		day.SittingDuration += t.ActiveDuration()
	case phase.Standing:
		day.StandingDuration += t.ActiveDuration()
	}
	day.PausedDuration += t.PauseDuration
	day.LastUpdated = now
	s.saveDay(ctx, day)

	s.logger.Debug("transition closed", "id", t.ID, "to", t.To, "active", t.ActiveDuration().Round(time.Second))
	return *t, true
}

func foldPause(t *PhaseTransition, now time.Time) {
	if t == nil || t.PauseStartedAt == nil {
		return
	}
	if elapsed := now.Sub(*t.PauseStartedAt); elapsed > 0 {
		t.PauseDuration += elapsed
	}
	t.PauseStartedAt = nil
}

func (s *Service) day(ctx context.Context, key string) *DailyStatistics {
	if day, ok := s.days[key]; ok {
		return day
	}
	day, err := s.daily.Get(ctx, key)
	switch {
	case err == nil:
	case errors.Is(err, repository.ErrNotFound):
		day = &DailyStatistics{Date: key, LastUpdated: s.clock.Now()}
	default:
		s.logger.Error("failed to load daily statistics", "date", key, "error", err)
		day = &DailyStatistics{Date: key, LastUpdated: s.clock.Now()}
	}
	s.days[key] = day
	return day
}

func (s *Service) saveDay(ctx context.Context, day *DailyStatistics) {
	if err := s.daily.Upsert(ctx, day); err != nil {
		s.logger.Error("failed to save daily statistics", "date", day.Date, "error", err)
	}
}
