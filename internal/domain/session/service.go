package session

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/rpggio/moveit/internal/domain/phase"
	"github.com/rpggio/moveit/internal/platform/clock"
)

// Service is the append-only session log. It is not safe for concurrent use.
type Service struct {
	repo    Repository
	clock   clock.Clock
	logger  *slog.Logger
	records []Record
	current int
}

// NewService creates an empty session log.
func NewService(repo Repository, clk clock.Clock, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{
		repo:    repo,
		clock:   clk,
		logger:  logger,
		current: -1,
	}
}

// Load replaces the in-memory log with the stored one. Records left open by a
// previous process are closed at their start with zero duration.
func (s *Service) Load(ctx context.Context) error {
	records, err := s.repo.Load(ctx)
	if err != nil {
		s.logger.Error("failed to load sessions", "error", err)
		return err
	}

	dangling := 0
	for i := range records {
		if records[i].IsOpen() {
			end := records[i].StartDate
			records[i].EndDate = &end
			records[i].Duration = 0
			dangling++
		}
	}
	s.records = records
	s.current = -1

	if dangling > 0 {
		s.logger.Warn("closed sessions left open by a previous run", "count", dangling)
		s.persist(ctx)
	}
	return nil
}

// StartSession closes any open record and opens a new one for p.
func (s *Service) StartSession(ctx context.Context, p phase.Phase) (Record, error) {
	if !p.IsWorking() {
		return Record{}, phase.ErrInvalidPhase
	}
	s.closeCurrent()

	rec := Record{
		ID:        uuid.NewString(),
		Phase:     p,
		StartDate: s.clock.Now(),
	}
	s.records = append(s.records, rec)
	s.current = len(s.records) - 1
	s.logger.Debug("session started", "id", rec.ID, "phase", p)

	s.persist(ctx)
	return rec, nil
}

// EndCurrentSession closes the open record, if any.
func (s *Service) EndCurrentSession(ctx context.Context) (Record, bool) {
	rec, ok := s.closeCurrent()
	if !ok {
		return Record{}, false
	}
	s.persist(ctx)
	return rec, true
}

// Current returns the open record, if any.
func (s *Service) Current() (Record, bool) {
	if s.current < 0 {
		return Record{}, false
	}
	return s.records[s.current], true
}

// TodaySessions returns closed records that started since local midnight.
func (s *Service) TodaySessions() []Record {
	midnight := clock.StartOfDay(s.clock.Now())
	var today []Record
	for _, rec := range s.records {
		if rec.IsOpen() {
			continue
		}
		if rec.StartDate.Before(midnight) {
			continue
		}
		today = append(today, rec)
	}
	return today
}

// All returns a copy of every record, oldest first.
func (s *Service) All() []Record {
	out := make([]Record, len(s.records))
	copy(out, s.records)
	return out
}

// ResetSessions clears the log.
func (s *Service) ResetSessions(ctx context.Context) {
	s.records = nil
	s.current = -1
	s.persist(ctx)
}

func (s *Service) closeCurrent() (Record, bool) {
	if s.current < 0 {
		return Record{}, false
	}
	now := s.clock.Now()
	rec := &s.records[s.current]
	rec.EndDate = &now
	rec.Duration = now.Sub(rec.StartDate)
	if rec.Duration < 0 {
		rec.Duration = 0
	}
	s.current = -1
	s.logger.Debug("session ended", "id", rec.ID, "phase", rec.Phase, "duration", rec.Duration.Round(time.Second))
	return *rec, true
}

func (s *Service) persist(ctx context.Context) {
	if err := s.repo.Save(ctx, s.All()); err != nil {
		s.logger.Error("failed to save sessions", "error", err)
	}
}
