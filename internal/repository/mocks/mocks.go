package mocks

import (
	"context"
	"time"

	"github.com/rpggio/moveit/internal/domain/phase"
	"github.com/rpggio/moveit/internal/domain/schedule"
	"github.com/rpggio/moveit/internal/domain/session"
	"github.com/rpggio/moveit/internal/domain/stats"
	"github.com/stretchr/testify/mock"
)

// ScheduleRepository is a mock for the schedule store.
type ScheduleRepository struct {
	mock.Mock
}

func (m *ScheduleRepository) Load(ctx context.Context) (*schedule.Schedule, error) {
	args := m.Called(ctx)
	if s, ok := args.Get(0).(*schedule.Schedule); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ScheduleRepository) Save(ctx context.Context, s schedule.Schedule) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

// SessionRepository is a mock for session.Repository.
type SessionRepository struct {
	mock.Mock
}

func (m *SessionRepository) Load(ctx context.Context) ([]session.Record, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]session.Record); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *SessionRepository) Save(ctx context.Context, records []session.Record) error {
	args := m.Called(ctx, records)
	return args.Error(0)
}

// TransitionRepository is a mock for stats.TransitionRepository.
type TransitionRepository struct {
	mock.Mock
}

func (m *TransitionRepository) Create(ctx context.Context, t *stats.PhaseTransition) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *TransitionRepository) Update(ctx context.Context, t *stats.PhaseTransition) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *TransitionRepository) GetOpen(ctx context.Context) (*stats.PhaseTransition, error) {
	args := m.Called(ctx)
	if t, ok := args.Get(0).(*stats.PhaseTransition); ok {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TransitionRepository) ListBetween(ctx context.Context, from, to time.Time) ([]stats.PhaseTransition, error) {
	args := m.Called(ctx, from, to)
	if list, ok := args.Get(0).([]stats.PhaseTransition); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TransitionRepository) DeleteAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// DailyRepository is a mock for stats.DailyRepository.
type DailyRepository struct {
	mock.Mock
}

func (m *DailyRepository) Get(ctx context.Context, date string) (*stats.DailyStatistics, error) {
	args := m.Called(ctx, date)
	if d, ok := args.Get(0).(*stats.DailyStatistics); ok {
		return d, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *DailyRepository) Upsert(ctx context.Context, day *stats.DailyStatistics) error {
	args := m.Called(ctx, day)
	return args.Error(0)
}

func (m *DailyRepository) ListBetween(ctx context.Context, fromDate, toDate string) ([]stats.DailyStatistics, error) {
	args := m.Called(ctx, fromDate, toDate)
	if list, ok := args.Get(0).([]stats.DailyStatistics); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *DailyRepository) DeleteAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// Notifier is a mock for the coordinator's reminder collaborator.
type Notifier struct {
	mock.Mock
}

func (m *Notifier) SchedulePhaseNotification(p phase.Phase, delay time.Duration) {
	m.Called(p, delay)
}

func (m *Notifier) SendTransitionNotification(from, to phase.Phase, sound bool) {
	m.Called(from, to, sound)
}

func (m *Notifier) CancelPhaseNotifications() {
	m.Called()
}

func (m *Notifier) CancelAllNotifications() {
	m.Called()
}
