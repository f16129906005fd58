package notify

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rpggio/moveit/internal/domain/phase"
	"github.com/rpggio/moveit/internal/platform/clock"
)

// InboxLimit caps how many delivered notifications are retained.
const InboxLimit = 50

// Responder receives the answers to transition prompts.
type Responder interface {
	ConfirmTransition(ctx context.Context) bool
	ContinuePhase(ctx context.Context) bool
	SnoozeTransition(ctx context.Context, d time.Duration) bool
}

// Service delivers reminders into an in-process inbox and the log. When
// permission has not been granted every request is silently dropped.
type Service struct {
	mu        sync.Mutex
	clock     clock.Clock
	logger    *slog.Logger
	permitted bool
	responder Responder

	scheduled map[clock.Timer]struct{}
	inbox     []Notification
}

// NewService creates a notifier.
func NewService(clk clock.Clock, permitted bool, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{
		clock:     clk,
		logger:    logger,
		permitted: permitted,
		scheduled: make(map[clock.Timer]struct{}),
	}
}

// SetResponder registers where prompt answers go.
func (s *Service) SetResponder(r Responder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.responder = r
}

// SetPermitted grants or revokes permission. Revoking drops scheduled
// reminders.
func (s *Service) SetPermitted(permitted bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.permitted = permitted
	if !permitted {
		s.stopScheduled()
	}
}

// SchedulePhaseNotification delivers a reminder when p's countdown ends.
func (s *Service) SchedulePhaseNotification(p phase.Phase, delay time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.permitted {
		return
	}

	var t clock.Timer
	t = s.clock.AfterFunc(delay, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, ok := s.scheduled[t]; !ok {
			return
		}
		delete(s.scheduled, t)
		s.deliver(Notification{
			Kind:  KindPhaseReminder,
			Title: fmt.Sprintf("%s time is up", p.DisplayName()),
			Body:  fmt.Sprintf("Time to switch to %s.", p.Alternate().DisplayName()),
			Phase: p,
		})
	})
	s.scheduled[t] = struct{}{}
	s.logger.Debug("reminder scheduled", "phase", p, "delay", delay)
}

// SendTransitionNotification delivers an actionable prompt right away.
func (s *Service) SendTransitionNotification(from, to phase.Phase, sound bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.permitted {
		return
	}
	s.deliver(Notification{
		Kind:    KindTransitionPrompt,
		Title:   fmt.Sprintf("Ready to switch to %s?", to.DisplayName()),
		Body:    fmt.Sprintf("Your %s phase is complete.", from.DisplayName()),
		From:    from,
		To:      to,
		Sound:   sound,
		Actions: []Action{ActionTransition, ActionContinue, ActionSnooze},
	})
}

// CancelPhaseNotifications drops scheduled reminders and keeps the inbox.
func (s *Service) CancelPhaseNotifications() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopScheduled()
}

// CancelAllNotifications drops scheduled reminders and clears the inbox.
func (s *Service) CancelAllNotifications() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopScheduled()
	s.inbox = nil
}

// Notifications returns the delivered notifications, oldest first.
func (s *Service) Notifications() []Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Notification, len(s.inbox))
	copy(out, s.inbox)
	return out
}

// Scheduled reports how many reminders are waiting.
func (s *Service) Scheduled() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.scheduled)
}

// HandleAction routes a prompt answer to the responder. snooze is only used
// by ActionSnooze.
func (s *Service) HandleAction(ctx context.Context, action Action, snooze time.Duration) (bool, error) {
	s.mu.Lock()
	r := s.responder
	s.mu.Unlock()
	if r == nil {
		return false, ErrNoResponder
	}

	s.logger.Info("notification action", "action", action)
	switch action {
	case ActionTransition:
		return r.ConfirmTransition(ctx), nil
	case ActionContinue:
		return r.ContinuePhase(ctx), nil
	case ActionSnooze:
		return r.SnoozeTransition(ctx, snooze), nil
	default:
		return false, ErrUnknownAction
	}
}

func (s *Service) deliver(n Notification) {
	n.ID = uuid.NewString()
	n.DeliveredAt = s.clock.Now()
	s.inbox = append(s.inbox, n)
	if over := len(s.inbox) - InboxLimit; over > 0 {
		s.inbox = s.inbox[over:]
	}
	s.logger.Info("notification", "kind", n.Kind, "title", n.Title, "sound", n.Sound)
}

func (s *Service) stopScheduled() {
	for t := range s.scheduled {
		t.Stop()
	}
	s.scheduled = make(map[clock.Timer]struct{})
}
