package transition

import (
	"io"
	"log/slog"
	"time"

	"github.com/rpggio/moveit/internal/domain/phase"
	"github.com/rpggio/moveit/internal/platform/clock"
)

// Manager decides whether a completed phase advances automatically or waits
// for the user. It keeps no timers; re-prompting after a snooze is up to the
// caller.
type Manager struct {
	clock   clock.Clock
	logger  *slog.Logger
	state   State
	pending *Pending
}

// NewManager creates an idle manager.
func NewManager(clk clock.Clock, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Manager{clock: clk, logger: logger, state: StateIdle}
}

// HandlePhaseCompleted returns the transition out of completed. When ask is
// set the transition is held until Confirm, Snooze or Cancel.
func (m *Manager) HandlePhaseCompleted(completed phase.Phase, ask bool) Pending {
	p := Pending{
		From:      completed,
		To:        completed.Alternate(),
		Timestamp: m.clock.Now(),
	}
	if !ask {
		return p
	}
	m.pending = &p
	m.state = StateAwaitingConfirmation
	m.logger.Debug("transition awaiting confirmation", "from", p.From, "to", p.To)
	return p
}

// Confirm releases the held transition. No-op unless awaiting confirmation.
func (m *Manager) Confirm() (Pending, bool) {
	if m.state != StateAwaitingConfirmation {
		return Pending{}, false
	}
	p := *m.pending
	m.clear()
	return p, true
}

// Snooze drops the held transition for d. No-op unless awaiting confirmation.
func (m *Manager) Snooze(d time.Duration) (Pending, bool) {
	if m.state != StateAwaitingConfirmation {
		return Pending{}, false
	}
	p := *m.pending
	m.clear()
	m.logger.Debug("transition snoozed", "from", p.From, "to", p.To, "for", d)
	return p, true
}

// Cancel drops any held transition.
func (m *Manager) Cancel() {
	m.clear()
}

// Pending returns the held transition, if any.
func (m *Manager) Pending() (Pending, bool) {
	if m.pending == nil {
		return Pending{}, false
	}
	return *m.pending, true
}

// State returns the confirmation state.
func (m *Manager) State() State { return m.state }

// IsAwaitingConfirmation reports whether a transition is held.
func (m *Manager) IsAwaitingConfirmation() bool {
	return m.state == StateAwaitingConfirmation
}

func (m *Manager) clear() {
	m.pending = nil
	m.state = StateIdle
}
