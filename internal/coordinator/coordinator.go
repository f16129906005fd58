package coordinator

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/rpggio/moveit/internal/domain/phase"
	"github.com/rpggio/moveit/internal/domain/schedule"
	"github.com/rpggio/moveit/internal/domain/session"
	"github.com/rpggio/moveit/internal/domain/stats"
	"github.com/rpggio/moveit/internal/domain/transition"
	"github.com/rpggio/moveit/internal/platform/clock"
	"github.com/rpggio/moveit/internal/repository"
	"github.com/rpggio/moveit/internal/timer"
)

// Deps are the collaborators a Coordinator owns.
type Deps struct {
	Clock     clock.Clock
	Schedules schedule.Repository
	Sessions  *session.Service
	Stats     *stats.Service
	Notifier  Notifier
	// Fallback is used when no schedule has been stored yet.
	Fallback schedule.Schedule
}

// Coordinator is the command and query surface over the timer, session log,
// transition manager and statistics. One mutex serialises every command and
// every clock callback, so the collaborators never see concurrent calls.
type Coordinator struct {
	mu     sync.Mutex
	clock  clock.Clock
	logger *slog.Logger

	schedules   schedule.Repository
	sessions    *session.Service
	stats       *stats.Service
	notifier    Notifier
	engine      *timer.Engine
	transitions *transition.Manager

	schedule schedule.Schedule

	// generation is bumped by every phase start, stop, confirm and continue;
	// a snooze callback armed under an older generation does nothing.
	generation uint64
	snooze     clock.Timer

	subscribers map[chan State]struct{}
	closed      bool
}

// New restores persisted state and returns a ready coordinator. Storage
// failures are logged and the coordinator starts from defaults.
func New(ctx context.Context, deps Deps, logger *slog.Logger) *Coordinator {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if deps.Clock == nil {
		deps.Clock = clock.SystemClock{}
	}
	if deps.Fallback.Validate() != nil {
		deps.Fallback = schedule.Default()
	}

	c := &Coordinator{
		clock:       deps.Clock,
		logger:      logger,
		schedules:   deps.Schedules,
		sessions:    deps.Sessions,
		stats:       deps.Stats,
		notifier:    deps.Notifier,
		transitions: transition.NewManager(deps.Clock, logger),
		subscribers: make(map[chan State]struct{}),
	}
	c.schedule = c.loadSchedule(ctx, deps.Fallback)

	if err := c.sessions.Load(ctx); err != nil {
		logger.Warn("starting with an empty session log", "error", err)
	}
	if err := c.stats.Restore(ctx); err != nil {
		logger.Warn("could not restore statistics", "error", err)
	}
	c.stats.LoadOrCreateToday(ctx)

	c.engine = timer.New(deps.Clock, c.schedule.SittingDuration, c.schedule.StandingDuration,
		timer.WithExecutor(c.run),
		timer.WithLogger(logger),
	)
	c.engine.OnComplete(func(done timer.Completion) {
		c.phaseCompleted(context.Background(), done)
	})
	c.engine.OnTick(func(time.Duration) {
		c.publish()
	})

	if c.schedule.AutoStart {
		c.mu.Lock()
		c.engine.Start(phase.Sitting)
		c.openPhase(ctx, phase.Inactive, phase.Sitting)
		c.mu.Unlock()
		logger.Info("auto-started sitting phase")
	}
	return c
}

func (c *Coordinator) loadSchedule(ctx context.Context, fallback schedule.Schedule) schedule.Schedule {
	stored, err := c.schedules.Load(ctx)
	switch {
	case err == nil && stored.Validate() == nil:
		return *stored
	case err == nil:
		c.logger.Warn("stored schedule is invalid, using defaults")
	case errors.Is(err, repository.ErrNotFound):
		if err := c.schedules.Save(ctx, fallback); err != nil {
			c.logger.Error("failed to save default schedule", "error", err)
		}
	default:
		c.logger.Error("failed to load schedule", "error", err)
	}
	return fallback
}

// run executes f as the single owner; clock callbacks go through it.
func (c *Coordinator) run(f func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	f()
}

// StartSession begins a fresh countdown for p from any state.
func (c *Coordinator) StartSession(ctx context.Context, p phase.Phase) (bool, error) {
	if !p.IsWorking() {
		return false, phase.ErrInvalidPhase
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	from := c.engine.Phase()
	c.engine.Start(p)
	c.openPhase(ctx, from, p)
	c.logger.Info("session started", "phase", p)
	c.publish()
	return true, nil
}

// PauseSession freezes the countdown.
func (c *Coordinator) PauseSession(ctx context.Context) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.engine.Pause() {
		return false
	}
	c.stats.PauseTransition(ctx)
	if c.schedule.NotificationsEnabled {
		c.notifier.CancelPhaseNotifications()
	}
	c.logger.Info("session paused", "phase", c.engine.Phase())
	c.publish()
	return true
}

// ResumeSession continues a paused countdown. Resuming a phase whose
// countdown already finished brings the transition decision back.
func (c *Coordinator) ResumeSession(ctx context.Context) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.engine.Resume() {
		return false
	}
	c.cancelSnooze()
	c.stats.ResumeTransition(ctx)
	c.logger.Info("session resumed", "phase", c.engine.Phase())
	switch {
	case c.engine.IsCompleted():
		if !c.transitions.IsAwaitingConfirmation() {
			c.decide(ctx, c.engine.Phase())
		}
	case c.schedule.NotificationsEnabled:
		c.notifier.SchedulePhaseNotification(c.engine.Phase(), c.engine.Remaining())
	}
	c.publish()
	return true
}

// SkipPhase abandons the current phase and starts the alternate one. From
// Inactive it starts Sitting.
func (c *Coordinator) SkipPhase(ctx context.Context) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.transitions.Cancel()
	next := c.advance(ctx)
	c.logger.Info("phase skipped", "next", next)
	c.publish()
	return true
}

// StopSession ends the current session and clears the timer.
func (c *Coordinator) StopSession(ctx context.Context) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, open := c.sessions.Current()
	if c.engine.Phase() == phase.Inactive && !open {
		return false
	}
	c.bump()
	c.transitions.Cancel()
	c.sessions.EndCurrentSession(ctx)
	c.stats.EndTransition(ctx)
	c.engine.Stop()
	c.notifier.CancelAllNotifications()
	c.logger.Info("session stopped")
	c.publish()
	return true
}

// ConfirmTransition applies the held transition.
func (c *Coordinator) ConfirmTransition(ctx context.Context) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	p, ok := c.transitions.Confirm()
	if !ok {
		return false
	}
	c.engine.Start(p.To)
	c.openPhase(ctx, p.From, p.To)
	c.logger.Info("transition confirmed", "from", p.From, "to", p.To)
	c.publish()
	return true
}

// ContinuePhase drops the held transition and runs the finished phase again.
func (c *Coordinator) ContinuePhase(ctx context.Context) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	p, ok := c.transitions.Pending()
	if !ok {
		return false
	}
	c.transitions.Cancel()
	c.engine.Start(p.From)
	c.openPhase(ctx, p.From, p.From)
	c.logger.Info("continuing phase", "phase", p.From)
	c.publish()
	return true
}

// SnoozeTransition drops the held transition, pauses the timer and asks
// again after d, provided the timer is still paused then. A non-positive d
// uses the schedule's snooze duration.
func (c *Coordinator) SnoozeTransition(ctx context.Context, d time.Duration) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if d <= 0 {
		d = c.schedule.SnoozeDuration
	}
	p, ok := c.transitions.Snooze(d)
	if !ok {
		return false
	}
	if c.engine.Pause() {
		c.stats.PauseTransition(ctx)
		if c.schedule.NotificationsEnabled {
			c.notifier.CancelPhaseNotifications()
		}
	}

	c.cancelSnooze()
	gen := c.generation
	c.snooze = c.clock.AfterFunc(d, func() {
		c.run(func() { c.snoozeExpired(gen, p) })
	})
	c.logger.Info("transition snoozed", "from", p.From, "to", p.To, "for", d)
	c.publish()
	return true
}

// CancelTransition drops the held transition, leaving the timer as it is.
func (c *Coordinator) CancelTransition(ctx context.Context) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	held := c.transitions.IsAwaitingConfirmation()
	c.transitions.Cancel()
	if held {
		c.logger.Info("transition cancelled")
		c.publish()
	}
	return held
}

// ResetAllStatistics clears durable statistics and the session log.
func (c *Coordinator) ResetAllStatistics(ctx context.Context) stats.DailyStatistics {
	c.mu.Lock()
	defer c.mu.Unlock()

	today := c.stats.ResetAllStatistics(ctx)
	c.sessions.ResetSessions(ctx)
	c.publish()
	return today
}

// UpdateSchedule validates, persists and applies s. A running countdown keeps
// its length.
func (c *Coordinator) UpdateSchedule(ctx context.Context, s schedule.Schedule) error {
	_, err := c.UpdateScheduleWith(ctx, func(schedule.Schedule) schedule.Schedule { return s })
	return err
}

// UpdateScheduleWith derives the next schedule from the current one and
// applies it, all under the coordinator lock. On validation failure nothing
// changes and the current schedule is returned with the error. change must
// not call back into the coordinator.
func (c *Coordinator) UpdateScheduleWith(ctx context.Context, change func(schedule.Schedule) schedule.Schedule) (schedule.Schedule, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := change(c.schedule)
	if err := s.Validate(); err != nil {
		return c.schedule, err
	}
	if err := c.schedules.Save(ctx, s); err != nil {
		c.logger.Error("failed to save schedule", "error", err)
	}
	wasEnabled := c.schedule.NotificationsEnabled
	c.schedule = s
	c.engine.SetDurations(s.SittingDuration, s.StandingDuration)
	if wasEnabled && !s.NotificationsEnabled {
		c.notifier.CancelAllNotifications()
	}
	c.logger.Info("schedule updated", "sitting", s.SittingDuration, "standing", s.StandingDuration)
	c.publish()
	return s, nil
}

// Close ends the open session and transition and stops every callback.
func (c *Coordinator) Close(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}

	c.bump()
	c.sessions.EndCurrentSession(ctx)
	c.stats.EndTransition(ctx)
	c.engine.Stop()
	c.closed = true
	for ch := range c.subscribers {
		close(ch)
	}
	c.subscribers = nil
	c.logger.Info("coordinator closed")
}

// phaseCompleted runs under the lock via the engine executor.
func (c *Coordinator) phaseCompleted(ctx context.Context, done timer.Completion) {
	if rec, ok := c.sessions.EndCurrentSession(ctx); ok {
		c.logger.Info("phase completed", "phase", done.Phase, "duration", rec.Duration)
	}
	c.decide(ctx, done.Phase)
	c.publish()
}

func (c *Coordinator) decide(ctx context.Context, completed phase.Phase) {
	p := c.transitions.HandlePhaseCompleted(completed, c.schedule.AskBeforeTransition)
	if !c.transitions.IsAwaitingConfirmation() {
		c.advance(ctx)
		return
	}
	if c.schedule.NotificationsEnabled {
		c.notifier.CancelAllNotifications()
		c.notifier.SendTransitionNotification(p.From, p.To, c.schedule.SoundEnabled)
	}
}

func (c *Coordinator) snoozeExpired(gen uint64, p transition.Pending) {
	if gen != c.generation || !c.engine.IsPaused() {
		c.logger.Debug("ignoring stale snooze", "from", p.From, "to", p.To)
		return
	}
	c.snooze = nil
	c.transitions.HandlePhaseCompleted(p.From, true)
	if c.schedule.NotificationsEnabled {
		c.notifier.SendTransitionNotification(p.From, p.To, c.schedule.SoundEnabled)
	}
	c.logger.Info("snooze elapsed, asking again", "from", p.From, "to", p.To)
	c.publish()
}

// advance moves the engine to the alternate phase and opens it.
func (c *Coordinator) advance(ctx context.Context) phase.Phase {
	from := c.engine.Phase()
	next := c.engine.Skip()
	c.openPhase(ctx, from, next)
	return next
}

// openPhase records a phase the engine has just started.
func (c *Coordinator) openPhase(ctx context.Context, from, to phase.Phase) {
	c.bump()
	c.transitions.Cancel()
	if _, err := c.sessions.StartSession(ctx, to); err != nil {
		c.logger.Error("failed to open session", "phase", to, "error", err)
	}
	c.stats.StartTransition(ctx, from, to)
	if c.schedule.NotificationsEnabled {
		c.notifier.CancelPhaseNotifications()
		c.notifier.SchedulePhaseNotification(to, c.engine.Total())
	}
}

func (c *Coordinator) bump() {
	c.generation++
	c.cancelSnooze()
}

func (c *Coordinator) cancelSnooze() {
	if c.snooze != nil {
		c.snooze.Stop()
		c.snooze = nil
	}
}
