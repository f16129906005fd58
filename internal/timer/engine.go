package timer

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/rpggio/moveit/internal/domain/phase"
	"github.com/rpggio/moveit/internal/platform/clock"
)

// TickInterval is the countdown resolution.
const TickInterval = time.Second

// Status is the engine's lifecycle state.
type Status string

const (
	StatusInactive Status = "inactive"
	StatusRunning  Status = "running"
	StatusPaused   Status = "paused"
)

// Completion is emitted once when a phase's countdown reaches zero.
type Completion struct {
	Phase phase.Phase
	At    time.Time
}

// Executor runs clock callbacks on the owner's execution context.
type Executor func(func())

// Option configures an Engine.
type Option func(*Engine)

// WithExecutor routes tick callbacks through exec.
func WithExecutor(exec Executor) Option {
	return func(e *Engine) {
		if exec != nil {
			e.exec = exec
		}
	}
}

// WithLogger sets the engine logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// Engine counts down a single active phase. It is not safe for concurrent
// use; the owner serialises commands and callbacks through the Executor.
type Engine struct {
	clock  clock.Clock
	exec   Executor
	logger *slog.Logger

	sitting  time.Duration
	standing time.Duration

	status      Status
	phase       phase.Phase
	total       time.Duration
	startedAt   time.Time
	pausedTotal time.Duration
	pausedAt    time.Time
	completed   bool

	generation uint64
	ticker     clock.Timer

	onComplete func(Completion)
	onTick     func(time.Duration)
}

// New creates an inactive engine with the given phase durations.
func New(c clock.Clock, sitting, standing time.Duration, opts ...Option) *Engine {
	e := &Engine{
		clock:    c,
		exec:     func(f func()) { f() },
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		sitting:  sitting,
		standing: standing,
		status:   StatusInactive,
		phase:    phase.Inactive,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// OnComplete registers the phase-complete handler.
func (e *Engine) OnComplete(fn func(Completion)) {
	e.onComplete = fn
}

// OnTick registers a handler called with the remaining time on every tick.
func (e *Engine) OnTick(fn func(time.Duration)) {
	e.onTick = fn
}

// SetDurations changes the lengths used by future Start and Skip calls.
// A countdown in flight keeps its original length.
func (e *Engine) SetDurations(sitting, standing time.Duration) {
	e.sitting = sitting
	e.standing = standing
}

// Start begins a fresh countdown for p from any state.
func (e *Engine) Start(p phase.Phase) bool {
	if !p.IsWorking() {
		return false
	}
	e.cancelTick()
	e.phase = p
	e.status = StatusRunning
	e.total = e.durationFor(p)
	e.startedAt = e.clock.Now()
	e.pausedTotal = 0
	e.pausedAt = time.Time{}
	e.completed = false
	e.logger.Debug("timer started", "phase", p, "duration", e.total)
	e.scheduleTick()
	return true
}

// Pause freezes the countdown. No-op unless running.
func (e *Engine) Pause() bool {
	if e.status != StatusRunning {
		return false
	}
	e.cancelTick()
	e.status = StatusPaused
	e.pausedAt = e.clock.Now()
	return true
}

// Resume continues a paused countdown. No-op unless paused.
func (e *Engine) Resume() bool {
	if e.status != StatusPaused {
		return false
	}
	now := e.clock.Now()
	if elapsed := now.Sub(e.pausedAt); elapsed > 0 {
		e.pausedTotal += elapsed
	}
	e.pausedAt = time.Time{}
	e.status = StatusRunning
	if !e.completed {
		e.scheduleTick()
	}
	return true
}

// Stop clears all timer state.
func (e *Engine) Stop() {
	e.cancelTick()
	e.status = StatusInactive
	e.phase = phase.Inactive
	e.total = 0
	e.startedAt = time.Time{}
	e.pausedTotal = 0
	e.pausedAt = time.Time{}
	e.completed = false
}

// Skip starts the alternate phase and returns it. From Inactive it starts
// Sitting.
func (e *Engine) Skip() phase.Phase {
	next := e.phase.Alternate()
	e.Start(next)
	return next
}

// Phase returns the phase being timed, Inactive when stopped.
func (e *Engine) Phase() phase.Phase { return e.phase }

// Status returns the engine state.
func (e *Engine) Status() Status { return e.status }

// IsPaused reports whether the countdown is paused.
func (e *Engine) IsPaused() bool { return e.status == StatusPaused }

// IsCompleted reports whether the current countdown reached zero.
func (e *Engine) IsCompleted() bool { return e.completed }

// Total returns the length of the current countdown.
func (e *Engine) Total() time.Duration { return e.total }

// Remaining returns the time left, always within [0, Total].
func (e *Engine) Remaining() time.Duration {
	if e.status == StatusInactive {
		return 0
	}
	if e.completed {
		return 0
	}
	return e.remainingAt(e.clock.Now())
}

// Progress returns the completed fraction of the countdown in [0, 1].
func (e *Engine) Progress() float64 {
	if e.status == StatusInactive || e.total <= 0 {
		return 0
	}
	p := float64(e.total-e.Remaining()) / float64(e.total)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// FormattedRemaining returns Remaining as MM:SS.
func (e *Engine) FormattedRemaining() string {
	return FormatRemaining(e.Remaining())
}

// FormatRemaining renders d as zero-padded MM:SS, truncating partial seconds.
func FormatRemaining(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int64(d / time.Second)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}

func (e *Engine) remainingAt(now time.Time) time.Duration {
	active := now.Sub(e.startedAt) - e.pausedTotal
	if e.status == StatusPaused {
		active -= now.Sub(e.pausedAt)
	}
	if active < 0 {
		active = 0
	}
	remaining := e.total - active
	if remaining < 0 {
		return 0
	}
	return remaining
}

func (e *Engine) durationFor(p phase.Phase) time.Duration {
	if p == phase.Standing {
		return e.standing
	}
	return e.sitting
}

func (e *Engine) scheduleTick() {
	gen := e.generation
	e.ticker = e.clock.AfterFunc(TickInterval, func() {
		e.exec(func() { e.tick(gen) })
	})
}

func (e *Engine) cancelTick() {
	e.generation++
	if e.ticker != nil {
		e.ticker.Stop()
		e.ticker = nil
	}
}

func (e *Engine) tick(gen uint64) {
	if gen != e.generation || e.status != StatusRunning || e.completed {
		return
	}
	now := e.clock.Now()
	remaining := e.remainingAt(now)
	if e.onTick != nil {
		e.onTick(remaining)
	}
	if remaining > 0 {
		e.scheduleTick()
		return
	}

	e.completed = true
	e.ticker = nil
	e.logger.Debug("timer completed", "phase", e.phase)
	if e.onComplete != nil {
		e.onComplete(Completion{Phase: e.phase, At: now})
	}
}
