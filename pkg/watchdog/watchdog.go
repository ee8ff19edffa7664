package watchdog

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/acqlab/daqstream/internal/logging"
	"github.com/acqlab/daqstream/pkg/diag"
	"github.com/acqlab/daqstream/pkg/domain"
)

const (
	// DefaultTickInterval is the evaluation period.
	DefaultTickInterval = 100 * time.Millisecond
	// DefaultStallThreshold is the number of consecutive no-progress
	// ticks before the watchdog intervenes.
	DefaultStallThreshold = 3
)

// Session is the slice of the session controller the watchdog drives.
type Session interface {
	Active() bool
	Completions() uint64
	SamplerState() domain.SamplerState
	// Generation advances on every explicit Start and Stop, letting the
	// watchdog detect a restart that happened entirely between ticks.
	Generation() uint64
	Recover(ctx context.Context) bool
}

// Config holds the watchdog tuning knobs.
type Config struct {
	// TickInterval is the evaluation period. Zero means DefaultTickInterval.
	TickInterval time.Duration
	// StallThreshold is the consecutive no-progress tick count that
	// triggers recovery. Zero means DefaultStallThreshold.
	StallThreshold uint32
	// MaxRecoveries caps consecutive recoveries. Zero means unlimited.
	MaxRecoveries uint32
}

func (c Config) withDefaults() Config {
	if c.TickInterval <= 0 {
		c.TickInterval = DefaultTickInterval
	}
	if c.StallThreshold == 0 {
		c.StallThreshold = DefaultStallThreshold
	}
	return c
}

// Watchdog detects pipeline stalls and performs bounded recovery. All
// mutation happens through the session controller, which serializes against
// concurrent commands; the watchdog's own bookkeeping lives on the tick
// goroutine, except the knobs and streak exposed atomically for diagnostics.
type Watchdog struct {
	session  Session
	recorder *diag.Recorder
	clk      clock.Clock
	logger   *slog.Logger

	tick      time.Duration
	threshold uint32

	maxRecoveries atomic.Uint32
	stallStreak   atomic.Uint32

	// lastCompletions and lastGeneration are the remembered counter and
	// session generation from the previous tick. Touched only by the tick
	// context.
	lastCompletions uint64
	lastGeneration  uint64
}

// Option configures the Watchdog.
type Option func(*Watchdog)

// WithLogger configures a logger for watchdog events.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Watchdog) {
		w.logger = logger
	}
}

// WithClock injects a clock. Tests use clock.NewMock for deterministic
// tick timing.
func WithClock(clk clock.Clock) Option {
	return func(w *Watchdog) {
		w.clk = clk
	}
}

// New creates a watchdog over the given session and diagnostics recorder.
func New(session Session, recorder *diag.Recorder, cfg Config, opts ...Option) *Watchdog {
	cfg = cfg.withDefaults()
	w := &Watchdog{
		session:   session,
		recorder:  recorder,
		clk:       clock.New(),
		logger:    logging.NewNop(),
		tick:      cfg.TickInterval,
		threshold: cfg.StallThreshold,
	}
	w.maxRecoveries.Store(cfg.MaxRecoveries)
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run evaluates once per tick until the context is cancelled.
func (w *Watchdog) Run(ctx context.Context) {
	ticker := w.clk.Ticker(w.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.Evaluate(ctx)
		}
	}
}

// Evaluate performs a single watchdog tick. Exposed so tests can drive
// scenarios without real time.
func (w *Watchdog) Evaluate(ctx context.Context) {
	if !w.session.Active() {
		w.stallStreak.Store(0)
		w.lastCompletions = 0
		w.lastGeneration = w.session.Generation()
		return
	}

	if generation := w.session.Generation(); generation != w.lastGeneration {
		// The session was restarted since the last look, possibly
		// stopping and starting entirely between ticks. The old
		// completion baseline belongs to a dead session; drop it so a
		// new session that lands on the same count is not misread as
		// unchanged.
		w.lastGeneration = generation
		w.lastCompletions = 0
		w.stallStreak.Store(0)
	}

	completions := w.session.Completions()
	if completions != w.lastCompletions {
		// Progress. Renewed progress also re-opens the recovery budget.
		w.lastCompletions = completions
		w.stallStreak.Store(0)
		w.recorder.ResetRecoveries()
		return
	}

	// A counter still at zero on a fresh session means the first buffer
	// has not completed yet: startup grace, not a stall. The grace does
	// not apply mid-recovery-cycle: recovery resets the engine counter to
	// zero, and a session that stays at zero after a restart is still
	// wedged. A sampler outside the blocked states may legitimately be
	// between buffers.
	fresh := completions == 0 && w.recorder.ConsecutiveRecoveries() == 0
	if fresh || !w.session.SamplerState().StallIndicator() {
		w.stallStreak.Store(0)
		return
	}

	streak := w.stallStreak.Add(1)
	if streak < w.threshold {
		return
	}

	max := w.maxRecoveries.Load()
	if max > 0 && w.recorder.ConsecutiveRecoveries() >= max {
		// Cap reached: stand down until an explicit Start/Stop or
		// renewed progress resets the consecutive count. Anything else
		// would burn CPU and I/O forever on an abandoned session.
		w.stallStreak.Store(0)
		w.logger.Debug("recovery cap reached, awaiting host",
			"max_recoveries", max)
		return
	}

	restarted := w.session.Recover(ctx)
	w.stallStreak.Store(0)
	w.lastCompletions = 0
	w.logger.Warn("stall recovery",
		"restarted", restarted,
		"consecutive", w.recorder.ConsecutiveRecoveries(),
		"faults", w.recorder.Faults(),
	)
}

// SetMaxRecoveries updates the recovery cap (0 = unlimited). Takes effect
// on the next evaluation.
func (w *Watchdog) SetMaxRecoveries(n uint32) {
	w.maxRecoveries.Store(n)
}

// MaxRecoveries returns the configured recovery cap.
func (w *Watchdog) MaxRecoveries() uint32 {
	return w.maxRecoveries.Load()
}

// StallStreak returns the current consecutive no-progress tick count.
func (w *Watchdog) StallStreak() uint32 {
	return w.stallStreak.Load()
}
