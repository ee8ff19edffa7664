package daqstream

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/acqlab/daqstream/internal/logging"
	"github.com/acqlab/daqstream/pkg/diag"
	"github.com/acqlab/daqstream/pkg/domain"
	"github.com/acqlab/daqstream/pkg/ports"
	"github.com/acqlab/daqstream/pkg/session"
	"github.com/acqlab/daqstream/pkg/watchdog"
)

// Version is the library version, overridable at build time.
var Version = "0.1.0"

// Hardware bundles the four capability ports the core drives.
type Hardware struct {
	Sampler  ports.Sampler
	Engine   ports.TransferEngine
	Clock    ports.SampleClock
	Endpoint ports.BulkEndpoint
}

// Core is the high-level entry point: the session controller, watchdog, and
// diagnostics channel wired together over one hardware rig.
type Core struct {
	controller *session.Controller
	watchdog   *watchdog.Watchdog
	recorder   *diag.Recorder
	logger     *slog.Logger

	hooks          domain.Hooks
	clk            clock.Clock
	watchdogConfig watchdog.Config
	settleDelay    time.Duration
	settleSet      bool
	rebootFn       func() error
	bufferCapacity int
}

// Option configures the Core.
type Option func(*Core)

// WithLogger sets a structured logger for all components.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Core) {
		c.logger = logger
	}
}

// WithHooks registers host-side observability callbacks.
func WithHooks(hooks domain.Hooks) Option {
	return func(c *Core) {
		c.hooks = hooks
	}
}

// WithWatchdogConfig overrides the watchdog tuning knobs.
func WithWatchdogConfig(cfg watchdog.Config) Option {
	return func(c *Core) {
		c.watchdogConfig = cfg
	}
}

// WithClock injects a clock for the watchdog tick. Tests use clock.NewMock.
func WithClock(clk clock.Clock) Option {
	return func(c *Core) {
		c.clk = clk
	}
}

// WithSettleDelay overrides the controller's post-reset settle delay.
func WithSettleDelay(d time.Duration) Option {
	return func(c *Core) {
		c.settleDelay = d
		c.settleSet = true
	}
}

// WithRebootFunc installs the platform reboot hook used by Reset.
func WithRebootFunc(fn func() error) Option {
	return func(c *Core) {
		c.rebootFn = fn
	}
}

// WithEventBufferCapacity overrides the diagnostics mailbox capacity.
func WithEventBufferCapacity(n int) Option {
	return func(c *Core) {
		c.bufferCapacity = n
	}
}

// New wires a Core over the given hardware.
func New(hw Hardware, opts ...Option) (*Core, error) {
	if hw.Sampler == nil || hw.Engine == nil || hw.Clock == nil || hw.Endpoint == nil {
		return nil, fmt.Errorf("all four hardware ports are required")
	}

	c := &Core{
		logger: logging.NewNop(),
		clk:    clock.New(),
	}
	for _, opt := range opts {
		opt(c)
	}

	recorderOpts := []diag.Option{
		diag.WithLogger(c.logger.With("component", "diag")),
		diag.WithHooks(c.hooks),
	}
	if c.bufferCapacity > 0 {
		recorderOpts = append(recorderOpts, diag.WithBufferCapacity(c.bufferCapacity))
	}
	c.recorder = diag.NewRecorder(recorderOpts...)

	controllerOpts := []session.Option{
		session.WithLogger(c.logger.With("component", "session")),
	}
	if c.settleSet {
		controllerOpts = append(controllerOpts, session.WithSettleDelay(c.settleDelay))
	}
	if c.rebootFn != nil {
		controllerOpts = append(controllerOpts, session.WithRebootFunc(c.rebootFn))
	}
	c.controller = session.NewController(
		hw.Sampler, hw.Engine, hw.Clock, hw.Endpoint, c.recorder,
		controllerOpts...,
	)

	c.watchdog = watchdog.New(c.controller, c.recorder, c.watchdogConfig,
		watchdog.WithLogger(c.logger.With("component", "watchdog")),
		watchdog.WithClock(c.clk),
	)

	return c, nil
}

// Run drives the watchdog until the context is cancelled. Call it once, in
// its own goroutine; commands remain usable from any other goroutine.
func (c *Core) Run(ctx context.Context) {
	c.watchdog.Run(ctx)
}

// Start begins the streaming session (START command).
func (c *Core) Start(ctx context.Context) error {
	return c.controller.Start(ctx)
}

// Stop ends the streaming session (STOP command). Always succeeds.
func (c *Core) Stop(ctx context.Context) {
	c.controller.Stop(ctx)
}

// Reset reboots the device (RESET command).
func (c *Core) Reset(ctx context.Context) error {
	return c.controller.Reset(ctx)
}

// SetClockFrequency reprograms the sample clock (SET_CLOCK command),
// force-stopping an active session first.
func (c *Core) SetClockFrequency(ctx context.Context, hz uint32) error {
	return c.controller.SetClockFrequency(ctx, hz)
}

// SetMaxRecoveries sets the watchdog recovery cap (SET_MAX_RECOVERIES
// command). 0 means unlimited; effective on the next evaluation.
func (c *Core) SetMaxRecoveries(n uint32) {
	c.watchdog.SetMaxRecoveries(n)
}

// Diagnostics assembles the read-only snapshot (QUERY_DIAGNOSTICS command).
// Never mutates state; cross-field consistency is best-effort.
func (c *Core) Diagnostics() domain.Snapshot {
	state := c.controller.SamplerState()
	return domain.Snapshot{
		Active:                c.controller.Active(),
		ClockFrequencyHz:      c.controller.ClockFrequency(),
		SamplerState:          state,
		SamplerStateName:      state.String(),
		Completions:           c.controller.Completions(),
		Faults:                c.recorder.Faults(),
		ConsecutiveRecoveries: c.recorder.ConsecutiveRecoveries(),
		MaxRecoveries:         c.watchdog.MaxRecoveries(),
		StallStreak:           c.watchdog.StallStreak(),
		LastRecoveryState:     c.recorder.LastRecoveryState(),
		DroppedEvents:         c.recorder.Dropped(),
	}
}

// Events drains the best-effort diagnostics event stream.
func (c *Core) Events() []domain.Event {
	return c.recorder.Drain()
}

// Metrics builds Prometheus collectors over the live counters.
func (c *Core) Metrics() *diag.Metrics {
	return diag.NewMetrics(c.recorder, c.controller.Active, c.controller.Completions)
}
