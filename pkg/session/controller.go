package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/acqlab/daqstream/internal/logging"
	"github.com/acqlab/daqstream/pkg/diag"
	"github.com/acqlab/daqstream/pkg/domain"
	"github.com/acqlab/daqstream/pkg/ports"
)

// DefaultSettleDelay is the pause between resetting the transfer engine and
// any later re-arm. Re-arming immediately after a reset corrupts engine
// state across rapid stop/start cycles.
const DefaultSettleDelay = 2 * time.Millisecond

// Controller owns the single streaming session. All sampler and engine
// mutations, command-driven and watchdog-driven alike, go through its mutex.
type Controller struct {
	mu sync.Mutex

	sampler  ports.Sampler
	engine   ports.TransferEngine
	clock    ports.SampleClock
	endpoint ports.BulkEndpoint

	recorder *diag.Recorder
	logger   *slog.Logger

	settleDelay time.Duration
	sleep       func(time.Duration)
	rebootFn    func() error

	// active and clockFrequencyHz are read lock-free by the watchdog and
	// by diagnostics snapshots. generation increments on every explicit
	// Start and Stop so the watchdog can tell a restarted session apart
	// from a continuing one.
	active           atomic.Bool
	clockFrequencyHz atomic.Uint32
	generation       atomic.Uint64
}

// Option configures the Controller.
type Option func(*Controller)

// WithLogger configures a logger for controller events.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// WithSettleDelay overrides the post-reset settle delay. Tests set it to
// zero; hardware keeps the default.
func WithSettleDelay(d time.Duration) Option {
	return func(c *Controller) {
		c.settleDelay = d
	}
}

// WithRebootFunc installs the platform reboot hook used by Reset.
func WithRebootFunc(fn func() error) Option {
	return func(c *Controller) {
		c.rebootFn = fn
	}
}

// NewController creates the session controller over the four hardware ports.
func NewController(
	sampler ports.Sampler,
	engine ports.TransferEngine,
	clock ports.SampleClock,
	endpoint ports.BulkEndpoint,
	recorder *diag.Recorder,
	opts ...Option,
) *Controller {
	c := &Controller{
		sampler:     sampler,
		engine:      engine,
		clock:       clock,
		endpoint:    endpoint,
		recorder:    recorder,
		logger:      logging.NewNop(),
		settleDelay: DefaultSettleDelay,
		sleep:       time.Sleep,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start begins a streaming session. It is safe to call from any prior state:
// the pipeline is unconditionally forced down before being rebuilt, so Start
// doubles as the recovery path after an abnormal teardown.
//
// Failure modes: domain.ErrClockNotReady when the preflight gate rejects
// (nothing mutated), domain.ErrSetupFailed when arming or starting the
// pipeline fails (the controller has already returned to the fully stopped
// state, trigger deasserted).
func (c *Controller) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := Preflight(c.clock); err != nil {
		c.logger.Warn("start rejected", "err", err)
		return err
	}

	// Force the pipeline down regardless of prior history. This also
	// zeroes the completion counter (engine reset) and reclaims USB
	// descriptors (flush).
	c.quiesceLocked()
	c.active.Store(false)
	c.recorder.ResetRecoveries()

	if err := c.bringUpLocked(); err != nil {
		return err
	}

	c.active.Store(true)
	c.generation.Add(1)
	c.recorder.StateChanged(ctx, true, c.sampler.State())
	c.logger.Info("session started", "clock_hz", c.clockFrequencyHz.Load())
	return nil
}

// Stop ends the session. It cannot fail and is callable from any state;
// error paths and the watchdog both rely on that. Stopping an already
// stopped session changes nothing.
func (c *Controller) Stop(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked(ctx)
}

// Reset reboots the device. Unconditional and not resumable; it sits outside
// the recovery semantics entirely. The pipeline is quiesced best-effort
// first so the hardware is not mid-transfer when the reboot hits.
func (c *Controller) Reset(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.rebootFn == nil {
		return domain.ErrRebootUnsupported
	}
	c.stopLocked(ctx)
	c.logger.Info("rebooting")
	return c.rebootFn()
}

// SetClockFrequency reprograms the sample clock. Reprogramming mid-session
// corrupts in-flight data, so an active session is force-stopped first.
// This ordering is a hard cross-component precondition, not an optimization.
func (c *Controller) SetClockFrequency(ctx context.Context, hz uint32) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.active.Load() {
		c.logger.Info("stopping session before clock change", "clock_hz", hz)
		c.stopLocked(ctx)
	}
	if err := c.clock.SetFrequency(hz); err != nil {
		return fmt.Errorf("setting clock frequency: %w", err)
	}
	c.clockFrequencyHz.Store(hz)
	return nil
}

// Recover is the watchdog's bounded self-recovery sequence: tear the wedged
// pipeline down, and when the clock still provides edges, rebuild it in the
// same order Start uses. When the clock is gone there is nothing to pace
// acquisition, so the core stays stopped and waits for the host.
//
// Returns true when streaming was restarted. Recover never fails outward;
// outcomes are observable only through diagnostics.
func (c *Controller) Recover(ctx context.Context) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	// The watchdog polls Active lock-free before calling Recover. A STOP
	// that slips into that window wins: the session it stopped must stay
	// stopped.
	if !c.active.Load() {
		return false
	}

	wedged := c.sampler.State()
	c.quiesceLocked()

	if !c.clock.Locked() {
		c.active.Store(false)
		c.recorder.RecoveryAttempted(ctx, false, wedged)
		c.recorder.StateChanged(ctx, false, c.sampler.State())
		c.logger.Warn("recovery: clock unlocked, staying stopped")
		return false
	}

	if err := c.bringUpLocked(); err != nil {
		c.active.Store(false)
		c.recorder.RecoveryAttempted(ctx, false, wedged)
		c.recorder.StateChanged(ctx, false, c.sampler.State())
		c.logger.Warn("recovery: restart failed", "err", err)
		return false
	}

	c.active.Store(true)
	c.recorder.RecoveryAttempted(ctx, true, wedged)
	return true
}

// Active reports whether a session is in progress. Lock-free.
func (c *Controller) Active() bool {
	return c.active.Load()
}

// ClockFrequency returns the most recently requested clock rate. Lock-free.
func (c *Controller) ClockFrequency() uint32 {
	return c.clockFrequencyHz.Load()
}

// Generation returns a counter that advances on every explicit Start and
// Stop. The watchdog compares generations across ticks so a session
// restarted between two ticks is never measured against the previous
// session's completion baseline. Lock-free.
func (c *Controller) Generation() uint64 {
	return c.generation.Load()
}

// Completions returns the engine's completion counter for this session.
func (c *Controller) Completions() uint64 {
	return c.engine.Completions()
}

// SamplerState returns the sampler's current state.
func (c *Controller) SamplerState() domain.SamplerState {
	return c.sampler.State()
}

// stopLocked runs the full STOP sequence. It never fails: individual
// hardware errors are logged and the teardown continues.
func (c *Controller) stopLocked(ctx context.Context) {
	wasActive := c.active.Load()
	c.quiesceLocked()
	c.active.Store(false)
	c.generation.Add(1)
	c.recorder.ResetRecoveries()
	if wasActive {
		c.recorder.StateChanged(ctx, false, c.sampler.State())
		c.logger.Info("session stopped")
	}
}

// quiesceLocked is STOP steps 1–5: deassert the trigger so nothing
// downstream can re-enable an active state, force-stop the sampler, reset
// the engine (zeroing the completion counter), settle, and flush the
// endpoint.
//
// The waveform is deliberately not reloaded here: immediately after a
// reload the trigger line and stale buffer-ready signals can still read as
// satisfied, which auto-advances the state machine through its startup
// chain. Reload belongs exclusively to the bring-up path.
func (c *Controller) quiesceLocked() {
	if err := c.sampler.SetTrigger(false); err != nil {
		c.logger.Warn("deasserting trigger", "err", err)
	}
	if err := c.sampler.Disable(true); err != nil {
		c.logger.Warn("force-stopping sampler", "err", err)
	}
	if err := c.engine.Reset(); err != nil {
		c.logger.Warn("resetting transfer engine", "err", err)
	}
	if c.settleDelay > 0 {
		c.sleep(c.settleDelay)
	}
	if err := c.endpoint.Flush(); err != nil {
		c.logger.Warn("flushing endpoint", "err", err)
	}
}

// bringUpLocked is START steps 5–7: arm the engine, reload and start the
// sampler, then assert the trigger. The engine must be armed before the
// sampler runs: it requests buffers immediately, and an unarmed engine
// fails the first request. Any failure unwinds to the fully stopped state
// with the trigger deasserted.
func (c *Controller) bringUpLocked() error {
	if err := c.engine.Arm(); err != nil {
		c.logger.Error("arming transfer engine", "err", err)
		return fmt.Errorf("%w: arming transfer engine: %v", domain.ErrSetupFailed, err)
	}
	if err := c.sampler.LoadAndStart(); err != nil {
		c.logger.Error("starting sampler", "err", err)
		// Disarm so the engine is not left requesting buffers from a
		// dead sampler.
		if resetErr := c.engine.Reset(); resetErr != nil {
			c.logger.Warn("resetting engine after failed start", "err", resetErr)
		}
		return fmt.Errorf("%w: starting sampler: %v", domain.ErrSetupFailed, err)
	}
	if err := c.sampler.SetTrigger(true); err != nil {
		c.logger.Error("asserting trigger", "err", err)
		c.quiesceLocked()
		return fmt.Errorf("%w: asserting trigger: %v", domain.ErrSetupFailed, err)
	}
	return nil
}
