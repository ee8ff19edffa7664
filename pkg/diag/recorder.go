package diag

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/acqlab/daqstream/internal/logging"
	"github.com/acqlab/daqstream/pkg/domain"
)

// Recorder couples the shared counters, the event mailbox, the host hooks,
// and the logger. Both the session controller and the watchdog write through
// one Recorder; the command context reads from it.
type Recorder struct {
	buffer *Buffer
	hooks  domain.Hooks
	logger *slog.Logger

	faults                atomic.Uint64
	consecutiveRecoveries atomic.Uint32
	lastRecoveryState     atomic.Uint32
}

// Option configures a Recorder.
type Option func(*Recorder)

// WithLogger configures a logger for recorded events.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Recorder) {
		r.logger = logger
	}
}

// WithHooks registers host-side observability callbacks.
func WithHooks(hooks domain.Hooks) Option {
	return func(r *Recorder) {
		r.hooks = hooks
	}
}

// WithBufferCapacity overrides the event mailbox capacity.
func WithBufferCapacity(capacity int) Option {
	return func(r *Recorder) {
		r.buffer = NewBuffer(capacity)
	}
}

// NewRecorder creates a Recorder with a default-capacity mailbox and a
// no-op logger.
func NewRecorder(opts ...Option) *Recorder {
	r := &Recorder{
		buffer: NewBuffer(DefaultBufferCapacity),
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// StateChanged records a session lifecycle transition.
func (r *Recorder) StateChanged(ctx context.Context, active bool, state domain.SamplerState) {
	r.logger.Info("state changed", "active", active, "sampler_state", state.String())
	r.publish(domain.EventStateChanged,
		fmt.Sprintf("state changed: active=%t sampler=%s", active, state))
	if r.hooks.OnStateChange != nil {
		r.hooks.OnStateChange(ctx, &domain.StateChange{Active: active, SamplerState: state})
	}
}

// RecoveryAttempted records one watchdog recovery: it increments the
// cumulative fault counter and the consecutive-recovery counter, remembers
// the wedged sampler state for host polling, and emits events.
func (r *Recorder) RecoveryAttempted(ctx context.Context, restarted bool, state domain.SamplerState) {
	faults := r.faults.Add(1)
	consecutive := r.consecutiveRecoveries.Add(1)
	r.lastRecoveryState.Store(uint32(state))

	r.logger.Warn("recovery attempted",
		"restarted", restarted,
		"sampler_state", state.String(),
		"consecutive", consecutive,
		"faults", faults,
	)
	r.publish(domain.EventRecovery,
		fmt.Sprintf("recovery attempted: restarted=%t sampler=%s", restarted, state))
	r.publish(domain.EventFault, fmt.Sprintf("fault count %d", faults))

	if r.hooks.OnRecovery != nil {
		r.hooks.OnRecovery(ctx, &domain.RecoveryEvent{
			Restarted:    restarted,
			SamplerState: state,
			Consecutive:  consecutive,
		})
	}
	if r.hooks.OnFault != nil {
		r.hooks.OnFault(ctx, &domain.FaultEvent{Total: faults})
	}
}

// ResetRecoveries zeroes the consecutive-recovery counter. Called on every
// explicit Start/Stop and whenever the completion counter advances.
func (r *Recorder) ResetRecoveries() {
	r.consecutiveRecoveries.Store(0)
}

// Faults returns the cumulative fault counter.
func (r *Recorder) Faults() uint64 {
	return r.faults.Load()
}

// ConsecutiveRecoveries returns the recovery count since the last explicit
// command or observed progress.
func (r *Recorder) ConsecutiveRecoveries() uint32 {
	return r.consecutiveRecoveries.Load()
}

// LastRecoveryState returns the sampler state observed at the most recent
// recovery.
func (r *Recorder) LastRecoveryState() domain.SamplerState {
	return domain.SamplerState(r.lastRecoveryState.Load())
}

// Drain empties the event mailbox.
func (r *Recorder) Drain() []domain.Event {
	return r.buffer.Drain()
}

// Dropped returns the number of events discarded on a full mailbox.
func (r *Recorder) Dropped() uint64 {
	return r.buffer.Dropped()
}

func (r *Recorder) publish(kind domain.EventKind, message string) {
	r.buffer.TryPublish(domain.Event{
		Timestamp: time.Now(),
		Kind:      kind,
		Message:   message,
	})
}
