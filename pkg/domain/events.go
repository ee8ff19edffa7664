package domain

import (
	"context"
	"time"
)

// EventKind defines the category of a diagnostics event.
type EventKind string

const (
	EventStateChanged EventKind = "state_changed"
	EventRecovery     EventKind = "recovery_attempted"
	EventFault        EventKind = "fault"
)

// Event is one entry in the best-effort textual event stream. Events are
// published through a bounded mailbox and may be dropped under pressure;
// they are telemetry, never control flow.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Kind      EventKind `json:"kind"`
	Message   string    `json:"message"`
}

// StateChange describes a session lifecycle transition.
type StateChange struct {
	Active       bool         `json:"active"`
	SamplerState SamplerState `json:"sampler_state"`
}

// RecoveryEvent describes one watchdog recovery attempt.
type RecoveryEvent struct {
	// Restarted is true when the clock was still locked and streaming was
	// re-armed; false when the core was left stopped awaiting the host.
	Restarted bool `json:"restarted"`
	// SamplerState is the state the sampler was wedged in when the
	// watchdog intervened.
	SamplerState SamplerState `json:"sampler_state"`
	// Consecutive is the recovery count since the last explicit command
	// or observed progress.
	Consecutive uint32 `json:"consecutive"`
}

// FaultEvent carries the cumulative fault counter at the time of the fault.
type FaultEvent struct {
	Total uint64 `json:"total"`
}

// Hooks defines callbacks for host-side observability. All hooks are
// optional and are invoked synchronously from the mutating context; they
// must return quickly and must not call back into the core.
type Hooks struct {
	OnStateChange func(context.Context, *StateChange)
	OnRecovery    func(context.Context, *RecoveryEvent)
	OnFault       func(context.Context, *FaultEvent)
}
