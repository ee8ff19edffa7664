package ports

import "github.com/acqlab/daqstream/pkg/domain"

// Sampler is the capability surface of the hardware sampler state machine.
// The internal 10-state transition table is hardware-specific and opaque;
// the core only disables, reloads, triggers, and observes it.
//
// All methods are synchronous and bounded. There is deliberately no
// "graceful stop" variant: a blocked hardware state never finishes on its
// own, so waiting for one is never safe.
type Sampler interface {
	// Disable force-stops the sampler. Idempotent: disabling an already
	// idle sampler is a no-op. force is always honored; there is no
	// graceful path.
	Disable(force bool) error

	// LoadAndStart reloads the waveform program and starts the state
	// machine from reset. It does not assert the trigger; the sampler
	// parks in the armed state until SetTrigger(true).
	LoadAndStart() error

	// SetTrigger asserts or deasserts the trigger line. The sampler only
	// free-runs while the trigger is asserted.
	SetTrigger(on bool) error

	// State returns the current sampler state. Read-only and safe to
	// call from any context.
	State() domain.SamplerState
}
