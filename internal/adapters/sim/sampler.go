package sim

import (
	"sync"

	"github.com/acqlab/daqstream/pkg/domain"
)

// Sampler simulates the hardware sampler state machine. It tracks the
// loaded/triggered flags and derives a plausible state; the Wedge injector
// parks it in a buffer-handoff wait to drive stall detection.
type Sampler struct {
	mu      sync.Mutex
	loaded  bool
	trigger bool
	wedged  bool
}

// NewSampler creates an idle sampler.
func NewSampler() *Sampler {
	return &Sampler{}
}

// Disable force-stops the sampler. Idempotent.
func (s *Sampler) Disable(force bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loaded = false
	return nil
}

// LoadAndStart reloads the waveform and starts from reset. The sampler
// parks armed; it does not run until the trigger is asserted.
func (s *Sampler) LoadAndStart() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loaded = true
	return nil
}

// SetTrigger asserts or deasserts the trigger line.
func (s *Sampler) SetTrigger(on bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trigger = on
	return nil
}

// State derives the current sampler state.
func (s *Sampler) State() domain.SamplerState {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case !s.loaded:
		return domain.SamplerIdle
	case !s.trigger:
		return domain.SamplerArmed
	case s.wedged:
		return domain.SamplerHandoffWaitA
	default:
		return domain.SamplerRunning
	}
}

// Running reports whether the sampler is loaded, triggered, and not wedged.
func (s *Sampler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded && s.trigger && !s.wedged
}

// TriggerAsserted reports the trigger line, for invariant checks.
func (s *Sampler) TriggerAsserted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.trigger
}

// Wedge parks the sampler in a buffer-handoff wait until Unwedge. The wedge
// survives reloads, simulating a persistent downstream blockage.
func (s *Sampler) Wedge() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wedged = true
}

// Unwedge clears the wedge injector.
func (s *Sampler) Unwedge() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wedged = false
}
