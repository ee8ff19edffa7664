package sim

import "sync"

// Clock simulates the sample clock synthesizer. It starts enabled and
// locked; tests flip lock state to exercise preflight and recovery gating.
type Clock struct {
	mu          sync.Mutex
	enabled     bool
	locked      bool
	frequencyHz uint32
}

// NewClock creates an enabled, locked clock at the given rate.
func NewClock(frequencyHz uint32) *Clock {
	return &Clock{
		enabled:     true,
		locked:      true,
		frequencyHz: frequencyHz,
	}
}

// Enabled reports the clock output state.
func (c *Clock) Enabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.enabled
}

// Locked reports synthesizer lock.
func (c *Clock) Locked() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.locked
}

// SetFrequency reprograms the synthesizer. The simulated synthesizer
// relocks instantly.
func (c *Clock) SetFrequency(hz uint32) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.frequencyHz = hz
	c.locked = c.enabled
	return nil
}

// Frequency returns the programmed rate.
func (c *Clock) Frequency() uint32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.frequencyHz
}

// SetEnabled is a test/demo knob for the clock output.
func (c *Clock) SetEnabled(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.enabled = enabled
	if !enabled {
		c.locked = false
	}
}

// SetLocked is a test/demo knob for synthesizer lock.
func (c *Clock) SetLocked(locked bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.locked = locked
}
