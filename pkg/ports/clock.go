package ports

// SampleClock is the enable/lock surface of the external clock synthesizer.
// Register-level programming lives outside the core; the core only gates on
// readiness and delegates frequency changes.
type SampleClock interface {
	// Enabled reports whether the clock output is enabled.
	Enabled() bool

	// Locked reports whether the synthesizer has achieved lock. An
	// enabled but unlocked clock produces no usable edges.
	Locked() bool

	// SetFrequency reprograms the synthesizer. Callers must ensure no
	// session is active: reprogramming mid-stream corrupts in-flight
	// data (the session controller enforces this).
	SetFrequency(hz uint32) error
}
