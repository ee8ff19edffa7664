package ports

// TransferEngine is the fixed-topology buffer mover between the sampler's
// two producer sockets and the single USB bulk consumer endpoint. The
// topology and buffer geometry are bound at construction and never change.
type TransferEngine interface {
	// Arm binds the topology and begins accepting buffer completions.
	// Arm must happen before the sampler starts: the engine requests
	// buffers as soon as it runs, and an unarmed engine fails
	// immediately. Arm can fail on resource exhaustion; that failure is
	// fatal to the start sequence but not to the device.
	Arm() error

	// Reset unconditionally tears down in-flight transfers and zeroes
	// the completion counter. Safe to call from any state, including
	// when the engine was never armed.
	Reset() error

	// Completions returns the number of buffers delivered since the
	// last Reset. The counter increments exactly once per buffer,
	// asynchronously, via the engine's own completion notification,
	// never caller-driven. Reads are word-atomic.
	Completions() uint64
}
