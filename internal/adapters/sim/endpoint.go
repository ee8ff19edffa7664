package sim

import "sync/atomic"

// Endpoint simulates the USB bulk consumer endpoint.
type Endpoint struct {
	flushes atomic.Uint64
}

// NewEndpoint creates an endpoint.
func NewEndpoint() *Endpoint {
	return &Endpoint{}
}

// Flush reclaims descriptors. The simulated pool never exhausts.
func (e *Endpoint) Flush() error {
	e.flushes.Add(1)
	return nil
}

// Flushes returns the number of Flush invocations.
func (e *Endpoint) Flushes() uint64 {
	return e.flushes.Load()
}
