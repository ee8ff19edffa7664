package sim

import (
	"context"
	"time"
)

// Rig bundles a complete simulated device: clock, sampler, transfer engine,
// and bulk endpoint, wired the way the real board is.
type Rig struct {
	Clock    *Clock
	Sampler  *Sampler
	Engine   *Engine
	Endpoint *Endpoint
}

// NewRig builds a rig with the given clock rate and engine geometry.
func NewRig(frequencyHz uint32, bufferCount, bufferSize int) *Rig {
	return &Rig{
		Clock:    NewClock(frequencyHz),
		Sampler:  NewSampler(),
		Engine:   NewEngine(bufferCount, bufferSize),
		Endpoint: NewEndpoint(),
	}
}

// Produce runs the acquisition side of the rig: while the sampler is
// free-running and the engine is armed, one buffer completes per interval.
// Blocks until the context is cancelled. Used by the demo daemon.
func (r *Rig) Produce(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if r.Sampler.Running() && r.Clock.Locked() {
				r.Engine.Complete(1)
			}
		}
	}
}
