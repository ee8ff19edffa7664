package session

import (
	"github.com/acqlab/daqstream/pkg/domain"
	"github.com/acqlab/daqstream/pkg/ports"
)

// Preflight is the read-only precondition gate for Start: the sample clock
// must be enabled and locked. An untriggered sampler with no paced input
// wedges permanently (the hardware has no internal timeout), so starting
// without a clock is never allowed.
//
// Side-effect-free and safe to call repeatedly, e.g. across host retries.
func Preflight(clock ports.SampleClock) error {
	if !clock.Enabled() || !clock.Locked() {
		return domain.ErrClockNotReady
	}
	return nil
}
