package domain

// SamplerState is the streaming core's projection of the hardware sampler
// state machine. The hardware enum is opaque and device-specific; the core
// only needs to name the states and to classify them as stall indicators.
type SamplerState uint8

const (
	// SamplerIdle: disabled, no waveform running.
	SamplerIdle SamplerState = iota
	// SamplerLoading: waveform being loaded into the sequencer.
	SamplerLoading
	// SamplerArmed: waveform loaded, waiting for the trigger line.
	SamplerArmed
	// SamplerRunning: free-running acquisition, paced by the external clock.
	SamplerRunning
	// SamplerFillingA: pushing samples into buffer A.
	SamplerFillingA
	// SamplerFillingB: pushing samples into buffer B.
	SamplerFillingB
	// SamplerHandoffWaitA: buffer A full, waiting for the transfer engine to take it.
	SamplerHandoffWaitA
	// SamplerHandoffWaitB: buffer B full, waiting for the transfer engine to take it.
	SamplerHandoffWaitB
	// SamplerDrainWait: waiting for the consumer side to drain in-flight data.
	SamplerDrainWait
	// SamplerFaulted: hardware-reported fault, requires a forced stop.
	SamplerFaulted
)

// String returns a short human-readable name for the state.
func (s SamplerState) String() string {
	switch s {
	case SamplerIdle:
		return "idle"
	case SamplerLoading:
		return "loading"
	case SamplerArmed:
		return "armed"
	case SamplerRunning:
		return "running"
	case SamplerFillingA:
		return "filling_a"
	case SamplerFillingB:
		return "filling_b"
	case SamplerHandoffWaitA:
		return "handoff_wait_a"
	case SamplerHandoffWaitB:
		return "handoff_wait_b"
	case SamplerDrainWait:
		return "drain_wait"
	case SamplerFaulted:
		return "faulted"
	default:
		return "unknown"
	}
}

// StallIndicator reports whether the state means the sampler is blocked
// waiting on something that will not resolve on its own. The handoff waits,
// the drain wait, and the fault state are known stall indicators.
//
// Unrecognized values also report true: a state the core cannot classify is
// treated as a stall rather than silently ignored, so the watchdog gets a
// chance to recover from firmware revisions that grow new states.
func (s SamplerState) StallIndicator() bool {
	switch s {
	case SamplerIdle, SamplerLoading, SamplerArmed, SamplerRunning,
		SamplerFillingA, SamplerFillingB:
		return false
	case SamplerHandoffWaitA, SamplerHandoffWaitB, SamplerDrainWait, SamplerFaulted:
		return true
	default:
		return true
	}
}
