package domain

// Snapshot is the read-only diagnostics projection exposed to the control
// interface. It is assembled on demand from live counters and state.
//
// Cross-field consistency is best-effort: each field is read atomically, but
// the snapshot as a whole is not taken under a lock, so fields may reflect
// slightly different instants. This is deliberate: diagnostics must never
// contend with the streaming path.
type Snapshot struct {
	// Active reports whether a streaming session is in progress.
	Active bool `json:"active"`

	// ClockFrequencyHz is the most recently requested sample clock rate.
	ClockFrequencyHz uint32 `json:"clock_frequency_hz"`

	// SamplerState is the sampler state at snapshot time.
	SamplerState SamplerState `json:"sampler_state"`
	// SamplerStateName is SamplerState.String(), for human consumers.
	SamplerStateName string `json:"sampler_state_name"`

	// Completions is the number of buffers delivered this session.
	Completions uint64 `json:"completions"`

	// Faults is the cumulative fault counter. It survives Start/Stop and
	// is zeroed only at boot.
	Faults uint64 `json:"faults"`

	// ConsecutiveRecoveries counts watchdog recoveries since the last
	// explicit Start/Stop or observed progress.
	ConsecutiveRecoveries uint32 `json:"consecutive_recoveries"`

	// MaxRecoveries is the configured recovery cap (0 = unlimited).
	MaxRecoveries uint32 `json:"max_recoveries"`

	// StallStreak is the number of consecutive no-progress watchdog ticks.
	StallStreak uint32 `json:"stall_streak"`

	// LastRecoveryState is the sampler state observed at the most recent
	// recovery, for host polling. Meaningful only when Faults > 0.
	LastRecoveryState SamplerState `json:"last_recovery_state"`

	// DroppedEvents counts diagnostics events discarded because the
	// mailbox was full.
	DroppedEvents uint64 `json:"dropped_events"`
}
