package domain_test

import (
	"testing"

	"github.com/acqlab/daqstream/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestSamplerStateString(t *testing.T) {
	cases := []struct {
		state domain.SamplerState
		name  string
	}{
		{domain.SamplerIdle, "idle"},
		{domain.SamplerRunning, "running"},
		{domain.SamplerHandoffWaitA, "handoff_wait_a"},
		{domain.SamplerFaulted, "faulted"},
		{domain.SamplerState(200), "unknown"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.name, tc.state.String())
	}
}

func TestStallIndicator(t *testing.T) {
	blocked := []domain.SamplerState{
		domain.SamplerHandoffWaitA,
		domain.SamplerHandoffWaitB,
		domain.SamplerDrainWait,
		domain.SamplerFaulted,
	}
	for _, s := range blocked {
		assert.True(t, s.StallIndicator(), "state %s should indicate a stall", s)
	}

	healthy := []domain.SamplerState{
		domain.SamplerIdle,
		domain.SamplerLoading,
		domain.SamplerArmed,
		domain.SamplerRunning,
		domain.SamplerFillingA,
		domain.SamplerFillingB,
	}
	for _, s := range healthy {
		assert.False(t, s.StallIndicator(), "state %s should not indicate a stall", s)
	}
}

func TestStallIndicatorUnknownStateIsConservative(t *testing.T) {
	// A state the core cannot classify is treated as a stall so the
	// watchdog still gets a chance to recover.
	assert.True(t, domain.SamplerState(42).StallIndicator())
}
