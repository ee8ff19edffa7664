package diag_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acqlab/daqstream/pkg/diag"
	"github.com/acqlab/daqstream/pkg/domain"
)

func TestRecorderCounters(t *testing.T) {
	recorder := diag.NewRecorder()
	ctx := context.Background()

	assert.Equal(t, uint64(0), recorder.Faults())
	assert.Equal(t, uint32(0), recorder.ConsecutiveRecoveries())

	recorder.RecoveryAttempted(ctx, true, domain.SamplerHandoffWaitA)
	recorder.RecoveryAttempted(ctx, true, domain.SamplerDrainWait)
	assert.Equal(t, uint64(2), recorder.Faults())
	assert.Equal(t, uint32(2), recorder.ConsecutiveRecoveries())
	assert.Equal(t, domain.SamplerDrainWait, recorder.LastRecoveryState())

	// The cumulative fault counter survives the consecutive reset.
	recorder.ResetRecoveries()
	assert.Equal(t, uint32(0), recorder.ConsecutiveRecoveries())
	assert.Equal(t, uint64(2), recorder.Faults())
	assert.Equal(t, domain.SamplerDrainWait, recorder.LastRecoveryState())
}

func TestRecorderEvents(t *testing.T) {
	recorder := diag.NewRecorder()
	ctx := context.Background()

	recorder.StateChanged(ctx, true, domain.SamplerRunning)
	recorder.RecoveryAttempted(ctx, false, domain.SamplerHandoffWaitB)

	events := recorder.Drain()
	require.Len(t, events, 3)
	assert.Equal(t, domain.EventStateChanged, events[0].Kind)
	assert.Contains(t, events[0].Message, "active=true")
	assert.Equal(t, domain.EventRecovery, events[1].Kind)
	assert.Contains(t, events[1].Message, "restarted=false")
	assert.Equal(t, domain.EventFault, events[2].Kind)
	assert.Contains(t, events[2].Message, "fault count 1")
}

func TestRecorderHooks(t *testing.T) {
	var stateChanges []*domain.StateChange
	var recoveries []*domain.RecoveryEvent
	var faults []*domain.FaultEvent

	recorder := diag.NewRecorder(diag.WithHooks(domain.Hooks{
		OnStateChange: func(_ context.Context, sc *domain.StateChange) {
			stateChanges = append(stateChanges, sc)
		},
		OnRecovery: func(_ context.Context, re *domain.RecoveryEvent) {
			recoveries = append(recoveries, re)
		},
		OnFault: func(_ context.Context, fe *domain.FaultEvent) {
			faults = append(faults, fe)
		},
	}))
	ctx := context.Background()

	recorder.StateChanged(ctx, true, domain.SamplerRunning)
	recorder.RecoveryAttempted(ctx, true, domain.SamplerFillingB)

	require.Len(t, stateChanges, 1)
	assert.True(t, stateChanges[0].Active)
	assert.Equal(t, domain.SamplerRunning, stateChanges[0].SamplerState)

	require.Len(t, recoveries, 1)
	assert.True(t, recoveries[0].Restarted)
	assert.Equal(t, domain.SamplerFillingB, recoveries[0].SamplerState)
	assert.Equal(t, uint32(1), recoveries[0].Consecutive)

	require.Len(t, faults, 1)
	assert.Equal(t, uint64(1), faults[0].Total)
}

func TestRecorderOverflowIsCounted(t *testing.T) {
	recorder := diag.NewRecorder(diag.WithBufferCapacity(2))
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		recorder.StateChanged(ctx, true, domain.SamplerRunning)
	}
	assert.Equal(t, uint64(3), recorder.Dropped())
	assert.Len(t, recorder.Drain(), 2)
}
