package ports

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TransferEngineTester extends TransferEngine with a completion injector so
// the contract suite can drive progress. Real engines complete buffers from
// hardware notifications; simulated and mock engines expose Complete.
type TransferEngineTester interface {
	TransferEngine

	// Complete delivers n buffer completions as the hardware would.
	Complete(n int)
}

// RunTransferEngineContract verifies that a TransferEngine implementation
// honors the arm/reset/counter contract the session controller depends on.
func RunTransferEngineContract(t *testing.T, newEngine func() TransferEngineTester) {
	t.Run("StartsUnarmedAndZeroed", func(t *testing.T) {
		engine := newEngine()
		assert.Equal(t, uint64(0), engine.Completions())
	})

	t.Run("ArmThenComplete", func(t *testing.T) {
		engine := newEngine()
		require.NoError(t, engine.Arm())

		engine.Complete(3)
		// Completions are asynchronous; allow the notification to land.
		assert.Eventually(t, func() bool {
			return engine.Completions() == 3
		}, time.Second, time.Millisecond)
	})

	t.Run("CounterIsMonotonicWhileArmed", func(t *testing.T) {
		engine := newEngine()
		require.NoError(t, engine.Arm())

		var last uint64
		for i := 0; i < 5; i++ {
			engine.Complete(1)
			assert.Eventually(t, func() bool {
				return engine.Completions() == last+1
			}, time.Second, time.Millisecond)
			last = engine.Completions()
		}
	})

	t.Run("ResetZeroesCounter", func(t *testing.T) {
		engine := newEngine()
		require.NoError(t, engine.Arm())
		engine.Complete(2)
		assert.Eventually(t, func() bool {
			return engine.Completions() == 2
		}, time.Second, time.Millisecond)

		require.NoError(t, engine.Reset())
		assert.Equal(t, uint64(0), engine.Completions())
	})

	t.Run("ResetWithoutArmSucceeds", func(t *testing.T) {
		engine := newEngine()
		require.NoError(t, engine.Reset())
		require.NoError(t, engine.Reset())
		assert.Equal(t, uint64(0), engine.Completions())
	})

	t.Run("RearmAfterResetStartsFresh", func(t *testing.T) {
		engine := newEngine()
		require.NoError(t, engine.Arm())
		engine.Complete(4)
		require.NoError(t, engine.Reset())
		require.NoError(t, engine.Arm())

		engine.Complete(1)
		assert.Eventually(t, func() bool {
			return engine.Completions() == 1
		}, time.Second, time.Millisecond)
	})
}
