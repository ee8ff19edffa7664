package sim

import (
	"errors"
	"sync/atomic"
)

// ErrEngineExhausted is returned by Arm when arm-failure injection is on,
// simulating descriptor/channel exhaustion.
var ErrEngineExhausted = errors.New("sim: transfer engine resources exhausted")

// Engine simulates the fixed-topology buffer transfer engine: two producer
// sockets feeding one consumer, with an engine-owned completion counter.
type Engine struct {
	bufferCount int
	bufferSize  int

	armed       atomic.Bool
	completions atomic.Uint64
	failArm     atomic.Bool

	armCalls   atomic.Uint64
	resetCalls atomic.Uint64
}

// NewEngine creates an engine with the given fixed geometry.
func NewEngine(bufferCount, bufferSize int) *Engine {
	return &Engine{
		bufferCount: bufferCount,
		bufferSize:  bufferSize,
	}
}

// Arm binds the topology and starts accepting completions.
func (e *Engine) Arm() error {
	e.armCalls.Add(1)
	if e.failArm.Load() {
		return ErrEngineExhausted
	}
	e.armed.Store(true)
	return nil
}

// Reset tears down in-flight transfers and zeroes the completion counter.
func (e *Engine) Reset() error {
	e.resetCalls.Add(1)
	e.armed.Store(false)
	e.completions.Store(0)
	return nil
}

// Completions returns buffers delivered since the last Reset.
func (e *Engine) Completions() uint64 {
	return e.completions.Load()
}

// Complete delivers n buffer completions, as the hardware notification
// would. Completions while disarmed are discarded, matching an engine that
// is not requesting buffers.
func (e *Engine) Complete(n int) {
	if !e.armed.Load() {
		return
	}
	e.completions.Add(uint64(n))
}

// Armed reports whether the engine is currently armed.
func (e *Engine) Armed() bool {
	return e.armed.Load()
}

// FailNextArms makes subsequent Arm calls fail until cleared.
func (e *Engine) FailNextArms(fail bool) {
	e.failArm.Store(fail)
}

// ArmCalls returns the number of Arm invocations (for mock assertions).
func (e *Engine) ArmCalls() uint64 {
	return e.armCalls.Load()
}

// ResetCalls returns the number of Reset invocations.
func (e *Engine) ResetCalls() uint64 {
	return e.resetCalls.Load()
}
