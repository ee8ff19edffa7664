package domain

import "errors"

// ErrClockNotReady is returned by Start when the sample clock is disabled or
// unlocked. Nothing has been mutated; the caller may retry once the clock is
// programmed and locked.
var ErrClockNotReady = errors.New("sample clock not ready")

// ErrSetupFailed is returned by Start when arming the transfer engine or
// starting the sampler fails. The core has already forced itself back to the
// fully stopped state; the trigger is never left asserted.
var ErrSetupFailed = errors.New("stream setup failed")

// ErrRebootUnsupported is returned by Reset when no reboot hook has been
// configured for the platform.
var ErrRebootUnsupported = errors.New("reboot not supported on this platform")
