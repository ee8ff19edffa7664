/*
Package watchdog implements the background stall detector for the streaming
pipeline. It runs on a fixed tick, watches the buffer completion counter and
the sampler state, and performs bounded self-recovery when the pipeline
stops making progress.

The recovery bound is the critical property: an abandoned session (host
crashed without STOP) must not cause infinite teardown/rebuild cycles. Once
the consecutive-recovery cap is reached the watchdog stands down until an
explicit command or renewed progress resets the count.

The watchdog never reports errors to a caller; outcomes are observable only
through diagnostics. Every call it makes is synchronous and bounded, so an
evaluation never outlives its tick.
*/
package watchdog
