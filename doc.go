/*
Package daqstream is the streaming-control core of a USB-attached
data-acquisition device. It starts and stops a continuous producer-consumer
pipeline between a clocked hardware sampler and a USB bulk endpoint, and
survives host misbehavior (crashes, slow consumers, vanishing clocks)
without leaving the device unrecoverable.

There is exactly one streaming session at a time, controlled over a narrow
command set: START, STOP, RESET, SET_CLOCK, SET_MAX_RECOVERIES, and
QUERY_DIAGNOSTICS. A background watchdog detects pipeline stalls and
performs bounded self-recovery.

# Architecture

The core follows a Hexagonal layout. Hardware is reached only through the
capability interfaces in pkg/ports (Sampler, TransferEngine, SampleClock,
BulkEndpoint); the command sequences live in pkg/session; stall detection in
pkg/watchdog; counters, events, and Prometheus collectors in pkg/diag. This
package wires them into a single Core.

# Usage

	hw := daqstream.Hardware{
		Sampler:  sampler,
		Engine:   engine,
		Clock:    sampleClock,
		Endpoint: endpoint,
	}
	core, err := daqstream.New(hw)
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go core.Run(ctx) // watchdog

	if err := core.Start(ctx); err != nil {
		// domain.ErrClockNotReady or domain.ErrSetupFailed
	}
	defer core.Stop(ctx)

Diagnostics never mutate state and are safe to poll from any goroutine:

	snap := core.Diagnostics()
	fmt.Println(snap.Completions, snap.Faults)
*/
package daqstream
