package daqstream_test

import (
	"context"
	"fmt"
	"log"

	"github.com/acqlab/daqstream"
	"github.com/acqlab/daqstream/internal/adapters/sim"
)

// Example shows the minimal host flow: wire a Core over a hardware rig,
// run the watchdog in the background, and drive a session.
func Example() {
	rig := sim.NewRig(1_000_000, 2, 16384)
	core, err := daqstream.New(daqstream.Hardware{
		Sampler:  rig.Sampler,
		Engine:   rig.Engine,
		Clock:    rig.Clock,
		Endpoint: rig.Endpoint,
	}, daqstream.WithSettleDelay(0))
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go core.Run(ctx)

	if err := core.Start(ctx); err != nil {
		log.Fatal(err)
	}
	rig.Engine.Complete(2)

	snapshot := core.Diagnostics()
	fmt.Println("active:", snapshot.Active)
	fmt.Println("sampler:", snapshot.SamplerStateName)
	fmt.Println("completions:", snapshot.Completions)

	core.Stop(ctx)
	fmt.Println("active after stop:", core.Diagnostics().Active)

	// Output:
	// active: true
	// sampler: running
	// completions: 2
	// active after stop: false
}
