/*
Package ports defines the driven ports (interfaces) for the daqstream core.

These interfaces decouple the streaming logic from the hardware it drives,
allowing the core to work with real register-level drivers, the simulated rig,
or test mocks interchangeably.

# Key Interfaces

  - Sampler: The clocked, waveform-programmed acquisition engine (HSSM).
  - TransferEngine: The fixed-topology buffer mover between sampler and USB.
  - SampleClock: The external clock synthesizer's enable/lock surface.
  - BulkEndpoint: The USB bulk consumer endpoint's flush surface.
*/
package ports
