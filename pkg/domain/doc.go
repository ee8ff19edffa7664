/*
Package domain contains the core domain models for the daqstream streaming core.

It defines the fundamental entities of the streaming pipeline: the sampler
state machine projection, the session lifecycle, diagnostics snapshots, and
the event/hook types used for observability. This package is kept pure and
free of external dependencies like I/O or hardware access, following
Hexagonal Architecture principles.

# Key Entities

  - SamplerState: Opaque projection of the hardware sampler state machine.
  - Snapshot: Read-only diagnostics view assembled on demand.
  - Event: A best-effort textual observability event (state change, recovery, fault).
  - Hooks: Callbacks for host-side observability.
*/
package domain
