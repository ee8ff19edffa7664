/*
Package sim provides an in-memory simulated acquisition rig implementing the
hardware ports. It is used by the demo daemon and by tests that need a full
pipeline without hardware.

The simulated sampler honors the real ordering constraints (engine armed
before trigger, no auto-advance after a bare reload) and exposes fault
injectors (Wedge, clock unlock) so stall and recovery paths can be driven
deterministically.
*/
package sim
