/*
Package session implements the streaming session controller: the START,
STOP, RESET, and SET_CLOCK command sequences over the sampler, transfer
engine, clock service, and bulk endpoint ports.

There is exactly one session. Every mutation sequence either completes fully
or short-circuits back to the fully stopped state: the pipeline is never
left partially started. All hardware mutations (commands and watchdog
recovery alike) are serialized through one mutex, trading up to one watchdog
tick of latency for the removal of command-vs-recovery races.
*/
package session
