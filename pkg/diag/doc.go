/*
Package diag provides the diagnostics channel for the streaming core: the
cumulative fault and recovery counters shared across execution contexts, the
bounded best-effort event mailbox, and Prometheus collectors over both.

Counters are plain atomics, the only state read and written across
the command and watchdog contexts without a lock. The event mailbox is a
bounded single-producer/single-consumer channel with a non-blocking
try-append: the background context must never block on a full mailbox,
because the draining context cannot run while the appender is blocked.
*/
package diag
