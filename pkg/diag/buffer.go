package diag

import (
	"sync/atomic"

	"github.com/acqlab/daqstream/pkg/domain"
)

// DefaultBufferCapacity bounds the event mailbox. Events beyond this are
// dropped until the host drains.
const DefaultBufferCapacity = 64

// Buffer is a bounded event mailbox between the background context (which
// appends) and the command context (which drains). Appends never block:
// a full mailbox drops the event and counts the drop.
type Buffer struct {
	events  chan domain.Event
	dropped atomic.Uint64
}

// NewBuffer creates a mailbox with the given capacity. capacity <= 0 falls
// back to DefaultBufferCapacity.
func NewBuffer(capacity int) *Buffer {
	if capacity <= 0 {
		capacity = DefaultBufferCapacity
	}
	return &Buffer{
		events: make(chan domain.Event, capacity),
	}
}

// TryPublish appends an event without blocking. Returns false when the
// mailbox was full and the event was dropped.
func (b *Buffer) TryPublish(event domain.Event) bool {
	select {
	case b.events <- event:
		return true
	default:
		b.dropped.Add(1)
		return false
	}
}

// Drain removes and returns all currently queued events without blocking.
// Returns nil when the mailbox is empty.
func (b *Buffer) Drain() []domain.Event {
	var drained []domain.Event
	for {
		select {
		case event := <-b.events:
			drained = append(drained, event)
		default:
			return drained
		}
	}
}

// Dropped returns the cumulative number of events discarded on a full
// mailbox.
func (b *Buffer) Dropped() uint64 {
	return b.dropped.Load()
}
