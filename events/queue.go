package events

import (
	"sync/atomic"

	"github.com/lixenwraith/panic-burger/constants"
)

// Queue is a lock-free MPSC ring buffer for game events
// Thread-Safety:
//   - Push: Lock-free CAS, multiple producers OK (terminal poller, HTTP feed, game loop)
//   - Drain: Single consumer (the frame loop)
//   - Published flags prevent reading partial writes
//
// Overflow: Oldest events overwritten when full, counted in Dropped
type Queue struct {
	slots     [constants.EventQueueSize]GameEvent
	published [constants.EventQueueSize]atomic.Bool
	head      atomic.Uint64
	tail      atomic.Uint64
	dropped   atomic.Uint64
}

// NewQueue creates an empty event queue
func NewQueue() *Queue {
	return &Queue{}
}

// Push adds an event; safe for concurrent producers
func (q *Queue) Push(ev GameEvent) {
	for {
		tail := q.tail.Load()
		next := tail + 1

		if !q.tail.CompareAndSwap(tail, next) {
			continue
		}

		idx := tail & constants.EventBufferMask
		q.slots[idx] = ev
		q.published[idx].Store(true) // MUST be after write

		// Advance head if overwriting unread events
		head := q.head.Load()
		if next-head > constants.EventQueueSize {
			if q.head.CompareAndSwap(head, next-constants.EventQueueSize) {
				q.dropped.Add(next - constants.EventQueueSize - head)
			}
		}
		return
	}
}

// Emit pushes an event built from its parts
func (q *Queue) Emit(t EventType, payload any, frame int64) {
	q.Push(GameEvent{Type: t, Payload: payload, Frame: frame})
}

// Drain appends all pending events to dst in FIFO order and advances head
// Passing a reused dst[:0] keeps the frame loop allocation-free
func (q *Queue) Drain(dst []GameEvent) []GameEvent {
	for {
		head := q.head.Load()
		tail := q.tail.Load()

		if tail == head {
			return dst
		}

		avail := tail - head
		if avail > constants.EventQueueSize {
			avail = constants.EventQueueSize
			head = tail - constants.EventQueueSize
		}

		start := len(dst)
		for i := uint64(0); i < avail; i++ {
			idx := (head + i) & constants.EventBufferMask
			if !q.published[idx].Load() {
				break // Writer incomplete
			}
			dst = append(dst, q.slots[idx])
			q.published[idx].Store(false)
		}

		taken := uint64(len(dst) - start)
		if q.head.CompareAndSwap(head, head+taken) {
			return dst
		}
		dst = dst[:start]
	}
}

// Len returns the number of events waiting to be drained
func (q *Queue) Len() int {
	n := q.tail.Load() - q.head.Load()
	if n > constants.EventQueueSize {
		n = constants.EventQueueSize
	}
	return int(n)
}

// Dropped returns how many unread events were overwritten
func (q *Queue) Dropped() uint64 {
	return q.dropped.Load()
}
