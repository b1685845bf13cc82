package dispatch

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/dshills/chatwire/event"
)

// queue is the delivery buffer behind one subscription. It grows without
// bound so the dispatcher never blocks; the consumer drains it at its own
// pace.
type queue struct {
	id   string
	kind event.Kind

	mu     sync.Mutex
	items  []event.Event
	closed bool

	wake chan struct{} // capacity 1, coalesces pushes
	done chan struct{} // closed exactly once, wakes every waiter
}

func newQueue(kind event.Kind) *queue {
	return &queue{
		id:   uuid.New().String(),
		kind: kind,
		wake: make(chan struct{}, 1),
		done: make(chan struct{}),
	}
}

// push appends an event. It reports false when the queue is closed, which
// tells the dispatcher to drop its reference.
func (q *queue) push(e event.Event) bool {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return false
	}
	q.items = append(q.items, e)
	q.mu.Unlock()

	select {
	case q.wake <- struct{}{}:
	default:
	}
	return true
}

// pop removes the oldest event, blocking until one arrives, the queue is
// closed, or ctx is done.
func (q *queue) pop(ctx context.Context) (event.Event, error) {
	for {
		q.mu.Lock()
		if len(q.items) > 0 {
			e := q.items[0]
			q.items = q.items[1:]
			if len(q.items) == 0 {
				q.items = nil // release the drained backing array
			}
			q.mu.Unlock()
			return e, nil
		}
		closed := q.closed
		q.mu.Unlock()

		if closed {
			return nil, ErrSubscriptionClosed
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-q.done:
			return nil, ErrSubscriptionClosed
		case <-q.wake:
		}
	}
}

// tryPop removes the oldest event without blocking.
func (q *queue) tryPop() (event.Event, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return nil, false
	}
	e := q.items[0]
	q.items = q.items[1:]
	if len(q.items) == 0 {
		q.items = nil
	}
	return e, true
}

func (q *queue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

func (q *queue) isClosed() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.closed
}

// close marks the queue dead and discards anything still buffered. Safe to
// call more than once.
func (q *queue) close() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	q.items = nil
	close(q.done)
	q.mu.Unlock()
}
