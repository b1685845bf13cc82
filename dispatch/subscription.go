package dispatch

import (
	"context"

	"github.com/dshills/chatwire/event"
)

// Subscription is a typed view over one delivery queue. Events of M's kind
// arrive in dispatch order and stay buffered until consumed, so a slow
// consumer delays nobody but itself.
//
// A subscription is meant for a single consuming goroutine.
type Subscription[M event.Event] struct {
	d *Dispatcher
	q *queue
}

// ID returns the unique id assigned at subscribe time.
func (s *Subscription[M]) ID() string { return s.q.id }

// Kind returns the event kind this subscription receives.
func (s *Subscription[M]) Kind() event.Kind { return s.q.kind }

// Len reports how many events are waiting.
func (s *Subscription[M]) Len() int { return s.q.len() }

// Next returns the oldest pending event, blocking until one arrives. It
// returns ErrSubscriptionClosed once the subscription is closed and the
// context error if ctx ends the wait first.
func (s *Subscription[M]) Next(ctx context.Context) (M, error) {
	for {
		e, err := s.q.pop(ctx)
		if err != nil {
			var zero M
			return zero, err
		}
		if m, ok := e.(M); ok {
			return m, nil
		}
	}
}

// TryNext returns the oldest pending event without blocking. ok is false
// when the queue is empty.
func (s *Subscription[M]) TryNext() (M, bool) {
	for {
		e, ok := s.q.tryPop()
		if !ok {
			var zero M
			return zero, false
		}
		if m, ok := e.(M); ok {
			return m, true
		}
	}
}

// Close stops delivery and discards anything still buffered. The dispatcher
// drops its reference on the next dispatch of this kind. Safe to call more
// than once.
func (s *Subscription[M]) Close() {
	s.q.close()
}
