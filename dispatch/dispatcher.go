package dispatch

import (
	"context"
	"sync"

	"github.com/dshills/chatwire/event"
	"github.com/dshills/chatwire/irc"
	"github.com/dshills/chatwire/logging"
)

// Stats is a snapshot of dispatcher counters.
type Stats struct {
	// Dispatched counts messages handed to Dispatch.
	Dispatched uint64
	// Delivered counts events placed on subscription queues.
	Delivered uint64
	// Dropped counts messages that failed typed conversion.
	Dropped uint64
	// Subscriptions is the number of live subscriptions.
	Subscriptions int
}

// Dispatcher fans decoded messages out to typed subscriptions. Conversion
// happens at most once per kind per message, and only for kinds somebody
// subscribed to; the converted event is promoted to its own memory and the
// same value is shared by every queue.
type Dispatcher struct {
	mu     sync.Mutex
	subs   map[event.Kind][]*queue
	last   map[event.Kind]event.Event
	stats  Stats
	log    *logging.Logger
	closed bool
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the logger. The default discards everything.
func WithLogger(log *logging.Logger) Option {
	return func(d *Dispatcher) {
		if log != nil {
			d.log = log.WithComponent("dispatch")
		}
	}
}

// New creates an empty dispatcher.
func New(opts ...Option) *Dispatcher {
	d := &Dispatcher{
		subs: make(map[event.Kind][]*queue),
		last: make(map[event.Kind]event.Event),
		log:  logging.Nop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Subscribe registers a typed subscription on d. Subscribing to Raw
// observes every line; any other type observes only its own command.
//
// Subscribe is a function rather than a method so the type parameter can
// select the kind at compile time.
func Subscribe[M event.Event](d *Dispatcher) *Subscription[M] {
	q := newQueue(event.KindOf[M]())

	d.mu.Lock()
	if d.closed {
		q.close()
	} else {
		d.subs[q.kind] = append(d.subs[q.kind], q)
	}
	d.mu.Unlock()

	return &Subscription[M]{d: d, q: q}
}

// Last returns the most recent event of M's kind without blocking or
// consuming anything. Welcome and GlobalUserState are recorded even with no
// subscribers, so session identity can be read after registration; other
// kinds are recorded whenever a subscription caused them to be converted.
func Last[M event.Event](d *Dispatcher) (M, bool) {
	d.mu.Lock()
	e, ok := d.last[event.KindOf[M]()]
	d.mu.Unlock()

	var zero M
	if !ok {
		return zero, false
	}
	m, ok := e.(M)
	if !ok {
		return zero, false
	}
	return m, true
}

// WaitFor subscribes, waits for a single event of M's kind, and unsubscribes.
func WaitFor[M event.Event](ctx context.Context, d *Dispatcher) (M, error) {
	sub := Subscribe[M](d)
	defer sub.Close()
	return sub.Next(ctx)
}

// Dispatch routes one decoded message. It never blocks: delivery appends to
// in-memory queues, conversion failures are counted and logged at debug, and
// queues closed by their subscriber are pruned in passing.
//
// The message must not alias a buffer the caller is about to reuse, since
// Raw subscribers receive it as-is.
func (d *Dispatcher) Dispatch(m *irc.Message) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	d.stats.Dispatched++

	d.deliver(event.KindRaw, m)
	if kind, ok := event.KindForCommand(m.Command()); ok {
		d.deliver(kind, m)
	}
}

// deliver converts m for one kind and pushes the result to that kind's
// queues. Caller holds d.mu.
func (d *Dispatcher) deliver(kind event.Kind, m *irc.Message) {
	queues := d.subs[kind]
	sessionKind := kind == event.KindWelcome || kind == event.KindGlobalUserState
	if len(queues) == 0 && !sessionKind {
		return
	}

	e, err := event.Convert(kind, m)
	if err != nil {
		d.stats.Dropped++
		d.log.Debug("dropping %s conversion: %v", kind, err)
		return
	}
	e = event.Own(e)
	d.last[kind] = e

	if len(queues) == 0 {
		return
	}
	live := queues[:0]
	for _, q := range queues {
		if q.push(e) {
			live = append(live, q)
			d.stats.Delivered++
		}
	}
	for i := len(live); i < len(queues); i++ {
		queues[i] = nil
	}
	if len(live) == 0 {
		delete(d.subs, kind)
		return
	}
	d.subs[kind] = live
}

// ClearSubscriptions closes every subscription and discards their queues.
// The session cache survives, so Last still answers.
func (d *Dispatcher) ClearSubscriptions() {
	d.mu.Lock()
	defer d.mu.Unlock()
	for kind, queues := range d.subs {
		for _, q := range queues {
			q.close()
		}
		delete(d.subs, kind)
	}
}

// Close shuts the dispatcher down. Subsequent dispatches are ignored and
// new subscriptions start out closed.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	d.closed = true
	for kind, queues := range d.subs {
		for _, q := range queues {
			q.close()
		}
		delete(d.subs, kind)
	}
}

// Stats returns a snapshot of the dispatcher counters.
func (d *Dispatcher) Stats() Stats {
	d.mu.Lock()
	defer d.mu.Unlock()
	s := d.stats
	for _, queues := range d.subs {
		for _, q := range queues {
			if !q.isClosed() {
				s.Subscriptions++
			}
		}
	}
	return s
}
