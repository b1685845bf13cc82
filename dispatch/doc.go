// Package dispatch fans decoded IRC messages out to typed subscriptions.
//
// A Dispatcher is a multicast hub keyed on event kinds. Subscribe[M] picks
// the kind from the type parameter at compile time; there is no reflection
// and no string topic table. Each subscription owns an unbounded FIFO
// queue, so Dispatch never blocks and one stalled consumer cannot hold up
// the connection loop or other subscribers.
//
// Conversion is lazy. A message is converted to a typed event only when
// that kind has subscribers, with two exceptions: Welcome and
// GlobalUserState are always recorded so that Last can report session
// identity to late callers.
package dispatch
