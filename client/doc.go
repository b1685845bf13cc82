// Package client runs chat sessions over a connector.
//
// A Client owns exactly one session at a time. Run opens the transport,
// performs the login handshake (CAP REQ, then PASS, then NICK), pumps
// decoded messages into the dispatcher, answers server pings, and watches
// liveness: after DefaultActivityWindow of silence it sends one probe PING,
// and if nothing arrives within DefaultProbeWindow the session ends with
// StatusTimedOut.
//
// Run never loops. Every session ends with a Status saying why, and the
// caller chooses whether another one follows; Reconnect packages that
// choice behind a RetryPolicy and a Backoff schedule.
package client
