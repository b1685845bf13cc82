package client

// Status describes where a session is in its lifecycle. The first statuses
// are transitional; the terminal ones say why Run returned.
type Status int32

const (
	// StatusIdle means Run has not been called.
	StatusIdle Status = iota
	// StatusConnecting means the transport is being opened.
	StatusConnecting
	// StatusRegistering means the login handshake is in flight.
	StatusRegistering
	// StatusReady means the server acknowledged the login.
	StatusReady
	// StatusRunning means the session is pumping events.
	StatusRunning
	// StatusEOF means the server closed the connection.
	StatusEOF
	// StatusCancelled means the caller's context ended the session.
	StatusCancelled
	// StatusTimedOut means the liveness probe went unanswered.
	StatusTimedOut
	// StatusReconnectRequested means the server asked for a fresh
	// connection.
	StatusReconnectRequested
)

// String returns a short lowercase name for the status.
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusConnecting:
		return "connecting"
	case StatusRegistering:
		return "registering"
	case StatusReady:
		return "ready"
	case StatusRunning:
		return "running"
	case StatusEOF:
		return "eof"
	case StatusCancelled:
		return "cancelled"
	case StatusTimedOut:
		return "timed out"
	case StatusReconnectRequested:
		return "reconnect requested"
	default:
		return "unknown"
	}
}

// Terminal reports whether the status ends a session.
func (s Status) Terminal() bool {
	switch s {
	case StatusEOF, StatusCancelled, StatusTimedOut, StatusReconnectRequested:
		return true
	default:
		return false
	}
}

// Identity is the authentication level the server granted the session.
type Identity int32

const (
	// IdentityUnknown means registration has not completed.
	IdentityUnknown Identity = iota
	// IdentityAnonymous means a read-only justinfan login.
	IdentityAnonymous
	// IdentityBasic means an authenticated login without account state.
	IdentityBasic
	// IdentityFull means the server also sent account state
	// (GLOBALUSERSTATE), which requires the tags capability.
	IdentityFull
)

// String returns a short lowercase name for the identity.
func (i Identity) String() string {
	switch i {
	case IdentityUnknown:
		return "unknown"
	case IdentityAnonymous:
		return "anonymous"
	case IdentityBasic:
		return "basic"
	case IdentityFull:
		return "full"
	default:
		return "unknown"
	}
}
