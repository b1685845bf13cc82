package client

import "errors"

var (
	// ErrNotConnected is returned when sending without a live session.
	ErrNotConnected = errors.New("not connected")

	// ErrAlreadyRunning is returned by Run while a session is active.
	ErrAlreadyRunning = errors.New("session already running")

	// ErrInvalidRegistration indicates the server rejected the login,
	// typically a bad or expired token.
	ErrInvalidRegistration = errors.New("invalid registration")

	// ErrCapabilityDenied indicates the server refused a requested
	// capability.
	ErrCapabilityDenied = errors.New("capability denied")
)
