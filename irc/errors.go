package irc

import "errors"

// Parse errors returned by DecodeOne and Scanner. All of them are expected
// during normal streaming and are recoverable; none indicates a broken
// connection.
var (
	// ErrIncomplete indicates the input contains no complete line yet.
	// The caller should read more bytes and retry; nothing was consumed.
	ErrIncomplete = errors.New("incomplete message: no line terminator")

	// ErrEmptyLine indicates a line that consists only of its terminator.
	ErrEmptyLine = errors.New("empty line")

	// ErrEmptyMessage indicates a line that carries no command token.
	ErrEmptyMessage = errors.New("empty message: no command")
)
