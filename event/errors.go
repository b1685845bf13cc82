package event

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the As constructors when a message is missing
// an element its event type requires.
var (
	// ErrExpectedData indicates the message carried no trailing data segment.
	ErrExpectedData = errors.New("expected trailing data")

	// ErrExpectedNick indicates the message prefix carried no user nick.
	ErrExpectedNick = errors.New("expected nick in prefix")

	// ErrUnknownKind indicates Convert was asked for a kind it does not know.
	ErrUnknownKind = errors.New("unknown event kind")
)

// InvalidCommandError indicates a message's command does not match the event
// type it was being converted to.
type InvalidCommandError struct {
	Expected string
	Got      string
}

func (e *InvalidCommandError) Error() string {
	return fmt.Sprintf("invalid command: expected %s, got %s", e.Expected, e.Got)
}

// ExpectedArgError indicates a required argument position was absent.
type ExpectedArgError struct {
	Pos int
}

func (e *ExpectedArgError) Error() string {
	return fmt.Sprintf("expected argument at position %d", e.Pos)
}
