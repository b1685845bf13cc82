package script

import (
	"errors"
	"fmt"
)

// Errors returned by the script host.
var (
	// ErrHostClosed indicates the host has been shut down.
	ErrHostClosed = errors.New("script host closed")

	// ErrNoCommandFunction indicates a script does not define on_command.
	ErrNoCommandFunction = errors.New("script does not define on_command")
)

// ScriptError wraps a failure inside a script file.
type ScriptError struct {
	// Path is the script file.
	Path string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *ScriptError) Error() string {
	return fmt.Sprintf("script %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *ScriptError) Unwrap() error {
	return e.Err
}
