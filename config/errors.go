package config

import (
	"errors"
	"fmt"
)

// Errors returned by configuration operations.
var (
	// ErrSettingNotFound indicates the setting key doesn't exist.
	ErrSettingNotFound = errors.New("setting not found")

	// ErrTypeMismatch indicates the value type doesn't match the expected
	// type.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrNoFile indicates a file operation was requested but no config file
	// is set.
	ErrNoFile = errors.New("no config file")

	// ErrWatcherRunning indicates Watch was called twice.
	ErrWatcherRunning = errors.New("watcher already running")
)

// ParseError represents an error while parsing a configuration file.
type ParseError struct {
	// File is the path that failed to parse.
	File string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parse config %s: %v", e.File, e.Err)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// TypeError is returned when a setting holds a value of the wrong type.
type TypeError struct {
	// Key is the setting key.
	Key string
	// Expected is the expected type name.
	Expected string
	// Got is the actual type name.
	Got string
}

// Error implements the error interface.
func (e *TypeError) Error() string {
	return fmt.Sprintf("setting %s: expected %s, got %s", e.Key, e.Expected, e.Got)
}

// Is reports a match for ErrTypeMismatch.
func (e *TypeError) Is(target error) bool {
	return target == ErrTypeMismatch
}
