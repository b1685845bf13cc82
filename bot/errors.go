package bot

import "errors"

// Errors returned by the bot layer.
var (
	// ErrPermissionDenied indicates the sender lacks the badge a command
	// requires. The router logs it at debug level instead of warning.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrAlreadyStarted indicates Start was called on a running bot.
	ErrAlreadyStarted = errors.New("bot already started")
)
