package dispatch

import "errors"

// ErrSubscriptionClosed is returned by Next once a subscription has been
// closed, either directly or by the dispatcher shutting down.
var ErrSubscriptionClosed = errors.New("subscription closed")
