package client

import (
	"context"
	"math"
	"time"
)

// stableSessionAge is how long a session must run before the backoff
// schedule starts over.
const stableSessionAge = time.Minute

// RetryPolicy decides whether a new session should follow one that ended
// with the given status and error.
type RetryPolicy func(status Status, err error) bool

// RetryAlways reconnects after every ending except cancellation.
func RetryAlways(status Status, _ error) bool {
	return status != StatusCancelled
}

// RetryOnTimeout reconnects only after liveness timeouts.
func RetryOnTimeout(status Status, _ error) bool {
	return status == StatusTimedOut
}

// RetryOnError reconnects when the session ended with an error, but not
// when the caller cancelled it.
func RetryOnError(status Status, err error) bool {
	return err != nil && status != StatusCancelled
}

// Backoff is the delay schedule between sessions.
type Backoff struct {
	// Initial is the delay after the first failure.
	Initial time.Duration
	// Limit caps the delay.
	Limit time.Duration
	// Multiplier grows the delay per consecutive failure.
	Multiplier float64
}

// DefaultBackoff returns the standard schedule: one second doubling up to
// two minutes.
func DefaultBackoff() Backoff {
	return Backoff{Initial: time.Second, Limit: 2 * time.Minute, Multiplier: 2}
}

// Delay returns the pause before the given attempt, counted from zero.
func (b Backoff) Delay(attempt int) time.Duration {
	if b.Initial <= 0 {
		return 0
	}
	if attempt <= 0 {
		return b.Initial
	}
	mult := b.Multiplier
	if mult <= 1 {
		return b.Initial
	}
	d := float64(b.Initial) * math.Pow(mult, float64(attempt))
	if b.Limit > 0 && d > float64(b.Limit) {
		return b.Limit
	}
	return time.Duration(d)
}

// Reconnect runs sessions back to back until the policy declines one or the
// context ends. The backoff delay grows per consecutive short-lived
// session and resets once a session stays up for a while. It returns the
// final session's outcome.
func Reconnect(ctx context.Context, c *Client, policy RetryPolicy, backoff Backoff) (Status, error) {
	if policy == nil {
		policy = RetryAlways
	}

	attempt := 0
	for {
		started := time.Now()
		status, err := c.Run(ctx)
		if time.Since(started) >= stableSessionAge {
			attempt = 0
		}

		if !policy(status, err) {
			return status, err
		}
		if ctx.Err() != nil {
			return StatusCancelled, nil
		}

		delay := backoff.Delay(attempt)
		attempt++
		c.log.Info("session ended (%s), next attempt in %s", status, delay)

		select {
		case <-ctx.Done():
			return StatusCancelled, nil
		case <-time.After(delay):
		}
	}
}
