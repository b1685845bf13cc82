package bot

import "context"

// Middleware wraps a handler with extra behavior.
type Middleware func(Handler) Handler

// Chain wraps h with the given middleware. The first middleware is the
// outermost layer.
func Chain(h Handler, mw ...Middleware) Handler {
	for i := len(mw) - 1; i >= 0; i-- {
		h = mw[i](h)
	}
	return h
}

// RequireBadge gates a command on the sender carrying at least one of the
// named badges. Rejected invocations fail with ErrPermissionDenied.
func RequireBadge(names ...string) Middleware {
	return func(next Handler) Handler {
		return HandlerFunc(func(ctx context.Context, c *Context) error {
			for _, name := range names {
				if c.Sender.HasBadge(name) {
					return next.Handle(ctx, c)
				}
			}
			return ErrPermissionDenied
		})
	}
}

// RequireMod gates a command on moderator or broadcaster status.
func RequireMod() Middleware {
	return RequireBadge("moderator", "broadcaster")
}
