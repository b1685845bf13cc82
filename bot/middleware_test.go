package bot

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRequireBadge(t *testing.T) {
	b, d, speaker := startBot(t)

	b.Handle("clearall", Chain(
		HandlerFunc(func(_ context.Context, c *Context) error {
			return c.Say("cleared")
		}),
		RequireBadge("moderator"),
	))

	// A plain viewer gets denied.
	dispatchLine(t, d, "@badges=subscriber/12 :viewer!u@h PRIVMSG #chan :!clearall")
	waitUntil(t, "denial counter", func() bool { return b.Stats().Denied == 1 })
	if len(speaker.all()) != 0 {
		t.Errorf("denied command still spoke: %+v", speaker.all())
	}

	// A moderator passes.
	dispatchLine(t, d, "@badges=moderator/1 :mod!u@h PRIVMSG #chan :!clearall")
	waitUntil(t, "mod invocation", func() bool { return len(speaker.all()) == 1 })
	if got := b.Stats().Handled; got != 1 {
		t.Errorf("expected 1 handled, got %d", got)
	}
}

func TestRequireModAllowsBroadcaster(t *testing.T) {
	b, d, _ := startBot(t)

	ran := make(chan struct{}, 1)
	b.Handle("slowoff", Chain(
		HandlerFunc(func(context.Context, *Context) error {
			ran <- struct{}{}
			return nil
		}),
		RequireMod(),
	))

	dispatchLine(t, d, "@badges=broadcaster/1 :streamer!u@h PRIVMSG #chan :!slowoff")

	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("broadcaster was not let through")
	}
}

func TestChainOrder(t *testing.T) {
	var order []string
	tag := func(name string) Middleware {
		return func(next Handler) Handler {
			return HandlerFunc(func(ctx context.Context, c *Context) error {
				order = append(order, name)
				return next.Handle(ctx, c)
			})
		}
	}

	h := Chain(
		HandlerFunc(func(context.Context, *Context) error {
			order = append(order, "handler")
			return nil
		}),
		tag("outer"),
		tag("inner"),
	)

	if err := h.Handle(context.Background(), &Context{}); err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if len(order) != 3 || order[0] != "outer" || order[1] != "inner" || order[2] != "handler" {
		t.Errorf("unexpected order %v", order)
	}
}

func TestRequireBadgeError(t *testing.T) {
	h := Chain(
		HandlerFunc(func(context.Context, *Context) error { return nil }),
		RequireBadge("vip"),
	)

	err := h.Handle(context.Background(), &Context{Sender: Sender{Login: "viewer"}})
	if !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("expected ErrPermissionDenied, got %v", err)
	}
}
