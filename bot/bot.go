package bot

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/dshills/chatwire/dispatch"
	"github.com/dshills/chatwire/event"
	"github.com/dshills/chatwire/logging"
)

// DefaultPrefix marks chat lines as commands.
const DefaultPrefix = "!"

// Speaker sends chat messages. *client.Client satisfies it.
type Speaker interface {
	Say(channel, text string) error
	Reply(channel, parentID, text string) error
}

// Handler runs one command invocation.
type Handler interface {
	Handle(ctx context.Context, c *Context) error
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(ctx context.Context, c *Context) error

// Handle implements Handler.
func (f HandlerFunc) Handle(ctx context.Context, c *Context) error {
	return f(ctx, c)
}

// Stats counts routing outcomes.
type Stats struct {
	// Handled is the number of commands that ran to completion.
	Handled uint64
	// Unknown is the number of prefixed lines with no registered handler.
	Unknown uint64
	// Denied is the number of invocations a permission gate rejected.
	Denied uint64
	// Errors is the number of handlers that returned an error, recovered
	// panics included.
	Errors uint64
	// Panics is the number of recovered handler panics.
	Panics uint64
}

// Bot routes prefixed chat lines to command handlers. It subscribes to chat
// messages through the dispatcher and answers through the speaker.
type Bot struct {
	speaker Speaker
	d       *dispatch.Dispatcher
	prefix  string
	log     *logging.Logger

	mu       sync.RWMutex
	handlers map[string]Handler
	sub      *dispatch.Subscription[event.Privmsg]
	wg       sync.WaitGroup

	handled atomic.Uint64
	unknown atomic.Uint64
	denied  atomic.Uint64
	errs    atomic.Uint64
	panics  atomic.Uint64
}

// Option configures a Bot.
type Option func(*Bot)

// WithPrefix overrides DefaultPrefix.
func WithPrefix(prefix string) Option {
	return func(b *Bot) {
		if prefix != "" {
			b.prefix = prefix
		}
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(log *logging.Logger) Option {
	return func(b *Bot) {
		if log != nil {
			b.log = log.WithComponent("bot")
		}
	}
}

// New creates a bot reading from d and speaking through speaker.
func New(speaker Speaker, d *dispatch.Dispatcher, opts ...Option) *Bot {
	b := &Bot{
		speaker:  speaker,
		d:        d,
		prefix:   DefaultPrefix,
		log:      logging.Nop(),
		handlers: make(map[string]Handler),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Handle registers a handler under the given command name. Names are
// matched case-insensitively; registering an existing name replaces it.
func (b *Bot) Handle(name string, h Handler) {
	if h == nil {
		return
	}
	b.mu.Lock()
	b.handlers[strings.ToLower(name)] = h
	b.mu.Unlock()
}

// HandleFunc registers a function as a command handler.
func (b *Bot) HandleFunc(name string, h HandlerFunc) {
	b.Handle(name, h)
}

// Unhandle removes a command.
func (b *Bot) Unhandle(name string) {
	b.mu.Lock()
	delete(b.handlers, strings.ToLower(name))
	b.mu.Unlock()
}

// Commands returns the registered command names, sorted.
func (b *Bot) Commands() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	names := make([]string, 0, len(b.handlers))
	for name := range b.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Stats returns a snapshot of the routing counters.
func (b *Bot) Stats() Stats {
	return Stats{
		Handled: b.handled.Load(),
		Unknown: b.unknown.Load(),
		Denied:  b.denied.Load(),
		Errors:  b.errs.Load(),
		Panics:  b.panics.Load(),
	}
}

// Start subscribes to chat messages and routes commands until the context
// ends or Stop is called.
func (b *Bot) Start(ctx context.Context) error {
	b.mu.Lock()
	if b.sub != nil {
		b.mu.Unlock()
		return ErrAlreadyStarted
	}
	sub := dispatch.Subscribe[event.Privmsg](b.d)
	b.sub = sub
	b.mu.Unlock()

	b.wg.Add(1)
	go b.loop(ctx, sub)
	return nil
}

// Stop ends the routing loop and waits for the in-flight handler, if any.
func (b *Bot) Stop() {
	b.mu.Lock()
	sub := b.sub
	b.sub = nil
	b.mu.Unlock()

	if sub == nil {
		return
	}
	sub.Close()
	b.wg.Wait()
}

func (b *Bot) loop(ctx context.Context, sub *dispatch.Subscription[event.Privmsg]) {
	defer b.wg.Done()
	defer sub.Close()

	for {
		p, err := sub.Next(ctx)
		if err != nil {
			return
		}
		b.route(ctx, p)
	}
}

// route parses one chat line and runs the matching handler.
func (b *Bot) route(ctx context.Context, p event.Privmsg) {
	text := string(p.Text)
	if !strings.HasPrefix(text, b.prefix) {
		return
	}

	fields := strings.Fields(strings.TrimPrefix(text, b.prefix))
	if len(fields) == 0 {
		return
	}
	name := strings.ToLower(fields[0])

	b.mu.RLock()
	h := b.handlers[name]
	b.mu.RUnlock()
	if h == nil {
		b.unknown.Add(1)
		b.log.Debug("no handler for command %s", name)
		return
	}

	c := newContext(b, p, name, fields[1:])
	err := b.execute(ctx, h, c)
	switch {
	case err == nil:
		b.handled.Add(1)
	case errors.Is(err, ErrPermissionDenied):
		b.denied.Add(1)
		b.log.Debug("command %s denied for %s", name, c.Sender.Login)
	default:
		b.errs.Add(1)
		b.log.Warn("command %s failed: %v", name, err)
	}
}

// execute runs a handler with panic recovery so a bad command can't take
// down the routing loop.
func (b *Bot) execute(ctx context.Context, h Handler, c *Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			stack := make([]byte, 4096)
			n := runtime.Stack(stack, false)
			b.panics.Add(1)
			err = fmt.Errorf("command %s panicked: %v\n%s", c.Command, r, stack[:n])
		}
	}()

	return h.Handle(ctx, c)
}
