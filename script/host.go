package script

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/chatwire/bot"
	"github.com/dshills/chatwire/logging"
)

// DefaultCallTimeout bounds one on_command invocation. The interpreter
// checks the deadline between VM instructions, so a runaway script is cut
// off close to it.
const DefaultCallTimeout = 5 * time.Second

// Host owns a sandboxed Lua interpreter shared by every loaded command
// script. The interpreter is single-threaded; the host serializes access
// with a mutex, so handlers from different goroutines queue up rather than
// corrupt the state.
type Host struct {
	mu      sync.Mutex
	state   *lua.LState
	speaker bot.Speaker
	timeout time.Duration
	log     *logging.Logger
	closed  bool

	// current is the invocation being served. It is set for the duration
	// of one on_command call, under mu; the chat module reads it without
	// locking because it only ever runs inside that call.
	current *bot.Context
}

// Option configures a Host.
type Option func(*Host)

// WithLogger sets the logger. The default discards everything.
func WithLogger(log *logging.Logger) Option {
	return func(h *Host) {
		if log != nil {
			h.log = log.WithComponent("script")
		}
	}
}

// WithCallTimeout overrides DefaultCallTimeout.
func WithCallTimeout(d time.Duration) Option {
	return func(h *Host) {
		if d > 0 {
			h.timeout = d
		}
	}
}

// NewHost creates a host whose scripts speak through the given speaker,
// typically the *client.Client the bot answers with.
func NewHost(speaker bot.Speaker, opts ...Option) *Host {
	h := &Host{
		speaker: speaker,
		timeout: DefaultCallTimeout,
		log:     logging.Nop(),
	}
	for _, opt := range opts {
		opt(h)
	}

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibraries(L)
	h.state = L
	h.installSandbox()
	h.installChatModule()

	return h
}

// openSafeLibraries opens the standard libraries a command script may use.
// io, os, debug and package stay closed: scripts get no file system, no
// process control and no module loading.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

// installSandbox removes the base-library escape hatches and points print
// at the host logger so script output cannot interleave with the terminal.
func (h *Host) installSandbox() {
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring"} {
		h.state.SetGlobal(name, lua.LNil)
	}

	h.state.SetGlobal("print", h.state.NewFunction(func(L *lua.LState) int {
		top := L.GetTop()
		parts := make([]string, 0, top)
		for i := 1; i <= top; i++ {
			parts = append(parts, L.ToStringMeta(L.Get(i)).String())
		}
		h.log.Debug("%s", strings.Join(parts, "\t"))
		return 0
	}))
}

// DoString executes Lua source directly on the host state. It exists for
// configuration snippets and tests; command scripts go through Command.
func (h *Host) DoString(src string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return ErrHostClosed
	}
	return h.protect(func() error {
		return h.state.DoString(src)
	})
}

// Closed reports whether the host has been shut down.
func (h *Host) Closed() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.closed
}

// Close shuts the interpreter down. Handlers created by Command keep
// working as far as the bot is concerned but fail with ErrHostClosed.
func (h *Host) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true
	h.state.Close()
}

// protect runs fn with panic recovery. The interpreter raises Go panics for
// some internal failures; a broken script must surface as an error, not
// take the routing loop down.
func (h *Host) protect(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()
	return fn()
}

// call invokes fn with one argument under the host deadline. Caller holds
// h.mu.
func (h *Host) call(ctx context.Context, fn *lua.LFunction, arg lua.LValue) error {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	h.state.SetContext(ctx)
	defer h.state.RemoveContext()

	base := h.state.GetTop()
	err := h.protect(func() error {
		h.state.Push(fn)
		h.state.Push(arg)
		return h.state.PCall(1, 0, nil)
	})
	if err != nil {
		// A failed call can leave values on the stack; drop them so the
		// next invocation starts clean.
		h.state.SetTop(base)
	}
	return err
}
