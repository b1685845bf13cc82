package script

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/chatwire/bot"
)

// Command loads a script file and returns a handler running its on_command
// function. The file executes once at load time; the function it defines is
// captured and the global cleared, so scripts loaded later cannot shadow
// it. Load failures are returned here, run failures through the handler.
func (h *Host) Command(name, path string) (bot.Handler, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil, ErrHostClosed
	}

	err := h.protect(func() error {
		return h.state.DoFile(path)
	})
	if err != nil {
		return nil, &ScriptError{Path: path, Err: err}
	}

	fn, ok := h.state.GetGlobal("on_command").(*lua.LFunction)
	h.state.SetGlobal("on_command", lua.LNil)
	if !ok {
		return nil, fmt.Errorf("%s: %w", path, ErrNoCommandFunction)
	}

	handler := bot.HandlerFunc(func(ctx context.Context, c *bot.Context) error {
		if err := h.invoke(ctx, fn, c); err != nil {
			return &ScriptError{Path: path, Err: err}
		}
		return nil
	})
	h.log.Debug("loaded command %s from %s", name, path)
	return handler, nil
}

// LoadDir loads every .lua file in dir as a command named after the file.
// A file that fails to load is logged and skipped; one bad script should
// not keep the rest of the directory out of the bot.
func (h *Host) LoadDir(dir string) (map[string]bot.Handler, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read script directory: %w", err)
	}

	handlers := make(map[string]bot.Handler)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".lua") {
			continue
		}
		name := strings.ToLower(strings.TrimSuffix(entry.Name(), ".lua"))
		path := filepath.Join(dir, entry.Name())

		handler, err := h.Command(name, path)
		if err != nil {
			h.log.Warn("skipping script %s: %v", path, err)
			continue
		}
		handlers[name] = handler
	}
	return handlers, nil
}

// invoke runs one on_command call with the chat module bound to c.
func (h *Host) invoke(ctx context.Context, fn *lua.LFunction, c *bot.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return ErrHostClosed
	}

	h.current = c
	defer func() { h.current = nil }()

	return h.call(ctx, fn, h.invocationTable(c))
}

// invocationTable builds the ctx argument passed to on_command.
func (h *Host) invocationTable(c *bot.Context) *lua.LTable {
	L := h.state

	sender := L.NewTable()
	L.SetField(sender, "login", lua.LString(c.Sender.Login))
	L.SetField(sender, "display", lua.LString(c.Sender.Display))
	L.SetField(sender, "color", lua.LString(c.Sender.Color))
	L.SetField(sender, "mod", lua.LBool(c.Sender.IsMod()))
	L.SetField(sender, "broadcaster", lua.LBool(c.Sender.IsBroadcaster()))

	badges := L.NewTable()
	for _, b := range c.Sender.Badges {
		badges.Append(lua.LString(b.Name))
	}
	L.SetField(sender, "badges", badges)

	args := L.NewTable()
	for _, a := range c.Args {
		args.Append(lua.LString(a))
	}

	tbl := L.NewTable()
	L.SetField(tbl, "channel", lua.LString(c.Channel))
	L.SetField(tbl, "command", lua.LString(c.Command))
	L.SetField(tbl, "text", lua.LString(string(c.Message.Body())))
	L.SetField(tbl, "sender", sender)
	L.SetField(tbl, "args", args)
	return tbl
}

// installChatModule registers the chat table scripts use to talk back. The
// functions read h.current without locking; they only run inside invoke,
// which holds the lock for the whole call.
func (h *Host) installChatModule() {
	funcs := map[string]lua.LGFunction{
		"say":     h.luaSay,
		"reply":   h.luaReply,
		"channel": h.luaChannel,
		"sender":  h.luaSender,
		"args":    h.luaArgs,
	}
	mod := h.state.SetFuncs(h.state.NewTable(), funcs)
	h.state.SetGlobal("chat", mod)
}

// requireInvocation raises a Lua error when a chat function runs outside
// on_command, for example at file load time.
func (h *Host) requireInvocation(L *lua.LState) *bot.Context {
	if h.current == nil {
		L.RaiseError("chat functions are only available inside on_command")
	}
	return h.current
}

func (h *Host) luaSay(L *lua.LState) int {
	c := h.requireInvocation(L)

	var channel, text string
	if L.GetTop() >= 2 {
		channel = L.CheckString(1)
		text = L.CheckString(2)
	} else {
		channel = c.Channel
		text = L.CheckString(1)
	}

	if err := h.speaker.Say(channel, text); err != nil {
		L.RaiseError("say: %v", err)
	}
	return 0
}

func (h *Host) luaReply(L *lua.LState) int {
	c := h.requireInvocation(L)
	text := L.CheckString(1)

	if err := c.Reply(text); err != nil {
		L.RaiseError("reply: %v", err)
	}
	return 0
}

func (h *Host) luaChannel(L *lua.LState) int {
	c := h.requireInvocation(L)
	L.Push(lua.LString(c.Channel))
	return 1
}

func (h *Host) luaSender(L *lua.LState) int {
	c := h.requireInvocation(L)

	sender := L.NewTable()
	L.SetField(sender, "login", lua.LString(c.Sender.Login))
	L.SetField(sender, "display", lua.LString(c.Sender.Display))
	L.SetField(sender, "color", lua.LString(c.Sender.Color))
	L.SetField(sender, "mod", lua.LBool(c.Sender.IsMod()))
	L.SetField(sender, "broadcaster", lua.LBool(c.Sender.IsBroadcaster()))
	L.Push(sender)
	return 1
}

func (h *Host) luaArgs(L *lua.LState) int {
	c := h.requireInvocation(L)

	args := L.NewTable()
	for _, a := range c.Args {
		args.Append(lua.LString(a))
	}
	L.Push(args)
	return 1
}
