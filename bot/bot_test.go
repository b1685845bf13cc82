package bot

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/dshills/chatwire/dispatch"
	"github.com/dshills/chatwire/irc"
)

type spokenLine struct {
	channel string
	parent  string
	text    string
}

// fakeSpeaker records everything said through it.
type fakeSpeaker struct {
	mu    sync.Mutex
	lines []spokenLine
}

func (f *fakeSpeaker) Say(channel, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lines = append(f.lines, spokenLine{channel: channel, text: text})
	return nil
}

func (f *fakeSpeaker) Reply(channel, parentID, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lines = append(f.lines, spokenLine{channel: channel, parent: parentID, text: text})
	return nil
}

func (f *fakeSpeaker) all() []spokenLine {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]spokenLine(nil), f.lines...)
}

func dispatchLine(t *testing.T, d *dispatch.Dispatcher, line string) {
	t.Helper()
	buf := []byte(line + "\r\n")
	_, msg, err := irc.DecodeOne(buf)
	if err != nil {
		t.Fatalf("decoding %q: %v", line, err)
	}
	d.Dispatch(&msg)
}

// startBot wires a bot to a fresh dispatcher and returns both plus the
// speaker. Cleanup stops the bot.
func startBot(t *testing.T, opts ...Option) (*Bot, *dispatch.Dispatcher, *fakeSpeaker) {
	t.Helper()
	d := dispatch.New()
	speaker := &fakeSpeaker{}
	b := New(speaker, d, opts...)
	if err := b.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	t.Cleanup(b.Stop)
	return b, d, speaker
}

func waitUntil(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func TestRouteCommand(t *testing.T) {
	b, d, speaker := startBot(t)

	got := make(chan *Context, 1)
	b.HandleFunc("echo", func(_ context.Context, c *Context) error {
		got <- c
		return c.Say(c.Args[0])
	})

	dispatchLine(t, d, "@id=m1;badges=broadcaster/1;display-name=Streamer;color=#1E90FF :streamer!u@h PRIVMSG #chan :!echo hello world")

	var c *Context
	select {
	case c = <-got:
	case <-time.After(2 * time.Second):
		t.Fatal("handler never ran")
	}

	if c.Command != "echo" {
		t.Errorf("expected command echo, got %q", c.Command)
	}
	if len(c.Args) != 2 || c.Args[0] != "hello" || c.Args[1] != "world" {
		t.Errorf("unexpected args %v", c.Args)
	}
	if c.Channel != "#chan" {
		t.Errorf("expected channel #chan, got %q", c.Channel)
	}
	if c.Sender.Login != "streamer" || c.Sender.Display != "Streamer" {
		t.Errorf("unexpected sender %+v", c.Sender)
	}
	if c.Sender.Color != "#1E90FF" {
		t.Errorf("unexpected color %q", c.Sender.Color)
	}
	if !c.Sender.IsBroadcaster() || !c.Sender.IsMod() {
		t.Error("broadcaster should pass both badge checks")
	}

	waitUntil(t, "say to land", func() bool { return len(speaker.all()) == 1 })
	line := speaker.all()[0]
	if line.channel != "#chan" || line.text != "hello" {
		t.Errorf("unexpected say %+v", line)
	}
}

func TestRouteIgnoresUnprefixedAndUnknown(t *testing.T) {
	b, d, _ := startBot(t)

	ran := make(chan struct{}, 4)
	b.HandleFunc("known", func(context.Context, *Context) error {
		ran <- struct{}{}
		return nil
	})

	dispatchLine(t, d, ":nick!u@h PRIVMSG #chan :just chatting")
	dispatchLine(t, d, ":nick!u@h PRIVMSG #chan :!missing arg")
	dispatchLine(t, d, ":nick!u@h PRIVMSG #chan :!known")

	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("known command never ran")
	}

	stats := b.Stats()
	if stats.Unknown != 1 {
		t.Errorf("expected 1 unknown command, got %d", stats.Unknown)
	}
	if stats.Handled != 1 {
		t.Errorf("expected 1 handled command, got %d", stats.Handled)
	}
}

func TestRouteCaseInsensitive(t *testing.T) {
	b, d, _ := startBot(t)

	ran := make(chan struct{}, 1)
	b.HandleFunc("Echo", func(context.Context, *Context) error {
		ran <- struct{}{}
		return nil
	})

	dispatchLine(t, d, ":nick!u@h PRIVMSG #chan :!ECHO shouting")

	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("mixed-case command never routed")
	}
}

func TestCustomPrefix(t *testing.T) {
	b, d, _ := startBot(t, WithPrefix("?"))

	ran := make(chan struct{}, 2)
	b.HandleFunc("help", func(context.Context, *Context) error {
		ran <- struct{}{}
		return nil
	})

	dispatchLine(t, d, ":nick!u@h PRIVMSG #chan :!help")
	dispatchLine(t, d, ":nick!u@h PRIVMSG #chan :?help")

	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("command with custom prefix never routed")
	}
	if got := b.Stats().Handled; got != 1 {
		t.Errorf("expected only the ? line to route, handled %d", got)
	}
}

func TestReplyThreadsWhenIDPresent(t *testing.T) {
	b, d, speaker := startBot(t)

	b.HandleFunc("ping", func(_ context.Context, c *Context) error {
		return c.Reply("pong")
	})

	dispatchLine(t, d, "@id=msg-42 :nick!u@h PRIVMSG #chan :!ping")
	waitUntil(t, "threaded reply", func() bool { return len(speaker.all()) == 1 })

	line := speaker.all()[0]
	if line.parent != "msg-42" || line.text != "pong" {
		t.Errorf("expected threaded reply to msg-42, got %+v", line)
	}

	// Without an id the reply falls back to a plain say.
	dispatchLine(t, d, ":nick!u@h PRIVMSG #chan :!ping")
	waitUntil(t, "fallback say", func() bool { return len(speaker.all()) == 2 })

	line = speaker.all()[1]
	if line.parent != "" || line.text != "pong" {
		t.Errorf("expected unthreaded fallback, got %+v", line)
	}
}

func TestHandlerPanicRecovered(t *testing.T) {
	b, d, _ := startBot(t)

	b.HandleFunc("boom", func(context.Context, *Context) error {
		panic("kaboom")
	})
	ran := make(chan struct{}, 1)
	b.HandleFunc("after", func(context.Context, *Context) error {
		ran <- struct{}{}
		return nil
	})

	dispatchLine(t, d, ":nick!u@h PRIVMSG #chan :!boom")
	dispatchLine(t, d, ":nick!u@h PRIVMSG #chan :!after")

	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("routing loop did not survive the panic")
	}

	stats := b.Stats()
	if stats.Panics != 1 {
		t.Errorf("expected 1 recovered panic, got %d", stats.Panics)
	}
	if stats.Errors != 1 {
		t.Errorf("expected the panic to count as an error, got %d", stats.Errors)
	}
}

func TestHandlerErrorCounted(t *testing.T) {
	b, d, _ := startBot(t)

	handled := make(chan struct{}, 1)
	b.HandleFunc("bad", func(context.Context, *Context) error {
		handled <- struct{}{}
		return errors.New("nope")
	})

	dispatchLine(t, d, ":nick!u@h PRIVMSG #chan :!bad")
	<-handled

	waitUntil(t, "error counter", func() bool { return b.Stats().Errors == 1 })
	if got := b.Stats().Handled; got != 0 {
		t.Errorf("failed command should not count as handled, got %d", got)
	}
}

func TestUnhandle(t *testing.T) {
	b, d, _ := startBot(t)

	b.HandleFunc("gone", func(context.Context, *Context) error { return nil })
	b.Unhandle("gone")

	dispatchLine(t, d, ":nick!u@h PRIVMSG #chan :!gone")
	waitUntil(t, "unknown counter", func() bool { return b.Stats().Unknown == 1 })
}

func TestCommands(t *testing.T) {
	d := dispatch.New()
	b := New(&fakeSpeaker{}, d)

	b.HandleFunc("zulu", func(context.Context, *Context) error { return nil })
	b.HandleFunc("Alpha", func(context.Context, *Context) error { return nil })

	got := b.Commands()
	if len(got) != 2 || got[0] != "alpha" || got[1] != "zulu" {
		t.Errorf("expected sorted lowercase names, got %v", got)
	}
}

func TestStartTwice(t *testing.T) {
	b, _, _ := startBot(t)
	if err := b.Start(context.Background()); !errors.Is(err, ErrAlreadyStarted) {
		t.Errorf("expected ErrAlreadyStarted, got %v", err)
	}
}

func TestStopIdempotent(t *testing.T) {
	b, _, _ := startBot(t)
	b.Stop()
	b.Stop()
}
