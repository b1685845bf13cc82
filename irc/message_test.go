package irc

import (
	"bytes"
	"testing"
)

func mustDecode(t *testing.T, line string) Message {
	t.Helper()
	_, msg, err := DecodeOne([]byte(line))
	if err != nil {
		t.Fatalf("DecodeOne(%q) failed: %v", line, err)
	}
	return msg
}

func TestMessageOwnIndependence(t *testing.T) {
	buf := []byte("@login=foo :nick!user@host PRIVMSG #chan :hello\r\n")

	_, msg, err := DecodeOne(buf)
	if err != nil {
		t.Fatalf("DecodeOne failed: %v", err)
	}
	if msg.Owned() {
		t.Error("freshly decoded message should view the input")
	}

	owned := msg.Own()
	if !owned.Owned() {
		t.Error("promoted message should report owned")
	}

	// Clobber the original buffer; the owned copy must be unaffected.
	for i := range buf {
		buf[i] = 'X'
	}

	if got := string(owned.Command()); got != "PRIVMSG" {
		t.Errorf("expected command PRIVMSG after buffer reuse, got %q", got)
	}
	if data, _ := owned.Data(); string(data) != "hello" {
		t.Errorf("expected data hello, got %q", data)
	}
	if nick, _ := owned.Nick(); string(nick) != "nick" {
		t.Errorf("expected nick, got %q", nick)
	}
	if v, ok := owned.Tags().Get("login"); !ok || string(v) != "foo" {
		t.Errorf("expected login=foo, got %q (ok=%v)", v, ok)
	}

	// The borrowed view does observe the reuse.
	if got := string(msg.Command()); got == "PRIVMSG" {
		t.Error("borrowed message should alias the mutated buffer")
	}
}

func TestMessagePrefixVariants(t *testing.T) {
	tests := []struct {
		name string
		line string
		kind PrefixKind
		nick string
		user string
		host string
	}{
		{"full user prefix", ":nick!user@host.example JOIN #c\r\n", PrefixUser, "nick", "user", "host.example"},
		{"nick only", ":nick JOIN #c\r\n", PrefixUser, "nick", "", ""},
		{"nick and host", ":nick@host.example JOIN #c\r\n", PrefixUser, "nick", "", "host.example"},
		{"server", ":tmi.example CLEARCHAT #c\r\n", PrefixServer, "", "", "tmi.example"},
		{"no prefix", "PING :x\r\n", PrefixNone, "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := mustDecode(t, tt.line)
			p := msg.Prefix()
			if p.Kind != tt.kind {
				t.Fatalf("expected kind %v, got %v", tt.kind, p.Kind)
			}
			if string(p.Nick) != tt.nick {
				t.Errorf("expected nick %q, got %q", tt.nick, p.Nick)
			}
			if string(p.User) != tt.user {
				t.Errorf("expected user %q, got %q", tt.user, p.User)
			}
			if string(p.Host) != tt.host {
				t.Errorf("expected host %q, got %q", tt.host, p.Host)
			}
		})
	}
}

func TestMessageNick(t *testing.T) {
	msg := mustDecode(t, ":nick!user@host PRIVMSG #c :hi\r\n")
	nick, ok := msg.Nick()
	if !ok || string(nick) != "nick" {
		t.Errorf("expected (nick, true), got (%q, %v)", nick, ok)
	}

	msg = mustDecode(t, ":tmi.example NOTICE #c :hi\r\n")
	if _, ok := msg.Nick(); ok {
		t.Error("server prefix must not yield a nick")
	}

	msg = mustDecode(t, "PING :x\r\n")
	if _, ok := msg.Nick(); ok {
		t.Error("missing prefix must not yield a nick")
	}
}

func TestMessageArgs(t *testing.T) {
	msg := mustDecode(t, "CAP * ACK :twitch.tv/tags\r\n")

	if msg.ArgCount() != 2 {
		t.Fatalf("expected 2 args, got %d", msg.ArgCount())
	}
	args := msg.Args()
	if string(args[0]) != "*" || string(args[1]) != "ACK" {
		t.Errorf("unexpected args %q %q", args[0], args[1])
	}
	if _, ok := msg.Arg(2); ok {
		t.Error("expected Arg(2) to report false")
	}
	if _, ok := msg.Arg(-1); ok {
		t.Error("expected Arg(-1) to report false")
	}
	if data, _ := msg.Data(); string(data) != "twitch.tv/tags" {
		t.Errorf("expected data twitch.tv/tags, got %q", data)
	}
}

func TestMessageRawAndString(t *testing.T) {
	line := ":nick!user@host PRIVMSG #chan :hello\r\n"
	msg := mustDecode(t, line)

	want := line[:len(line)-2]
	if !bytes.Equal(msg.Raw(), []byte(want)) {
		t.Errorf("expected raw %q, got %q", want, msg.Raw())
	}
	if msg.String() != want {
		t.Errorf("expected string %q, got %q", want, msg.String())
	}
}

func TestZeroMessage(t *testing.T) {
	var msg Message

	if msg.ArgCount() != 0 {
		t.Error("zero message should have no args")
	}
	if _, ok := msg.Data(); ok {
		t.Error("zero message should have no data")
	}
	if msg.HasTags() {
		t.Error("zero message should have no tags")
	}
	if msg.PrefixKind() != PrefixNone {
		t.Error("zero message should have no prefix")
	}
	if len(msg.Command()) != 0 {
		t.Error("zero message should have an empty command")
	}
}
