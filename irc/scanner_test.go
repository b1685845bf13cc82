package irc

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
)

func TestDecodeOneWelcomeLine(t *testing.T) {
	input := []byte(":server.example 001 shaken_bot :Welcome!\r\n")

	n, msg, err := DecodeOne(input)
	if err != nil {
		t.Fatalf("DecodeOne failed: %v", err)
	}
	if n != len(input) {
		t.Errorf("expected %d bytes consumed, got %d", len(input), n)
	}
	if got := string(msg.Command()); got != "001" {
		t.Errorf("expected command %q, got %q", "001", got)
	}
	arg0, ok := msg.Arg(0)
	if !ok || string(arg0) != "shaken_bot" {
		t.Errorf("expected arg0 %q, got %q (ok=%v)", "shaken_bot", arg0, ok)
	}
	data, ok := msg.Data()
	if !ok || string(data) != "Welcome!" {
		t.Errorf("expected data %q, got %q (ok=%v)", "Welcome!", data, ok)
	}
	p := msg.Prefix()
	if p.Kind != PrefixServer {
		t.Errorf("expected server prefix, got %v", p.Kind)
	}
	if string(p.Host) != "server.example" {
		t.Errorf("expected host %q, got %q", "server.example", p.Host)
	}
}

func TestDecodeOnePingToken(t *testing.T) {
	n, msg, err := DecodeOne([]byte("PING :1234567890\r\n"))
	if err != nil {
		t.Fatalf("DecodeOne failed: %v", err)
	}
	if n != 18 {
		t.Errorf("expected 18 bytes consumed, got %d", n)
	}
	if got := string(msg.Command()); got != "PING" {
		t.Errorf("expected command PING, got %q", got)
	}
	data, ok := msg.Data()
	if !ok || string(data) != "1234567890" {
		t.Errorf("expected token %q, got %q (ok=%v)", "1234567890", data, ok)
	}
}

func TestDecodeOneShapes(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		command  string
		args     []string
		data     string
		hasData  bool
		prefix   PrefixKind
		hasTags  bool
		tagCount int
	}{
		{
			name:    "bare command",
			input:   "RECONNECT\r\n",
			command: "RECONNECT",
		},
		{
			name:    "command with args only",
			input:   "JOIN #alpha #beta\r\n",
			command: "JOIN",
			args:    []string{"#alpha", "#beta"},
		},
		{
			name:    "full privmsg",
			input:   ":nick!user@host.example PRIVMSG #chan :hello there\r\n",
			command: "PRIVMSG",
			args:    []string{"#chan"},
			data:    "hello there",
			hasData: true,
			prefix:  PrefixUser,
		},
		{
			name:     "tagged line",
			input:    "@badges=broadcaster/1;color=#FF0000 :nick!user@host PRIVMSG #chan :hi\r\n",
			command:  "PRIVMSG",
			args:     []string{"#chan"},
			data:     "hi",
			hasData:  true,
			prefix:   PrefixUser,
			hasTags:  true,
			tagCount: 2,
		},
		{
			name:    "empty trailing data",
			input:   "PRIVMSG #chan :\r\n",
			command: "PRIVMSG",
			args:    []string{"#chan"},
			data:    "",
			hasData: true,
		},
		{
			name:    "multiple spaces tolerated",
			input:   "JOIN   #alpha    #beta\r\n",
			command: "JOIN",
			args:    []string{"#alpha", "#beta"},
		},
		{
			name:    "prefix without user part",
			input:   ":nick JOIN #chan\r\n",
			command: "JOIN",
			args:    []string{"#chan"},
			prefix:  PrefixUser,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, msg, err := DecodeOne([]byte(tt.input))
			if err != nil {
				t.Fatalf("DecodeOne failed: %v", err)
			}
			if n != len(tt.input) {
				t.Errorf("expected %d consumed, got %d", len(tt.input), n)
			}
			if got := string(msg.Command()); got != tt.command {
				t.Errorf("expected command %q, got %q", tt.command, got)
			}
			if msg.ArgCount() != len(tt.args) {
				t.Fatalf("expected %d args, got %d", len(tt.args), msg.ArgCount())
			}
			for i, want := range tt.args {
				got, ok := msg.Arg(i)
				if !ok || string(got) != want {
					t.Errorf("arg %d: expected %q, got %q (ok=%v)", i, want, got, ok)
				}
			}
			data, ok := msg.Data()
			if ok != tt.hasData {
				t.Errorf("expected hasData=%v, got %v", tt.hasData, ok)
			}
			if ok && string(data) != tt.data {
				t.Errorf("expected data %q, got %q", tt.data, data)
			}
			if msg.PrefixKind() != tt.prefix {
				t.Errorf("expected prefix kind %v, got %v", tt.prefix, msg.PrefixKind())
			}
			if msg.HasTags() != tt.hasTags {
				t.Errorf("expected hasTags=%v, got %v", tt.hasTags, msg.HasTags())
			}
			if msg.Tags().Len() != tt.tagCount {
				t.Errorf("expected %d tags, got %d", tt.tagCount, msg.Tags().Len())
			}
		})
	}
}

func TestDecodeOneErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		err      error
		consumed int
	}{
		{"no terminator", "PRIVMSG #chan :partial", ErrIncomplete, 0},
		{"empty input", "", ErrIncomplete, 0},
		{"terminator only", "\r\n", ErrEmptyLine, 2},
		{"spaces only", "   \r\n", ErrEmptyMessage, 5},
		{"tags without command", "@key=value\r\n", ErrEmptyMessage, 12},
		{"prefix without command", ":server.example\r\n", ErrEmptyMessage, 17},
		{"newline without carriage return", "PING :token\n", ErrIncomplete, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, _, err := DecodeOne([]byte(tt.input))
			if !errors.Is(err, tt.err) {
				t.Fatalf("expected %v, got %v", tt.err, err)
			}
			if n != tt.consumed {
				t.Errorf("expected %d consumed, got %d", tt.consumed, n)
			}
		})
	}
}

func TestScannerMatchesDecodeOne(t *testing.T) {
	lines := []string{
		":nick!user@host PRIVMSG #chan :one\r\n",
		"PING :abc\r\n",
		"@emote-only=1 :tmi.example ROOMSTATE #chan\r\n",
		"JOIN #chan\r\n",
	}
	input := []byte(strings.Join(lines, ""))

	sc := NewScanner(input)
	offset := 0
	for i := range lines {
		want, wantMsg, err := DecodeOne(input[offset:])
		if err != nil {
			t.Fatalf("DecodeOne at line %d failed: %v", i, err)
		}

		got, err := sc.Next()
		if err != nil {
			t.Fatalf("Next at line %d failed: %v", i, err)
		}
		if !bytes.Equal(got.Raw(), wantMsg.Raw()) {
			t.Errorf("line %d: scanner raw %q, DecodeOne raw %q", i, got.Raw(), wantMsg.Raw())
		}
		if !bytes.Equal(got.Command(), wantMsg.Command()) {
			t.Errorf("line %d: scanner command %q, DecodeOne command %q", i, got.Command(), wantMsg.Command())
		}
		offset += want
	}

	if _, err := sc.Next(); !errors.Is(err, io.EOF) {
		t.Errorf("expected io.EOF after all lines, got %v", err)
	}
	if sc.Offset() != len(input) {
		t.Errorf("expected offset %d, got %d", len(input), sc.Offset())
	}
}

func TestScannerSurfacesBadLinesAndContinues(t *testing.T) {
	input := []byte("PING :a\r\n\r\nPING :b\r\n")

	sc := NewScanner(input)

	msg, err := sc.Next()
	if err != nil {
		t.Fatalf("first Next failed: %v", err)
	}
	if string(msg.Command()) != "PING" {
		t.Errorf("expected PING, got %q", msg.Command())
	}

	if _, err := sc.Next(); !errors.Is(err, ErrEmptyLine) {
		t.Fatalf("expected ErrEmptyLine, got %v", err)
	}

	msg, err = sc.Next()
	if err != nil {
		t.Fatalf("Next after empty line failed: %v", err)
	}
	if data, _ := msg.Data(); string(data) != "b" {
		t.Errorf("expected second ping token b, got %q", data)
	}

	if _, err := sc.Next(); !errors.Is(err, io.EOF) {
		t.Errorf("expected io.EOF, got %v", err)
	}
}

func TestScannerIncompleteTailConsumesNothing(t *testing.T) {
	input := []byte("PING :a\r\nPRIVMSG #chan :partial")

	sc := NewScanner(input)
	if _, err := sc.Next(); err != nil {
		t.Fatalf("first Next failed: %v", err)
	}

	before := sc.Offset()
	for i := 0; i < 3; i++ {
		if _, err := sc.Next(); !errors.Is(err, ErrIncomplete) {
			t.Fatalf("expected ErrIncomplete, got %v", err)
		}
		if sc.Offset() != before {
			t.Fatalf("incomplete tail must not advance offset: %d -> %d", before, sc.Offset())
		}
	}
	if string(sc.Rest()) != "PRIVMSG #chan :partial" {
		t.Errorf("unexpected rest %q", sc.Rest())
	}
}

func TestScannerReset(t *testing.T) {
	sc := NewScanner([]byte("PING :a\r\n"))
	if _, err := sc.Next(); err != nil {
		t.Fatalf("Next failed: %v", err)
	}

	sc.Reset([]byte("PING :b\r\n"))
	if sc.Offset() != 0 {
		t.Errorf("expected offset 0 after reset, got %d", sc.Offset())
	}
	msg, err := sc.Next()
	if err != nil {
		t.Fatalf("Next after reset failed: %v", err)
	}
	if data, _ := msg.Data(); string(data) != "b" {
		t.Errorf("expected token b, got %q", data)
	}
}
