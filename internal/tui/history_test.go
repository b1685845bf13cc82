package tui

import (
	"testing"
	"time"
)

func chatLine(text string) Line {
	return Line{At: time.Now(), Kind: LineChat, Login: "n", Text: text}
}

func TestHistoryAppendBelowCapacity(t *testing.T) {
	h := newHistory(5)
	h.append(chatLine("a"))
	h.append(chatLine("b"))

	if h.len() != 2 {
		t.Fatalf("expected 2 lines, got %d", h.len())
	}
	if h.at(0).Text != "a" || h.at(1).Text != "b" {
		t.Errorf("expected arrival order a, b; got %q, %q", h.at(0).Text, h.at(1).Text)
	}
}

func TestHistoryWrapsAtCapacity(t *testing.T) {
	h := newHistory(3)
	for _, s := range []string{"a", "b", "c", "d", "e"} {
		h.append(chatLine(s))
	}

	if h.len() != 3 {
		t.Fatalf("expected capacity 3, got %d", h.len())
	}
	want := []string{"c", "d", "e"}
	for i, s := range want {
		if got := h.at(i).Text; got != s {
			t.Errorf("at(%d): expected %q, got %q", i, s, got)
		}
	}
}

func TestHistoryWindow(t *testing.T) {
	h := newHistory(10)
	for _, s := range []string{"a", "b", "c", "d", "e"} {
		h.append(chatLine(s))
	}

	tests := []struct {
		name    string
		rows    int
		fromEnd int
		want    []string
	}{
		{"tail", 3, 0, []string{"c", "d", "e"}},
		{"scrolled back", 3, 2, []string{"a", "b", "c"}},
		{"more rows than lines", 10, 0, []string{"a", "b", "c", "d", "e"}},
		{"scrolled past start", 3, 10, nil},
	}
	for _, tt := range tests {
		got := h.window(tt.rows, tt.fromEnd)
		if len(got) != len(tt.want) {
			t.Errorf("%s: expected %d lines, got %d", tt.name, len(tt.want), len(got))
			continue
		}
		for i, s := range tt.want {
			if got[i].Text != s {
				t.Errorf("%s: line %d: expected %q, got %q", tt.name, i, s, got[i].Text)
			}
		}
	}
}

func TestHistoryMinimumCapacity(t *testing.T) {
	h := newHistory(0)
	h.append(chatLine("a"))
	h.append(chatLine("b"))

	if h.len() != 1 {
		t.Fatalf("expected capacity clamped to 1, got %d", h.len())
	}
	if h.at(0).Text != "b" {
		t.Errorf("expected newest line kept, got %q", h.at(0).Text)
	}
}

func TestNickColorStable(t *testing.T) {
	a := nickColor("somebody", "", false)
	b := nickColor("somebody", "", false)
	if a != b {
		t.Error("same login should keep the same palette color")
	}
}

func TestNickColorUsesTagOnTrueColor(t *testing.T) {
	c := nickColor("somebody", "#1E90FF", true)
	r, g, b := c.RGB()
	if r != 0x1E || g != 0x90 || b != 0xFF {
		t.Errorf("expected #1E90FF, got #%02X%02X%02X", r, g, b)
	}

	// Without truecolor the tag is ignored in favor of the palette.
	if got := nickColor("somebody", "#1E90FF", false); got != nickColor("somebody", "", false) {
		t.Errorf("expected palette fallback, got %v", got)
	}
}

func TestNickColorBadTagFallsBack(t *testing.T) {
	if got := nickColor("somebody", "notacolor", true); got != nickColor("somebody", "", true) {
		t.Errorf("expected palette fallback for malformed tag, got %v", got)
	}
}
