package tui

import (
	"hash/fnv"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/chatwire/event"
)

// LineKind classifies a rendered line.
type LineKind int

const (
	// LineChat is an ordinary chat message.
	LineChat LineKind = iota
	// LineAction is a /me message, rendered in the sender's color.
	LineAction
	// LineSystem is a server or moderation notice.
	LineSystem
)

// Line is one entry in the scrollback.
type Line struct {
	At    time.Time
	Kind  LineKind
	Login string
	Color string
	Text  string
}

// history is a fixed-capacity ring of lines. Appending past the capacity
// overwrites the oldest entry; the window accessors always see lines in
// arrival order.
type history struct {
	lines []Line
	next  int
	full  bool
}

func newHistory(capacity int) *history {
	if capacity < 1 {
		capacity = 1
	}
	return &history{lines: make([]Line, capacity)}
}

func (h *history) append(l Line) {
	h.lines[h.next] = l
	h.next++
	if h.next == len(h.lines) {
		h.next = 0
		h.full = true
	}
}

// len returns the number of stored lines.
func (h *history) len() int {
	if h.full {
		return len(h.lines)
	}
	return h.next
}

// at returns the i'th stored line, 0 being the oldest.
func (h *history) at(i int) Line {
	if h.full {
		return h.lines[(h.next+i)%len(h.lines)]
	}
	return h.lines[i]
}

// window returns up to rows lines ending fromEnd lines before the newest,
// oldest first. fromEnd zero means the tail of the history.
func (h *history) window(rows, fromEnd int) []Line {
	n := h.len()
	end := n - fromEnd
	if end < 0 {
		end = 0
	}
	start := end - rows
	if start < 0 {
		start = 0
	}
	out := make([]Line, 0, end-start)
	for i := start; i < end; i++ {
		out = append(out, h.at(i))
	}
	return out
}

// nickPalette holds the colors used for senders without a usable color tag.
// Only the basic terminal colors appear here, so the palette renders the
// same on every terminal.
var nickPalette = []tcell.Color{
	tcell.ColorRed,
	tcell.ColorGreen,
	tcell.ColorYellow,
	tcell.ColorBlue,
	tcell.ColorFuchsia,
	tcell.ColorAqua,
	tcell.ColorLime,
	tcell.ColorTeal,
	tcell.ColorOlive,
	tcell.ColorMaroon,
	tcell.ColorPurple,
	tcell.ColorSilver,
}

// nickColor picks the display color for a sender. The tagged color is used
// on truecolor terminals; otherwise, and for senders without one, a stable
// palette entry is derived from the login so a nick keeps its color for the
// whole session.
func nickColor(login, tag string, trueColor bool) tcell.Color {
	if tag != "" && trueColor {
		if r, g, b, ok := event.ParseHexColor([]byte(tag)); ok {
			return tcell.NewRGBColor(int32(r), int32(g), int32(b))
		}
	}
	h := fnv.New32a()
	h.Write([]byte(login))
	return nickPalette[h.Sum32()%uint32(len(nickPalette))]
}
