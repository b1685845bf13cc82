package irc

// Message is one parsed protocol line. All fields are spans into a single
// backing buffer: the line as it appeared on the wire, without its
// terminator. A Message produced by DecodeOne views the caller's input and
// stays valid only as long as that input does; Own promotes it to an
// independent copy.
//
// The zero Message is empty and reports no fields; meaningful messages come
// from DecodeOne or a Scanner.
type Message struct {
	raw   []byte
	owned bool

	hasTags  bool
	tagSeg   Span
	tagPairs []TagPair

	prefix prefixSpans

	command Span
	args    []Span

	hasData bool
	data    Span
}

// Raw returns the backing line without its terminator.
func (m *Message) Raw() []byte {
	return m.raw
}

// String returns the line as a string, for logs and tests.
func (m *Message) String() string {
	return string(m.raw)
}

// Owned reports whether the message owns its backing buffer.
func (m *Message) Owned() bool {
	return m.owned
}

// Command returns the command token.
func (m *Message) Command() []byte {
	return m.command.in(m.raw)
}

// ArgCount returns the number of positional args (the trailing data segment
// is not an arg).
func (m *Message) ArgCount() int {
	return len(m.args)
}

// Arg returns the i'th positional arg.
func (m *Message) Arg(i int) ([]byte, bool) {
	if i < 0 || i >= len(m.args) {
		return nil, false
	}
	return m.args[i].in(m.raw), true
}

// Args returns all positional args. The backing bytes are shared with the
// message; only the outer slice is allocated.
func (m *Message) Args() [][]byte {
	if len(m.args) == 0 {
		return nil
	}
	out := make([][]byte, len(m.args))
	for i, s := range m.args {
		out[i] = s.in(m.raw)
	}
	return out
}

// Data returns the trailing free-text segment, if present.
func (m *Message) Data() ([]byte, bool) {
	if !m.hasData {
		return nil, false
	}
	return m.data.in(m.raw), true
}

// HasTags reports whether the line carried a tag segment.
func (m *Message) HasTags() bool {
	return m.hasTags
}

// Tags returns a view over the tag segment. The view is empty when the line
// carried no tags.
func (m *Message) Tags() Tags {
	if !m.hasTags {
		return Tags{}
	}
	return Tags{raw: m.tagSeg.in(m.raw), pairs: m.tagPairs}
}

// PrefixKind returns the kind of origin prefix on the line.
func (m *Message) PrefixKind() PrefixKind {
	return m.prefix.kind
}

// Prefix returns a view over the origin segment.
func (m *Message) Prefix() Prefix {
	p := Prefix{Kind: m.prefix.kind}
	if !m.prefix.nick.Empty() {
		p.Nick = m.prefix.nick.in(m.raw)
	}
	if !m.prefix.user.Empty() {
		p.User = m.prefix.user.in(m.raw)
	}
	if !m.prefix.host.Empty() {
		p.Host = m.prefix.host.in(m.raw)
	}
	return p
}

// Nick returns the prefix nick for user-originated lines.
func (m *Message) Nick() ([]byte, bool) {
	if m.prefix.kind != PrefixUser || m.prefix.nick.Empty() {
		return nil, false
	}
	return m.prefix.nick.in(m.raw), true
}

// Own returns a copy of the message backed by a fresh buffer. Every span is
// preserved as-is; only the arena moves. The copy outlives the buffer the
// original was decoded from.
func (m *Message) Own() Message {
	out := *m
	out.raw = append([]byte(nil), m.raw...)
	out.owned = true
	if m.args != nil {
		out.args = append([]Span(nil), m.args...)
	}
	if m.tagPairs != nil {
		out.tagPairs = append([]TagPair(nil), m.tagPairs...)
	}
	return out
}
