package irc

// Span is a byte range into a message's backing buffer. Spans are the unit
// of zero-copy parsing: the tokenizer records where each field lives instead
// of copying it out. A span is only meaningful against the buffer it was
// produced for.
type Span struct {
	Lo, Hi uint32
}

// Len returns the number of bytes the span covers.
func (s Span) Len() int {
	if s.Hi <= s.Lo {
		return 0
	}
	return int(s.Hi - s.Lo)
}

// Empty returns true if the span covers no bytes.
func (s Span) Empty() bool {
	return s.Hi <= s.Lo
}

// in resolves the span against a backing buffer.
func (s Span) in(buf []byte) []byte {
	return buf[s.Lo:s.Hi]
}
