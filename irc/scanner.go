package irc

import (
	"bytes"
	"errors"
	"io"
)

var lineTerminator = []byte("\r\n")

// DecodeOne parses the first complete line of buf into a Message. It
// returns the number of bytes consumed, terminator included. The message
// views buf; nothing is copied.
//
// When buf holds no complete line yet, DecodeOne returns ErrIncomplete and
// consumes nothing. A line that is only its terminator consumes the
// terminator and returns ErrEmptyLine; a line with no command token
// consumes the full line and returns ErrEmptyMessage. Both leave the stream
// positioned at the next line, so decoding can continue.
func DecodeOne(buf []byte) (int, Message, error) {
	end := bytes.Index(buf, lineTerminator)
	if end < 0 {
		return 0, Message{}, ErrIncomplete
	}

	consumed := end + len(lineTerminator)
	if end == 0 {
		return consumed, Message{}, ErrEmptyLine
	}

	msg, err := parseLine(buf[:end])
	if err != nil {
		return consumed, Message{}, err
	}
	return consumed, msg, nil
}

// parseLine tokenizes one terminator-free line into spans. Grammar, left to
// right: optional `@tags ` segment, optional `:prefix ` segment, command
// token, space-delimited args, optional trailing `:free text` running to
// the end of the line. Runs of spaces between tokens are tolerated; arg
// arity and command identity are not validated here.
func parseLine(line []byte) (Message, error) {
	m := Message{raw: line}
	pos := 0

	if pos < len(line) && line[pos] == '@' {
		sp := bytes.IndexByte(line[pos:], ' ')
		if sp < 0 {
			// Tag segment with nothing after it: no command.
			return Message{}, ErrEmptyMessage
		}
		segLo := uint32(pos + 1)
		segHi := uint32(pos + sp)
		m.hasTags = true
		m.tagSeg = Span{Lo: segLo, Hi: segHi}
		m.tagPairs = ParseTags(line[segLo:segHi]).pairs
		pos += sp + 1
	}

	pos = skipSpaces(line, pos)

	if pos < len(line) && line[pos] == ':' {
		sp := bytes.IndexByte(line[pos:], ' ')
		if sp < 0 {
			return Message{}, ErrEmptyMessage
		}
		m.prefix = parsePrefix(line, uint32(pos+1), uint32(pos+sp))
		pos += sp + 1
	}

	pos = skipSpaces(line, pos)
	if pos >= len(line) {
		return Message{}, ErrEmptyMessage
	}

	cmdEnd := bytes.IndexByte(line[pos:], ' ')
	if cmdEnd < 0 {
		m.command = Span{Lo: uint32(pos), Hi: uint32(len(line))}
		return m, nil
	}
	m.command = Span{Lo: uint32(pos), Hi: uint32(pos + cmdEnd)}
	pos += cmdEnd + 1

	for {
		pos = skipSpaces(line, pos)
		if pos >= len(line) {
			break
		}
		if line[pos] == ':' {
			m.hasData = true
			m.data = Span{Lo: uint32(pos + 1), Hi: uint32(len(line))}
			break
		}
		argEnd := bytes.IndexByte(line[pos:], ' ')
		if argEnd < 0 {
			m.args = append(m.args, Span{Lo: uint32(pos), Hi: uint32(len(line))})
			break
		}
		m.args = append(m.args, Span{Lo: uint32(pos), Hi: uint32(pos + argEnd)})
		pos += argEnd + 1
	}

	return m, nil
}

// skipSpaces advances past a run of spaces.
func skipSpaces(line []byte, pos int) int {
	for pos < len(line) && line[pos] == ' ' {
		pos++
	}
	return pos
}

// Scanner decodes a buffer of concatenated lines one message at a time. It
// is lazy and restartable: each Next call decodes exactly one line, bad
// lines surface their parse error without ending the sequence, and the
// scanner can be rebuilt at Offset to resume.
type Scanner struct {
	buf []byte
	off int
}

// NewScanner returns a scanner over buf. The buffer is not copied; decoded
// messages view it.
func NewScanner(buf []byte) *Scanner {
	return &Scanner{buf: buf}
}

// Next decodes the next line. It returns io.EOF once the buffer is fully
// consumed and ErrIncomplete, without consuming, when only a partial line
// remains. Per-line parse errors (ErrEmptyLine, ErrEmptyMessage) are
// returned for the offending line and the scanner moves past it.
func (s *Scanner) Next() (Message, error) {
	if s.off >= len(s.buf) {
		return Message{}, io.EOF
	}

	n, msg, err := DecodeOne(s.buf[s.off:])
	if errors.Is(err, ErrIncomplete) {
		return Message{}, ErrIncomplete
	}
	s.off += n
	if err != nil {
		return Message{}, err
	}
	return msg, nil
}

// Offset returns the byte position of the next undecoded line.
func (s *Scanner) Offset() int {
	return s.off
}

// Rest returns the undecoded tail of the buffer.
func (s *Scanner) Rest() []byte {
	return s.buf[s.off:]
}

// Reset points the scanner at a new buffer and rewinds it.
func (s *Scanner) Reset(buf []byte) {
	s.buf = buf
	s.off = 0
}
