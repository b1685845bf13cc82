package client

import (
	"io"
	"sync"
	"sync/atomic"
)

// Writer serializes outbound lines onto a connection. Each line leaves in a
// single Write call with CRLF framing, so concurrent senders never
// interleave partial lines.
type Writer struct {
	mu    sync.Mutex
	dst   io.Writer
	lines *atomic.Uint64
}

// NewWriter wraps dst.
func NewWriter(dst io.Writer) *Writer {
	return &Writer{dst: dst}
}

// WriteLine frames line with CRLF and sends it.
func (w *Writer) WriteLine(line string) error {
	buf := make([]byte, 0, len(line)+2)
	buf = append(buf, line...)
	buf = append(buf, '\r', '\n')

	w.mu.Lock()
	defer w.mu.Unlock()
	if _, err := w.dst.Write(buf); err != nil {
		return err
	}
	if w.lines != nil {
		w.lines.Add(1)
	}
	return nil
}
