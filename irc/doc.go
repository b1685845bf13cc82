// Package irc implements the wire format of the chat protocol: a line
// tokenizer, the tag segment parser and the origin prefix parser.
//
// Parsing is zero-copy. DecodeOne records every field of a line as a byte
// range (Span) into the input buffer and copies nothing; accessors on
// Message return views into that buffer. A message therefore remains valid
// only while the buffer it was decoded from does. Code that needs a message
// to outlive its buffer, for example to hand it to another goroutine,
// promotes it first:
//
//	n, msg, err := irc.DecodeOne(buf)
//	if err != nil {
//		// ErrIncomplete: read more bytes. Other parse errors: skip line.
//	}
//	owned := msg.Own() // independent of buf from here on
//
// The tokenizer accepts the protocol as deployed rather than as specified:
// runs of spaces between tokens are tolerated, arg arity is never checked
// and command tokens are not validated. Shape checking belongs to the typed
// conversion layer built on top of this package.
package irc
