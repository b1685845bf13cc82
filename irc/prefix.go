package irc

import "bytes"

// PrefixKind distinguishes the origin encoded in a message prefix.
type PrefixKind uint8

const (
	// PrefixNone means the line carried no prefix segment.
	PrefixNone PrefixKind = iota

	// PrefixServer means the prefix is a bare server host.
	PrefixServer

	// PrefixUser means the prefix identifies a user (nick, optionally
	// with user and host parts).
	PrefixUser
)

// String returns the kind name.
func (k PrefixKind) String() string {
	switch k {
	case PrefixNone:
		return "none"
	case PrefixServer:
		return "server"
	case PrefixUser:
		return "user"
	default:
		return "unknown"
	}
}

// Prefix is a view over the origin segment of a message. Nick and User are
// set only for user prefixes; Host is set for server prefixes and for user
// prefixes that carried a host part. Byte slices view the message's backing
// buffer.
type Prefix struct {
	Kind PrefixKind
	Nick []byte
	User []byte
	Host []byte
}

// prefixSpans is the index form stored inside Message.
type prefixSpans struct {
	kind PrefixKind
	nick Span
	user Span
	host Span
}

// parsePrefix classifies and splits a prefix token (without the leading
// `:`). A token containing `!` or `@` is a user prefix; otherwise a token
// containing a dot is taken as a server host, and a bare token as a nick.
// Offsets are relative to the backing buffer, with the token occupying
// [lo, hi).
func parsePrefix(buf []byte, lo, hi uint32) prefixSpans {
	tok := buf[lo:hi]

	bang := bytes.IndexByte(tok, '!')
	at := bytes.IndexByte(tok, '@')
	if bang >= 0 && at >= 0 && at < bang {
		// `@` before `!` makes the `!` part of the host; treat as nick@host.
		bang = -1
	}

	if bang < 0 && at < 0 {
		if bytes.IndexByte(tok, '.') >= 0 {
			return prefixSpans{kind: PrefixServer, host: Span{Lo: lo, Hi: hi}}
		}
		return prefixSpans{kind: PrefixUser, nick: Span{Lo: lo, Hi: hi}}
	}

	p := prefixSpans{kind: PrefixUser}
	nickEnd := hi
	if bang >= 0 {
		nickEnd = lo + uint32(bang)
	} else if at >= 0 {
		nickEnd = lo + uint32(at)
	}
	p.nick = Span{Lo: lo, Hi: nickEnd}

	if bang >= 0 {
		userEnd := hi
		if at >= 0 {
			userEnd = lo + uint32(at)
		}
		p.user = Span{Lo: lo + uint32(bang) + 1, Hi: userEnd}
	}
	if at >= 0 {
		p.host = Span{Lo: lo + uint32(at) + 1, Hi: hi}
	}
	return p
}
