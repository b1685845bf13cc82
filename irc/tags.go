package irc

import (
	"bytes"
	"strconv"
)

// TagPair records where one key=value pair lives inside the tag segment.
type TagPair struct {
	Key   Span
	Value Span
}

// Tags is a view over the raw tag segment of a message (the part after `@`
// and before the first space). Pairs are kept in wire order; lookups by key
// resolve duplicates to the last occurrence.
type Tags struct {
	raw   []byte
	pairs []TagPair
}

// ParseTags parses a tag segment (without the leading `@`) into an ordered
// pair list. The segment bytes are not copied; the returned Tags views them.
func ParseTags(segment []byte) Tags {
	t := Tags{raw: segment}
	if len(segment) == 0 {
		return t
	}

	start := 0
	for start <= len(segment) {
		end := bytes.IndexByte(segment[start:], ';')
		if end < 0 {
			end = len(segment)
		} else {
			end += start
		}

		if end > start {
			pair := TagPair{}
			eq := bytes.IndexByte(segment[start:end], '=')
			if eq < 0 {
				// Key without value, e.g. "solo" in "@solo;k=v".
				pair.Key = Span{Lo: uint32(start), Hi: uint32(end)}
				pair.Value = Span{Lo: uint32(end), Hi: uint32(end)}
			} else {
				eq += start
				pair.Key = Span{Lo: uint32(start), Hi: uint32(eq)}
				pair.Value = Span{Lo: uint32(eq + 1), Hi: uint32(end)}
			}
			t.pairs = append(t.pairs, pair)
		}

		if end == len(segment) {
			break
		}
		start = end + 1
	}

	return t
}

// Len returns the number of pairs, duplicates included.
func (t Tags) Len() int {
	return len(t.pairs)
}

// Pair returns the key and unescaped value of the i'th pair in wire order.
func (t Tags) Pair(i int) (key, value []byte) {
	p := t.pairs[i]
	return p.Key.in(t.raw), unescapeTagValue(p.Value.in(t.raw))
}

// Has reports whether the key is present.
func (t Tags) Has(key string) bool {
	_, ok := t.lookup(key)
	return ok
}

// Get returns the unescaped value for the key. Duplicate keys resolve to the
// last occurrence. The returned slice views the tag segment unless the value
// contained escape sequences, in which case it is a fresh allocation.
func (t Tags) Get(key string) ([]byte, bool) {
	p, ok := t.lookup(key)
	if !ok {
		return nil, false
	}
	return unescapeTagValue(p.Value.in(t.raw)), true
}

// lookup scans from the end so the last duplicate wins.
func (t Tags) lookup(key string) (TagPair, bool) {
	for i := len(t.pairs) - 1; i >= 0; i-- {
		p := t.pairs[i]
		if string(p.Key.in(t.raw)) == key {
			return p, true
		}
	}
	return TagPair{}, false
}

// Own returns a copy of the tags backed by a fresh buffer, independent of
// the source message.
func (t Tags) Own() Tags {
	out := Tags{}
	if t.raw != nil {
		out.raw = append([]byte(nil), t.raw...)
	}
	if t.pairs != nil {
		out.pairs = append([]TagPair(nil), t.pairs...)
	}
	return out
}

// TagValue enumerates the types ParseTag can produce.
type TagValue interface {
	int | int32 | int64 | uint | uint32 | uint64 | float64 | bool | string
}

// ParseTag returns the value for key parsed as T. It returns the zero value
// and false both when the key is absent and when the value does not parse;
// callers that need to tell the two apart must use Get separately. This
// conflation is deliberate and kept for compatibility with how tag consumers
// treat unusable values.
func ParseTag[T TagValue](t Tags, key string) (T, bool) {
	var zero T

	raw, ok := t.Get(key)
	if !ok {
		return zero, false
	}
	s := string(raw)

	switch out := any(&zero).(type) {
	case *string:
		*out = s
		return zero, true
	case *bool:
		v, err := strconv.ParseBool(s)
		if err != nil {
			return zero, false
		}
		*out = v
	case *int:
		v, err := strconv.ParseInt(s, 10, 0)
		if err != nil {
			return zero, false
		}
		*out = int(v)
	case *int32:
		v, err := strconv.ParseInt(s, 10, 32)
		if err != nil {
			return zero, false
		}
		*out = int32(v)
	case *int64:
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return zero, false
		}
		*out = v
	case *uint:
		v, err := strconv.ParseUint(s, 10, 0)
		if err != nil {
			return zero, false
		}
		*out = uint(v)
	case *uint32:
		v, err := strconv.ParseUint(s, 10, 32)
		if err != nil {
			return zero, false
		}
		*out = uint32(v)
	case *uint64:
		v, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return zero, false
		}
		*out = v
	case *float64:
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return zero, false
		}
		*out = v
	}

	return zero, true
}

// unescapeTagValue reverses the tag value escaping: `\:` becomes `;`, `\s`
// a space, `\\` a backslash, `\r` CR and `\n` LF. A backslash before any
// other character is dropped, as is a trailing lone backslash. Values
// without a backslash are returned as-is, unallocated.
func unescapeTagValue(v []byte) []byte {
	if bytes.IndexByte(v, '\\') < 0 {
		return v
	}

	out := make([]byte, 0, len(v))
	for i := 0; i < len(v); i++ {
		c := v[i]
		if c != '\\' {
			out = append(out, c)
			continue
		}
		i++
		if i >= len(v) {
			break
		}
		switch v[i] {
		case ':':
			out = append(out, ';')
		case 's':
			out = append(out, ' ')
		case '\\':
			out = append(out, '\\')
		case 'r':
			out = append(out, '\r')
		case 'n':
			out = append(out, '\n')
		default:
			out = append(out, v[i])
		}
	}
	return out
}
