package event

import "github.com/dshills/chatwire/irc"

// Raw wraps a decoded message without interpreting it. Subscribing to Raw
// observes every line the server sends, including commands no typed event
// covers.
type Raw struct {
	Message irc.Message
}

func (Raw) Kind() Kind { return KindRaw }

// Own returns a copy whose message owns its memory.
func (r Raw) Own() Raw {
	return Raw{Message: r.Message.Own()}
}

// AsRaw wraps a decoded message. It cannot fail.
func AsRaw(m *irc.Message) Raw {
	return Raw{Message: *m}
}
