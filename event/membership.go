package event

import (
	"bytes"

	"github.com/dshills/chatwire/irc"
)

// Join reports a user entering a channel. With the membership capability
// the server sends one per joining user, including the client's own join.
type Join struct {
	Nick    []byte
	Channel []byte
}

func (Join) Kind() Kind { return KindJoin }

// Own returns a copy that does not alias the decode buffer.
func (j Join) Own() Join {
	return Join{Nick: bytes.Clone(j.Nick), Channel: bytes.Clone(j.Channel)}
}

// AsJoin converts a decoded JOIN line.
func AsJoin(m *irc.Message) (Join, error) {
	if err := expectCommand(m, "JOIN"); err != nil {
		return Join{}, err
	}
	nick, err := expectNick(m)
	if err != nil {
		return Join{}, err
	}
	channel, err := expectArg(m, 0)
	if err != nil {
		return Join{}, err
	}
	return Join{Nick: nick, Channel: channel}, nil
}

// Part reports a user leaving a channel.
type Part struct {
	Nick    []byte
	Channel []byte
}

func (Part) Kind() Kind { return KindPart }

// Own returns a copy that does not alias the decode buffer.
func (p Part) Own() Part {
	return Part{Nick: bytes.Clone(p.Nick), Channel: bytes.Clone(p.Channel)}
}

// AsPart converts a decoded PART line.
func AsPart(m *irc.Message) (Part, error) {
	if err := expectCommand(m, "PART"); err != nil {
		return Part{}, err
	}
	nick, err := expectNick(m)
	if err != nil {
		return Part{}, err
	}
	channel, err := expectArg(m, 0)
	if err != nil {
		return Part{}, err
	}
	return Part{Nick: nick, Channel: channel}, nil
}
