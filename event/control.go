package event

import (
	"bytes"
	"strconv"

	"github.com/dshills/chatwire/irc"
)

// Ping is a server liveness probe. The reply must echo Token byte for byte.
type Ping struct {
	Token []byte
}

func (Ping) Kind() Kind { return KindPing }

// Own returns a copy that does not alias the decode buffer.
func (p Ping) Own() Ping {
	return Ping{Token: bytes.Clone(p.Token)}
}

// AsPing converts a decoded PING line. The token is taken from the trailing
// data segment, or from the first argument when the server sends it
// unframed.
func AsPing(m *irc.Message) (Ping, error) {
	if err := expectCommand(m, "PING"); err != nil {
		return Ping{}, err
	}
	if d, ok := m.Data(); ok {
		return Ping{Token: d}, nil
	}
	if a, ok := m.Arg(0); ok {
		return Ping{Token: a}, nil
	}
	return Ping{}, ErrExpectedData
}

// Pong is the server's answer to a client PING.
type Pong struct {
	Token []byte
}

func (Pong) Kind() Kind { return KindPong }

// Own returns a copy that does not alias the decode buffer.
func (p Pong) Own() Pong {
	return Pong{Token: bytes.Clone(p.Token)}
}

// AsPong converts a decoded PONG line. The token rides in the trailing data
// segment after the origin argument; both are optional.
func AsPong(m *irc.Message) (Pong, error) {
	if err := expectCommand(m, "PONG"); err != nil {
		return Pong{}, err
	}
	d, _ := m.Data()
	return Pong{Token: d}, nil
}

// Reconnect warns that the server is about to close the connection and the
// client should establish a fresh one.
type Reconnect struct{}

func (Reconnect) Kind() Kind { return KindReconnect }

// Own returns the event unchanged; there is nothing to copy.
func (r Reconnect) Own() Reconnect { return r }

// AsReconnect converts a decoded RECONNECT line.
func AsReconnect(m *irc.Message) (Reconnect, error) {
	if err := expectCommand(m, "RECONNECT"); err != nil {
		return Reconnect{}, err
	}
	return Reconnect{}, nil
}

// HostTarget reports host mode starting or stopping on a channel. Data
// keeps the raw "target viewers" payload from the wire; Target and Viewers
// parse it on demand.
type HostTarget struct {
	Channel []byte
	Data    []byte
}

func (HostTarget) Kind() Kind { return KindHostTarget }

// Own returns a copy that does not alias the decode buffer.
func (h HostTarget) Own() HostTarget {
	return HostTarget{Channel: bytes.Clone(h.Channel), Data: bytes.Clone(h.Data)}
}

// AsHostTarget converts a decoded HOSTTARGET line.
func AsHostTarget(m *irc.Message) (HostTarget, error) {
	if err := expectCommand(m, "HOSTTARGET"); err != nil {
		return HostTarget{}, err
	}
	channel, err := expectArg(m, 0)
	if err != nil {
		return HostTarget{}, err
	}
	data, err := expectData(m)
	if err != nil {
		return HostTarget{}, err
	}
	return HostTarget{Channel: channel, Data: data}, nil
}

// Target returns the hosted channel, or nil when host mode ended ("-").
func (h HostTarget) Target() []byte {
	fields := bytes.Fields(h.Data)
	if len(fields) == 0 || string(fields[0]) == "-" {
		return nil
	}
	return fields[0]
}

// Viewers returns the viewer count sent with the host notification.
func (h HostTarget) Viewers() (int, bool) {
	fields := bytes.Fields(h.Data)
	if len(fields) < 2 {
		return 0, false
	}
	n, err := strconv.Atoi(string(fields[1]))
	if err != nil {
		return 0, false
	}
	return n, true
}
