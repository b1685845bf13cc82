package event

import (
	"bytes"

	"github.com/dshills/chatwire/irc"
)

// Welcome is the registration acknowledgement the server sends when a login
// succeeds (numeric 001). Nick is the login the server assigned, which for
// anonymous sessions is the justinfan name the client requested.
type Welcome struct {
	Nick []byte
	Text []byte
}

func (Welcome) Kind() Kind { return KindWelcome }

// Own returns a copy that does not alias the decode buffer.
func (w Welcome) Own() Welcome {
	return Welcome{Nick: bytes.Clone(w.Nick), Text: bytes.Clone(w.Text)}
}

// AsWelcome converts a decoded 001 line. The greeting text is optional.
func AsWelcome(m *irc.Message) (Welcome, error) {
	if err := expectCommand(m, "001"); err != nil {
		return Welcome{}, err
	}
	nick, err := expectArg(m, 0)
	if err != nil {
		return Welcome{}, err
	}
	text, _ := m.Data()
	return Welcome{Nick: nick, Text: text}, nil
}
