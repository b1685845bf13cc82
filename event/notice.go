package event

import (
	"bytes"

	"github.com/dshills/chatwire/irc"
)

// Notice is a server notice scoped to a channel, such as the outcome of a
// moderation command or a login failure during registration (channel "*").
type Notice struct {
	Tags    irc.Tags
	Channel []byte
	Text    []byte
}

func (Notice) Kind() Kind { return KindNotice }

// Own returns a copy that does not alias the decode buffer.
func (n Notice) Own() Notice {
	return Notice{
		Tags:    n.Tags.Own(),
		Channel: bytes.Clone(n.Channel),
		Text:    bytes.Clone(n.Text),
	}
}

// AsNotice converts a decoded NOTICE line.
func AsNotice(m *irc.Message) (Notice, error) {
	if err := expectCommand(m, "NOTICE"); err != nil {
		return Notice{}, err
	}
	channel, err := expectArg(m, 0)
	if err != nil {
		return Notice{}, err
	}
	text, err := expectData(m)
	if err != nil {
		return Notice{}, err
	}
	return Notice{Tags: m.Tags(), Channel: channel, Text: text}, nil
}

// MsgID returns the msg-id tag classifying the notice, or nil.
func (n Notice) MsgID() []byte {
	id, _ := n.Tags.Get("msg-id")
	return id
}

// UserNotice announces a channel event such as a subscription, a raid, or a
// ritual. The user-supplied text is optional; the system-msg tag always
// describes the event.
type UserNotice struct {
	Tags    irc.Tags
	Channel []byte
	Text    []byte
}

func (UserNotice) Kind() Kind { return KindUserNotice }

// Own returns a copy that does not alias the decode buffer.
func (u UserNotice) Own() UserNotice {
	return UserNotice{
		Tags:    u.Tags.Own(),
		Channel: bytes.Clone(u.Channel),
		Text:    bytes.Clone(u.Text),
	}
}

// AsUserNotice converts a decoded USERNOTICE line. Text is empty when the
// user attached no message to the event.
func AsUserNotice(m *irc.Message) (UserNotice, error) {
	if err := expectCommand(m, "USERNOTICE"); err != nil {
		return UserNotice{}, err
	}
	channel, err := expectArg(m, 0)
	if err != nil {
		return UserNotice{}, err
	}
	text, _ := m.Data()
	return UserNotice{Tags: m.Tags(), Channel: channel, Text: text}, nil
}

// MsgID returns the msg-id tag naming the event class (sub, resub, raid...).
func (u UserNotice) MsgID() []byte {
	id, _ := u.Tags.Get("msg-id")
	return id
}

// SystemMsg returns the server-rendered description of the event.
func (u UserNotice) SystemMsg() []byte {
	s, _ := u.Tags.Get("system-msg")
	return s
}

// Login returns the login of the user the notice concerns.
func (u UserNotice) Login() []byte {
	l, _ := u.Tags.Get("login")
	return l
}
