package event

import (
	"bytes"
	"time"

	"github.com/dshills/chatwire/irc"
)

// ClearChat reports a ban, a timeout, or a full chat clear. Target is the
// login of the affected user and is empty when the whole chat was cleared.
type ClearChat struct {
	Tags    irc.Tags
	Channel []byte
	Target  []byte
}

func (ClearChat) Kind() Kind { return KindClearChat }

// Own returns a copy that does not alias the decode buffer.
func (c ClearChat) Own() ClearChat {
	return ClearChat{
		Tags:    c.Tags.Own(),
		Channel: bytes.Clone(c.Channel),
		Target:  bytes.Clone(c.Target),
	}
}

// AsClearChat converts a decoded CLEARCHAT line. The target user rides in
// the trailing data segment and is absent for full clears.
func AsClearChat(m *irc.Message) (ClearChat, error) {
	if err := expectCommand(m, "CLEARCHAT"); err != nil {
		return ClearChat{}, err
	}
	channel, err := expectArg(m, 0)
	if err != nil {
		return ClearChat{}, err
	}
	target, _ := m.Data()
	return ClearChat{Tags: m.Tags(), Channel: channel, Target: target}, nil
}

// BanDuration returns the timeout length. ok is false for permanent bans
// and full chat clears, which carry no ban-duration tag.
func (c ClearChat) BanDuration() (time.Duration, bool) {
	secs, ok := irc.ParseTag[int64](c.Tags, "ban-duration")
	if !ok {
		return 0, false
	}
	return time.Duration(secs) * time.Second, true
}

// ClearMsg removes a single message, identified by the target-msg-id tag.
type ClearMsg struct {
	Tags    irc.Tags
	Channel []byte
	Text    []byte
}

func (ClearMsg) Kind() Kind { return KindClearMsg }

// Own returns a copy that does not alias the decode buffer.
func (c ClearMsg) Own() ClearMsg {
	return ClearMsg{
		Tags:    c.Tags.Own(),
		Channel: bytes.Clone(c.Channel),
		Text:    bytes.Clone(c.Text),
	}
}

// AsClearMsg converts a decoded CLEARMSG line. Text is the deleted message.
func AsClearMsg(m *irc.Message) (ClearMsg, error) {
	if err := expectCommand(m, "CLEARMSG"); err != nil {
		return ClearMsg{}, err
	}
	channel, err := expectArg(m, 0)
	if err != nil {
		return ClearMsg{}, err
	}
	text, err := expectData(m)
	if err != nil {
		return ClearMsg{}, err
	}
	return ClearMsg{Tags: m.Tags(), Channel: channel, Text: text}, nil
}

// Login returns the login of the user whose message was deleted.
func (c ClearMsg) Login() []byte {
	l, _ := c.Tags.Get("login")
	return l
}

// TargetMsgID returns the id of the deleted message.
func (c ClearMsg) TargetMsgID() []byte {
	id, _ := c.Tags.Get("target-msg-id")
	return id
}
