package event

import (
	"bytes"

	"github.com/dshills/chatwire/irc"
)

// actionPrefix frames /me messages on the wire (CTCP ACTION).
var actionPrefix = []byte("\x01ACTION ")

// Privmsg is a chat message sent to a channel.
type Privmsg struct {
	Tags    irc.Tags
	Nick    []byte
	Channel []byte
	Text    []byte
}

func (Privmsg) Kind() Kind { return KindPrivmsg }

// Own returns a copy that does not alias the decode buffer.
func (p Privmsg) Own() Privmsg {
	return Privmsg{
		Tags:    p.Tags.Own(),
		Nick:    bytes.Clone(p.Nick),
		Channel: bytes.Clone(p.Channel),
		Text:    bytes.Clone(p.Text),
	}
}

// AsPrivmsg converts a decoded PRIVMSG line. Tags are optional; sessions
// without the tags capability still convert.
func AsPrivmsg(m *irc.Message) (Privmsg, error) {
	if err := expectCommand(m, "PRIVMSG"); err != nil {
		return Privmsg{}, err
	}
	nick, err := expectNick(m)
	if err != nil {
		return Privmsg{}, err
	}
	channel, err := expectArg(m, 0)
	if err != nil {
		return Privmsg{}, err
	}
	text, err := expectData(m)
	if err != nil {
		return Privmsg{}, err
	}
	return Privmsg{Tags: m.Tags(), Nick: nick, Channel: channel, Text: text}, nil
}

// ID returns the server-assigned message id tag, or nil when absent.
func (p Privmsg) ID() []byte {
	id, _ := p.Tags.Get("id")
	return id
}

// DisplayName returns the display-name tag, falling back to the login nick
// when the tag is absent or empty.
func (p Privmsg) DisplayName() []byte {
	if dn, ok := p.Tags.Get("display-name"); ok && len(dn) > 0 {
		return dn
	}
	return p.Nick
}

// Color returns the preferred name color tag ("#RRGGBB"), or nil.
func (p Privmsg) Color() []byte {
	c, _ := p.Tags.Get("color")
	return c
}

// Badges parses the badges tag into its entries.
func (p Privmsg) Badges() []Badge {
	b, _ := p.Tags.Get("badges")
	return ParseBadges(b)
}

// IsAction reports whether the message was sent with /me.
func (p Privmsg) IsAction() bool {
	return bytes.HasPrefix(p.Text, actionPrefix) && bytes.HasSuffix(p.Text, []byte{0x01})
}

// Body returns the message text with any /me framing stripped.
func (p Privmsg) Body() []byte {
	if !p.IsAction() {
		return p.Text
	}
	return p.Text[len(actionPrefix) : len(p.Text)-1]
}

// Whisper is a private message delivered outside any channel. The commands
// capability is required for whispers to arrive at all.
type Whisper struct {
	Tags   irc.Tags
	Nick   []byte
	Target []byte
	Text   []byte
}

func (Whisper) Kind() Kind { return KindWhisper }

// Own returns a copy that does not alias the decode buffer.
func (w Whisper) Own() Whisper {
	return Whisper{
		Tags:   w.Tags.Own(),
		Nick:   bytes.Clone(w.Nick),
		Target: bytes.Clone(w.Target),
		Text:   bytes.Clone(w.Text),
	}
}

// AsWhisper converts a decoded WHISPER line.
func AsWhisper(m *irc.Message) (Whisper, error) {
	if err := expectCommand(m, "WHISPER"); err != nil {
		return Whisper{}, err
	}
	nick, err := expectNick(m)
	if err != nil {
		return Whisper{}, err
	}
	target, err := expectArg(m, 0)
	if err != nil {
		return Whisper{}, err
	}
	text, err := expectData(m)
	if err != nil {
		return Whisper{}, err
	}
	return Whisper{Tags: m.Tags(), Nick: nick, Target: target, Text: text}, nil
}
