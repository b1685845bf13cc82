package bot

import (
	"github.com/dshills/chatwire/event"
)

// Sender identifies who invoked a command.
type Sender struct {
	// Login is the lowercase account name.
	Login string
	// Display is the display name, falling back to the login.
	Display string
	// Color is the chat color as sent by the server, "#RRGGBB" or empty.
	Color string
	// Badges are the sender's badges.
	Badges []event.Badge
}

// HasBadge reports whether the sender carries the named badge.
func (s Sender) HasBadge(name string) bool {
	return event.HasBadge(s.Badges, name)
}

// IsBroadcaster reports whether the sender owns the channel.
func (s Sender) IsBroadcaster() bool {
	return s.HasBadge("broadcaster")
}

// IsMod reports whether the sender moderates the channel. Broadcasters
// count as moderators.
func (s Sender) IsMod() bool {
	return s.HasBadge("moderator") || s.IsBroadcaster()
}

// Context carries one command invocation through its handler.
type Context struct {
	// Channel is the channel the command arrived in, with the # marker.
	Channel string
	// Sender identifies who sent it.
	Sender Sender
	// Command is the lowercased command name without the prefix.
	Command string
	// Args are the whitespace-split tokens after the command name.
	Args []string
	// Message is the chat event the command arrived in.
	Message event.Privmsg

	bot *Bot
}

func newContext(b *Bot, p event.Privmsg, command string, args []string) *Context {
	return &Context{
		Channel: string(p.Channel),
		Sender: Sender{
			Login:   string(p.Nick),
			Display: string(p.DisplayName()),
			Color:   string(p.Color()),
			Badges:  p.Badges(),
		},
		Command: command,
		Args:    args,
		Message: p,
		bot:     b,
	}
}

// Arg returns the argument at position i.
func (c *Context) Arg(i int) (string, bool) {
	if i < 0 || i >= len(c.Args) {
		return "", false
	}
	return c.Args[i], true
}

// Say sends text to the channel the command arrived in.
func (c *Context) Say(text string) error {
	return c.bot.speaker.Say(c.Channel, text)
}

// Reply sends text as a threaded reply to the invoking message. Messages
// without an id fall back to a plain Say.
func (c *Context) Reply(text string) error {
	id := string(c.Message.ID())
	if id == "" {
		return c.Say(text)
	}
	return c.bot.speaker.Reply(c.Channel, id, text)
}
