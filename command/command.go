// Package command builds the wire lines a client sends. Each builder
// returns a complete line without the trailing CRLF; the connection writer
// adds the framing.
//
// Channel arguments are normalized with Normalize before use, so callers
// may pass "Chan", "#chan", or "#CHAN" interchangeably. Message text has
// line breaks replaced with spaces to keep one call one line; other fields
// are used as given.
package command

import (
	"strings"
)

// Capability names for CapReq.
const (
	CapCommands   = "twitch.tv/commands"
	CapMembership = "twitch.tv/membership"
	CapTags       = "twitch.tv/tags"
)

// DefaultCaps returns the capability set a full-featured session requests.
func DefaultCaps() []string {
	return []string{CapCommands, CapMembership, CapTags}
}

// Normalize canonicalizes a channel name: lowercase with exactly one
// leading '#'. It is idempotent and returns "" unchanged.
func Normalize(channel string) string {
	if channel == "" {
		return ""
	}
	channel = strings.TrimLeft(channel, "#")
	return "#" + strings.ToLower(channel)
}

// sanitizeText keeps user text from breaking line framing.
func sanitizeText(text string) string {
	if !strings.ContainsAny(text, "\r\n") {
		return text
	}
	text = strings.ReplaceAll(text, "\r\n", " ")
	text = strings.ReplaceAll(text, "\r", " ")
	return strings.ReplaceAll(text, "\n", " ")
}

// Pass builds the authentication line. The oauth: prefix is added when the
// token does not already carry it.
func Pass(token string) string {
	const prefix = "oauth:"
	return "PASS " + prefix + strings.TrimPrefix(token, prefix)
}

// Nick builds the login line.
func Nick(nick string) string {
	return "NICK " + strings.ToLower(nick)
}

// CapReq requests protocol capabilities, all in one line.
func CapReq(caps ...string) string {
	return "CAP REQ :" + strings.Join(caps, " ")
}

// Join builds a join for one or more channels.
func Join(channels ...string) string {
	return "JOIN " + joinChannels(channels)
}

// Part builds a part for one or more channels.
func Part(channels ...string) string {
	return "PART " + joinChannels(channels)
}

func joinChannels(channels []string) string {
	normalized := make([]string, 0, len(channels))
	for _, ch := range channels {
		if n := Normalize(ch); n != "" {
			normalized = append(normalized, n)
		}
	}
	return strings.Join(normalized, ",")
}

// Privmsg builds a chat message to a channel.
func Privmsg(channel, text string) string {
	return "PRIVMSG " + Normalize(channel) + " :" + sanitizeText(text)
}

// Reply builds a threaded chat message answering the message with the
// given id.
func Reply(channel, parentID, text string) string {
	return "@reply-parent-msg-id=" + parentID + " " + Privmsg(channel, text)
}

// Ping builds a liveness probe carrying the given token.
func Ping(token []byte) string {
	if len(token) == 0 {
		return "PING"
	}
	return "PING :" + string(token)
}

// Pong answers a server probe. The token must round-trip byte for byte, so
// it is echoed without any rewriting.
func Pong(token []byte) string {
	if len(token) == 0 {
		return "PONG"
	}
	return "PONG :" + string(token)
}
