package command

import (
	"strconv"
	"time"
)

// Chat commands ride inside PRIVMSG as slash text. Each helper builds the
// canonical form so callers never assemble slash strings by hand.

// Me builds an action message (/me).
func Me(channel, text string) string {
	return Privmsg(channel, "/me "+text)
}

// Clear wipes the chat history (/clear).
func Clear(channel string) string {
	return Privmsg(channel, "/clear")
}

// Ban permanently bans a user. The reason may be empty.
func Ban(channel, user, reason string) string {
	if reason == "" {
		return Privmsg(channel, "/ban "+user)
	}
	return Privmsg(channel, "/ban "+user+" "+reason)
}

// Unban lifts a ban.
func Unban(channel, user string) string {
	return Privmsg(channel, "/unban "+user)
}

// Timeout temporarily bans a user. The duration is rounded down to whole
// seconds.
func Timeout(channel, user string, d time.Duration) string {
	return Privmsg(channel, "/timeout "+user+" "+strconv.Itoa(int(d.Seconds())))
}

// Untimeout lifts a timeout.
func Untimeout(channel, user string) string {
	return Privmsg(channel, "/untimeout "+user)
}

// Slow enables slow mode with the given interval in seconds.
func Slow(channel string, seconds int) string {
	return Privmsg(channel, "/slow "+strconv.Itoa(seconds))
}

// SlowOff disables slow mode.
func SlowOff(channel string) string {
	return Privmsg(channel, "/slowoff")
}

// Followers restricts chat to followers of the given minimum age in
// minutes. Zero admits any follower.
func Followers(channel string, minutes int) string {
	return Privmsg(channel, "/followers "+strconv.Itoa(minutes))
}

// FollowersOff disables followers-only mode.
func FollowersOff(channel string) string {
	return Privmsg(channel, "/followersoff")
}

// Subscribers restricts chat to subscribers.
func Subscribers(channel string) string {
	return Privmsg(channel, "/subscribers")
}

// SubscribersOff disables subscribers-only mode.
func SubscribersOff(channel string) string {
	return Privmsg(channel, "/subscribersoff")
}

// EmoteOnly restricts chat to emotes.
func EmoteOnly(channel string) string {
	return Privmsg(channel, "/emoteonly")
}

// EmoteOnlyOff disables emote-only mode.
func EmoteOnlyOff(channel string) string {
	return Privmsg(channel, "/emoteonlyoff")
}

// UniqueChat requires messages to be unique.
func UniqueChat(channel string) string {
	return Privmsg(channel, "/uniquechat")
}

// UniqueChatOff disables unique-chat mode.
func UniqueChatOff(channel string) string {
	return Privmsg(channel, "/uniquechatoff")
}

// Mod grants moderator status.
func Mod(channel, user string) string {
	return Privmsg(channel, "/mod "+user)
}

// Unmod revokes moderator status.
func Unmod(channel, user string) string {
	return Privmsg(channel, "/unmod "+user)
}

// Vip grants VIP status.
func Vip(channel, user string) string {
	return Privmsg(channel, "/vip "+user)
}

// Unvip revokes VIP status.
func Unvip(channel, user string) string {
	return Privmsg(channel, "/unvip "+user)
}

// Mods asks for the moderator list.
func Mods(channel string) string {
	return Privmsg(channel, "/mods")
}

// Vips asks for the VIP list.
func Vips(channel string) string {
	return Privmsg(channel, "/vips")
}

// Color changes the sender's name color.
func Color(channel, color string) string {
	return Privmsg(channel, "/color "+color)
}

// Commercial starts an ad break of the given length in seconds.
func Commercial(channel string, seconds int) string {
	return Privmsg(channel, "/commercial "+strconv.Itoa(seconds))
}

// Raid sends viewers to another channel when the stream ends.
func Raid(channel, target string) string {
	return Privmsg(channel, "/raid "+Normalize(target))
}

// Unraid cancels a pending raid.
func Unraid(channel string) string {
	return Privmsg(channel, "/unraid")
}

// Marker drops a stream marker. The description may be empty.
func Marker(channel, description string) string {
	if description == "" {
		return Privmsg(channel, "/marker")
	}
	return Privmsg(channel, "/marker "+description)
}

// Delete removes a single message by id.
func Delete(channel, msgID string) string {
	return Privmsg(channel, "/delete "+msgID)
}
