package event

import (
	"bytes"

	"github.com/dshills/chatwire/irc"
)

// RoomState reports channel mode settings. The server sends the full state
// on join and a single changed tag when a moderator flips a setting, so the
// getters report absence separately from the off value.
type RoomState struct {
	Tags    irc.Tags
	Channel []byte
}

func (RoomState) Kind() Kind { return KindRoomState }

// Own returns a copy that does not alias the decode buffer.
func (r RoomState) Own() RoomState {
	return RoomState{Tags: r.Tags.Own(), Channel: bytes.Clone(r.Channel)}
}

// AsRoomState converts a decoded ROOMSTATE line.
func AsRoomState(m *irc.Message) (RoomState, error) {
	if err := expectCommand(m, "ROOMSTATE"); err != nil {
		return RoomState{}, err
	}
	channel, err := expectArg(m, 0)
	if err != nil {
		return RoomState{}, err
	}
	return RoomState{Tags: m.Tags(), Channel: channel}, nil
}

// EmoteOnly reports the emote-only setting.
func (r RoomState) EmoteOnly() (bool, bool) {
	return irc.ParseTag[bool](r.Tags, "emote-only")
}

// FollowersOnly returns the followers-only requirement in minutes. -1 means
// the mode is off, 0 admits any follower.
func (r RoomState) FollowersOnly() (int, bool) {
	return irc.ParseTag[int](r.Tags, "followers-only")
}

// Slow returns the slow-mode interval in seconds. 0 means off.
func (r RoomState) Slow() (int, bool) {
	return irc.ParseTag[int](r.Tags, "slow")
}

// SubsOnly reports the subscribers-only setting.
func (r RoomState) SubsOnly() (bool, bool) {
	return irc.ParseTag[bool](r.Tags, "subs-only")
}

// UniqueOnly reports the unique-chat setting, carried on the wire as r9k.
func (r RoomState) UniqueOnly() (bool, bool) {
	return irc.ParseTag[bool](r.Tags, "r9k")
}

// UserState reports the client's own identity within one channel, sent
// after joining and after each message the client sends there.
type UserState struct {
	Tags    irc.Tags
	Channel []byte
}

func (UserState) Kind() Kind { return KindUserState }

// Own returns a copy that does not alias the decode buffer.
func (u UserState) Own() UserState {
	return UserState{Tags: u.Tags.Own(), Channel: bytes.Clone(u.Channel)}
}

// AsUserState converts a decoded USERSTATE line.
func AsUserState(m *irc.Message) (UserState, error) {
	if err := expectCommand(m, "USERSTATE"); err != nil {
		return UserState{}, err
	}
	channel, err := expectArg(m, 0)
	if err != nil {
		return UserState{}, err
	}
	return UserState{Tags: m.Tags(), Channel: channel}, nil
}

// IsMod reports the mod tag.
func (u UserState) IsMod() bool {
	mod, _ := irc.ParseTag[bool](u.Tags, "mod")
	return mod
}

// GlobalUserState reports the client's account-wide identity once
// registration with the tags capability completes. It carries no arguments,
// only tags.
type GlobalUserState struct {
	Tags irc.Tags
}

func (GlobalUserState) Kind() Kind { return KindGlobalUserState }

// Own returns a copy that does not alias the decode buffer.
func (g GlobalUserState) Own() GlobalUserState {
	return GlobalUserState{Tags: g.Tags.Own()}
}

// AsGlobalUserState converts a decoded GLOBALUSERSTATE line.
func AsGlobalUserState(m *irc.Message) (GlobalUserState, error) {
	if err := expectCommand(m, "GLOBALUSERSTATE"); err != nil {
		return GlobalUserState{}, err
	}
	return GlobalUserState{Tags: m.Tags()}, nil
}

// UserID returns the account id tag, or nil.
func (g GlobalUserState) UserID() []byte {
	id, _ := g.Tags.Get("user-id")
	return id
}

// DisplayName returns the display-name tag, or nil.
func (g GlobalUserState) DisplayName() []byte {
	dn, _ := g.Tags.Get("display-name")
	return dn
}
