package event

import "github.com/dshills/chatwire/irc"

// KindForCommand maps a wire command to the kind of its typed event. ok is
// false for commands with no typed representation; every message still
// converts to Raw.
func KindForCommand(command []byte) (Kind, bool) {
	switch string(command) {
	case "001":
		return KindWelcome, true
	case "JOIN":
		return KindJoin, true
	case "PART":
		return KindPart, true
	case "PRIVMSG":
		return KindPrivmsg, true
	case "WHISPER":
		return KindWhisper, true
	case "NOTICE":
		return KindNotice, true
	case "USERNOTICE":
		return KindUserNotice, true
	case "CLEARCHAT":
		return KindClearChat, true
	case "CLEARMSG":
		return KindClearMsg, true
	case "ROOMSTATE":
		return KindRoomState, true
	case "USERSTATE":
		return KindUserState, true
	case "GLOBALUSERSTATE":
		return KindGlobalUserState, true
	case "HOSTTARGET":
		return KindHostTarget, true
	case "PING":
		return KindPing, true
	case "PONG":
		return KindPong, true
	case "RECONNECT":
		return KindReconnect, true
	}
	return KindRaw, false
}

// Convert builds the typed event of the given kind from a decoded message.
// The result aliases the message buffer until promoted with Own.
func Convert(k Kind, m *irc.Message) (Event, error) {
	switch k {
	case KindRaw:
		return AsRaw(m), nil
	case KindWelcome:
		return AsWelcome(m)
	case KindJoin:
		return AsJoin(m)
	case KindPart:
		return AsPart(m)
	case KindPrivmsg:
		return AsPrivmsg(m)
	case KindWhisper:
		return AsWhisper(m)
	case KindNotice:
		return AsNotice(m)
	case KindUserNotice:
		return AsUserNotice(m)
	case KindClearChat:
		return AsClearChat(m)
	case KindClearMsg:
		return AsClearMsg(m)
	case KindRoomState:
		return AsRoomState(m)
	case KindUserState:
		return AsUserState(m)
	case KindGlobalUserState:
		return AsGlobalUserState(m)
	case KindHostTarget:
		return AsHostTarget(m)
	case KindPing:
		return AsPing(m)
	case KindPong:
		return AsPong(m)
	case KindReconnect:
		return AsReconnect(m)
	default:
		return nil, ErrUnknownKind
	}
}

// Own promotes any event to its own memory, leaving the decode buffer free
// for reuse.
func Own(e Event) Event {
	switch v := e.(type) {
	case Raw:
		return v.Own()
	case Welcome:
		return v.Own()
	case Join:
		return v.Own()
	case Part:
		return v.Own()
	case Privmsg:
		return v.Own()
	case Whisper:
		return v.Own()
	case Notice:
		return v.Own()
	case UserNotice:
		return v.Own()
	case ClearChat:
		return v.Own()
	case ClearMsg:
		return v.Own()
	case RoomState:
		return v.Own()
	case UserState:
		return v.Own()
	case GlobalUserState:
		return v.Own()
	case HostTarget:
		return v.Own()
	case Ping:
		return v.Own()
	case Pong:
		return v.Own()
	case Reconnect:
		return v.Own()
	default:
		return e
	}
}
