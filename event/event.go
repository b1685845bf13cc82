package event

import "github.com/dshills/chatwire/irc"

// Kind identifies a typed event. Kinds are fixed at compile time so that
// dispatch can key subscriptions on a small integer instead of reflected
// types.
type Kind uint8

// Event kinds, one per typed message plus KindRaw which matches every line.
const (
	KindRaw Kind = iota
	KindWelcome
	KindJoin
	KindPart
	KindPrivmsg
	KindWhisper
	KindNotice
	KindUserNotice
	KindClearChat
	KindClearMsg
	KindRoomState
	KindUserState
	KindGlobalUserState
	KindHostTarget
	KindPing
	KindPong
	KindReconnect
)

// String returns a short lowercase name for the kind.
func (k Kind) String() string {
	switch k {
	case KindRaw:
		return "raw"
	case KindWelcome:
		return "welcome"
	case KindJoin:
		return "join"
	case KindPart:
		return "part"
	case KindPrivmsg:
		return "privmsg"
	case KindWhisper:
		return "whisper"
	case KindNotice:
		return "notice"
	case KindUserNotice:
		return "usernotice"
	case KindClearChat:
		return "clearchat"
	case KindClearMsg:
		return "clearmsg"
	case KindRoomState:
		return "roomstate"
	case KindUserState:
		return "userstate"
	case KindGlobalUserState:
		return "globaluserstate"
	case KindHostTarget:
		return "hosttarget"
	case KindPing:
		return "ping"
	case KindPong:
		return "pong"
	case KindReconnect:
		return "reconnect"
	default:
		return "unknown"
	}
}

// Event is implemented by every typed chat event.
type Event interface {
	Kind() Kind
}

// KindOf reports the kind tag of a typed event without needing a value.
func KindOf[M Event]() Kind {
	var zero M
	return zero.Kind()
}

func expectCommand(m *irc.Message, want string) error {
	got := m.Command()
	if string(got) != want {
		return &InvalidCommandError{Expected: want, Got: string(got)}
	}
	return nil
}

func expectArg(m *irc.Message, pos int) ([]byte, error) {
	a, ok := m.Arg(pos)
	if !ok {
		return nil, &ExpectedArgError{Pos: pos}
	}
	return a, nil
}

func expectData(m *irc.Message) ([]byte, error) {
	d, ok := m.Data()
	if !ok {
		return nil, ErrExpectedData
	}
	return d, nil
}

func expectNick(m *irc.Message) ([]byte, error) {
	n, ok := m.Nick()
	if !ok {
		return nil, ErrExpectedNick
	}
	return n, nil
}
