package event

import (
	"testing"
	"time"

	"github.com/dshills/chatwire/irc"
)

func TestParseBadges(t *testing.T) {
	badges := ParseBadges([]byte("broadcaster/1,subscriber/12"))
	if len(badges) != 2 {
		t.Fatalf("expected 2 badges, got %d", len(badges))
	}
	if badges[0].Name != "broadcaster" || badges[0].Version != "1" {
		t.Errorf("unexpected first badge %+v", badges[0])
	}
	if badges[1].Name != "subscriber" || badges[1].Version != "12" {
		t.Errorf("unexpected second badge %+v", badges[1])
	}

	if ParseBadges(nil) != nil {
		t.Error("expected nil for nil input")
	}
	if ParseBadges([]byte{}) != nil {
		t.Error("expected nil for empty input")
	}

	badges = ParseBadges([]byte("glitchcon2020/1"))
	if len(badges) != 1 || badges[0].Name != "glitchcon2020" {
		t.Errorf("unexpected badges %v", badges)
	}
}

func TestHasBadge(t *testing.T) {
	badges := ParseBadges([]byte("moderator/1,subscriber/3"))
	if !HasBadge(badges, "moderator") {
		t.Error("expected moderator badge")
	}
	if HasBadge(badges, "broadcaster") {
		t.Error("did not expect broadcaster badge")
	}
	if HasBadge(nil, "moderator") {
		t.Error("empty badge set has no badges")
	}
}

func TestParseEmotes(t *testing.T) {
	emotes := ParseEmotes([]byte("25:0-4,12-16/1902:6-10"))
	if len(emotes) != 2 {
		t.Fatalf("expected 2 emotes, got %d", len(emotes))
	}
	if emotes[0].ID != "25" || len(emotes[0].Positions) != 2 {
		t.Errorf("unexpected first emote %+v", emotes[0])
	}
	if emotes[0].Positions[0] != (EmoteRange{Start: 0, End: 4}) {
		t.Errorf("unexpected first range %+v", emotes[0].Positions[0])
	}
	if emotes[1].ID != "1902" || len(emotes[1].Positions) != 1 {
		t.Errorf("unexpected second emote %+v", emotes[1])
	}

	if ParseEmotes(nil) != nil {
		t.Error("expected nil for nil input")
	}
	if got := ParseEmotes([]byte("garbage")); got != nil {
		t.Errorf("expected nil for malformed input, got %v", got)
	}
}

func TestParseHexColor(t *testing.T) {
	r, g, b, ok := ParseHexColor([]byte("#1E90FF"))
	if !ok || r != 0x1E || g != 0x90 || b != 0xFF {
		t.Errorf("unexpected result (%d, %d, %d, %v)", r, g, b, ok)
	}

	r, g, b, ok = ParseHexColor([]byte("1E90FF"))
	if !ok || r != 0x1E || g != 0x90 || b != 0xFF {
		t.Errorf("expected bare hex to parse, got (%d, %d, %d, %v)", r, g, b, ok)
	}

	if _, _, _, ok := ParseHexColor([]byte("#zzz")); ok {
		t.Error("expected malformed color to fail")
	}
	if _, _, _, ok := ParseHexColor(nil); ok {
		t.Error("expected empty color to fail")
	}
	if _, _, _, ok := ParseHexColor([]byte("#1E90FF00")); ok {
		t.Error("expected over-long color to fail")
	}
}

func TestSentAt(t *testing.T) {
	msg := decodeLine(t, "@tmi-sent-ts=1507246572675 :n!u@h PRIVMSG #c :hi\r\n")
	p, err := AsPrivmsg(&msg)
	if err != nil {
		t.Fatalf("AsPrivmsg failed: %v", err)
	}

	at, ok := SentAt(p.Tags)
	if !ok {
		t.Fatal("expected a timestamp")
	}
	if !at.Equal(time.UnixMilli(1507246572675)) {
		t.Errorf("unexpected timestamp %v", at)
	}

	if _, ok := SentAt(irc.Tags{}); ok {
		t.Error("empty tags should have no timestamp")
	}
}
