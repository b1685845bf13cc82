package event

import (
	"bytes"
	"strconv"
	"time"

	"github.com/dshills/chatwire/irc"
)

// Badge is a single chat badge with its version, such as subscriber/12.
type Badge struct {
	Name    string
	Version string
}

// ParseBadges splits a badges tag value of the form
// "broadcaster/1,subscriber/12" into its entries. A nil or empty value
// yields nil.
func ParseBadges(v []byte) []Badge {
	if len(v) == 0 {
		return nil
	}
	parts := bytes.Split(v, []byte{','})
	badges := make([]Badge, 0, len(parts))
	for _, p := range parts {
		if len(p) == 0 {
			continue
		}
		name, version, _ := bytes.Cut(p, []byte{'/'})
		badges = append(badges, Badge{Name: string(name), Version: string(version)})
	}
	return badges
}

// HasBadge reports whether a badge with the given name is present,
// regardless of version.
func HasBadge(badges []Badge, name string) bool {
	for _, b := range badges {
		if b.Name == name {
			return true
		}
	}
	return false
}

// EmoteRange is a single occurrence of an emote. Start and End are
// inclusive character positions within the message text, as sent by the
// server.
type EmoteRange struct {
	Start int
	End   int
}

// Emote is one emote id with every position it occupies in a message.
type Emote struct {
	ID        string
	Positions []EmoteRange
}

// ParseEmotes splits an emotes tag value of the form
// "25:0-4,12-16/1902:6-10" into its entries. Malformed groups and ranges
// are skipped.
func ParseEmotes(v []byte) []Emote {
	if len(v) == 0 {
		return nil
	}
	groups := bytes.Split(v, []byte{'/'})
	emotes := make([]Emote, 0, len(groups))
	for _, g := range groups {
		id, ranges, ok := bytes.Cut(g, []byte{':'})
		if !ok || len(id) == 0 {
			continue
		}
		e := Emote{ID: string(id)}
		for _, r := range bytes.Split(ranges, []byte{','}) {
			lo, hi, ok := bytes.Cut(r, []byte{'-'})
			if !ok {
				continue
			}
			start, err1 := strconv.Atoi(string(lo))
			end, err2 := strconv.Atoi(string(hi))
			if err1 != nil || err2 != nil {
				continue
			}
			e.Positions = append(e.Positions, EmoteRange{Start: start, End: end})
		}
		if len(e.Positions) > 0 {
			emotes = append(emotes, e)
		}
	}
	return emotes
}

// ParseHexColor decodes a "#RRGGBB" color tag value. The leading '#' is
// optional.
func ParseHexColor(v []byte) (r, g, b uint8, ok bool) {
	if len(v) > 0 && v[0] == '#' {
		v = v[1:]
	}
	if len(v) != 6 {
		return 0, 0, 0, false
	}
	rv, err1 := strconv.ParseUint(string(v[0:2]), 16, 8)
	gv, err2 := strconv.ParseUint(string(v[2:4]), 16, 8)
	bv, err3 := strconv.ParseUint(string(v[4:6]), 16, 8)
	if err1 != nil || err2 != nil || err3 != nil {
		return 0, 0, 0, false
	}
	return uint8(rv), uint8(gv), uint8(bv), true
}

// SentAt reads the server timestamp tag (tmi-sent-ts, milliseconds since
// the Unix epoch) from a tag set.
func SentAt(t irc.Tags) (time.Time, bool) {
	ms, ok := irc.ParseTag[int64](t, "tmi-sent-ts")
	if !ok {
		return time.Time{}, false
	}
	return time.UnixMilli(ms), true
}
