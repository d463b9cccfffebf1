// Package events classifies smf.TrackEvent values for the loop engine,
// mirroring the narrow slice of MIDI messages the engine actually cares
// about.
package events

import (
	"bytes"
	"fmt"

	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/nmlgc/smfloop/internal/gmpercussion"
)

// Note is a NoteOn observation. A NoteOn with velocity 0 is still returned
// here; use IsOn to tell NoteOn from the NoteOn-as-NoteOff convention.
type Note struct {
	Channel uint8
	Key     uint8
	Vel     uint8
}

// IsOn reports whether this is a sounding NoteOn (velocity > 0).
func (n Note) IsOn() bool {
	return n.Vel > 0
}

// NoteOf extracts a Note from a NoteOn event. NoteOff messages are not
// matched here; the recording-space search detects them separately with
// NoteOffOf, and tells a NoteOn with vel==0 apart via Note.IsOn.
func NoteOf(ev smf.TrackEvent) (Note, bool) {
	var ch, key, vel uint8
	if ev.Message.GetNoteOn(&ch, &key, &vel) {
		return Note{Channel: ch, Key: key, Vel: vel}, true
	}
	return Note{}, false
}

// NoteOffOf reports whether ev is a NoteOff event (either a literal NoteOff
// message, or a NoteOn with velocity 0), and the channel/key it addresses.
func NoteOffOf(ev smf.TrackEvent) (channel, key uint8, ok bool) {
	var ch, k, vel uint8
	if ev.Message.GetNoteOff(&ch, &k, &vel) {
		return ch, k, true
	}
	if ev.Message.GetNoteOn(&ch, &k, &vel) && vel == 0 {
		return ch, k, true
	}
	return 0, 0, false
}

// Controller is a Control Change observation.
type Controller struct {
	Channel uint8
	CC      uint8
}

// ControllerOf extracts a Controller from a ControlChange event.
func ControllerOf(ev smf.TrackEvent) (Controller, bool) {
	var ch, cc, val uint8
	if ev.Message.GetControlChange(&ch, &cc, &val) {
		return Controller{Channel: ch, CC: cc}, true
	}
	return Controller{}, false
}

// IsProgramChange reports whether ev is a ProgramChange event.
func IsProgramChange(ev smf.TrackEvent) bool {
	var ch, program uint8
	return ev.Message.GetProgramChange(&ch, &program)
}

var endOfTrackBytes = []byte(smf.MetaEndOfTrack())

// IsEndOfTrack reports whether ev is the EndOfTrack meta event.
func IsEndOfTrack(ev smf.TrackEvent) bool {
	return bytes.Equal([]byte(ev.Message), endOfTrackBytes)
}

// Equal reports full structural equality of two events: identical delta and
// identical message bytes.
func Equal(a, b smf.TrackEvent) bool {
	return a.Delta == b.Delta && bytes.Equal([]byte(a.Message), []byte(b.Message))
}

// RangeEqual reports whether track[a:a+n] and track[b:b+n] are
// element-wise equal.
func RangeEqual(track smf.Track, a, b, n int) bool {
	for i := 0; i < n; i++ {
		if !Equal(track[a+i], track[b+i]) {
			return false
		}
	}
	return true
}

// Describe renders a short human-readable label for an event's message,
// used by the dump command. Text-bearing meta events are hex-dumped rather
// than interpreted as UTF-8, since SMF does not mandate an encoding.
func Describe(ev smf.TrackEvent) string {
	msg := ev.Message

	var ch, key, vel, program uint8
	var rel int16
	var num, denom uint8

	switch {
	case msg.GetNoteOn(&ch, &key, &vel):
		return fmt.Sprintf("NoteOn(ch=%d, key=%d, vel=%d)%s", ch, key, vel, percussionSuffix(ch, key))
	case msg.GetNoteOff(&ch, &key, &vel):
		return fmt.Sprintf("NoteOff(ch=%d, key=%d, vel=%d)%s", ch, key, vel, percussionSuffix(ch, key))
	case msg.GetControlChange(&ch, &key, &vel):
		return fmt.Sprintf("ControlChange(ch=%d, cc=%d, val=%d)", ch, key, vel)
	case msg.GetProgramChange(&ch, &program):
		return fmt.Sprintf("ProgramChange(ch=%d, program=%d)", ch, program)
	case msg.GetPitchBend(&ch, &rel, nil):
		return fmt.Sprintf("PitchBend(ch=%d, value=%d)", ch, rel)
	case msg.GetPolyAfterTouch(&ch, &key, &vel):
		return fmt.Sprintf("PolyAfterTouch(ch=%d, key=%d, pressure=%d)", ch, key, vel)
	case msg.GetAfterTouch(&ch, &vel):
		return fmt.Sprintf("AfterTouch(ch=%d, pressure=%d)", ch, vel)
	}

	var tempo float64
	var text string
	switch {
	case msg.GetMetaTempo(&tempo):
		return fmt.Sprintf("Meta(Tempo(%.1f BPM))", tempo)
	case msg.GetMetaTimeSig(&num, &denom, nil, nil):
		return fmt.Sprintf("Meta(TimeSig(%d/%d))", num, 1<<denom)
	case msg.GetMetaTrackName(&text):
		return fmt.Sprintf("Meta(TrackName(%s))", hexOrText(text))
	case msg.GetMetaLyric(&text):
		return fmt.Sprintf("Meta(Lyric(%s))", hexOrText(text))
	case msg.GetMetaMarker(&text):
		return fmt.Sprintf("Meta(Marker(%s))", hexOrText(text))
	case msg.GetMetaText(&text):
		return fmt.Sprintf("Meta(Text(%s))", hexOrText(text))
	case IsEndOfTrack(ev):
		return "Meta(EndOfTrack)"
	}

	return fmt.Sprintf("%s(% X)", msg.Type(), []byte(msg))
}

func hexOrText(s string) string {
	return fmt.Sprintf("% X", []byte(s))
}

// percussionSuffix names the General MIDI drum sound for a note on the
// percussion channel, or returns "" for every other channel or key.
func percussionSuffix(ch, key uint8) string {
	if ch != gmpercussion.Channel {
		return ""
	}
	name, ok := gmpercussion.Name(key)
	if !ok {
		return ""
	}
	return fmt.Sprintf(" [%s]", name)
}
