// Package chanstate models the synthesiser state the loop engine compares
// at candidate loop endpoints: 128 controllers and a program/pitch-bend
// pair per channel, plus the global tempo.
package chanstate

import (
	"math"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

const midPitchBend int16 = 0

// Channel is the per-channel slice of synthesiser state.
type Channel struct {
	CC      [128]uint8
	Program uint8
	Bend    int16
}

// State is a full 16-channel snapshot plus the global tempo. It is a plain
// value type so it can be copied cheaply (about 2KiB) and compared with ==.
type State struct {
	Ch    [16]Channel
	Tempo uint32
}

// New returns the default state: zero CCs, program 0, centered pitch bend,
// tempo 0.
func New() State {
	var s State
	for i := range s.Ch {
		s.Ch[i].Bend = midPitchBend
	}
	return s
}

// Update mutates the channel field or global tempo addressed by ev, leaving
// the state unchanged for any other event.
func (s *State) Update(ev smf.TrackEvent) {
	msg := ev.Message

	var ch, cc, val, program uint8
	var rel int16

	switch {
	case msg.GetControlChange(&ch, &cc, &val):
		s.Ch[ch].CC[cc] = val
	case msg.GetProgramChange(&ch, &program):
		s.Ch[ch].Program = program
	case msg.GetPitchBend(&ch, &rel, nil):
		s.Ch[ch].Bend = rel
	}

	if tempo, ok := rawTempoMicroseconds(msg); ok {
		s.Tempo = tempo
	}
}

// rawTempoMicroseconds recovers the microseconds-per-quarter-note encoding
// of a Tempo meta event from the BPM value the smf package surfaces.
func rawTempoMicroseconds(msg midi.Message) (uint32, bool) {
	var bpm float64
	if !msg.GetMetaTempo(&bpm) || bpm <= 0 {
		return 0, false
	}
	return uint32(math.Round(60_000_000 / bpm)), true
}
