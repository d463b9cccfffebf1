// Package miditime tracks pulse, beat, realtime and sample position through
// a MIDI track, and formats those positions for reports.
package miditime

import (
	"fmt"
	"math"
	"time"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

// Time is an immutable timekeeping snapshot. Realtime is only defined once a
// Tempo meta event has been observed; QNDuration (the active tempo,
// expressed as the duration of one quarter note) sticks after the last
// Tempo event seen.
type Time struct {
	Pulse      uint64
	Realtime   time.Duration
	HasRT      bool
	QNDuration time.Duration
	HasTempo   bool
	PPQN       uint16
	SampleRate uint32
	HasRate    bool
}

// New builds the zero Time for the given timing, with an optional sample
// rate (0 means none). It only accepts metrical timing, so timecode timing
// cannot reach it; callers obtain the MetricTicks value from
// smffile.RequireMetrical, which rejects timecode timing with
// smferr.ErrUnsupportedTiming.
func New(timing smf.MetricTicks, sampleRate uint32) Time {
	return Time{
		PPQN:       uint16(timing),
		SampleRate: sampleRate,
		HasRate:    sampleRate != 0,
	}
}

// Advance returns the Time after processing one track event. The delta
// increment is applied before a Tempo meta event (if any) takes effect, so
// the tempo change governs subsequent deltas rather than its own.
func (t Time) Advance(ev smf.TrackEvent) Time {
	next := t
	next.Pulse = t.Pulse + uint64(ev.Delta)

	if t.HasTempo {
		inc := t.QNDuration * time.Duration(ev.Delta) / time.Duration(t.PPQN)
		if t.HasRT {
			next.Realtime = t.Realtime + inc
		} else {
			next.Realtime = inc
		}
		next.HasRT = true
	}

	if bpm, ok := tempoOf(ev.Message); ok {
		next.QNDuration = qnDurationFromBPM(bpm)
		next.HasTempo = true
	}

	return next
}

func tempoOf(msg midi.Message) (float64, bool) {
	var bpm float64
	if msg.GetMetaTempo(&bpm) && bpm > 0 {
		return bpm, true
	}
	return 0, false
}

// qnDurationFromBPM converts a tempo expressed in BPM (as surfaced by
// smf.TrackEvent.Message.GetMetaTempo) back into the duration of one
// quarter note, matching the microsecond resolution SMF tempo events are
// actually encoded with.
func qnDurationFromBPM(bpm float64) time.Duration {
	micros := math.Round(60_000_000 / bpm)
	return time.Duration(micros) * time.Microsecond
}

// Sample returns the sample index derived from SampleRate and Realtime, and
// whether both are defined.
func (t Time) Sample() (float64, bool) {
	if !t.HasRate || !t.HasRT {
		return 0, false
	}
	return t.Realtime.Seconds() * float64(t.SampleRate), true
}

// String implements a minimal textual form, mostly useful for debugging;
// reports use Display instead.
func (t Time) String() string {
	return fmt.Sprintf("pulse=%d", t.Pulse)
}
