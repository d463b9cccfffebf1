package manip

import (
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/nmlgc/smfloop/internal/events"
)

// FilterNote removes every NoteOn event whose pulse falls in [start, end)
// — or, with invert, every NoteOn outside that range — folding its delta
// into the following event so absolute pulse positions of everything else
// are unchanged. NoteOff events are never removed, since dropping one of
// those while keeping its NoteOn would leave a note stuck on. end defaults
// to the end of the sequence when nil.
func FilterNote(f *smf.SMF, ppqn smf.MetricTicks, start uint64, end *uint64, invert bool) error {
	if err := validatePulseRange(f, ppqn, start, end); err != nil {
		return err
	}

	endPulse := maxPulse
	if end != nil {
		endPulse = *end
	}

	for ti, track := range f.Tracks {
		var pulse uint64
		var deltaCarry uint32
		newTrack := make(smf.Track, 0, len(track))

		for _, ev := range track {
			pulse += uint64(ev.Delta)
			delta := ev.Delta + deltaCarry
			deltaCarry = 0

			inRange := pulse >= start && pulse < endPulse
			if n, ok := events.NoteOf(ev); ok && n.IsOn() && inRange != invert {
				deltaCarry = delta
				continue
			}

			newTrack = append(newTrack, smf.TrackEvent{Delta: delta, Message: ev.Message})
		}

		f.Tracks[ti] = newTrack
	}
	return nil
}
