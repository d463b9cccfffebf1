package manip

import (
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/nmlgc/smfloop/internal/events"
)

// trackCursor tracks one source track's position during the SMF0 merge:
// i is the index of its next unconsumed event, pulseOfI its absolute pulse.
type trackCursor struct {
	track    smf.Track
	i        int
	pulseOfI uint64
}

// SMF0 flattens every track of f into a single format-0 track, ordered by
// absolute pulse with ties broken by source track order. Interior
// EndOfTrack events (every track's own terminator) are dropped during the
// merge and replaced by one new EndOfTrack at the very end. A file that
// already has at most one track is returned unchanged.
func SMF0(f *smf.SMF) *smf.SMF {
	if len(f.Tracks) <= 1 {
		return f
	}

	capacity := 0
	for _, t := range f.Tracks {
		capacity += len(t)
	}
	merged := make(smf.Track, 0, capacity)

	var cursors []*trackCursor
	for _, t := range f.Tracks {
		if len(t) == 0 {
			continue
		}
		cursors = append(cursors, &trackCursor{track: t, i: 0, pulseOfI: uint64(t[0].Delta)})
	}

	// pulse is the absolute pulse of the last emitted event, lastPulse that
	// of the last consumed one (emitted or dropped).
	var pulse, lastPulse uint64

	for len(cursors) > 0 {
		minIdx := 0
		for i := 1; i < len(cursors); i++ {
			if cursors[i].pulseOfI < cursors[minIdx].pulseOfI {
				minIdx = i
			}
		}

		c := cursors[minIdx]
		ev := c.track[c.i]
		lastPulse = c.pulseOfI

		if !events.IsEndOfTrack(ev) {
			merged = append(merged, smf.TrackEvent{Delta: uint32(c.pulseOfI - pulse), Message: ev.Message})
			pulse = c.pulseOfI
		}

		c.i++
		if c.i >= len(c.track) {
			cursors = append(cursors[:minIdx], cursors[minIdx+1:]...)
			continue
		}
		c.pulseOfI += uint64(c.track[c.i].Delta)
	}

	merged = append(merged, smf.TrackEvent{Delta: uint32(lastPulse - pulse), Message: smf.MetaEndOfTrack()})

	out := smf.New()
	out.TimeFormat = f.TimeFormat
	out.Add(merged)
	return out
}
