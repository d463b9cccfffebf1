package manip

import (
	"fmt"
	"io"

	"gitlab.com/gomidi/midi/v2/smf"
)

// Cut removes every event in [start, end) from every track that has one,
// closing the gap: the first surviving event after the removed span takes
// over the delta of the span's first event, so it and everything after it
// move earlier by the span's length. end defaults to the track's own end
// (its EndOfTrack event, or past its last event if it has none) when nil.
//
// A track whose first event already falls after the cut range is left
// untouched, mirroring a track that simply has nothing to cut.
func Cut(notices io.Writer, f *smf.SMF, ppqn smf.MetricTicks, start uint64, end *uint64) error {
	if err := validatePulseRange(f, ppqn, start, end); err != nil {
		return err
	}

	for ti, track := range f.Tracks {
		startIdx, ok := findEventAtOrAfter(track, start)
		if !ok {
			continue
		}

		endIdx := endOfTrackIndex(track)
		if end != nil {
			if idx, ok := findEventAtOrAfter(track, *end); ok {
				endIdx = idx
			}
		}
		if endIdx <= startIdx {
			continue
		}

		if notices != nil {
			fmt.Fprintf(notices, "Track %d: removing events #[%d, %d[\n", ti, startIdx, endIdx)
		}

		startDelta := track[startIdx].Delta
		newTrack := make(smf.Track, 0, len(track)-(endIdx-startIdx))
		newTrack = append(newTrack, track[:startIdx]...)
		newTrack = append(newTrack, track[endIdx:]...)

		if endsWithEndOfTrack(newTrack) {
			newTrack[startIdx].Delta = startDelta
		} else {
			newTrack = append(newTrack, smf.TrackEvent{Delta: startDelta, Message: smf.MetaEndOfTrack()})
		}

		f.Tracks[ti] = newTrack
	}
	return nil
}
