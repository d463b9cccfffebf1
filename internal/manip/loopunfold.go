package manip

import (
	"fmt"
	"io"

	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/nmlgc/smfloop/internal/smferr"
)

// LoopUnfold appends one extra copy of [start, end) before track's
// EndOfTrack event, where end is the index of that EndOfTrack event. It
// fails with ErrMissingEndOfTrack if track does not end with one. A start
// pulse past every event in track is a no-op, not an error, since there is
// nothing left to repeat.
func LoopUnfold(notices io.Writer, track smf.Track, ppqn smf.MetricTicks, start uint64) (smf.Track, error) {
	if !endsWithEndOfTrack(track) {
		return nil, smferr.ErrMissingEndOfTrack
	}

	startIdx, ok := findEventAtOrAfter(track, start)
	if !ok {
		return track, nil
	}

	end := len(track) - 1
	if end <= startIdx {
		return track, nil
	}

	if notices != nil {
		fmt.Fprintf(notices, "Unfolding events #[%d, %d[\n", startIdx, end)
	}

	segment := make(smf.Track, end-startIdx)
	copy(segment, track[startIdx:end])

	result := make(smf.Track, 0, len(track)+len(segment))
	result = append(result, track[:end]...)
	result = append(result, segment...)
	result = append(result, track[end])
	return result, nil
}
