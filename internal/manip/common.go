// Package manip implements the SMF manipulation commands that sit outside
// the loop-detection core: cut, loopunfold, smf0, and the supplemental
// filternote carried over from the original implementation.
package manip

import (
	"fmt"
	"math"

	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/nmlgc/smfloop/internal/events"
	"github.com/nmlgc/smfloop/internal/miditime"
	"github.com/nmlgc/smfloop/internal/smferr"
)

func endsWithEndOfTrack(track smf.Track) bool {
	if len(track) == 0 {
		return false
	}
	return events.IsEndOfTrack(track[len(track)-1])
}

func endOfTrackIndex(track smf.Track) int {
	if endsWithEndOfTrack(track) {
		return len(track) - 1
	}
	return len(track)
}

// findEventAtOrAfter returns the index of the first event whose cumulative
// pulse is >= pulse.
func findEventAtOrAfter(track smf.Track, pulse uint64) (int, bool) {
	var cur uint64
	for i, ev := range track {
		cur += uint64(ev.Delta)
		if cur >= pulse {
			return i, true
		}
	}
	return 0, false
}

func trackEndPulse(track smf.Track) uint64 {
	var pulse uint64
	for _, ev := range track {
		pulse += uint64(ev.Delta)
	}
	return pulse
}

// sequenceEndTrack picks the longest track by end pulse, used as "the
// sequence's end" for out-of-range error messages.
func sequenceEndTrack(f *smf.SMF) (smf.Track, uint64) {
	var best smf.Track
	var bestPulse uint64
	for _, t := range f.Tracks {
		if p := trackEndPulse(t); p >= bestPulse {
			best, bestPulse = t, p
		}
	}
	return best, bestPulse
}

// validatePulseRange checks start <= end (when end is given) and that
// neither exceeds the sequence's end pulse, as found on its longest track.
func validatePulseRange(f *smf.SMF, ppqn smf.MetricTicks, start uint64, end *uint64) error {
	if end != nil && start > *end {
		return fmt.Errorf("start pulse %d is after end pulse %d: %w", start, *end, smferr.ErrRangeOrder)
	}

	endTrack, seqEnd := sequenceEndTrack(f)
	disp := miditime.NewDisplay(ppqn, endTrack, 0)
	for _, ev := range endTrack {
		disp.Time = disp.Time.Advance(ev)
	}

	check := func(p uint64, label string) error {
		if p > seqEnd {
			return fmt.Errorf("%s pulse %d exceeds the sequence's end (%s): %w",
				label, p, disp, smferr.ErrPulseOutOfRange)
		}
		return nil
	}
	if err := check(start, "start"); err != nil {
		return err
	}
	if end != nil {
		if err := check(*end, "end"); err != nil {
			return err
		}
	}
	return nil
}

const maxPulse = uint64(math.MaxUint64)
