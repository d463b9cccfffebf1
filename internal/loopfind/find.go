package loopfind

import (
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/nmlgc/smfloop/internal/chanstate"
	"github.com/nmlgc/smfloop/internal/events"
)

// ccOnChannel identifies a single controller on a single channel, used to
// track which controller changes inside a loop body are inaudible because
// the channel never sounded a note there.
type ccOnChannel struct {
	ch, cc uint8
}

// findLoopEndingAt searches start positions in [earliestStart, cursor-minLen)
// for the best (earliest) loop ending at cursor, applying the
// pulse-boundary, no-program-change, structural-equality, self-similarity
// and, in recording space, endpoint-state rules. It returns the first start
// that survives all of them, because minLen only grows across cursors and
// any later start at the same cursor with equal length would lose the
// tie-break anyway.
func findLoopEndingAt(track smf.Track, cursor, earliestStart, minLen int, inRecordingSpace bool) (Loop, bool) {
	cursorEv := track[cursor]

	stateBefore := chanstate.New()
	for i := 0; i < earliestStart; i++ {
		stateBefore.Update(track[i])
	}

	for start := earliestStart; start < cursor-minLen; start++ {
		startEv := track[start]
		// Keep stateBefore at track[0:start]: the start event itself is
		// only folded in once the next start is considered.
		if start > earliestStart {
			stateBefore.Update(track[start-1])
		}

		// Pulse-boundary rule: an SMF Type 1 loop point must fall on a
		// pulse boundary, which also keeps a loop from starting mid-chord.
		if startEv.Delta == 0 || cursorEv.Delta == 0 {
			continue
		}

		// No-program-change rule: program changes can be expensive on real
		// devices and must not sit on a loop boundary.
		if events.IsProgramChange(startEv) {
			continue
		}

		if !events.Equal(startEv, cursorEv) {
			continue
		}

		length := cursor - start
		if cursor+length > len(track) {
			// The hypothetical repeat at [cursor, cursor+length) would run
			// past the end of the track, so it cannot be an actual second
			// playthrough recorded there.
			continue
		}
		if !events.RangeEqual(track, start, cursor, length) {
			continue
		}

		newLoop := Loop{Start: start, Len: length}
		if isKPeriodic(track, newLoop) {
			continue
		}

		if inRecordingSpace {
			if !recordingSpaceAccepts(track, stateBefore, start, length) {
				continue
			}
		}

		return newLoop, true
	}

	return Loop{}, false
}

// isKPeriodic reports whether the loop body can be decomposed into k >= 2
// equal sub-ranges of length l.Len/k, for any divisor k of l.Len in
// [2, l.Len/2]. Such a loop is rejected in favor of the shorter period,
// which an earlier (smaller-minLen) cursor would already have found.
func isKPeriodic(track smf.Track, l Loop) bool {
	for k := 2; k <= l.Len/2; k++ {
		if l.Len%k != 0 {
			continue
		}
		sectionLen := l.Len / k
		repeated := true
		for section := 1; section < k; section++ {
			if !events.RangeEqual(track, l.Start, l.Start+section*sectionLen, sectionLen) {
				repeated = false
				break
			}
		}
		if repeated {
			return true
		}
	}
	return false
}

// recordingSpaceAccepts runs the endpoint-state test of section 4.7: it
// replays the loop body from stateBefore (a snapshot of track[0:start]) to
// derive statePast, tracks which channels ever sounded a note inside the
// body, and compares full synthesiser state at both endpoints with
// controller changes on silent channels excluded.
func recordingSpaceAccepts(track smf.Track, stateBefore chanstate.State, start, length int) bool {
	statePast := stateBefore

	var playedANote [16]bool
	var notesActiveOn [16]uint64
	redundantCCs := make(map[ccOnChannel]struct{})

	for i := start; i < start+length; i++ {
		ev := track[i]
		statePast.Update(ev)

		if note, ok := events.NoteOf(ev); ok {
			if note.IsOn() {
				playedANote[note.Channel] = true
				notesActiveOn[note.Channel]++
			} else if notesActiveOn[note.Channel] > 0 {
				// Floor at zero rather than go negative, to tolerate
				// mismatched NoteOff events in sloppy input files.
				notesActiveOn[note.Channel]--
			}
		} else if ch, _, ok := events.NoteOffOf(ev); ok {
			if notesActiveOn[ch] > 0 {
				notesActiveOn[ch]--
			}
		}

		if cc, ok := events.ControllerOf(ev); ok {
			if !playedANote[cc.Channel] {
				redundantCCs[ccOnChannel{ch: cc.Channel, cc: cc.CC}] = struct{}{}
			}
		}
	}

	// A note crossing the loop boundary must not hear a different channel
	// state on replay.
	for ch := range notesActiveOn {
		if notesActiveOn[ch] > 0 && stateBefore.Ch[ch] != statePast.Ch[ch] {
			return false
		}
	}

	for addr := range redundantCCs {
		statePast.Ch[addr.ch].CC[addr.cc] = stateBefore.Ch[addr.ch].CC[addr.cc]
	}

	return stateBefore == statePast
}
