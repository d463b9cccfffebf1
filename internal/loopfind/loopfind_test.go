package loopfind

import (
	"testing"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

func TestBetterThan(t *testing.T) {
	cases := []struct {
		a, b Loop
		want bool
	}{
		{Loop{Start: 0, Len: 4}, Loop{Start: 0, Len: 2}, true},
		{Loop{Start: 0, Len: 2}, Loop{Start: 0, Len: 4}, false},
		{Loop{Start: 2, Len: 4}, Loop{Start: 5, Len: 4}, true},
		{Loop{Start: 5, Len: 4}, Loop{Start: 2, Len: 4}, false},
		{Loop{}, Loop{Start: 0, Len: 1}, false},
	}
	for _, c := range cases {
		if got := c.a.BetterThan(c.b); got != c.want {
			t.Errorf("%+v.BetterThan(%+v) = %v, want %v", c.a, c.b, got, c.want)
		}
	}
}

// degenerateTrack is four notes repeated, verbatim, four times:
// index 1..8 is (NoteOn(0,60) d480, NoteOff(0,60) d10) repeated four times.
// It exercises the self-similarity rule directly.
func degenerateTrack() smf.Track {
	return smf.Track{
		{Delta: 0, Message: smf.MetaTempo(120)},
		{Delta: 480, Message: midi.NoteOn(0, 60, 100)},
		{Delta: 10, Message: midi.NoteOff(0, 60)},
		{Delta: 480, Message: midi.NoteOn(0, 60, 100)},
		{Delta: 10, Message: midi.NoteOff(0, 60)},
		{Delta: 480, Message: midi.NoteOn(0, 60, 100)},
		{Delta: 10, Message: midi.NoteOff(0, 60)},
		{Delta: 480, Message: midi.NoteOn(0, 60, 100)},
		{Delta: 10, Message: midi.NoteOff(0, 60)},
		{Delta: 0, Message: smf.MetaEndOfTrack()},
	}
}

func TestFindLoopEndingAtRejectsKPeriodicBody(t *testing.T) {
	track := degenerateTrack()

	// At cursor 5, start=1 gives a structurally-equal length-4 body that is
	// itself 2-periodic (two copies of the same 2-event unit), so it must
	// be rejected in favor of the genuine length-2 repeat found later in
	// the same scan, at start=3.
	got, ok := findLoopEndingAt(track, 5, 0, 0, false)
	if !ok {
		t.Fatalf("findLoopEndingAt(cursor=5) ok = false, want a loop")
	}
	if want := (Loop{Start: 3, Len: 2}); got != want {
		t.Fatalf("findLoopEndingAt(cursor=5) = %+v, want %+v", got, want)
	}
}

func simpleLoopTrack() smf.Track {
	return smf.Track{
		{Delta: 0, Message: smf.MetaTempo(120)},
		{Delta: 480, Message: midi.NoteOn(0, 60, 100)},
		{Delta: 10, Message: midi.NoteOff(0, 60)},
		{Delta: 480, Message: midi.NoteOn(0, 62, 100)}, // loop start (index 3)
		{Delta: 10, Message: midi.NoteOff(0, 62)},
		{Delta: 480, Message: midi.NoteOn(0, 62, 100)}, // loop end (index 5)
		{Delta: 10, Message: midi.NoteOff(0, 62)},
		{Delta: 480, Message: midi.NoteOn(0, 64, 100)},
		{Delta: 10, Message: midi.NoteOff(0, 64)},
		{Delta: 0, Message: smf.MetaEndOfTrack()},
	}
}

func TestFindDefaultFindsTheLoop(t *testing.T) {
	track := simpleLoopTrack()
	got := FindDefault(track)
	if want := (Loop{Start: 3, Len: 2}); got != want {
		t.Fatalf("FindDefault = %+v, want %+v", got, want)
	}
}

func TestFindIsDeterministicAcrossWorkerCounts(t *testing.T) {
	track := simpleLoopTrack()
	want := Find(track, 1)
	for _, workers := range []int{2, 3, 4, len(track)} {
		if got := Find(track, workers); got != want {
			t.Errorf("Find(workers=%d) = %+v, want %+v", workers, got, want)
		}
	}
}

func TestFindNoLoop(t *testing.T) {
	track := smf.Track{
		{Delta: 0, Message: smf.MetaTempo(120)},
		{Delta: 480, Message: midi.NoteOn(0, 60, 100)},
		{Delta: 10, Message: midi.NoteOff(0, 60)},
		{Delta: 480, Message: midi.NoteOn(0, 62, 100)},
		{Delta: 10, Message: midi.NoteOff(0, 62)},
		{Delta: 480, Message: midi.NoteOn(0, 64, 100)},
		{Delta: 10, Message: midi.NoteOff(0, 64)},
		{Delta: 0, Message: smf.MetaEndOfTrack()},
	}
	if got := FindDefault(track); got.Found() {
		t.Fatalf("FindDefault = %+v, want no loop", got)
	}
}

func TestFindLoopEndingAtRejectsPulseBoundary(t *testing.T) {
	track := smf.Track{
		{Delta: 0, Message: midi.NoteOn(0, 60, 100)}, // start candidate has Delta 0
		{Delta: 480, Message: midi.ControlChange(0, 1, 1)},
		{Delta: 0, Message: midi.NoteOn(0, 60, 100)}, // structurally equal to index 0, but Delta 0
	}
	if _, ok := findLoopEndingAt(track, 2, 0, 0, false); ok {
		t.Fatalf("findLoopEndingAt found a loop across a zero-delta boundary")
	}
}

func TestFindLoopEndingAtRejectsProgramChangeAtStart(t *testing.T) {
	track := smf.Track{
		{Delta: 480, Message: midi.ProgramChange(0, 5)},
		{Delta: 480, Message: midi.NoteOn(0, 60, 100)},
		{Delta: 480, Message: midi.ProgramChange(0, 5)},
	}
	if _, ok := findLoopEndingAt(track, 2, 0, 0, false); ok {
		t.Fatalf("findLoopEndingAt started a loop at a ProgramChange event")
	}
}

// crossingNoteTrack repeats a CC(0,2,77) boundary marker, with a note
// turned on inside the loop body and never turned off there (it sustains
// across the loop point), plus a controller change after the note starts
// that is not redundant and must be matched exactly on both passes.
func crossingNoteTrack() smf.Track {
	return smf.Track{
		{Delta: 0, Message: midi.ControlChange(0, 5, 1)},
		{Delta: 480, Message: midi.ControlChange(0, 2, 77)}, // start (1)
		{Delta: 480, Message: midi.NoteOn(0, 60, 100)},      // (2)
		{Delta: 480, Message: midi.ControlChange(0, 1, 10)}, // (3)
		{Delta: 480, Message: midi.ControlChange(0, 2, 77)}, // cursor (4)
		{Delta: 480, Message: midi.NoteOn(0, 60, 100)},      // (5)
		{Delta: 480, Message: midi.ControlChange(0, 1, 10)}, // (6)
		{Delta: 0, Message: smf.MetaEndOfTrack()},
	}
}

func TestRecordingSpaceRejectsStateMismatchOnCrossingNote(t *testing.T) {
	track := crossingNoteTrack()

	if _, ok := findLoopEndingAt(track, 4, 1, 0, false); !ok {
		t.Fatalf("note-space search didn't find the candidate loop to begin with")
	}
	if _, ok := findLoopEndingAt(track, 4, 1, 0, true); ok {
		t.Fatalf("recording-space search accepted a loop with mismatched state on a crossing note")
	}
}

// redundantCCTrack repeats a boundary marker, a controller change that
// happens before any note sounds (so it's forgiven as inaudible), a note
// that is turned off again within the same body (so it does not cross the
// loop point), and a repeat of both.
func redundantCCTrack() smf.Track {
	return smf.Track{
		{Delta: 0, Message: smf.MetaTempo(120)},
		{Delta: 480, Message: midi.ControlChange(0, 3, 55)}, // start (1)
		{Delta: 480, Message: midi.ControlChange(0, 4, 66)}, // (2), redundant
		{Delta: 480, Message: midi.NoteOn(0, 60, 100)},      // (3)
		{Delta: 480, Message: midi.NoteOff(0, 60)},          // (4)
		{Delta: 480, Message: midi.ControlChange(0, 3, 55)}, // cursor (5)
		{Delta: 480, Message: midi.ControlChange(0, 4, 66)}, // (6)
		{Delta: 480, Message: midi.NoteOn(0, 60, 100)},      // (7)
		{Delta: 480, Message: midi.NoteOff(0, 60)},          // (8)
		{Delta: 0, Message: smf.MetaEndOfTrack()},
	}
}

func TestRecordingSpaceAcceptsRedundantControllerChange(t *testing.T) {
	track := redundantCCTrack()

	got, ok := findLoopEndingAt(track, 5, 1, 0, true)
	if !ok {
		t.Fatalf("recording-space search rejected a loop with only inaudible controller changes")
	}
	if want := (Loop{Start: 1, Len: 4}); got != want {
		t.Fatalf("findLoopEndingAt = %+v, want %+v", got, want)
	}
}

func TestFindRecordingSpaceScansFromNoteLoopEnd(t *testing.T) {
	track := redundantCCTrack()
	noteLoop := Loop{Start: 1, Len: 4}

	got := FindRecordingSpace(track, noteLoop.Start, noteLoop.Start+noteLoop.Len)
	if !got.Found() {
		t.Fatalf("FindRecordingSpace found nothing")
	}
}
