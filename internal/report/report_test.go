package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/nmlgc/smfloop/internal/loopfind"
)

func testTrack() smf.Track {
	return smf.Track{
		{Delta: 0, Message: smf.MetaTempo(120)},
		{Delta: 480, Message: midi.NoteOn(0, 60, 100)}, // index 1, first note
		{Delta: 10, Message: midi.NoteOff(0, 60)},
		{Delta: 480, Message: midi.NoteOn(0, 62, 100)}, // loop start, index 3
		{Delta: 10, Message: midi.NoteOff(0, 62)},
		{Delta: 480, Message: midi.NoteOn(0, 62, 100)}, // loop end, index 5
		{Delta: 10, Message: midi.NoteOff(0, 62)},
		{Delta: 0, Message: smf.MetaEndOfTrack()},
	}
}

func TestPrintNoLoop(t *testing.T) {
	var buf bytes.Buffer
	Print(&buf, "loop:", loopfind.Loop{}, smf.MetricTicks(480), testTrack(), 0)
	if got, want := buf.String(), "No loop found.\n"; got != want {
		t.Fatalf("Print = %q, want %q", got, want)
	}
}

func TestPrintReportsFirstNoteStartAndEnd(t *testing.T) {
	var buf bytes.Buffer
	l := loopfind.Loop{Start: 3, Len: 2}
	Print(&buf, "loop:", l, smf.MetricTicks(480), testTrack(), 0)

	out := buf.String()
	if !strings.Contains(out, "loop: 2 events (between event #[3, 5[ and [5, 7[)") {
		t.Fatalf("missing header line:\n%s", out)
	}
	if !strings.Contains(out, "First note: event 1") {
		t.Fatalf("missing first-note line:\n%s", out)
	}
	if !strings.Contains(out, "Loop start: event 3") {
		t.Fatalf("missing loop-start line:\n%s", out)
	}
	if !strings.Contains(out, "  Loop end: event 5") {
		t.Fatalf("missing loop-end line:\n%s", out)
	}
}

func TestPrintJSONNoLoop(t *testing.T) {
	var buf bytes.Buffer
	if err := PrintJSON(&buf, loopfind.Loop{}, smf.MetricTicks(480), testTrack(), 0); err != nil {
		t.Fatalf("PrintJSON: %v", err)
	}

	var out jsonLoop
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if out.Found {
		t.Fatalf("Found = true, want false")
	}
}

func TestPrintJSONReportsPositions(t *testing.T) {
	var buf bytes.Buffer
	l := loopfind.Loop{Start: 3, Len: 2}
	if err := PrintJSON(&buf, l, smf.MetricTicks(480), testTrack(), 0); err != nil {
		t.Fatalf("PrintJSON: %v", err)
	}

	var out jsonLoop
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !out.Found || out.Start != 3 || out.Len != 2 {
		t.Fatalf("out = %+v, want Found=true Start=3 Len=2", out)
	}
	if out.FirstNote == nil || out.FirstNote.Event != 1 {
		t.Fatalf("FirstNote = %+v, want event 1", out.FirstNote)
	}
	if out.LoopStart == nil || out.LoopStart.Event != 3 {
		t.Fatalf("LoopStart = %+v, want event 3", out.LoopStart)
	}
	if out.LoopEnd == nil || out.LoopEnd.Event != 5 {
		t.Fatalf("LoopEnd = %+v, want event 5", out.LoopEnd)
	}
}

func TestDigits10(t *testing.T) {
	cases := []struct {
		n    int
		want int
	}{
		{0, 1},
		{1, 1},
		{9, 1},
		{10, 2},
		{999, 3},
		{1000, 4},
	}
	for _, c := range cases {
		if got := digits10(c.n); got != c.want {
			t.Errorf("digits10(%d) = %d, want %d", c.n, got, c.want)
		}
	}
}
