// Package report formats a found Loop against a track for the loopfind CLI
// command.
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/nmlgc/smfloop/internal/events"
	"github.com/nmlgc/smfloop/internal/loopfind"
	"github.com/nmlgc/smfloop/internal/miditime"
)

// Print writes a human-readable report of l to w: a header line, the first
// sounding NoteOn, the loop start, and the loop end, each with its event
// index right-aligned to the track's index width.
func Print(w io.Writer, prefix string, l loopfind.Loop, timing smf.MetricTicks, track smf.Track, sampleRate uint32) {
	if !l.Found() {
		fmt.Fprintln(w, "No loop found.")
		return
	}

	end1 := l.Start + l.Len
	end2 := end1 + l.Len
	fmt.Fprintf(w, "%s %d events (between event #[%d, %d[ and [%d, %d[)\n",
		prefix, l.Len, l.Start, end1, end1, end2)

	eventWidth := digits10(len(track))

	disp := miditime.NewDisplay(timing, track, sampleRate)
	firstNoteSeen := false
	for i, ev := range track {
		disp.Time = disp.Time.Advance(ev)

		if !firstNoteSeen {
			if n, ok := events.NoteOf(ev); ok && n.IsOn() {
				fmt.Fprintf(w, "First note: event %*d / %s\n", eventWidth, i, disp)
				firstNoteSeen = true
			}
		}

		if i == l.Start {
			fmt.Fprintf(w, "Loop start: event %*d / %s\n", eventWidth, i, disp)
		} else if i == end1 {
			fmt.Fprintf(w, "  Loop end: event %*d / %s\n", eventWidth, i, disp)
			return
		}
	}
}

// jsonPosition is the shape used by PrintJSON for an event-index-plus-time
// marker.
type jsonPosition struct {
	Event int    `json:"event"`
	Time  string `json:"time"`
}

type jsonLoop struct {
	Found     bool          `json:"found"`
	Start     int           `json:"start,omitempty"`
	Len       int           `json:"len,omitempty"`
	FirstNote *jsonPosition `json:"firstNote,omitempty"`
	LoopStart *jsonPosition `json:"loopStart,omitempty"`
	LoopEnd   *jsonPosition `json:"loopEnd,omitempty"`
}

// PrintJSON writes the same data as Print, in JSON form.
func PrintJSON(w io.Writer, l loopfind.Loop, timing smf.MetricTicks, track smf.Track, sampleRate uint32) error {
	out := jsonLoop{Found: l.Found()}
	if !l.Found() {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	out.Start = l.Start
	out.Len = l.Len
	end1 := l.Start + l.Len

	disp := miditime.NewDisplay(timing, track, sampleRate)
	for i, ev := range track {
		disp.Time = disp.Time.Advance(ev)

		if out.FirstNote == nil {
			if n, ok := events.NoteOf(ev); ok && n.IsOn() {
				out.FirstNote = &jsonPosition{Event: i, Time: disp.String()}
			}
		}
		if i == l.Start {
			out.LoopStart = &jsonPosition{Event: i, Time: disp.String()}
		} else if i == end1 {
			out.LoopEnd = &jsonPosition{Event: i, Time: disp.String()}
			break
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func digits10(n int) int {
	if n < 1 {
		n = 1
	}
	d := 0
	for n > 0 {
		n /= 10
		d++
	}
	return d
}
