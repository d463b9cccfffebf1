// Package dump pretty-prints every event of every track in an SMF file.
package dump

import (
	"fmt"
	"io"

	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/nmlgc/smfloop/internal/events"
	"github.com/nmlgc/smfloop/internal/miditime"
)

// Dump writes a delta/pulse/beat/event table for every track in f to w. It
// skips tracks with non-metrical timing only in the sense that the whole
// file is assumed metrical (callers validate with smffile.RequireMetrical
// first); Dump itself does not search for loops and has no reason to
// reject timecode timing beyond what Display construction requires.
func Dump(w io.Writer, timing smf.MetricTicks, f *smf.SMF) {
	for trackIndex, track := range f.Tracks {
		if trackIndex != 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "## Track %d\n\n", trackIndex)
		fmt.Fprintf(w, "%6s\t%10s\t%10s\tEvent\n", "Delta", "Pulse", "Beat")

		disp := miditime.NewDisplay(timing, track, 0)
		for _, ev := range track {
			disp.Time = disp.Time.Advance(ev)
			fmt.Fprintf(w, "%+6d\t%10s\t%10s\t%s\n",
				ev.Delta, disp.Pulse(), disp.Beat(), events.Describe(ev))
		}
	}
}
