// Package smffile is the thin facade over gitlab.com/gomidi/midi/v2/smf
// that the rest of the core depends on: load bytes, validate header timing
// and track count, write bytes back out. Bit-exact SMF conformance is the
// smf package's responsibility, not this module's.
package smffile

import (
	"fmt"
	"io"

	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/nmlgc/smfloop/internal/smferr"
)

// Load parses SMF bytes from r.
func Load(r io.Reader) (*smf.SMF, error) {
	f, err := smf.ReadFrom(r)
	if err != nil {
		return nil, fmt.Errorf("reading SMF: %w: %v", smferr.ErrParse, err)
	}
	return f, nil
}

// Save writes f back out to w.
func Save(w io.Writer, f *smf.SMF) error {
	_, err := f.WriteTo(w)
	return err
}

// RequireSingleTrack returns f's only track, or ErrTrackCount if f does not
// have exactly one.
func RequireSingleTrack(f *smf.SMF) (smf.Track, error) {
	if len(f.Tracks) != 1 {
		return nil, fmt.Errorf(
			"sequence has %d tracks; try flattening with the smf0 command: %w",
			len(f.Tracks), smferr.ErrTrackCount)
	}
	return f.Tracks[0], nil
}

// RequireMetrical returns f's timing as MetricTicks, or
// ErrUnsupportedTiming if f uses timecode-based timing.
func RequireMetrical(f *smf.SMF) (smf.MetricTicks, error) {
	tf, ok := f.TimeFormat.(smf.MetricTicks)
	if !ok {
		return 0, smferr.ErrUnsupportedTiming
	}
	return tf, nil
}
