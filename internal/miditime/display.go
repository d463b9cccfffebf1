package miditime

import (
	"fmt"
	"strings"

	"gitlab.com/gomidi/midi/v2/smf"
)

// widths holds the precomputed column widths needed to format every
// position in a track without re-scanning it per event.
type widths struct {
	pulse      int
	beatQN     int
	beatPulse  int
	minutes    int
	sample     int
}

// Display formats a moving Time value against the column widths derived
// from a whole track, so that every printed position lines up.
type Display struct {
	Time Time
	w    widths
}

// digits10 returns the number of base-10 digits needed to print n, treating
// 0 like 1 (matches the Rust original's max(n,1).ilog10()+1).
func digits10(n uint64) int {
	if n < 1 {
		n = 1
	}
	d := 1
	for n >= 10 {
		n /= 10
		d++
	}
	return d
}

// NewDisplay folds once over track to find the final pulse and realtime/
// sample extents, then derives column widths from them.
func NewDisplay(timing smf.MetricTicks, track smf.Track, sampleRate uint32) *Display {
	start := New(timing, sampleRate)
	end := start
	for _, ev := range track {
		end = end.Advance(ev)
	}

	beatQNWidth := digits10(end.Pulse / uint64(maxU16(timing, 1)))
	beatPulseWidth := digits10(uint64(maxU16(timing, 1)))

	minutesMax := uint64(1)
	if end.HasRT {
		minutesMax = uint64(end.Realtime.Seconds()) / 60
	}
	minutesWidth := digits10(minutesMax)

	sampleMax := uint64(1)
	if sample, ok := end.Sample(); ok && sample > 1 {
		sampleMax = uint64(sample)
	}
	sampleWidth := digits10(sampleMax) + 3

	return &Display{
		Time: start,
		w: widths{
			pulse:     digits10(end.Pulse),
			beatQN:    beatQNWidth,
			beatPulse: beatPulseWidth,
			minutes:   minutesWidth,
			sample:    sampleWidth,
		},
	}
}

func maxU16(v smf.MetricTicks, floor uint16) uint16 {
	if uint16(v) < floor {
		return floor
	}
	return uint16(v)
}

// Pulse formats the current pulse, right-aligned to the track's pulse
// width.
func (d *Display) Pulse() string {
	return fmt.Sprintf("%*d", d.w.pulse, d.Time.Pulse)
}

// Beat formats the current position as qn:pulse, with the pulse part
// zero-padded to the track's PPQN digit width.
func (d *Display) Beat() string {
	qn := d.Time.Pulse / uint64(d.Time.PPQN)
	pulse := d.Time.Pulse % uint64(d.Time.PPQN)
	return fmt.Sprintf("%*d:%0*d", d.w.beatQN, qn, d.w.beatPulse, pulse)
}

// String renders the full display line: pulse, beat, and optionally
// realtime and sample position.
func (d *Display) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "pulse %s / beat %s", d.Pulse(), d.Beat())

	if d.Time.HasRT {
		// Round to milliseconds first, then derive minutes/seconds/millis
		// from the rounded total so a carry (999.6ms) becomes 1.000s
		// instead of 1.999s.
		totalMillis := int64((d.Time.Realtime.Seconds()*1000.0)+0.5)
		millis := totalMillis % 1000
		seconds := (totalMillis / 1000) % 60
		minutes := (totalMillis / 1000) / 60 % 60
		fmt.Fprintf(&sb, " / %*d:%02d:%03dm", d.w.minutes, minutes, seconds, millis)
	}

	if sample, ok := d.Time.Sample(); ok {
		fmt.Fprintf(&sb, " / sample %*.2f", d.w.sample, sample)
	}

	return sb.String()
}
