package miditime

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nmlgc/smfloop/internal/smferr"
)

// PulseOrBeat is a parsed B/P argument: either a bare pulse count, or a
// qn:pulse pair where either side may be omitted (defaulting to 0).
type PulseOrBeat struct {
	hasBeat bool
	qn      uint64
	pulse   uint64 // meaning depends on hasBeat: bare pulse count, or the pulse part of qn:pulse
}

// ParsePulseOrBeat parses "qn:pulse" (either side omissible) or a bare
// integer total pulse count.
func ParsePulseOrBeat(s string) (PulseOrBeat, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return PulseOrBeat{}, fmt.Errorf("%q: empty: %w", s, smferr.ErrBadPulseOrBeat)
	}

	if !strings.Contains(s, ":") {
		pulse, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return PulseOrBeat{}, fmt.Errorf("%q: %w", s, smferr.ErrBadPulseOrBeat)
		}
		return PulseOrBeat{pulse: pulse}, nil
	}

	parts := strings.SplitN(s, ":", 2)
	qnPart, pulsePart := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])

	var qn uint64
	if qnPart != "" {
		v, err := strconv.ParseUint(qnPart, 10, 64)
		if err != nil {
			return PulseOrBeat{}, fmt.Errorf("%q: %w", s, smferr.ErrBadPulseOrBeat)
		}
		qn = v
	}

	var pulse uint64
	if pulsePart != "" {
		// The pulse part of a beat is a PPQN offset, which is 15-bit
		// (0..32767): a PPQN can never exceed that, so a larger value here
		// can never be valid.
		v, err := strconv.ParseUint(pulsePart, 10, 15)
		if err != nil {
			return PulseOrBeat{}, fmt.Errorf("%q: %w", s, smferr.ErrBadPulseOrBeat)
		}
		pulse = v
	}

	return PulseOrBeat{hasBeat: true, qn: qn, pulse: pulse}, nil
}

// TotalPulse resolves the parsed value against a PPQN.
func (p PulseOrBeat) TotalPulse(ppqn uint16) uint64 {
	if !p.hasBeat {
		return p.pulse
	}
	return p.qn*uint64(ppqn) + p.pulse
}
