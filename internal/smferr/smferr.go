// Package smferr defines the sentinel error values used across the smfloop
// core so callers can distinguish failure kinds with errors.Is/errors.As.
package smferr

import "errors"

var (
	// ErrParse indicates the input bytes could not be parsed as a Standard
	// MIDI File.
	ErrParse = errors.New("malformed SMF")

	// ErrUnsupportedTiming indicates the file uses SMPTE/timecode timing,
	// which the loop engine cannot reason about.
	ErrUnsupportedTiming = errors.New("timing not supported")

	// ErrTrackCount indicates an operation that requires a single track was
	// given a multi-track sequence.
	ErrTrackCount = errors.New("only implemented for single-track sequences")

	// ErrPulseOutOfRange indicates a requested pulse position falls beyond
	// the end of the sequence.
	ErrPulseOutOfRange = errors.New("pulse out of range")

	// ErrRangeOrder indicates a B/P range's start pulse exceeds its end
	// pulse.
	ErrRangeOrder = errors.New("range start after range end")

	// ErrMissingEndOfTrack indicates an operation requiring a trailing
	// EndOfTrack meta event was given a track without one.
	ErrMissingEndOfTrack = errors.New("track does not end with an end-of-track event")

	// ErrBadPulseOrBeat indicates a qn:pulse or bare-pulse argument could
	// not be parsed.
	ErrBadPulseOrBeat = errors.New("invalid pulse or beat value")
)
