// Command smfloop inspects and rewrites Standard MIDI Files: dumping their
// contents, finding the loop a sequencer-driven soundtrack repeats after its
// intro, and a handful of manipulators (cut, loopunfold, smf0, filternote)
// that act on pulse ranges.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/nmlgc/smfloop/internal/dump"
	"github.com/nmlgc/smfloop/internal/loopfind"
	"github.com/nmlgc/smfloop/internal/manip"
	"github.com/nmlgc/smfloop/internal/miditime"
	"github.com/nmlgc/smfloop/internal/report"
	"github.com/nmlgc/smfloop/internal/smffile"
)

const (
	cmdDump       = "dump"
	cmdLoopfind   = "loopfind"
	cmdCut        = "cut"
	cmdLoopunfold = "loopunfold"
	cmdSMF0       = "smf0"
	cmdFilternote = "filternote"
)

var commands = []string{cmdDump, cmdLoopfind, cmdCut, cmdLoopunfold, cmdSMF0, cmdFilternote}

func main() {
	if err := run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "`%s`: error: %s\n", strings.Join(os.Args, " "), err)
		os.Exit(1)
	}
}

func run(argv []string) error {
	fs := flag.NewFlagSet(filepath.Base(argv[0]), flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	sampleRate := fs.Int("r", 0, "sample rate; enables recording-space search and sample-column display")
	jsonOut := fs.Bool("json", false, "emit JSON instead of text reports")
	recStart := fs.String("s", "", "override recording-space search start, as B/P (loopfind only)")
	invert := fs.Bool("invert", false, "keep only notes in range instead of removing them (filternote only)")
	filePath := fs.String("f", "", "input file path for manipulator commands (default: standard input)")

	if err := fs.Parse(argv[1:]); err != nil {
		return err
	}

	args := fs.Args()
	if len(args) == 0 {
		return errors.New("missing command; try " + strings.Join(commands, ", "))
	}
	cmd, err := matchCommand(args[0])
	if err != nil {
		return err
	}
	args = args[1:]

	switch cmd {
	case cmdDump, cmdLoopfind, cmdSMF0:
		return runReadOnly(cmd, args, *sampleRate, *jsonOut, *recStart)
	case cmdCut, cmdLoopunfold, cmdFilternote:
		return runManipulator(cmd, args, *filePath, *invert)
	}
	return fmt.Errorf("%q: not implemented", cmd)
}

func matchCommand(prefix string) (string, error) {
	var matches []string
	for _, c := range commands {
		if c == prefix {
			return c, nil
		}
		if strings.HasPrefix(c, prefix) {
			matches = append(matches, c)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%q: unknown command", prefix)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%q: ambiguous command, matches %s", prefix, strings.Join(matches, ", "))
	}
}

func openInput(path string) (io.Reader, func() error, error) {
	if path == "" {
		return bufio.NewReader(os.Stdin), func() error { return nil }, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return bufio.NewReader(f), f.Close, nil
}

func runReadOnly(cmd string, args []string, sampleRate int, jsonOut bool, recStartArg string) error {
	path := ""
	if len(args) > 0 {
		path = args[0]
		args = args[1:]
	}
	if len(args) > 0 {
		return fmt.Errorf("unexpected argument %q", args[0])
	}

	in, closeIn, err := openInput(path)
	if err != nil {
		return err
	}
	defer closeIn()

	f, err := smffile.Load(in)
	if err != nil {
		return err
	}

	switch cmd {
	case cmdDump:
		ppqn, err := smffile.RequireMetrical(f)
		if err != nil {
			return err
		}
		dump.Dump(os.Stdout, ppqn, f)
		return nil

	case cmdSMF0:
		return smffile.Save(os.Stdout, manip.SMF0(f))

	case cmdLoopfind:
		return runLoopfind(f, recStartArg, uint32(sampleRate), jsonOut)
	}
	return nil
}

func runLoopfind(f *smf.SMF, recStartArg string, sampleRate uint32, jsonOut bool) error {
	ppqn, err := smffile.RequireMetrical(f)
	if err != nil {
		return err
	}
	track, err := smffile.RequireSingleTrack(f)
	if err != nil {
		return err
	}

	noteLoop := loopfind.FindDefault(track)

	wantRecording := sampleRate != 0 || recStartArg != ""
	var recLoop loopfind.Loop
	if wantRecording {
		earliestStart, cursorStart, ok := recordingSpaceBounds(track, ppqn, noteLoop, recStartArg)
		if ok {
			recLoop = loopfind.FindRecordingSpace(track, earliestStart, cursorStart)
		} else if recStartArg != "" {
			if _, err := miditime.ParsePulseOrBeat(recStartArg); err != nil {
				return fmt.Errorf("-s: %w", err)
			}
			return fmt.Errorf("-s %s: past the end of the track", recStartArg)
		}
	}

	if jsonOut {
		if err := report.PrintJSON(os.Stdout, noteLoop, ppqn, track, sampleRate); err != nil {
			return err
		}
		if wantRecording {
			return report.PrintJSON(os.Stdout, recLoop, ppqn, track, sampleRate)
		}
		return nil
	}

	report.Print(os.Stdout, "Note-space loop:", noteLoop, ppqn, track, sampleRate)
	if wantRecording {
		report.Print(os.Stdout, "Recording-space loop:", recLoop, ppqn, track, sampleRate)
	}
	return nil
}

// recordingSpaceBounds resolves the (earliestStart, cursorStart) pair for
// FindRecordingSpace. With no -s override, it searches from the end of the
// note-space loop body while still allowing starts as early as the
// note-space loop's own start. With an override, both bounds collapse to
// the event at or after the given pulse, and no note-space loop is needed.
func recordingSpaceBounds(track smf.Track, ppqn smf.MetricTicks, noteLoop loopfind.Loop, recStartArg string) (earliestStart, cursorStart int, ok bool) {
	if recStartArg != "" {
		pb, err := miditime.ParsePulseOrBeat(recStartArg)
		if err != nil {
			return 0, 0, false
		}
		idx, found := eventIndexAtOrAfter(track, pb.TotalPulse(uint16(ppqn)))
		if !found {
			return 0, 0, false
		}
		return idx, idx, true
	}
	if !noteLoop.Found() {
		return 0, 0, false
	}
	return noteLoop.Start, noteLoop.Start + noteLoop.Len, true
}

func eventIndexAtOrAfter(track smf.Track, pulse uint64) (int, bool) {
	var cur uint64
	for i, ev := range track {
		cur += uint64(ev.Delta)
		if cur >= pulse {
			return i, true
		}
	}
	return 0, false
}

func runManipulator(cmd string, args []string, filePath string, invert bool) error {
	in, closeIn, err := openInput(filePath)
	if err != nil {
		return err
	}
	defer closeIn()

	f, err := smffile.Load(in)
	if err != nil {
		return err
	}
	ppqn, err := smffile.RequireMetrical(f)
	if err != nil {
		return err
	}

	switch cmd {
	case cmdCut:
		start, end, err := parseStartEnd(args, ppqn)
		if err != nil {
			return err
		}
		if err := manip.Cut(os.Stderr, f, ppqn, start, end); err != nil {
			return err
		}

	case cmdLoopunfold:
		if len(args) != 1 {
			return errors.New("loopunfold takes exactly one START argument")
		}
		pb, err := miditime.ParsePulseOrBeat(args[0])
		if err != nil {
			return err
		}
		track, err := smffile.RequireSingleTrack(f)
		if err != nil {
			return err
		}
		newTrack, err := manip.LoopUnfold(os.Stderr, track, ppqn, pb.TotalPulse(uint16(ppqn)))
		if err != nil {
			return err
		}
		f.Tracks[0] = newTrack

	case cmdFilternote:
		start, end, err := parseStartEnd(args, ppqn)
		if err != nil {
			return err
		}
		if err := manip.FilterNote(f, ppqn, start, end, invert); err != nil {
			return err
		}
	}

	return smffile.Save(os.Stdout, f)
}

func parseStartEnd(args []string, ppqn smf.MetricTicks) (uint64, *uint64, error) {
	if len(args) < 1 || len(args) > 2 {
		return 0, nil, errors.New("expected START [END]")
	}

	startPB, err := miditime.ParsePulseOrBeat(args[0])
	if err != nil {
		return 0, nil, err
	}
	start := startPB.TotalPulse(uint16(ppqn))

	if len(args) == 1 {
		return start, nil, nil
	}

	endPB, err := miditime.ParsePulseOrBeat(args[1])
	if err != nil {
		return 0, nil, err
	}
	end := endPB.TotalPulse(uint16(ppqn))
	return start, &end, nil
}
