package loopfind

import (
	"runtime"
	"sync"

	"gitlab.com/gomidi/midi/v2/smf"
)

// Find runs the data-parallel note-space search over the whole track: the
// cursor range is split into contiguous chunks, one per worker, each
// folding findLoopEndingAt into a thread-local best Loop; the per-worker
// results are then combined with Loop.BetterThan. Workers is the number of
// chunks to use; callers pass runtime.NumCPU() in production and a fixed
// value in tests to exercise the determinism property across worker counts.
func Find(track smf.Track, workers int) Loop {
	n := len(track)
	if n == 0 {
		return Loop{}
	}
	if workers < 1 {
		workers = 1
	}
	if workers > n {
		workers = n
	}

	chunk := (n + workers - 1) / workers
	results := make([]Loop, workers)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		if lo >= hi {
			continue
		}

		wg.Add(1)
		go func(w, lo, hi int) {
			defer wg.Done()
			best := Loop{}
			for cursor := lo; cursor < hi; cursor++ {
				if l, ok := findLoopEndingAt(track, cursor, 0, best.Len, false); ok && l.BetterThan(best) {
					best = l
				}
			}
			results[w] = best
		}(w, lo, hi)
	}
	wg.Wait()

	best := Loop{}
	for _, r := range results {
		if r.BetterThan(best) {
			best = r
		}
	}
	return best
}

// FindDefault runs Find with runtime.NumCPU() workers.
func FindDefault(track smf.Track) Loop {
	return Find(track, runtime.NumCPU())
}

// FindRecordingSpace scans sequentially for the recording-space loop:
// cursor ranges over [cursorStart, N), with earliestStart bounding how far
// back a candidate start may reach. Called with a note-space loop's
// Start+Len and Start respectively, this finds the shortest recording-space
// loop that still contains the note-space loop; called with the same value
// for both (e.g. from a user-supplied override start), it searches from
// that point with no note-space loop required at all. It is not
// parallelized: only the first hit matters, and later cursors can never
// produce a better (shorter) result.
func FindRecordingSpace(track smf.Track, earliestStart, cursorStart int) Loop {
	for cursor := cursorStart; cursor < len(track); cursor++ {
		if l, ok := findLoopEndingAt(track, cursor, earliestStart, 0, true); ok {
			return l
		}
	}
	return Loop{}
}
