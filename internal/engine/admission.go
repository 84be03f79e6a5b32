package engine

import (
	"time"

	"github.com/pgrid/sudoku/internal/grid"
)

// tryGoAsync offers an invocation to a new worker. It double-checks the
// live worker count under the admission mutex; the unlocked fast-path
// read happens at the call site in search. On success the puzzle copy
// belongs to the new worker and the caller must return without touching
// it further. On failure the caller continues inline.
func (s *Solver) tryGoAsync(p grid.Puzzle) bool {
	s.admit.Lock()
	if int(s.active.Load()) >= s.cfg.MaxWorkers {
		s.admit.Unlock()
		return false
	}
	s.spawns.Add(1)
	if s.active.Add(1) == 1 {
		// First worker of the run: the search clock starts here.
		s.startNS.Store(time.Now().UnixNano())
	}
	go s.runWorker(p)
	s.admit.Unlock()
	return true
}

// runWorker is the body of every worker goroutine: run the search subtree
// to completion, then retire. Retirement must happen even when the
// subtree found nothing, or completion detection would hang.
func (s *Solver) runWorker(p grid.Puzzle) {
	s.search(p, true)
	if s.active.Add(-1) == 0 {
		s.endNS.Store(time.Now().UnixNano())
		// The atomic store orders the timestamp write before the flag
		// for any goroutine that observes done == true.
		s.done.Store(true)
	}
}
