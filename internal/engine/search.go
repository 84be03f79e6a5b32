package engine

import (
	"fmt"

	"github.com/pgrid/sudoku/internal/grid"
)

// search runs one invocation of the propagate-then-branch algorithm on a
// private puzzle copy. worker marks an invocation that is already the
// dedicated body of a worker goroutine; only non-worker invocations may
// offer themselves for admission, otherwise a worker would strand its
// active-count slot while its subtree runs elsewhere.
func (s *Solver) search(p grid.Puzzle, worker bool) {
	// Cooperative early exits. Branches already past these checks run to
	// natural completion; the cap stays exact through the rollback in
	// countSolution, not through this check.
	if s.ctx.Err() != nil {
		return
	}
	if max := s.cfg.MaxSolutions; max != Unbounded && s.found.Load() >= max {
		return
	}

	// Unlocked fast-path read; tryGoAsync re-checks under the lock.
	if !worker && int(s.active.Load()) < s.cfg.MaxWorkers && s.tryGoAsync(p) {
		return
	}

	// Propagation: fill every single-candidate cell, repeating the full
	// pass until a fixed point. The pass that makes no assignment is the
	// one whose minimum-remaining-values pick is used for branching.
	bestIdx, bestN := -1, 10
	var bestMask uint16
	for {
		progress := false
		bestIdx, bestN = -1, 10
		for idx := 0; idx < grid.Cells; idx++ {
			if p.Cells[idx] != grid.Empty {
				continue
			}
			mask, n := s.peers.Candidates(&p, idx)
			switch {
			case n == 0:
				// Dead end, a normal outcome of backtracking.
				return
			case n == 1:
				p.Cells[idx] = soleDigit(mask)
				p.EmptyCells--
				progress = true
			case n < bestN:
				bestIdx, bestMask, bestN = idx, mask, n
			}
		}
		if !progress {
			break
		}
	}

	if p.EmptyCells == 0 {
		s.countSolution(&p)
		return
	}

	// Empty cells remain, so the last pass must have seen at least one
	// cell with 2-9 candidates. Anything else is an algorithm bug.
	if bestIdx < 0 || bestN < 2 || bestN > 9 {
		panic(fmt.Sprintf("search: no branch cell after propagation (best %d candidates)", bestN))
	}

	// Branch on the MRV cell, digits in increasing order. Each recursion
	// gets its own copy of p and independently re-evaluates admission,
	// so sibling branches may run on different workers and complete in
	// any order.
	p.EmptyCells--
	for d := uint8(1); d <= 9; d++ {
		if bestMask&(1<<d) == 0 {
			continue
		}
		p.Cells[bestIdx] = d
		s.search(p, false)
	}
}

// countSolution claims a slot in the global solution count and reports
// through the sink, subject to the print-interval throttle.
func (s *Solver) countSolution(p *grid.Puzzle) {
	if s.cfg.Verify {
		if err := p.CheckSolved(); err != nil {
			panic(fmt.Sprintf("search: invalid solution produced: %v", err))
		}
	}

	n := s.found.Add(1)
	if max := s.cfg.MaxSolutions; max != Unbounded && n > max {
		// Lost the race for the last slot under the cap; undo and
		// discard this solution.
		s.found.Add(^uint64(0))
		return
	}

	if n == 1 || n%s.cfg.PrintInterval == 0 {
		s.sink.Report(*p, n, true)
	}
}
