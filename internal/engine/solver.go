package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pgrid/sudoku/internal/grid"
)

// Solver enumerates the solutions of one puzzle. A Solver is single-use:
// construct, Solve, Wait, read Stats.
type Solver struct {
	cfg   Config
	peers *PeerTable
	sink  Sink

	// ctx is stored by Solve before any worker exists and is read-only
	// afterwards.
	ctx context.Context

	admit   sync.Mutex // guards the admission double-check
	active  atomic.Int32
	spawns  atomic.Uint64
	found   atomic.Uint64
	startNS atomic.Int64
	endNS   atomic.Int64
	done    atomic.Bool
	started atomic.Bool
}

// Stats is the final accounting of a finished search.
type Stats struct {
	Solutions    uint64
	WorkerSpawns uint64
	Elapsed      time.Duration
}

// Rate returns solutions found per second, or 0 for an instant search.
func (st Stats) Rate() uint64 {
	if st.Elapsed <= 0 {
		return 0
	}
	return uint64(float64(st.Solutions) / st.Elapsed.Seconds())
}

// New builds a Solver. peers must come from NewPeerTable; sink receives
// the throttled solution reports (use DiscardSink to ignore them).
func New(cfg Config, peers *PeerTable, sink Sink) (*Solver, error) {
	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("engine config: %w", err)
	}
	if peers == nil {
		return nil, errors.New("engine: nil peer table")
	}
	if sink == nil {
		return nil, errors.New("engine: nil sink")
	}
	return &Solver{cfg: cfg, peers: peers, sink: sink}, nil
}

// Solve starts the search and returns as soon as the work has been handed
// to the first worker. The caller is expected to have validated the
// puzzle (grid.Puzzle.Validate); the engine does not re-check it.
//
// Cancelling ctx stops the search cooperatively: in-flight branches run
// to their next check. Use Wait to block until all workers have retired.
func (s *Solver) Solve(ctx context.Context, p grid.Puzzle) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if !s.started.CompareAndSwap(false, true) {
		return errors.New("engine: solver already started")
	}
	s.ctx = ctx

	s.search(p, false)

	// Degenerate path: the context was cancelled before the first worker
	// was admitted, so nobody is left to set the done flag.
	if s.spawns.Load() == 0 {
		now := time.Now().UnixNano()
		s.startNS.Store(now)
		s.endNS.Store(now)
		s.done.Store(true)
	}
	return nil
}

// Wait blocks until every worker has retired, polling the done flag.
// ctx bounds the wait only; it does not cancel the search.
func (s *Solver) Wait(ctx context.Context) error {
	ticker := time.NewTicker(time.Millisecond)
	defer ticker.Stop()
	for {
		if s.done.Load() {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// Done reports whether the search has fully completed.
func (s *Solver) Done() bool { return s.done.Load() }

// Solutions returns the live solution count.
func (s *Solver) Solutions() uint64 { return s.found.Load() }

// ActiveWorkers returns the live worker count.
func (s *Solver) ActiveWorkers() int { return int(s.active.Load()) }

// Stats returns the search accounting. Elapsed is only meaningful once
// Done reports true.
func (s *Solver) Stats() Stats {
	st := Stats{
		Solutions:    s.found.Load(),
		WorkerSpawns: s.spawns.Load(),
	}
	if start, end := s.startNS.Load(), s.endNS.Load(); end > start {
		st.Elapsed = time.Duration(end - start)
	}
	return st
}
