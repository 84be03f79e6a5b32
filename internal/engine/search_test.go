package engine

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pgrid/sudoku/internal/grid"
)

// wikipediaPuzzle has exactly one solution.
const wikipediaPuzzle = "" +
	"53..7...." +
	"6..195..." +
	".98....6." +
	"8...6...3" +
	"4..8.3..1" +
	"7...2...6" +
	".6....28." +
	"...419..5" +
	"....8..79"

const wikipediaSolution = "" +
	"534678912" +
	"672195348" +
	"198342567" +
	"859761423" +
	"426853791" +
	"713924856" +
	"961537284" +
	"287419635" +
	"345286179"

// unsolvablePuzzle is duplicate-free but has no solution: the last cell
// of row 1 needs a 9, and its column already holds one.
const unsolvablePuzzle = "" +
	"12345678." +
	"........." +
	"........." +
	"........." +
	"........." +
	"........." +
	"........9" +
	"........." +
	"........."

func mustParse(t *testing.T, cells string) grid.Puzzle {
	t.Helper()
	p, err := grid.Parse(strings.NewReader(cells))
	require.NoError(t, err)
	require.NoError(t, p.Validate())
	return p
}

// captureSink records every report, serialized like a real sink.
type captureSink struct {
	mu      sync.Mutex
	reports []capturedReport
}

type capturedReport struct {
	puzzle grid.Puzzle
	total  uint64
}

func (c *captureSink) Report(p grid.Puzzle, total uint64, withStats bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reports = append(c.reports, capturedReport{puzzle: p, total: total})
}

func (c *captureSink) all() []capturedReport {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]capturedReport(nil), c.reports...)
}

// runSolver builds a solver, runs the puzzle to completion, and returns
// the solver and sink for inspection.
func runSolver(t *testing.T, cfg Config, p grid.Puzzle) (*Solver, *captureSink) {
	t.Helper()
	sink := &captureSink{}
	s, err := New(cfg, NewPeerTable(), sink)
	require.NoError(t, err)
	require.NoError(t, s.Solve(context.Background(), p))

	waitCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	require.NoError(t, s.Wait(waitCtx), "search did not complete")
	return s, sink
}

// TestSolve_UniquePuzzle verifies the unique-solution law: exactly one
// solution regardless of the worker cap, and it is the known grid.
func TestSolve_UniquePuzzle(t *testing.T) {
	for _, workers := range []int{1, 2, 8} {
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			p := mustParse(t, wikipediaPuzzle)
			s, sink := runSolver(t, Config{MaxWorkers: workers, Verify: true}, p)

			assert.Equal(t, uint64(1), s.Solutions())
			reports := sink.all()
			require.Len(t, reports, 1)
			assert.Equal(t, uint64(1), reports[0].total)
			assert.Equal(t, wikipediaSolution, reports[0].puzzle.Compact())
			assert.NoError(t, reports[0].puzzle.CheckSolved())
		})
	}
}

// TestSolve_PropagationOnly verifies a puzzle solvable by singles alone:
// a solved grid with every 9 blanked back out. Each blank cell sees the
// other eight digits among its peers, so propagation fills the grid with
// no branching and the single initial worker does all the work.
func TestSolve_PropagationOnly(t *testing.T) {
	cells := strings.ReplaceAll(wikipediaSolution, "9", ".")
	p := mustParse(t, cells)
	require.Equal(t, 9, p.EmptyCells)

	s, sink := runSolver(t, Config{MaxWorkers: 1, Verify: true}, p)

	assert.Equal(t, uint64(1), s.Solutions())
	assert.Equal(t, uint64(1), s.Stats().WorkerSpawns, "propagation alone should not branch or spawn")
	reports := sink.all()
	require.Len(t, reports, 1)
	assert.Equal(t, wikipediaSolution, reports[0].puzzle.Compact())
}

// TestSolve_EmptyGridFirstSolution verifies the scenario: all cells
// empty, one worker, cap one. The engine must produce a single fully
// valid grid.
func TestSolve_EmptyGridFirstSolution(t *testing.T) {
	s, sink := runSolver(t, Config{MaxWorkers: 1, MaxSolutions: 1, Verify: true}, grid.Blank())

	assert.Equal(t, uint64(1), s.Solutions())
	reports := sink.all()
	require.Len(t, reports, 1)
	assert.NoError(t, reports[0].puzzle.CheckSolved())
}

// TestSolve_SolutionCap verifies the cap law under concurrency: an empty
// grid has far more than five solutions, and with four workers racing the
// count must still land on exactly five.
func TestSolve_SolutionCap(t *testing.T) {
	const want = 5
	s, sink := runSolver(t, Config{
		MaxWorkers:    4,
		MaxSolutions:  want,
		PrintInterval: 1, // report every counted solution
		Verify:        true,
	}, grid.Blank())

	assert.Equal(t, uint64(want), s.Solutions(), "rollback must keep the count exact")
	reports := sink.all()
	assert.Len(t, reports, want)
	for _, r := range reports {
		assert.NoError(t, r.puzzle.CheckSolved())
		assert.LessOrEqual(t, r.total, uint64(want))
	}
}

// TestSolve_DeadEnd verifies a consistent but unsolvable puzzle finishes
// with zero solutions and no error surface.
func TestSolve_DeadEnd(t *testing.T) {
	p := mustParse(t, unsolvablePuzzle)
	s, sink := runSolver(t, Config{MaxWorkers: 2}, p)

	assert.Zero(t, s.Solutions())
	assert.Empty(t, sink.all())
}

// TestSolve_WorkerCountLaw verifies the active count returns to exactly
// zero once the done flag is observable, for several worker caps.
func TestSolve_WorkerCountLaw(t *testing.T) {
	for _, workers := range []int{1, 2, 8} {
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			p := mustParse(t, wikipediaPuzzle)
			s, _ := runSolver(t, Config{MaxWorkers: workers}, p)

			assert.True(t, s.Done())
			assert.Zero(t, s.ActiveWorkers())
			assert.GreaterOrEqual(t, s.Stats().WorkerSpawns, uint64(1))
		})
	}
}

// TestSolve_ActiveWorkersNeverExceedCap samples the live worker count
// while an empty-grid search with many first-level branches runs under a
// cap of four.
func TestSolve_ActiveWorkersNeverExceedCap(t *testing.T) {
	const workers = 4
	sink := &captureSink{}
	s, err := New(Config{MaxWorkers: workers, MaxSolutions: 2000}, NewPeerTable(), sink)
	require.NoError(t, err)

	require.NoError(t, s.Solve(context.Background(), grid.Blank()))

	maxSeen := 0
	for !s.Done() {
		if n := s.ActiveWorkers(); n > maxSeen {
			maxSeen = n
		}
		time.Sleep(10 * time.Microsecond)
	}

	assert.LessOrEqual(t, maxSeen, workers)
	assert.Zero(t, s.ActiveWorkers())
	assert.Equal(t, uint64(2000), s.Solutions())
}

// TestSolve_PrintInterval verifies the throttle: with an interval of two,
// solutions 1, 2, and 4 are reported out of five found.
func TestSolve_PrintInterval(t *testing.T) {
	s, sink := runSolver(t, Config{
		MaxWorkers:    1,
		MaxSolutions:  5,
		PrintInterval: 2,
	}, grid.Blank())

	require.Equal(t, uint64(5), s.Solutions())
	var totals []uint64
	for _, r := range sink.all() {
		totals = append(totals, r.total)
	}
	assert.ElementsMatch(t, []uint64{1, 2, 4}, totals)
}

// TestSolve_CancelledBeforeStart verifies the degenerate path: a context
// cancelled before the first admission still completes the run.
func TestSolve_CancelledBeforeStart(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sink := &captureSink{}
	s, err := New(Config{MaxWorkers: 4}, NewPeerTable(), sink)
	require.NoError(t, err)
	require.NoError(t, s.Solve(ctx, grid.Blank()))

	waitCtx, waitCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer waitCancel()
	require.NoError(t, s.Wait(waitCtx))
	assert.Zero(t, s.Solutions())
	assert.Zero(t, s.Stats().WorkerSpawns)
}

// TestSolve_CancelMidSearch verifies cooperative cancellation: an
// unbounded empty-grid enumeration stops shortly after cancel and the
// worker accounting still drains to zero.
func TestSolve_CancelMidSearch(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	sink := &captureSink{}
	s, err := New(Config{MaxWorkers: 4}, NewPeerTable(), sink)
	require.NoError(t, err)
	require.NoError(t, s.Solve(ctx, grid.Blank()))

	time.Sleep(10 * time.Millisecond)
	cancel()

	waitCtx, waitCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer waitCancel()
	require.NoError(t, s.Wait(waitCtx), "workers must drain after cancellation")
	assert.Zero(t, s.ActiveWorkers())
}

// TestSolver_SingleUse verifies a solver rejects a second Solve.
func TestSolver_SingleUse(t *testing.T) {
	s, err := New(Config{MaxWorkers: 1}, NewPeerTable(), DiscardSink{})
	require.NoError(t, err)

	p := mustParse(t, wikipediaPuzzle)
	require.NoError(t, s.Solve(context.Background(), p))
	assert.Error(t, s.Solve(context.Background(), p))

	waitCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	require.NoError(t, s.Wait(waitCtx))
}

// TestNew_Validation covers config and collaborator validation.
func TestNew_Validation(t *testing.T) {
	table := NewPeerTable()

	_, err := New(Config{MaxWorkers: -1}, table, DiscardSink{})
	assert.Error(t, err)

	_, err = New(Config{}, nil, DiscardSink{})
	assert.Error(t, err)

	_, err = New(Config{}, table, nil)
	assert.Error(t, err)

	s, err := New(Config{}, table, DiscardSink{})
	require.NoError(t, err)
	assert.Equal(t, DefaultMaxWorkers, s.cfg.MaxWorkers)
	assert.Equal(t, uint64(DefaultPrintInterval), s.cfg.PrintInterval)
}
