package engine

import "github.com/pgrid/sudoku/internal/grid"

// Sink receives solved puzzles from the engine.
//
// Report is called concurrently from multiple workers; implementations
// must serialize their own output and must not block indefinitely. The
// puzzle is passed by value, so the sink may keep it without copying.
//
// total is the value of the global solution counter at the moment this
// solution was counted. withStats asks the sink to render its running
// statistics alongside the grid.
type Sink interface {
	Report(p grid.Puzzle, total uint64, withStats bool)
}

// DiscardSink counts on the engine side only; reports go nowhere.
// Useful for pure enumeration runs and tests.
type DiscardSink struct{}

func (DiscardSink) Report(grid.Puzzle, uint64, bool) {}
