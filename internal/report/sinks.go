package report

import (
	"context"
	"log/slog"

	"github.com/pgrid/sudoku/internal/engine"
	"github.com/pgrid/sudoku/internal/grid"
	"github.com/pgrid/sudoku/internal/store"
)

// StoreSink records reported solutions in the history database. Insert
// failures are logged and swallowed: the sink sits on the search's report
// path and must not take the search down with a storage problem.
type StoreSink struct {
	st    *store.Store
	runID string
}

// NewStoreSink records against an existing run row.
func NewStoreSink(st *store.Store, runID string) *StoreSink {
	return &StoreSink{st: st, runID: runID}
}

func (s *StoreSink) Report(p grid.Puzzle, total uint64, withStats bool) {
	if err := s.st.RecordSolution(context.Background(), s.runID, total, p.Compact()); err != nil {
		slog.Error("recording solution failed", "run", s.runID, "ordinal", total, "error", err)
	}
}

// MultiSink fans one report out to each sink in order.
type MultiSink []engine.Sink

func (m MultiSink) Report(p grid.Puzzle, total uint64, withStats bool) {
	for _, s := range m {
		s.Report(p, total, withStats)
	}
}
