package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Run is one recorded invocation of the solver.
type Run struct {
	ID           string
	Puzzle       string // compact 81-character form
	MaxWorkers   int
	StartedAt    time.Time
	FinishedAt   *time.Time
	Elapsed      time.Duration
	Solutions    uint64
	WorkerSpawns uint64
	Interrupted  bool
}

// Solution is one reported solution within a run.
type Solution struct {
	RunID   string
	Ordinal uint64 // global solution count at report time
	Cells   string
	FoundAt time.Time
}

// CreateRun inserts a new run row and returns its id (UUIDv7, so listing
// by id is listing by start order).
func (s *Store) CreateRun(ctx context.Context, puzzle string, maxWorkers int) (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generate run id: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO runs (id, puzzle, max_workers, started_at) VALUES (?, ?, ?, ?)`,
		id.String(), puzzle, maxWorkers, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}
	return id.String(), nil
}

// FinishRun records the final statistics of a run.
func (s *Store) FinishRun(ctx context.Context, id string, solutions, spawns uint64, elapsed time.Duration, interrupted bool) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE runs SET finished_at = ?, elapsed_us = ?, solutions = ?, worker_spawns = ?, interrupted = ? WHERE id = ?`,
		time.Now().UTC().Format(time.RFC3339Nano), elapsed.Microseconds(), solutions, spawns, interrupted, id)
	if err != nil {
		return fmt.Errorf("finish run %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("finish run %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("finish run %s: no such run", id)
	}
	return nil
}

// RecordSolution inserts one reported solution.
func (s *Store) RecordSolution(ctx context.Context, runID string, ordinal uint64, cells string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO solutions (run_id, ordinal, cells, found_at) VALUES (?, ?, ?, ?)`,
		runID, ordinal, cells, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("record solution %d for run %s: %w", ordinal, runID, err)
	}
	return nil
}

// ListRuns returns all runs, most recent first.
func (s *Store) ListRuns(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, puzzle, max_workers, started_at, finished_at, elapsed_us,
		        solutions, worker_spawns, interrupted
		 FROM runs ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			r         Run
			started   string
			finished  sql.NullString
			elapsedUS int64
		)
		if err := rows.Scan(&r.ID, &r.Puzzle, &r.MaxWorkers, &started, &finished,
			&elapsedUS, &r.Solutions, &r.WorkerSpawns, &r.Interrupted); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if r.StartedAt, err = time.Parse(time.RFC3339Nano, started); err != nil {
			return nil, fmt.Errorf("run %s: bad started_at: %w", r.ID, err)
		}
		if finished.Valid {
			t, err := time.Parse(time.RFC3339Nano, finished.String)
			if err != nil {
				return nil, fmt.Errorf("run %s: bad finished_at: %w", r.ID, err)
			}
			r.FinishedAt = &t
		}
		r.Elapsed = time.Duration(elapsedUS) * time.Microsecond
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// RunSolutions returns the reported solutions of one run in count order.
func (s *Store) RunSolutions(ctx context.Context, runID string) ([]Solution, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, ordinal, cells, found_at FROM solutions
		 WHERE run_id = ? ORDER BY ordinal`, runID)
	if err != nil {
		return nil, fmt.Errorf("solutions for run %s: %w", runID, err)
	}
	defer rows.Close()

	var sols []Solution
	for rows.Next() {
		var (
			sol   Solution
			found string
		)
		if err := rows.Scan(&sol.RunID, &sol.Ordinal, &sol.Cells, &found); err != nil {
			return nil, fmt.Errorf("scan solution: %w", err)
		}
		if sol.FoundAt, err = time.Parse(time.RFC3339Nano, found); err != nil {
			return nil, fmt.Errorf("solution %d: bad found_at: %w", sol.Ordinal, err)
		}
		sols = append(sols, sol)
	}
	return sols, rows.Err()
}
