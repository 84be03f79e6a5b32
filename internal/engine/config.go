package engine

import "fmt"

// Unbounded disables the solution cap.
const Unbounded uint64 = 0

// Defaults applied by Config.withDefaults for zero-valued fields.
const (
	DefaultMaxWorkers    = 4
	DefaultPrintInterval = 1_000_000
)

// Config holds the solver knobs.
type Config struct {
	// MaxWorkers caps the number of concurrently live search workers.
	// The cap is a live count: a retired worker frees a slot.
	MaxWorkers int

	// PrintInterval reports every Nth solution to the sink. Solution 1
	// is always reported regardless of the interval.
	PrintInterval uint64

	// MaxSolutions stops the search after this many solutions.
	// Unbounded (0) enumerates the whole search space.
	MaxSolutions uint64

	// Verify checks every found solution against the Sudoku rules and
	// treats a failure as a bug in the engine (panic). Off by default;
	// it roughly doubles the cost of a solved leaf.
	Verify bool
}

func (c Config) withDefaults() Config {
	if c.MaxWorkers == 0 {
		c.MaxWorkers = DefaultMaxWorkers
	}
	if c.PrintInterval == 0 {
		c.PrintInterval = DefaultPrintInterval
	}
	return c
}

func (c Config) validate() error {
	if c.MaxWorkers < 1 {
		return fmt.Errorf("max workers must be >= 1, got %d", c.MaxWorkers)
	}
	return nil
}
