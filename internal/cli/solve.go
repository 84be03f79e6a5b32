package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/pgrid/sudoku/internal/engine"
	"github.com/pgrid/sudoku/internal/grid"
	"github.com/pgrid/sudoku/internal/report"
	"github.com/pgrid/sudoku/internal/store"
)

// SolveOptions holds flags for the solve command.
type SolveOptions struct {
	*RootOptions
	ConfigPath    string
	Workers       int
	PrintInterval uint64
	MaxSolutions  uint64
	Database      string
	Verify        bool
}

// NewSolveCommand creates the solve command.
func NewSolveCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SolveOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "solve <puzzle-file>",
		Short: "Enumerate all solutions of a puzzle",
		Long: `Enumerate all solutions of a 9x9 Sudoku puzzle.

The puzzle file uses either the bordered box layout or nine rows of nine
characters ('.' or '0' for empty cells). Solutions are reported subject
to the print interval: the first solution always, then every Nth.

Interrupt with Ctrl-C to stop the search cooperatively; statistics
gathered so far are still reported.

Example:
  sudoku solve puzzle.txt
  sudoku solve --workers 8 --max-solutions 100 puzzle.txt
  sudoku solve --db ./history.db puzzle.txt`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSolve(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.ConfigPath, "config", "", "YAML config file with solver defaults")
	cmd.Flags().IntVarP(&opts.Workers, "workers", "w", engine.DefaultMaxWorkers, "maximum concurrently active search workers")
	cmd.Flags().Uint64Var(&opts.PrintInterval, "print-interval", engine.DefaultPrintInterval, "report every Nth solution")
	cmd.Flags().Uint64Var(&opts.MaxSolutions, "max-solutions", 0, "stop after this many solutions (0 = unbounded)")
	cmd.Flags().StringVar(&opts.Database, "db", "", "record the run in this SQLite history database")
	cmd.Flags().BoolVar(&opts.Verify, "verify", false, "check every found solution against the Sudoku rules")

	return cmd
}

// solveSummary is the machine-readable result of a solve run.
type solveSummary struct {
	Puzzle       string `json:"puzzle"`
	Workers      int    `json:"workers"`
	Solutions    uint64 `json:"solutions"`
	WorkerSpawns uint64 `json:"worker_spawns"`
	ElapsedUS    int64  `json:"elapsed_us"`
	RatePerSec   uint64 `json:"rate_per_sec"`
	Interrupted  bool   `json:"interrupted"`
	RunID        string `json:"run_id,omitempty"`
}

func runSolve(opts *SolveOptions, path string, cmd *cobra.Command) error {
	cfg, err := mergeConfig(opts, cmd)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load config", err)
	}

	puzzle, err := grid.ParseFile(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read puzzle", err)
	}
	if err := puzzle.Validate(); err != nil {
		return WrapExitError(ExitFailure, "invalid puzzle", err)
	}

	out := cmd.OutOrStdout()
	if opts.Format != "json" {
		fmt.Fprintf(out, "puzzle         = %s\n", path)
		fmt.Fprintf(out, "max workers    = %d\n", cfg.Workers)
		fmt.Fprintf(out, "print interval = %d\n", cfg.PrintInterval)
		if cfg.MaxSolutions == engine.Unbounded {
			fmt.Fprintf(out, "max solutions  = unbounded\n")
		} else {
			fmt.Fprintf(out, "max solutions  = %d\n", cfg.MaxSolutions)
		}
		fmt.Fprintln(out)
		fmt.Fprint(out, puzzle.String())
		fmt.Fprintln(out)
	}

	var sink engine.Sink = report.NewConsoleSink(out)
	if opts.Format == "json" {
		// Grids are not representable in the JSON envelope; count only.
		sink = engine.DiscardSink{}
	}

	var (
		st    *store.Store
		runID string
	)
	if cfg.Database != "" {
		st, err = store.Open(cfg.Database)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to open history database", err)
		}
		defer func() {
			if closeErr := st.Close(); closeErr != nil {
				slog.Error("error closing history database", "error", closeErr)
			}
		}()
		runID, err = st.CreateRun(cmd.Context(), puzzle.Compact(), cfg.Workers)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to record run", err)
		}
		sink = report.MultiSink{sink, report.NewStoreSink(st, runID)}
	}

	solver, err := engine.New(engine.Config{
		MaxWorkers:    cfg.Workers,
		PrintInterval: cfg.PrintInterval,
		MaxSolutions:  cfg.MaxSolutions,
		Verify:        cfg.Verify,
	}, engine.NewPeerTable(), sink)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to build solver", err)
	}

	// Ctrl-C cancels the search cooperatively; workers drain on their own.
	parentCtx := cmd.Context()
	if parentCtx == nil {
		parentCtx = context.Background()
	}
	ctx, stop := signal.NotifyContext(parentCtx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	slog.Debug("search starting", "workers", cfg.Workers, "empty_cells", puzzle.EmptyCells)
	if err := solver.Solve(ctx, puzzle); err != nil {
		return WrapExitError(ExitCommandError, "failed to start search", err)
	}
	// Wait on the background context: cancellation stops the search, not
	// the wait for workers to retire.
	if err := solver.Wait(context.Background()); err != nil {
		return WrapExitError(ExitCommandError, "failed waiting for search", err)
	}

	stats := solver.Stats()
	interrupted := ctx.Err() != nil
	slog.Debug("search finished", "solutions", stats.Solutions, "spawns", stats.WorkerSpawns, "elapsed", stats.Elapsed)

	if st != nil {
		if err := st.FinishRun(cmd.Context(), runID, stats.Solutions, stats.WorkerSpawns, stats.Elapsed, interrupted); err != nil {
			return WrapExitError(ExitCommandError, "failed to finish run record", err)
		}
	}

	summary := solveSummary{
		Puzzle:       path,
		Workers:      cfg.Workers,
		Solutions:    stats.Solutions,
		WorkerSpawns: stats.WorkerSpawns,
		ElapsedUS:    stats.Elapsed.Microseconds(),
		RatePerSec:   stats.Rate(),
		Interrupted:  interrupted,
		RunID:        runID,
	}
	if opts.Format == "json" {
		formatter := &OutputFormatter{Format: opts.Format, Writer: out}
		if err := formatter.Success(summary); err != nil {
			return WrapExitError(ExitCommandError, "failed to write summary", err)
		}
	} else {
		printSummary(out, stats, interrupted)
	}

	if interrupted {
		return NewExitError(ExitFailure, "search interrupted")
	}
	return nil
}

func printSummary(out io.Writer, stats engine.Stats, interrupted bool) {
	printer := message.NewPrinter(language.English)
	if interrupted {
		fmt.Fprintln(out, "\n*** INTERRUPTED ***")
	}
	fmt.Fprintln(out)
	printer.Fprintf(out, "total solutions = %d (%s)\n", stats.Solutions, report.Humanize(stats.Solutions))
	printer.Fprintf(out, "worker spawns   = %d\n", stats.WorkerSpawns)
	printer.Fprintf(out, "solution rate   = %s / sec\n", report.Humanize(stats.Rate()))
	fmt.Fprintf(out, "elapsed         = %s\n", stats.Elapsed.Round(time.Millisecond))
}

// mergeConfig resolves the effective config: built-in defaults, then the
// config file, then any flag the user set explicitly.
func mergeConfig(opts *SolveOptions, cmd *cobra.Command) (Config, error) {
	cfg := DefaultConfig()
	if opts.ConfigPath != "" {
		loaded, err := LoadConfig(opts.ConfigPath)
		if err != nil {
			return Config{}, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("workers") {
		cfg.Workers = opts.Workers
	}
	if flags.Changed("print-interval") {
		cfg.PrintInterval = opts.PrintInterval
	}
	if flags.Changed("max-solutions") {
		cfg.MaxSolutions = opts.MaxSolutions
	}
	if flags.Changed("db") {
		cfg.Database = opts.Database
	}
	if flags.Changed("verify") {
		cfg.Verify = opts.Verify
	}
	return cfg, nil
}
