package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pgrid/sudoku/internal/grid"
	"github.com/pgrid/sudoku/internal/report"
	"github.com/pgrid/sudoku/internal/store"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Database string
	RunID    string
}

// NewHistoryCommand creates the history command: list recorded solve runs
// or show the reported solutions of one run.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded solve runs",
		Long: `List the runs recorded in a history database, most recent first.
With --run, print the reported solutions of that run instead.

Example:
  sudoku history --db ./history.db
  sudoku history --db ./history.db --run 0190... `,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to the SQLite history database (required)")
	cmd.Flags().StringVar(&opts.RunID, "run", "", "show the reported solutions of this run")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runHistory(opts *HistoryOptions, cmd *cobra.Command) error {
	st, err := store.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open history database", err)
	}
	defer st.Close()

	out := cmd.OutOrStdout()
	formatter := &OutputFormatter{Format: opts.Format, Writer: out}

	if opts.RunID != "" {
		sols, err := st.RunSolutions(cmd.Context(), opts.RunID)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to read solutions", err)
		}
		if opts.Format == "json" {
			return formatter.Success(sols)
		}
		for _, sol := range sols {
			p, err := grid.Parse(strings.NewReader(sol.Cells))
			if err != nil {
				return WrapExitError(ExitCommandError, "corrupt solution record", err)
			}
			fmt.Fprintf(out, "solution %d (found %s)\n", sol.Ordinal, sol.FoundAt.Format(time.RFC3339))
			fmt.Fprint(out, p.String())
			fmt.Fprintln(out)
		}
		if len(sols) == 0 {
			fmt.Fprintln(out, "no recorded solutions")
		}
		return nil
	}

	runs, err := st.ListRuns(cmd.Context())
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to list runs", err)
	}
	if opts.Format == "json" {
		return formatter.Success(runs)
	}
	if len(runs) == 0 {
		fmt.Fprintln(out, "no recorded runs")
		return nil
	}
	for _, r := range runs {
		status := "finished"
		switch {
		case r.Interrupted:
			status = "interrupted"
		case r.FinishedAt == nil:
			status = "unfinished"
		}
		fmt.Fprintf(out, "%s  %s  workers=%d  solutions=%s  elapsed=%s  %s\n",
			r.ID, r.StartedAt.Format(time.RFC3339), r.MaxWorkers,
			report.Humanize(r.Solutions), r.Elapsed.Round(time.Millisecond), status)
	}
	return nil
}
