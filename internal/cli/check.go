package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pgrid/sudoku/internal/grid"
)

// CheckOptions holds flags for the check command.
type CheckOptions struct {
	*RootOptions
}

// NewCheckCommand creates the check command: parse and validate a puzzle
// file without solving it.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CheckOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "check <puzzle-file>",
		Short: "Parse and validate a puzzle file",
		Long: `Parse a puzzle file and check it for duplicate digits in any row,
column, or box. Exits 1 if the puzzle is inconsistent, 2 if the file
cannot be read or parsed.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(opts, args[0], cmd)
		},
	}
	return cmd
}

type checkResult struct {
	Puzzle     string `json:"puzzle"`
	Cells      string `json:"cells"`
	EmptyCells int    `json:"empty_cells"`
}

func runCheck(opts *CheckOptions, path string, cmd *cobra.Command) error {
	puzzle, err := grid.ParseFile(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read puzzle", err)
	}
	if err := puzzle.Validate(); err != nil {
		return WrapExitError(ExitFailure, "invalid puzzle", err)
	}

	out := cmd.OutOrStdout()
	if opts.Format == "json" {
		formatter := &OutputFormatter{Format: opts.Format, Writer: out}
		return formatter.Success(checkResult{
			Puzzle:     path,
			Cells:      puzzle.Compact(),
			EmptyCells: puzzle.EmptyCells,
		})
	}

	fmt.Fprint(out, puzzle.String())
	fmt.Fprintf(out, "OK: %d clues, %d empty cells\n", grid.Cells-puzzle.EmptyCells, puzzle.EmptyCells)
	return nil
}
