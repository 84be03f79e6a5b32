// Package grid holds the Sudoku puzzle value type and its I/O boundary:
// puzzle-file parsing, consistency validation, and rendering.
//
// A Puzzle is a plain value. Copying one with = yields an independent grid,
// which is what the search engine relies on when it hands branches to
// workers: there is never a shared mutable puzzle.
//
// The parser accepts two formats:
//
//	Box format (borders and comments skipped):
//
//	  # optional comment
//	  +-------+-------+-------+
//	  | 7   4 |       |       |
//	  ...
//
//	Compact format: nine rows of nine characters, '.' or '0' for empty.
//
// Validation checks the "no duplicate digit in a row, column, or box" rule
// only. The engine assumes its input passed Validate and does not re-check.
package grid
