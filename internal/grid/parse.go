package grid

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Column offsets of the nine values within a 25-character box-format line:
// "| 7   4 |       |       |"
var boxCols = [9]int{2, 4, 6, 10, 12, 14, 18, 20, 22}

// ParseFile reads a puzzle from a file in either supported format.
func ParseFile(path string) (Puzzle, error) {
	f, err := os.Open(path)
	if err != nil {
		return Puzzle{}, fmt.Errorf("open puzzle file: %w", err)
	}
	defer f.Close()

	p, err := Parse(f)
	if err != nil {
		return Puzzle{}, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Parse reads a puzzle from r. Blank lines, comment lines starting with
// '#', and border lines starting with '+' are skipped. If any remaining
// line starts with '|' the box format is assumed, otherwise the compact
// format.
func Parse(r io.Reader) (Puzzle, error) {
	var lines []string
	box := false

	sc := bufio.NewScanner(r)
	lineNum := 0
	for sc.Scan() {
		lineNum++
		line := strings.TrimRight(sc.Text(), " \r")
		if line == "" || line[0] == '#' || line[0] == '+' {
			continue
		}
		if line[0] == '|' {
			box = true
		}
		lines = append(lines, line)
		if len(lines) > 9 {
			return Puzzle{}, fmt.Errorf("line %d: more than 9 value rows", lineNum)
		}
	}
	if err := sc.Err(); err != nil {
		return Puzzle{}, fmt.Errorf("read puzzle: %w", err)
	}

	if box {
		return parseBox(lines)
	}
	return parseCompact(lines)
}

func parseBox(lines []string) (Puzzle, error) {
	p := Blank()
	if len(lines) != 9 {
		return Puzzle{}, fmt.Errorf("box format: got %d value rows, want 9", len(lines))
	}
	idx := 0
	for row, line := range lines {
		if len(line) != 25 {
			return Puzzle{}, fmt.Errorf("row %d: line is %d characters, want 25", row+1, len(line))
		}
		for _, col := range boxCols {
			switch c := line[col]; {
			case c == ' ':
				idx++
			case c >= '1' && c <= '9':
				p.Set(idx, c-'0')
				idx++
			default:
				return Puzzle{}, fmt.Errorf("row %d: invalid cell character %q", row+1, c)
			}
		}
	}
	return p, nil
}

func parseCompact(lines []string) (Puzzle, error) {
	cells := strings.Join(lines, "")
	cells = strings.ReplaceAll(cells, " ", "")
	if len(cells) != Cells {
		return Puzzle{}, fmt.Errorf("compact format: got %d cells, want %d", len(cells), Cells)
	}

	p := Blank()
	for i := 0; i < Cells; i++ {
		switch c := cells[i]; {
		case c == '.' || c == '0':
		case c >= '1' && c <= '9':
			p.Set(i, c-'0')
		default:
			return Puzzle{}, fmt.Errorf("cell %d: invalid character %q", i, c)
		}
	}
	return p, nil
}
