package grid

// Empty is the sentinel for an unassigned cell.
const Empty uint8 = 0

// Size constants for the 9x9 board with 3x3 boxes.
const (
	Cells  = 81
	Digits = 9
)

// Puzzle is a 9x9 Sudoku grid in row-major order. Cells hold a digit 1-9
// or Empty. EmptyCells tracks how many cells hold Empty; callers that
// assign a digit must decrement it themselves.
//
// Puzzle is a value type. Assignment copies the whole grid, so concurrent
// branches each own a private copy.
type Puzzle struct {
	Cells      [Cells]uint8
	EmptyCells int
}

// Row returns the row index (0-8) of a cell.
func Row(idx int) int { return idx / 9 }

// Col returns the column index (0-8) of a cell.
func Col(idx int) int { return idx % 9 }

// Box returns the 3x3 box index (0-8) of a cell.
func Box(idx int) int { return Row(idx)/3*3 + Col(idx)/3 }

// Blank returns a puzzle with every cell empty.
func Blank() Puzzle {
	return Puzzle{EmptyCells: Cells}
}

// Set assigns a digit to a cell, maintaining the empty-cell count.
// Setting Empty on a filled cell raises the count again.
func (p *Puzzle) Set(idx int, v uint8) {
	was, now := p.Cells[idx] == Empty, v == Empty
	p.Cells[idx] = v
	switch {
	case was && !now:
		p.EmptyCells--
	case !was && now:
		p.EmptyCells++
	}
}

// Solved reports whether every cell is assigned.
func (p *Puzzle) Solved() bool { return p.EmptyCells == 0 }

// Compact returns the 81-character single-line form, '.' for empty cells.
func (p *Puzzle) Compact() string {
	var b [Cells]byte
	for i, v := range p.Cells {
		if v == Empty {
			b[i] = '.'
		} else {
			b[i] = '0' + v
		}
	}
	return string(b[:])
}
