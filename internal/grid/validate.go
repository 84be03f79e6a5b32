package grid

import "fmt"

// unit index generators. Each returns the 9 cell indices of unit n (0-8).

func rowCells(n int) [9]int {
	var u [9]int
	for i := range u {
		u[i] = n*9 + i
	}
	return u
}

func colCells(n int) [9]int {
	var u [9]int
	for i := range u {
		u[i] = n + i*9
	}
	return u
}

func boxCells(n int) [9]int {
	var u [9]int
	base := n/3*27 + n%3*3
	for i := range u {
		u[i] = base + i/3*9 + i%3
	}
	return u
}

// Validate checks the puzzle for duplicate digits within any row, column,
// or box. It does not decide solvability; an unsolvable but duplicate-free
// puzzle passes and surfaces later as a search dead end.
func (p *Puzzle) Validate() error {
	for n := 0; n < 9; n++ {
		if err := checkUnit(p, rowCells(n)); err != nil {
			return fmt.Errorf("row %d: %w", n+1, err)
		}
		if err := checkUnit(p, colCells(n)); err != nil {
			return fmt.Errorf("column %d: %w", n+1, err)
		}
		if err := checkUnit(p, boxCells(n)); err != nil {
			return fmt.Errorf("box %d: %w", n+1, err)
		}
	}
	return nil
}

func checkUnit(p *Puzzle, unit [9]int) error {
	var seen uint16
	for _, idx := range unit {
		v := p.Cells[idx]
		if v == Empty {
			continue
		}
		if v > 9 {
			return fmt.Errorf("cell %d holds out-of-range value %d", idx, v)
		}
		if seen&(1<<v) != 0 {
			return fmt.Errorf("digit %d appears more than once", v)
		}
		seen |= 1 << v
	}
	return nil
}

// CheckSolved verifies that the puzzle is a complete, valid solution:
// every row, column, and box contains each digit 1-9 exactly once.
func (p *Puzzle) CheckSolved() error {
	if !p.Solved() {
		return fmt.Errorf("%d cells still empty", p.EmptyCells)
	}
	const all = 0x3FE // bits 1..9
	for n := 0; n < 9; n++ {
		for _, unit := range [][9]int{rowCells(n), colCells(n), boxCells(n)} {
			var seen uint16
			for _, idx := range unit {
				seen |= 1 << p.Cells[idx]
			}
			if seen != all {
				return fmt.Errorf("unit containing cell %d is not a permutation of 1-9", unit[0])
			}
		}
	}
	return nil
}
