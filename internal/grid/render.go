package grid

import "strings"

const border = "+-------+-------+-------+"

// String renders the puzzle in the box format the parser accepts, with a
// trailing newline after the final border.
func (p *Puzzle) String() string {
	var b strings.Builder
	b.Grow(26 * 13)
	for row := 0; row < 9; row++ {
		if row%3 == 0 {
			b.WriteString(border)
			b.WriteByte('\n')
		}
		for col := 0; col < 9; col++ {
			if col%3 == 0 {
				b.WriteString("| ")
			}
			v := p.Cells[row*9+col]
			if v == Empty {
				b.WriteByte(' ')
			} else {
				b.WriteByte('0' + v)
			}
			b.WriteByte(' ')
		}
		b.WriteString("|\n")
	}
	b.WriteString(border)
	b.WriteByte('\n')
	return b.String()
}
