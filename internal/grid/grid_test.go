package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRowColBox(t *testing.T) {
	assert.Equal(t, 0, Row(0))
	assert.Equal(t, 0, Col(0))
	assert.Equal(t, 0, Box(0))

	// cell 40 is the center of the board
	assert.Equal(t, 4, Row(40))
	assert.Equal(t, 4, Col(40))
	assert.Equal(t, 4, Box(40))

	assert.Equal(t, 8, Row(80))
	assert.Equal(t, 8, Col(80))
	assert.Equal(t, 8, Box(80))

	// box boundaries along row 0
	assert.Equal(t, 0, Box(2))
	assert.Equal(t, 1, Box(3))
	assert.Equal(t, 2, Box(6))
}

func TestPuzzle_Set(t *testing.T) {
	p := Blank()
	assert.Equal(t, Cells, p.EmptyCells)
	assert.False(t, p.Solved())

	p.Set(0, 5)
	assert.Equal(t, Cells-1, p.EmptyCells)

	// overwriting a filled cell does not change the count
	p.Set(0, 6)
	assert.Equal(t, Cells-1, p.EmptyCells)

	// clearing raises it again
	p.Set(0, Empty)
	assert.Equal(t, Cells, p.EmptyCells)
}

func TestPuzzle_ValueSemantics(t *testing.T) {
	a := Blank()
	a.Set(0, 1)

	b := a
	b.Set(0, 2)
	b.Set(1, 3)

	assert.Equal(t, uint8(1), a.Cells[0], "copy must not alias the original")
	assert.Equal(t, Cells-1, a.EmptyCells)
	assert.Equal(t, Cells-2, b.EmptyCells)
}

func TestPuzzle_Compact(t *testing.T) {
	p := Blank()
	p.Set(0, 1)
	p.Set(80, 9)

	c := p.Compact()
	assert.Len(t, c, Cells)
	assert.Equal(t, byte('1'), c[0])
	assert.Equal(t, byte('9'), c[80])
	assert.Equal(t, byte('.'), c[1])
}
