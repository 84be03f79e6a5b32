package engine

import (
	"math/bits"

	"github.com/pgrid/sudoku/internal/grid"
)

// allDigits has bits 1 through 9 set: every digit legal.
const allDigits uint16 = 0x3FE

// Candidates computes the legal digits for an empty cell: start from all
// nine and clear the digit of every assigned peer. Returns the bitmask
// (bit d set means digit d is legal) and the number of set bits.
//
// Pure function of the puzzle and the table; the result for an already
// filled cell is meaningless and callers must not ask for it.
func (t *PeerTable) Candidates(p *grid.Puzzle, idx int) (mask uint16, n int) {
	mask, n = allDigits, 9
	for _, peer := range t[idx] {
		if v := p.Cells[peer]; v != grid.Empty && mask&(1<<v) != 0 {
			mask &^= 1 << v
			n--
		}
	}
	return mask, n
}

// soleDigit returns the digit of a single-bit candidate mask.
func soleDigit(mask uint16) uint8 {
	return uint8(bits.TrailingZeros16(mask))
}
