package engine

import (
	"fmt"

	"github.com/pgrid/sudoku/internal/grid"
)

// peersPerCell is fixed by the 9x9/3x3 geometry: 8 row peers, 8 column
// peers, and 4 box peers not already counted.
const peersPerCell = 20

// PeerTable maps each cell index to the indices of the 20 cells sharing
// its row, column, or box. Built once, then read-only; safe for
// unsynchronized concurrent reads.
type PeerTable [grid.Cells][peersPerCell]uint8

// NewPeerTable computes the peer table. A cell with a peer count other
// than 20 means the geometry code is broken, which is fatal.
func NewPeerTable() *PeerTable {
	t := &PeerTable{}
	for idx := 0; idx < grid.Cells; idx++ {
		n := 0
		for other := 0; other < grid.Cells; other++ {
			if other == idx {
				continue
			}
			if grid.Row(other) == grid.Row(idx) ||
				grid.Col(other) == grid.Col(idx) ||
				grid.Box(other) == grid.Box(idx) {
				if n == peersPerCell {
					panic(fmt.Sprintf("peer table: cell %d has more than %d peers", idx, peersPerCell))
				}
				t[idx][n] = uint8(other)
				n++
			}
		}
		if n != peersPerCell {
			panic(fmt.Sprintf("peer table: cell %d has %d peers, want %d", idx, n, peersPerCell))
		}
	}
	return t
}
