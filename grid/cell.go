// Package grid maps continuous world coordinates onto the contract's cell grid
// and encodes cell deltas the way the movement contract accepts them
package grid

import (
	"fmt"
	"math"

	"github.com/lixenwraith/blockrooms/parameter"
)

// Position is a planar world position; Y is not part of the grid
type Position struct {
	X float64
	Z float64
}

// Cell is a discrete grid coordinate
type Cell struct {
	X int
	Z int
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Z)
}

// CellOf returns floor((coord - genesis) / size)
func CellOf(coord, genesis, size float64) int {
	return int(math.Floor((coord - genesis) / size))
}

// CellAt returns the cell containing p on the standard grid
func CellAt(p Position) Cell {
	return Cell{
		X: CellOf(p.X, parameter.GridGenesisX, parameter.GridSize),
		Z: CellOf(p.Z, parameter.GridGenesisZ, parameter.GridSize),
	}
}

// CellCenter returns the world position at the middle of c
func CellCenter(c Cell) Position {
	return Position{
		X: parameter.GridGenesisX + (float64(c.X)+0.5)*parameter.GridSize,
		Z: parameter.GridGenesisZ + (float64(c.Z)+0.5)*parameter.GridSize,
	}
}

// Offset shifts p by whole cells
func (p Position) Offset(cellsX, cellsZ int) Position {
	return Position{
		X: p.X + float64(cellsX)*parameter.GridSize,
		Z: p.Z + float64(cellsZ)*parameter.GridSize,
	}
}

func (p Position) String() string {
	return fmt.Sprintf("(%.2f,%.2f)", p.X, p.Z)
}
