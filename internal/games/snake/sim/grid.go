// Package sim is the reversible simulation core shared by every snake variant.
// It has no terminal, network or storage dependencies: the platform feeds it
// directions and frame deltas and reads back value snapshots.
package sim

import (
	"math/rand"

	"github.com/vovakirdan/warpsnake/internal/core"
)

// Cell is a grid coordinate, 0-indexed from the top-left corner.
type Cell struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add returns the cell offset by (dx, dy).
func (c Cell) Add(dx, dy int) Cell {
	return Cell{X: c.X + dx, Y: c.Y + dy}
}

// Grid describes the playfield dimensions.
type Grid struct {
	Width  int
	Height int
}

// Bounds returns the playfield as a rectangle.
func (g Grid) Bounds() core.Rect {
	return core.NewRect(0, 0, g.Width, g.Height)
}

// Contains reports whether c lies inside the playfield.
func (g Grid) Contains(c Cell) bool {
	return g.Bounds().Contains(c.X, c.Y)
}

// Size returns the number of cells in the playfield.
func (g Grid) Size() int {
	return g.Width * g.Height
}

// Interior returns the playfield shrunk by margin cells on every side.
// The result may have zero width or height on tiny grids.
func (g Grid) Interior(margin int) core.Rect {
	return g.Bounds().Inset(margin)
}

// Occupancy is a set of cells, used for O(1) membership tests.
type Occupancy map[Cell]struct{}

// Occupy builds an occupancy set from the given cell slices.
func Occupy(groups ...[]Cell) Occupancy {
	n := 0
	for _, g := range groups {
		n += len(g)
	}
	occ := make(Occupancy, n)
	for _, g := range groups {
		for _, c := range g {
			occ[c] = struct{}{}
		}
	}
	return occ
}

// Has reports whether c is occupied.
func (o Occupancy) Has(c Cell) bool {
	_, ok := o[c]
	return ok
}

// EmptyCells collects every cell inside area that is not occupied, in
// row-major order so sampling is reproducible for a given seed.
func (g Grid) EmptyCells(area core.Rect, occ Occupancy) []Cell {
	var empty []Cell
	for y := area.Y; y < area.Bottom(); y++ {
		for x := area.X; x < area.Right(); x++ {
			c := Cell{X: x, Y: y}
			if g.Contains(c) && !occ.Has(c) {
				empty = append(empty, c)
			}
		}
	}
	return empty
}

// pick returns a uniformly random element of cells.
func pick(cells []Cell, rng *rand.Rand) (Cell, bool) {
	if len(cells) == 0 {
		return Cell{}, false
	}
	return cells[rng.Intn(len(cells))], true
}

// RandomEmpty samples one empty cell uniformly over the whole grid.
func (g Grid) RandomEmpty(occ Occupancy, rng *rand.Rand) (Cell, bool) {
	return pick(g.EmptyCells(g.Bounds(), occ), rng)
}
