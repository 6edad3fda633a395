// Package autotile refines wall cells into shaped tiles by looking at the
// 3x3 neighborhood around each cell.
package autotile

import (
	"github.com/samdwyer/meiro/internal/grid"
	"github.com/samdwyer/meiro/internal/tile"
)

// Window is a 3x3 neighborhood indexed [row][column]; the cell being
// classified sits at [1][1]. Cells outside the map are the zero tile.
type Window = [3][3]tile.Tile

// Classifier maps a neighborhood to the tile that replaces its center.
type Classifier interface {
	Classify(w Window) tile.Tile
}

// Apply classifies every cell of g and returns the result as a new grid.
// Every window is read from g itself, so earlier results never feed into
// later cells.
func Apply(g *grid.Grid[tile.Tile], c Classifier) *grid.Grid[tile.Tile] {
	out := g.Clone()
	g.Each(func(x, y int, _ tile.Tile) {
		out.Set(x, y, c.Classify(g.Window(x, y)))
	})
	return out
}

// pattern packs the window into 9 bits, row-major, top-left cell in the
// highest bit. set decides whether a cell contributes a 1.
func pattern(w Window, set func(tile.Tile) bool) uint16 {
	var p uint16
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			p <<= 1
			if set(w[row][col]) {
				p |= 1
			}
		}
	}
	return p
}
