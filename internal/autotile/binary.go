package autotile

import "github.com/samdwyer/meiro/internal/tile"

// Binary collapses every cell to floor or wall.
type Binary struct {
	Registry *tile.Registry
}

// Classify implements Classifier. The center tile is returned unchanged
// when it already has the target kind.
func (c Binary) Classify(w Window) tile.Tile {
	target := w[1][1]
	kind := tile.BinaryWall
	if target.Walkable() {
		kind = tile.Floor
	}
	if target.Kind == kind {
		return target
	}
	return c.Registry.New(kind)
}
