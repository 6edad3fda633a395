package autotile

import (
	"fmt"
	"strings"

	"github.com/samdwyer/meiro/internal/tile"
)

// keypad names window positions in row-major order; 0 is the center.
var keypad = [9]byte{'1', '2', '3', '4', 0, '6', '7', '8', '9'}

// diagonals lists each corner with the two orthogonal neighbors it touches.
// A walkable corner only chips the wall when both of them are blocked.
var diagonals = []struct{ corner, a, b int }{
	{0, 1, 3},
	{2, 1, 5},
	{6, 3, 7},
	{8, 5, 7},
}

// detailedPatterns covers all 512 walkability patterns.
var detailedPatterns = buildDetailedPatterns()

func buildDetailedPatterns() map[uint16]tile.Kind {
	table := make(map[uint16]tile.Kind, 512)
	for p := uint16(0); p < 512; p++ {
		table[p] = chippedFor(p)
	}
	return table
}

// chippedFor names the walkable orthogonal neighbors plus the walkable
// corners not already covered by an orthogonal one.
func chippedFor(p uint16) tile.Kind {
	walkable := func(i int) bool { return p&(1<<(8-i)) != 0 }

	include := [9]bool{}
	for _, i := range []int{1, 3, 5, 7} {
		include[i] = walkable(i)
	}
	for _, d := range diagonals {
		include[d.corner] = walkable(d.corner) && !walkable(d.a) && !walkable(d.b)
	}

	var digits strings.Builder
	for i, ok := range include {
		if ok {
			digits.WriteByte(keypad[i])
		}
	}
	if digits.Len() == 0 {
		return tile.Wall
	}

	kind, ok := tile.ChippedKind(digits.String())
	if !ok {
		panic(fmt.Sprintf("autotile: no chipped kind for pattern %09b", p))
	}
	return kind
}

// Detailed picks one of the chipped wall variants from the walkability of
// all eight neighbors.
type Detailed struct {
	Registry *tile.Registry
}

// Classify implements Classifier.
func (c Detailed) Classify(w Window) tile.Tile {
	target := w[1][1]
	if target.Walkable() {
		return target
	}
	p := pattern(w, tile.Tile.Walkable)
	return c.Registry.New(detailedPatterns[p])
}
