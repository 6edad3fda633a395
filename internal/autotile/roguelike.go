package autotile

import "github.com/samdwyer/meiro/internal/tile"

// rogueLikePatterns maps floor layouts to directional walls. A 1 bit means
// the neighbor is room floor; gates and corridors count as 0, so walls
// next to corridors stay solid rock.
var rogueLikePatterns = map[uint16]tile.Kind{
	0b000_000_000: tile.Wall,
	0b000_000_001: tile.LeftWall,
	0b000_000_011: tile.TopWall,
	0b000_000_100: tile.RightWall,
	0b000_000_110: tile.TopWall,
	0b000_000_111: tile.TopWall,
	0b000_001_001: tile.LeftWall,
	0b000_100_100: tile.RightWall,
	0b001_000_000: tile.LeftWall,
	0b001_001_000: tile.LeftWall,
	0b001_001_001: tile.LeftWall,
	0b011_000_000: tile.BottomWall,
	0b100_000_000: tile.RightWall,
	0b100_100_000: tile.RightWall,
	0b100_100_100: tile.RightWall,
	0b110_000_000: tile.BottomWall,
	0b111_000_000: tile.BottomWall,
}

// RogueLike draws room outlines with '|' and '-' walls.
type RogueLike struct {
	Registry *tile.Registry
}

// Classify implements Classifier.
func (c RogueLike) Classify(w Window) tile.Tile {
	target := w[1][1]
	if target.Walkable() {
		return target
	}

	p := pattern(w, func(t tile.Tile) bool { return t.Kind == tile.Floor })
	kind, ok := rogueLikePatterns[p]
	if !ok {
		kind = tile.Wall
	}
	return c.Registry.New(kind)
}
