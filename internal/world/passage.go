package world

// Point is a cell position on the floor.
type Point struct {
	X, Y int
}

// Passage is one straight leg of a corridor. Start and End share either
// their x or their y coordinate.
type Passage struct {
	Start Point
	End   Point
}

// NewPassage creates the passage from (x1, y1) to (x2, y2).
func NewPassage(x1, y1, x2, y2 int) Passage {
	return Passage{Start: Point{x1, y1}, End: Point{x2, y2}}
}

// Cells returns every cell on the passage from Start to End, inclusive.
func (p Passage) Cells() []Point {
	dx, dy := sign(p.End.X-p.Start.X), sign(p.End.Y-p.Start.Y)
	n := max(abs(p.End.X-p.Start.X), abs(p.End.Y-p.Start.Y)) + 1

	cells := make([]Point, 0, n)
	for i := 0; i < n; i++ {
		cells = append(cells, Point{p.Start.X + dx*i, p.Start.Y + dy*i})
	}
	return cells
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
