// Package grid provides a fixed-size, row-major 2-D container.
package grid

// Grid is a width x height container addressed by (x, y).
// Cells outside the grid read as the zero value of T.
type Grid[T any] struct {
	width  int
	height int
	cells  []T
}

// New creates a grid with every cell set to fill.
func New[T any](width, height int, fill T) *Grid[T] {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	cells := make([]T, width*height)
	for i := range cells {
		cells[i] = fill
	}
	return &Grid[T]{width: width, height: height, cells: cells}
}

// Width returns the number of columns.
func (g *Grid[T]) Width() int {
	return g.width
}

// Height returns the number of rows.
func (g *Grid[T]) Height() int {
	return g.height
}

// InBounds reports whether (x, y) addresses a cell.
func (g *Grid[T]) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// At returns the cell at (x, y). The second result is false when the
// position is out of range, in which case the zero value is returned.
func (g *Grid[T]) At(x, y int) (T, bool) {
	if !g.InBounds(x, y) {
		var zero T
		return zero, false
	}
	return g.cells[y*g.width+x], true
}

// Set stores v at (x, y) and reports whether the position was in range.
func (g *Grid[T]) Set(x, y int, v T) bool {
	if !g.InBounds(x, y) {
		return false
	}
	g.cells[y*g.width+x] = v
	return true
}

// Each calls fn for every cell in row-major order.
func (g *Grid[T]) Each(fn func(x, y int, v T)) {
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			fn(x, y, g.cells[y*g.width+x])
		}
	}
}

// Rows returns a copy of each row, top to bottom.
func (g *Grid[T]) Rows() [][]T {
	rows := make([][]T, g.height)
	for y := range rows {
		row := make([]T, g.width)
		copy(row, g.cells[y*g.width:(y+1)*g.width])
		rows[y] = row
	}
	return rows
}

// Clone returns an independent copy of the grid.
func (g *Grid[T]) Clone() *Grid[T] {
	cells := make([]T, len(g.cells))
	copy(cells, g.cells)
	return &Grid[T]{width: g.width, height: g.height, cells: cells}
}

// Window returns the 3x3 neighborhood centered on (x, y), indexed
// [row][column]. Neighbors outside the grid are the zero value.
func (g *Grid[T]) Window(x, y int) [3][3]T {
	var w [3][3]T
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			w[dy+1][dx+1], _ = g.At(x+dx, y+dy)
		}
	}
	return w
}
