package world

// Orientation is the shape of a block or the direction of a partition.
type Orientation int

const (
	// Horizontal blocks are at least as wide as they are tall; horizontal
	// partitions run along the x axis.
	Horizontal Orientation = iota
	// Vertical blocks are taller than wide; vertical partitions run along
	// the y axis.
	Vertical
)

// String returns a human-readable orientation name.
func (o Orientation) String() string {
	switch o {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	default:
		return "unknown"
	}
}

// Partition is the one-cell wall left between the two halves of a split block.
type Partition struct {
	X, Y        int
	Length      int
	Orientation Orientation
}

// Horizontal returns true if the partition runs along the x axis.
func (p Partition) Horizontal() bool {
	return p.Orientation == Horizontal
}

// Vertical returns true if the partition runs along the y axis.
func (p Partition) Vertical() bool {
	return p.Orientation == Vertical
}
