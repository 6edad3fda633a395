package world

import (
	"fmt"
	"math/rand"
)

// maxGateAttempts bounds the resampling of a gate position.
const maxGateAttempts = 1000

// Room is a rectangle placed inside a leaf block. Its position is stored
// relative to the block and is only defined once the room is attached.
type Room struct {
	width, height int
	relX, relY    int
	hasX, hasY    bool

	block *Block

	connections map[Point]*Room
	gates       []Point
	passages    []Passage
}

// NewRoom creates an unattached room.
func NewRoom(width, height int) (*Room, error) {
	if width < RoomMinWidth || height < RoomMinHeight {
		return nil, fmt.Errorf("%w: %dx%d, minimum is %dx%d",
			ErrRoomTooSmall, width, height, RoomMinWidth, RoomMinHeight)
	}
	return &Room{
		width:       width,
		height:      height,
		connections: make(map[Point]*Room),
	}, nil
}

// Width returns the room width.
func (r *Room) Width() int { return r.width }

// Height returns the room height.
func (r *Room) Height() int { return r.height }

// Block returns the owning block, or nil.
func (r *Room) Block() *Block { return r.block }

// RelativeX returns the offset from the block's left edge.
func (r *Room) RelativeX() int { return r.relX }

// RelativeY returns the offset from the block's top edge.
func (r *Room) RelativeY() int { return r.relY }

// Origin returns the absolute top-left cell. ok is false while the room is
// not attached to a block.
func (r *Room) Origin() (p Point, ok bool) {
	if r.block == nil {
		return Point{}, false
	}
	return Point{r.block.x + r.relX, r.block.y + r.relY}, true
}

// AvailableXMin returns the smallest relative x allowed.
func (r *Room) AvailableXMin() int { return Margin }

// AvailableXMax returns the largest relative x allowed in the owning block.
func (r *Room) AvailableXMax() int {
	if r.block == nil {
		return 0
	}
	return r.block.width - (r.width + Margin)
}

// AvailableYMin returns the smallest relative y allowed.
func (r *Room) AvailableYMin() int { return Margin }

// AvailableYMax returns the largest relative y allowed in the owning block.
func (r *Room) AvailableYMax() int {
	if r.block == nil {
		return 0
	}
	return r.block.height - (r.height + Margin)
}

// SetRelativeX sets the offset from the block's left edge. An attached
// room rejects values outside [AvailableXMin, AvailableXMax].
func (r *Room) SetRelativeX(x int) error {
	if r.block != nil {
		if lo, hi := r.AvailableXMin(), r.AvailableXMax(); x < lo || x > hi {
			return &CoordinateError{Axis: "x", Value: x, Min: lo, Max: hi}
		}
	}
	r.relX, r.hasX = x, true
	return nil
}

// SetRelativeY sets the offset from the block's top edge. An attached
// room rejects values outside [AvailableYMin, AvailableYMax].
func (r *Room) SetRelativeY(y int) error {
	if r.block != nil {
		if lo, hi := r.AvailableYMin(), r.AvailableYMax(); y < lo || y > hi {
			return &CoordinateError{Axis: "y", Value: y, Min: lo, Max: hi}
		}
	}
	r.relY, r.hasY = y, true
	return nil
}

// attach binds the room to b and re-checks any coordinates set earlier.
// On failure the room is left unattached.
func (r *Room) attach(b *Block) error {
	r.block = b
	if r.hasX {
		if err := r.SetRelativeX(r.relX); err != nil {
			r.block = nil
			return err
		}
	}
	if r.hasY {
		if err := r.SetRelativeY(r.relY); err != nil {
			r.block = nil
			return err
		}
	}
	return nil
}

// SetRandomCoordinate picks relative x and y uniformly within the ranges
// the block allows.
func (r *Room) SetRandomCoordinate(rng *rand.Rand) (x, y int, err error) {
	if r.block == nil {
		return 0, 0, ErrNotAttached
	}
	x, err = pick(r.AvailableXMin(), r.AvailableXMax(), rng)
	if err != nil {
		return 0, 0, fmt.Errorf("relative x: %w", err)
	}
	y, err = pick(r.AvailableYMin(), r.AvailableYMax(), rng)
	if err != nil {
		return 0, 0, fmt.Errorf("relative y: %w", err)
	}
	if err := r.SetRelativeX(x); err != nil {
		return 0, 0, err
	}
	if err := r.SetRelativeY(y); err != nil {
		return 0, 0, err
	}
	return x, y, nil
}

func pick(lo, hi int, rng *rand.Rand) (int, error) {
	if hi < lo {
		return 0, fmt.Errorf("%w: no space left in block (range %d..%d)", ErrRoomTooSmall, lo, hi)
	}
	return lo + rng.Intn(hi-lo+1), nil
}

// EachCoordinate calls fn for every absolute cell of the room, row by row.
// It does nothing for an unattached room.
func (r *Room) EachCoordinate(fn func(x, y int)) {
	o, ok := r.Origin()
	if !ok {
		return
	}
	for dy := 0; dy < r.height; dy++ {
		for dx := 0; dx < r.width; dx++ {
			fn(o.X+dx, o.Y+dy)
		}
	}
}

// Cells returns every absolute cell of the room in row-major order.
func (r *Room) Cells() []Point {
	cells := make([]Point, 0, r.width*r.height)
	r.EachCoordinate(func(x, y int) {
		cells = append(cells, Point{x, y})
	})
	return cells
}

// Generation returns the owning block's generation, or 0 when unattached.
func (r *Room) Generation() int {
	if r.block == nil {
		return 0
	}
	return r.block.Generation()
}

// Partition returns the wall between the room's block and its sibling.
func (r *Room) Partition() (Partition, bool) {
	if r.block == nil || r.block.parent == nil {
		return Partition{}, false
	}
	return r.block.parent.Partition()
}

// Brother returns the room hosted by the sibling block, or nil.
func (r *Room) Brother() *Room {
	if r.block == nil {
		return nil
	}
	if b := r.block.Brother(); b != nil {
		return b.room
	}
	return nil
}

// Connections returns a copy of the gate-to-room map.
func (r *Room) Connections() map[Point]*Room {
	out := make(map[Point]*Room, len(r.connections))
	for p, room := range r.connections {
		out[p] = room
	}
	return out
}

// Gates returns this room's own gates in the order they were opened.
func (r *Room) Gates() []Point {
	return append([]Point(nil), r.gates...)
}

// Passages returns every corridor leg the room takes part in.
func (r *Room) Passages() []Passage {
	return append([]Passage(nil), r.passages...)
}

// ConnectableRooms returns the rooms of the blocks adjacent to this one.
func (r *Room) ConnectableRooms() []*Room {
	if r.block == nil {
		return nil
	}
	var rooms []*Room
	for _, n := range r.block.Neighbors() {
		if n.room != nil {
			rooms = append(rooms, n.room)
		}
	}
	return rooms
}

// ConnectedTo reports whether a corridor already links r to other, either
// directly or through r's brother room.
func (r *Room) ConnectedTo(other *Room) bool {
	if r.directlyConnected(other) {
		return true
	}
	if b := r.Brother(); b != nil && b != other {
		return b.directlyConnected(other)
	}
	return false
}

func (r *Room) directlyConnected(other *Room) bool {
	for _, c := range r.connections {
		if c == other {
			return true
		}
	}
	return false
}

// CreatePassage routes a corridor to every connectable room that is not
// connected yet.
func (r *Room) CreatePassage(rng *rand.Rand) error {
	for _, other := range r.ConnectableRooms() {
		if r.ConnectedTo(other) {
			continue
		}
		if err := r.CreatePassageTo(other, rng); err != nil {
			return err
		}
	}
	return nil
}

// SelectPartition returns the partition of the nearest block holding both
// rooms.
func (r *Room) SelectPartition(other *Room) (Partition, bool) {
	if r.block == nil || other.block == nil {
		return Partition{}, false
	}
	a := r.block.FindAncestor(other.block)
	if a == nil {
		return Partition{}, false
	}
	return a.Partition()
}

// CreatePassageTo opens a gate on each room facing their shared partition
// and joins them with three legs: one from each gate to the partition line
// and one along it. It does nothing if the rooms are already connected.
func (r *Room) CreatePassageTo(other *Room, rng *rand.Rand) error {
	if r.ConnectedTo(other) {
		return nil
	}
	if r.block == nil || other.block == nil {
		return ErrNotAttached
	}
	p, ok := r.SelectPartition(other)
	if !ok {
		return ErrNoSharedPartition
	}

	g1, err := r.randomGate(p, rng)
	if err != nil {
		return err
	}
	g2, err := other.randomGate(p, rng)
	if err != nil {
		return err
	}

	var leg1, leg2, joint Passage
	if p.Horizontal() {
		leg1 = NewPassage(g1.X, g1.Y, g1.X, p.Y)
		leg2 = NewPassage(g2.X, g2.Y, g2.X, p.Y)
		joint = NewPassage(g1.X, p.Y, g2.X, p.Y)
	} else {
		leg1 = NewPassage(g1.X, g1.Y, p.X, g1.Y)
		leg2 = NewPassage(g2.X, g2.Y, p.X, g2.Y)
		joint = NewPassage(p.X, g1.Y, p.X, g2.Y)
	}

	for _, room := range []*Room{r, other} {
		room.passages = append(room.passages, leg1, leg2, joint)
	}
	r.gates = append(r.gates, g1)
	other.gates = append(other.gates, g2)
	r.connections[g1] = other
	r.connections[g2] = other
	other.connections[g1] = r
	other.connections[g2] = r
	return nil
}

// randomGate picks a cell in the wall ring on the side of the room facing
// p. Cells on or next to one of the room's existing gates are resampled.
func (r *Room) randomGate(p Partition, rng *rand.Rand) (Point, error) {
	o, _ := r.Origin()
	for range maxGateAttempts {
		var g, prev, next Point
		if p.Horizontal() {
			y := o.Y + r.height
			if p.Y < o.Y {
				y = o.Y - 1
			}
			g = Point{o.X + rng.Intn(r.width), y}
			prev, next = Point{g.X - 1, y}, Point{g.X + 1, y}
		} else {
			x := o.X + r.width
			if p.X < o.X {
				x = o.X - 1
			}
			g = Point{x, o.Y + rng.Intn(r.height)}
			prev, next = Point{x, g.Y - 1}, Point{x, g.Y + 1}
		}
		if !r.hasGate(g) && !r.hasGate(prev) && !r.hasGate(next) {
			return g, nil
		}
	}
	return Point{}, fmt.Errorf("%w: select gate: no free cell after %d attempts",
		ErrGenerationFailed, maxGateAttempts)
}

func (r *Room) hasGate(p Point) bool {
	for _, g := range r.gates {
		if g == p {
			return true
		}
	}
	return false
}
