package world

import (
	"fmt"
	"math/rand"

	"github.com/zyedidia/generic/mapset"
)

const (
	// BlockMinWidth is the width each half must reach for a block to split.
	BlockMinWidth = FloorMinWidth*2 + 1
	// BlockMinHeight is the height each half must reach for a block to split.
	BlockMinHeight = FloorMinHeight*2 + 1
	// Margin is the gap kept between a room and the edge of its block.
	Margin = 1
)

// Block is a node of the partition tree covering one rectangle of the floor.
// A block is either a leaf, which may host a room, or split into two
// children separated by a partition.
type Block struct {
	x, y          int
	width, height int
	orientation   Orientation

	floor  *Floor
	parent *Block

	upperLeft  *Block
	lowerRight *Block
	partition  *Partition
	room       *Room
}

// NewBlock creates a leaf block. floor is used for neighbor lookups and may
// be nil for blocks that never query neighbors; parent is nil for the root.
func NewBlock(floor *Floor, x, y, width, height int, parent *Block) *Block {
	orientation := Horizontal
	if width < height {
		orientation = Vertical
	}
	return &Block{
		x:           x,
		y:           y,
		width:       width,
		height:      height,
		orientation: orientation,
		floor:       floor,
		parent:      parent,
	}
}

// X returns the left edge.
func (b *Block) X() int { return b.x }

// Y returns the top edge.
func (b *Block) Y() int { return b.y }

// Width returns the block width.
func (b *Block) Width() int { return b.width }

// Height returns the block height.
func (b *Block) Height() int { return b.height }

// Orientation returns the block's shape.
func (b *Block) Orientation() Orientation { return b.orientation }

// Parent returns the enclosing block, or nil for the root.
func (b *Block) Parent() *Block { return b.parent }

// Room returns the hosted room, or nil.
func (b *Block) Room() *Room { return b.room }

// HasRoom returns true if a room has been placed in the block.
func (b *Block) HasRoom() bool { return b.room != nil }

// Separated returns true once the block has been split.
func (b *Block) Separated() bool { return b.upperLeft != nil }

// Children returns the two halves of a split block: left then right for a
// vertical partition, top then bottom for a horizontal one.
func (b *Block) Children() (*Block, *Block) {
	return b.upperLeft, b.lowerRight
}

// Partition returns the wall recorded by the split.
func (b *Block) Partition() (Partition, bool) {
	if b.partition == nil {
		return Partition{}, false
	}
	return *b.partition, true
}

// Contains reports whether (x, y) lies inside the block.
func (b *Block) Contains(x, y int) bool {
	return x >= b.x && x < b.x+b.width && y >= b.y && y < b.y+b.height
}

// Separatable returns true if the block can still be split: half of its
// longer dimension must reach the minimum block size.
func (b *Block) Separatable() bool {
	if b.Separated() {
		return false
	}
	if b.orientation == Horizontal {
		return b.width/2 >= BlockMinWidth
	}
	return b.height/2 >= BlockMinHeight
}

// Separate splits the block across its longer axis. It returns false and
// leaves the block unchanged when the block is not separatable.
func (b *Block) Separate() bool {
	if !b.Separatable() {
		return false
	}
	if b.orientation == Horizontal {
		b.verticalSeparate()
	} else {
		b.horizontalSeparate()
	}
	return true
}

// horizontalSeparate splits into top and bottom halves. For odd heights the
// top half gets the smaller share.
func (b *Block) horizontalSeparate() {
	h := b.height / 2
	if b.height%2 != 0 {
		h = (b.height - 1) / 2
	}
	b.upperLeft = NewBlock(b.floor, b.x, b.y, b.width, h, b)
	b.lowerRight = NewBlock(b.floor, b.x, b.y+h+1, b.width, b.height-(h+1), b)
	b.partition = &Partition{X: b.x, Y: b.y + h, Length: b.width, Orientation: Horizontal}
}

// verticalSeparate splits into left and right halves. For odd widths the
// left half gets the smaller share.
func (b *Block) verticalSeparate() {
	w := b.width / 2
	if b.width%2 != 0 {
		w = (b.width - 1) / 2
	}
	b.upperLeft = NewBlock(b.floor, b.x, b.y, w, b.height, b)
	b.lowerRight = NewBlock(b.floor, b.x+w+1, b.y, b.width-(w+1), b.height, b)
	b.partition = &Partition{X: b.x + w, Y: b.y, Length: b.height, Orientation: Vertical}
}

// Unify drops the children and partition, turning the block back into a leaf.
func (b *Block) Unify() {
	b.upperLeft = nil
	b.lowerRight = nil
	b.partition = nil
}

// Generation returns the depth of the block; the root is generation 1.
func (b *Block) Generation() int {
	g := 1
	for p := b.parent; p != nil; p = p.parent {
		g++
	}
	return g
}

// Flatten returns the leaves under b, depth-first, upper-left first.
func (b *Block) Flatten() []*Block {
	var leaves []*Block
	stack := []*Block{b}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !n.Separated() {
			leaves = append(leaves, n)
			continue
		}
		stack = append(stack, n.lowerRight, n.upperLeft)
	}
	return leaves
}

// FindAncestor returns the nearest block that contains both b and other.
// It returns nil when either of them is the root.
func (b *Block) FindAncestor(other *Block) *Block {
	if b.parent == nil || other.parent == nil {
		return nil
	}

	a, o := b, other
	ga, gb := a.Generation(), o.Generation()
	for ; ga > gb; ga-- {
		a = a.parent
	}
	for ; gb > ga; gb-- {
		o = o.parent
	}
	for a.parent != o.parent {
		a = a.parent
		o = o.parent
	}
	return a.parent
}

// Brother returns the other child of b's parent, or nil for the root.
func (b *Block) Brother() *Block {
	if b.parent == nil {
		return nil
	}
	if b.parent.upperLeft == b {
		return b.parent.lowerRight
	}
	return b.parent.upperLeft
}

// Neighbors returns the leaves sharing an edge with b. Each edge is probed
// two cells out, past the partition that separates adjacent blocks, in the
// order left, right, top, bottom.
func (b *Block) Neighbors() []*Block {
	if b.floor == nil {
		panic("world: neighbor query on a block without a floor")
	}

	seen := mapset.New[*Block]()
	var neighbors []*Block
	probe := func(x, y int) {
		n := b.floor.BlockAt(x, y)
		if n == nil || n == b || seen.Has(n) {
			return
		}
		seen.Put(n)
		neighbors = append(neighbors, n)
	}

	for y := b.y; y < b.y+b.height; y++ {
		probe(b.x-2, y)
	}
	for y := b.y; y < b.y+b.height; y++ {
		probe(b.x+b.width+1, y)
	}
	for x := b.x; x < b.x+b.width; x++ {
		probe(x, b.y-2)
	}
	for x := b.x; x < b.x+b.width; x++ {
		probe(x, b.y+b.height+1)
	}
	return neighbors
}

// Suitable returns true if room fits inside b with a margin on every side.
func (b *Block) Suitable(room *Room) bool {
	return b.width-room.width >= Margin*2 && b.height-room.height >= Margin*2
}

// PutRoom places a room in the leaf. An explicit room is placed only if it
// fits; a random request builds a room sized within its limits and clamped
// to the space available. A room already hosted by another block is not
// moved. A room without preset coordinates gets random ones. The result
// reports whether a room was placed.
func (b *Block) PutRoom(src RoomSource, rng *rand.Rand) (bool, error) {
	if b.Separated() || b.room != nil {
		return false, nil
	}

	var room *Room
	switch {
	case src.room != nil:
		if src.room.block != nil && src.room.block != b {
			return false, nil
		}
		if !b.Suitable(src.room) {
			return false, nil
		}
		room = src.room
	case src.random != nil:
		r, err := b.randomRoom(*src.random, rng)
		if err != nil {
			return false, err
		}
		room = r
	default:
		return false, nil
	}

	if err := room.attach(b); err != nil {
		return false, err
	}
	if !room.hasX || !room.hasY {
		if _, _, err := room.SetRandomCoordinate(rng); err != nil {
			room.block = nil
			return false, err
		}
	}
	b.room = room
	return true, nil
}

func (b *Block) randomRoom(limits RoomLimits, rng *rand.Rand) (*Room, error) {
	w, err := randomSpan(limits.MinWidth, limits.MaxWidth, b.width-Margin*2, rng)
	if err != nil {
		return nil, fmt.Errorf("block at (%d,%d): width: %w", b.x, b.y, err)
	}
	h, err := randomSpan(limits.MinHeight, limits.MaxHeight, b.height-Margin*2, rng)
	if err != nil {
		return nil, fmt.Errorf("block at (%d,%d): height: %w", b.x, b.y, err)
	}
	return NewRoom(w, h)
}

// randomSpan picks a size in [lo, hi] after clamping both ends to room.
func randomSpan(lo, hi, room int, rng *rand.Rand) (int, error) {
	hi = min(hi, room)
	lo = min(lo, hi)
	if hi < RoomMinWidth {
		return 0, fmt.Errorf("%w: only %d cells available", ErrRoomTooSmall, room)
	}
	return lo + rng.Intn(hi-lo+1), nil
}

// RoomSource says what PutRoom should place: an existing room, or a
// request for a random one.
type RoomSource struct {
	room   *Room
	random *RoomLimits
}

// ExistingRoom places r as is.
func ExistingRoom(r *Room) RoomSource {
	return RoomSource{room: r}
}

// RandomRoom asks for a room sized within limits.
func RandomRoom(limits RoomLimits) RoomSource {
	return RoomSource{random: &limits}
}
