package world

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/cespare/xxhash/v2"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/zyedidia/generic/mapset"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/meiro/internal/autotile"
	"github.com/samdwyer/meiro/internal/grid"
	"github.com/samdwyer/meiro/internal/render"
	"github.com/samdwyer/meiro/internal/telemetry"
	"github.com/samdwyer/meiro/internal/tile"
)

// TrySeparateLimit caps the rounds SeparateBlocks may run before giving up.
const TrySeparateLimit = 1_000_000

// Floor is one generated dungeon level. It owns the partition tree and the
// tile grid baked from it.
type Floor struct {
	id     uuid.UUID
	seed   int64
	width  int
	height int

	limits   RoomLimits
	registry *tile.Registry

	root  *Block
	raw   *grid.Grid[tile.Tile]
	tiles *grid.Grid[tile.Tile]
	mode  autotile.Mode

	separateLimit int
}

// NewFloor creates a wall-filled floor with a single unsplit root block.
func NewFloor(width, height int, limits RoomLimits, registry *tile.Registry) (*Floor, error) {
	if err := validateFloorSize(width, height); err != nil {
		return nil, err
	}
	if err := limits.validate(); err != nil {
		return nil, err
	}
	if registry == nil {
		return nil, fmt.Errorf("%w: nil tile registry", ErrInvalidConfig)
	}

	f := &Floor{
		width:         width,
		height:        height,
		limits:        limits,
		registry:      registry,
		separateLimit: TrySeparateLimit,
	}
	f.root = NewBlock(f, 0, 0, width, height, nil)
	f.raw = grid.New(width, height, registry.New(tile.Wall))
	f.tiles = f.raw.Clone()
	return f, nil
}

// ID returns the floor identifier. It is drawn from the generator during
// Generate, so a fixed seed yields a fixed ID.
func (f *Floor) ID() uuid.UUID { return f.id }

// Seed returns the seed the floor was generated from, if it was recorded.
func (f *Floor) Seed() int64 { return f.seed }

// Width returns the floor width.
func (f *Floor) Width() int { return f.width }

// Height returns the floor height.
func (f *Floor) Height() int { return f.height }

// Root returns the root block.
func (f *Floor) Root() *Block { return f.root }

// Mode returns the classification currently applied to the grid.
func (f *Floor) Mode() autotile.Mode { return f.mode }

// Grid returns the classified tile grid.
func (f *Floor) Grid() *grid.Grid[tile.Tile] { return f.tiles }

// Raw returns the baked grid before classification.
func (f *Floor) Raw() *grid.Grid[tile.Tile] { return f.raw }

// At returns the classified tile at (x, y).
func (f *Floor) At(x, y int) (tile.Tile, bool) { return f.tiles.At(x, y) }

// Blocks returns every leaf block.
func (f *Floor) Blocks() []*Block { return f.root.Flatten() }

// Rooms returns the rooms of every leaf block that hosts one.
func (f *Floor) Rooms() []*Room {
	var rooms []*Room
	for _, b := range f.root.Flatten() {
		if b.room != nil {
			rooms = append(rooms, b.room)
		}
	}
	return rooms
}

// BlockAt returns the leaf containing (x, y). Cells on a partition or
// outside the floor belong to no leaf.
func (f *Floor) BlockAt(x, y int) *Block {
	node := f.root
	if !node.Contains(x, y) {
		return nil
	}
	for node.Separated() {
		switch {
		case node.upperLeft.Contains(x, y):
			node = node.upperLeft
		case node.lowerRight.Contains(x, y):
			node = node.lowerRight
		default:
			return nil
		}
	}
	return node
}

// Generate splits the floor into between minRooms and maxRooms leaves,
// puts a room in each, connects them and bakes the grid.
func (f *Floor) Generate(ctx context.Context, minRooms, maxRooms int, factor float64, rng *rand.Rand) error {
	tracer := telemetry.Tracer("world")
	ctx, span := tracer.Start(ctx, "floor.generate")
	defer span.End()

	id, err := uuid.NewRandomFromReader(rng)
	if err != nil {
		return fmt.Errorf("floor id: %w", err)
	}
	f.id = id

	if err := f.SeparateBlocks(ctx, minRooms, maxRooms, factor, rng); err != nil {
		span.RecordError(err)
		return err
	}
	if err := f.PlaceRooms(rng); err != nil {
		span.RecordError(err)
		return err
	}
	if err := f.ConnectRooms(ctx, rng); err != nil {
		span.RecordError(err)
		return err
	}
	f.Bake()

	span.SetAttributes(
		attribute.String("floor.id", f.id.String()),
		attribute.Int("floor.width", f.width),
		attribute.Int("floor.height", f.height),
		attribute.Int("floor.blocks", len(f.Blocks())),
		attribute.Int("floor.rooms", len(f.Rooms())),
	)
	log.FromContext(ctx).Debug("floor generated",
		"id", f.id, "blocks", len(f.Blocks()), "rooms", len(f.Rooms()))
	return nil
}

// SeparateBlocks grows the partition tree one generation per round until
// the leaf count lies in [minRooms, maxRooms]. A round that overshoots
// maxRooms is undone and retried; a finished tree still short of minRooms
// retries its last round.
func (f *Floor) SeparateBlocks(ctx context.Context, minRooms, maxRooms int, factor float64, rng *rand.Rand) error {
	tracer := telemetry.Tracer("world")
	ctx, span := tracer.Start(ctx, "floor.separate_blocks")
	defer span.End()
	logger := log.FromContext(ctx)

	frontier := []*Block{f.root}
	rounds, rollbacks, retries := 0, 0, 0
	for len(frontier) > 0 {
		rounds++
		if rounds > f.separateLimit {
			err := fmt.Errorf("%w: separate blocks: %d..%d leaves not reached after %d rounds",
				ErrGenerationFailed, minRooms, maxRooms, f.separateLimit)
			span.RecordError(err)
			return err
		}

		var split, next []*Block
		for _, b := range frontier {
			if b.Separatable() && doSeparate(b, factor, rng) {
				b.Separate()
				split = append(split, b)
				next = append(next, b.upperLeft, b.lowerRight)
			}
		}

		leaves := len(f.root.Flatten())
		switch {
		case leaves > maxRooms:
			for _, b := range split {
				b.Unify()
			}
			rollbacks++
		case len(next) == 0 && leaves < minRooms:
			retries++
		default:
			frontier = next
		}
	}

	leaves := len(f.root.Flatten())
	span.SetAttributes(
		attribute.Int("separate.rounds", rounds),
		attribute.Int("separate.rollbacks", rollbacks),
		attribute.Int("separate.retries", retries),
		attribute.Int("separate.leaves", leaves),
	)
	logger.Debug("blocks separated", "leaves", leaves, "rounds", rounds,
		"rollbacks", rollbacks, "retries", retries)
	return nil
}

// doSeparate decides whether b splits this round. Deeper blocks are less
// likely to split; a larger factor offsets the depth.
func doSeparate(b *Block, factor float64, rng *rand.Rand) bool {
	return float64(b.Generation())/factor < float64(rng.Intn(10))
}

// PlaceRooms puts a random room in every empty leaf.
func (f *Floor) PlaceRooms(rng *rand.Rand) error {
	for _, b := range f.root.Flatten() {
		if _, err := b.PutRoom(RandomRoom(f.limits), rng); err != nil {
			return fmt.Errorf("place rooms: %w", err)
		}
	}
	return nil
}

// ConnectRooms routes corridors from every room to its neighbors.
func (f *Floor) ConnectRooms(ctx context.Context, rng *rand.Rand) error {
	tracer := telemetry.Tracer("world")
	ctx, span := tracer.Start(ctx, "floor.connect_rooms")
	defer span.End()

	rooms := f.Rooms()
	for _, r := range rooms {
		if err := r.CreatePassage(rng); err != nil {
			span.RecordError(err)
			return fmt.Errorf("connect rooms: %w", err)
		}
	}

	gates := 0
	for _, r := range rooms {
		gates += len(r.gates)
	}
	span.SetAttributes(
		attribute.Int("connect.rooms", len(rooms)),
		attribute.Int("connect.gates", gates),
	)
	log.FromContext(ctx).Debug("rooms connected", "rooms", len(rooms), "gates", gates)
	return nil
}

// Bake redraws the raw grid from the rooms and their corridors and resets
// the classification to ModeNone.
func (f *Floor) Bake() {
	f.raw = grid.New(f.width, f.height, f.registry.New(tile.Wall))

	rooms := f.Rooms()
	for _, r := range rooms {
		r.EachCoordinate(func(x, y int) {
			f.raw.Set(x, y, f.registry.New(tile.Floor))
		})
	}
	for _, r := range rooms {
		for _, p := range r.passages {
			for _, c := range p.Cells() {
				if t, ok := f.raw.At(c.X, c.Y); ok && t.Kind != tile.Floor {
					f.raw.Set(c.X, c.Y, f.registry.New(tile.Corridor))
				}
			}
		}
	}
	for _, r := range rooms {
		for _, g := range r.gates {
			f.raw.Set(g.X, g.Y, f.registry.New(tile.Gate))
		}
	}

	f.tiles = f.raw.Clone()
	f.mode = autotile.ModeNone
}

// Classify re-derives the tile grid from the raw grid with the given mode.
// It can be called any number of times.
func (f *Floor) Classify(ctx context.Context, mode autotile.Mode) error {
	tracer := telemetry.Tracer("world")
	_, span := tracer.Start(ctx, "floor.classify")
	defer span.End()
	span.SetAttributes(attribute.String("classify.mode", mode.String()))

	if mode == autotile.ModeNone {
		f.tiles = f.raw.Clone()
		f.mode = mode
		return nil
	}
	c := autotile.New(mode, f.registry)
	if c == nil {
		return fmt.Errorf("classify: unknown mode %d", int(mode))
	}
	f.tiles = autotile.Apply(f.raw, c)
	f.mode = mode
	return nil
}

// Connected reports whether every room can reach every other room through
// the recorded connections.
func (f *Floor) Connected() bool {
	rooms := f.Rooms()
	if len(rooms) == 0 {
		return true
	}

	seen := mapset.New[*Room]()
	seen.Put(rooms[0])
	queue := []*Room{rooms[0]}
	for len(queue) > 0 {
		r := queue[0]
		queue = queue[1:]
		for _, c := range r.connections {
			if !seen.Has(c) {
				seen.Put(c)
				queue = append(queue, c)
			}
		}
	}
	return seen.Size() == len(rooms)
}

// String renders the classified grid one row per line.
func (f *Floor) String() string {
	return render.Text(f)
}

// Fingerprint returns a hash of the rendered grid. Floors generated from
// the same seed and configuration share a fingerprint.
func (f *Floor) Fingerprint() uint64 {
	return xxhash.Sum64String(f.String())
}
