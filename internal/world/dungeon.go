// Package world generates dungeon floors: a partition tree of blocks, one
// room per leaf, corridors between neighboring rooms, and the tile grid
// baked from them.
package world

import (
	"context"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/meiro/internal/telemetry"
	"github.com/samdwyer/meiro/internal/tile"
)

// Dungeon builds floors from a validated configuration.
type Dungeon struct {
	cfg      Config
	registry *tile.Registry
}

// NewDungeon validates cfg and returns a dungeon that builds floors from it.
// A nil registry selects the embedded default palette.
func NewDungeon(cfg Config, registry *tile.Registry) (*Dungeon, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if registry == nil {
		r, err := tile.DefaultRegistry()
		if err != nil {
			return nil, err
		}
		registry = r
	}
	return &Dungeon{cfg: cfg, registry: registry}, nil
}

// Config returns the dungeon's configuration.
func (d *Dungeon) Config() Config { return d.cfg }

// CreateFloor returns an empty wall-filled floor of the configured size.
func (d *Dungeon) CreateFloor() (*Floor, error) {
	return NewFloor(d.cfg.Width, d.cfg.Height, d.cfg.RoomLimits(), d.registry)
}

// GenerateFloor builds a complete floor. The generator is seeded from the
// configured seed, or from the clock when the seed is 0; the seed used is
// available through Floor.Seed.
func (d *Dungeon) GenerateFloor(ctx context.Context) (*Floor, error) {
	seed := d.cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return d.GenerateFloorSeed(ctx, seed)
}

// GenerateFloorSeed builds a complete floor from the given seed, ignoring
// the configured one.
func (d *Dungeon) GenerateFloorSeed(ctx context.Context, seed int64) (*Floor, error) {
	f, err := d.GenerateFloorWith(ctx, rand.New(rand.NewSource(seed)))
	if err != nil {
		return nil, err
	}
	f.seed = seed
	return f, nil
}

// GenerateFloorWith builds a complete floor drawing from rng.
func (d *Dungeon) GenerateFloorWith(ctx context.Context, rng *rand.Rand) (*Floor, error) {
	tracer := telemetry.Tracer("world")
	ctx, span := tracer.Start(ctx, "dungeon.generate_floor")
	defer span.End()

	startTime := time.Now()

	f, err := d.CreateFloor()
	if err != nil {
		return nil, err
	}
	if err := f.Generate(ctx, d.cfg.MinRoomNumber, d.cfg.MaxRoomNumber, d.cfg.BlockSplitFactor, rng); err != nil {
		span.RecordError(err)
		return nil, err
	}

	mode, err := d.cfg.Mode()
	if err != nil {
		return nil, err
	}
	if err := f.Classify(ctx, mode); err != nil {
		return nil, err
	}

	span.SetAttributes(
		attribute.String("floor.id", f.ID().String()),
		attribute.Int64("floor.fingerprint", int64(f.Fingerprint())),
		attribute.String("classify.mode", mode.String()),
		attribute.Int64("generation.duration_ms", time.Since(startTime).Milliseconds()),
	)
	log.FromContext(ctx).Debug("dungeon floor ready", "mode", mode, "elapsed", time.Since(startTime))
	return f, nil
}
