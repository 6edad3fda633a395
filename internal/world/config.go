package world

import (
	"fmt"

	"github.com/samdwyer/meiro/internal/autotile"
)

const (
	// FloorMinWidth is the smallest floor width accepted.
	FloorMinWidth = 5
	// FloorMinHeight is the smallest floor height accepted.
	FloorMinHeight = FloorMinWidth
	// RoomMinWidth is the smallest room width accepted.
	RoomMinWidth = 3
	// RoomMinHeight is the smallest room height accepted.
	RoomMinHeight = RoomMinWidth
)

// Config holds dungeon generation options.
type Config struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`

	MinRoomNumber int `toml:"min_room_number"`
	MaxRoomNumber int `toml:"max_room_number"`

	MinRoomWidth  int `toml:"min_room_width"`
	MinRoomHeight int `toml:"min_room_height"`
	MaxRoomWidth  int `toml:"max_room_width"`
	MaxRoomHeight int `toml:"max_room_height"`

	// BlockSplitFactor scales how eagerly blocks keep splitting. Higher
	// values produce more, smaller blocks.
	BlockSplitFactor float64 `toml:"block_split_factor"`

	// Seed for random number generation. Used for reproducible dungeon generation.
	// A seed of 0 means a random seed will be generated.
	Seed int64 `toml:"seed"`

	// Classify names the autotile mode applied after generation.
	Classify string `toml:"classify"`
}

// DefaultConfig returns the stock 60x40 configuration.
func DefaultConfig() Config {
	return Config{
		Width:            60,
		Height:           40,
		MinRoomNumber:    1,
		MaxRoomNumber:    6,
		MinRoomWidth:     8,
		MinRoomHeight:    6,
		MaxRoomWidth:     20,
		MaxRoomHeight:    20,
		BlockSplitFactor: 1.0,
		Classify:         autotile.ModeRogueLike.String(),
	}
}

// RoomLimits returns the configured room size range.
func (c Config) RoomLimits() RoomLimits {
	return RoomLimits{
		MinWidth:  c.MinRoomWidth,
		MinHeight: c.MinRoomHeight,
		MaxWidth:  c.MaxRoomWidth,
		MaxHeight: c.MaxRoomHeight,
	}
}

// Mode returns the parsed classify mode.
func (c Config) Mode() (autotile.Mode, error) {
	if c.Classify == "" {
		return autotile.ModeNone, nil
	}
	return autotile.ParseMode(c.Classify)
}

// Validate checks every option and reports the first one out of range.
func (c Config) Validate() error {
	if err := validateFloorSize(c.Width, c.Height); err != nil {
		return err
	}
	if c.MinRoomNumber <= 0 {
		return invalid("min_room_number", c.MinRoomNumber, "must be > 0")
	}
	if c.MaxRoomNumber < c.MinRoomNumber {
		return invalid("max_room_number", c.MaxRoomNumber, fmt.Sprintf("must be >= min_room_number (%d)", c.MinRoomNumber))
	}
	if err := c.RoomLimits().validate(); err != nil {
		return err
	}
	if c.BlockSplitFactor <= 0 {
		return invalid("block_split_factor", c.BlockSplitFactor, "must be > 0")
	}
	if _, err := c.Mode(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// RoomLimits bounds the size of randomly generated rooms.
type RoomLimits struct {
	MinWidth, MinHeight int
	MaxWidth, MaxHeight int
}

func (l RoomLimits) validate() error {
	if l.MinWidth < RoomMinWidth {
		return invalid("min_room_width", l.MinWidth, fmt.Sprintf("must be >= %d", RoomMinWidth))
	}
	if l.MinHeight < RoomMinHeight {
		return invalid("min_room_height", l.MinHeight, fmt.Sprintf("must be >= %d", RoomMinHeight))
	}
	if l.MaxWidth < l.MinWidth {
		return invalid("max_room_width", l.MaxWidth, fmt.Sprintf("must be >= min_room_width (%d)", l.MinWidth))
	}
	if l.MaxHeight < l.MinHeight {
		return invalid("max_room_height", l.MaxHeight, fmt.Sprintf("must be >= min_room_height (%d)", l.MinHeight))
	}
	return nil
}

func validateFloorSize(width, height int) error {
	if width < FloorMinWidth {
		return invalid("width", width, fmt.Sprintf("must be >= %d", FloorMinWidth))
	}
	if height < FloorMinHeight {
		return invalid("height", height, fmt.Sprintf("must be >= %d", FloorMinHeight))
	}
	return nil
}

func invalid(key string, value any, reason string) error {
	return fmt.Errorf("%w: %s = %v %s", ErrInvalidConfig, key, value, reason)
}
