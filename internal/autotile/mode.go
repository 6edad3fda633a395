package autotile

import (
	"fmt"

	"github.com/samdwyer/meiro/internal/tile"
)

// Mode selects a classifier.
type Mode int

const (
	// ModeNone leaves the raw wall/floor/gate/corridor grid untouched.
	ModeNone Mode = iota
	// ModeRogueLike outlines rooms with directional walls.
	ModeRogueLike
	// ModeDetailed assigns chipped wall variants.
	ModeDetailed
	// ModeBinary reduces the grid to floor and wall.
	ModeBinary
)

// Modes lists every mode in cycling order.
var Modes = []Mode{ModeNone, ModeRogueLike, ModeDetailed, ModeBinary}

// String returns the mode's configuration name.
func (m Mode) String() string {
	switch m {
	case ModeNone:
		return "none"
	case ModeRogueLike:
		return "rogue_like"
	case ModeDetailed:
		return "detailed"
	case ModeBinary:
		return "binary"
	default:
		return "unknown"
	}
}

// Next returns the mode after m, wrapping around.
func (m Mode) Next() Mode {
	for i, mode := range Modes {
		if mode == m {
			return Modes[(i+1)%len(Modes)]
		}
	}
	return ModeNone
}

// ParseMode returns the mode with the given name.
func ParseMode(name string) (Mode, error) {
	for _, m := range Modes {
		if m.String() == name {
			return m, nil
		}
	}
	return ModeNone, fmt.Errorf("unknown classify mode %q (want none, rogue_like, detailed or binary)", name)
}

// New returns the classifier for mode, or nil for ModeNone.
func New(mode Mode, r *tile.Registry) Classifier {
	switch mode {
	case ModeRogueLike:
		return RogueLike{Registry: r}
	case ModeDetailed:
		return Detailed{Registry: r}
	case ModeBinary:
		return Binary{Registry: r}
	default:
		return nil
	}
}
