package world

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfig is returned when generation parameters are out of range.
	ErrInvalidConfig = errors.New("invalid config")
	// ErrGenerationFailed is returned when a retry loop hits its ceiling.
	ErrGenerationFailed = errors.New("generation failed")
	// ErrNotAttached is returned by room operations that need a block.
	ErrNotAttached = errors.New("room is not attached to a block")
	// ErrRoomTooSmall is returned when a room is smaller than the minimum size.
	ErrRoomTooSmall = errors.New("room is too small")
	// ErrNoSharedPartition is returned when two rooms have no common
	// ancestor block to route a corridor across.
	ErrNoSharedPartition = errors.New("rooms share no partition")
)

// CoordinateError reports a relative room coordinate outside the range
// its block allows.
type CoordinateError struct {
	Axis  string // "x" or "y"
	Value int
	Min   int
	Max   int
}

func (e *CoordinateError) Error() string {
	return fmt.Sprintf("could not set relative %s-coordinate [%d] in this block: valid range is %d..%d",
		e.Axis, e.Value, e.Min, e.Max)
}
