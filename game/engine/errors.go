package engine

import "errors"

var (
	// ErrInvariantViolation is returned when an operation's precondition does
	// not hold, such as spawning a tile on a full grid.
	ErrInvariantViolation = errors.New("invariant violation")

	// ErrInvalidDirection is returned for a direction outside Up/Down/Left/Right.
	ErrInvalidDirection = errors.New("invalid direction")

	// ErrInvalidTile is returned when a grid holds a value that is not 0 or a power of two >= 2.
	ErrInvalidTile = errors.New("invalid tile value")
)
