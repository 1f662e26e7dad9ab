package grid

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfBounds is returned whenever an operation would place a coordinate
	// outside the grid extent.
	ErrOutOfBounds = errors.New("coordinates out of bounds")

	// ErrUninitializedGrid is returned when a coordinate is built against the
	// zero Extent.
	ErrUninitializedGrid = errors.New("grid extent not set")
)

// BoundsError reports the rejected position and the extent it was checked against.
type BoundsError struct {
	X, Y   int
	Extent Extent
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("coordinates (%d,%d) outside %s grid", e.X, e.Y, e.Extent)
}

func (e *BoundsError) Unwrap() error {
	return ErrOutOfBounds
}
