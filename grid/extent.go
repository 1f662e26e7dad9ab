package grid

import (
	"fmt"
	"iter"
)

// Extent is the width and height that bounds every Coordinates value.
// The zero Extent is unset: no coordinate can be built against it.
type Extent struct {
	Width  int
	Height int
}

// NewExtent returns an Extent of the given size. Both sides must be positive.
func NewExtent(width, height int) (Extent, error) {
	if width <= 0 || height <= 0 {
		return Extent{}, fmt.Errorf("invalid grid extent %dx%d", width, height)
	}
	return Extent{Width: width, Height: height}, nil
}

// MustExtent is like NewExtent but panics on invalid sizes.
func MustExtent(width, height int) Extent {
	e, err := NewExtent(width, height)
	if err != nil {
		panic(err)
	}
	return e
}

// IsZero reports whether the extent has not been configured.
func (e Extent) IsZero() bool {
	return e.Width <= 0 || e.Height <= 0
}

// Contains reports whether (x, y) lies inside the extent.
func (e Extent) Contains(x, y int) bool {
	return x >= 0 && x < e.Width && y >= 0 && y < e.Height
}

// At returns the coordinates (x, y) validated against the extent.
func (e Extent) At(x, y int) (Coordinates, error) {
	if e.IsZero() {
		return Coordinates{}, ErrUninitializedGrid
	}
	if !e.Contains(x, y) {
		return Coordinates{}, &BoundsError{X: x, Y: y, Extent: e}
	}
	return Coordinates{x: x, y: y, extent: e}, nil
}

// MustAt is like At but panics if the position is invalid.
func (e Extent) MustAt(x, y int) Coordinates {
	c, err := e.At(x, y)
	if err != nil {
		panic(err)
	}
	return c
}

// Area returns the number of cells in the extent.
func (e Extent) Area() int {
	if e.IsZero() {
		return 0
	}
	return e.Width * e.Height
}

// Row iterates over the coordinates of row y from left to right.
// Rows outside the extent yield nothing.
func (e Extent) Row(y int) iter.Seq[Coordinates] {
	return func(yield func(Coordinates) bool) {
		if e.IsZero() || y < 0 || y >= e.Height {
			return
		}
		for x := 0; x < e.Width; x++ {
			if !yield(Coordinates{x: x, y: y, extent: e}) {
				return
			}
		}
	}
}

func (e Extent) String() string {
	return fmt.Sprintf("%dx%d", e.Width, e.Height)
}
