package piece

import (
	"fmt"
	"math/bits"
	"slices"
	"strings"

	"github.com/plus3/pentis/grid"
)

// MaxShapeCells bounds the number of cells in a piece. A connected piece of
// at most this many cells fits in a MaxShapeCells square box, which is what
// lets a Shape pack into 64 bits.
const MaxShapeCells = 8

// Shape is the canonical, position-free form of a piece. The cells are
// translated so the bounding box starts at the origin, bit y*MaxShapeCells+x
// is set for each occupied offset, and of the four rotations the one with the
// smallest value is kept. Two pieces are congruent iff their shapes are equal.
type Shape uint64

// shapeOf computes the canonical shape. points must be a connected set of at
// most MaxShapeCells positions.
func shapeOf(points []grid.Vector) Shape {
	rotated := slices.Clone(points)
	var best Shape
	for r := 0; r < 4; r++ {
		if r > 0 {
			for i, p := range rotated {
				rotated[i] = p.RotateCW()
			}
		}
		if s := normalize(rotated); r == 0 || s < best {
			best = s
		}
	}
	return best
}

func normalize(points []grid.Vector) Shape {
	minX, minY := points[0].X, points[0].Y
	for _, p := range points[1:] {
		minX = min(minX, p.X)
		minY = min(minY, p.Y)
	}
	var s Shape
	for _, p := range points {
		x, y := p.X-minX, p.Y-minY
		if x >= MaxShapeCells || y >= MaxShapeCells {
			panic(fmt.Sprintf("shape exceeds %dx%d box", MaxShapeCells, MaxShapeCells))
		}
		s |= 1 << (y*MaxShapeCells + x)
	}
	return s
}

// ParseShape builds a shape from rows of '#' (filled) and '.' (empty),
// top row first. The filled cells must form one connected piece.
func ParseShape(rows ...string) (Shape, error) {
	if len(rows) > MaxShapeCells {
		return 0, fmt.Errorf("%w: %d rows", ErrTooManyCells, len(rows))
	}
	var points []grid.Vector
	for i, row := range rows {
		if len(row) > MaxShapeCells {
			return 0, fmt.Errorf("%w: row %q", ErrTooManyCells, row)
		}
		for x, ch := range row {
			switch ch {
			case '#':
				points = append(points, grid.Vector{X: x, Y: len(rows) - 1 - i})
			case '.', ' ':
			default:
				return 0, fmt.Errorf("invalid shape character %q", ch)
			}
		}
	}
	p, err := FromPoints(grid.MustExtent(MaxShapeCells, MaxShapeCells), points...)
	if err != nil {
		return 0, err
	}
	return p.Shape(), nil
}

// MustParseShape is like ParseShape but panics on error.
func MustParseShape(rows ...string) Shape {
	s, err := ParseShape(rows...)
	if err != nil {
		panic(err)
	}
	return s
}

// Len returns the number of cells.
func (s Shape) Len() int {
	return bits.OnesCount64(uint64(s))
}

// Offsets returns the occupied offsets, bottom row first, left to right.
func (s Shape) Offsets() []grid.Vector {
	out := make([]grid.Vector, 0, s.Len())
	for v := uint64(s); v != 0; v &= v - 1 {
		i := bits.TrailingZeros64(v)
		out = append(out, grid.Vector{X: i % MaxShapeCells, Y: i / MaxShapeCells})
	}
	return out
}

// Size returns the width and height of the bounding box.
func (s Shape) Size() (width, height int) {
	for _, p := range s.Offsets() {
		width = max(width, p.X+1)
		height = max(height, p.Y+1)
	}
	return width, height
}

// Place puts the shape on ext with its bounding box at the origin.
func (s Shape) Place(ext grid.Extent) (*Piece, error) {
	return FromPoints(ext, s.Offsets()...)
}

// String draws the shape with '#' and '.', top row first, one row per line.
func (s Shape) String() string {
	w, h := s.Size()
	var b strings.Builder
	for y := h - 1; y >= 0; y-- {
		for x := 0; x < w; x++ {
			if s&(1<<(y*MaxShapeCells+x)) != 0 {
				b.WriteByte('#')
			} else {
				b.WriteByte('.')
			}
		}
		if y > 0 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
