package piece

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kamstrup/intmap"
	"github.com/plus3/pentis/grid"
)

var (
	ErrEmptyPiece    = errors.New("piece has no cells")
	ErrTooManyCells  = errors.New("piece exceeds maximum cell count")
	ErrDuplicateCell = errors.New("piece has duplicate cells")
	ErrDisconnected  = errors.New("piece cells are not connected")
	ErrMixedExtents  = errors.New("piece cells belong to different grids")
)

// Piece is a connected set of distinct squares that falls as one unit.
// A Piece is not safe for concurrent mutation; callers serialize access.
type Piece struct {
	extent  grid.Extent
	squares []*Square
	center  grid.Coordinates
}

// New creates a piece from the given positions. The positions must be
// distinct, connected, share one extent and number at most MaxShapeCells.
func New(coords ...grid.Coordinates) (*Piece, error) {
	if err := validate(coords); err != nil {
		return nil, err
	}

	p := &Piece{
		extent:  coords[0].Extent(),
		squares: make([]*Square, len(coords)),
	}
	for i, c := range coords {
		p.squares[i] = SquareAt(c)
	}
	p.center = centroid(coords)
	return p, nil
}

// FromPoints creates a piece on ext with one square at each point.
func FromPoints(ext grid.Extent, points ...grid.Vector) (*Piece, error) {
	coords := make([]grid.Coordinates, len(points))
	for i, pt := range points {
		c, err := ext.At(pt.X, pt.Y)
		if err != nil {
			return nil, err
		}
		coords[i] = c
	}
	return New(coords...)
}

func validate(coords []grid.Coordinates) error {
	if len(coords) == 0 {
		return ErrEmptyPiece
	}
	if len(coords) > MaxShapeCells {
		return fmt.Errorf("%w: %d > %d", ErrTooManyCells, len(coords), MaxShapeCells)
	}

	ext := coords[0].Extent()
	members := intmap.NewSet[grid.Key](len(coords))
	for _, c := range coords {
		if c.Extent() != ext {
			return ErrMixedExtents
		}
		if !members.Add(c.Key()) {
			return fmt.Errorf("%w: %s", ErrDuplicateCell, c)
		}
	}

	visited := intmap.NewSet[grid.Key](len(coords))
	visited.Add(coords[0].Key())
	stack := []grid.Coordinates{coords[0]}
	for len(stack) > 0 {
		c := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, n := range c.Neighbours() {
			if members.Has(n.Key()) && visited.Add(n.Key()) {
				stack = append(stack, n)
			}
		}
	}
	if visited.Len() != len(coords) {
		return ErrDisconnected
	}
	return nil
}

// CenterOf returns the coordinate of a single cell, or the componentwise
// arithmetic mean of several, rounded toward the floor on each axis.
func CenterOf[C Cell](cells []C) (grid.Coordinates, error) {
	if len(cells) == 0 {
		return grid.Coordinates{}, ErrEmptyPiece
	}
	coords := make([]grid.Coordinates, len(cells))
	for i, c := range cells {
		coords[i] = c.Coordinates()
	}
	return centroid(coords), nil
}

// centroid assumes a non-empty slice of in-bounds coordinates. Coordinates
// are never negative, so integer division is the floor.
func centroid(coords []grid.Coordinates) grid.Coordinates {
	if len(coords) == 1 {
		return coords[0]
	}
	sx, sy := 0, 0
	for _, c := range coords {
		sx += c.X()
		sy += c.Y()
	}
	return coords[0].Extent().MustAt(sx/len(coords), sy/len(coords))
}

// Len returns the number of squares.
func (p *Piece) Len() int {
	return len(p.squares)
}

// Grid returns the extent the piece lives on.
func (p *Piece) Grid() grid.Extent {
	return p.extent
}

// Center returns the floor-rounded mean of the piece's coordinates.
func (p *Piece) Center() grid.Coordinates {
	return p.center
}

// Coordinates returns the current positions in square order.
func (p *Piece) Coordinates() []grid.Coordinates {
	out := make([]grid.Coordinates, len(p.squares))
	for i, s := range p.squares {
		out[i] = s.pos
	}
	return out
}

// Squares returns independent copies of the piece's squares.
func (p *Piece) Squares() []*Square {
	out := make([]*Square, len(p.squares))
	for i, s := range p.squares {
		out[i] = s.Copy()
	}
	return out
}

// Contains reports whether one of the squares sits at c.
func (p *Piece) Contains(c grid.Coordinates) bool {
	for _, s := range p.squares {
		if s.pos.Equal(c) {
			return true
		}
	}
	return false
}

// Cells materializes the piece as settled blocks at its current position.
func (p *Piece) Cells() []*Block {
	out := make([]*Block, len(p.squares))
	for i, s := range p.squares {
		out[i] = s.Settle()
	}
	return out
}

// Span is the per-axis range of a piece's coordinates, inclusive.
type Span struct {
	MinX, MaxX int
	MinY, MaxY int
}

func (s Span) Width() int  { return s.MaxX - s.MinX + 1 }
func (s Span) Height() int { return s.MaxY - s.MinY + 1 }

// Extent returns the minimum and maximum coordinate on each axis.
func (p *Piece) Extent() Span {
	first := p.squares[0].pos
	span := Span{MinX: first.X(), MaxX: first.X(), MinY: first.Y(), MaxY: first.Y()}
	for _, s := range p.squares[1:] {
		span.MinX = min(span.MinX, s.pos.X())
		span.MaxX = max(span.MaxX, s.pos.X())
		span.MinY = min(span.MinY, s.pos.Y())
		span.MaxY = max(span.MaxY, s.pos.Y())
	}
	return span
}

// MoveLeft, MoveRight and MoveDown translate by one cell. Each fails with
// grid.ErrOutOfBounds, leaving the piece unchanged, if any square would
// leave the grid.
func (p *Piece) MoveLeft() error  { return p.MoveBy(grid.Left) }
func (p *Piece) MoveRight() error { return p.MoveBy(grid.Right) }
func (p *Piece) MoveDown() error  { return p.MoveBy(grid.Down) }

// MoveBy translates every square by v, all or nothing.
func (p *Piece) MoveBy(v grid.Vector) error {
	return p.transform(func(c grid.Coordinates) (grid.Coordinates, error) {
		return c.Add(v)
	})
}

// MoveTo translates the piece so its center becomes c, all or nothing.
func (p *Piece) MoveTo(c grid.Coordinates) error {
	return p.MoveBy(c.Delta(p.center))
}

// Rotate turns every square 90° clockwise about the current center. All
// target positions are validated before any square moves.
func (p *Piece) Rotate() error {
	center := p.center
	return p.transform(func(c grid.Coordinates) (grid.Coordinates, error) {
		return c.RotateAbout(center)
	})
}

func (p *Piece) transform(fn func(grid.Coordinates) (grid.Coordinates, error)) error {
	next := make([]grid.Coordinates, len(p.squares))
	for i, s := range p.squares {
		c, err := fn(s.pos)
		if err != nil {
			return err
		}
		next[i] = c
	}
	for i, s := range p.squares {
		s.pos = next[i]
	}
	p.center = centroid(next)
	return nil
}

// Copy returns a deep copy with independent squares.
func (p *Piece) Copy() *Piece {
	cp := &Piece{
		extent:  p.extent,
		squares: make([]*Square, len(p.squares)),
	}
	for i, s := range p.squares {
		cp.squares[i] = s.Copy()
	}
	cp.center = centroid(cp.Coordinates())
	return cp
}

// Shape returns the canonical form used for congruence and hashing.
func (p *Piece) Shape() Shape {
	points := make([]grid.Vector, len(p.squares))
	for i, s := range p.squares {
		points[i] = s.pos.Vector()
	}
	return shapeOf(points)
}

// Equal reports congruence: o can be produced from p by translation and
// quarter turns. Mirror images are not equal.
func (p *Piece) Equal(o *Piece) bool {
	if o == nil || len(p.squares) != len(o.squares) {
		return false
	}
	return p.Shape() == o.Shape()
}

// SameCells reports whether both pieces occupy exactly the same positions.
func (p *Piece) SameCells(o *Piece) bool {
	if o == nil || len(p.squares) != len(o.squares) {
		return false
	}
	for _, s := range o.squares {
		if !p.Contains(s.pos) {
			return false
		}
	}
	return true
}

func (p *Piece) String() string {
	parts := make([]string, len(p.squares))
	for i, s := range p.squares {
		parts[i] = s.pos.String()
	}
	return "Piece{" + strings.Join(parts, " ") + "}"
}
