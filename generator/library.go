package generator

import (
	"errors"
	"fmt"
	"iter"
	"slices"
	"sync"

	"github.com/kamstrup/intmap"
	"github.com/plus3/pentis/grid"
	"github.com/plus3/pentis/piece"
)

var (
	ErrInvalidSize   = errors.New("invalid piece size")
	ErrShapeTooLarge = errors.New("piece size exceeds shape limit")
)

// Library is the immutable set of canonically distinct shapes of one size.
// It is safe for concurrent use.
type Library struct {
	size   int
	shapes []piece.Shape
	index  *intmap.Map[piece.Shape, int]
}

// libraries caches one lazily built Library per size for the process lifetime.
var libraries sync.Map

// LibraryOf returns the shared library of all connected shapes with size
// cells, distinct up to translation and rotation. The first call for a size
// builds it; later calls return the same value.
func LibraryOf(size int) (*Library, error) {
	switch {
	case size < 1:
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	case size > piece.MaxShapeCells:
		return nil, fmt.Errorf("%w: %d > %d", ErrShapeTooLarge, size, piece.MaxShapeCells)
	}

	build, _ := libraries.LoadOrStore(size, sync.OnceValues(func() (*Library, error) {
		return buildLibrary(size)
	}))
	return build.(func() (*Library, error))()
}

// buildLibrary grows shapes from a single cell placed in the middle of a
// (2*size-1) square scratch grid, which is large enough that no growth path
// is cut off by an edge.
func buildLibrary(size int) (*Library, error) {
	side := 2*size - 1
	scratch, err := grid.NewExtent(side, side)
	if err != nil {
		return nil, err
	}
	seed, err := piece.FromPoints(scratch, grid.Vector{X: size - 1, Y: size - 1})
	if err != nil {
		return nil, err
	}

	pieces := []*piece.Piece{seed}
	for n := 1; n < size; n++ {
		pieces = ExtendLibrary(pieces)
	}

	shapes := make([]piece.Shape, len(pieces))
	for i, p := range pieces {
		shapes[i] = p.Shape()
	}
	return NewLibrary(shapes...)
}

// NewLibrary builds a library from explicit shapes. All shapes must have the
// same number of cells; duplicates are dropped. Shapes are kept in ascending
// canonical order so index-based selection is reproducible.
func NewLibrary(shapes ...piece.Shape) (*Library, error) {
	if len(shapes) == 0 {
		return nil, ErrEmptyLibrary
	}

	l := &Library{
		size:  shapes[0].Len(),
		index: intmap.New[piece.Shape, int](len(shapes)),
	}
	sorted := slices.Clone(shapes)
	slices.Sort(sorted)
	for _, s := range slices.Compact(sorted) {
		if s.Len() != l.size {
			return nil, fmt.Errorf("%w: mixed shape sizes %d and %d", ErrInvalidSize, l.size, s.Len())
		}
		l.index.Put(s, len(l.shapes))
		l.shapes = append(l.shapes, s)
	}
	return l, nil
}

// Size returns the number of cells of every shape in the library.
func (l *Library) Size() int {
	return l.size
}

// Len returns the number of distinct shapes.
func (l *Library) Len() int {
	return len(l.shapes)
}

// Shape returns the i-th shape.
func (l *Library) Shape(i int) piece.Shape {
	return l.shapes[i]
}

// Shapes returns a copy of the shapes.
func (l *Library) Shapes() []piece.Shape {
	return slices.Clone(l.shapes)
}

// Index returns the position of s, or false if s is not in the library.
func (l *Library) Index(s piece.Shape) (int, bool) {
	return l.index.Get(s)
}

// Contains reports whether p is congruent to a library shape.
func (l *Library) Contains(p *piece.Piece) bool {
	return l.index.Has(p.Shape())
}

// All iterates over the shapes in library order.
func (l *Library) All() iter.Seq2[int, piece.Shape] {
	return func(yield func(int, piece.Shape) bool) {
		for i, s := range l.shapes {
			if !yield(i, s) {
				return
			}
		}
	}
}
