// Package generator builds the library of distinct piece shapes and spawns
// pieces from it.
package generator

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/plus3/pentis/grid"
	"github.com/plus3/pentis/piece"
)

// PieceSize is the number of squares in a pentis piece.
const PieceSize = 5

var ErrEmptyLibrary = errors.New("piece library is empty")

// Generator spawns pieces onto one grid. A Generator is not safe for
// concurrent use; the library it draws from is.
type Generator struct {
	extent   grid.Extent
	library  *Library
	selector Selector
}

// Option configures a Generator.
type Option func(*Generator)

// WithSelector sets the strategy used to pick library shapes.
func WithSelector(s Selector) Option {
	return func(g *Generator) {
		g.selector = s
	}
}

// WithSeed picks shapes uniformly from a PCG source seeded with seed.
func WithSeed(seed uint64) Option {
	return func(g *Generator) {
		g.selector = NewUniform(NewRand(seed))
	}
}

// WithLibrary uses an existing library instead of requiring CreatePieceLibrary.
func WithLibrary(l *Library) Option {
	return func(g *Generator) {
		g.library = l
	}
}

// New returns a generator spawning onto extent. Without options it picks
// shapes uniformly from a randomly seeded source and has no library yet.
func New(extent grid.Extent, opts ...Option) *Generator {
	g := &Generator{extent: extent}
	for _, opt := range opts {
		opt(g)
	}
	if g.selector == nil {
		g.selector = NewUniform(NewRand(rand.Uint64()))
	}
	return g
}

// Extent returns the grid pieces are spawned onto.
func (g *Generator) Extent() grid.Extent {
	return g.extent
}

// Library returns the current library, or nil before CreatePieceLibrary.
func (g *Generator) Library() *Library {
	return g.library
}

// CreatePieceLibrary loads the shared library of shapes with size cells.
func (g *Generator) CreatePieceLibrary(size int) error {
	l, err := LibraryOf(size)
	if err != nil {
		return err
	}
	g.library = l
	return nil
}

// SpawnColumn is the x coordinate every spawned piece is centred on.
func (g *Generator) SpawnColumn() int {
	return g.extent.Width / 2
}

// MakePiece draws a shape from the library and places it so its center is
// on SpawnColumn and its highest square is on the top row.
func (g *Generator) MakePiece() (*piece.Piece, error) {
	if g.library == nil || g.library.Len() == 0 {
		return nil, ErrEmptyLibrary
	}
	shape := g.library.Shape(g.selector.Next(g.library.Len()))
	return g.spawn(shape)
}

func (g *Generator) spawn(shape piece.Shape) (*piece.Piece, error) {
	p, err := shape.Place(g.extent)
	if err != nil {
		return nil, fmt.Errorf("place shape on %s grid: %w", g.extent, err)
	}

	above := p.Extent().MaxY - p.Center().Y()
	target, err := g.extent.At(g.SpawnColumn(), g.extent.Height-1-above)
	if err != nil {
		return nil, fmt.Errorf("spawn position: %w", err)
	}
	if err := p.MoveTo(target); err != nil {
		return nil, fmt.Errorf("move to spawn %s: %w", target, err)
	}
	return p, nil
}
