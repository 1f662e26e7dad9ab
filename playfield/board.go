package playfield

import (
	"errors"
	"fmt"

	"github.com/kamstrup/intmap"
	"github.com/plus3/pentis/grid"
	"github.com/plus3/pentis/piece"
)

var ErrOccupied = errors.New("cell already occupied")

// Board is the collision map of the settled blocks. It is a singleton kept in
// step with the Settled entities: locks mark it directly and CollisionSystem
// rebuilds it after line clears.
type Board struct {
	extent   grid.Extent
	occupied *intmap.Set[grid.Key]
}

func NewBoard(extent grid.Extent) *Board {
	return &Board{
		extent:   extent,
		occupied: intmap.NewSet[grid.Key](extent.Area()),
	}
}

func (b *Board) Extent() grid.Extent {
	return b.extent
}

// Len returns the number of occupied cells.
func (b *Board) Len() int {
	return b.occupied.Len()
}

func (b *Board) Occupied(c grid.Coordinates) bool {
	return b.occupied.Has(c.Key())
}

// Collides reports whether any square of p overlaps a settled block.
func (b *Board) Collides(p *piece.Piece) bool {
	for _, c := range p.Coordinates() {
		if b.Occupied(c) {
			return true
		}
	}
	return false
}

// Mark records c as occupied.
func (b *Board) Mark(c grid.Coordinates) error {
	if !b.occupied.Add(c.Key()) {
		return fmt.Errorf("mark %s: %w", c, ErrOccupied)
	}
	return nil
}

// RowCount returns the number of occupied cells in row y.
func (b *Board) RowCount(y int) int {
	n := 0
	for c := range b.extent.Row(y) {
		if b.Occupied(c) {
			n++
		}
	}
	return n
}

// FullRows returns the completely filled rows, bottom first.
func (b *Board) FullRows() []int {
	var rows []int
	for y := 0; y < b.extent.Height; y++ {
		if b.RowCount(y) == b.extent.Width {
			rows = append(rows, y)
		}
	}
	return rows
}

// StackHeight returns one more than the highest occupied row, or 0 when empty.
func (b *Board) StackHeight() int {
	for y := b.extent.Height - 1; y >= 0; y-- {
		if b.RowCount(y) > 0 {
			return y + 1
		}
	}
	return 0
}

func (b *Board) Reset() {
	b.occupied.Clear()
}
