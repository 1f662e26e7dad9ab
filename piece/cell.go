package piece

import "github.com/plus3/pentis/grid"

// Cell is anything occupying exactly one grid position. Equality between
// cells depends only on their coordinates, never on flavor or identity.
type Cell interface {
	Coordinates() grid.Coordinates
}

// cell is the geometry shared by Square and Block.
type cell struct {
	pos grid.Coordinates
}

func (c *cell) Coordinates() grid.Coordinates {
	return c.pos
}

// MoveBy translates the cell in place. On failure the cell is unchanged.
func (c *cell) MoveBy(v grid.Vector) error {
	next, err := c.pos.Add(v)
	if err != nil {
		return err
	}
	c.pos = next
	return nil
}

// Rotate turns the cell 90° clockwise about center. On failure the cell is unchanged.
func (c *cell) Rotate(center grid.Coordinates) error {
	next, err := c.pos.RotateAbout(center)
	if err != nil {
		return err
	}
	c.pos = next
	return nil
}

// Equal reports whether o occupies the same position.
func (c *cell) Equal(o Cell) bool {
	return o != nil && c.pos.Equal(o.Coordinates())
}

// Key returns the packed position, suitable for set membership.
func (c *cell) Key() grid.Key {
	return c.pos.Key()
}

func (c *cell) String() string {
	return c.pos.String()
}

// Square is a free-floating cell belonging to a falling piece.
type Square struct {
	cell
}

// NewSquare creates a square at (x, y) on ext.
func NewSquare(ext grid.Extent, x, y int) (*Square, error) {
	pos, err := ext.At(x, y)
	if err != nil {
		return nil, err
	}
	return &Square{cell{pos: pos}}, nil
}

// SquareAt creates a square at an already validated position.
func SquareAt(pos grid.Coordinates) *Square {
	return &Square{cell{pos: pos}}
}

func (s *Square) Copy() *Square {
	return &Square{cell{pos: s.pos}}
}

// Settle converts the square into a board-permanent block at the same position.
func (s *Square) Settle() *Block {
	return &Block{cell{pos: s.pos}}
}

// Block is a settled cell that is part of the board.
type Block struct {
	cell
}

// NewBlock creates a block at (x, y) on ext.
func NewBlock(ext grid.Extent, x, y int) (*Block, error) {
	pos, err := ext.At(x, y)
	if err != nil {
		return nil, err
	}
	return &Block{cell{pos: pos}}, nil
}

func (b *Block) Copy() *Block {
	return &Block{cell{pos: b.pos}}
}
