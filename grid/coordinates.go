package grid

import "fmt"

// Vector is an unbounded integer offset. It is the argument to every
// translation and the result of subtracting two coordinates.
type Vector struct {
	X, Y int
}

// Unit vectors. The top row of a grid is Height-1, so Down decreases y.
var (
	Left  = Vector{X: -1}
	Right = Vector{X: 1}
	Down  = Vector{Y: -1}
	Up    = Vector{Y: 1}
)

var directions = [4]Vector{Up, Right, Down, Left}

// Add returns the componentwise sum.
func (v Vector) Add(o Vector) Vector {
	return Vector{X: v.X + o.X, Y: v.Y + o.Y}
}

// Neg returns the opposite vector.
func (v Vector) Neg() Vector {
	return Vector{X: -v.X, Y: -v.Y}
}

// RotateCW rotates the vector 90° clockwise about the origin: (x, y) -> (y, -x).
func (v Vector) RotateCW() Vector {
	return Vector{X: v.Y, Y: -v.X}
}

func (v Vector) String() string {
	return fmt.Sprintf("<%d,%d>", v.X, v.Y)
}

// Key packs a coordinate into an integer usable as a map or set key.
type Key uint64

// Coordinates is a position that is always inside its Extent. Values are
// immutable; every operation that moves a position returns a new, validated value.
type Coordinates struct {
	x, y   int
	extent Extent
}

func (c Coordinates) X() int { return c.x }

func (c Coordinates) Y() int { return c.y }

// Extent returns the grid the coordinates were validated against.
func (c Coordinates) Extent() Extent { return c.extent }

// Vector returns the coordinates as an offset from the origin.
func (c Coordinates) Vector() Vector {
	return Vector{X: c.x, Y: c.y}
}

// Add translates by v. It fails if the result leaves the grid.
func (c Coordinates) Add(v Vector) (Coordinates, error) {
	return c.extent.At(c.x+v.X, c.y+v.Y)
}

// Sub translates by -v. It fails if the result leaves the grid.
func (c Coordinates) Sub(v Vector) (Coordinates, error) {
	return c.extent.At(c.x-v.X, c.y-v.Y)
}

// Delta returns c - o as an unbounded vector.
func (c Coordinates) Delta(o Coordinates) Vector {
	return Vector{X: c.x - o.x, Y: c.y - o.y}
}

// RotateAbout rotates c 90° clockwise around center.
func (c Coordinates) RotateAbout(center Coordinates) (Coordinates, error) {
	return center.Add(c.Delta(center).RotateCW())
}

// Equal compares positions only.
func (c Coordinates) Equal(o Coordinates) bool {
	return c.x == o.x && c.y == o.y
}

// IsNeighbour reports whether o is orthogonally adjacent to c.
func (c Coordinates) IsNeighbour(o Coordinates) bool {
	dx, dy := c.x-o.x, c.y-o.y
	return dx*dx+dy*dy == 1
}

// Neighbours returns the orthogonally adjacent coordinates that are inside
// the grid: 4 in the interior, 3 on an edge, 2 in a corner.
func (c Coordinates) Neighbours() []Coordinates {
	out := make([]Coordinates, 0, len(directions))
	for _, d := range directions {
		if n, err := c.Add(d); err == nil {
			out = append(out, n)
		}
	}
	return out
}

// Key packs the position into a Key. Two coordinates on the same grid have
// equal keys iff they are Equal.
func (c Coordinates) Key() Key {
	return Key(uint64(uint32(c.x))<<32 | uint64(uint32(c.y)))
}

func (c Coordinates) String() string {
	return fmt.Sprintf("(%d,%d)", c.x, c.y)
}
