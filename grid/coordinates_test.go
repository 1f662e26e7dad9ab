package grid_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/plus3/pentis/grid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewExtent(t *testing.T) {
	ext, err := grid.NewExtent(10, 5)
	require.NoError(t, err)
	assert.Equal(t, grid.Extent{Width: 10, Height: 5}, ext)
	assert.Equal(t, 50, ext.Area())
	assert.Equal(t, "10x5", ext.String())

	for _, size := range [][2]int{{0, 5}, {10, 0}, {-1, 3}} {
		_, err := grid.NewExtent(size[0], size[1])
		assert.Error(t, err, "size %v", size)
	}
}

func TestCreate(t *testing.T) {
	ext := grid.MustExtent(10, 5)

	c, err := ext.At(2, 4)
	require.NoError(t, err)
	assert.Equal(t, 2, c.X())
	assert.Equal(t, 4, c.Y())
	assert.Equal(t, ext, c.Extent())

	_, err = ext.At(2, 9)
	assert.ErrorIs(t, err, grid.ErrOutOfBounds)

	_, err = ext.At(-2, 2)
	assert.ErrorIs(t, err, grid.ErrOutOfBounds)

	_, err = ext.At(10, 0)
	var bounds *grid.BoundsError
	require.True(t, errors.As(err, &bounds))
	assert.Equal(t, 10, bounds.X)
	assert.Equal(t, 0, bounds.Y)
	assert.Equal(t, ext, bounds.Extent)
}

func TestUninitializedGrid(t *testing.T) {
	var ext grid.Extent
	assert.True(t, ext.IsZero())

	_, err := ext.At(0, 0)
	assert.ErrorIs(t, err, grid.ErrUninitializedGrid)
	assert.NotErrorIs(t, err, grid.ErrOutOfBounds)

	assert.Panics(t, func() { ext.MustAt(0, 0) })
}

func TestNeighbours(t *testing.T) {
	ext := grid.MustExtent(10, 5)

	tests := []struct {
		name     string
		x, y     int
		expected [][2]int
	}{
		{"interior", 2, 3, [][2]int{{2, 4}, {2, 2}, {1, 3}, {3, 3}}},
		{"edge", 0, 1, [][2]int{{0, 0}, {0, 2}, {1, 1}}},
		{"corner", 9, 4, [][2]int{{8, 4}, {9, 3}}},
		{"origin", 0, 0, [][2]int{{1, 0}, {0, 1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := ext.MustAt(tt.x, tt.y)
			neighbours := c.Neighbours()
			require.Len(t, neighbours, len(tt.expected))

			got := make([][2]int, 0, len(neighbours))
			for _, n := range neighbours {
				assert.True(t, c.IsNeighbour(n))
				assert.True(t, ext.Contains(n.X(), n.Y()))
				got = append(got, [2]int{n.X(), n.Y()})
			}
			assert.ElementsMatch(t, tt.expected, got)
		})
	}
}

func TestNeighbourCountsEverywhere(t *testing.T) {
	ext := grid.MustExtent(6, 4)
	for y := 0; y < ext.Height; y++ {
		for c := range ext.Row(y) {
			onX := c.X() == 0 || c.X() == ext.Width-1
			onY := c.Y() == 0 || c.Y() == ext.Height-1

			expected := 4
			switch {
			case onX && onY:
				expected = 2
			case onX || onY:
				expected = 3
			}
			assert.Len(t, c.Neighbours(), expected, "at %s", c)
		}
	}
}

func TestEqual(t *testing.T) {
	ext := grid.MustExtent(10, 5)
	a := ext.MustAt(5, 3)
	b := ext.MustAt(2, 4)
	c := ext.MustAt(5, 3)

	assert.False(t, a.Equal(b))
	assert.True(t, b.Equal(b))
	assert.True(t, a.Equal(c))
	assert.Equal(t, a, c)
	assert.Equal(t, a.Key(), c.Key())
	assert.NotEqual(t, a.Key(), b.Key())
}

func TestAddSub(t *testing.T) {
	ext := grid.MustExtent(10, 5)

	sum, err := ext.MustAt(5, 3).Add(ext.MustAt(0, 1).Vector())
	require.NoError(t, err)
	assert.Equal(t, ext.MustAt(5, 4), sum)

	diff, err := ext.MustAt(5, 3).Sub(ext.MustAt(1, 0).Vector())
	require.NoError(t, err)
	assert.Equal(t, ext.MustAt(4, 3), diff)

	_, err = ext.MustAt(5, 4).Add(grid.Up)
	assert.ErrorIs(t, err, grid.ErrOutOfBounds)

	_, err = ext.MustAt(0, 0).Sub(grid.Right)
	assert.ErrorIs(t, err, grid.ErrOutOfBounds)
}

func TestAddThenSubRoundTrips(t *testing.T) {
	ext := grid.MustExtent(7, 6)
	for ay := 0; ay < ext.Height; ay++ {
		for a := range ext.Row(ay) {
			for by := 0; by < ext.Height; by++ {
				for b := range ext.Row(by) {
					sum, err := a.Add(b.Vector())
					if err != nil {
						continue
					}
					back, err := sum.Sub(b.Vector())
					require.NoError(t, err)
					assert.True(t, back.Equal(a), fmt.Sprintf("(%s + %s) - %s", a, b, b))
				}
			}
		}
	}
}

func TestRotateAbout(t *testing.T) {
	ext := grid.MustExtent(10, 5)
	center := ext.MustAt(3, 4)

	rotated, err := ext.MustAt(5, 3).RotateAbout(center)
	require.NoError(t, err)
	assert.Equal(t, ext.MustAt(2, 2), rotated)

	_, err = ext.MustAt(3, 0).RotateAbout(center)
	assert.ErrorIs(t, err, grid.ErrOutOfBounds)
}

func TestFourRotationsReturnToStart(t *testing.T) {
	ext := grid.MustExtent(9, 9)
	center := ext.MustAt(4, 4)
	start := ext.MustAt(6, 3)

	c := start
	for i := 0; i < 4; i++ {
		var err error
		c, err = c.RotateAbout(center)
		require.NoError(t, err)
		if i == 1 {
			assert.Equal(t, ext.MustAt(2, 5), c)
		}
	}
	assert.Equal(t, start, c)
}

func TestVector(t *testing.T) {
	v := grid.Vector{X: 2, Y: -1}
	assert.Equal(t, grid.Vector{X: -1, Y: -2}, v.RotateCW())
	assert.Equal(t, grid.Vector{X: -2, Y: 1}, v.Neg())
	assert.Equal(t, grid.Vector{X: 3, Y: -1}, v.Add(grid.Right))
	assert.Equal(t, "<2,-1>", v.String())
}

func TestRow(t *testing.T) {
	ext := grid.MustExtent(3, 2)

	var xs []int
	for c := range ext.Row(1) {
		assert.Equal(t, 1, c.Y())
		xs = append(xs, c.X())
	}
	assert.Equal(t, []int{0, 1, 2}, xs)

	for range ext.Row(2) {
		t.Fatal("row outside the extent must be empty")
	}
}
