package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNeighborsClampAtEdges(t *testing.T) {
	g := NewByteGrid(5, 5)

	cases := []struct {
		name string
		x, y int
		want int
	}{
		{"top-left corner", 0, 0, 3},
		{"bottom-right corner", 4, 4, 3},
		{"top edge", 2, 0, 5},
		{"left edge", 0, 3, 5},
		{"interior", 2, 2, 8},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := g.Neighbors(nil, tc.x, tc.y)
			assert.Len(t, got, tc.want)
			self := g.Index(tc.x, tc.y)
			for _, idx := range got {
				assert.NotEqual(t, self, idx, "neighbourhood must not contain the cell itself")
				nx, ny := g.Coords(idx)
				assert.True(t, g.InBounds(nx, ny))
				assert.LessOrEqual(t, abs(nx-tc.x), 1)
				assert.LessOrEqual(t, abs(ny-tc.y), 1)
			}
		})
	}
}

func TestSingleCellGridHasNoNeighbors(t *testing.T) {
	g := NewByteGrid(1, 1)
	assert.Empty(t, g.Neighbors(nil, 0, 0))
}

func TestIndexCoordsRoundTrip(t *testing.T) {
	g := NewByteGrid(7, 3)
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			gx, gy := g.Coords(g.Index(x, y))
			assert.Equal(t, x, gx)
			assert.Equal(t, y, gy)
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
