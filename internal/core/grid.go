package core

// ByteGrid stores a 2D grid of byte-sized cell values in row-major order.
type ByteGrid struct {
	W, H int
	data []uint8
}

// NewByteGrid allocates a grid with the given dimensions.
func NewByteGrid(w, h int) *ByteGrid {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &ByteGrid{W: w, H: h, data: make([]uint8, w*h)}
}

// Cells exposes the backing slice so callers can read/write values directly.
func (g *ByteGrid) Cells() []uint8 { return g.data }

// Len returns the number of cells.
func (g *ByteGrid) Len() int { return len(g.data) }

// Index returns the linear slice index for coordinates (x, y).
func (g *ByteGrid) Index(x, y int) int { return y*g.W + x }

// Coords is the inverse of Index.
func (g *ByteGrid) Coords(idx int) (x, y int) { return idx % g.W, idx / g.W }

// InBounds reports whether (x, y) addresses a cell of the grid.
func (g *ByteGrid) InBounds(x, y int) bool {
	return x >= 0 && x < g.W && y >= 0 && y < g.H
}

// Window returns the half-open Moore window around (x, y) clamped to the
// grid edges: x in [x0, x1), y in [y0, y1). The window includes (x, y).
func (g *ByteGrid) Window(x, y int) (x0, x1, y0, y1 int) {
	x0, x1 = max(0, x-1), min(g.W, x+2)
	y0, y1 = max(0, y-1), min(g.H, y+2)
	return x0, x1, y0, y1
}

// Neighbors appends the linear indices of the clamped Moore neighbourhood of
// (x, y) to dst, excluding the cell itself. Edges do not wrap.
func (g *ByteGrid) Neighbors(dst []int, x, y int) []int {
	x0, x1, y0, y1 := g.Window(x, y)
	for ny := y0; ny < y1; ny++ {
		for nx := x0; nx < x1; nx++ {
			if nx == x && ny == y {
				continue
			}
			dst = append(dst, ny*g.W+nx)
		}
	}
	return dst
}
