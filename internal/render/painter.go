//go:build ebiten

package render

import (
	"image/color"

	"epi-ca/internal/sims/epidemic"

	"github.com/hajimehoshi/ebiten/v2"
)

// GridPainter keeps an RGBA image of the grid on the GPU. Full uploads happen
// on Redraw; Apply only touches the cells that changed.
type GridPainter struct {
	w, h    int
	img     *ebiten.Image
	buf     []byte
	palette []color.RGBA
	dirty   bool
}

// NewGridPainter allocates a painter for a grid of size w*h.
func NewGridPainter(w, h int) *GridPainter {
	return &GridPainter{
		w:       w,
		h:       h,
		img:     ebiten.NewImage(w, h),
		buf:     make([]byte, 4*w*h),
		palette: epidemic.Palette(),
	}
}

// Redraw repaints the whole grid from cells.
func (gp *GridPainter) Redraw(cells []uint8) {
	if len(cells) != gp.w*gp.h {
		return
	}
	fillPaletteRGBA(gp.buf, cells, gp.palette)
	gp.dirty = true
}

// Apply repaints the cells listed in changes.
func (gp *GridPainter) Apply(changes epidemic.ChangeSet) {
	if len(changes) == 0 {
		return
	}
	paintChanges(gp.buf, gp.w, changes, gp.palette)
	gp.dirty = true
}

// Draw uploads pending pixel changes and draws the grid scaled onto dst.
func (gp *GridPainter) Draw(dst *ebiten.Image, scale int) {
	if gp.dirty {
		gp.img.WritePixels(gp.buf)
		gp.dirty = false
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	dst.DrawImage(gp.img, op)
}

// Size returns the dimensions of the underlying image.
func (gp *GridPainter) Size() (int, int) { return gp.w, gp.h }
