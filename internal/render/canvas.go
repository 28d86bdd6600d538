package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"

	"epi-ca/internal/sims/epidemic"

	"golang.org/x/image/draw"
)

// Canvas keeps an in-memory RGBA picture of a square grid and updates it
// from change sets, the same way the window painter does.
type Canvas struct {
	size    int
	palette []color.RGBA
	img     *image.RGBA
}

// NewCanvas allocates a canvas for a size*size grid using the epidemic palette.
func NewCanvas(size int) *Canvas {
	return &Canvas{
		size:    size,
		palette: epidemic.Palette(),
		img:     image.NewRGBA(image.Rect(0, 0, size, size)),
	}
}

// Redraw repaints every pixel from cells.
func (c *Canvas) Redraw(cells []uint8) {
	if len(cells) != c.size*c.size {
		return
	}
	fillPaletteRGBA(c.img.Pix, cells, c.palette)
}

// Apply repaints the cells named in changes.
func (c *Canvas) Apply(changes epidemic.ChangeSet) {
	paintChanges(c.img.Pix, c.size, changes, c.palette)
}

// Image returns the one-pixel-per-cell picture.
func (c *Canvas) Image() *image.RGBA { return c.img }

// Scaled returns the picture enlarged by scale with nearest-neighbour sampling.
func (c *Canvas) Scaled(scale int) image.Image {
	if scale <= 1 {
		return c.img
	}
	dst := image.NewRGBA(image.Rect(0, 0, c.size*scale, c.size*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), c.img, c.img.Bounds(), draw.Src, nil)
	return dst
}

// EncodePNG writes the picture enlarged by scale.
func (c *Canvas) EncodePNG(w io.Writer, scale int) error {
	if err := png.Encode(w, c.Scaled(scale)); err != nil {
		return fmt.Errorf("encode frame: %w", err)
	}
	return nil
}

// WritePNG writes the picture enlarged by scale into the file at path.
func (c *Canvas) WritePNG(path string, scale int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create frame file: %w", err)
	}
	if err := c.EncodePNG(f, scale); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
