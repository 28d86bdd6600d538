// Package render turns epidemic grids into RGBA pixels.
package render

import (
	"image/color"

	"epi-ca/internal/sims/epidemic"
)

// fillPaletteRGBA converts cell values into RGBA pixels using a palette. When
// the palette is empty the buffer is cleared to transparent black.
func fillPaletteRGBA(buf []byte, cells []uint8, palette []color.RGBA) {
	if len(palette) == 0 {
		clear(buf[:4*len(cells)])
		return
	}
	for i, c := range cells {
		setPixel(buf, i, paletteColor(palette, c))
	}
}

// paintChanges repaints only the cells named in changes. stride is the grid
// width in cells. Changes outside the buffer are ignored.
func paintChanges(buf []byte, stride int, changes epidemic.ChangeSet, palette []color.RGBA) {
	if len(palette) == 0 || stride <= 0 {
		return
	}
	n := len(buf) / 4
	for _, ch := range changes {
		if ch.Col < 0 || ch.Col >= stride {
			continue
		}
		idx := ch.Row*stride + ch.Col
		if idx < 0 || idx >= n {
			continue
		}
		setPixel(buf, idx, paletteColor(palette, uint8(ch.State)))
	}
}

func paletteColor(palette []color.RGBA, c uint8) color.RGBA {
	idx := int(c)
	if last := len(palette) - 1; idx > last {
		idx = last
	}
	return palette[idx]
}

func setPixel(buf []byte, idx int, col color.RGBA) {
	base := idx * 4
	buf[base+0] = col.R
	buf[base+1] = col.G
	buf[base+2] = col.B
	buf[base+3] = col.A
}
