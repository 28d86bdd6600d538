//go:build ebiten

package ui

import (
	"image/color"
	"math"

	"epi-ca/internal/sims/epidemic"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Overlay draws optional debugging visuals on top of the grid.
//
//	1  outline the cells that changed on the last tick
//	2  shade sick and immune cells by the time left in their state
type Overlay struct {
	scale         int
	showChanges   bool
	showCountdown bool

	img *ebiten.Image
	buf []byte
}

// NewOverlay constructs an overlay for a grid drawn at scale.
func NewOverlay(scale int) *Overlay {
	if scale <= 0 {
		scale = 1
	}
	return &Overlay{scale: scale}
}

// Update toggles layers from the keyboard.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
		o.showChanges = !o.showChanges
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit2) {
		o.showCountdown = !o.showCountdown
	}
}

// Draw renders the enabled layers for eng. last is the change set of the
// most recent tick.
func (o *Overlay) Draw(screen *ebiten.Image, eng *epidemic.Engine, last epidemic.ChangeSet) {
	if eng == nil || (!o.showChanges && !o.showCountdown) {
		return
	}
	cfg := eng.Config()
	size := cfg.Size
	if o.img == nil || o.img.Bounds().Dx() != size {
		o.img = ebiten.NewImage(size, size)
		o.buf = make([]byte, 4*size*size)
	}
	clear(o.buf)

	if o.showCountdown {
		for row := 0; row < size; row++ {
			for col := 0; col < size; col++ {
				cell, err := eng.Cell(row, col)
				if err != nil {
					continue
				}
				var total int
				switch cell.State {
				case epidemic.Sick:
					total = cfg.SickDuration
				case epidemic.Immune:
					total = cfg.ImmuneDuration
				default:
					continue
				}
				remaining := clamp01(float64(cell.Countdown) / float64(total))
				alpha := uint8(math.Round(160 * (1 - remaining)))
				o.set(row*size+col, color.RGBA{A: alpha})
			}
		}
	}

	if o.showChanges {
		for _, ch := range last {
			o.set(ch.Row*size+ch.Col, color.RGBA{R: 255, G: 255, B: 255, A: 170})
		}
	}

	o.img.WritePixels(o.buf)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(o.scale), float64(o.scale))
	screen.DrawImage(o.img, op)
}

// set stores a non-premultiplied colour as the premultiplied pixel ebiten expects.
func (o *Overlay) set(idx int, c color.RGBA) {
	base := idx * 4
	if base < 0 || base+3 >= len(o.buf) {
		return
	}
	a := float64(c.A) / 255
	o.buf[base+0] = uint8(float64(c.R) * a)
	o.buf[base+1] = uint8(float64(c.G) * a)
	o.buf[base+2] = uint8(float64(c.B) * a)
	o.buf[base+3] = c.A
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
