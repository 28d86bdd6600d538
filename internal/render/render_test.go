package render

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"

	"epi-ca/internal/sims/epidemic"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFillPaletteRGBA(t *testing.T) {
	palette := []color.RGBA{{R: 1, A: 255}, {G: 2, A: 255}}
	cells := []uint8{0, 1, 7}
	buf := make([]byte, 4*len(cells))
	fillPaletteRGBA(buf, cells, palette)
	assert.Equal(t, []byte{1, 0, 0, 255, 0, 2, 0, 255, 0, 2, 0, 255}, buf, "out of range values use the last colour")

	fillPaletteRGBA(buf, cells, nil)
	assert.Equal(t, make([]byte, len(buf)), buf)
}

func TestPaintChangesTouchesOnlyChangedCells(t *testing.T) {
	palette := epidemic.Palette()
	cells := make([]uint8, 9)
	buf := make([]byte, 4*len(cells))
	fillPaletteRGBA(buf, cells, palette)

	paintChanges(buf, 3, epidemic.ChangeSet{
		{Row: 1, Col: 2, State: epidemic.Sick},
		{Row: 3, Col: 0, State: epidemic.Dead},
		{Row: 0, Col: 5, State: epidemic.Dead},
	}, palette)

	sick := epidemic.Sick.Color()
	healthy := epidemic.Healthy.Color()
	assert.Equal(t, []byte{sick.R, sick.G, sick.B, sick.A}, buf[4*5:4*6])
	for i := 0; i < 9; i++ {
		if i == 5 {
			continue
		}
		assert.Equal(t, []byte{healthy.R, healthy.G, healthy.B, healthy.A}, buf[4*i:4*i+4], "cell %d", i)
	}
}

func TestCanvasApplyMatchesRedraw(t *testing.T) {
	cfg := epidemic.DefaultConfig()
	cfg.Size = 16
	cfg.InitialSick = 3
	eng, err := epidemic.NewSeeded(cfg)
	require.NoError(t, err)

	incremental := NewCanvas(cfg.Size)
	incremental.Redraw(eng.Cells())
	for i := 0; i < 10 && eng.IsActive(); i++ {
		incremental.Apply(eng.Step())
	}

	full := NewCanvas(cfg.Size)
	full.Redraw(eng.Cells())
	assert.Equal(t, full.Image().Pix, incremental.Image().Pix)
}

func TestCanvasEncodePNGScales(t *testing.T) {
	c := NewCanvas(4)
	c.Redraw(make([]uint8, 16))
	var buf bytes.Buffer
	require.NoError(t, c.EncodePNG(&buf, 3))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 12, img.Bounds().Dx())
	r, g, b, _ := img.At(11, 11).RGBA()
	want := epidemic.Healthy.Color()
	assert.Equal(t, []uint32{uint32(want.R), uint32(want.G), uint32(want.B)}, []uint32{r >> 8, g >> 8, b >> 8})
}
