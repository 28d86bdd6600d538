package epidemic

import "image/color"

var palette = []color.RGBA{
	Healthy: {R: 76, G: 175, B: 80, A: 255},
	Sick:    {R: 229, G: 57, B: 53, A: 255},
	Immune:  {R: 30, G: 136, B: 229, A: 255},
	Dead:    {R: 33, G: 33, B: 33, A: 255},
}

// Palette maps each HealthState (used as index) to its display colour.
func Palette() []color.RGBA {
	out := make([]color.RGBA, len(palette))
	copy(out, palette)
	return out
}

// Color returns the display colour of s.
func (s HealthState) Color() color.RGBA {
	if !s.Valid() {
		return color.RGBA{A: 255}
	}
	return palette[s]
}
