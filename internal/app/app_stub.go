//go:build !ebiten

package app

import (
	"errors"

	"epi-ca/internal/sims/epidemic"
)

// ErrHeadless is returned by every Game method in builds without the ebiten tag.
var ErrHeadless = errors.New("app: windowed viewer needs the 'ebiten' build tag; use `epica run` for headless runs")

// Game keeps the viewer API available to headless builds.
type Game struct{}

// New panics: there is no window to open without ebiten.
func New(*epidemic.Simulation, int, int64) *Game {
	panic(ErrHeadless)
}

// Reset does nothing in headless builds.
func (g *Game) Reset(int64) {}

// Update reports ErrHeadless.
func (g *Game) Update() error { return ErrHeadless }

// Draw does nothing in headless builds.
func (g *Game) Draw(any) {}

// Layout returns zeros in headless builds.
func (g *Game) Layout(int, int) (int, int) { return 0, 0 }
