//go:build ebiten

package app

import (
	"time"

	"epi-ca/internal/render"
	"epi-ca/internal/sims/epidemic"
	"epi-ca/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Game adapts an epidemic simulation to the ebiten.Game interface. The
// simulation stops stepping on its own once no cell is sick.
type Game struct {
	sim     *epidemic.Simulation
	painter *render.GridPainter
	hud     *ui.HUD
	overlay *ui.Overlay

	last     epidemic.ChangeSet
	scale    int
	paused   bool
	tickOnce bool
	seed     int64
}

// New constructs a Game for the provided simulation.
func New(sim *epidemic.Simulation, scale int, seed int64) *Game {
	size := sim.Size()
	g := &Game{
		sim:     sim,
		painter: render.NewGridPainter(size.W, size.H),
		hud:     ui.NewHUD(sim, ui.PanelWidth),
		overlay: ui.NewOverlay(scale),
		scale:   scale,
		seed:    seed,
	}
	g.painter.Redraw(sim.Cells())
	return g
}

// Reset builds a fresh engine with the provided seed and repaints the grid.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.sim.Reset(seed)
	g.last = nil
	g.tickOnce = false
	g.painter.Redraw(g.sim.Cells())
}

// Update handles per-frame logic and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.paused = false
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}

	g.overlay.Update()
	size := g.sim.Size()
	g.hud.Update(size.W * g.scale)

	if !g.sim.Engine().IsActive() {
		return nil
	}
	if !g.paused || g.tickOnce {
		g.last = g.sim.Advance()
		g.painter.Apply(g.last)
		g.tickOnce = false
	}
	return nil
}

// Draw renders the current simulation state.
func (g *Game) Draw(screen *ebiten.Image) {
	eng := g.sim.Engine()
	g.painter.Draw(screen, g.scale)
	g.overlay.Draw(screen, eng, g.last)
	g.hud.Draw(screen, g.sim.Size().W*g.scale, g.scale, eng.Tick(), eng.Statistics())
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.sim.Size()
	return s.W*g.scale + ui.PanelWidth, s.H * g.scale
}
