package epidemic

import (
	"fmt"

	"epi-ca/internal/core"
	prng "epi-ca/pkg/core"
)

// Source supplies the randomness consumed by the engine. *prng.RNG and
// *rand.Rand from math/rand/v2 both satisfy it.
type Source interface {
	// Float64 returns a value in [0, 1).
	Float64() float64
	// IntN returns a value in [0, n).
	IntN(n int) int
}

// Cell is a read-only view of one grid position.
type Cell struct {
	Row   int
	Col   int
	State HealthState
	// Countdown is the number of ticks left in the Sick or Immune state.
	// It is zero for Healthy and Dead cells.
	Countdown int
}

// Change describes one cell that entered a new state during a tick.
type Change struct {
	Row   int         `json:"row"`
	Col   int         `json:"col"`
	State HealthState `json:"state"`
}

// ChangeSet lists the cells that changed during a tick, in commit order.
type ChangeSet []Change

// Engine owns the grid and advances it one tick at a time. An Engine is not
// safe for concurrent use.
type Engine struct {
	cfg Config
	src Source

	grid      *core.ByteGrid
	countdown []int
	pending   []HealthState
	queue     []int
	stats     counts
	tick      int

	scratch []int
}

// New validates cfg, allocates an all-healthy grid and infects
// cfg.InitialSick positions drawn from src with replacement.
func New(cfg Config, src Source) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if src == nil {
		return nil, fmt.Errorf("epidemic: nil random source")
	}
	total := cfg.Size * cfg.Size
	e := &Engine{
		cfg:       cfg,
		src:       src,
		grid:      core.NewByteGrid(cfg.Size, cfg.Size),
		countdown: make([]int, total),
		pending:   make([]HealthState, total),
		queue:     make([]int, 0, 64),
		scratch:   make([]int, 0, 8),
	}
	for i := range e.pending {
		e.pending[i] = noPending
	}
	e.stats[Healthy] = total
	e.seed()
	return e, nil
}

// NewSeeded builds an engine whose source is a PCG generator seeded with cfg.Seed.
func NewSeeded(cfg Config) (*Engine, error) {
	return New(cfg, prng.NewRNG(cfg.Seed))
}

// seed force-infects InitialSick positions. The same cell may be drawn more
// than once, so fewer cells than requested can end up sick.
func (e *Engine) seed() {
	n := e.cfg.Size
	for i := 0; i < e.cfg.InitialSick; i++ {
		row := e.src.IntN(n)
		col := e.src.IntN(n)
		e.enter(e.grid.Index(col, row), Sick)
	}
}

// Step advances the simulation by one tick and returns the cells that changed.
func (e *Engine) Step() ChangeSet {
	e.evaluate()
	changes := e.commit()
	e.tick++
	return changes
}

// evaluate schedules transitions using committed states only.
func (e *Engine) evaluate() {
	cells := e.grid.Cells()
	for idx, raw := range cells {
		switch HealthState(raw) {
		case Immune:
			e.countdown[idx]--
			if e.countdown[idx] <= 0 {
				e.schedule(idx, Healthy)
			}
		case Sick:
			e.infectNeighbors(idx)
			e.countdown[idx]--
			if e.countdown[idx] <= 0 {
				if e.bernoulli(e.cfg.DeathProbability) {
					e.schedule(idx, Dead)
				} else {
					e.schedule(idx, Immune)
				}
			}
		}
	}
}

func (e *Engine) infectNeighbors(idx int) {
	x, y := e.grid.Coords(idx)
	e.scratch = e.grid.Neighbors(e.scratch[:0], x, y)
	cells := e.grid.Cells()
	for _, n := range e.scratch {
		if HealthState(cells[n]) != Healthy || e.pending[n] != noPending {
			continue
		}
		if e.bernoulli(e.cfg.InfectionProbability) {
			e.schedule(n, Sick)
		}
	}
}

// schedule sets the pending state of idx once per tick.
func (e *Engine) schedule(idx int, next HealthState) {
	if e.pending[idx] != noPending {
		return
	}
	e.pending[idx] = next
	e.queue = append(e.queue, idx)
}

func (e *Engine) commit() ChangeSet {
	if len(e.queue) == 0 {
		return nil
	}
	changes := make(ChangeSet, 0, len(e.queue))
	for _, idx := range e.queue {
		next := e.pending[idx]
		e.pending[idx] = noPending
		e.enter(idx, next)
		col, row := e.grid.Coords(idx)
		changes = append(changes, Change{Row: row, Col: col, State: next})
	}
	e.queue = e.queue[:0]
	return changes
}

// enter moves idx into state next, resetting its countdown and statistics.
func (e *Engine) enter(idx int, next HealthState) {
	cells := e.grid.Cells()
	e.stats.move(HealthState(cells[idx]), next)
	cells[idx] = uint8(next)
	switch next {
	case Sick:
		e.countdown[idx] = e.cfg.SickDuration
	case Immune:
		e.countdown[idx] = e.cfg.ImmuneDuration
	default:
		e.countdown[idx] = 0
	}
}

func (e *Engine) bernoulli(p float64) bool {
	return e.src.Float64() < p
}

// Statistics returns the current population counts.
func (e *Engine) Statistics() Statistics { return e.stats.snapshot() }

// IsActive reports whether any cell is sick. Once false, no further
// infections or deaths can occur.
func (e *Engine) IsActive() bool { return e.stats[Sick] > 0 }

// Tick returns the number of completed steps.
func (e *Engine) Tick() int { return e.tick }

// Config returns the active configuration.
func (e *Engine) Config() Config { return e.cfg }

// Size reports the grid dimensions.
func (e *Engine) Size() core.Size { return core.Size{W: e.cfg.Size, H: e.cfg.Size} }

// Cells exposes the committed states in row-major order. Callers must not
// modify the returned slice.
func (e *Engine) Cells() []uint8 { return e.grid.Cells() }

// Cell returns the cell at (row, col).
func (e *Engine) Cell(row, col int) (Cell, error) {
	if !e.grid.InBounds(col, row) {
		return Cell{}, fmt.Errorf("cell (%d,%d) outside %dx%d grid", row, col, e.cfg.Size, e.cfg.Size)
	}
	idx := e.grid.Index(col, row)
	return Cell{
		Row:       row,
		Col:       col,
		State:     HealthState(e.grid.Cells()[idx]),
		Countdown: e.countdown[idx],
	}, nil
}

// NeighborCount returns the size of the clamped Moore neighbourhood of (row, col).
func (e *Engine) NeighborCount(row, col int) int {
	if !e.grid.InBounds(col, row) {
		return 0
	}
	e.scratch = e.grid.Neighbors(e.scratch[:0], col, row)
	return len(e.scratch)
}
