package epidemic

import (
	"epi-ca/internal/core"
)

// Simulation adapts an Engine to the core.Sim contract. Reset discards the
// current engine and builds a new one; it never resets the grid in place.
type Simulation struct {
	name string
	cfg  Config
	eng  *Engine
}

// NewSimulation validates cfg and builds the first engine from cfg.Seed.
func NewSimulation(name string, cfg Config) (*Simulation, error) {
	eng, err := NewSeeded(cfg)
	if err != nil {
		return nil, err
	}
	return &Simulation{name: name, cfg: cfg, eng: eng}, nil
}

// Name returns the simulation identifier.
func (s *Simulation) Name() string { return s.name }

// Size reports the grid dimensions.
func (s *Simulation) Size() core.Size { return s.eng.Size() }

// Cells exposes the committed state buffer.
func (s *Simulation) Cells() []uint8 { return s.eng.Cells() }

// Engine returns the live engine. The pointer changes on Reset.
func (s *Simulation) Engine() *Engine { return s.eng }

// Step advances the live engine and discards the change set.
func (s *Simulation) Step() { s.eng.Step() }

// Advance advances the live engine and returns the change set.
func (s *Simulation) Advance() ChangeSet { return s.eng.Step() }

// Reset replaces the engine with a fresh one seeded by seed, carrying over
// any parameters changed since the last initialization. A zero seed reuses
// the configured seed.
func (s *Simulation) Reset(seed int64) {
	cfg := s.cfg
	if seed != 0 {
		cfg.Seed = seed
	}
	eng, err := NewSeeded(cfg)
	if err != nil {
		// s.cfg only ever holds validated values.
		panic(err)
	}
	s.cfg = cfg
	s.eng = eng
}

// SetParameter updates the live engine and remembers the value for the next Reset.
func (s *Simulation) SetParameter(key, value string) error {
	if err := s.eng.SetParameter(key, value); err != nil {
		return err
	}
	cfg := s.eng.Config()
	cfg.Seed = s.cfg.Seed
	s.cfg = cfg
	return nil
}

// Parameters reports the configuration used for the next Reset.
func (s *Simulation) Parameters() core.ParameterSnapshot { return parametersOf(s.cfg) }

// ParameterControls lists the adjustable parameters.
func (s *Simulation) ParameterControls() []core.ParameterControl {
	return s.eng.ParameterControls()
}

func init() {
	for _, name := range PresetNames() {
		base, _ := Preset(name)
		simName := "epidemic-" + name
		if name == DefaultPreset {
			simName = "epidemic"
		}
		core.Register(simName, func(overrides map[string]string) (core.Sim, error) {
			cfg, err := ApplyMap(base, overrides)
			if err != nil {
				return nil, err
			}
			return NewSimulation(simName, cfg)
		})
	}
}
