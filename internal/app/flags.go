package app

import (
	"flag"
	"fmt"
	"strings"

	"epi-ca/internal/core"
	"epi-ca/internal/sims/epidemic"
)

// Config represents the command-line parameters for the windowed front end.
type Config struct {
	Sim       string
	Scale     int
	TPS       int
	Seed      int64
	Overrides map[string]string
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{Sim: "epidemic", Scale: 4, TPS: 20, Overrides: map[string]string{}}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Sim, "sim", c.Sim, "simulation to run ("+strings.Join(core.Names(), ", ")+")")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for the first run; 0 keeps the preset seed")
	fs.Func("set", "override a parameter as key=value (repeatable)", func(raw string) error {
		key, value, ok := strings.Cut(raw, "=")
		if !ok || key == "" {
			return fmt.Errorf("expected key=value, got %q", raw)
		}
		c.Overrides[key] = value
		return nil
	})
}

// BuildSimulation constructs the configured epidemic simulation.
func (c *Config) BuildSimulation() (*epidemic.Simulation, error) {
	overrides := make(map[string]string, len(c.Overrides)+1)
	for k, v := range c.Overrides {
		overrides[k] = v
	}
	if c.Seed != 0 {
		overrides[epidemic.KeySeed] = fmt.Sprint(c.Seed)
	}
	sim, err := core.Build(c.Sim, overrides)
	if err != nil {
		return nil, err
	}
	es, ok := sim.(*epidemic.Simulation)
	if !ok {
		return nil, fmt.Errorf("sim %q is not an epidemic simulation", c.Sim)
	}
	return es, nil
}
