package app

import (
	"flag"
	"io"
	"testing"

	"epi-ca/internal/sims/epidemic"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, args ...string) (*Config, error) {
	t.Helper()
	cfg := NewConfig()
	fs := flag.NewFlagSet("ca", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	cfg.Bind(fs)
	return cfg, fs.Parse(args)
}

func TestConfigDefaults(t *testing.T) {
	cfg, err := parse(t)
	require.NoError(t, err)
	assert.Equal(t, "epidemic", cfg.Sim)
	assert.Equal(t, 4, cfg.Scale)
	assert.Equal(t, 20, cfg.TPS)
	assert.Zero(t, cfg.Seed)
}

func TestConfigBuildSimulation(t *testing.T) {
	cfg, err := parse(t, "-sim", "epidemic", "-seed", "99", "-set", "size=32", "-set", "p_0=0.5")
	require.NoError(t, err)

	sim, err := cfg.BuildSimulation()
	require.NoError(t, err)
	got := sim.Engine().Config()
	assert.Equal(t, 32, got.Size)
	assert.Equal(t, 0.5, got.InfectionProbability)
	assert.Equal(t, int64(99), got.Seed)
}

func TestConfigRejectsBadInput(t *testing.T) {
	_, err := parse(t, "-set", "novalue")
	assert.Error(t, err)

	cfg, err := parse(t, "-sim", "nope")
	require.NoError(t, err)
	_, err = cfg.BuildSimulation()
	assert.Error(t, err)

	cfg, err = parse(t, "-set", "death_rate=3")
	require.NoError(t, err)
	_, err = cfg.BuildSimulation()
	assert.ErrorIs(t, err, epidemic.ErrConfiguration)
}
