package epidemic

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigValid(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
}

func TestValidateRejectsOutOfRange(t *testing.T) {
	cases := []struct {
		name  string
		field string
		edit  func(*Config)
	}{
		{"zero size", KeySize, func(c *Config) { c.Size = 0 }},
		{"negative size", KeySize, func(c *Config) { c.Size = -4 }},
		{"infection above one", KeyInfectionProbability, func(c *Config) { c.InfectionProbability = 1.01 }},
		{"infection negative", KeyInfectionProbability, func(c *Config) { c.InfectionProbability = -0.1 }},
		{"infection NaN", KeyInfectionProbability, func(c *Config) { c.InfectionProbability = math.NaN() }},
		{"death above one", KeyDeathProbability, func(c *Config) { c.DeathProbability = 2 }},
		{"negative seeds", KeyInitialSick, func(c *Config) { c.InitialSick = -1 }},
		{"zero sick duration", KeySickDuration, func(c *Config) { c.SickDuration = 0 }},
		{"negative immune duration", KeyImmuneDuration, func(c *Config) { c.ImmuneDuration = -2 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.edit(&cfg)
			err := cfg.Validate()
			require.ErrorIs(t, err, ErrConfiguration)
			var cfgErr *ConfigurationError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, tc.field, cfgErr.Field)
		})
	}
}

func TestValidateAcceptsBoundaries(t *testing.T) {
	cfg := Config{Size: 1, InfectionProbability: 0, DeathProbability: 1, InitialSick: 0, SickDuration: 1, ImmuneDuration: 1}
	assert.NoError(t, cfg.Validate())
	cfg.InfectionProbability = 1
	cfg.DeathProbability = 0
	assert.NoError(t, cfg.Validate())
}

func TestFromMapParsesKeysAndAliases(t *testing.T) {
	cfg, err := FromMap(map[string]string{
		"size":        "64",
		"p_0":         "0.25",
		"death-rate":  "0.05",
		"sick_start":  "12",
		"sick_time":   "3",
		"immune_time": "7.9",
		"seed":        "-5",
	})
	require.NoError(t, err)
	assert.Equal(t, Config{
		Size:                 64,
		InfectionProbability: 0.25,
		DeathProbability:     0.05,
		InitialSick:          12,
		SickDuration:         3,
		ImmuneDuration:       7,
		Seed:                 -5,
	}, cfg)
}

func TestFromMapNilUsesDefaults(t *testing.T) {
	cfg, err := FromMap(nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestApplyMapErrors(t *testing.T) {
	base := DefaultConfig()
	cases := map[string]map[string]string{
		"non-numeric":  {"size": "big"},
		"missing":      {"infection_probability": " "},
		"out of range": {"death_probability": "1.5"},
		"unknown key":  {"colour": "red"},
		"bad seed":     {"seed": "1.5"},
		"infinite":     {"sick_duration": "Inf"},
	}
	for name, overrides := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := ApplyMap(base, overrides)
			require.ErrorIs(t, err, ErrConfiguration)
			assert.Equal(t, base, got, "base must be returned untouched")
		})
	}
}

func TestConfigurationErrorMessage(t *testing.T) {
	err := &ConfigurationError{Field: "size", Value: "0", Reason: "must be positive"}
	assert.Equal(t, `invalid configuration: size="0": must be positive`, err.Error())
	err.Value = ""
	assert.Equal(t, "invalid configuration: size: must be positive", err.Error())
}

func TestParseInt(t *testing.T) {
	v, err := ParseInt("n", " 42 ")
	require.NoError(t, err)
	assert.Equal(t, 42, v)

	v, err = ParseInt("n", "589.82")
	require.NoError(t, err)
	assert.Equal(t, 589, v)

	_, err = ParseInt("n", "NaN")
	assert.ErrorIs(t, err, ErrConfiguration)
	_, err = ParseInt("n", "1e40")
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestStateText(t *testing.T) {
	for _, s := range States {
		text, err := s.MarshalText()
		require.NoError(t, err)
		var back HealthState
		require.NoError(t, back.UnmarshalText(text))
		assert.Equal(t, s, back)
	}
	assert.Equal(t, "sick", Sick.String())
	assert.False(t, HealthState(9).Valid())
	_, err := HealthState(9).MarshalText()
	assert.Error(t, err)
	_, err = ParseHealthState("zombie")
	assert.Error(t, err)
}

func TestStatisticsHelpers(t *testing.T) {
	s := Statistics{Healthy: 5, Sick: 3, Immune: 1, Dead: 1}
	assert.Equal(t, 10, s.Total())
	assert.Equal(t, 3, s.Count(Sick))
	assert.InDelta(t, 0.5, s.Fraction(Healthy), 1e-9)
	assert.Zero(t, Statistics{}.Fraction(Dead))
}
