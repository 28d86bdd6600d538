package epidemic

import (
	"math"
	"sort"
)

// DefaultPreset names the configuration returned by DefaultConfig.
const DefaultPreset = "default"

var presets = map[string]Config{
	DefaultPreset: DefaultConfig(),
	"sim1": {
		Size:                 384,
		InfectionProbability: 1.0 / 9,
		DeathProbability:     1.0 / 50,
		InitialSick:          4,
		SickDuration:         4,
		ImmuneDuration:       6,
		Seed:                 1337,
	},
	"sim2": {
		Size:                 768,
		InfectionProbability: 1.0 / 3,
		DeathProbability:     0.06,
		InitialSick:          seedCount(768, 0.001),
		SickDuration:         2,
		ImmuneDuration:       6,
		Seed:                 1337,
	},
	"sim3": {
		Size:                 768,
		InfectionProbability: 1.0 / 6,
		DeathProbability:     1.0 / 100,
		InitialSick:          seedCount(768, 0.01),
		SickDuration:         2,
		ImmuneDuration:       6,
		Seed:                 1337,
	},
	"sim4": {
		Size:                 768,
		InfectionProbability: 1.0 / 3,
		DeathProbability:     1.0 / 20,
		InitialSick:          seedCount(768, 0.01),
		SickDuration:         3,
		ImmuneDuration:       6,
		Seed:                 1337,
	},
	"cov": {
		Size:                 768,
		InfectionProbability: 1.0 / 20,
		DeathProbability:     0.06,
		InitialSick:          seedCount(768, 0.01),
		SickDuration:         6,
		ImmuneDuration:       6,
		Seed:                 1337,
	},
}

// seedCount returns how many seeding draws a population share of a size×size
// grid amounts to; fractional counts round up.
func seedCount(size int, share float64) int {
	return int(math.Ceil(float64(size*size) * share))
}

// Preset returns the named configuration.
func Preset(name string) (Config, bool) {
	cfg, ok := presets[name]
	return cfg, ok
}

// PresetNames returns the preset names in lexical order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
