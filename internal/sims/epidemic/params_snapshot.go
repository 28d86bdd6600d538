package epidemic

import (
	"strconv"

	"epi-ca/internal/core"
)

// Parameters reports the active configuration grouped for display.
func (e *Engine) Parameters() core.ParameterSnapshot {
	return parametersOf(e.cfg)
}

func parametersOf(cfg Config) core.ParameterSnapshot {
	groups := []core.ParameterGroup{
		{
			Name: "World",
			Params: []core.Parameter{
				intParam(KeySize, "Size", cfg.Size),
				int64Param(KeySeed, "Seed", cfg.Seed),
				intParam(KeyInitialSick, "Initial sick", cfg.InitialSick),
			},
		},
		{
			Name: "Transmission",
			Params: []core.Parameter{
				floatParam(KeyInfectionProbability, "Infection probability", cfg.InfectionProbability),
				intParam(KeySickDuration, "Sick duration", cfg.SickDuration),
			},
		},
		{
			Name: "Outcome",
			Params: []core.Parameter{
				floatParam(KeyDeathProbability, "Death probability", cfg.DeathProbability),
				intParam(KeyImmuneDuration, "Immune duration", cfg.ImmuneDuration),
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}

// ParameterControls lists the parameters that may change between ticks.
func (e *Engine) ParameterControls() []core.ParameterControl {
	return parameterControls
}

var parameterControls = []core.ParameterControl{
	{Key: KeyInfectionProbability, Label: "Infection probability", Type: core.ParamTypeFloat, Step: 0.01, Min: 0, Max: 1, HasMin: true, HasMax: true},
	{Key: KeyDeathProbability, Label: "Death probability", Type: core.ParamTypeFloat, Step: 0.01, Min: 0, Max: 1, HasMin: true, HasMax: true},
	{Key: KeySickDuration, Label: "Sick duration", Type: core.ParamTypeInt, Step: 1, Min: 1, HasMin: true},
	{Key: KeyImmuneDuration, Label: "Immune duration", Type: core.ParamTypeInt, Step: 1, Min: 1, HasMin: true},
	{Key: KeyInitialSick, Label: "Initial sick", Type: core.ParamTypeInt, Step: 1, Min: 0, HasMin: true},
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.Itoa(value),
	}
}

func int64Param(key, label string, value int64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.FormatInt(value, 10),
	}
}

func floatParam(key, label string, value float64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeFloat,
		Value: strconv.FormatFloat(value, 'f', -1, 64),
	}
}
