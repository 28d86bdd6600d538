package epidemic

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Config controls the grid size and the transition parameters.
type Config struct {
	Size int `yaml:"size" json:"size"`

	InfectionProbability float64 `yaml:"infection_probability" json:"infection_probability"`
	DeathProbability     float64 `yaml:"death_probability" json:"death_probability"`

	InitialSick    int `yaml:"initial_sick" json:"initial_sick"`
	SickDuration   int `yaml:"sick_duration" json:"sick_duration"`
	ImmuneDuration int `yaml:"immune_duration" json:"immune_duration"`

	Seed int64 `yaml:"seed" json:"seed"`
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Size:                 128,
		InfectionProbability: 1.0 / 3,
		DeathProbability:     1.0 / 10,
		InitialSick:          1,
		SickDuration:         4,
		ImmuneDuration:       4,
		Seed:                 1337,
	}
}

// ErrConfiguration matches every *ConfigurationError via errors.Is.
var ErrConfiguration = errors.New("invalid configuration")

// ConfigurationError reports a missing, non-numeric or out-of-range parameter.
type ConfigurationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid configuration: %s=%q: %s", e.Field, e.Value, e.Reason)
}

// Is lets errors.Is(err, ErrConfiguration) match.
func (e *ConfigurationError) Is(target error) bool { return target == ErrConfiguration }

func configErr(field string, value any, reason string) *ConfigurationError {
	return &ConfigurationError{Field: field, Value: fmt.Sprint(value), Reason: reason}
}

// Parameter keys accepted by ApplyMap and SetParameter.
const (
	KeySize                 = "size"
	KeyInfectionProbability = "infection_probability"
	KeyDeathProbability     = "death_probability"
	KeyInitialSick          = "initial_sick"
	KeySickDuration         = "sick_duration"
	KeyImmuneDuration       = "immune_duration"
	KeySeed                 = "seed"
)

// keyAliases maps the short names of the original page form onto keys.
var keyAliases = map[string]string{
	"p_0":         KeyInfectionProbability,
	"propagation": KeyInfectionProbability,
	"d_0":         KeyDeathProbability,
	"death_rate":  KeyDeathProbability,
	"sick_start":  KeyInitialSick,
	"sick_time":   KeySickDuration,
	"immune_time": KeyImmuneDuration,
}

// CanonicalKey resolves aliases and normalizes case and dashes.
func CanonicalKey(key string) string {
	k := strings.ToLower(strings.TrimSpace(key))
	k = strings.ReplaceAll(k, "-", "_")
	if alias, ok := keyAliases[k]; ok {
		return alias
	}
	return k
}

// Validate checks every field and returns the first violation.
func (c Config) Validate() error {
	if c.Size <= 0 {
		return configErr(KeySize, c.Size, "must be positive")
	}
	if err := checkProbability(KeyInfectionProbability, c.InfectionProbability); err != nil {
		return err
	}
	if err := checkProbability(KeyDeathProbability, c.DeathProbability); err != nil {
		return err
	}
	if c.InitialSick < 0 {
		return configErr(KeyInitialSick, c.InitialSick, "must not be negative")
	}
	if err := checkDuration(KeySickDuration, c.SickDuration); err != nil {
		return err
	}
	return checkDuration(KeyImmuneDuration, c.ImmuneDuration)
}

func checkProbability(field string, p float64) error {
	if math.IsNaN(p) || p < 0 || p > 1 {
		return configErr(field, p, "must be within [0, 1]")
	}
	return nil
}

func checkDuration(field string, ticks int) error {
	if ticks <= 0 {
		return configErr(field, ticks, "must be a positive number of ticks")
	}
	return nil
}

// FromMap builds a validated Config from DefaultConfig and string overrides.
func FromMap(cfg map[string]string) (Config, error) {
	return ApplyMap(DefaultConfig(), cfg)
}

// ApplyMap overlays flag-style key/value pairs on base and validates the result.
// Unknown keys are rejected.
func ApplyMap(base Config, cfg map[string]string) (Config, error) {
	c := base
	for key, raw := range cfg {
		if err := c.set(key, raw); err != nil {
			return base, err
		}
	}
	if err := c.Validate(); err != nil {
		return base, err
	}
	return c, nil
}

// set parses raw into the field named by key. It does not validate ranges.
func (c *Config) set(key, raw string) error {
	switch k := CanonicalKey(key); k {
	case KeySize:
		return parseIntInto(k, raw, &c.Size)
	case KeyInfectionProbability:
		return parseFloatInto(k, raw, &c.InfectionProbability)
	case KeyDeathProbability:
		return parseFloatInto(k, raw, &c.DeathProbability)
	case KeyInitialSick:
		return parseIntInto(k, raw, &c.InitialSick)
	case KeySickDuration:
		return parseIntInto(k, raw, &c.SickDuration)
	case KeyImmuneDuration:
		return parseIntInto(k, raw, &c.ImmuneDuration)
	case KeySeed:
		v, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			return configErr(k, raw, "not an integer")
		}
		c.Seed = v
		return nil
	default:
		return configErr(key, raw, "unknown parameter")
	}
}

// ParseInt accepts integers and truncates finite decimals toward zero, the
// way form inputs were read.
func ParseInt(field, raw string) (int, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, configErr(field, raw, "missing value")
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, configErr(field, raw, "not a number")
	}
	if f > math.MaxInt32 || f < math.MinInt32 {
		return 0, configErr(field, raw, "out of range")
	}
	return int(f), nil
}

// ParseFloat parses a finite floating point value.
func ParseFloat(field, raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, configErr(field, raw, "missing value")
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, configErr(field, raw, "not a number")
	}
	return f, nil
}

func parseIntInto(field, raw string, dst *int) error {
	v, err := ParseInt(field, raw)
	if err != nil {
		return err
	}
	*dst = v
	return nil
}

func parseFloatInto(field, raw string, dst *float64) error {
	v, err := ParseFloat(field, raw)
	if err != nil {
		return err
	}
	*dst = v
	return nil
}
