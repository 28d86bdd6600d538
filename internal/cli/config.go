package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"epi-ca/internal/sims/epidemic"

	"gopkg.in/yaml.v3"
)

// Config is the file-level configuration of the epica command.
type Config struct {
	Simulation epidemic.Config `yaml:"simulation"`

	Run struct {
		MaxTicks int `yaml:"max_ticks"`
		TPS      int `yaml:"tps"`
		LogEvery int `yaml:"log_every"`
	} `yaml:"run"`

	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Addr    string `yaml:"addr"`
	} `yaml:"metrics"`

	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
}

// defaultConfig returns the built-in configuration with the named preset as
// the simulation section.
func defaultConfig(preset string) (*Config, error) {
	sim, ok := epidemic.Preset(preset)
	if !ok {
		return nil, fmt.Errorf("unknown preset %q (have %s)", preset, strings.Join(epidemic.PresetNames(), ", "))
	}
	cfg := &Config{Simulation: sim}
	cfg.Run.LogEvery = 10
	cfg.Metrics.Addr = ":9090"
	cfg.Log.Level = "info"
	cfg.Log.Format = "text"
	return cfg, nil
}

// loadConfig overlays the YAML file at path on the preset defaults. Keys the
// file leaves out keep their default value. A missing file is only an error
// when required is set.
func loadConfig(path, preset string, required bool) (*Config, error) {
	cfg, err := defaultConfig(preset)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}
	if err := cfg.Simulation.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// newLogger builds the slog logger described by the log section.
func newLogger(w io.Writer, level, format string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	opts := &slog.HandlerOptions{Level: lvl}
	switch strings.ToLower(format) {
	case "", "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
}
