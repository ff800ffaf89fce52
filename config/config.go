// Package config loads siftstone's process-wide defaults: worker fan-out
// caps, scan safety limits, and CLI/telemetry settings, from an embedded
// YAML document optionally overridden by a user-supplied file.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds every tunable the solver and its CLI front ends read instead
// of hardcoding.
type Config struct {
	Workers   WorkersConfig   `yaml:"workers"`
	Scan      ScanConfig      `yaml:"scan"`
	CLI       CLIConfig       `yaml:"cli"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// WorkersConfig bounds worker-count selection.
type WorkersConfig struct {
	HardwareCap int `yaml:"hardware_cap"`
	ClassicCap  int `yaml:"classic_cap"`
}

// ScanConfig holds scan safety bounds and the default/maximum search radius.
type ScanConfig struct {
	MatchHardCap   int `yaml:"match_hard_cap"`
	ProgressBatch  int `yaml:"progress_batch"`
	DefaultRadius  int `yaml:"default_radius"`
	MaxRadius      int `yaml:"max_radius"`
}

// CLIConfig holds defaults for the cmd/siftstone front end.
type CLIConfig struct {
	DefaultMaxResults int `yaml:"default_max_results"`
	DefaultTol        int `yaml:"default_tol"`
	ProgressCadenceMs int `yaml:"progress_cadence_ms"`
}

// TelemetryConfig holds defaults for run-stats CSV export.
type TelemetryConfig struct {
	CSVDir string `yaml:"csv_dir"`
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from path, or uses embedded defaults if path is
// empty. Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error, for callers that have no one
// left to propagate a startup failure to.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load builds a Config from the embedded defaults, then overlays path (if
// non-empty) on top — only the fields present in the user file are
// overwritten.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	return cfg, nil
}
