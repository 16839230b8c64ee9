// Package config loads minilangc.toml, the pipeline's optional run-time
// configuration (output root, optimizer toggle/round cap, trace column
// width), via BurntSushi/toml.
package config

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/dekarrin/minilangc/internal/cerr"
)

// Config holds every pipeline-wide setting not dictated by the grammar or
// CLI flags.
type Config struct {
	OutputRoot    string `toml:"output_root"`
	OptimizerOn   bool   `toml:"optimizer_on"`
	MaxRounds     int    `toml:"max_rounds"`
	TraceColWidth int    `toml:"trace_col_width"` // column width for the --verbose ACTION/GOTO table dump
}

// Default returns the configuration used when no minilangc.toml is found.
func Default() Config {
	return Config{
		OutputRoot:    "out",
		OptimizerOn:   true,
		MaxRounds:     3,
		TraceColWidth: 20,
	}
}

// Load reads and parses path, or returns Default() if path does not
// exist. A malformed file that does exist is a user-facing error.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, cerr.Userf("could not read config %s: %v", path, err)
	}

	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return cfg, cerr.Userf("could not parse config %s: %v", path, err)
	}
	if cfg.MaxRounds <= 0 {
		return cfg, cerr.Userf("config %s: max_rounds must be positive", path)
	}
	return cfg, nil
}
