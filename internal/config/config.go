// Package config loads the optional YAML run configuration. Every field
// is optional; command-line flags override file values, and file values
// override the built-in defaults.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the run configuration.
type Config struct {
	// Input is the simulation log to scan.
	Input string `yaml:"input"`

	// Strict fails on the first malformed line or record instead of
	// skipping it with a warning.
	Strict bool `yaml:"strict"`

	Chart ChartConfig `yaml:"chart"`
}

// ChartConfig controls the rendered volume-profile chart.
type ChartConfig struct {
	// Out is the chart output path; the extension picks PNG or SVG.
	Out string `yaml:"out"`

	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// Default returns the built-in configuration: scan output.txt in the
// working directory and write volume_profile.png next to it.
func Default() Config {
	return Config{
		Input: "output.txt",
		Chart: ChartConfig{
			Out: "volume_profile.png",
		},
	}
}

// Load reads a YAML config file and overlays it on the defaults, so
// fields absent from the file keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
