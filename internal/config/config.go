// Package config loads the optional .sealcheck.yaml project file: a
// list of diagnostic codes to suppress and a color mode for the CLI's
// diagnostic output. Nothing under internal/checker reads this package;
// it's pure CLI presentation.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Color selects when the CLI emits ANSI color in rendered diagnostics.
type Color string

const (
	ColorAuto   Color = "auto"
	ColorAlways Color = "always"
	ColorNever  Color = "never"
)

// Config is the parsed shape of .sealcheck.yaml.
type Config struct {
	// Suppress lists diagnostic codes (e.g. "SEAL2002") never reported,
	// regardless of how many times the checker raises them.
	Suppress []string `yaml:"suppress,omitempty"`

	// Color picks when diagnostics get ANSI color. Defaults to "auto"
	// when omitted or set to an unrecognized value.
	Color Color `yaml:"color,omitempty"`
}

// Suppressed returns whether code should be dropped from output.
func (c *Config) Suppressed(code string) bool {
	for _, s := range c.Suppress {
		if s == code {
			return true
		}
	}
	return false
}

// setDefaults fills in fields left empty by the YAML document.
func (c *Config) setDefaults() {
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		c.Color = ColorAuto
	}
}

// Load reads and parses a .sealcheck.yaml file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	cfg.setDefaults()
	return &cfg, nil
}

// Find searches for .sealcheck.yaml starting at dir and walking up
// through parent directories, stopping at the filesystem root. Returns
// an empty path and nil error when no config file is found anywhere in
// the chain, since running without a project config is the common case.
func Find(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving directory: %w", err)
	}

	for {
		candidate := filepath.Join(dir, ".sealcheck.yaml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
		candidate = filepath.Join(dir, ".sealcheck.yml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// LoadNearest finds and loads the nearest .sealcheck.yaml to dir,
// returning a default Config (no suppressions, auto color) if none
// exists.
func LoadNearest(dir string) (*Config, error) {
	path, err := Find(dir)
	if err != nil {
		return nil, err
	}
	if path == "" {
		cfg := &Config{}
		cfg.setDefaults()
		return cfg, nil
	}
	return Load(path)
}
