package gen

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultOutput is the generated file name when none is configured.
const DefaultOutput = "veil_gen.go"

// Config controls a veilgen run. Flags override the config file, which
// overrides the defaults.
type Config struct {
	// Dir is the package directory to scan. Defaults to ".".
	Dir string `yaml:"dir"`

	// Output is the generated file name, written inside Dir.
	// Defaults to "veil_gen.go".
	Output string `yaml:"output"`

	// Package overrides the package name for the generated file.
	// Defaults to the scanned package's name.
	Package string `yaml:"package"`
}

// ApplyDefaults fills unset fields with their defaults.
func (c *Config) ApplyDefaults() {
	if c.Dir == "" {
		c.Dir = "."
	}
	if c.Output == "" {
		c.Output = DefaultOutput
	}
}

// LoadConfig reads a YAML config file. A missing file is not an error: the
// zero Config is returned so defaults and flags take over.
func LoadConfig(path string) (Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	return cfg, nil
}
