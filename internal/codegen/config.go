package codegen

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultOutput is the output file name used when a config does not set one.
const DefaultOutput = "descriptors_rtfmt.go"

// Config is the runtime-fmt.yaml layout: which package to scan, which struct
// types to describe, and where to write the generated file.
type Config struct {
	Package string   `yaml:"package"`
	Output  string   `yaml:"output"`
	Types   []string `yaml:"types"`
}

// LoadConfig reads and validates a YAML config file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Package == "" {
		return errors.New("config missing package")
	}
	if len(c.Types) == 0 {
		return errors.New("config lists no types")
	}
	if c.Output == "" {
		c.Output = DefaultOutput
	}
	return nil
}
