package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned by Load and Validate for unusable values.
var ErrInvalidConfig = errors.New("invalid config")

// Load builds the effective configuration: defaults, then the file chosen
// by f.ConfigFile, then flag overrides. The result is validated. f may be nil.
func Load(f *Flags) (*Config, error) {
	if f == nil {
		f = &Flags{}
	}

	cfg := Default()
	if path := f.ConfigFile(); path != "" {
		if err := cfg.merge(path); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", path, err)
		}
	}
	f.apply(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// merge overlays the YAML file at path; keys the file omits keep their value.
func (c *Config) merge(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, c)
}

// Validate rejects values the exporter cannot work with.
func (c *Config) Validate() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: logging.level %q, want debug, info, warn or error", ErrInvalidConfig, c.Logging.Level)
	}
	if strings.ContainsAny(c.Export.Extension, `/\`) {
		return fmt.Errorf("%w: export.extension %q contains a path separator", ErrInvalidConfig, c.Export.Extension)
	}
	return nil
}
