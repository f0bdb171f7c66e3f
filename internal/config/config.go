// Package config handles exporter configuration loading and management.
package config

import (
	"os"
	"path/filepath"
	"runtime"
)

const (
	// EnvConfig names a config file to use when --config is not given.
	EnvConfig = "SYMEXPORT_CONFIG"

	// LocalConfigName is picked up from the working directory.
	LocalConfigName = "symexport.yaml"
)

// Config holds all exporter settings.
type Config struct {
	Export  ExportConfig  `yaml:"export"`
	Logging LoggingConfig `yaml:"logging"`
}

// ExportConfig holds output settings for the export command.
type ExportConfig struct {
	Extension string `yaml:"extension"`  // Appended to derived output names
	OutputDir string `yaml:"output_dir"` // Empty means next to the input file
	Overwrite bool   `yaml:"overwrite"`  // Replace existing output files
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Export: ExportConfig{
			Extension: ".symbres",
			OutputDir: "",
			Overwrite: false,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "Symexport")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "Symexport")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "symexport")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "symexport")
	}
}
