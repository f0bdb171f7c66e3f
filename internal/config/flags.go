package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
)

// Flags holds command-line overrides. Zero values leave the config alone.
type Flags struct {
	ConfigPath string
	Debug      bool
	Quiet      bool
	LogFile    string
	OutputDir  string
	Overwrite  bool
}

// Bind registers the flags on fs.
func (f *Flags) Bind(fs *pflag.FlagSet) {
	fs.StringVar(&f.ConfigPath, "config", "", "Path to config file (default $"+EnvConfig+", ./"+LocalConfigName+", then the user config dir)")
	fs.BoolVar(&f.Debug, "debug", false, "Enable debug logging")
	fs.BoolVarP(&f.Quiet, "quiet", "q", false, "Only log errors")
	fs.StringVar(&f.LogFile, "log-file", "", "Also write logs to this file")
	fs.StringVarP(&f.OutputDir, "output-dir", "o", "", "Directory for derived output names")
	fs.BoolVarP(&f.Overwrite, "overwrite", "f", false, "Replace existing output files")
}

// ConfigFile returns the config file to read: --config, then $SYMEXPORT_CONFIG,
// then symexport.yaml in the working directory, then config.yaml in
// ConfigDir. Named files must exist; the two implicit ones are skipped when
// absent. An empty result means no file.
func (f *Flags) ConfigFile() string {
	if f.ConfigPath != "" {
		return f.ConfigPath
	}
	if p := os.Getenv(EnvConfig); p != "" {
		return p
	}
	for _, p := range []string{LocalConfigName, filepath.Join(ConfigDir(), "config.yaml")} {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// apply applies flag overrides to the config.
func (f *Flags) apply(cfg *Config) {
	if f.Debug {
		cfg.Logging.Level = "debug"
	}
	if f.Quiet {
		cfg.Logging.Level = "error"
	}
	if f.LogFile != "" {
		cfg.Logging.LogFile = f.LogFile
	}
	if f.OutputDir != "" {
		cfg.Export.OutputDir = f.OutputDir
	}
	if f.Overwrite {
		cfg.Export.Overwrite = true
	}
}
