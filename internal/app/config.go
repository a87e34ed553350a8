package app

import (
	"io"

	"topoorder/internal/config"
)

// Config holds the application configuration
type Config struct {
	// Debug settings
	Debug bool

	// Verbose logs progress at info level; without it only warnings and
	// errors are logged
	Verbose bool

	// Quiet suppresses all log output
	Quiet bool

	// LogFormat is "text" or "json"
	LogFormat string

	// Custom configuration file (optional)
	// When empty, .topoorder.yaml in the working directory is used if present
	ConfigPath string

	// Watch keeps running and rebuilds the order whenever the root changes
	Watch bool

	// Overrides are values set explicitly on the command line
	Overrides config.Overrides

	// Settings, when set, is used as is instead of loading the
	// configuration file and environment
	Settings *config.Config

	// Color enables styled table output when printing to stdout
	Color bool

	// Stdout receives output written to "-"
	Stdout io.Writer

	// LogOutput receives log records (default: stderr)
	LogOutput io.Writer
}

// NewConfig creates a new application configuration
func NewConfig(debug, quiet bool, configPath string) *Config {
	return &Config{
		Debug:      debug,
		Quiet:      quiet,
		ConfigPath: configPath,
	}
}
