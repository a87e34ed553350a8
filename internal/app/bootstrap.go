package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"topoorder/internal/config"
	"topoorder/pkg/logging"
)

// Application represents the main application structure that bootstraps and
// runs topoorder. It holds the resolved settings every pipeline run uses.
//
// The Application follows a two-phase initialization pattern:
//  1. Bootstrap phase: initialize logging, resolve and validate settings
//  2. Execution phase: run the order pipeline once or in watch mode
//
// Example usage:
//
//	cfg := app.NewConfig(false, false, "")
//	application, err := app.NewApplication(cfg)
//	if err != nil {
//	    return fmt.Errorf("failed to create application: %w", err)
//	}
//	return application.Run(ctx)
type Application struct {
	config   *Config
	settings config.Config
	stdout   io.Writer
}

// NewApplication creates and initializes a new application instance with the
// provided configuration. This function performs the complete bootstrap
// sequence:
//
//  1. Configures logging from the verbosity and log format settings
//  2. Loads the configuration file (explicit path or .topoorder.yaml)
//  3. Overlays the .env file and TOPOORDER_* environment variables
//  4. Applies command line overrides and validates the result
//
// Later layers win, so a flag beats the environment, which beats the file.
func NewApplication(cfg *Config) (*Application, error) {
	if err := initLogging(cfg); err != nil {
		return nil, err
	}

	settings, err := resolveSettings(cfg)
	if err != nil {
		return nil, err
	}

	stdout := cfg.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}

	logging.Debug("Bootstrap", "Resolved settings: root=%s package=%s output=%s format=%s",
		settings.Root, settings.Package, settings.Output, settings.Format)

	return &Application{
		config:   cfg,
		settings: settings,
		stdout:   stdout,
	}, nil
}

func initLogging(cfg *Config) error {
	appLogLevel := logging.LevelWarn
	switch {
	case cfg.Debug:
		appLogLevel = logging.LevelDebug
	case cfg.Verbose:
		appLogLevel = logging.LevelInfo
	}

	format, err := logging.ParseFormat(cfg.LogFormat)
	if err != nil {
		return err
	}

	logOutput := cfg.LogOutput
	if logOutput == nil {
		logOutput = os.Stderr
	}
	if cfg.Quiet {
		// If quiet mode is enabled, suppress all log output
		logOutput = io.Discard
	}

	logging.Init(logging.Options{Level: appLogLevel, Format: format, Output: logOutput})
	return nil
}

func resolveSettings(cfg *Config) (config.Config, error) {
	var settings config.Config

	if cfg.Settings != nil {
		settings = *cfg.Settings
	} else {
		loaded, err := config.LoadConfig(cfg.ConfigPath)
		if err != nil {
			logging.Error("Bootstrap", err, "Failed to load configuration")
			return config.Config{}, fmt.Errorf("failed to load configuration: %w", err)
		}
		if err := loaded.ApplyEnv(); err != nil {
			logging.Error("Bootstrap", err, "Failed to apply environment")
			return config.Config{}, fmt.Errorf("failed to apply environment: %w", err)
		}
		settings = loaded
	}

	settings.Apply(cfg.Overrides)

	if err := settings.Validate(); err != nil {
		return config.Config{}, err
	}
	return settings, nil
}

// Settings returns the resolved configuration.
func (a *Application) Settings() config.Config {
	return a.settings
}

// Run executes the application
//
// In watch mode it blocks until ctx is cancelled or the process receives
// SIGINT/SIGTERM; otherwise it runs the pipeline once and returns its error.
func (a *Application) Run(ctx context.Context) error {
	if a.config.Watch {
		return runWatchMode(ctx, a)
	}
	return runOnceMode(ctx, a)
}
