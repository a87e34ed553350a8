package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"topoorder/pkg/logging"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables that override file configuration.
const (
	EnvRoot    = "TOPOORDER_ROOT"
	EnvOutput  = "TOPOORDER_OUTPUT"
	EnvPackage = "TOPOORDER_PACKAGE"
	EnvFormat  = "TOPOORDER_FORMAT"
)

// dotenvPath is the optional env file loaded by ApplyEnv. Variables that are
// already set in the process environment win over the file.
var dotenvPath = ".env"

// LoadConfig loads configuration from configPath on top of the defaults.
//
// With an empty configPath the DefaultConfigFile in the working directory is
// used if it exists; a missing default file is not an error. An explicitly
// named file must exist. Unknown keys are rejected so that typos surface
// instead of being silently ignored.
func LoadConfig(configPath string) (Config, error) {
	config := GetDefaultConfig()

	explicit := configPath != ""
	if !explicit {
		configPath = DefaultConfigFile
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			logging.Debug("ConfigLoader", "No %s found, using defaults", configPath)
			return config, nil
		}
		return Config{}, &ConfigurationError{
			FilePath:  configPath,
			ErrorType: ErrorTypeIO,
			Message:   err.Error(),
		}
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&config); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, &ConfigurationError{
			FilePath:    configPath,
			ErrorType:   ErrorTypeParse,
			Message:     err.Error(),
			LineNumber:  yamlErrorLine(err),
			Suggestions: []string{"Check YAML syntax and key names (root, package, commentMarker, output, format, template, respectGitignore, exclude, watch)"},
		}
	}

	logging.Info("ConfigLoader", "Loaded configuration from %s", configPath)
	return config, nil
}

// ApplyEnv overlays TOPOORDER_* environment variables onto c, after loading
// the optional .env file in the working directory.
func (c *Config) ApplyEnv() error {
	if err := godotenv.Load(dotenvPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return &ConfigurationError{
			FilePath:  dotenvPath,
			ErrorType: ErrorTypeParse,
			Message:   err.Error(),
		}
	}

	if v := os.Getenv(EnvRoot); v != "" {
		c.Root = v
	}
	if v := os.Getenv(EnvOutput); v != "" {
		c.Output = v
	}
	if v := os.Getenv(EnvPackage); v != "" {
		c.Package = v
	}
	if v := os.Getenv(EnvFormat); v != "" {
		c.Format = v
	}
	return nil
}

// Save writes c as YAML to path, creating parent directories as needed.
func Save(c Config, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create config directory %s: %w", dir, err)
		}
	}
	data, err := yaml.Marshal(&c)
	if err != nil {
		return fmt.Errorf("failed to marshal configuration: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write configuration to %s: %w", path, err)
	}
	return nil
}

// yamlErrorLine pulls the line number out of a yaml.v3 error message such as
// "yaml: line 3: mapping values are not allowed in this context".
func yamlErrorLine(err error) int {
	msg := err.Error()
	idx := strings.Index(msg, "line ")
	if idx < 0 {
		return 0
	}
	var line int
	if _, scanErr := fmt.Sscanf(msg[idx:], "line %d", &line); scanErr != nil {
		return 0
	}
	return line
}
