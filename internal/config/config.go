package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Default date patterns, strftime syntax.
const (
	DefaultDateInput       = "%Y-%m-%d"
	DefaultDateOutput      = "%d/%m/%Y"
	DefaultTimestampOutput = "%d/%m/%Y %H:%M"
)

// Dir is the per-workspace state directory.
const Dir = ".casetracker"

// Config models settings.yml.
type Config struct {
	Dates DatePatterns `yaml:"dates"`
}

// DatePatterns are the user-configurable strftime patterns.
type DatePatterns struct {
	Input     string `yaml:"input"`
	Output    string `yaml:"output"`
	Timestamp string `yaml:"timestamp"`
}

// LogConfig selects the log level and handler format.
type LogConfig struct {
	Level  string
	Format string
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{Dates: DatePatterns{
		Input:     DefaultDateInput,
		Output:    DefaultDateOutput,
		Timestamp: DefaultTimestampOutput,
	}}
}

// Validate ensures every pattern compiles.
func (c *Config) Validate() error {
	if _, err := CompileDate(c.Dates.Input); err != nil {
		return fmt.Errorf("dates.input: %w", err)
	}
	if _, err := CompileDate(c.Dates.Output); err != nil {
		return fmt.Errorf("dates.output: %w", err)
	}
	if _, err := CompileTimestamp(c.Dates.Timestamp); err != nil {
		return fmt.Errorf("dates.timestamp: %w", err)
	}
	return nil
}

// Path returns the settings file path for a workspace.
func Path(workspace string) string {
	if workspace == "" {
		workspace = "."
	}
	return filepath.Join(workspace, Dir, "settings.yml")
}

// Load reads and validates the settings file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return FromYAML(data)
}

// LoadOptional returns the defaults if the file does not exist.
func LoadOptional(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, err
	}
	return FromYAML(data)
}

// FromYAML parses and validates settings. Missing patterns take their defaults.
func FromYAML(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("invalid settings yaml: %w", err)
	}
	def := Default()
	if cfg.Dates.Input == "" {
		cfg.Dates.Input = def.Dates.Input
	}
	if cfg.Dates.Output == "" {
		cfg.Dates.Output = def.Dates.Output
	}
	if cfg.Dates.Timestamp == "" {
		cfg.Dates.Timestamp = def.Dates.Timestamp
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// YAML renders the settings file content.
func (c *Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}

// Save writes the settings to path, creating its directory.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := c.YAML()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
