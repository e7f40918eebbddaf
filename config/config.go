// Package config provides configuration loading for fieldcodec runs.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/zoobzio/fieldcodec"
	"github.com/zoobzio/fieldcodec/host"
)

// SchemeNoneName is the configuration spelling of the identity scheme.
const SchemeNoneName = "none"

// Config represents a complete run configuration
type Config struct {
	// Field is the input field to transform
	Field string `yaml:"field"`
	// Mode is "encode" or "decode" (default: encode)
	Mode string `yaml:"mode"`
	// Scheme is a registered scheme; empty or "none" leaves values untouched
	Scheme string `yaml:"scheme"`
	// Format is the table document format (default: json)
	Format string `yaml:"format"`
	// Limit caps the number of output rows (0 = unlimited)
	Limit int `yaml:"limit"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Mode:   string(fieldcodec.ModeEncode),
		Format: "json",
	}
}

// Validate checks that the configuration is valid.
// An empty field is left for the pipeline to report.
func (c *Config) Validate() error {
	pc := c.PipelineConfig()
	if !fieldcodec.IsValidMode(pc.Mode) {
		return fmt.Errorf("mode: %w: %q", fieldcodec.ErrInvalidMode, c.Mode)
	}
	if !fieldcodec.IsValidScheme(pc.Scheme) {
		return fmt.Errorf("scheme: %w: %q", fieldcodec.ErrUnknownScheme, c.Scheme)
	}
	if _, err := host.FormatFor(c.Format); err != nil {
		return fmt.Errorf("format: %w", err)
	}
	if c.Limit < 0 {
		return fmt.Errorf("limit must not be negative")
	}
	return nil
}

// PipelineConfig converts the configuration to a fieldcodec.Config.
func (c *Config) PipelineConfig() fieldcodec.Config {
	scheme := fieldcodec.Scheme(c.Scheme)
	if c.Scheme == SchemeNoneName {
		scheme = fieldcodec.SchemeNone
	}
	return fieldcodec.Config{
		Field:  c.Field,
		Mode:   fieldcodec.Mode(c.Mode),
		Scheme: scheme,
	}
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := &Config{}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Merge merges another config into this one (other takes precedence for non-zero values)
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}
	if other.Field != "" {
		c.Field = other.Field
	}
	if other.Mode != "" {
		c.Mode = other.Mode
	}
	if other.Scheme != "" {
		c.Scheme = other.Scheme
	}
	if other.Format != "" {
		c.Format = other.Format
	}
	if other.Limit != 0 {
		c.Limit = other.Limit
	}
}
