package domain

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

// Config represents the server configuration.
// This is the root configuration structure loaded from YAML files.
type Config struct {
	Transport TransportConfig `yaml:"transport"`
	Logging   LoggingConfig   `yaml:"logging"`
	Snapshot  SnapshotConfig  `yaml:"snapshot"`
	Bridge    BridgeConfig    `yaml:"bridge"`
}

// TransportConfig defines transport settings.
// Specifies whether to use stdio or HTTP transport.
type TransportConfig struct {
	Type string     `yaml:"type"` // "stdio" or "http"
	HTTP HTTPConfig `yaml:"http,omitempty"`
}

// HTTPConfig defines HTTP transport settings.
// Only used when transport type is "http".
type HTTPConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// LoggingConfig controls the structured logger.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn or error
}

// SnapshotConfig points at the local tool-state database.
// An empty path disables snapshots.
type SnapshotConfig struct {
	Path string `yaml:"path,omitempty"`
}

// BridgeConfig tunes the query endpoint envelope.
type BridgeConfig struct {
	// IncludeCatalog is the default for responses that do not pass includeCatalog.
	IncludeCatalog *bool `yaml:"include_catalog,omitempty"`
}

// CatalogIncludedByDefault reports whether query responses embed the catalog
// when the caller does not say otherwise.
func (b BridgeConfig) CatalogIncludedByDefault() bool {
	return b.IncludeCatalog == nil || *b.IncludeCatalog
}

var validLogLevels = map[string]bool{"": true, "debug": true, "info": true, "warn": true, "error": true}

// DefaultConfig returns the configuration used when no file is given:
// stdio transport, info logging, no snapshot store.
func DefaultConfig() *Config {
	return &Config{
		Transport: TransportConfig{Type: "stdio"},
		Logging:   LoggingConfig{Level: "info"},
	}
}

// LoadConfig reads and validates configuration from a YAML file.
// Returns an error if the file is missing, has invalid syntax, or fails validation.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("configuration file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read configuration file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("invalid YAML syntax in configuration file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate checks the configuration for completeness and correctness.
// All failures are reported together.
func (c *Config) Validate() error {
	var err error

	err = multierr.Append(err, c.validateTransport())

	if !validLogLevels[c.Logging.Level] {
		err = multierr.Append(err, fmt.Errorf("invalid log level '%s': must be debug, info, warn or error", c.Logging.Level))
	}

	return err
}

// validateTransport validates the transport configuration.
func (c *Config) validateTransport() error {
	var err error

	switch c.Transport.Type {
	case "":
		err = multierr.Append(err, errors.New("transport type is required"))
	case "stdio":
	case "http":
		if c.Transport.HTTP.Host == "" {
			err = multierr.Append(err, errors.New("HTTP host is required when transport type is 'http'"))
		}
		if c.Transport.HTTP.Port <= 0 || c.Transport.HTTP.Port > 65535 {
			err = multierr.Append(err, fmt.Errorf("invalid HTTP port %d: must be between 1 and 65535", c.Transport.HTTP.Port))
		}
	default:
		err = multierr.Append(err, fmt.Errorf("invalid transport type '%s': must be 'stdio' or 'http'", c.Transport.Type))
	}

	return err
}
