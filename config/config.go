// Package config holds the process configuration for the zipshell session.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dendrascience/zipshell/internal/logging"
	"gopkg.in/yaml.v3"
)

// Sentinel errors for package config.
var (
	ErrMissingUsername   = errors.New("username is required")
	ErrMissingFilesystem = errors.New("filesystem archive path is required")
	ErrMissingLogFile    = errors.New("log file path is required")
)

// Config contains the settings for one shell session.
type Config struct {
	Username      string // Name shown in the prompt and recorded in the journal
	Filesystem    string // Path to the zip archive backing the virtual filesystem
	LogFile       string // Path of the JSON command journal (rewritten after every command)
	StartupScript string // Optional script replayed before interactive input
	Verbose       int    // Diagnostic verbosity between 1 (error) and 5 (trace) (Default 2)
}

// ConfigOverride uses pointer fields to distinguish between unset and zero values
// when loading partial configuration. See [Config] for field descriptions.
type ConfigOverride struct {
	Username      *string `yaml:"username,omitempty" json:"username,omitempty"`
	Filesystem    *string `yaml:"filesystem,omitempty" json:"filesystem,omitempty"`
	LogFile       *string `yaml:"logfile,omitempty" json:"logfile,omitempty"`
	StartupScript *string `yaml:"startup_script,omitempty" json:"startup_script,omitempty"`
	Verbose       *int    `yaml:"verbose,omitempty" json:"verbose,omitempty"`
}

// NewDefaultConfig creates a new Config with all default values.
func NewDefaultConfig() *Config {
	return &Config{
		Verbose: logging.DefaultVerbosity,
	}
}

// Merge applies non-nil values from override onto this Config.
func (c *Config) Merge(override *ConfigOverride) {
	if override == nil {
		return
	}
	if override.Username != nil {
		c.Username = *override.Username
	}
	if override.Filesystem != nil {
		c.Filesystem = *override.Filesystem
	}
	if override.LogFile != nil {
		c.LogFile = *override.LogFile
	}
	if override.StartupScript != nil {
		c.StartupScript = *override.StartupScript
	}
	if override.Verbose != nil {
		c.Verbose = *override.Verbose
	}
}

// Validate reports every missing required setting.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Username) == "" {
		errs = append(errs, ErrMissingUsername)
	}
	if c.Filesystem == "" {
		errs = append(errs, ErrMissingFilesystem)
	}
	if c.LogFile == "" {
		errs = append(errs, ErrMissingLogFile)
	}
	return errors.Join(errs...)
}

// LogLevel returns the diagnostic level for the configured verbosity.
func (c *Config) LogLevel() logging.LogLevel {
	return logging.LevelFromVerbosity(c.Verbose)
}

// LoadConfigOverrideFile loads configuration overrides from a file without merging.
// Supports both YAML (.yaml, .yml) and JSON (.json) formats.
func LoadConfigOverrideFile(path string) (*ConfigOverride, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var override ConfigOverride

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &override); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config file: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &override); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config file: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown config file extension: %s", path)
	}

	return &override, nil
}

// NewConfigFromFile creates a new Config by merging file overrides with defaults.
func NewConfigFromFile(path string) (*Config, error) {
	cfg := NewDefaultConfig()
	override, err := LoadConfigOverrideFile(path)
	if err != nil {
		return nil, err
	}
	cfg.Merge(override)
	return cfg, nil
}
