package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Environment variables read by Load.
const (
	// EnvConfig points at an optional YAML config file.
	EnvConfig = "TOOLBOX_CONFIG"

	// EnvProgPrefix prefixes the binary name embedded in generated
	// completion scripts.
	EnvProgPrefix = "PROG_PREFIX"

	// EnvLogLevel overrides log_level.
	EnvLogLevel = "TOOLBOX_LOG_LEVEL"
)

// Config represents toolbox configuration options
type Config struct {
	// ProgPrefix is prepended to the binary name in completion scripts
	ProgPrefix string `yaml:"prog_prefix"`

	// LogLevel sets the logging verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`
}

// DefaultConfig returns a Config with sensible default values
func DefaultConfig() *Config {
	return &Config{
		ProgPrefix: "",
		LogLevel:   "warn",
	}
}

// LoadConfig loads configuration from the specified file path
// If the file doesn't exist, returns default configuration without error
// If the file exists but is malformed, returns an error
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// An explicitly empty prog_prefix is still a setting, so presence is
	// checked on the raw document rather than on the zero value.
	var rawMap map[string]interface{}
	if err := yaml.Unmarshal(data, &rawMap); err == nil {
		if _, exists := rawMap["prog_prefix"]; exists {
			cfg.ProgPrefix = fileCfg.ProgPrefix
		}
	}
	if fileCfg.LogLevel != "" {
		cfg.LogLevel = strings.ToLower(fileCfg.LogLevel)
	}

	return cfg, nil
}

// Load builds the runtime configuration: defaults, then the file named by
// TOOLBOX_CONFIG (if any), then environment overrides. The result is
// validated.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	if path := os.Getenv(EnvConfig); path != "" {
		fileCfg, err := LoadConfig(path)
		if err != nil {
			return nil, fmt.Errorf("config %s: %w", path, err)
		}
		cfg = fileCfg
	}

	cfg.MergeWithEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// MergeWithEnv applies environment overrides.
// PROG_PREFIX wins over the file even when set to the empty string.
func (c *Config) MergeWithEnv() {
	if prefix, ok := os.LookupEnv(EnvProgPrefix); ok {
		c.ProgPrefix = prefix
	}
	if level := strings.TrimSpace(os.Getenv(EnvLogLevel)); level != "" {
		c.LogLevel = strings.ToLower(level)
	}
}

// Validate validates the configuration values
// Returns an error if any values are invalid
func (c *Config) Validate() error {
	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[c.LogLevel] {
		return fmt.Errorf("invalid log_level %q, must be one of: trace, debug, info, warn, error", c.LogLevel)
	}

	return nil
}
