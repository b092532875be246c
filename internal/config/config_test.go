package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	return path
}

// TestDefaultConfig verifies default configuration values
func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.ProgPrefix != "" {
		t.Errorf("ProgPrefix = %q, want empty", cfg.ProgPrefix)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "warn")
	}
}

// TestLoadConfigValidFile tests loading a valid YAML config file
func TestLoadConfigValidFile(t *testing.T) {
	path := writeConfig(t, "prog_prefix: uu-\nlog_level: DEBUG\n")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.ProgPrefix != "uu-" {
		t.Errorf("ProgPrefix = %q, want %q", cfg.ProgPrefix, "uu-")
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "debug")
	}
}

// TestLoadConfigFileNotExists tests fallback to defaults when file doesn't exist
func TestLoadConfigFileNotExists(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.yaml")
	if err != nil {
		t.Fatalf("LoadConfig() should not error on missing file, got: %v", err)
	}

	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %q, want %q (default)", cfg.LogLevel, "warn")
	}
}

// TestLoadConfigMalformed tests that invalid YAML is reported
func TestLoadConfigMalformed(t *testing.T) {
	path := writeConfig(t, "prog_prefix: [unterminated\n")

	_, err := LoadConfig(path)
	if err == nil {
		t.Fatal("LoadConfig() should error on malformed YAML")
	}
	if !strings.Contains(err.Error(), "failed to parse config file") {
		t.Errorf("unexpected error: %v", err)
	}
}

// TestLoadConfigPartial tests that absent keys keep their defaults
func TestLoadConfigPartial(t *testing.T) {
	path := writeConfig(t, "prog_prefix: gnu-\n")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.ProgPrefix != "gnu-" {
		t.Errorf("ProgPrefix = %q, want %q", cfg.ProgPrefix, "gnu-")
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "warn")
	}
}

// TestLoadEnvOverridesFile verifies environment precedence
func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "prog_prefix: file-\nlog_level: info\n")
	t.Setenv(EnvConfig, path)
	t.Setenv(EnvProgPrefix, "env-")
	t.Setenv(EnvLogLevel, "error")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.ProgPrefix != "env-" {
		t.Errorf("ProgPrefix = %q, want %q", cfg.ProgPrefix, "env-")
	}
	if cfg.LogLevel != "error" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "error")
	}
}

// TestLoadEmptyPrefixFromEnv verifies that an empty PROG_PREFIX still overrides the file
func TestLoadEmptyPrefixFromEnv(t *testing.T) {
	path := writeConfig(t, "prog_prefix: file-\n")
	t.Setenv(EnvConfig, path)
	t.Setenv(EnvProgPrefix, "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.ProgPrefix != "" {
		t.Errorf("ProgPrefix = %q, want empty", cfg.ProgPrefix)
	}
}

// TestLoadWithoutConfigFile verifies defaults plus environment
func TestLoadWithoutConfigFile(t *testing.T) {
	t.Setenv(EnvConfig, "")
	t.Setenv(EnvProgPrefix, "uu-")
	t.Setenv(EnvLogLevel, "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.ProgPrefix != "uu-" {
		t.Errorf("ProgPrefix = %q, want %q", cfg.ProgPrefix, "uu-")
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "warn")
	}
}

// TestLoadInvalidLevel verifies validation runs after merging
func TestLoadInvalidLevel(t *testing.T) {
	t.Setenv(EnvConfig, "")
	t.Setenv(EnvLogLevel, "verbose")

	_, err := Load()
	if err == nil {
		t.Fatal("Load() should reject an unknown log level")
	}
	if !strings.Contains(err.Error(), "invalid log_level") {
		t.Errorf("unexpected error: %v", err)
	}
}

// TestLoadMalformedFile verifies the file path is named in the error
func TestLoadMalformedFile(t *testing.T) {
	path := writeConfig(t, "log_level: [\n")
	t.Setenv(EnvConfig, path)

	_, err := Load()
	if err == nil {
		t.Fatal("Load() should fail on malformed config")
	}
	if !strings.Contains(err.Error(), path) {
		t.Errorf("error %q should mention %s", err, path)
	}
}

// TestValidate tests log level validation
func TestValidate(t *testing.T) {
	for _, level := range []string{"trace", "debug", "info", "warn", "error"} {
		cfg := DefaultConfig()
		cfg.LogLevel = level
		if err := cfg.Validate(); err != nil {
			t.Errorf("Validate() with %q: %v", level, err)
		}
	}

	cfg := DefaultConfig()
	cfg.LogLevel = ""
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() should reject an empty log level")
	}
}
