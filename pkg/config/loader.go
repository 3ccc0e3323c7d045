package config

import (
	"fmt"
	"log/slog"
	"os"

	"dario.cat/mergo"
	"gopkg.in/yaml.v3"
)

// Initialize loads, merges, and validates configuration from a single YAML
// file, applying built-in defaults for anything left unset. This is the
// primary entry point for configuration loading.
//
// Steps performed:
//  1. Read the YAML file at path.
//  2. Expand environment variables.
//  3. Parse YAML into a Config.
//  4. Merge over the built-in Defaults (YAML values win).
//  5. Validate the result.
//  6. Return a Config ready for use.
func Initialize(path string) (*Config, error) {
	log := slog.With("config_path", path)
	log.Info("initializing configuration")

	cfg, err := load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	log.Info("configuration initialized",
		"inventory_dir", cfg.InventoryDir,
		"registry_path", cfg.RegistryPath,
		"debounce_window", cfg.Timing.DebounceWindow)

	return cfg, nil
}

func load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, newLoadError(path, err)
	}

	expanded := ExpandEnv(raw)

	var parsed Config
	if err := yaml.Unmarshal(expanded, &parsed); err != nil {
		return nil, newLoadError(path, err)
	}

	merged := Defaults()
	if err := mergo.Merge(merged, parsed, mergo.WithOverride); err != nil {
		return nil, newLoadError(path, fmt.Errorf("merging over defaults: %w", err))
	}

	return merged, nil
}

// LoadError wraps a configuration file read/parse failure with its path.
type LoadError struct {
	File string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load %s: %v", e.File, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

func newLoadError(file string, err error) *LoadError {
	return &LoadError{File: file, Err: err}
}
