package config

import (
	"fmt"
	"regexp"
)

// Validate performs comprehensive, fail-fast validation of a loaded Config.
func Validate(cfg *Config) error {
	if err := validatePaths(cfg); err != nil {
		return fmt.Errorf("paths: %w", err)
	}
	if err := validateTiming(cfg); err != nil {
		return fmt.Errorf("timing: %w", err)
	}
	if err := validateRateLimits(cfg); err != nil {
		return fmt.Errorf("rate limits: %w", err)
	}
	if err := validateBreaker(cfg); err != nil {
		return fmt.Errorf("circuit breaker: %w", err)
	}
	if err := validateTolerances(cfg); err != nil {
		return fmt.Errorf("tolerances: %w", err)
	}
	if err := validateFilters(cfg); err != nil {
		return fmt.Errorf("filters: %w", err)
	}
	return nil
}

func validatePaths(cfg *Config) error {
	if cfg.InventoryDir == "" {
		return newFieldError("inventory_dir", fmt.Errorf("must not be empty"))
	}
	if cfg.RegistryPath == "" {
		return newFieldError("registry_path", fmt.Errorf("must not be empty"))
	}
	return nil
}

func validateTiming(cfg *Config) error {
	t := cfg.Timing
	if t.TransitionDelay <= 0 {
		return newFieldError("timing.transition_delay", fmt.Errorf("must be positive"))
	}
	if t.ValidationDelay <= 0 {
		return newFieldError("timing.validation_delay", fmt.Errorf("must be positive"))
	}
	if t.Level3SettleDelay <= 0 {
		return newFieldError("timing.level3_settle_delay", fmt.Errorf("must be positive"))
	}
	if t.DebounceWindow <= 0 {
		return newFieldError("timing.debounce_window", fmt.Errorf("must be positive"))
	}
	return nil
}

func validateRateLimits(cfg *Config) error {
	r := cfg.RateLimits
	if r.MaxGlobalPerMin <= 0 {
		return newFieldError("rate_limits.max_global_per_min", fmt.Errorf("must be positive"))
	}
	if r.MaxScenePerMin <= 0 {
		return newFieldError("rate_limits.max_scene_per_min", fmt.Errorf("must be positive"))
	}
	if r.MaxScenePerMin > r.MaxGlobalPerMin {
		return newFieldError("rate_limits.max_scene_per_min", fmt.Errorf("cannot exceed max_global_per_min"))
	}
	return nil
}

func validateBreaker(cfg *Config) error {
	b := cfg.Breaker
	if b.FailureThreshold <= 0 {
		return newFieldError("circuit_breaker.failure_threshold", fmt.Errorf("must be positive"))
	}
	if b.SuccessThreshold <= 0 {
		return newFieldError("circuit_breaker.success_threshold", fmt.Errorf("must be positive"))
	}
	if b.Timeout <= 0 {
		return newFieldError("circuit_breaker.timeout", fmt.Errorf("must be positive"))
	}
	return nil
}

func validateTolerances(cfg *Config) error {
	t := cfg.Tolerances
	if t.Brightness < 0 || t.Brightness > 100 {
		return newFieldError("tolerances.brightness_tolerance", fmt.Errorf("must be in [0,100]"))
	}
	if t.Color < 0 || t.Color > 1 {
		return newFieldError("tolerances.color_tolerance", fmt.Errorf("must be in [0,1]"))
	}
	if t.ColorTemp < 0 {
		return newFieldError("tolerances.color_temp_tolerance", fmt.Errorf("must be non-negative"))
	}
	return nil
}

// validateFilters compiles every name pattern once, failing validation on the
// first invalid regular expression rather than discovering it mid-run.
func validateFilters(cfg *Config) error {
	for _, pattern := range cfg.Filters.NamePatterns {
		if _, err := regexp.Compile(pattern); err != nil {
			return newFieldError("filters.name_patterns", fmt.Errorf("invalid pattern %q: %w", pattern, err))
		}
	}
	return nil
}
