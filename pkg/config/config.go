// Package config loads and validates the scene validator's runtime
// configuration: inventory/registry file locations, timing for the escalation
// protocol, rate limits, circuit-breaker thresholds, comparator tolerances,
// and scene filters.
package config

import "time"

// Config is the fully-resolved, validated configuration for one validator
// process. Values are read once at startup and never mutated.
type Config struct {
	// InventoryDir is the directory of scene catalog files.
	InventoryDir string `yaml:"inventory_dir"`

	// RegistryPath is the hub's local entity-registry file, used to build the
	// IdentityMap.
	RegistryPath string `yaml:"registry_path"`

	Timing     TimingConfig     `yaml:"timing"`
	RateLimits RateLimitConfig  `yaml:"rate_limits"`
	Breaker    BreakerConfig    `yaml:"circuit_breaker"`
	Tolerances ToleranceConfig  `yaml:"tolerances"`
	Filters    FilterConfig     `yaml:"filters"`

	// DebugLogging enables verbose per-attribute comparison logging.
	DebugLogging bool `yaml:"debug_logging"`
}

// TimingConfig controls the escalation engine's wall-clock waits.
type TimingConfig struct {
	TransitionDelay   time.Duration `yaml:"transition_delay"`
	ValidationDelay   time.Duration `yaml:"validation_delay"`
	Level3SettleDelay time.Duration `yaml:"level3_settle_delay"`
	DebounceWindow    time.Duration `yaml:"debounce_window"`
}

// RateLimitConfig bounds how many validations may start in a rolling window.
type RateLimitConfig struct {
	MaxGlobalPerMin int `yaml:"max_global_per_min"`
	MaxScenePerMin  int `yaml:"max_scene_per_min"`
}

// BreakerConfig configures the CLOSED/OPEN/HALF_OPEN gate.
type BreakerConfig struct {
	FailureThreshold int           `yaml:"failure_threshold"`
	SuccessThreshold int           `yaml:"success_threshold"`
	Timeout          time.Duration `yaml:"timeout"`
}

// ToleranceConfig configures the comparator's match tolerances.
type ToleranceConfig struct {
	Brightness    float64 `yaml:"brightness_tolerance"`
	Color         float64 `yaml:"color_tolerance"`
	ColorTemp     float64 `yaml:"color_temp_tolerance"`
}

// FilterConfig configures which scene activations the gating layer accepts.
type FilterConfig struct {
	IncludeLabels []string `yaml:"include_labels"`
	ExcludeLabels []string `yaml:"exclude_labels"`
	ExcludeUIDs   []string `yaml:"exclude_uids"`
	NamePatterns  []string `yaml:"name_patterns"`
}

// Defaults returns the built-in configuration: conservative rate limits and
// breaker thresholds suitable for a typical household hub.
func Defaults() *Config {
	return &Config{
		Timing: TimingConfig{
			TransitionDelay:   5 * time.Second,
			ValidationDelay:   2 * time.Second,
			Level3SettleDelay: 2 * time.Second,
			DebounceWindow:    30 * time.Second,
		},
		RateLimits: RateLimitConfig{
			MaxGlobalPerMin: 20,
			MaxScenePerMin:  5,
		},
		Breaker: BreakerConfig{
			FailureThreshold: 5,
			SuccessThreshold: 2,
			Timeout:          300 * time.Second,
		},
		Tolerances: ToleranceConfig{
			Brightness: 5,
			Color:      0.01,
			ColorTemp:  50,
		},
	}
}
