// Package validator wires the scene validator's components into one owned
// value: config, inventory, identity, hub client, comparator tolerances,
// scheduler, gating layer, escalation engine, and trigger listener. There is
// no module-level state; every dependency is constructed by New and held on
// the returned *Validator.
package validator

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/codeready-toolchain/scene-validator/pkg/comparator"
	"github.com/codeready-toolchain/scene-validator/pkg/config"
	"github.com/codeready-toolchain/scene-validator/pkg/escalation"
	"github.com/codeready-toolchain/scene-validator/pkg/gating"
	"github.com/codeready-toolchain/scene-validator/pkg/hub"
	"github.com/codeready-toolchain/scene-validator/pkg/identity"
	"github.com/codeready-toolchain/scene-validator/pkg/inventory"
	"github.com/codeready-toolchain/scene-validator/pkg/scheduler"
	"github.com/codeready-toolchain/scene-validator/pkg/trigger"
)

// Validator owns every collaborator for one running process.
type Validator struct {
	cfg *config.Config

	Inventory *inventory.Store
	Identity  *identity.Map
	Hub       hub.Client
	Scheduler scheduler.Scheduler
	Gate      *gating.Gate
	Engine    *escalation.Engine
	Listener  *trigger.Listener
}

// New loads the inventory and identity map, builds the gating and escalation
// layers with cfg's tuning, and wires the trigger listener to start
// escalation on acceptance. It performs no I/O against the hub beyond what
// identity.Load needs; Start subscribes to the hub.
func New(cfg *config.Config, hubClient hub.Client, sched scheduler.Scheduler) (*Validator, error) {
	store, err := inventory.Load(cfg.InventoryDir)
	if err != nil {
		return nil, fmt.Errorf("loading inventory: %w", err)
	}

	identityMap, err := identity.Load(cfg.RegistryPath)
	if err != nil {
		return nil, fmt.Errorf("loading identity map: %w", err)
	}

	filter := gating.NewSceneFilter(
		cfg.Filters.ExcludeUIDs,
		cfg.Filters.ExcludeLabels,
		cfg.Filters.IncludeLabels,
		cfg.Filters.NamePatterns,
	)

	gate := gating.NewGate(gating.Config{
		DebounceWindow:   cfg.Timing.DebounceWindow,
		MaxGlobalPerMin:  cfg.RateLimits.MaxGlobalPerMin,
		MaxScenePerMin:   cfg.RateLimits.MaxScenePerMin,
		TransitionDelay:  cfg.Timing.TransitionDelay,
		FailureThreshold: cfg.Breaker.FailureThreshold,
		SuccessThreshold: cfg.Breaker.SuccessThreshold,
		BreakerTimeout:   cfg.Breaker.Timeout,
	}, sched, filter)

	engine := &escalation.Engine{
		Inventory: store,
		Identity:  identityMap,
		Hub:       hubClient,
		Actuator:  &hub.Actuator{Client: hubClient},
		Scheduler: sched,
		Breaker:   gate,
		Tolerances: comparator.Tolerances{
			BrightnessPercent: cfg.Tolerances.Brightness,
			XY:                cfg.Tolerances.Color,
			Mirek:             cfg.Tolerances.ColorTemp,
		},
		ValidationDelay:   cfg.Timing.ValidationDelay,
		Level3SettleDelay: cfg.Timing.Level3SettleDelay,
	}

	listener := &trigger.Listener{
		Hub:       hubClient,
		Gate:      gate,
		Scheduler: sched,
		OnAccept:  engine.Start,
	}

	slog.Info("validator wired",
		"scenes_loaded", store.Len(), "resolvable_lights", identityMap.Len())

	return &Validator{
		cfg:       cfg,
		Inventory: store,
		Identity:  identityMap,
		Hub:       hubClient,
		Scheduler: sched,
		Gate:      gate,
		Engine:    engine,
		Listener:  listener,
	}, nil
}

// Start registers the trigger listener's hub subscription.
func (v *Validator) Start(ctx context.Context) error {
	if err := v.Listener.Start(ctx); err != nil {
		return fmt.Errorf("starting trigger listener: %w", err)
	}
	slog.Info("validator started, listening for scene activations")
	return nil
}

// Health summarizes current gating state for a health-check endpoint.
type Health struct {
	BreakerState    string `json:"breaker_state"`
	ScenesLoaded    int    `json:"scenes_loaded"`
	ResolvableLights int   `json:"resolvable_lights"`
}

// Health reports the validator's current health snapshot.
func (v *Validator) Health() Health {
	return Health{
		BreakerState:     v.Gate.BreakerState().String(),
		ScenesLoaded:     v.Inventory.Len(),
		ResolvableLights: v.Identity.Len(),
	}
}
