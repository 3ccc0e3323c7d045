package gating

import (
	"log/slog"
	"time"

	"github.com/codeready-toolchain/scene-validator/pkg/hub"
	"github.com/codeready-toolchain/scene-validator/pkg/scheduler"
)

// Candidate is a trigger candidate handed from the trigger listener to
// the Gating Layer: a scene activation that passed the listener's basic
// filters and is now subject to debounce/rate/circuit-breaker/scene-filter
// gating.
type Candidate struct {
	SceneEntityID string
	ObservedAt    time.Time
	Meta          hub.SceneMeta
}

// Config carries the tunables the Gate needs from pkg/config, kept narrow so
// this package does not import the config package directly.
type Config struct {
	DebounceWindow   time.Duration
	MaxGlobalPerMin  int
	MaxScenePerMin   int
	TransitionDelay  time.Duration
	FailureThreshold int
	SuccessThreshold int
	BreakerTimeout   time.Duration
}

// Gate is the gating layer: it owns the CircuitBreaker, the global and
// per-scene RateWindows, and the DebounceMap, and decides whether a
// candidate becomes a validation. See the package doc comment for the
// single-dispatcher assumption that lets this type skip locking.
type Gate struct {
	cfg Config

	breaker  *CircuitBreaker
	global   RateWindow
	perScene map[string]*RateWindow
	debounce *DebounceMap
	filter   *SceneFilter

	sched scheduler.Scheduler
}

// NewGate constructs a Gate. filter may be nil to accept every scene.
func NewGate(cfg Config, sched scheduler.Scheduler, filter *SceneFilter) *Gate {
	if filter == nil {
		filter = NewSceneFilter(nil, nil, nil, nil)
	}
	return &Gate{
		cfg:      cfg,
		breaker:  NewCircuitBreaker(cfg.FailureThreshold, cfg.SuccessThreshold, cfg.BreakerTimeout),
		perScene: make(map[string]*RateWindow),
		debounce: NewDebounceMap(),
		filter:   filter,
		sched:    sched,
	}
}

// RejectReason names why a candidate did not become a validation.
type RejectReason string

const (
	RejectNone           RejectReason = ""
	RejectBreakerOpen    RejectReason = "circuit_breaker_open"
	RejectDebounced      RejectReason = "debounced"
	RejectGlobalRate     RejectReason = "rate_limited_global"
	RejectSceneRate      RejectReason = "rate_limited_scene"
	RejectFiltered       RejectReason = "filtered"
	RejectSchedulerError RejectReason = "scheduler_error"
)

// Evaluate applies the gate chain in order, with short-circuit: circuit
// breaker, debounce, global rate limit, per-scene rate limit, scene filter.
// On accept, it records the candidate into both rate windows and the
// debounce map, then schedules onAccept to run TransitionDelay after the
// scheduler's current time via the injected Scheduler — the L1 validation
// start.
func (g *Gate) Evaluate(candidate Candidate, onAccept func(Candidate)) RejectReason {
	now := g.sched.Now()

	if !g.breaker.AllowAt(now) {
		slog.Info("candidate rejected: circuit breaker open",
			"scene_entity_id", candidate.SceneEntityID, "breaker_state", g.breaker.State())
		return RejectBreakerOpen
	}

	if !g.debounce.Allow(candidate.SceneEntityID, now, g.cfg.DebounceWindow) {
		slog.Info("candidate rejected: debounced", "scene_entity_id", candidate.SceneEntityID)
		return RejectDebounced
	}

	if g.global.Count(now) >= g.cfg.MaxGlobalPerMin {
		slog.Info("candidate rejected: global rate limit", "scene_entity_id", candidate.SceneEntityID)
		return RejectGlobalRate
	}

	sceneWindow := g.sceneWindow(candidate.SceneEntityID)
	if sceneWindow.Count(now) >= g.cfg.MaxScenePerMin {
		slog.Info("candidate rejected: per-scene rate limit", "scene_entity_id", candidate.SceneEntityID)
		return RejectSceneRate
	}

	if !g.filter.Allow(candidate.Meta) {
		slog.Info("candidate rejected: scene filter", "scene_entity_id", candidate.SceneEntityID)
		return RejectFiltered
	}

	g.global.Record(now)
	sceneWindow.Record(now)
	g.debounce.Record(candidate.SceneEntityID, now)

	if err := g.sched.RunAfter(g.cfg.TransitionDelay, func() { onAccept(candidate) }); err != nil {
		slog.Error("scheduler could not enqueue L1 validation",
			"scene_entity_id", candidate.SceneEntityID, "error", err)
		return RejectSchedulerError
	}

	slog.Info("candidate accepted", "scene_entity_id", candidate.SceneEntityID)
	return RejectNone
}

func (g *Gate) sceneWindow(sceneEntityID string) *RateWindow {
	w, ok := g.perScene[sceneEntityID]
	if !ok {
		w = &RateWindow{}
		g.perScene[sceneEntityID] = w
	}
	return w
}

// RecordSuccess reports a completed escalation's success to the breaker.
func (g *Gate) RecordSuccess() {
	g.breaker.RecordSuccess(g.sched.Now())
}

// RecordFailure reports a completed escalation's failure to the breaker.
func (g *Gate) RecordFailure() {
	g.breaker.RecordFailure(g.sched.Now())
}

// BreakerState exposes the current breaker state for health reporting.
func (g *Gate) BreakerState() BreakerState {
	return g.breaker.State()
}
