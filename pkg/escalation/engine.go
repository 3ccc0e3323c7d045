package escalation

import (
	"context"
	"log/slog"
	"time"

	"github.com/codeready-toolchain/scene-validator/pkg/comparator"
	"github.com/codeready-toolchain/scene-validator/pkg/gating"
	"github.com/codeready-toolchain/scene-validator/pkg/hub"
	"github.com/codeready-toolchain/scene-validator/pkg/identity"
	"github.com/codeready-toolchain/scene-validator/pkg/inventory"
	"github.com/codeready-toolchain/scene-validator/pkg/scheduler"
)

// breaker is the subset of *gating.Gate the engine needs to report a final
// outcome; kept narrow so tests can supply a spy without building a full Gate.
type breaker interface {
	RecordSuccess()
	RecordFailure()
}

var _ breaker = (*gating.Gate)(nil)

// Engine drives one activation at a time through ACCEPTED → L1 → [L2 → L3] →
// SUCCESS/FAILURE. It holds no per-activation state itself; each Start call
// produces an independent *Record threaded through the phase callbacks.
type Engine struct {
	Inventory *inventory.Store
	Identity  *identity.Map
	Hub       hub.Client
	Actuator  *hub.Actuator
	Scheduler scheduler.Scheduler
	Breaker   breaker

	Tolerances        comparator.Tolerances
	ValidationDelay   time.Duration
	Level3SettleDelay time.Duration
}

// Start is the Gate's onAccept callback: it looks up the declared scene and
// begins L1_VALIDATE (or, for a legacy catalog, skips straight to
// L2_RETRIGGER since structural comparison is impossible for it).
func (e *Engine) Start(candidate gating.Candidate) {
	scene, ok := e.Inventory.Lookup(candidate.SceneEntityID)
	if !ok {
		slog.Warn("no inventory scene declared for accepted activation",
			"scene_entity_id", candidate.SceneEntityID)
		e.Breaker.RecordFailure()
		return
	}

	rec := &Record{
		SceneEntityID: candidate.SceneEntityID,
		Scene:         scene,
		ObservedAt:    candidate.ObservedAt,
	}

	if rec.Scene.Legacy {
		e.runL2Retrigger(rec, e.ValidationDelay)
		return
	}

	e.runL1Validate(rec)
}

func (e *Engine) runL1Validate(rec *Record) {
	failures := comparator.NewFailureSet()
	matched := e.compareAllLights(rec, failures)
	rec.FailureSet = failures

	slog.Info("L1 validation complete", "scene_entity_id", rec.SceneEntityID,
		"phase", PhaseL1Validate, "matched", matched)

	if matched {
		e.succeed(rec, PhaseL1Validate)
		return
	}

	rec.M1 = 1
	if failures.Equals(comparator.FailureColorTemp) {
		rec.M1 = 2
	}

	e.runL2Retrigger(rec, e.ValidationDelay*time.Duration(rec.M1))
}

func (e *Engine) runL2Retrigger(rec *Record, delta2 time.Duration) {
	if err := e.Actuator.ActivateScene(context.Background(), rec.SceneEntityID); err != nil {
		slog.Error("L2 re-activate failed", "scene_entity_id", rec.SceneEntityID, "error", err)
		e.fail(rec, PhaseL2Retrigger)
		return
	}

	if err := e.Scheduler.RunAfter(delta2, func() { e.runL2Validate(rec) }); err != nil {
		slog.Error("scheduler could not enqueue L2 validation",
			"scene_entity_id", rec.SceneEntityID, "error", err)
		e.fail(rec, PhaseL2Retrigger)
	}
}

func (e *Engine) runL2Validate(rec *Record) {
	if rec.Scene.Legacy {
		// Re-activate counts as success: structural comparison is impossible.
		e.succeed(rec, PhaseL2Validate)
		return
	}

	failures := comparator.NewFailureSet()
	matched := e.compareAllLights(rec, failures)
	rec.FailureSet = failures

	slog.Info("L2 validation complete", "scene_entity_id", rec.SceneEntityID,
		"phase", PhaseL2Validate, "matched", matched)

	if matched {
		e.succeed(rec, PhaseL2Validate)
		return
	}

	m3 := 1
	if rec.M1 == 2 && failures.Equals(comparator.FailureColorTemp) {
		m3 = 3
	}

	e.runL3Drive(rec, e.ValidationDelay*time.Duration(m3))
}

func (e *Engine) runL3Drive(rec *Record, delta3 time.Duration) {
	if err := e.Scheduler.RunAfter(delta3, func() {
		for _, action := range rec.Scene.Actions {
			entityID, ok := e.Identity.Resolve(action.TargetRID)
			if !ok {
				slog.Warn("L3 drive: resource id unresolved",
					"scene_entity_id", rec.SceneEntityID, "target_rid", action.TargetRID)
				continue
			}
			if err := e.Actuator.DriveLight(context.Background(), entityID, action); err != nil {
				slog.Error("L3 drive failed",
					"scene_entity_id", rec.SceneEntityID, "entity_id", entityID, "error", err)
			}
		}

		if err := e.Scheduler.RunAfter(e.Level3SettleDelay, func() { e.runL3Validate(rec) }); err != nil {
			slog.Error("scheduler could not enqueue L3 validation",
				"scene_entity_id", rec.SceneEntityID, "error", err)
			e.fail(rec, PhaseL3Drive)
		}
	}); err != nil {
		slog.Error("scheduler could not enqueue L3 drive",
			"scene_entity_id", rec.SceneEntityID, "error", err)
		e.fail(rec, PhaseL3Drive)
	}
}

func (e *Engine) runL3Validate(rec *Record) {
	failures := comparator.NewFailureSet()
	matched := e.compareAllLights(rec, failures)
	rec.FailureSet = failures

	slog.Info("L3 validation complete", "scene_entity_id", rec.SceneEntityID,
		"phase", PhaseL3Validate, "matched", matched)

	if matched {
		e.succeed(rec, PhaseL3Validate)
		return
	}
	e.fail(rec, PhaseL3Validate)
}

// compareAllLights reads every declared light's observed state and compares
// it against its declared action, appending every mismatch to failures. It
// returns true only if every light resolved, read, and matched; an unresolved
// identity or a failed read counts as a per-light failure without recording a
// comparator.FailureClass (those classes are tolerance mismatches only).
func (e *Engine) compareAllLights(rec *Record, failures comparator.FailureSet) bool {
	matched := true
	for _, action := range rec.Scene.Actions {
		entityID, ok := e.Identity.Resolve(action.TargetRID)
		if !ok {
			slog.Warn("validation: resource id unresolved",
				"scene_entity_id", rec.SceneEntityID, "target_rid", action.TargetRID)
			matched = false
			continue
		}

		state, err := e.Hub.ReadLightState(context.Background(), entityID)
		if err != nil {
			slog.Warn("validation: light state read failed",
				"scene_entity_id", rec.SceneEntityID, "entity_id", entityID, "error", err)
			matched = false
			continue
		}

		if !comparator.Compare(action, state, e.Tolerances, failures) {
			matched = false
		}
	}
	return matched
}

func (e *Engine) succeed(rec *Record, phase Phase) {
	slog.Info("activation validated", "scene_entity_id", rec.SceneEntityID, "phase", phase)
	e.Breaker.RecordSuccess()
}

func (e *Engine) fail(rec *Record, phase Phase) {
	slog.Warn("activation failed validation", "scene_entity_id", rec.SceneEntityID,
		"phase", phase, "failures", failureNames(rec.FailureSet))
	e.Breaker.RecordFailure()
}

func failureNames(set comparator.FailureSet) []string {
	names := make([]string, 0, len(set))
	for class := range set {
		names = append(names, string(class))
	}
	return names
}
