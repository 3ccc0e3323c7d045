// Package trigger implements the trigger listener: it subscribes to
// scene state-change notifications from the hub and hands qualifying
// candidates to the Gating Layer.
package trigger

import (
	"context"
	"log/slog"

	"github.com/codeready-toolchain/scene-validator/pkg/gating"
	"github.com/codeready-toolchain/scene-validator/pkg/hub"
	"github.com/codeready-toolchain/scene-validator/pkg/scheduler"
)

// unavailableState is the hub's sentinel for an entity with no usable state.
const unavailableState = "unavailable"

// Listener subscribes to every scene-typed entity's state changes and routes
// qualifying candidates onto the scheduler's single dispatcher before
// evaluating them against the Gating Layer — the hub's notification callback
// may arrive on a goroutine of the client's own choosing, so it must not
// touch Gate state directly.
type Listener struct {
	Hub       hub.Client
	Gate      *gating.Gate
	Scheduler scheduler.Scheduler

	// OnAccept runs when the Gate accepts a candidate; it starts the
	// escalation engine for that activation.
	OnAccept func(gating.Candidate)
}

// Start registers the hub subscription. It returns once subscription setup
// either succeeds or fails; notifications arrive asynchronously afterward.
func (l *Listener) Start(ctx context.Context) error {
	return l.Hub.SubscribeSceneStateChanges(ctx, l.handleStateChange)
}

func (l *Listener) handleStateChange(entityID, oldState, newState string) {
	if newState == "" || newState == unavailableState || newState == oldState {
		return
	}

	observedAt := l.Scheduler.Now()

	if err := l.Scheduler.Run(func() {
		meta, err := l.Hub.ReadSceneMeta(context.Background(), entityID)
		if err != nil {
			slog.Warn("trigger: scene meta read failed, evaluating without it",
				"scene_entity_id", entityID, "error", err)
		}

		candidate := gating.Candidate{
			SceneEntityID: entityID,
			ObservedAt:    observedAt,
			Meta:          meta,
		}

		reason := l.Gate.Evaluate(candidate, l.OnAccept)
		if reason != gating.RejectNone {
			slog.Info("trigger candidate rejected by gate",
				"scene_entity_id", entityID, "reason", reason)
		}
	}); err != nil {
		slog.Error("trigger: scheduler could not enqueue candidate evaluation",
			"scene_entity_id", entityID, "error", err)
	}
}
