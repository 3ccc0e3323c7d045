// Package escalation implements the escalation engine: the per-activation
// state machine that walks ACCEPTED through L1/L2/L3 validation and reports
// the final outcome back to the Gating Layer's circuit breaker.
package escalation

import (
	"time"

	"github.com/codeready-toolchain/scene-validator/pkg/comparator"
	"github.com/codeready-toolchain/scene-validator/pkg/inventory"
)

// Phase names a step in the escalation state machine, for logging only; the
// engine does not branch on a stored Phase value, it branches on outcomes.
type Phase string

const (
	PhaseL1Validate  Phase = "L1_VALIDATE"
	PhaseL2Retrigger Phase = "L2_RETRIGGER"
	PhaseL2Validate  Phase = "L2_VALIDATE"
	PhaseL3Drive     Phase = "L3_DRIVE"
	PhaseL3Validate  Phase = "L3_VALIDATE"
)

// Record tracks one activation's progress through the escalation protocol.
// It is only ever touched from the scheduler's dispatcher, so it carries no
// synchronization of its own.
type Record struct {
	SceneEntityID string
	Scene         inventory.Scene
	ObservedAt    time.Time

	// FailureSet is reset before each validation phase and inspected
	// afterward to pick the next phase's delay multiplier.
	FailureSet comparator.FailureSet

	// M1 is the multiplier applied to validation_delay for Δ₂, recorded so
	// the L2_VALIDATE step can decide whether Δ₃ also escalates.
	M1 int
}
