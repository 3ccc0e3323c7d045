// Package comparator applies tolerance-aware equality between a scene's
// declared per-light state and the hub's observed state. Compare is a pure
// function: no I/O, no locking, safe to call from any goroutine.
package comparator

import (
	"math"

	"github.com/codeready-toolchain/scene-validator/pkg/hub"
	"github.com/codeready-toolchain/scene-validator/pkg/inventory"
)

// FailureClass names one attribute dimension the comparator can disagree on.
type FailureClass string

const (
	FailureOnOff      FailureClass = "on_off"
	FailureBrightness FailureClass = "brightness"
	FailureColor      FailureClass = "color"
	FailureColorTemp  FailureClass = "color_temp"
)

// FailureSet is the accumulated set of failure classes across every light in
// one validation phase. The comparator appends to it rather than replacing
// it, so a caller validating several lights can inspect the union.
type FailureSet map[FailureClass]struct{}

// NewFailureSet returns an empty set.
func NewFailureSet() FailureSet {
	return make(FailureSet)
}

// Add records class as present in the set.
func (s FailureSet) Add(class FailureClass) {
	s[class] = struct{}{}
}

// Has reports whether class is present.
func (s FailureSet) Has(class FailureClass) bool {
	_, ok := s[class]
	return ok
}

// Equals reports whether s contains exactly the given classes, nothing more
// or less — used by the escalation engine to detect "only color_temp failed".
func (s FailureSet) Equals(classes ...FailureClass) bool {
	if len(s) != len(classes) {
		return false
	}
	for _, c := range classes {
		if !s.Has(c) {
			return false
		}
	}
	return true
}

// Tolerances configures how close an observed value must be to the declared
// value to count as a match.
type Tolerances struct {
	// BrightnessPercent is the allowed absolute difference in percentage
	// points.
	BrightnessPercent float64
	// XY is the allowed absolute difference on each chromaticity axis.
	XY float64
	// Mirek is the allowed absolute difference in mireds.
	Mirek float64
}

// Compare applies the rules in order, short-circuiting on the first
// mismatch, and appends every discovered failure class to failures.
//
//  1. on/off mismatch → fail immediately.
//  2. expected off and observed off → match immediately, other fields moot.
//  3. brightness, if declared: normalize observed native 0-255 to percent.
//  4. xy, if declared and observed is in xy mode (skip otherwise — the light
//     may legitimately be in color-temperature mode).
//  5. mirek, if declared and observed is in color-temperature mode.
func Compare(expected inventory.Action, observed hub.LightState, tol Tolerances, failures FailureSet) bool {
	if expected.On != observed.On {
		failures.Add(FailureOnOff)
		return false
	}

	if !expected.On {
		return true
	}

	if expected.Brightness != nil {
		observedPercent := float64(observed.Brightness) / 255 * 100
		if math.Abs(observedPercent-*expected.Brightness) > tol.BrightnessPercent {
			failures.Add(FailureBrightness)
			return false
		}
	}

	if expected.Color != nil && observed.Mode == hub.ColorModeXY {
		dx := math.Abs(observed.XY.X - expected.Color.X)
		dy := math.Abs(observed.XY.Y - expected.Color.Y)
		if dx > tol.XY || dy > tol.XY {
			failures.Add(FailureColor)
			return false
		}
	}

	if expected.Mirek != nil && observed.Mode == hub.ColorModeColorTemp {
		if math.Abs(float64(observed.Mirek-*expected.Mirek)) > tol.Mirek {
			failures.Add(FailureColorTemp)
			return false
		}
	}

	return true
}
