package comparator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/codeready-toolchain/scene-validator/pkg/hub"
	"github.com/codeready-toolchain/scene-validator/pkg/inventory"
)

func ptr[T any](v T) *T { return &v }

func defaultTolerances() Tolerances {
	return Tolerances{BrightnessPercent: 5, XY: 0.01, Mirek: 50}
}

func TestCompareOnOffMismatch(t *testing.T) {
	expected := inventory.Action{On: true}
	observed := hub.LightState{On: false}

	failures := NewFailureSet()
	matched := Compare(expected, observed, defaultTolerances(), failures)

	assert.False(t, matched)
	assert.True(t, failures.Has(FailureOnOff))
}

func TestCompareOffLightsAlwaysMatchRegardlessOfOtherFields(t *testing.T) {
	expected := inventory.Action{On: false, Brightness: ptr(80.0)}
	observed := hub.LightState{On: false, Brightness: 40, Mode: hub.ColorModeXY, XY: hub.XYPoint{X: 0.9, Y: 0.9}}

	failures := NewFailureSet()
	matched := Compare(expected, observed, defaultTolerances(), failures)

	assert.True(t, matched)
	assert.Empty(t, failures)
}

func TestCompareHappyPathBrightness(t *testing.T) {
	// Scenario 1: expected 80%, observed native 204 (80%).
	expected := inventory.Action{On: true, Brightness: ptr(80.0)}
	observed := hub.LightState{On: true, Brightness: 204}

	failures := NewFailureSet()
	matched := Compare(expected, observed, defaultTolerances(), failures)

	assert.True(t, matched)
	assert.Empty(t, failures)
}

func TestCompareBrightnessOutsideTolerance(t *testing.T) {
	// Scenario 2: expected 80%, observed native 178 (~69.8%), below 75% floor.
	expected := inventory.Action{On: true, Brightness: ptr(80.0)}
	observed := hub.LightState{On: true, Brightness: 178}

	failures := NewFailureSet()
	matched := Compare(expected, observed, defaultTolerances(), failures)

	assert.False(t, matched)
	assert.True(t, failures.Has(FailureBrightness))
}

func TestCompareColorTempOnlyMismatch(t *testing.T) {
	// Scenario 3: expected mirek 366, observed 420, delta 54 > tolerance 50.
	expected := inventory.Action{On: true, Mirek: ptr(366)}
	observed := hub.LightState{On: true, Mode: hub.ColorModeColorTemp, Mirek: 420}

	failures := NewFailureSet()
	matched := Compare(expected, observed, defaultTolerances(), failures)

	assert.False(t, matched)
	assert.True(t, failures.Equals(FailureColorTemp))
}

func TestCompareXYSkippedWhenObservedInColorTempMode(t *testing.T) {
	expected := inventory.Action{On: true, Color: &inventory.XY{X: 0.5, Y: 0.5}}
	observed := hub.LightState{On: true, Mode: hub.ColorModeColorTemp, Mirek: 300}

	failures := NewFailureSet()
	matched := Compare(expected, observed, defaultTolerances(), failures)

	assert.True(t, matched)
	assert.Empty(t, failures)
}

func TestCompareMirekSkippedWhenObservedInXYMode(t *testing.T) {
	expected := inventory.Action{On: true, Mirek: ptr(300)}
	observed := hub.LightState{On: true, Mode: hub.ColorModeXY, XY: hub.XYPoint{X: 0.4, Y: 0.4}}

	failures := NewFailureSet()
	matched := Compare(expected, observed, defaultTolerances(), failures)

	assert.True(t, matched)
	assert.Empty(t, failures)
}

func TestCompareBrightnessZeroValidatesAsApproximatelyZeroPercent(t *testing.T) {
	expected := inventory.Action{On: true, Brightness: ptr(0.0)}
	observed := hub.LightState{On: true, Brightness: 3} // driven minimum (~1%)

	failures := NewFailureSet()
	matched := Compare(expected, observed, defaultTolerances(), failures)

	assert.True(t, matched)
}

func TestFailureSetAccumulatesAcrossMultipleCalls(t *testing.T) {
	failures := NewFailureSet()

	Compare(inventory.Action{On: true, Brightness: ptr(80.0)}, hub.LightState{On: true, Brightness: 0}, defaultTolerances(), failures)
	Compare(inventory.Action{On: false}, hub.LightState{On: true}, defaultTolerances(), failures)

	assert.True(t, failures.Has(FailureBrightness))
	assert.True(t, failures.Has(FailureOnOff))
	assert.Len(t, failures, 2)
}
