package hub

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codeready-toolchain/scene-validator/pkg/inventory"
)

func ptr[T any](v T) *T { return &v }

func TestBuildDriveCommandOffIgnoresOtherFields(t *testing.T) {
	action := inventory.Action{
		On:         false,
		Brightness: ptr(80.0),
		Mirek:      ptr(300),
	}

	cmd := BuildDriveCommand(action)
	assert.False(t, cmd.On)
	assert.False(t, cmd.HasBrightness)
	assert.False(t, cmd.HasMirek)
	assert.False(t, cmd.HasXY)
}

func TestBuildDriveCommandBrightnessConversion(t *testing.T) {
	tests := []struct {
		name    string
		percent float64
		want    int
	}{
		{"80 percent", 80, 204},
		{"zero coerces to minimum", 0, 3},
		{"100 percent", 100, 255},
		{"1 percent converts to native 3", 1, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action := inventory.Action{On: true, Brightness: ptr(tt.percent)}
			cmd := BuildDriveCommand(action)
			require.True(t, cmd.HasBrightness)
			assert.Equal(t, tt.want, cmd.BrightnessNative)
		})
	}
}

func TestBuildDriveCommandPassesThroughColorAndMirek(t *testing.T) {
	action := inventory.Action{
		On:    true,
		Color: &inventory.XY{X: 0.44, Y: 0.40},
		Mirek: ptr(366),
	}

	cmd := BuildDriveCommand(action)
	require.True(t, cmd.HasXY)
	assert.Equal(t, 0.44, cmd.XY.X)
	require.True(t, cmd.HasMirek)
	assert.Equal(t, 366, cmd.Mirek)
}

func TestActuatorActivateSceneWrapsHubError(t *testing.T) {
	fake := NewFake()
	fake.FailActivate("scene.kitchen", errors.New("bridge unreachable"))

	a := &Actuator{Client: fake}
	err := a.ActivateScene(context.Background(), "scene.kitchen")
	require.Error(t, err)
}

func TestActuatorDriveLightSuccessUpdatesObservedState(t *testing.T) {
	fake := NewFake()
	a := &Actuator{Client: fake}

	action := inventory.Action{On: true, Brightness: ptr(80.0)}
	require.NoError(t, a.DriveLight(context.Background(), "light.kitchen_sink", action))

	state, err := fake.ReadLightState(context.Background(), "light.kitchen_sink")
	require.NoError(t, err)
	assert.True(t, state.On)
	assert.Equal(t, 204, state.Brightness)
}
