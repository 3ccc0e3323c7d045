package hub

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/codeready-toolchain/scene-validator/pkg/inventory"
	"github.com/codeready-toolchain/scene-validator/pkg/validatorerrors"
)

// BuildDriveCommand translates a declared Action into a vendor-ready
// DriveCommand, applying the driving rules: off ignores every other field;
// on with brightness 0 coerces to the minimum non-zero brightness (~1%)
// while on, since "off" is the only way to represent zero light output;
// percent is converted to the native 0-255 scale and floored at 1; xy and
// mirek pass through unchanged.
func BuildDriveCommand(action inventory.Action) DriveCommand {
	cmd := DriveCommand{On: action.On}
	if !action.On {
		return cmd
	}

	if action.Brightness != nil {
		percent := *action.Brightness
		if percent == 0 {
			percent = 1
		}
		native := int(math.Round(percent / 100 * 255))
		if native < 1 {
			native = 1
		}
		cmd.BrightnessNative = native
		cmd.HasBrightness = true
	}

	if action.Color != nil {
		cmd.XY = XYPoint{X: action.Color.X, Y: action.Color.Y}
		cmd.HasXY = true
	}

	if action.Mirek != nil {
		cmd.Mirek = *action.Mirek
		cmd.HasMirek = true
	}

	return cmd
}

// Actuator issues activate/drive commands to the hub, translating hub
// errors into the validator's HubCallError taxonomy. It never returns a
// value beyond error; a failure is the caller's signal to record a
// per-light failure without aborting sibling actions in the same phase.
type Actuator struct {
	Client Client
}

// ActivateScene re-issues a scene activation.
func (a *Actuator) ActivateScene(ctx context.Context, sceneEntityID string) error {
	if err := a.Client.ActivateScene(ctx, sceneEntityID); err != nil {
		slog.Error("activate scene call failed", "scene_entity_id", sceneEntityID, "error", err)
		return fmt.Errorf("%w: activate %s: %v", validatorerrors.ErrHubCall, sceneEntityID, err)
	}
	return nil
}

// DriveLight translates action and issues it to entityID.
func (a *Actuator) DriveLight(ctx context.Context, entityID string, action inventory.Action) error {
	cmd := BuildDriveCommand(action)
	if err := a.Client.DriveLight(ctx, entityID, cmd); err != nil {
		slog.Error("drive light call failed", "entity_id", entityID, "error", err)
		return fmt.Errorf("%w: drive %s: %v", validatorerrors.ErrHubCall, entityID, err)
	}
	return nil
}
