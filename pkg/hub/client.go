// Package hub defines the capability boundary between the validator and the
// home-automation hub / lighting bridge. The hub and bridge are external
// collaborators: this package only declares the typed accessors the
// validator needs instead of dispatching on dynamic hub attributes. Tests
// supply a fake implementation (see Fake in fake.go).
package hub

import "context"

// ColorMode distinguishes which optional light attributes are meaningful on
// the current observed state.
type ColorMode int

const (
	// ColorModeNone applies when the light reports neither xy nor CT state
	// (e.g. it is off, or is a brightness-only light).
	ColorModeNone ColorMode = iota
	ColorModeXY
	ColorModeColorTemp
)

// LightState is the hub's read-through view of a controllable light. It is
// never cached by the validator.
type LightState struct {
	On bool

	// Brightness is the native 0-255 scale reported by the hub.
	Brightness int

	Mode ColorMode

	// XY is populated only when Mode == ColorModeXY.
	XY XYPoint

	// Mirek is populated only when Mode == ColorModeColorTemp.
	Mirek int
}

// XYPoint is a chromaticity coordinate pair in the CIE 1931 color space.
type XYPoint struct {
	X float64
	Y float64
}

// DriveCommand is the translated, vendor-ready instruction for one light,
// produced by the actuator's driving-translation rules (native brightness
// already resolved from the declared percent).
type DriveCommand struct {
	On bool

	// BrightnessNative is the 0-255 value to send when On is true. Zero when
	// brightness was not part of the declared action.
	BrightnessNative int
	HasBrightness    bool

	XY    XYPoint
	HasXY bool

	Mirek    int
	HasMirek bool
}

// StateChangeHandler receives a hub notification that entityID's state moved
// from oldState to newState. The hub encodes the activation moment as the
// state value itself; any change implies a fresh activation.
type StateChangeHandler func(entityID, oldState, newState string)

// SceneMeta is the scene entity's own attributes, read directly from hub
// state rather than the inventory (the hub, not the catalog, is the
// authoritative source for a scene's unique-id and user-assigned labels).
// The gating layer's scene filter matches against these.
type SceneMeta struct {
	UID    string
	Name   string
	Labels []string
}

// Client is the capability surface the validator requires of the hub: state
// subscription and reads, and scene/light actuation.
type Client interface {
	// SubscribeSceneStateChanges registers handler for every scene-typed
	// entity known to the hub. The returned error is only for registration
	// failure; delivered notifications never return errors.
	SubscribeSceneStateChanges(ctx context.Context, handler StateChangeHandler) error

	// ReadSceneMeta retrieves a scene entity's unique-id, name, and labels.
	ReadSceneMeta(ctx context.Context, sceneEntityID string) (SceneMeta, error)

	// ReadLightState retrieves the current observed state of entityID.
	ReadLightState(ctx context.Context, entityID string) (LightState, error)

	// ActivateScene re-issues a scene's "turn on" call by its hub entity-id.
	ActivateScene(ctx context.Context, sceneEntityID string) error

	// DriveLight issues a direct per-light command.
	DriveLight(ctx context.Context, entityID string, cmd DriveCommand) error
}
