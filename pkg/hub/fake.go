package hub

import (
	"context"
	"fmt"
	"sync"
)

// Fake is an in-memory hub.Client used by tests. It records every
// ActivateScene/DriveLight call and lets tests script ReadLightState
// responses and error injection per entity.
type Fake struct {
	mu sync.Mutex

	states    map[string]LightState
	sceneMeta map[string]SceneMeta

	// readErrors, activateErrors, driveErrors let tests inject a HubCallError
	// / StateUnavailable for a specific entity or scene entity-id.
	readErrors     map[string]error
	activateErrors map[string]error
	driveErrors    map[string]error

	activateCalls []string
	driveCalls    []DriveCall

	handler StateChangeHandler
}

// DriveCall records one DriveLight invocation for assertions.
type DriveCall struct {
	EntityID string
	Command  DriveCommand
}

// NewFake returns an empty Fake with no seeded state.
func NewFake() *Fake {
	return &Fake{
		states:         make(map[string]LightState),
		sceneMeta:      make(map[string]SceneMeta),
		readErrors:     make(map[string]error),
		activateErrors: make(map[string]error),
		driveErrors:    make(map[string]error),
	}
}

// SetState seeds the observed state for entityID, as if the hub reported it.
func (f *Fake) SetState(entityID string, state LightState) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.states[entityID] = state
}

// SetSceneMeta seeds the scene attributes returned by ReadSceneMeta.
func (f *Fake) SetSceneMeta(sceneEntityID string, meta SceneMeta) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sceneMeta[sceneEntityID] = meta
}

func (f *Fake) ReadSceneMeta(_ context.Context, sceneEntityID string) (SceneMeta, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sceneMeta[sceneEntityID], nil
}

// FailRead makes the next (and all subsequent) ReadLightState calls for
// entityID return err.
func (f *Fake) FailRead(entityID string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.readErrors[entityID] = err
}

// FailActivate makes ActivateScene calls for sceneEntityID return err.
func (f *Fake) FailActivate(sceneEntityID string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.activateErrors[sceneEntityID] = err
}

// FailDrive makes DriveLight calls for entityID return err.
func (f *Fake) FailDrive(entityID string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.driveErrors[entityID] = err
}

func (f *Fake) SubscribeSceneStateChanges(_ context.Context, handler StateChangeHandler) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.handler = handler
	return nil
}

// Trigger simulates the hub delivering a state-change notification, for
// tests driving the trigger listener end to end.
func (f *Fake) Trigger(entityID, oldState, newState string) {
	f.mu.Lock()
	handler := f.handler
	f.mu.Unlock()
	if handler != nil {
		handler(entityID, oldState, newState)
	}
}

func (f *Fake) ReadLightState(_ context.Context, entityID string) (LightState, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.readErrors[entityID]; ok {
		return LightState{}, err
	}
	state, ok := f.states[entityID]
	if !ok {
		return LightState{}, fmt.Errorf("fake hub: no state seeded for %s", entityID)
	}
	return state, nil
}

func (f *Fake) ActivateScene(_ context.Context, sceneEntityID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.activateCalls = append(f.activateCalls, sceneEntityID)
	if err, ok := f.activateErrors[sceneEntityID]; ok {
		return err
	}
	return nil
}

// DriveLight records the call and, absent injected failure, updates the
// fake's observed state to match the driven command so that an
// escalation-engine re-validation after a drive sees the new state.
func (f *Fake) DriveLight(_ context.Context, entityID string, cmd DriveCommand) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.driveCalls = append(f.driveCalls, DriveCall{EntityID: entityID, Command: cmd})
	if err, ok := f.driveErrors[entityID]; ok {
		return err
	}

	state := f.states[entityID]
	state.On = cmd.On
	if cmd.On {
		if cmd.HasBrightness {
			state.Brightness = cmd.BrightnessNative
		}
		if cmd.HasXY {
			state.Mode = ColorModeXY
			state.XY = cmd.XY
		}
		if cmd.HasMirek {
			state.Mode = ColorModeColorTemp
			state.Mirek = cmd.Mirek
		}
	}
	f.states[entityID] = state
	return nil
}

// ActivateCalls returns every scene entity-id passed to ActivateScene, in order.
func (f *Fake) ActivateCalls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.activateCalls))
	copy(out, f.activateCalls)
	return out
}

// DriveCalls returns every DriveLight invocation, in order.
func (f *Fake) DriveCalls() []DriveCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]DriveCall, len(f.driveCalls))
	copy(out, f.driveCalls)
	return out
}
