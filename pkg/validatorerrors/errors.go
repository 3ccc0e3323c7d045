// Package validatorerrors defines the typed error taxonomy shared across the
// scene validator's components. No error crosses a per-activation boundary:
// every escalation record terminates in exactly one recordSuccess/recordFailure
// call to the gating layer, and callers that need to distinguish failure kinds
// do so with errors.Is/errors.As against the sentinels below.
package validatorerrors

import (
	"errors"
	"fmt"
)

var (
	// ErrInventoryMissing indicates the inventory directory is absent or every
	// catalog file in it failed to parse. Fatal at init.
	ErrInventoryMissing = errors.New("inventory directory missing or unreadable")

	// ErrInventoryMalformed indicates a single catalog file failed to parse.
	// Non-fatal: the file is logged and skipped.
	ErrInventoryMalformed = errors.New("inventory catalog malformed")

	// ErrIdentityUnresolved indicates a resource-id has no matching hub entity-id.
	ErrIdentityUnresolved = errors.New("resource id could not be resolved to an entity id")

	// ErrStateUnavailable indicates a light state read returned nothing usable.
	ErrStateUnavailable = errors.New("light state unavailable")

	// ErrHubCall indicates an activate/drive call to the hub failed.
	ErrHubCall = errors.New("hub call failed")

	// ErrScheduler indicates the scheduler could not enqueue the next phase.
	ErrScheduler = errors.New("scheduler could not enqueue task")

	// ErrConfig indicates a fatal configuration problem discovered at startup.
	ErrConfig = errors.New("configuration error")
)

// ValidationError wraps a per-light or per-scene failure with enough context
// for the structured log line and for the caller to decide escalation.
type ValidationError struct {
	Op     string // operation in progress: "resolve_identity", "read_state", "activate", "drive"
	Scene  string
	Entity string
	Err    error
}

func (e *ValidationError) Error() string {
	if e.Entity != "" {
		return fmt.Sprintf("%s: scene %q entity %q: %v", e.Op, e.Scene, e.Entity, e.Err)
	}
	return fmt.Sprintf("%s: scene %q: %v", e.Op, e.Scene, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError constructs a ValidationError with context for logging.
func NewValidationError(op, scene, entity string, err error) *ValidationError {
	return &ValidationError{Op: op, Scene: scene, Entity: entity, Err: err}
}

// LoadError wraps an inventory/registry file-loading failure with its path.
type LoadError struct {
	File string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load %s: %v", e.File, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// NewLoadError constructs a LoadError.
func NewLoadError(file string, err error) *LoadError {
	return &LoadError{File: file, Err: err}
}
