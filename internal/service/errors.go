package service

import (
	"errors"
	"fmt"
)

// --- Error Definitions ---
//
// The engine raises typed errors and leaves logging, messaging and status
// code selection to the calling handler. Validation errors are always
// caller-correctable; reference errors concern a nested FK target, while
// the *NotFound sentinels concern the primary subject of the call.
var (
	ErrExerciseNotFound       = errors.New("exercise not found")
	ErrMethodNotFound         = errors.New("method not found")
	ErrGroupNotFound          = errors.New("exercise group not found")
	ErrExerciseMethodNotFound = errors.New("exercise method not found")
	ErrConfigurationNotFound  = errors.New("exercise configuration not found")
	ErrSheetNotFound          = errors.New("training sheet not found")

	// ErrGroupInUse reports a group deletion blocked because a training
	// sheet still links to it.
	ErrGroupInUse = errors.New("exercise group is referenced by a training sheet")

	// ErrSlugTaken reports a duplicate training sheet slug.
	ErrSlugTaken = errors.New("training sheet slug already in use")
)

// ValidationError reports a malformed or missing field with enough detail
// to identify it.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}

func newValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// ReferenceError reports an FK target that does not exist, scoped to the
// specific reference rather than the primary subject.
type ReferenceError struct {
	Entity string
	ID     uint
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("referenced %s %d does not exist", e.Entity, e.ID)
}

func newReferenceError(entity string, id uint) error {
	return &ReferenceError{Entity: entity, ID: id}
}
