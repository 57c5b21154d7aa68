package common

import (
	"errors"
	"fmt"
)

// FatalInitError reports a failure that leaves no scene to simulate, such as an unavailable physics backend.
// Bootstrap stops at the first FatalInitError and never enters the render loop.
type FatalInitError struct {
	// Component names the bootstrap stage that failed (e.g., "physics").
	Component string
	// Err is the underlying cause.
	Err error
}

func (e *FatalInitError) Error() string {
	return fmt.Sprintf("fatal %s init error: %v", e.Component, e.Err)
}

func (e *FatalInitError) Unwrap() error {
	return e.Err
}

// RecoverableAssetError reports a failed asset or environment build that was replaced by a fallback.
type RecoverableAssetError struct {
	// Component names the stage that degraded (e.g., "environment").
	Component string
	// Err is the underlying cause.
	Err error
}

func (e *RecoverableAssetError) Error() string {
	return fmt.Sprintf("%s asset error (fallback used): %v", e.Component, e.Err)
}

func (e *RecoverableAssetError) Unwrap() error {
	return e.Err
}

// RecoverableFeatureError reports an optional feature, such as the immersive session, that was disabled.
type RecoverableFeatureError struct {
	// Component names the feature that was disabled (e.g., "immersive").
	Component string
	// Err is the underlying cause.
	Err error
}

func (e *RecoverableFeatureError) Error() string {
	return fmt.Sprintf("%s feature disabled: %v", e.Component, e.Err)
}

func (e *RecoverableFeatureError) Unwrap() error {
	return e.Err
}

// IgnorableInputError reports an input facility, such as pointer capture, that is not available on this platform.
type IgnorableInputError struct {
	// Component names the input facility (e.g., "pointer-capture").
	Component string
	// Err is the underlying cause.
	Err error
}

func (e *IgnorableInputError) Error() string {
	return fmt.Sprintf("%s unavailable: %v", e.Component, e.Err)
}

func (e *IgnorableInputError) Unwrap() error {
	return e.Err
}

// NewFatalInitError wraps err as a FatalInitError for the given component.
// Returns nil when err is nil.
//
// Parameters:
//   - component: the bootstrap stage that failed
//   - err: the underlying cause
//
// Returns:
//   - error: the wrapped error, or nil
func NewFatalInitError(component string, err error) error {
	if err == nil {
		return nil
	}
	return &FatalInitError{Component: component, Err: err}
}

// IsFatal reports whether err (or anything it wraps) is a FatalInitError.
//
// Parameters:
//   - err: the error to inspect
//
// Returns:
//   - bool: true if the error chain contains a FatalInitError
func IsFatal(err error) bool {
	var fatal *FatalInitError
	return errors.As(err, &fatal)
}

// IsRecoverable reports whether err is one of the non-fatal taxonomy errors.
//
// Parameters:
//   - err: the error to inspect
//
// Returns:
//   - bool: true for RecoverableAssetError, RecoverableFeatureError and IgnorableInputError
func IsRecoverable(err error) bool {
	var asset *RecoverableAssetError
	var feature *RecoverableFeatureError
	var input *IgnorableInputError
	return errors.As(err, &asset) || errors.As(err, &feature) || errors.As(err, &input)
}
