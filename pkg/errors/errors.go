// Package errors provides structured error types for vizlayout.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the library, CLI and HTTP bridge
//   - Machine-readable error codes for programmatic handling
//   - A clear split between rejected input and invariant violations
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures (bad axis, bad scenario file)
//   - NOT_FOUND_* / *_NOT_FOUND: A dimension is absent where a command claims it is
//   - INVARIANT_*: Drag state and layout state have desynchronized
//
// Invariant violations are programming errors. They are never recovered
// silently; callers log them and surface them to developers.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeDimensionNotFound, "dimension %q not on %s", id, axis)
//	if errors.Is(err, errors.ErrCodeDimensionNotFound) {
//	    // Handle desynchronized drag
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidScenario, origErr, "decode %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput     Code = "INVALID_INPUT"
	ErrCodeInvalidAxis      Code = "INVALID_AXIS"
	ErrCodeInvalidCommand   Code = "INVALID_COMMAND"
	ErrCodeInvalidDimension Code = "INVALID_DIMENSION"
	ErrCodeInvalidScenario  Code = "INVALID_SCENARIO"
	ErrCodeInvalidConfig    Code = "INVALID_CONFIG"

	// Layout state errors
	ErrCodeDimensionNotFound  Code = "DIMENSION_NOT_FOUND"
	ErrCodeDuplicateDimension Code = "DUPLICATE_DIMENSION"
	ErrCodeIndexOutOfRange    Code = "INDEX_OUT_OF_RANGE"

	// Drag session errors
	ErrCodeDragInProgress Code = "DRAG_IN_PROGRESS"
	ErrCodeNoActiveDrag   Code = "NO_ACTIVE_DRAG"

	// Scenario replay errors
	ErrCodeExpectationFailed Code = "EXPECTATION_FAILED"

	// Internal errors
	ErrCodeInvariant   Code = "INVARIANT_VIOLATION"
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// IsInvariant reports whether err signals desynchronized drag and layout
// state: a dimension missing from its claimed axis, a duplicate placement,
// an impossible index, or an explicit invariant violation.
func IsInvariant(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvariant, ErrCodeDimensionNotFound, ErrCodeDuplicateDimension, ErrCodeIndexOutOfRange:
		return true
	}
	return false
}
