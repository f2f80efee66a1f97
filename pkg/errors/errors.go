// Package errors provides structured error types for the cgraph toolkit.
//
// Every failure the type lattice and the matcher report to callers carries a
// machine-readable [Code], so callers can branch on the kind of failure
// without string matching:
//
//   - ORDER_CONFLICT: an edge insertion would create a cycle in the lattice
//   - DUPLICATE_LABEL / UNKNOWN_TYPE: label collisions and absent types
//   - INVALID_CONFIGURATION: a matching configuration failed validation
//   - UNSUPPORTED_MODE: a valid selector reached a matcher that cannot run it
//
// None of these are fatal. They are returned to the immediate caller and are
// never retried internally.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeUnknownType, "type %q is not in the lattice", label)
//	if errors.Is(err, errors.ErrCodeUnknownType) {
//	    // Handle the missing type
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeOrderConflict, cause, "add supertype %s", label)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Lattice errors
	ErrCodeOrderConflict  Code = "ORDER_CONFLICT"
	ErrCodeDuplicateLabel Code = "DUPLICATE_LABEL"
	ErrCodeUnknownType    Code = "UNKNOWN_TYPE"

	// Matching errors
	ErrCodeInvalidConfiguration Code = "INVALID_CONFIGURATION"
	ErrCodeUnsupportedMode      Code = "UNSUPPORTED_MODE"

	// Input validation errors
	ErrCodeInvalidInput Code = "INVALID_INPUT"
	ErrCodeInvalidLabel Code = "INVALID_LABEL"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
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
// It walks the whole wrap chain, so a coded cause under a differently coded
// wrapper is still found.
func Is(err error, code Code) bool {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return false
		}
		if e.Code == code {
			return true
		}
		err = e.Cause
	}
	return false
}

// GetCode extracts the outermost error code from an error, if available.
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
