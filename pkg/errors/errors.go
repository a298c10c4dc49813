// Package errors provides structured error types for puzzlesheet.
//
// Every package boundary converts failures into an [*Error] carrying a
// machine-readable [Code], so the CLI can print a short message while tests
// and callers branch on the code.
//
// # Error Codes
//
//   - INVALID_*: input that cannot be used (names, FENs, diagrams, config)
//   - NOT_FOUND / ALREADY_EXISTS: repository lookups
//   - SHEET_FULL / PROTECTED: repository rules
//   - OUTPUT_WRITE: a file could not be written
//   - DATABASE / NETWORK: puzzle database loading and fetching
//
// # Usage
//
//	err := errors.New(errors.ErrCodeUnknownLayout, "unknown layout %q", s)
//	if errors.Is(err, errors.ErrCodeUnknownLayout) {
//	    // ...
//	}
//
//	err = errors.Wrap(errors.ErrCodeOutputWrite, origErr, "write %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

const (
	// Input validation errors
	ErrCodeInvalidInput   Code = "INVALID_INPUT"
	ErrCodeInvalidDiagram Code = "INVALID_DIAGRAM"
	ErrCodeUnknownLayout  Code = "UNKNOWN_LAYOUT"
	ErrCodeInvalidFEN     Code = "INVALID_FEN"
	ErrCodeInvalidConfig  Code = "INVALID_CONFIG"

	// Repository errors
	ErrCodeNotFound      Code = "NOT_FOUND"
	ErrCodeAlreadyExists Code = "ALREADY_EXISTS"
	ErrCodeSheetFull     Code = "SHEET_FULL"
	ErrCodeProtected     Code = "PROTECTED"

	// I/O errors
	ErrCodeOutputWrite Code = "OUTPUT_WRITE"
	ErrCodeDatabase    Code = "DATABASE"
	ErrCodeNetwork     Code = "NETWORK_ERROR"

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
// Only the outermost *Error in the chain is consulted.
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

// UserMessage returns the message without the code prefix.
// Causes are appended so the user still sees the underlying failure.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Cause != nil {
			return fmt.Sprintf("%s: %s", e.Message, UserMessage(e.Cause))
		}
		return e.Message
	}
	return err.Error()
}
