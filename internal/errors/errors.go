package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Error codes for categorizing errors
const (
	ErrConfig    = "CONFIG"
	ErrEnumerate = "ENUMERATE"
	ErrProcess   = "PROCESS"
	ErrUI        = "UI"
	ErrExec      = "EXEC"
)

// Error represents a structured error with code, message, suggestion, and optional cause.
// Rendered as:
//
//	✗ <What failed>
//
//	  <Why it failed - technical details>
//
//	  <How to fix it - actionable steps>
type Error struct {
	Code       string
	Message    string
	Suggestion string
	Cause      error
}

// New creates a new structured error with the given code, message, and suggestion.
func New(code, message, suggestion string) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		Suggestion: suggestion,
	}
}

// Wrap wraps an existing error with a message, defaulting to ErrExec code.
func Wrap(err error, message string) *Error {
	return &Error{
		Code:    ErrExec,
		Message: message,
		Cause:   err,
	}
}

// WrapWithCode wraps an existing error with a specific code, message, and suggestion.
func WrapWithCode(err error, code, message, suggestion string) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		Suggestion: suggestion,
		Cause:      err,
	}
}

// NewEnumerationFailed wraps a failure of the socket source. The message
// carries the source's own text so it can be shown inline in the dashboard.
func NewEnumerationFailed(cause error) *Error {
	msg := "unknown error"
	if cause != nil {
		msg = cause.Error()
	}
	return &Error{
		Code:       ErrEnumerate,
		Message:    fmt.Sprintf("fail to get sockets info: %s", msg),
		Suggestion: "Run with elevated privileges to see sockets owned by other users",
		Cause:      cause,
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder

	// First line: failure symbol + main message
	b.WriteString(fmt.Sprintf("✗ %s\n", e.Message))

	// Include cause if present (why it failed)
	if e.Cause != nil {
		b.WriteString(fmt.Sprintf("\n  %s\n", e.Cause.Error()))
	}

	// Include suggestion if present (how to fix)
	if e.Suggestion != "" {
		b.WriteString(fmt.Sprintf("\n  %s\n", e.Suggestion))
	}

	return b.String()
}

// Unwrap returns the underlying cause for use with errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// IsCode checks if an error is a structured Error with the given code.
func IsCode(err error, code string) bool {
	if err == nil {
		return false
	}
	var swErr *Error
	if errors.As(err, &swErr) {
		return swErr.Code == code
	}
	return false
}

// Message returns the one-line message of a structured error, or err.Error()
// for anything else. Used where the multi-line form does not fit.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var swErr *Error
	if errors.As(err, &swErr) {
		return swErr.Message
	}
	return err.Error()
}
