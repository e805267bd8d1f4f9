// File: errors.go
// Title: Coded Errors
// Description: An error type carrying a Code and optional details, wrapping
//              an underlying cause. Works with the standard errors.Is/As
//              chain so typed diagnostics stay reachable through wrapping.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial coded error type

package errors

import (
	stderrors "errors"
	"fmt"
	"sort"
	"strings"
)

// Error represents a structured error with a code and details
type Error struct {
	message string
	cause   error
	code    Code
	details map[string]interface{}
}

// New creates a new Error with the given message
func New(message string) *Error {
	return &Error{message: message, code: CodeUnknown}
}

// Newf creates a new Error with a formatted message
func Newf(format string, args ...interface{}) *Error {
	return New(fmt.Sprintf(format, args...))
}

// Wrap wraps err with message. A wrapped coded error passes its code on.
func Wrap(err error, message string) *Error {
	if err == nil {
		return nil
	}
	wrapped := &Error{message: message, cause: err, code: CodeUnknown}
	var inner *Error
	if stderrors.As(err, &inner) {
		wrapped.code = inner.code
	}
	return wrapped
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s", e.message, e.cause.Error())
	}
	return e.message
}

// Unwrap returns the underlying cause
func (e *Error) Unwrap() error { return e.cause }

// Message returns the error's own message without its cause
func (e *Error) Message() string { return e.message }

// WithCode sets the error code
func (e *Error) WithCode(code Code) *Error {
	e.code = code
	return e
}

// WithDetail attaches a key/value detail
func (e *Error) WithDetail(key string, value interface{}) *Error {
	if e.details == nil {
		e.details = make(map[string]interface{})
	}
	e.details[key] = value
	return e
}

// Code returns the error code
func (e *Error) Code() Code { return e.code }

// Details returns a copy of the error's details
func (e *Error) Details() map[string]interface{} {
	out := make(map[string]interface{}, len(e.details))
	for k, v := range e.details {
		out[k] = v
	}
	return out
}

// String renders the error with code and details for debugging
func (e *Error) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s", e.code, e.Error())
	if len(e.details) > 0 {
		keys := make([]string, 0, len(e.details))
		for k := range e.details {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, " %s=%v", k, e.details[k])
		}
	}
	return b.String()
}

// CodeOf returns the code of the outermost coded error in err's chain, or
// "" when there is none
func CodeOf(err error) Code {
	var e *Error
	if stderrors.As(err, &e) {
		return e.code
	}
	return ""
}

// HasCode reports whether err carries code
func HasCode(err error, code Code) bool {
	return err != nil && CodeOf(err) == code
}

// IsUserError reports whether err was caused by bad input
func IsUserError(err error) bool {
	return CodeOf(err).IsUserError()
}

// MessageOf returns the message of the outermost coded error, or err.Error()
func MessageOf(err error) string {
	var e *Error
	if stderrors.As(err, &e) {
		return e.message
	}
	return err.Error()
}

// Is and As re-export the standard library helpers so callers need only
// one errors import
func Is(err, target error) bool { return stderrors.Is(err, target) }

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool { return stderrors.As(err, target) }
