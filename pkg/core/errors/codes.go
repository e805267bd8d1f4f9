// File: codes.go
// Title: Error Codes
// Description: Structured error codes used by the command line tool to
//              classify failures and pick exit statuses.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial codes

package errors

// Code represents a structured error code for categorizing errors
type Code string

const (
	CodeUnknown  Code = "UNKNOWN"
	CodeInternal Code = "INTERNAL"

	// Input problems
	CodeSyntax        Code = "SYNTAX"
	CodeNameConflict  Code = "NAME_CONFLICT"
	CodeInputTooLarge Code = "INPUT_TOO_LARGE"
	CodeInvalidInput  Code = "INVALID_INPUT"

	// Environment
	CodeIO            Code = "IO"
	CodeConfigError   Code = "CONFIG_ERROR"
	CodeInvalidConfig Code = "INVALID_CONFIG"
)

// String returns the string representation of the error code
func (c Code) String() string {
	return string(c)
}

// IsUserError reports whether the code describes a problem with the input
// being processed rather than with the tool or its environment
func (c Code) IsUserError() bool {
	switch c {
	case CodeSyntax, CodeNameConflict, CodeInputTooLarge, CodeInvalidInput:
		return true
	default:
		return false
	}
}

// ExitStatus returns the process exit status for errors with this code
func (c Code) ExitStatus() int {
	switch {
	case c.IsUserError():
		return 1
	case c == CodeConfigError || c == CodeInvalidConfig:
		return 3
	default:
		return 2
	}
}
