// File: errors.go
// Title: PEG Parse Errors
// Description: Syntax error reported at the farthest position the grammar
//              could reach, listing what was expected there.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial parse error type

package peg

import (
	"fmt"
	"strings"

	"github.com/msto63/vc2pseudo/pkg/pseudocode/diag"
)

// ParseError represents a syntax error with position information
type ParseError struct {
	diag.Location
	Offset   int
	Expected []string
}

func newParseError(source string, offset int, expected []string) *ParseError {
	return &ParseError{
		Location: diag.At(source, offset),
		Offset:   offset,
		Expected: expected,
	}
}

// Explanation describes what the parser expected to find
func (e *ParseError) Explanation() string {
	switch len(e.Expected) {
	case 0:
		return "Syntax error."
	case 1:
		return fmt.Sprintf("Expected %s.", e.Expected[0])
	default:
		return fmt.Sprintf("Expected one of %s.", strings.Join(e.Expected, ", "))
	}
}

func (e *ParseError) Error() string {
	return diag.Format(e)
}
