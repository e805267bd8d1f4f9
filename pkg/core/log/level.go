// File: level.go
// Title: Log Levels
// Description: Severity levels for log entries and their parsing from
//              configuration and command line flags.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Levels trace through error

package log

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Level represents the importance level of a log message
type Level int

const (
	// LevelTrace logs every grammar rule transform; very noisy
	LevelTrace Level = iota

	// LevelDebug logs pipeline stages and timings
	LevelDebug

	// LevelInfo is the default level
	LevelInfo

	// LevelWarn indicates a recoverable problem
	LevelWarn

	// LevelError indicates a failed operation
	LevelError
)

// String returns the string representation of the log level
func (l Level) String() string {
	switch l {
	case LevelTrace:
		return "trace"
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "unknown"
	}
}

// ShortString returns the three letter form used by the text formatter
func (l Level) ShortString() string {
	switch l {
	case LevelTrace:
		return "TRC"
	case LevelDebug:
		return "DBG"
	case LevelInfo:
		return "INF"
	case LevelWarn:
		return "WRN"
	case LevelError:
		return "ERR"
	default:
		return "???"
	}
}

// Color returns the terminal color used by the console formatter
func (l Level) Color() lipgloss.Color {
	switch l {
	case LevelTrace:
		return lipgloss.Color("245")
	case LevelDebug:
		return lipgloss.Color("6")
	case LevelInfo:
		return lipgloss.Color("2")
	case LevelWarn:
		return lipgloss.Color("3")
	case LevelError:
		return lipgloss.Color("1")
	default:
		return lipgloss.Color("7")
	}
}

// ShouldLog returns true if this level should be logged given the minimum level
func (l Level) ShouldLog(minLevel Level) bool {
	return l >= minLevel
}

// ParseLevel parses a string into a log level
func ParseLevel(level string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "trc":
		return LevelTrace, nil
	case "debug", "dbg":
		return LevelDebug, nil
	case "info", "inf", "":
		return LevelInfo, nil
	case "warn", "wrn", "warning":
		return LevelWarn, nil
	case "error", "err":
		return LevelError, nil
	default:
		return LevelInfo, &ParseError{Input: level, Type: "level"}
	}
}

// ParseError represents an error parsing a log configuration value
type ParseError struct {
	Input string
	Type  string
}

// Error implements the error interface
func (e *ParseError) Error() string {
	return "invalid log " + e.Type + ": " + e.Input
}
