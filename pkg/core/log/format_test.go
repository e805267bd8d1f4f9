// File: format_test.go
// Title: Log Formatter Tests
// Description: Tests for the JSON, text and console formatters.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial tests

package log

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEntry() *Entry {
	entry := NewEntry(LevelWarn, "grammar loaded")
	entry.Timestamp = time.Date(2026, 10, 19, 8, 30, 0, 0, time.UTC)
	entry.Logger = "parser"
	entry.CorrelationID = "run-1"
	entry.Fields = Fields{"rules": 42, "cause": errors.New("slow")}
	return entry
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected Format
		wantErr  bool
	}{
		{"json", FormatJSON, false},
		{"Text", FormatText, false},
		{"", FormatText, false},
		{"console", FormatConsole, false},
		{"xml", FormatText, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			format, err := ParseFormat(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if format != tt.expected {
				t.Errorf("ParseFormat(%q) = %v, want %v", tt.input, format, tt.expected)
			}
		})
	}
}

func TestGetFormatter(t *testing.T) {
	assert.IsType(t, &JSONFormatter{}, GetFormatter(FormatJSON))
	assert.IsType(t, &TextFormatter{}, GetFormatter(FormatText))
	assert.IsType(t, &ConsoleFormatter{}, GetFormatter(FormatConsole))
}

func TestJSONFormatter_Format(t *testing.T) {
	entry := sampleEntry()
	entry.Error = errors.New("boom")
	entry.Duration = 1500 * time.Microsecond

	out, err := NewJSONFormatter().Format(entry)
	require.NoError(t, err)
	require.True(t, strings.HasSuffix(string(out), "\n"))

	var data map[string]interface{}
	require.NoError(t, json.Unmarshal(out, &data))
	assert.Equal(t, "2026-10-19T08:30:00Z", data["timestamp"])
	assert.Equal(t, "warn", data["level"])
	assert.Equal(t, "grammar loaded", data["message"])
	assert.Equal(t, "parser", data["logger"])
	assert.Equal(t, "run-1", data["correlation_id"])
	assert.Equal(t, "boom", data["error"])
	assert.Equal(t, 1.5, data["duration_ms"])
	assert.Equal(t, float64(42), data["rules"])
	assert.Equal(t, "slow", data["cause"], "error fields are rendered as text")
}

func TestJSONFormatter_OmitsEmpty(t *testing.T) {
	out, err := NewJSONFormatter().Format(NewEntry(LevelInfo, "plain"))
	require.NoError(t, err)

	var data map[string]interface{}
	require.NoError(t, json.Unmarshal(out, &data))
	for _, key := range []string{"logger", "correlation_id", "error", "duration_ms"} {
		assert.NotContains(t, data, key)
	}
}

func TestTextFormatter_Format(t *testing.T) {
	out, err := NewTextFormatter().Format(sampleEntry())
	require.NoError(t, err)
	assert.Equal(t, "08:30:00 [WRN] {parser} (cid=run-1) grammar loaded [cause=slow rules=42]\n", string(out))
}

func TestTextFormatter_DisableTimestamp(t *testing.T) {
	f := &TextFormatter{DisableTimestamp: true}
	entry := NewEntry(LevelError, "failed")
	entry.Error = errors.New("no input")
	entry.Duration = 2 * time.Second

	out, err := f.Format(entry)
	require.NoError(t, err)
	assert.Equal(t, "[ERR] failed error=\"no input\" duration=2s\n", string(out))
}

func TestConsoleFormatter_DisableColors(t *testing.T) {
	f := NewConsoleFormatter()
	f.DisableColors = true

	colored, err := f.Format(sampleEntry())
	require.NoError(t, err)
	plain, err := NewTextFormatter().Format(sampleEntry())
	require.NoError(t, err)
	assert.Equal(t, string(plain), string(colored))
}

func TestConsoleFormatter_KeepsContent(t *testing.T) {
	out, err := NewConsoleFormatter().Format(sampleEntry())
	require.NoError(t, err)
	assert.Contains(t, string(out), "WRN")
	assert.Contains(t, string(out), "grammar loaded [cause=slow rules=42]")
}
