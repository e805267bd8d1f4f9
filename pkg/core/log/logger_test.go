// File: logger_test.go
// Title: Logger Tests
// Description: Tests for level filtering, immutable derivation, correlation
//              IDs, coded error logging and timers.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial tests

package log

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vcerrors "github.com/msto63/vc2pseudo/pkg/core/errors"
)

func jsonLogger(level Level) (*Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return NewWithConfig(Config{Level: level, Format: FormatJSON, Output: buf}), buf
}

func entries(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()
	var out []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var data map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(line), &data), line)
		out = append(out, data)
	}
	return out
}

func TestLogger_LevelFiltering(t *testing.T) {
	logger, buf := jsonLogger(LevelInfo)

	logger.Trace("t")
	logger.Debug("d")
	logger.Info("i")
	logger.Warn("w")
	logger.Error("e")

	got := entries(t, buf)
	require.Len(t, got, 3)
	assert.Equal(t, "i", got[0]["message"])
	assert.Equal(t, "w", got[1]["message"])
	assert.Equal(t, "e", got[2]["message"])

	assert.False(t, logger.IsLevelEnabled(LevelDebug))
	assert.True(t, logger.IsLevelEnabled(LevelError))
	assert.Equal(t, LevelInfo, logger.GetLevel())
}

func TestLogger_WithMethodsAreImmutable(t *testing.T) {
	base, buf := jsonLogger(LevelInfo)
	derived := base.WithName("resolver").WithField("file", "a.pseudo").WithLevel(LevelDebug)

	base.Debug("hidden")
	base.Info("base")
	derived.Debug("derived", Fields{"functions": 2})

	got := entries(t, buf)
	require.Len(t, got, 2)
	assert.NotContains(t, got[0], "logger")
	assert.NotContains(t, got[0], "file")
	assert.Equal(t, "resolver", got[1]["logger"])
	assert.Equal(t, "a.pseudo", got[1]["file"])
	assert.Equal(t, float64(2), got[1]["functions"])
}

func TestLogger_WithFieldsMerge(t *testing.T) {
	logger, buf := jsonLogger(LevelInfo)
	logger.WithFields(Fields{"a": 1, "b": 2}).Info("m", Fields{"b": 3})

	got := entries(t, buf)
	require.Len(t, got, 1)
	assert.Equal(t, float64(1), got[0]["a"])
	assert.Equal(t, float64(3), got[0]["b"], "call fields win over context fields")
}

func TestLogger_CorrelationID(t *testing.T) {
	logger, buf := jsonLogger(LevelInfo)
	run := logger.WithNewCorrelationID()

	_, err := uuid.Parse(run.CorrelationID())
	require.NoError(t, err)
	assert.Empty(t, logger.CorrelationID())
	assert.NotEqual(t, run.CorrelationID(), logger.WithNewCorrelationID().CorrelationID())

	run.Info("tagged")
	got := entries(t, buf)
	require.Len(t, got, 1)
	assert.Equal(t, run.CorrelationID(), got[0]["correlation_id"])
}

func TestLogger_WithOutput(t *testing.T) {
	logger, first := jsonLogger(LevelInfo)
	second := &bytes.Buffer{}

	logger.WithOutput(second).Info("moved")
	assert.Empty(t, first.String())
	assert.Contains(t, second.String(), "moved")
}

func TestLogger_WithFormat(t *testing.T) {
	logger, buf := jsonLogger(LevelInfo)
	logger.WithFormat(FormatText).Info("plain text")
	assert.Contains(t, buf.String(), "[INF] plain text")
}

func TestLogger_ErrorWithErr(t *testing.T) {
	logger, buf := jsonLogger(LevelInfo)
	logger.ErrorWithErr("read failed", errors.New("permission denied"))

	got := entries(t, buf)
	require.Len(t, got, 1)
	assert.Equal(t, "error", got[0]["level"])
	assert.Equal(t, "permission denied", got[0]["error"])
}

func TestLogger_LogError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		level   string
		message string
		code    interface{}
	}{
		{"plain error", errors.New("disk full"), "error", "disk full", nil},
		{"user error", vcerrors.New("bad syntax").WithCode(vcerrors.CodeSyntax), "warn", "bad syntax", "SYNTAX"},
		{"internal error", vcerrors.New("broken").WithCode(vcerrors.CodeInternal), "error", "broken", "INTERNAL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, buf := jsonLogger(LevelInfo)
			logger.LogError(tt.err)

			got := entries(t, buf)
			require.Len(t, got, 1)
			assert.Equal(t, tt.level, got[0]["level"])
			assert.Equal(t, tt.message, got[0]["message"])
			assert.Equal(t, tt.code, got[0]["error_code"])
		})
	}
}

func TestLogger_LogErrorNil(t *testing.T) {
	logger, buf := jsonLogger(LevelTrace)
	logger.LogError(nil)
	assert.Empty(t, buf.String())
}

func TestDiscard(t *testing.T) {
	logger := Discard()
	assert.False(t, logger.IsLevelEnabled(LevelError))
	logger.Error("dropped")
}

func TestDefaultLogger(t *testing.T) {
	original := GetDefault()
	t.Cleanup(func() { SetDefault(original) })

	replacement := Discard().WithName("test")
	SetDefault(replacement)
	assert.Same(t, replacement, GetDefault())
}

func TestTimer_Stop(t *testing.T) {
	logger, buf := jsonLogger(LevelDebug)
	timer := logger.WithName("parser").StartTimer("build tree").WithField("bytes", 10)

	elapsed := timer.Stop()
	assert.GreaterOrEqual(t, elapsed, time.Duration(0))
	assert.Zero(t, timer.Stop(), "a timer logs only once")

	got := entries(t, buf)
	require.Len(t, got, 1)
	assert.Equal(t, "build tree completed", got[0]["message"])
	assert.Equal(t, "debug", got[0]["level"])
	assert.Equal(t, "build tree", got[0]["operation"])
	assert.Equal(t, "parser", got[0]["logger"])
	assert.Equal(t, float64(10), got[0]["bytes"])
}

func TestTimer_StopWithError(t *testing.T) {
	logger, buf := jsonLogger(LevelDebug)
	logger.StartTimer("resolve labels").StopWithError(errors.New("conflict"))

	got := entries(t, buf)
	require.Len(t, got, 1)
	assert.Equal(t, "resolve labels failed", got[0]["message"])
	assert.Equal(t, "conflict", got[0]["error"])
}

func TestTimer_BelowLevelIsSilent(t *testing.T) {
	logger, buf := jsonLogger(LevelInfo)
	logger.StartTimer("quiet").Stop()
	assert.Empty(t, buf.String())
}

func TestTimer_SlowThreshold(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewWithConfig(Config{
		Level:         LevelWarn,
		Format:        FormatJSON,
		Output:        buf,
		SlowThreshold: time.Nanosecond,
	})

	timer := logger.StartTimer("build tree")
	time.Sleep(time.Millisecond)
	timer.Stop()

	got := entries(t, buf)
	require.Len(t, got, 1)
	assert.Equal(t, "warn", got[0]["level"])
	assert.Equal(t, "build tree completed", got[0]["message"])
}
