// File: timer.go
// Title: Operation Timer
// Description: Measures how long an operation took and logs it on Stop.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial timer

package log

import (
	"time"
)

// Timer represents a performance timer for measuring operation duration
type Timer struct {
	logger    *Logger
	operation string
	startTime time.Time
	fields    Fields
	stopped   bool
}

// NewTimer creates a new timer for the given operation
func NewTimer(logger *Logger, operation string) *Timer {
	return &Timer{
		logger:    logger,
		operation: operation,
		startTime: time.Now(),
		fields:    make(Fields),
	}
}

// WithField adds a field to be logged when the timer completes
func (t *Timer) WithField(key string, value interface{}) *Timer {
	t.fields[key] = value
	return t
}

// Elapsed returns the elapsed time since the timer was started
func (t *Timer) Elapsed() time.Duration {
	return time.Since(t.startTime)
}

// Stop logs "<operation> completed" at debug level with the elapsed time,
// or at warn level when the logger's slow threshold was exceeded.
// Only the first Stop or StopWithError call logs.
func (t *Timer) Stop() time.Duration {
	level := LevelDebug
	if t.logger != nil && t.logger.slowThreshold > 0 && t.Elapsed() > t.logger.slowThreshold {
		level = LevelWarn
	}
	return t.finish(level, " completed", nil)
}

// StopWithError logs "<operation> failed" at debug level with err
func (t *Timer) StopWithError(err error) time.Duration {
	return t.finish(LevelDebug, " failed", err)
}

func (t *Timer) finish(level Level, suffix string, err error) time.Duration {
	if t.stopped {
		return 0
	}
	t.stopped = true
	elapsed := t.Elapsed()
	if t.logger == nil || !t.logger.IsLevelEnabled(level) {
		return elapsed
	}

	entry := NewEntry(level, t.operation+suffix)
	entry.Logger = t.logger.name
	entry.CorrelationID = t.logger.correlationID
	entry.Error = err
	entry.Duration = elapsed
	entry.Fields = t.logger.contextFields.Merge(t.fields)
	entry.Fields["operation"] = t.operation
	t.logger.write(entry)
	return elapsed
}
