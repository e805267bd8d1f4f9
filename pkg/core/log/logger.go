// File: logger.go
// Title: Structured Logger
// Description: Immutable structured logger. With* methods return modified
//              copies so a logger can be specialised per command or per parse
//              run (name, correlation ID, fields) without affecting others.
//              Coded errors from pkg/core/errors are logged with their code.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial logger

package log

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	vcerrors "github.com/msto63/vc2pseudo/pkg/core/errors"
)

// Logger represents a structured logger with contextual information
type Logger struct {
	level         Level
	formatter     Formatter
	output        io.Writer
	name          string
	contextFields Fields
	correlationID string
	slowThreshold time.Duration

	mutex *sync.Mutex // shared by clones writing to the same output
}

// Config represents logger configuration
type Config struct {
	Level  Level
	Format Format
	Output io.Writer
	Name   string

	// SlowThreshold raises timers running longer than this to warn level;
	// 0 disables it
	SlowThreshold time.Duration
}

// New creates a logger writing text to stderr at info level
func New() *Logger {
	return NewWithConfig(Config{Level: LevelInfo, Format: FormatText})
}

// NewWithConfig creates a new logger with the specified configuration
func NewWithConfig(config Config) *Logger {
	output := config.Output
	if output == nil {
		output = os.Stderr
	}
	return &Logger{
		level:         config.Level,
		formatter:     GetFormatter(config.Format),
		output:        output,
		name:          config.Name,
		contextFields: make(Fields),
		slowThreshold: config.SlowThreshold,
		mutex:         &sync.Mutex{},
	}
}

// Discard returns a logger that drops everything
func Discard() *Logger {
	return NewWithConfig(Config{Level: LevelError + 1, Output: io.Discard})
}

// clone creates a copy of the logger for immutable operations
func (l *Logger) clone() *Logger {
	c := *l
	c.contextFields = make(Fields, len(l.contextFields))
	for k, v := range l.contextFields {
		c.contextFields[k] = v
	}
	return &c
}

// WithLevel returns a copy logging at level and above
func (l *Logger) WithLevel(level Level) *Logger {
	c := l.clone()
	c.level = level
	return c
}

// WithFormat returns a copy using format
func (l *Logger) WithFormat(format Format) *Logger {
	c := l.clone()
	c.formatter = GetFormatter(format)
	return c
}

// WithOutput returns a copy writing to output
func (l *Logger) WithOutput(output io.Writer) *Logger {
	c := l.clone()
	c.output = output
	c.mutex = &sync.Mutex{}
	return c
}

// WithName returns a copy with the given logger name
func (l *Logger) WithName(name string) *Logger {
	c := l.clone()
	c.name = name
	return c
}

// WithField returns a copy which adds key to every entry
func (l *Logger) WithField(key string, value interface{}) *Logger {
	c := l.clone()
	c.contextFields[key] = value
	return c
}

// WithFields returns a copy which adds fields to every entry
func (l *Logger) WithFields(fields Fields) *Logger {
	c := l.clone()
	for k, v := range fields {
		c.contextFields[k] = v
	}
	return c
}

// WithCorrelationID returns a copy tagging entries with id
func (l *Logger) WithCorrelationID(id string) *Logger {
	c := l.clone()
	c.correlationID = id
	return c
}

// WithNewCorrelationID returns a copy tagged with a fresh random ID
func (l *Logger) WithNewCorrelationID() *Logger {
	return l.WithCorrelationID(uuid.NewString())
}

// CorrelationID returns the correlation ID, if any
func (l *Logger) CorrelationID() string { return l.correlationID }

// GetLevel returns the current log level
func (l *Logger) GetLevel() Level { return l.level }

// IsLevelEnabled returns true if the given level is enabled
func (l *Logger) IsLevelEnabled(level Level) bool { return level.ShouldLog(l.level) }

// Trace logs a trace level message
func (l *Logger) Trace(message string, fields ...Fields) {
	l.log(LevelTrace, message, nil, fields...)
}

// Debug logs a debug level message
func (l *Logger) Debug(message string, fields ...Fields) {
	l.log(LevelDebug, message, nil, fields...)
}

// Info logs an info level message
func (l *Logger) Info(message string, fields ...Fields) {
	l.log(LevelInfo, message, nil, fields...)
}

// Warn logs a warning level message
func (l *Logger) Warn(message string, fields ...Fields) {
	l.log(LevelWarn, message, nil, fields...)
}

// Error logs an error level message
func (l *Logger) Error(message string, fields ...Fields) {
	l.log(LevelError, message, nil, fields...)
}

// ErrorWithErr logs an error with an error object
func (l *Logger) ErrorWithErr(message string, err error, fields ...Fields) {
	l.log(LevelError, message, err, fields...)
}

// LogError logs err, adding the error code when it carries one. Errors
// marked as user errors (bad input rather than a failure of the tool) are
// logged at warn level.
func (l *Logger) LogError(err error) {
	if err == nil {
		return
	}
	code := vcerrors.CodeOf(err)
	if code == "" {
		l.log(LevelError, err.Error(), err)
		return
	}
	level := LevelError
	if vcerrors.IsUserError(err) {
		level = LevelWarn
	}
	l.log(level, vcerrors.MessageOf(err), err, Fields{"error_code": string(code)})
}

// StartTimer creates and starts a timer for operation
func (l *Logger) StartTimer(operation string) *Timer {
	return NewTimer(l, operation)
}

func (l *Logger) log(level Level, message string, err error, fields ...Fields) {
	if !level.ShouldLog(l.level) {
		return
	}

	entry := NewEntry(level, message)
	entry.Logger = l.name
	entry.CorrelationID = l.correlationID
	entry.Error = err
	for k, v := range l.contextFields {
		entry.Fields[k] = v
	}
	for _, set := range fields {
		for k, v := range set {
			entry.Fields[k] = v
		}
	}
	l.write(entry)
}

func (l *Logger) write(entry *Entry) {
	formatted, err := l.formatter.Format(entry)
	if err != nil {
		return
	}
	l.mutex.Lock()
	defer l.mutex.Unlock()
	_, _ = l.output.Write(formatted)
}

var (
	defaultLogger = New()
	defaultMu     sync.RWMutex
)

// GetDefault returns the default logger instance
func GetDefault() *Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

// SetDefault replaces the default logger instance
func SetDefault(logger *Logger) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultLogger = logger
}
