// Package logger provides structured JSON logging and run metrics for fbref-comps.
//
// Log lines are written as JSON through log/slog, one object per line, to
// stderr by default so that stdout stays reserved for the competition report.
// Every entry carries a timestamp, level and message and may carry arbitrary
// structured fields.
//
// Metrics tracking covers counters (incrementing values) and timings
// (duration measurements) with min/max/average aggregation.
//
// Example usage:
//
//	logger.Info("fetched page", logger.Fields{
//	    "url":    url,
//	    "status": 200,
//	})
//
//	logger.Error("request failed", logger.Fields{"url": url}, err)
//
//	logger.IncrCounter("rows.skipped")
//	logger.RecordTiming("http.fetch", duration)
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sort"
	"sync"
	"time"
)

// Level represents log severity
type Level string

const (
	LevelDebug Level = "DEBUG"
	LevelInfo  Level = "INFO"
	LevelWarn  Level = "WARN"
	LevelError Level = "ERROR"
)

func (l Level) slogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Fields represents structured log fields
type Fields map[string]interface{}

// attrs converts fields to slog attributes in key order so output is stable
func (f Fields) attrs() []slog.Attr {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]slog.Attr, 0, len(keys))
	for _, k := range keys {
		out = append(out, slog.Any(k, f[k]))
	}
	return out
}

// Logger provides structured logging
type Logger struct {
	handler *slog.Logger
}

var (
	defaultMu     sync.RWMutex
	defaultLogger = New(LevelInfo, os.Stderr)
)

// New creates a new logger with the specified minimum log level and output destination.
// Messages below the minimum level will be discarded.
func New(level Level, output io.Writer) *Logger {
	h := slog.NewJSONHandler(output, &slog.HandlerOptions{
		Level: level.slogLevel(),
	})
	return &Logger{handler: slog.New(h)}
}

// SetDefault sets the package-level logger used by Debug, Info, Warn and Error.
func SetDefault(logger *Logger) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultLogger = logger
}

// Default returns the package-level logger
func Default() *Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

func (l *Logger) log(level Level, message string, fields Fields, err error) {
	attrs := fields.attrs()
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	l.handler.LogAttrs(context.Background(), level.slogLevel(), message, attrs...)
}

// Debug logs a debug message with optional structured fields.
func (l *Logger) Debug(message string, fields Fields) {
	l.log(LevelDebug, message, fields, nil)
}

// Info logs an informational message with optional structured fields.
func (l *Logger) Info(message string, fields Fields) {
	l.log(LevelInfo, message, fields, nil)
}

// Warn logs a warning message with optional structured fields.
// Warnings indicate input the run tolerated, such as a skipped table row.
func (l *Logger) Warn(message string, fields Fields) {
	l.log(LevelWarn, message, fields, nil)
}

// Error logs an error message with optional structured fields and an error object.
func (l *Logger) Error(message string, fields Fields, err error) {
	l.log(LevelError, message, fields, err)
}

// Debug logs a debug message with the default logger
func Debug(message string, fields Fields) {
	Default().Debug(message, fields)
}

// Info logs an info message with the default logger
func Info(message string, fields Fields) {
	Default().Info(message, fields)
}

// Warn logs a warning message with the default logger
func Warn(message string, fields Fields) {
	Default().Warn(message, fields)
}

// Error logs an error message with the default logger
func Error(message string, fields Fields, err error) {
	Default().Error(message, fields, err)
}

// Metrics tracks counters and timings for a run.
// All operations are thread-safe.
type Metrics struct {
	mu       sync.Mutex
	counters map[string]int64
	timings  map[string][]time.Duration
}

var defaultMetrics = NewMetrics()

// NewMetrics creates a new metrics tracker with empty counters and timings.
func NewMetrics() *Metrics {
	return &Metrics{
		counters: make(map[string]int64),
		timings:  make(map[string][]time.Duration),
	}
}

// IncrCounter increments a counter by 1
func (m *Metrics) IncrCounter(name string) {
	m.AddCounter(name, 1)
}

// AddCounter adds delta to a counter
func (m *Metrics) AddCounter(name string, delta int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counters[name] += delta
}

// Counter returns the current value of a counter
func (m *Metrics) Counter(name string) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counters[name]
}

// RecordTiming records a duration measurement
func (m *Metrics) RecordTiming(name string, duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.timings[name] = append(m.timings[name], duration)
}

// Reset clears all counters and timings
func (m *Metrics) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counters = make(map[string]int64)
	m.timings = make(map[string][]time.Duration)
}

// GetSnapshot returns a snapshot of all metrics as a map containing:
//   - "counters": map of counter names to values
//   - "timings": map of timing names to statistics (count, total, average, min, max)
//
// The snapshot is a deep copy.
func (m *Metrics) GetSnapshot() map[string]interface{} {
	m.mu.Lock()
	defer m.mu.Unlock()

	counters := make(map[string]int64, len(m.counters))
	for k, v := range m.counters {
		counters[k] = v
	}

	timings := make(map[string]map[string]interface{})
	for name, durations := range m.timings {
		if len(durations) == 0 {
			continue
		}

		var total time.Duration
		min := durations[0]
		max := durations[0]
		for _, d := range durations {
			total += d
			if d < min {
				min = d
			}
			if d > max {
				max = d
			}
		}

		timings[name] = map[string]interface{}{
			"count":   len(durations),
			"total":   total.String(),
			"average": (total / time.Duration(len(durations))).String(),
			"min":     min.String(),
			"max":     max.String(),
		}
	}

	return map[string]interface{}{
		"counters": counters,
		"timings":  timings,
	}
}

// IncrCounter increments a counter on the default metrics tracker.
func IncrCounter(name string) {
	defaultMetrics.IncrCounter(name)
}

// AddCounter adds delta to a counter on the default metrics tracker.
func AddCounter(name string, delta int64) {
	defaultMetrics.AddCounter(name, delta)
}

// RecordTiming records a timing on the default metrics tracker.
func RecordTiming(name string, duration time.Duration) {
	defaultMetrics.RecordTiming(name, duration)
}

// GetMetricsSnapshot returns a snapshot of the default tracker.
func GetMetricsSnapshot() map[string]interface{} {
	return defaultMetrics.GetSnapshot()
}

// DefaultMetrics returns the package-level metrics tracker
func DefaultMetrics() *Metrics {
	return defaultMetrics
}
