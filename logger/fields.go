package logger

import (
	"context"

	"go.uber.org/zap"
)

// Standard field names for consistent structured logging across adaptgen.
// Use these constants instead of raw strings to ensure consistency.
const (
	// Identity
	FieldRunID = "run_id"

	// Pipeline
	FieldPass          = "pass"
	FieldModule        = "module"
	FieldQualifiedName = "qualified_name"
	FieldAnnotation    = "annotation"

	// Timing
	FieldDurationMS = "duration_ms"

	// Errors
	FieldError = "error"

	// Counts
	FieldCount = "count"

	// Files and paths
	FieldFile   = "file"
	FieldOutput = "output"
)

type contextKey string

const runIDKey contextKey = "logger_run_id"

// WithRunID adds a generation run ID to the context for logging
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, runIDKey, runID)
}

// RunIDFromContext returns the run ID stored by WithRunID, if any.
func RunIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(runIDKey).(string)
	return id
}

// FieldsFromContext extracts logging fields from context.
// Returns key-value pairs suitable for use with Infow/Errorw/etc.
func FieldsFromContext(ctx context.Context) []interface{} {
	var fields []interface{}
	if runID := RunIDFromContext(ctx); runID != "" {
		fields = append(fields, FieldRunID, runID)
	}
	return fields
}

// LoggerFromContext returns a logger with fields extracted from context.
func LoggerFromContext(ctx context.Context) *zap.SugaredLogger {
	fields := FieldsFromContext(ctx)
	if len(fields) == 0 {
		return Logger
	}
	return Logger.With(fields...)
}

// ComponentLogger returns a named logger for a specific component.
//
// Example:
//
//	log := logger.ComponentLogger("transform")
//	log.Debugw("Pass finished", logger.FieldPass, "rename")
func ComponentLogger(name string) *zap.SugaredLogger {
	return Logger.Named(name)
}
