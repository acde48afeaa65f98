package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestInitialize(t *testing.T) {
	tests := []struct {
		name       string
		jsonOutput bool
		verbosity  int
	}{
		{name: "JSON output mode", jsonOutput: true, verbosity: 0},
		{name: "Console output mode", jsonOutput: false, verbosity: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prev := Logger
			defer func() { Logger = prev; JSONOutput = false; Verbosity = 0 }()

			require.NoError(t, Initialize(tt.jsonOutput, tt.verbosity))
			assert.NotNil(t, Logger)
			assert.Equal(t, tt.jsonOutput, JSONOutput)
			assert.Equal(t, tt.verbosity, Verbosity)
		})
	}
}

func TestVerbosityToLevel(t *testing.T) {
	tests := []struct {
		verbosity int
		want      zapcore.Level
	}{
		{-1, zapcore.WarnLevel},
		{VerbosityUser, zapcore.WarnLevel},
		{VerbosityInfo, zapcore.InfoLevel},
		{VerbosityDebug, zapcore.DebugLevel},
		{VerbosityAll + 3, zapcore.DebugLevel},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, VerbosityToLevel(tt.verbosity), "verbosity %d", tt.verbosity)
	}
}

func TestShouldOutput(t *testing.T) {
	tests := []struct {
		verbosity int
		category  OutputCategory
		want      bool
	}{
		{VerbosityUser, OutputResults, true},
		{VerbosityUser, OutputErrors, true},
		{VerbosityUser, OutputFiles, false},
		{VerbosityUser, OutputSummary, false},
		{VerbosityInfo, OutputFiles, true},
		{VerbosityInfo, OutputSummary, true},
		{VerbosityInfo, OutputPasses, false},
		{VerbosityDebug, OutputPasses, true},
		{VerbosityDebug, OutputTiming, true},
		{VerbosityDebug, OutputConfig, true},
		{VerbosityDebug, OutputFileContents, false},
		{VerbosityAll, OutputFileContents, true},
		{VerbosityTrace, OutputCategory(99), false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ShouldOutput(tt.verbosity, tt.category),
			"verbosity %d, category %d", tt.verbosity, tt.category)
	}
}

func TestLevelName(t *testing.T) {
	tests := []struct {
		verbosity int
		want      string
	}{
		{VerbosityUser, "User"},
		{VerbosityInfo, "Info (-v)"},
		{VerbosityDebug, "Debug (-vv)"},
		{VerbosityAll, "All (-vvvv)"},
		{VerbosityAll + 1, "All (-vvvv+)"},
		{-1, "Unknown"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, LevelName(tt.verbosity))
	}
}

func TestReplaceAndHelpers(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	restore := Replace(zap.New(core))
	defer restore()

	Debugw("debug", FieldPass, "rename")
	Infow("info", FieldCount, 2)
	Warnw("warn", FieldQualifiedName, "m.f")
	Errorw("error", FieldModule, "m")

	require.Equal(t, 4, logs.Len())
	assert.Equal(t, "rename", logs.All()[0].ContextMap()[FieldPass])
	assert.Equal(t, zapcore.ErrorLevel, logs.All()[3].Level)
}

func TestLoggerFromContext(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	restore := Replace(zap.New(core))
	defer restore()

	ctx := WithRunID(context.Background(), "run-1")
	assert.Equal(t, "run-1", RunIDFromContext(ctx))

	LoggerFromContext(ctx).Infow("hello")
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "run-1", logs.All()[0].ContextMap()[FieldRunID])

	assert.Same(t, Logger, LoggerFromContext(context.Background()))
}
