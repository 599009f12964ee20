package log

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelControlsSectionTracing(t *testing.T) {
	buf := &bytes.Buffer{}
	level := new(slog.LevelVar)
	level.Set(slog.LevelWarn)
	logger := New(buf, level).With("section", "infer")

	logger.Debug("reducing constraint")
	assert.Empty(t, buf.String(), "debug records must be dropped at warn level")

	level.Set(slog.LevelDebug)
	logger.Debug("reducing constraint")
	assert.Contains(t, buf.String(), "reducing constraint")
}

func TestDebugLevelStillFiltersUnknownSections(t *testing.T) {
	buf := &bytes.Buffer{}
	level := new(slog.LevelVar)
	level.Set(slog.LevelDebug)
	logger := New(buf, level).With("section", "backend")

	logger.Debug("hidden")
	assert.Empty(t, buf.String())

	logger.Warn("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestSetLevelReachesDefaultLogger(t *testing.T) {
	defer SetLevel(slog.LevelWarn)

	assert.False(t, DefaultLogger.Enabled(context.Background(), slog.LevelDebug))
	SetLevel(slog.LevelDebug)
	assert.True(t, DefaultLogger.Enabled(context.Background(), slog.LevelDebug))
}
