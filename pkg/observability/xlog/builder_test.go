package xlog

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_TextOutput(t *testing.T) {
	var buf bytes.Buffer
	logger, cleanup, err := New().SetOutput(&buf).Build()
	require.NoError(t, err)
	defer func() { _ = cleanup() }()

	logger.Info(context.Background(), "hello", slog.String("k", "v"))

	out := buf.String()
	assert.Contains(t, out, "hello")
	assert.Contains(t, out, "k=v")
}

func TestBuilder_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	logger, cleanup, err := New().SetOutput(&buf).SetFormat("json").Build()
	require.NoError(t, err)
	defer func() { _ = cleanup() }()

	logger.Warn(context.Background(), "disk almost full", Count(3))

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "disk almost full", record["msg"])
	assert.Equal(t, float64(3), record["count"])
}

func TestBuilder_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger, cleanup, err := New().SetOutput(&buf).SetLevel(LevelWarn).Build()
	require.NoError(t, err)
	defer func() { _ = cleanup() }()

	ctx := context.Background()
	logger.Debug(ctx, "dropped")
	logger.Info(ctx, "dropped too")
	logger.Error(ctx, "kept")

	out := buf.String()
	assert.NotContains(t, out, "dropped")
	assert.Contains(t, out, "kept")
}

func TestBuilder_DynamicLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, cleanup, err := New().SetOutput(&buf).Build()
	require.NoError(t, err)
	defer func() { _ = cleanup() }()

	ctx := context.Background()
	logger.Debug(ctx, "before")
	logger.SetLevel(LevelDebug)
	logger.Debug(ctx, "after")

	out := buf.String()
	assert.NotContains(t, out, "before")
	assert.Contains(t, out, "after")
	assert.Equal(t, LevelDebug, logger.GetLevel())
}

func TestBuilder_DerivedLoggerSharesLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, cleanup, err := New().SetOutput(&buf).Build()
	require.NoError(t, err)
	defer func() { _ = cleanup() }()

	child := logger.With(Component("cleaner"))
	logger.SetLevel(LevelDebug)

	child.Debug(context.Background(), "derived sees new level")
	assert.Contains(t, buf.String(), "derived sees new level")
	assert.Contains(t, buf.String(), "component=cleaner")
}

func TestBuilder_FirstErrorWins(t *testing.T) {
	_, _, err := New().
		SetLevelString("bogus").
		SetFormat("also-bogus"). // 应被跳过
		Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bogus")
	assert.NotContains(t, err.Error(), "also-bogus")
}

func TestBuilder_UnknownFormat(t *testing.T) {
	_, _, err := New().SetFormat("xml").Build()
	assert.Error(t, err)
}

func TestBuilder_EmptyFormatIsDefault(t *testing.T) {
	var buf bytes.Buffer
	logger, cleanup, err := New().SetOutput(&buf).SetFormat("").Build()
	require.NoError(t, err)
	defer func() { _ = cleanup() }()

	logger.Info(context.Background(), "text by default")
	assert.False(t, strings.HasPrefix(buf.String(), "{"))
}

func TestBuilder_RotationCreatesDir(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "logs", "portctl.log")
	logger, cleanup, err := New().SetRotation(logFile, WithMaxSizeMB(1)).Build()
	require.NoError(t, err)

	logger.Info(context.Background(), "rotated output")
	require.NoError(t, cleanup())

	assert.DirExists(t, filepath.Dir(logFile))
	assert.FileExists(t, logFile)
}

func TestBuilder_RotationEmptyFilename(t *testing.T) {
	_, _, err := New().SetRotation("").Build()
	assert.Error(t, err)
}
