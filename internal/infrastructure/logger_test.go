package infrastructure

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salescli/internal/config"
)

func decodeLines(t *testing.T, data []byte) []map[string]interface{} {
	t.Helper()
	var entries []map[string]interface{}
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &entry), "log output is not valid JSON")
		entries = append(entries, entry)
	}
	return entries
}

func TestInitializeLogger(t *testing.T) {
	ResetLoggerForTesting()
	defer ResetLoggerForTesting()

	logFile := filepath.Join(t.TempDir(), "logs", "test.log")

	logger, err := InitializeLogger(config.LoggingConfig{
		Level:    "info",
		Format:   "json",
		Output:   "file",
		FilePath: logFile,
	})
	require.NoError(t, err)
	require.NotNil(t, logger)
	assert.Same(t, logger, GetLogger())

	logger.Info("test message", "key", "value")
	require.NoError(t, CloseLogFile())

	content, err := os.ReadFile(logFile)
	require.NoError(t, err)

	entries := decodeLines(t, content)
	require.Len(t, entries, 1)
	assert.Equal(t, "test message", entries[0]["msg"])
	assert.Equal(t, "value", entries[0]["key"])
	assert.Equal(t, "INFO", entries[0]["level"])
	assert.Contains(t, entries[0], "source")
}

func TestInitializeLogger_OnlyOnce(t *testing.T) {
	ResetLoggerForTesting()
	defer ResetLoggerForTesting()

	first, err := InitializeLogger(config.LoggingConfig{Level: "info", Output: "console"})
	require.NoError(t, err)
	second, err := InitializeLogger(config.LoggingConfig{Level: "debug", Output: "console"})
	require.NoError(t, err)

	assert.Same(t, first, second)
}

func TestNewLogger_BothOutputs(t *testing.T) {
	var console bytes.Buffer
	logFile := filepath.Join(t.TempDir(), "both.log")

	logger, file, err := NewLogger(config.LoggingConfig{Level: "info", Output: "both", FilePath: logFile}, &console)
	require.NoError(t, err)
	require.NotNil(t, file)
	defer file.Close()

	logger.Info("dual output")

	content, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, console.String(), "dual output")
	assert.Contains(t, string(content), "dual output")
}

func TestNewLogger_LevelFiltering(t *testing.T) {
	var console bytes.Buffer
	logger, file, err := NewLogger(config.LoggingConfig{Level: "warn", Output: "console"}, &console)
	require.NoError(t, err)
	assert.Nil(t, file)

	logger.Info("dropped")
	logger.Warn("kept")

	entries := decodeLines(t, console.Bytes())
	require.Len(t, entries, 1)
	assert.Equal(t, "kept", entries[0]["msg"])
}

func TestTraceIDInjection(t *testing.T) {
	var console bytes.Buffer
	logger, _, err := NewLogger(config.LoggingConfig{Level: "info", Output: "console"}, &console)
	require.NoError(t, err)

	ctx := WithTraceID(context.Background(), "run-123")
	logger.InfoContext(ctx, "with trace")
	logger.With("component", "generator").InfoContext(ctx, "with attrs")
	logger.InfoContext(context.Background(), "without trace")

	entries := decodeLines(t, console.Bytes())
	require.Len(t, entries, 3)
	assert.Equal(t, "run-123", entries[0]["trace_id"])
	assert.Equal(t, "run-123", entries[1]["trace_id"])
	assert.Equal(t, "generator", entries[1]["component"])
	assert.NotContains(t, entries[2], "trace_id")
}

func TestParseLogLevel(t *testing.T) {
	tests := map[string]string{
		"debug":   "DEBUG",
		"info":    "INFO",
		"WARN":    "WARN",
		"warning": "WARN",
		"error":   "ERROR",
		"bogus":   "INFO",
	}

	for input, expected := range tests {
		t.Run(input, func(t *testing.T) {
			assert.Equal(t, expected, parseLogLevel(input).String())
		})
	}
}

func TestContextHelpers(t *testing.T) {
	ctx := EnsureTraceID(context.Background())
	id := GetTraceID(ctx)
	assert.Len(t, id, 36, "uuid v4 string")

	assert.Equal(t, id, GetTraceID(EnsureTraceID(ctx)), "existing id is kept")
	assert.NotEqual(t, id, GetTraceID(EnsureTraceID(context.Background())))
	assert.Empty(t, GetTraceID(context.Background()))
}

func TestStageAndComponentAttributes(t *testing.T) {
	var console bytes.Buffer
	logger, _, err := NewLogger(config.LoggingConfig{Level: "info", Output: "console"}, &console)
	require.NoError(t, err)

	ctx := WithStage(WithTraceID(context.Background(), "run-9"), "render_charts")
	WithComponent(logger, "charts").InfoContext(ctx, "Chart rendered")
	logger.InfoContext(context.Background(), "outside")

	entries := decodeLines(t, console.Bytes())
	require.Len(t, entries, 2)
	assert.Equal(t, "charts", entries[0]["component"])
	assert.Equal(t, "render_charts", entries[0]["stage"])
	assert.Equal(t, "run-9", entries[0]["trace_id"])
	assert.NotContains(t, entries[1], "stage")
	assert.Equal(t, "render_charts", GetStage(ctx))
}
