package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelWarn},
		{"verbose", slog.LevelWarn},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLevel(tt.in), tt.in)
	}
}

func TestTextHandler_Line(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "debug", "text", false).With("component", "store")

	logger.Error("SETITEM", "key", "todos", "error", "disk full")

	line := buf.String()
	assert.True(t, strings.HasSuffix(line, "\n"))
	assert.Contains(t, line, "ERR SETITEM component=store key=todos error=disk full")
	assert.NotContains(t, line, "\x1b[")
}

func TestTextHandler_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "warn", "text", false)

	logger.Info("hidden")
	logger.Debug("hidden too")
	logger.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "WRN shown")
}

func TestTextHandler_Groups(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "info", "text", false).WithGroup("todo")

	logger.Info("loaded", "count", 2)

	assert.Contains(t, buf.String(), "INF loaded todo.count=2")
}

func TestTextHandler_Colored(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "info", "text", true)

	logger.Info("hello")

	assert.Contains(t, buf.String(), "\x1b[")
}

func TestJSONHandler(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "info", "json", false)

	logger.Warn("GETITEM", "key", "onboarded")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "GETITEM", rec["msg"])
	assert.Equal(t, "WARN", rec["level"])
	assert.Equal(t, "onboarded", rec["key"])
}

func TestDiscard(t *testing.T) {
	logger := Discard()
	assert.False(t, logger.Enabled(context.Background(), slog.LevelError))
}
