package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"gotest.tools/v3/assert"
)

func TestSetupLoggerConsoleOnly(t *testing.T) {
	var buf bytes.Buffer
	logger, closeFn := SetupLogger(Options{Level: slog.LevelInfo, Output: &buf})
	defer closeFn()

	logger.Debug("hidden")
	logger.Info("Database loaded successfully", "table_count", 2)

	out := buf.String()
	assert.Assert(t, !strings.Contains(out, "hidden"))
	assert.Assert(t, strings.Contains(out, "table_count=2"), out)
}

func TestMultiHandlerFansOutByLevel(t *testing.T) {
	var debug, warn bytes.Buffer
	m := &multiHandler{handlers: []slog.Handler{
		slog.NewTextHandler(&debug, &slog.HandlerOptions{Level: slog.LevelDebug}),
		slog.NewTextHandler(&warn, &slog.HandlerOptions{Level: slog.LevelWarn}),
	}}
	logger := slog.New(m).With("database", "shop")

	logger.Info("table created")
	logger.Warn("insert rejected")

	assert.Equal(t, strings.Count(debug.String(), "database=shop"), 2)
	assert.Assert(t, !strings.Contains(warn.String(), "table created"))
	assert.Assert(t, strings.Contains(warn.String(), "insert rejected"))

	logger.WithGroup("table").Warn("scan failed", "name", "items")
	assert.Assert(t, strings.Contains(warn.String(), "table.name=items"), warn.String())
	assert.Assert(t, strings.Contains(debug.String(), "table.name=items"), debug.String())
}
