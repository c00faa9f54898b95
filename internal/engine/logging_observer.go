package engine

import (
	"context"
	"log/slog"
)

// LoggingObserver is a simple observer that logs all events using structured logging
type LoggingObserver struct {
	logger *slog.Logger
}

// NewLoggingObserver creates a new logging observer; a nil logger means slog.Default()
func NewLoggingObserver(logger *slog.Logger) *LoggingObserver {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingObserver{logger: logger}
}

// OnEvent implements the Observer interface
func (lo *LoggingObserver) OnEvent(event Event) {
	level := slog.LevelDebug
	if event.Type == EventInsertRejected {
		level = slog.LevelWarn
	}

	lo.logger.Log(context.Background(), level, "storage_event",
		"event", event.Type,
		"op_id", event.OpID,
		"database", event.Database,
		"table", event.Table,
		"timestamp", event.Timestamp,
		"data", event.Data,
	)
}
