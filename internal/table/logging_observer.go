package table

import (
	"context"
	"log/slog"
)

// LoggingObserver logs every table event using structured logging
type LoggingObserver struct {
	logger *slog.Logger
}

// NewLoggingObserver creates a logging observer; a nil logger means slog.Default()
func NewLoggingObserver(logger *slog.Logger) *LoggingObserver {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingObserver{logger: logger}
}

// OnEvent implements the Observer interface.
// Rejections are logged at warn level, everything else at debug.
func (lo *LoggingObserver) OnEvent(event Event) {
	level := slog.LevelDebug
	if event.Type == EventMutationRejected {
		level = slog.LevelWarn
	}
	lo.logger.Log(context.Background(), level, "table_mutation",
		"event", event.Type,
		"table_id", event.TableID,
		"title", event.Title,
		"timestamp", event.Timestamp,
		"data", event.Data,
	)
}
