package application

import (
	"fmt"
	"sort"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// StructuredLogger provides structured logging with context.
// Entries are written as JSON lines by zap.
type StructuredLogger struct {
	logger *zap.Logger
}

// NewStructuredLogger creates a JSON logger writing to stderr at the given level.
// stdout is left to the stdio transport.
func NewStructuredLogger(level string) (*StructuredLogger, error) {
	lvl := zapcore.InfoLevel
	if level != "" {
		if err := lvl.UnmarshalText([]byte(level)); err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", level, err)
		}
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.RFC3339TimeEncoder
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return &StructuredLogger{logger: logger}, nil
}

// NewLoggerFrom wraps an existing zap logger.
func NewLoggerFrom(logger *zap.Logger) *StructuredLogger {
	return &StructuredLogger{logger: logger}
}

// NewNopLogger returns a logger that discards everything.
func NewNopLogger() *StructuredLogger {
	return &StructuredLogger{logger: zap.NewNop()}
}

// Zap exposes the underlying zap logger for components that take one directly.
func (l *StructuredLogger) Zap() *zap.Logger {
	return l.logger
}

// LogDebug logs a debug message with context.
func (l *StructuredLogger) LogDebug(message string, context map[string]interface{}) {
	l.logger.Debug(message, fields(context)...)
}

// LogInfo logs an informational message with context.
func (l *StructuredLogger) LogInfo(message string, context map[string]interface{}) {
	l.logger.Info(message, fields(context)...)
}

// LogError logs an error message with context.
func (l *StructuredLogger) LogError(message string, err error, context map[string]interface{}) {
	l.logger.Error(message, append(fields(context), zap.Error(err))...)
}

// Sync flushes buffered entries.
func (l *StructuredLogger) Sync() error {
	return l.logger.Sync()
}

// fields converts a context map into zap fields in key order.
func fields(context map[string]interface{}) []zap.Field {
	keys := make([]string, 0, len(context))
	for k := range context {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]zap.Field, 0, len(keys)+1)
	for _, k := range keys {
		out = append(out, zap.Any(k, context[k]))
	}
	return out
}
