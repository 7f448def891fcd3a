// Package logging implements ports.Logger: a NopLogger for quiet runs and
// a ConsoleLogger for verbose text or JSON diagnostics.
package logging

import (
	"context"

	"github.com/groundwork-sh/groundwork/internal/ports"
)

// NopLogger discards every message. It is the default logger so that
// provisioning output stays clean unless verbosity is requested.
type NopLogger struct {
	level ports.Level
}

// NewNopLogger creates a NopLogger.
func NewNopLogger() *NopLogger {
	return &NopLogger{level: ports.LevelInfo}
}

// Debug does nothing.
func (l *NopLogger) Debug(_ context.Context, _ string, _ ...ports.Field) {}

// Info does nothing.
func (l *NopLogger) Info(_ context.Context, _ string, _ ...ports.Field) {}

// Warn does nothing.
func (l *NopLogger) Warn(_ context.Context, _ string, _ ...ports.Field) {}

// Error does nothing.
func (l *NopLogger) Error(_ context.Context, _ string, _ ...ports.Field) {}

// With returns the same logger; there are no fields to carry.
func (l *NopLogger) With(_ ...ports.Field) ports.Logger {
	return l
}

// Level returns the configured level.
func (l *NopLogger) Level() ports.Level {
	return l.level
}

// SetLevel records the level; messages are discarded regardless.
func (l *NopLogger) SetLevel(level ports.Level) {
	l.level = level
}

// Ensure NopLogger implements Logger.
var _ ports.Logger = (*NopLogger)(nil)
