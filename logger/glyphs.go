package logger

import (
	"github.com/solterra/monokit/glyph"
)

// Glyph-aware logging helpers.
// These functions log with the glyph as a structured field, not in the message.
//
// Usage:
//
//	// Instead of:
//	logger.Infow(glyph.Sync + " Generated stubs", "count", n)
//
//	// Use:
//	logger.SyncInfow("Generated stubs", "count", n)
//
// This makes logs queryable by glyph and keeps messages clean.

// SyncInfow logs an info message with the Sync glyph (⇅)
func SyncInfow(msg string, keysAndValues ...interface{}) {
	if Logger != nil {
		fields := append([]interface{}{FieldGlyph, glyph.Sync}, keysAndValues...)
		Logger.Infow(msg, fields...)
	}
}

// SyncDebugw logs a debug message with the Sync glyph (⇅)
func SyncDebugw(msg string, keysAndValues ...interface{}) {
	if Logger != nil {
		fields := append([]interface{}{FieldGlyph, glyph.Sync}, keysAndValues...)
		Logger.Debugw(msg, fields...)
	}
}

// SyncWarnw logs a warning message with the Sync glyph (⇅)
func SyncWarnw(msg string, keysAndValues ...interface{}) {
	if Logger != nil {
		fields := append([]interface{}{FieldGlyph, glyph.Sync}, keysAndValues...)
		Logger.Warnw(msg, fields...)
	}
}

// StubFailw logs a per-entry generation failure with the Fail glyph (✗).
// Used for warn-and-skip entries; the run continues with sibling entries.
func StubFailw(msg string, keysAndValues ...interface{}) {
	if Logger != nil {
		fields := append([]interface{}{FieldGlyph, glyph.Fail}, keysAndValues...)
		Logger.Warnw(msg, fields...)
	}
}

// ReleaseInfow logs an info message with the Release glyph (⌁)
func ReleaseInfow(msg string, keysAndValues ...interface{}) {
	if Logger != nil {
		fields := append([]interface{}{FieldGlyph, glyph.Release}, keysAndValues...)
		Logger.Infow(msg, fields...)
	}
}

// ReleaseDebugw logs a debug message with the Release glyph (⌁)
func ReleaseDebugw(msg string, keysAndValues ...interface{}) {
	if Logger != nil {
		fields := append([]interface{}{FieldGlyph, glyph.Release}, keysAndValues...)
		Logger.Debugw(msg, fields...)
	}
}

// TagInfow logs an info message with the Tag glyph (◈)
func TagInfow(msg string, keysAndValues ...interface{}) {
	if Logger != nil {
		fields := append([]interface{}{FieldGlyph, glyph.Tag}, keysAndValues...)
		Logger.Infow(msg, fields...)
	}
}

// WatchInfow logs an info message with the Watch glyph (◉)
// Used for file-watch mode events
func WatchInfow(msg string, keysAndValues ...interface{}) {
	if Logger != nil {
		fields := append([]interface{}{FieldGlyph, glyph.Watch}, keysAndValues...)
		Logger.Infow(msg, fields...)
	}
}
