package uibridge

import (
	"context"
	"log/slog"
)

// LogLevel is the message severity reported by a UI runtime through its
// log callback. It mirrors the levels UI runtimes commonly emit and maps
// onto slog levels for diagnostic output.
type LogLevel int

// Runtime log levels, ordered by increasing severity.
const (
	LogLevelTrace LogLevel = iota
	LogLevelDebug
	LogLevelInfo
	LogLevelWarning
	LogLevelError
)

// levelTrace sits below slog.LevelDebug so trace chatter can be filtered
// out even when debug logging is enabled.
const levelTrace = slog.LevelDebug - 4

// String returns the level name.
func (l LogLevel) String() string {
	switch l {
	case LogLevelTrace:
		return "trace"
	case LogLevelDebug:
		return "debug"
	case LogLevelInfo:
		return "info"
	case LogLevelWarning:
		return "warning"
	case LogLevelError:
		return "error"
	default:
		return "unknown"
	}
}

// slogLevel maps a runtime log level onto the slog level used for output.
func (l LogLevel) slogLevel() slog.Level {
	switch l {
	case LogLevelTrace:
		return levelTrace
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelInfo:
		return slog.LevelInfo
	case LogLevelWarning:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}

// LogFunc receives log messages from a UI runtime. The channel identifies
// the runtime subsystem that produced the message; the default (unscoped)
// channel is the empty string.
type LogFunc func(level LogLevel, channel, message string)

// newLogRouter builds the LogFunc the bridge installs on its runtime.
//
// Only messages on the default channel are surfaced; scoped channels carry
// runtime-internal chatter and are dropped. All surfaced messages go to the
// package logger at the mapped slog level. Error-level messages are
// additionally delivered to onError, which may be nil. This is the only
// level surfaced as a structured callback; lower levels are diagnostic
// output only.
func newLogRouter(onError func(message string)) LogFunc {
	return func(level LogLevel, channel, message string) {
		if channel != "" {
			return
		}
		Logger().Log(context.Background(), level.slogLevel(), message, "source", "runtime")
		if level == LogLevelError && onError != nil {
			onError(message)
		}
	}
}
