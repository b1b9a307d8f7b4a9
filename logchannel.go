//
// SPDX-License-Identifier: GPL-3.0-or-later
//
// Adapted from the teacher package's SLogger abstraction (slogger.go):
// same no-op-by-default, pluggable-sink shape, generalized from a two-level
// Debug/Info interface to spec.md §4.H's (module, level, context, format,
// args) callback.
//

package mongoconn

import (
	"fmt"
	"log/slog"
)

// LogModule is a small integer enum naming the component that emitted a log
// line (spec.md §4.H).
type LogModule int

const (
	ModuleRegistry LogModule = iota
	ModuleConnection
	ModuleAcquire
	ModuleDiscovery
	ModuleSelection
	ModuleManager
)

// String implements [fmt.Stringer].
func (m LogModule) String() string {
	switch m {
	case ModuleRegistry:
		return "registry"
	case ModuleConnection:
		return "connection"
	case ModuleAcquire:
		return "acquire"
	case ModuleDiscovery:
		return "discovery"
	case ModuleSelection:
		return "selection"
	case ModuleManager:
		return "manager"
	default:
		return "unknown"
	}
}

// LogLevel is a small integer enum, compatible with [log/slog]'s level
// scale so a [LogFunc] can be implemented by forwarding into a
// [*slog.Logger].
type LogLevel int

const (
	LevelDebug LogLevel = LogLevel(slog.LevelDebug)
	LevelInfo  LogLevel = LogLevel(slog.LevelInfo)
	LevelWarn  LogLevel = LogLevel(slog.LevelWarn)
	LevelError LogLevel = LogLevel(slog.LevelError)
)

// logMessageCap bounds formatted message size (spec.md §4.H: "a 1 KiB
// buffer"). Logging is never in the correctness path, so truncation here
// is best-effort and silent.
const logMessageCap = 1024

// LogFunc is the pluggable sink spec.md §4.H describes: a callback of
// (module, level, context, format, args). context is a short free-form
// string the caller can use to correlate log lines (e.g. a span ID from
// [NewSpanID]).
type LogFunc func(module LogModule, level LogLevel, spanContext string, format string, args ...any)

// DefaultLogFunc is the default sink: a no-op, matching the teacher
// package's DefaultSLogger and spec.md §4.H's "the default sink is a
// no-op".
func DefaultLogFunc() LogFunc {
	return func(LogModule, LogLevel, string, string, ...any) {}
}

// NewPrintfLogFunc returns the built-in printf-style sink spec.md §4.H
// promises, writing one line per call through the given [SLogger].
func NewPrintfLogFunc(logger SLogger) LogFunc {
	return func(module LogModule, level LogLevel, spanContext string, format string, args ...any) {
		msg := fmt.Sprintf(format, args...)
		if len(msg) > logMessageCap {
			msg = msg[:logMessageCap]
		}
		attrs := []any{slog.String("module", module.String()), slog.String("span", spanContext)}
		if level >= LevelError {
			logger.Info("mongoconn error: "+msg, attrs...)
			return
		}
		if level <= LevelDebug {
			logger.Debug(msg, attrs...)
			return
		}
		logger.Info(msg, attrs...)
	}
}

// SLogger abstracts [*slog.Logger]'s behavior, exactly as the teacher
// package's SLogger does, so callers can inject a capturing test double
// (e.g. via github.com/bassosimone/slogstub) instead of a real logger.
type SLogger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
}

// DefaultSLogger returns a no-op [SLogger].
func DefaultSLogger() SLogger {
	return discardSLogger{}
}

type discardSLogger struct{}

var _ SLogger = discardSLogger{}

func (discardSLogger) Debug(msg string, args ...any) {}
func (discardSLogger) Info(msg string, args ...any)  {}
