package asynclog

import (
	"os"
	"strings"
)

// Level grades the severity of a single log event. More severe levels sort
// first: ErrorLevel is the smallest value and TraceLevel the largest.
type Level int8

const (
	// ErrorLevel designates serious failures.
	ErrorLevel Level = iota + 1
	// WarnLevel designates hazardous but recoverable situations.
	WarnLevel
	// InfoLevel designates useful steady-state information.
	InfoLevel
	// DebugLevel designates lower-priority diagnostics.
	DebugLevel
	// TraceLevel designates very fine-grained diagnostics.
	TraceLevel
)

// LevelFilter bounds which levels a logger lets through. FilterOff admits
// nothing; FilterTrace admits everything.
type LevelFilter int8

const (
	// FilterOff rejects every level.
	FilterOff LevelFilter = iota
	// FilterError admits ErrorLevel only.
	FilterError
	// FilterWarn admits WarnLevel and above.
	FilterWarn
	// FilterInfo admits InfoLevel and above.
	FilterInfo
	// FilterDebug admits DebugLevel and above.
	FilterDebug
	// FilterTrace admits every level.
	FilterTrace
)

// Admits reports whether level passes the filter. Levels outside the defined
// range, the zero Level included, are never admitted.
func (f LevelFilter) Admits(level Level) bool {
	if level < ErrorLevel || level > TraceLevel {
		return false
	}
	return LevelFilter(level) <= f
}

// ParseLevel converts a textual level into a Level value. It accepts "error",
// "warn", "warning", "info", "debug", and "trace" (case insensitive).
func ParseLevel(value string) (Level, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "error":
		return ErrorLevel, true
	case "warn", "warning":
		return WarnLevel, true
	case "info":
		return InfoLevel, true
	case "debug":
		return DebugLevel, true
	case "trace":
		return TraceLevel, true
	default:
		return InfoLevel, false
	}
}

// LevelString returns the canonical string representation of a Level.
func LevelString(level Level) string {
	switch level {
	case ErrorLevel:
		return "error"
	case WarnLevel:
		return "warn"
	case InfoLevel:
		return "info"
	case DebugLevel:
		return "debug"
	case TraceLevel:
		return "trace"
	default:
		return "info"
	}
}

// ParseFilter converts a textual filter into a LevelFilter value. It accepts
// the same names as ParseLevel plus "off", "disabled", and "none" (case
// insensitive).
func ParseFilter(value string) (LevelFilter, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "off", "disabled", "disable", "none":
		return FilterOff, true
	case "error":
		return FilterError, true
	case "warn", "warning":
		return FilterWarn, true
	case "info":
		return FilterInfo, true
	case "debug":
		return FilterDebug, true
	case "trace":
		return FilterTrace, true
	default:
		return FilterInfo, false
	}
}

// FilterString returns the canonical string representation of a LevelFilter.
func FilterString(filter LevelFilter) string {
	switch filter {
	case FilterOff:
		return "off"
	case FilterError:
		return "error"
	case FilterWarn:
		return "warn"
	case FilterInfo:
		return "info"
	case FilterDebug:
		return "debug"
	case FilterTrace:
		return "trace"
	default:
		return "info"
	}
}

// FilterFromEnv looks up key in the environment and parses it into a
// LevelFilter. Missing or unparsable values return (FilterInfo, false).
func FilterFromEnv(key string) (LevelFilter, bool) {
	if key == "" {
		return FilterInfo, false
	}
	value, ok := os.LookupEnv(key)
	if !ok {
		return FilterInfo, false
	}
	return ParseFilter(value)
}
