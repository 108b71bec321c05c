package asynclog

import (
	"bytes"
	"log"
	"strings"
)

// LogLogger wraps logger into a stdlib *log.Logger whose output is
// dispatched under target. Each written line is classified: a leading
// "[LEVEL]" tag or level-word prefix selects the severity, anything else is
// logged at InfoLevel.
func LogLogger(logger *Logger, target string) *log.Logger {
	if logger == nil {
		logger = nopShared
	}
	return log.New(loggerWriter{logger: logger, target: target}, "", 0)
}

// LogLoggerWithLevel wraps logger into a stdlib *log.Logger that pins every
// emitted line to level under target.
func LogLoggerWithLevel(logger *Logger, target string, level Level) *log.Logger {
	if logger == nil {
		logger = nopShared
	}
	return log.New(levelPinnedWriter{logger: logger, target: target, level: level}, "", 0)
}

func classifyLineLevel(line string) (Level, string) {
	trimmed := strings.TrimSpace(line)
	if strings.HasPrefix(trimmed, "[") {
		if end := strings.IndexRune(trimmed, ']'); end > 1 {
			if lvl, ok := ParseLevel(trimmed[1:end]); ok {
				return lvl, strings.TrimSpace(trimmed[end+1:])
			}
		}
	}
	lowered := strings.ToLower(trimmed)
	trimTail := func(prefixLen int) string {
		tail := strings.TrimSpace(trimmed[prefixLen:])
		tail = strings.TrimLeft(tail, ":- ")
		return strings.TrimSpace(tail)
	}
	switch {
	case strings.HasPrefix(lowered, "trace"):
		return TraceLevel, trimTail(len("trace"))
	case strings.HasPrefix(lowered, "debug"):
		return DebugLevel, trimTail(len("debug"))
	case strings.HasPrefix(lowered, "info"):
		return InfoLevel, trimTail(len("info"))
	case strings.HasPrefix(lowered, "warn"):
		return WarnLevel, trimTail(len("warn"))
	case strings.HasPrefix(lowered, "error"):
		return ErrorLevel, trimTail(len("error"))
	default:
		return InfoLevel, trimmed
	}
}

type loggerWriter struct {
	logger *Logger
	target string
}

func (w loggerWriter) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	for line := range bytes.SplitSeq(p, []byte{'\n'}) {
		line = bytes.TrimRight(line, "\r")
		trimmed := strings.TrimSpace(string(line))
		if trimmed == "" {
			continue
		}
		level, msg := classifyLineLevel(trimmed)
		w.logger.Log(Event{Level: level, Target: w.target, Message: msg})
	}
	return len(p), nil
}

type levelPinnedWriter struct {
	logger *Logger
	target string
	level  Level
}

func (w levelPinnedWriter) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	for line := range bytes.SplitSeq(p, []byte{'\n'}) {
		line = bytes.TrimSpace(bytes.TrimSuffix(line, []byte{'\r'}))
		if len(line) == 0 {
			continue
		}
		w.logger.Log(Event{Level: w.level, Target: w.target, Message: string(line)})
	}
	return len(p), nil
}
