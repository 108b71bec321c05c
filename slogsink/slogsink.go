// Package slogsink adapts a log/slog Handler into an asynclog Sink, letting
// the dispatch pipeline replay into any slog-compatible backend.
package slogsink

import (
	"context"
	"log/slog"
	"time"

	"pkt.systems/asynclog"
)

// LevelTrace is the slog level trace records are forwarded at; slog itself
// stops at Debug.
const LevelTrace = slog.LevelDebug - 4

// Sink replays records into a slog.Handler.
type Sink struct {
	handler slog.Handler
}

// New returns a sink forwarding into handler. A nil handler forwards into
// slog's default handler.
func New(handler slog.Handler) *Sink {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	return &Sink{handler: handler}
}

// Enabled delegates to the handler's own enablement check.
func (s *Sink) Enabled(level asynclog.Level, _ string) bool {
	return s.handler.Enabled(context.Background(), slogLevel(level))
}

// Log forwards rec as an slog record. Target, module path, and source
// location travel as attributes.
func (s *Sink) Log(rec *asynclog.Record) {
	r := slog.NewRecord(time.Now(), slogLevel(rec.Level), rec.Message, 0)
	if rec.Target != "" {
		r.AddAttrs(slog.String("target", rec.Target))
	}
	if rec.ModulePath != "" {
		r.AddAttrs(slog.String("module", rec.ModulePath))
	}
	if rec.File != "" {
		r.AddAttrs(slog.String("file", rec.File), slog.Int("line", rec.Line))
	}
	_ = s.handler.Handle(context.Background(), r)
}

// Flush does nothing; slog handlers have no flush operation.
func (s *Sink) Flush() {}

func slogLevel(level asynclog.Level) slog.Level {
	switch level {
	case asynclog.ErrorLevel:
		return slog.LevelError
	case asynclog.WarnLevel:
		return slog.LevelWarn
	case asynclog.InfoLevel:
		return slog.LevelInfo
	case asynclog.DebugLevel:
		return slog.LevelDebug
	default:
		return LevelTrace
	}
}
