// Package zapsink adapts a zap logging core into an asynclog Sink, so the
// dispatch pipeline can replay into zap's encoders, write syncers, and
// rotation stacks.
package zapsink

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"pkt.systems/asynclog"
)

// Sink replays records into a zapcore.Core.
type Sink struct {
	core   zapcore.Core
	closer io.Closer
}

// New returns a sink replaying into l's core.
func New(l *zap.Logger) *Sink {
	return &Sink{core: l.Core()}
}

// Wrap returns a sink replaying into core directly.
func Wrap(core zapcore.Core) *Sink {
	return &Sink{core: core}
}

// FileOptions configures NewFile's rotating destination. Rotation itself is
// lumberjack's business; the sink only delegates.
type FileOptions struct {
	// MaxSize is the maximum size in megabytes before rotation.
	MaxSize int
	// MaxBackups is the number of rotated files to retain.
	MaxBackups int
	// MaxAge is the maximum age in days of a retained file.
	MaxAge int
	// Compress gzips rotated files.
	Compress bool
	// Level sets the minimum severity the core accepts. The zero value
	// admits everything.
	Level asynclog.LevelFilter
}

// NewFile returns a sink writing JSON lines to a rotating file at path.
func NewFile(path string, opts FileOptions) (*Sink, error) {
	if path == "" {
		return nil, fmt.Errorf("zapsink: empty file path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("zapsink: create log directory: %w", err)
	}
	rotator := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    opts.MaxSize,
		MaxBackups: opts.MaxBackups,
		MaxAge:     opts.MaxAge,
		Compress:   opts.Compress,
	}
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoder := zapcore.NewJSONEncoder(encoderConfig)
	core := zapcore.NewCore(encoder, zapcore.AddSync(rotator), minZapLevel(opts.Level))
	return &Sink{core: core, closer: rotator}, nil
}

// Enabled reports whether the core accepts records at level.
func (s *Sink) Enabled(level asynclog.Level, _ string) bool {
	return s.core.Enabled(zapLevel(level))
}

// Log replays rec into the core. Target becomes the zap logger name and the
// snapshot's source location, when present, becomes the entry caller.
func (s *Sink) Log(rec *asynclog.Record) {
	ent := zapcore.Entry{
		Level:      zapLevel(rec.Level),
		Time:       time.Now(),
		LoggerName: rec.Target,
		Message:    rec.Message,
	}
	if rec.File != "" {
		ent.Caller = zapcore.NewEntryCaller(0, rec.File, rec.Line, true)
	}
	ce := s.core.Check(ent, nil)
	if ce == nil {
		return
	}
	var fields []zapcore.Field
	if rec.ModulePath != "" {
		fields = append(fields, zap.String("module", rec.ModulePath))
	}
	ce.Write(fields...)
}

// Flush syncs the core.
func (s *Sink) Flush() {
	_ = s.core.Sync()
}

// Close syncs the core and closes a file destination created by NewFile.
func (s *Sink) Close() error {
	_ = s.core.Sync()
	if s.closer != nil {
		return s.closer.Close()
	}
	return nil
}

func zapLevel(level asynclog.Level) zapcore.Level {
	switch level {
	case asynclog.ErrorLevel:
		return zapcore.ErrorLevel
	case asynclog.WarnLevel:
		return zapcore.WarnLevel
	case asynclog.InfoLevel:
		return zapcore.InfoLevel
	default:
		// zap has no trace level; trace maps to debug.
		return zapcore.DebugLevel
	}
}

func minZapLevel(filter asynclog.LevelFilter) zapcore.Level {
	switch filter {
	case asynclog.FilterError:
		return zapcore.ErrorLevel
	case asynclog.FilterWarn:
		return zapcore.WarnLevel
	case asynclog.FilterInfo:
		return zapcore.InfoLevel
	default:
		return zapcore.DebugLevel
	}
}
