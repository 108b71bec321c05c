// Package console provides the default asynclog sink: one plain text line
// per record, with optional ANSI colour for the level tag when the
// destination is a terminal.
package console

import (
	"io"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"pkt.systems/asynclog"
)

// DTGTimeFormat is the default Date Time Group timestamp layout (DDHHMM).
var DTGTimeFormat = "021504"

const (
	ansiReset        = "\x1b[0m"
	ansiBlue         = "\x1b[34m"
	ansiGreen        = "\x1b[32m"
	ansiBrightGreen  = "\x1b[92m"
	ansiBrightYellow = "\x1b[93m"
	ansiBrightRed    = "\x1b[91m"
)

// Options controls how the console sink renders records.
type Options struct {
	// TimeFormat overrides the timestamp layout. Defaults to DTGTimeFormat.
	TimeFormat string

	// DisableTimestamp drops the timestamp entirely.
	DisableTimestamp bool

	// UTC forces timestamps to be rendered in UTC.
	UTC bool

	// NoColor forces colour escape codes off regardless of terminal
	// detection. A non-empty NO_COLOR environment variable does the same.
	NoColor bool

	// ForceColor bypasses terminal detection and emits colour even when the
	// destination is not a TTY.
	ForceColor bool

	// MinLevel sets the sink-side severity filter. The zero value admits
	// everything.
	MinLevel asynclog.LevelFilter

	// OnWriteError observes failed writes so log loss is not invisible. It
	// runs on the drain goroutine; keep it cheap and never log through the
	// same pipeline from inside it.
	OnWriteError func(error)
}

// Sink renders records as single text lines on an io.Writer.
type Sink struct {
	mu           sync.Mutex
	w            io.Writer
	minLevel     asynclog.LevelFilter
	color        bool
	timestamps   bool
	cache        *timeCache
	onWriteError func(error)
}

// New returns a console sink writing to w. A nil writer discards output.
func New(w io.Writer, opts Options) *Sink {
	if w == nil {
		w = io.Discard
	}
	layout := opts.TimeFormat
	if layout == "" {
		layout = DTGTimeFormat
	}
	min := opts.MinLevel
	if min == 0 {
		min = asynclog.FilterTrace
	}
	s := &Sink{
		w:            w,
		minLevel:     min,
		timestamps:   !opts.DisableTimestamp,
		onWriteError: opts.OnWriteError,
	}
	if s.timestamps {
		s.cache = newTimeCache(layout, opts.UTC)
	}
	disabled := opts.NoColor || os.Getenv("NO_COLOR") != ""
	s.color = !disabled && (opts.ForceColor || isTerminal(w))
	return s
}

// Enabled reports whether the sink accepts records at level.
func (s *Sink) Enabled(level asynclog.Level, _ string) bool {
	return s.minLevel.Admits(level)
}

// Log renders rec as one line and writes it.
func (s *Sink) Log(rec *asynclog.Record) {
	buf := make([]byte, 0, 128)
	if s.timestamps {
		buf = append(buf, s.cache.current(time.Now())...)
		buf = append(buf, ' ')
	}
	if s.color {
		buf = append(buf, levelColor(rec.Level)...)
		buf = append(buf, levelTag(rec.Level)...)
		buf = append(buf, ansiReset...)
	} else {
		buf = append(buf, levelTag(rec.Level)...)
	}
	if rec.Target != "" {
		buf = append(buf, ' ')
		buf = append(buf, rec.Target...)
	}
	buf = append(buf, ' ')
	buf = append(buf, rec.Message...)
	switch {
	case rec.File != "":
		buf = append(buf, " ("...)
		buf = append(buf, filepath.Base(rec.File)...)
		buf = append(buf, ':')
		buf = strconv.AppendInt(buf, int64(rec.Line), 10)
		buf = append(buf, ')')
	case rec.ModulePath != "":
		buf = append(buf, " ("...)
		buf = append(buf, rec.ModulePath...)
		buf = append(buf, ')')
	}
	buf = append(buf, '\n')

	s.mu.Lock()
	_, err := s.w.Write(buf)
	s.mu.Unlock()
	if err != nil && s.onWriteError != nil {
		s.onWriteError(err)
	}
}

// Flush syncs the destination when it supports it.
func (s *Sink) Flush() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if f, ok := s.w.(interface{ Sync() error }); ok {
		_ = f.Sync()
	}
}

// Output returns the sink's destination writer.
func (s *Sink) Output() io.Writer {
	return s.w
}

// Close closes the destination writer when the sink owns one. The process
// streams are never closed.
func (s *Sink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.w == os.Stdout || s.w == os.Stderr {
		return nil
	}
	if c, ok := s.w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func levelTag(level asynclog.Level) string {
	switch level {
	case asynclog.TraceLevel:
		return "TRC"
	case asynclog.DebugLevel:
		return "DBG"
	case asynclog.InfoLevel:
		return "INF"
	case asynclog.WarnLevel:
		return "WRN"
	case asynclog.ErrorLevel:
		return "ERR"
	default:
		return "INF"
	}
}

func levelColor(level asynclog.Level) string {
	switch level {
	case asynclog.TraceLevel:
		return ansiBlue
	case asynclog.DebugLevel:
		return ansiGreen
	case asynclog.InfoLevel:
		return ansiBrightGreen
	case asynclog.WarnLevel:
		return ansiBrightYellow
	case asynclog.ErrorLevel:
		return ansiBrightRed
	default:
		return ansiBrightGreen
	}
}
