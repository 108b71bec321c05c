package asynclog

import (
	"io"
	"os"
)

// Sink is the component that actually renders and writes log records. The
// dispatch pipeline only ever sees this three-operation contract; formatting,
// rotation, and transport are entirely the sink's business. A sink that
// fails does so on its own terms: the pipeline does not catch, wrap, or retry
// anything a Sink raises.
//
// Log is always invoked from a single goroutine (the drain consumer), one
// record at a time, so a Sink does not need to be safe for concurrent Log
// calls. Enabled and Flush may be called from arbitrary goroutines.
type Sink interface {
	// Enabled reports whether the sink wants records at level for target.
	Enabled(level Level, target string) bool
	// Log writes one record.
	Log(*Record)
	// Flush forces any buffered output out.
	Flush()
}

// NopSink discards every record.
type NopSink struct{}

// Enabled always reports false.
func (NopSink) Enabled(Level, string) bool { return false }

// Log discards rec.
func (NopSink) Log(*Record) {}

// Flush does nothing.
func (NopSink) Flush() {}

// closeSink releases a sink the logger owns. Sinks that do not implement
// io.Closer, and sinks writing to the process streams, are left alone.
func closeSink(s Sink) error {
	c, ok := s.(io.Closer)
	if !ok {
		return nil
	}
	if f, ok := s.(interface{ Output() io.Writer }); ok {
		if w := f.Output(); w == os.Stdout || w == os.Stderr {
			return nil
		}
	}
	return c.Close()
}
