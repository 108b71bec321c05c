package asynclog

import (
	"errors"
	"sync/atomic"
)

// ErrAlreadyInstalled reports that a process-wide logger has already been
// installed.
var ErrAlreadyInstalled = errors.New("asynclog: a logger is already installed")

var installed atomic.Pointer[Logger]

// Install wires sink up as the process-wide logger: it builds the dispatch
// facade, claims the set-once slot, applies max as the initial severity
// filter, and starts the drain consumer. The slot is claimed atomically, so
// racing installs yield exactly one success. On ErrAlreadyInstalled nothing
// happens: no consumer is started and the existing filter is untouched.
//
// Install is meant to run once, early, before logging traffic begins.
func Install(sink Sink, max LevelFilter) error {
	return installInto(&installed, sink, max)
}

// installInto claims slot with a freshly built logger. The CompareAndSwap is
// the arbiter: the consumer only starts for the winning logger, so a losing
// call leaves no goroutine behind.
func installInto(slot *atomic.Pointer[Logger], sink Sink, max LevelFilter) error {
	l := newLogger(sink, Options{MaxLevel: max})
	// Install's filter argument is authoritative, FilterOff included.
	l.filter.Store(int32(max))
	if !slot.CompareAndSwap(nil, l) {
		return ErrAlreadyInstalled
	}
	l.start()
	return nil
}

// MustInstall is Install for program entry points: any error is fatal.
func MustInstall(sink Sink, max LevelFilter) {
	if err := Install(sink, max); err != nil {
		panic(err)
	}
}

// Default returns the installed Logger, or a discard-everything Logger when
// nothing is installed yet.
func Default() *Logger {
	if l := installed.Load(); l != nil {
		return l
	}
	return nopShared
}

var nopShared = NewNop()

// Enabled reports whether the installed logger would dispatch level for
// target. Before installation it reports false.
func Enabled(level Level, target string) bool {
	return installed.Load().Enabled(level, target)
}

// Log dispatches e through the installed logger. Before installation it is a
// no-op.
func Log(e Event) {
	installed.Load().Log(e)
}

// Flush drains records enqueued so far and flushes the installed sink.
func Flush() {
	installed.Load().Flush()
}

// SetMaxLevel replaces the installed logger's severity filter.
func SetMaxLevel(filter LevelFilter) {
	installed.Load().SetMaxLevel(filter)
}

// MaxLevel returns the installed logger's severity filter, FilterOff when
// nothing is installed.
func MaxLevel() LevelFilter {
	return installed.Load().MaxLevel()
}

// Trace logs msg at TraceLevel for target through the installed logger.
func Trace(target, msg string, args ...any) {
	installed.Load().emit(TraceLevel, target, msg, args)
}

// Debug logs msg at DebugLevel for target through the installed logger.
func Debug(target, msg string, args ...any) {
	installed.Load().emit(DebugLevel, target, msg, args)
}

// Info logs msg at InfoLevel for target through the installed logger.
func Info(target, msg string, args ...any) {
	installed.Load().emit(InfoLevel, target, msg, args)
}

// Warn logs msg at WarnLevel for target through the installed logger.
func Warn(target, msg string, args ...any) {
	installed.Load().emit(WarnLevel, target, msg, args)
}

// Error logs msg at ErrorLevel for target through the installed logger.
func Error(target, msg string, args ...any) {
	installed.Load().emit(ErrorLevel, target, msg, args)
}
