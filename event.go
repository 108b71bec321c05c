package asynclog

import "fmt"

// Event is the borrowed view of one log call. Its fields, Args in particular,
// may alias caller-local data that is only valid for the duration of the Log
// call; nothing in an Event may be retained past that call.
type Event struct {
	// Level grades the event's severity.
	Level Level
	// Target names the subsystem or component the event belongs to.
	Target string
	// Message is the log text. When Args is non-empty it is treated as a
	// fmt template and rendered eagerly during snapshotting.
	Message string
	// Args are optional template arguments for Message.
	Args []any
	// ModulePath optionally names the package the event originated in.
	ModulePath string
	// File optionally names the source file the event originated in.
	File string
	// Line is the source line matching File, when known.
	Line int
}

// Record is the owned snapshot of an Event. It is self-contained: the message
// is fully rendered and no field aliases caller memory, so a Record may cross
// goroutine boundaries and outlive the originating call. Records are built
// once, consumed once, and never mutated.
type Record struct {
	Level      Level
	Target     string
	Message    string
	ModulePath string
	File       string
	Line       int
}

// snapshot materializes e into an owned Record. Template arguments are
// rendered here, on the caller's goroutine, because they may reference stack
// data that will not survive past the Log call.
func snapshot(e Event) Record {
	msg := e.Message
	if len(e.Args) > 0 {
		msg = fmt.Sprintf(e.Message, e.Args...)
	}
	return Record{
		Level:      e.Level,
		Target:     e.Target,
		Message:    msg,
		ModulePath: e.ModulePath,
		File:       e.File,
		Line:       e.Line,
	}
}
