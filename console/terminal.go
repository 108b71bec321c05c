package console

import "io"

// fdWriter is satisfied by *os.File and PTY slaves. A destination without a
// file descriptor is never a terminal.
type fdWriter interface {
	Fd() uintptr
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(fdWriter)
	if !ok {
		return false
	}
	return fdIsTerminal(f.Fd())
}
