//go:build !linux && !darwin && !freebsd && !netbsd && !openbsd && !windows

package console

func fdIsTerminal(uintptr) bool {
	return false
}
