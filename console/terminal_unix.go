//go:build linux || darwin || freebsd || netbsd || openbsd

package console

import "golang.org/x/term"

func fdIsTerminal(fd uintptr) bool {
	return term.IsTerminal(int(fd))
}
