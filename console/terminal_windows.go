//go:build windows

package console

import "syscall"

func fdIsTerminal(fd uintptr) bool {
	var st uint32
	return syscall.GetConsoleMode(syscall.Handle(fd), &st) == nil
}
