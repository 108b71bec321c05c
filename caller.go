package asynclog

import (
	"runtime"
	"strings"
)

// callerOrigin resolves the package path, file, and line of the frame skip
// levels above the caller. It returns zero values when the stack cannot be
// resolved.
func callerOrigin(skip int) (modulePath, file string, line int) {
	pc, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return "", "", 0
	}
	return packagePathForPC(pc), file, line
}

func packagePathForPC(pc uintptr) string {
	if pc == 0 {
		return ""
	}
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return ""
	}
	return packagePathFromFunction(fn.Name())
}

// packagePathFromFunction strips the function and receiver from a fully
// qualified runtime function name, leaving the import path.
func packagePathFromFunction(name string) string {
	if name == "" {
		return ""
	}
	slash := strings.LastIndex(name, "/")
	dot := strings.Index(name[slash+1:], ".")
	if dot < 0 {
		return name
	}
	return name[:slash+1+dot]
}
