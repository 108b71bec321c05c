package asynclog

import "context"

type loggerContextKey struct{}

// ContextWithLogger returns a child context carrying logger.
func ContextWithLogger(ctx context.Context, logger *Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	if logger == nil {
		return ctx
	}
	return context.WithValue(ctx, loggerContextKey{}, logger)
}

// LoggerFromContext extracts a Logger from ctx if present, or returns a
// discard-everything Logger.
func LoggerFromContext(ctx context.Context) *Logger {
	if ctx == nil {
		return nopShared
	}
	if logger, ok := ctx.Value(loggerContextKey{}).(*Logger); ok && logger != nil {
		return logger
	}
	return nopShared
}

// Ctx extracts a Logger from ctx if present, or returns a
// discard-everything Logger.
func Ctx(ctx context.Context) *Logger {
	return LoggerFromContext(ctx)
}
