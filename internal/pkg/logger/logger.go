package logger

import "go.uber.org/zap"

// Logger defines the logging interface
type Logger interface {
	Info(args ...interface{})
	Warn(args ...interface{})
	Error(args ...interface{})
	Fatal(args ...interface{})
	Panic(args ...interface{})
}

type zapBacked interface {
	zapLogger() *zap.Logger
}

// Zap exposes the structured logger behind l for libraries that take a *zap.Logger,
// such as the gin request logging middleware. Loggers not built by this package get a no-op logger.
func Zap(l Logger) *zap.Logger {
	if zb, ok := l.(zapBacked); ok {
		return zb.zapLogger()
	}
	return zap.NewNop()
}
