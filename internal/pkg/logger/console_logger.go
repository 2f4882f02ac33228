package logger

import (
	"os"

	"github.com/campuscred/campuscred/internal/pkg/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ConsoleLogger is an implementation of Logger that logs to stdout.
type ConsoleLogger struct {
	logger *zap.Logger
}

// NewConsoleLogger creates a console logger with the given level and encoding (console or json).
func NewConsoleLogger(level, encoding string) Logger {
	var encoder zapcore.Encoder
	if encoding == config.LogEncodingJSON {
		encoder = zapcore.NewJSONEncoder(encoderConfig())
	} else {
		encoder = zapcore.NewConsoleEncoder(encoderConfig())
	}

	core := zapcore.NewCore(encoder, zapcore.Lock(os.Stdout), parseLevel(level))
	return &ConsoleLogger{logger: zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))}
}

// Info logs an informational message.
func (l *ConsoleLogger) Info(args ...interface{}) {
	l.logger.Info(formatArgs(args...))
}

// Warn logs a warning message.
func (l *ConsoleLogger) Warn(args ...interface{}) {
	l.logger.Warn(formatArgs(args...))
}

// Error logs an error message.
func (l *ConsoleLogger) Error(args ...interface{}) {
	l.logger.Error(formatArgs(args...))
}

// Fatal logs a fatal message and exits.
func (l *ConsoleLogger) Fatal(args ...interface{}) {
	l.logger.Fatal(formatArgs(args...))
}

// Panic logs a panic message and panics.
func (l *ConsoleLogger) Panic(args ...interface{}) {
	l.logger.Panic(formatArgs(args...))
}

func (l *ConsoleLogger) zapLogger() *zap.Logger {
	return l.logger.WithOptions(zap.AddCallerSkip(-1))
}
