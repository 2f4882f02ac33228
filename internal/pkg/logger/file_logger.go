package logger

import (
	"github.com/natefinch/lumberjack"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// FileLogger is an implementation of Logger that writes JSON lines to a rotated file.
type FileLogger struct {
	logger *zap.Logger
	writer *lumberjack.Logger
}

// NewFileLogger creates a new file logger with rotation settings.
func NewFileLogger(level string, filePath string, maxSize int, maxBackups int, maxAge int) Logger {
	writer := &lumberjack.Logger{
		Filename:   filePath,
		MaxSize:    maxSize,
		MaxBackups: maxBackups,
		MaxAge:     maxAge,
		Compress:   true,
	}

	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig()), zapcore.AddSync(writer), parseLevel(level))
	return &FileLogger{
		logger: zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1)),
		writer: writer,
	}
}

// Info logs an informational message.
func (l *FileLogger) Info(args ...interface{}) {
	l.logger.Info(formatArgs(args...))
}

// Warn logs a warning message.
func (l *FileLogger) Warn(args ...interface{}) {
	l.logger.Warn(formatArgs(args...))
}

// Error logs an error message.
func (l *FileLogger) Error(args ...interface{}) {
	l.logger.Error(formatArgs(args...))
}

// Fatal logs a fatal message and exits.
func (l *FileLogger) Fatal(args ...interface{}) {
	l.logger.Fatal(formatArgs(args...))
}

// Panic logs a panic message and panics.
func (l *FileLogger) Panic(args ...interface{}) {
	l.logger.Panic(formatArgs(args...))
}

// Close flushes buffered entries and closes the underlying file.
func (l *FileLogger) Close() error {
	_ = l.logger.Sync()
	return l.writer.Close()
}

func (l *FileLogger) zapLogger() *zap.Logger {
	return l.logger.WithOptions(zap.AddCallerSkip(-1))
}
