//go:build unit
// +build unit

package logger

import (
	"bytes"
	"testing"

	"github.com/campuscred/campuscred/internal/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func newBufferedConsoleLogger(buf *bytes.Buffer, level zapcore.Level) *ConsoleLogger {
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig()), zapcore.AddSync(buf), level)
	return &ConsoleLogger{logger: zap.New(core)}
}

func TestConsoleLogger_LogsToOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := newBufferedConsoleLogger(&buf, zapcore.InfoLevel)

	logger.Info("info message")
	logger.Warn("warn message")
	logger.Error("error message")

	output := buf.String()
	assert.Contains(t, output, "info message")
	assert.Contains(t, output, "warn message")
	assert.Contains(t, output, "error message")
	assert.Contains(t, output, "WARN")
}

func TestConsoleLogger_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := newBufferedConsoleLogger(&buf, zapcore.WarnLevel)

	logger.Info("hidden")
	logger.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestConsoleLogger_Panic(t *testing.T) {
	var buf bytes.Buffer
	logger := newBufferedConsoleLogger(&buf, zapcore.InfoLevel)

	assert.Panics(t, func() { logger.Panic("boom") })
	assert.Contains(t, buf.String(), "boom")
}

func TestNewConsoleLogger(t *testing.T) {
	for _, encoding := range []string{config.LogEncodingConsole, config.LogEncodingJSON} {
		logger := NewConsoleLogger(config.LogLevelInfo, encoding)
		require.NotNil(t, logger)

		require.NotPanics(t, func() {
			logger.Info("test")
			logger.Warn("test")
			logger.Error("test")
		})
	}
}

func TestZap(t *testing.T) {
	logger := NewConsoleLogger(config.LogLevelInfo, config.LogEncodingConsole)
	assert.NotNil(t, Zap(logger))

	var foreign Logger = struct{ Logger }{}
	assert.NotNil(t, Zap(foreign))
}
