//go:build unit
// +build unit

package logger

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/MGTheTrain/rsa-toolkit/internal/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type redactedValue struct{}

func (redactedValue) String() string { return "REDACTED" }

func TestWriterLogger_LogsToOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriterLogger(&buf, config.LogLevelInfo)

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message")
	logger.Error("error message")

	output := buf.String()
	assert.NotContains(t, output, "debug message")
	assert.Contains(t, output, "info message")
	assert.Contains(t, output, "warn message")
	assert.Contains(t, output, "error message")
}

func TestWriterLogger_UsesStringer(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriterLogger(&buf, config.LogLevelDebug)

	logger.Debug("key ", redactedValue{})
	assert.Contains(t, buf.String(), "key REDACTED")
}

type sessionKey struct{ secret string }

func (sessionKey) LogValue() slog.Value {
	return slog.GroupValue(slog.String("secret", "REDACTED"))
}

func TestWriterLogger_ResolvesLogValuer(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriterLogger(&buf, config.LogLevelDebug)

	logger.Info("loaded ", sessionKey{secret: "hunter2"}, " after ", 3, " tries")
	assert.Contains(t, buf.String(), "secret=REDACTED")
	assert.Contains(t, buf.String(), "after 3 tries")
	assert.NotContains(t, buf.String(), "hunter2")
}

func TestWriterLogger_Panic(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriterLogger(&buf, config.LogLevelInfo)

	assert.PanicsWithValue(t, "boom", func() { logger.Panic("boom") })
	assert.Contains(t, buf.String(), "boom")
}

func TestNewConsoleLogger(t *testing.T) {
	logger := NewConsoleLogger(config.LogLevelInfo)
	require.NotNil(t, logger)

	require.NotPanics(t, func() {
		logger.Info("test")
		logger.Warn("test")
		logger.Error("test")
	})
}

func TestNewFileLogger(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "test.log")

	logger := NewFileLogger(config.LogLevelInfo, config.FileLogSettings{Path: logPath, MaxSizeMB: 10, MaxBackups: 3, MaxAgeDays: 28})
	require.NotNil(t, logger)

	logger.Info("info message")
	logger.Warn("warn message")
	logger.Error("error message")

	content, err := os.ReadFile(logPath)
	require.NoError(t, err)

	logOutput := string(content)
	assert.Contains(t, logOutput, "info message")
	assert.Contains(t, logOutput, "warn message")
	assert.Contains(t, logOutput, "error message")
	assert.Contains(t, logOutput, "INFO")
	assert.Contains(t, logOutput, "WARN")
	assert.Contains(t, logOutput, "ERROR")
}
