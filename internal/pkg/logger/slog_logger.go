package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/MGTheTrain/rsa-toolkit/internal/pkg/config"
	"github.com/natefinch/lumberjack"
)

// slogLogger adapts a *slog.Logger to Logger.
type slogLogger struct {
	logger *slog.Logger
}

// NewConsoleLogger creates a logger writing text lines to stdout.
func NewConsoleLogger(level string) Logger {
	return NewWriterLogger(os.Stdout, level)
}

// NewWriterLogger creates a logger writing text lines to w.
func NewWriterLogger(w io.Writer, level string) Logger {
	opts := &slog.HandlerOptions{
		Level: parseLevel(level),
	}
	return &slogLogger{logger: slog.New(slog.NewTextHandler(w, opts))}
}

// NewFileLogger creates a logger writing JSON lines to a file rotated by size and age.
func NewFileLogger(level string, file config.FileLogSettings) Logger {
	writer := &lumberjack.Logger{
		Filename:   file.Path,
		MaxSize:    file.MaxSizeMB,
		MaxBackups: file.MaxBackups,
		MaxAge:     file.MaxAgeDays,
		Compress:   file.Compress,
	}

	opts := &slog.HandlerOptions{
		Level: parseLevel(level),
	}
	return &slogLogger{logger: slog.New(slog.NewJSONHandler(writer, opts))}
}

// formatArgs joins args like fmt.Sprint. Values implementing slog.LogValuer are resolved
// first, so keys print their redacted form.
func formatArgs(args ...interface{}) string {
	if len(args) == 0 {
		return ""
	}
	resolved := make([]interface{}, len(args))
	for i, a := range args {
		if lv, ok := a.(slog.LogValuer); ok {
			a = slog.AnyValue(lv).Resolve().String()
		}
		resolved[i] = a
	}
	return fmt.Sprint(resolved...)
}

func (l *slogLogger) Debug(args ...interface{}) {
	l.logger.Debug(formatArgs(args...))
}

func (l *slogLogger) Info(args ...interface{}) {
	l.logger.Info(formatArgs(args...))
}

func (l *slogLogger) Warn(args ...interface{}) {
	l.logger.Warn(formatArgs(args...))
}

func (l *slogLogger) Error(args ...interface{}) {
	l.logger.Error(formatArgs(args...))
}

// Fatal logs at error level and exits the process.
func (l *slogLogger) Fatal(args ...interface{}) {
	l.logger.Error(formatArgs(args...))
	os.Exit(1)
}

// Panic logs at error level and panics with the message.
func (l *slogLogger) Panic(args ...interface{}) {
	msg := formatArgs(args...)
	l.logger.Error(msg)
	panic(msg)
}
