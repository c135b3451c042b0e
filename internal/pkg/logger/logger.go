// Package logger provides the leveled logger shared by the toolkit: a process wide singleton
// backed by log/slog, writing text to the console or rotated JSON files.
package logger

// Logger defines the logging interface
type Logger interface {
	Debug(args ...interface{})
	Info(args ...interface{})
	Warn(args ...interface{})
	Error(args ...interface{})
	Fatal(args ...interface{})
	Panic(args ...interface{})
}
