package logger

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/MGTheTrain/rsa-toolkit/internal/pkg/config"
)

// ErrNotInitialized is returned by GetLogger before InitLogger has succeeded.
var ErrNotInitialized = errors.New("logger not initialized")

// shared is the process logger handed to commands and services.
var shared struct {
	once   sync.Once
	logger Logger
	err    error
}

// InitLogger builds the process logger from settings. Only the first call builds anything;
// later calls report the outcome of the first.
func InitLogger(settings *config.LoggerSettings) error {
	shared.once.Do(func() {
		shared.logger, shared.err = New(settings)
	})
	return shared.err
}

// GetLogger returns the process logger.
func GetLogger() (Logger, error) {
	if shared.logger == nil {
		return nil, fmt.Errorf("%w: call InitLogger first", ErrNotInitialized)
	}
	return shared.logger, nil
}

// New builds a logger from settings without touching the process logger.
func New(settings *config.LoggerSettings) (Logger, error) {
	if settings == nil {
		return nil, errors.New("logger settings are required")
	}
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid logger settings: %w", err)
	}

	if settings.LogType == config.LogTypeFile {
		return NewFileLogger(settings.LogLevel, settings.File), nil
	}
	return NewConsoleLogger(settings.LogLevel), nil
}

var levels = map[string]slog.Level{
	config.LogLevelDebug:   slog.LevelDebug,
	config.LogLevelInfo:    slog.LevelInfo,
	config.LogLevelWarning: slog.LevelWarn,
	config.LogLevelError:   slog.LevelError,
}

// parseLevel falls back to info for names Validate would reject.
func parseLevel(level string) slog.Level {
	if l, ok := levels[level]; ok {
		return l
	}
	return slog.LevelInfo
}
