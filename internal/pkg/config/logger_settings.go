package config

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Log levels accepted in the logger section, from most to least verbose.
const (
	LogLevelDebug   = "debug"
	LogLevelInfo    = "info"
	LogLevelWarning = "warning"
	LogLevelError   = "error"
)

// Log sinks. Console writes text to stdout, file writes rotated JSON lines.
const (
	LogTypeConsole = "console"
	LogTypeFile    = "file"
)

// LoggerSettings selects the level and sink of the toolkit logger.
// File is only consulted, and only validated, when LogType is file.
type LoggerSettings struct {
	LogLevel string          `mapstructure:"log_level" validate:"required,oneof=debug info warning error"`
	LogType  string          `mapstructure:"log_type" validate:"required,oneof=console file"`
	File     FileLogSettings `mapstructure:"file" validate:"-"`
}

// FileLogSettings configures the rotated log file behind the file sink.
// Benchmark sweeps log one line per timed operation, so rotation is bounded by size and age.
type FileLogSettings struct {
	Path       string `mapstructure:"path" validate:"required"`
	MaxSizeMB  int    `mapstructure:"max_size_mb" validate:"min=1,max=100"`
	MaxBackups int    `mapstructure:"max_backups" validate:"min=1,max=10"`
	MaxAgeDays int    `mapstructure:"max_age_days" validate:"min=1,max=365"`
	Compress   bool   `mapstructure:"compress"`
}

// Validate checks the level and sink, and the file settings when the file sink is selected
func (s *LoggerSettings) Validate() error {
	validate := validator.New()

	if err := describe(validate.Struct(s)); err != nil {
		return fmt.Errorf("validation failed for LoggerSettings: %w", err)
	}
	if s.LogType != LogTypeFile {
		return nil
	}
	if err := describe(validate.Struct(&s.File)); err != nil {
		return fmt.Errorf("validation failed for LoggerSettings.File: %w", err)
	}
	return nil
}

// describe flattens validator errors into one "Field: X, Tag: Y" line per field.
func describe(err error) error {
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}
	var errs []error
	for _, fieldErr := range validationErrors {
		errs = append(errs, fmt.Errorf("Field: %s, Tag: %s", fieldErr.Field(), fieldErr.Tag()))
	}
	return errors.Join(errs...)
}
