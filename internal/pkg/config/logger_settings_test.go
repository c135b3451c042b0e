//go:build unit
// +build unit

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validFileLog() FileLogSettings {
	return FileLogSettings{Path: "rsa-toolkit.log", MaxSizeMB: 10, MaxBackups: 3, MaxAgeDays: 28}
}

func TestLoggerSettings_Validate(t *testing.T) {
	tests := []struct {
		name     string
		settings LoggerSettings
		errField string
	}{
		{"console", LoggerSettings{LogLevel: LogLevelInfo, LogType: LogTypeConsole}, ""},
		{"console skips an unusable file block", LoggerSettings{LogLevel: LogLevelDebug, LogType: LogTypeConsole, File: FileLogSettings{MaxSizeMB: -1}}, ""},
		{"file", LoggerSettings{LogLevel: LogLevelWarning, LogType: LogTypeFile, File: validFileLog()}, ""},
		{"missing level", LoggerSettings{LogType: LogTypeConsole}, "LogLevel"},
		{"critical is not a level", LoggerSettings{LogLevel: "critical", LogType: LogTypeConsole}, "LogLevel"},
		{"unknown sink", LoggerSettings{LogLevel: LogLevelInfo, LogType: "syslog"}, "LogType"},
		{"file without path", LoggerSettings{LogLevel: LogLevelInfo, LogType: LogTypeFile, File: FileLogSettings{MaxSizeMB: 10, MaxBackups: 3, MaxAgeDays: 28}}, "Path"},
		{"file without rotation", LoggerSettings{LogLevel: LogLevelInfo, LogType: LogTypeFile, File: FileLogSettings{Path: "x.log"}}, "MaxSizeMB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.settings.Validate()
			if tt.errField == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, "Field: "+tt.errField)
		})
	}
}

func TestFileLogSettings_RotationBounds(t *testing.T) {
	mutate := []struct {
		name  string
		apply func(*FileLogSettings)
	}{
		{"size too large", func(f *FileLogSettings) { f.MaxSizeMB = 101 }},
		{"too many backups", func(f *FileLogSettings) { f.MaxBackups = 11 }},
		{"kept too long", func(f *FileLogSettings) { f.MaxAgeDays = 366 }},
	}

	for _, m := range mutate {
		t.Run(m.name, func(t *testing.T) {
			file := validFileLog()
			m.apply(&file)
			settings := LoggerSettings{LogLevel: LogLevelInfo, LogType: LogTypeFile, File: file}
			assert.ErrorContains(t, settings.Validate(), "LoggerSettings.File")
		})
	}
}
