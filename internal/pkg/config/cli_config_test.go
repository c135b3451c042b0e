//go:build unit
// +build unit

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cli.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestInitializeCLIConfig_Defaults(t *testing.T) {
	cfg, err := InitializeCLIConfig("")
	require.NoError(t, err)

	assert.Equal(t, LogLevelInfo, cfg.Logger.LogLevel)
	assert.Equal(t, LogTypeConsole, cfg.Logger.LogType)
	assert.Equal(t, SqliteDbType, cfg.Database.Type)
	assert.Equal(t, PrimeSourceAuto, cfg.PrimeSource.Strategy)
	assert.Equal(t, int64(1<<20), cfg.PrimeSource.SieveMaxWidth)
	assert.False(t, cfg.Cipher.Lenient)
	assert.Equal(t, 1000, cfg.Attack.MaxExponentAttempts)
	assert.Equal(t, 8, cfg.Benchmark.MinBits)
}

func TestInitializeCLIConfig_File(t *testing.T) {
	path := writeConfig(t, `
logger:
  log_level: debug
  log_type: console
database:
  type: sqlite
  dsn: ":memory:"
prime_source:
  strategy: sieve
  sieve_max_width: 4096
cipher:
  lenient: true
attack:
  wiener_max_attacks: 7
benchmark:
  min_bits: 12
  max_bits: 20
  step: 2
  repetitions: 3
`)

	cfg, err := InitializeCLIConfig(path)
	require.NoError(t, err)

	assert.Equal(t, LogLevelDebug, cfg.Logger.LogLevel)
	assert.Equal(t, ":memory:", cfg.Database.DSN)
	assert.Equal(t, PrimeSourceSieve, cfg.PrimeSource.Strategy)
	assert.Equal(t, int64(4096), cfg.PrimeSource.SieveMaxWidth)
	assert.True(t, cfg.Cipher.Lenient)
	assert.Equal(t, 7, cfg.Attack.WienerMaxAttacks)
	assert.Equal(t, 100, cfg.Attack.HastadMaxKeyAttempts, "unset keys keep their default")
	assert.Equal(t, 12, cfg.Benchmark.MinBits)
	assert.Equal(t, 3, cfg.Benchmark.Repetitions)
}

func TestInitializeCLIConfig_FileLogger(t *testing.T) {
	path := writeConfig(t, `
logger:
  log_level: warning
  log_type: file
  file:
    path: /var/log/rsa-toolkit/bench.log
    max_size_mb: 5
    compress: false
`)

	cfg, err := InitializeCLIConfig(path)
	require.NoError(t, err)

	assert.Equal(t, LogTypeFile, cfg.Logger.LogType)
	assert.Equal(t, "/var/log/rsa-toolkit/bench.log", cfg.Logger.File.Path)
	assert.Equal(t, 5, cfg.Logger.File.MaxSizeMB)
	assert.Equal(t, 3, cfg.Logger.File.MaxBackups, "unset rotation keys keep their default")
	assert.False(t, cfg.Logger.File.Compress)
}

func TestInitializeCLIConfig_EnvOverride(t *testing.T) {
	t.Setenv("RSA_TOOLKIT_LOGGER_LOG_LEVEL", "error")
	t.Setenv("RSA_TOOLKIT_ATTACK_WIENER_MAX_ATTACKS", "3")

	cfg, err := InitializeCLIConfig("")
	require.NoError(t, err)
	assert.Equal(t, LogLevelError, cfg.Logger.LogLevel)
	assert.Equal(t, 3, cfg.Attack.WienerMaxAttacks)
}

func TestInitializeCLIConfig_Invalid(t *testing.T) {
	_, err := InitializeCLIConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := writeConfig(t, `
prime_source:
  strategy: fermat
`)
	_, err = InitializeCLIConfig(path)
	assert.Error(t, err)

	path = writeConfig(t, `
benchmark:
  min_bits: 32
  max_bits: 16
`)
	_, err = InitializeCLIConfig(path)
	assert.Error(t, err)
}

func TestAttackSettingsValidation(t *testing.T) {
	valid := AttackSettings{
		MaxExponentAttempts:  1,
		HastadMaxKeyAttempts: 1,
		WienerMaxKeyAttempts: 1,
		WienerMaxDAttempts:   1,
		WienerMaxAttacks:     1,
	}
	assert.NoError(t, valid.Validate())

	invalid := valid
	invalid.WienerMaxAttacks = 0
	assert.Error(t, invalid.Validate())
}
