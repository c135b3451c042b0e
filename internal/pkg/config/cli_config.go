package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. RSA_TOOLKIT_LOGGER_LOG_LEVEL
const EnvPrefix = "RSA_TOOLKIT"

// CLIConfig aggregates the settings of the rsa-toolkit CLI
type CLIConfig struct {
	Logger      LoggerSettings      `mapstructure:"logger"`
	Database    DatabaseSettings    `mapstructure:"database"`
	PrimeSource PrimeSourceSettings `mapstructure:"prime_source"`
	Cipher      CipherSettings      `mapstructure:"cipher"`
	Attack      AttackSettings      `mapstructure:"attack"`
	Benchmark   BenchmarkSettings   `mapstructure:"benchmark"`
}

// Validate checks every settings section
func (c *CLIConfig) Validate() error {
	return errors.Join(
		c.Logger.Validate(),
		c.Database.Validate(),
		c.PrimeSource.Validate(),
		c.Attack.Validate(),
		c.Benchmark.Validate(),
	)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logger.log_level", LogLevelInfo)
	v.SetDefault("logger.log_type", LogTypeConsole)
	v.SetDefault("logger.file.path", "rsa-toolkit.log")
	v.SetDefault("logger.file.max_size_mb", 10)
	v.SetDefault("logger.file.max_backups", 3)
	v.SetDefault("logger.file.max_age_days", 28)
	v.SetDefault("logger.file.compress", true)

	v.SetDefault("database.type", SqliteDbType)
	v.SetDefault("database.dsn", "rsa-toolkit.db")
	v.SetDefault("database.name", "")

	v.SetDefault("prime_source.strategy", PrimeSourceAuto)
	v.SetDefault("prime_source.sieve_max_width", 1<<20)
	v.SetDefault("prime_source.max_sample_attempts", 10000)

	v.SetDefault("cipher.lenient", false)

	v.SetDefault("attack.max_exponent_attempts", 1000)
	v.SetDefault("attack.hastad_max_key_attempts", 100)
	v.SetDefault("attack.wiener_max_key_attempts", 100)
	v.SetDefault("attack.wiener_max_d_attempts", 10000)
	v.SetDefault("attack.wiener_max_attacks", 50)

	v.SetDefault("benchmark.min_bits", 8)
	v.SetDefault("benchmark.max_bits", 32)
	v.SetDefault("benchmark.step", 4)
	v.SetDefault("benchmark.repetitions", 5)
	v.SetDefault("benchmark.csv_path", "")
}

// InitializeCLIConfig loads the CLI configuration from a YAML file. An empty path yields the
// built-in defaults. Environment variables prefixed with RSA_TOOLKIT_ take precedence over both.
func InitializeCLIConfig(path string) (*CLIConfig, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var cfg CLIConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}
