package commands

import (
	"errors"
	"fmt"
	"math/big"
	"os"

	"github.com/MGTheTrain/rsa-toolkit/internal/domain/cryptoalg"
	"github.com/MGTheTrain/rsa-toolkit/internal/infrastructure/cryptography"
	"github.com/MGTheTrain/rsa-toolkit/internal/infrastructure/primes"
	"github.com/MGTheTrain/rsa-toolkit/internal/pkg/config"
	"github.com/MGTheTrain/rsa-toolkit/internal/pkg/logger"
	"github.com/MGTheTrain/rsa-toolkit/internal/pkg/numtheory"

	"github.com/spf13/cobra"
)

// ConfigPathEnv names the environment variable consulted when --config is not given
const ConfigPathEnv = "CONFIG_PATH"

// Environment holds the configuration and shared collaborators of every command.
// It is populated by Load before any command runs.
type Environment struct {
	Config       *config.CLIConfig
	Logger       logger.Logger
	Primes       numtheory.PrimeSource
	RSAProcessor cryptoalg.RSAProcessor
}

// Load reads the configuration and builds the logger, prime source and RSA processor.
// It is meant to be installed as the root command's PersistentPreRunE.
func (env *Environment) Load(cmd *cobra.Command, _ []string) error {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("invalid config flag: %w", err)
	}
	if path == "" {
		path = os.Getenv(ConfigPathEnv)
	}

	cfg, err := config.InitializeCLIConfig(path)
	if err != nil {
		return err
	}

	loggerInstance, err := setupLogger(&cfg.Logger)
	if err != nil {
		return fmt.Errorf("failed to setup logger: %w", err)
	}

	source, err := primes.NewPrimeSource(cfg.PrimeSource)
	if err != nil {
		return fmt.Errorf("failed to create prime source: %w", err)
	}

	rsaProcessor, err := cryptography.NewRSAProcessor(source, cfg.Cipher, loggerInstance)
	if err != nil {
		return fmt.Errorf("failed to create RSA processor: %w", err)
	}

	env.Config = cfg
	env.Logger = loggerInstance
	env.Primes = source
	env.RSAProcessor = rsaProcessor
	return nil
}

func setupLogger(settings *config.LoggerSettings) (logger.Logger, error) {
	if err := logger.InitLogger(settings); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	loggerInstance, err := logger.GetLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to get logger instance: %w", err)
	}

	return loggerInstance, nil
}

// bigIntFlag reads a decimal big integer flag. Empty values return nil.
func bigIntFlag(cmd *cobra.Command, name string) (*big.Int, error) {
	s, err := cmd.Flags().GetString(name)
	if err != nil {
		return nil, fmt.Errorf("invalid %s flag: %w", name, err)
	}
	if s == "" {
		return nil, nil
	}
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("invalid %s flag: %q is not a decimal integer", name, s)
	}
	return v, nil
}

func requiredBigIntFlag(cmd *cobra.Command, name string) (*big.Int, error) {
	v, err := bigIntFlag(cmd, name)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, errors.New("--" + name + " is required")
	}
	return v, nil
}
