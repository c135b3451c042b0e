package commands

import (
	"github.com/spf13/cobra"
)

// NewRootCommand builds the root command with every sub-command registered
func NewRootCommand() *cobra.Command {
	env := &Environment{}

	rootCmd := &cobra.Command{
		Use:   "rsa-toolkit-cli",
		Short: "Textbook RSA toolkit",
		Long: `rsa-toolkit-cli generates unpadded RSA keys over arbitrary prime ranges, encrypts and decrypts
integers with and without the Chinese remainder theorem, demonstrates the Hastad broadcast and
Wiener small private exponent attacks, and times the primitives over growing prime sizes.

Textbook RSA is deterministic and malleable. Never use these keys to protect real data.

Configuration is read from --config or the CONFIG_PATH environment variable. Any setting can be
overridden with an RSA_TOOLKIT_ prefixed environment variable, e.g. RSA_TOOLKIT_LOGGER_LOG_LEVEL=debug.`,
		PersistentPreRunE: env.Load,
		SilenceUsage:      true,
	}
	rootCmd.PersistentFlags().StringP("config", "", "", "Path to a YAML config file")

	InitRSACommands(rootCmd, env)
	InitAttackCommands(rootCmd, env)
	InitBenchmarkCommands(rootCmd, env)

	return rootCmd
}
