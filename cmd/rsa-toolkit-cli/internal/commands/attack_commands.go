package commands

import (
	"errors"
	"fmt"

	"github.com/MGTheTrain/rsa-toolkit/internal/domain/crypto"
	"github.com/MGTheTrain/rsa-toolkit/internal/domain/cryptoalg"
	"github.com/MGTheTrain/rsa-toolkit/internal/infrastructure/cryptanalysis"

	"github.com/spf13/cobra"
)

// AttackCommandHandler encapsulates logic for running the Hastad and Wiener attacks via CLI.
type AttackCommandHandler struct {
	env *Environment
}

// NewAttackCommandHandler creates a handler over the shared command environment
func NewAttackCommandHandler(env *Environment) *AttackCommandHandler {
	return &AttackCommandHandler{env: env}
}

func (commandHandler *AttackCommandHandler) hastad() (cryptoalg.BroadcastAttacker, error) {
	return cryptanalysis.NewHastadAttacker(commandHandler.env.RSAProcessor, commandHandler.env.Config.Attack, commandHandler.env.Logger)
}

func (commandHandler *AttackCommandHandler) wiener() (cryptoalg.WienerAttacker, error) {
	return cryptanalysis.NewWienerAttacker(
		commandHandler.env.RSAProcessor,
		commandHandler.env.Primes,
		commandHandler.env.Config.Attack,
		commandHandler.env.Logger,
	)
}

// HastadAttackCmd encrypts a message under count generated keys sharing exponent e and recovers it
func (commandHandler *AttackCommandHandler) HastadAttackCmd(cmd *cobra.Command, _ []string) error {
	message, err := requiredBigIntFlag(cmd, "message")
	if err != nil {
		return err
	}
	min, err := requiredBigIntFlag(cmd, "min")
	if err != nil {
		return err
	}
	max, err := requiredBigIntFlag(cmd, "max")
	if err != nil {
		return err
	}
	e, err := cmd.Flags().GetInt("e")
	if err != nil {
		return fmt.Errorf("invalid e flag: %w", err)
	}
	count, err := cmd.Flags().GetInt("count")
	if err != nil {
		return fmt.Errorf("invalid count flag: %w", err)
	}

	attacker, err := commandHandler.hastad()
	if err != nil {
		return fmt.Errorf("failed to create Hastad attacker: %w", err)
	}

	set, rejected, err := attacker.GenerateBroadcast(message, e, count, min, max)
	if err != nil {
		return err
	}
	plaintext, err := attacker.Recover(set, e)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for i, c := range set {
		fmt.Fprintf(out, "c%d: %s (n%d: %s)\n", i+1, c.Value, i+1, c.Key.N())
	}
	fmt.Fprintf(out, "rejected keys: %d\n", rejected)
	fmt.Fprintf(out, "recovered message: %s\n", plaintext)
	return nil
}

// WienerAttackCmd factors a given public key, or generates vulnerable keys from a seed until one is broken
func (commandHandler *AttackCommandHandler) WienerAttackCmd(cmd *cobra.Command, _ []string) error {
	seed, err := bigIntFlag(cmd, "q-seed")
	if err != nil {
		return err
	}
	e, err := bigIntFlag(cmd, "e")
	if err != nil {
		return err
	}
	n, err := bigIntFlag(cmd, "n")
	if err != nil {
		return err
	}
	publicKeyPath, err := cmd.Flags().GetString("public-key")
	if err != nil {
		return fmt.Errorf("invalid public-key flag: %w", err)
	}

	attacker, err := commandHandler.wiener()
	if err != nil {
		return fmt.Errorf("failed to create Wiener attacker: %w", err)
	}

	out := cmd.OutOrStdout()
	var publicKey *crypto.PublicKey
	switch {
	case seed != nil:
		result, err := attacker.Attack(seed)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "e: %s\nn: %s\nattempts: %d\n", result.PublicKey.E(), result.PublicKey.N(), result.Attempts)
		printCandidate(cmd, result.Candidate)
		return nil
	case publicKeyPath != "":
		publicKey, err = commandHandler.env.RSAProcessor.ReadPublicKey(publicKeyPath)
	case e != nil && n != nil:
		publicKey, err = crypto.NewPublicKey(e, n)
	default:
		return errors.New("one of --q-seed, --public-key or --e with --n is required")
	}
	if err != nil {
		return err
	}

	candidate, err := attacker.RecoverPrivateKey(publicKey)
	if err != nil {
		return err
	}
	printCandidate(cmd, candidate)
	return nil
}

func printCandidate(cmd *cobra.Command, c *crypto.WienerCandidate) {
	fmt.Fprintf(cmd.OutOrStdout(), "p: %s\nq: %s\nd: %s\n", c.P, c.Q, c.D)
}

// InitAttackCommands registers attack-related commands
func InitAttackCommands(rootCmd *cobra.Command, env *Environment) {
	handler := NewAttackCommandHandler(env)

	var hastadAttackCmd = &cobra.Command{
		Use:   "hastad-attack",
		Short: "Recover a message broadcast under keys sharing a small exponent",
		RunE:  handler.HastadAttackCmd,
	}
	hastadAttackCmd.Flags().StringP("message", "", "", "Message as a decimal integer")
	hastadAttackCmd.Flags().StringP("min", "", "", "Lower bound of the prime range (decimal)")
	hastadAttackCmd.Flags().StringP("max", "", "", "Upper bound of the prime range (decimal)")
	hastadAttackCmd.Flags().IntP("e", "", 3, "Shared public exponent")
	hastadAttackCmd.Flags().IntP("count", "", 0, "Number of ciphertexts (defaults to e)")
	rootCmd.AddCommand(hastadAttackCmd)

	var wienerAttackCmd = &cobra.Command{
		Use:   "wiener-attack",
		Short: "Recover a small private exponent from the continued fraction of e/n",
		RunE:  handler.WienerAttackCmd,
	}
	wienerAttackCmd.Flags().StringP("q-seed", "", "", "Generate vulnerable keys with primes in [seed, 2*seed) and attack them")
	wienerAttackCmd.Flags().StringP("public-key", "", "", "Path to an RSA public key to attack")
	wienerAttackCmd.Flags().StringP("e", "", "", "Public exponent to attack (decimal, with --n)")
	wienerAttackCmd.Flags().StringP("n", "", "", "Modulus to attack (decimal, with --e)")
	rootCmd.AddCommand(wienerAttackCmd)
}
