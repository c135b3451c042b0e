package commands

import (
	"fmt"
	"path/filepath"

	"github.com/MGTheTrain/rsa-toolkit/internal/domain/crypto"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// RSACommandHandler encapsulates logic for handling textbook RSA operations via CLI.
type RSACommandHandler struct {
	env *Environment
}

// NewRSACommandHandler creates a handler over the shared command environment
func NewRSACommandHandler(env *Environment) *RSACommandHandler {
	return &RSACommandHandler{env: env}
}

// GenerateRSAKeysCmd generates a key pair from primes in [min, max] and persists it in a selected directory
func (commandHandler *RSACommandHandler) GenerateRSAKeysCmd(cmd *cobra.Command, _ []string) error {
	req := crypto.KeyGenRequest{}
	var err error
	if req.Min, err = cmd.Flags().GetString("min"); err != nil {
		return fmt.Errorf("invalid min flag: %w", err)
	}
	if req.Max, err = cmd.Flags().GetString("max"); err != nil {
		return fmt.Errorf("invalid max flag: %w", err)
	}
	if req.E, err = cmd.Flags().GetString("e"); err != nil {
		return fmt.Errorf("invalid e flag: %w", err)
	}
	if req.Variant, err = cmd.Flags().GetString("variant"); err != nil {
		return fmt.Errorf("invalid variant flag: %w", err)
	}
	keyDir, err := cmd.Flags().GetString("key-dir")
	if err != nil {
		return fmt.Errorf("invalid key-dir flag: %w", err)
	}

	min, max, opts, err := req.ToOptions(commandHandler.env.Config.Attack.MaxExponentAttempts)
	if err != nil {
		return err
	}

	keyPair, err := commandHandler.env.RSAProcessor.GenerateKeys(min, max, opts)
	if err != nil {
		return err
	}

	uniqueID := uuid.New()
	privateKeyFilePath := filepath.Join(keyDir, fmt.Sprintf("%s-private-key.pem", uniqueID.String()))
	if err := commandHandler.env.RSAProcessor.SavePrivateKeyToFile(keyPair.Private, privateKeyFilePath); err != nil {
		return err
	}

	publicKeyFilePath := filepath.Join(keyDir, fmt.Sprintf("%s-public-key.pem", uniqueID.String()))
	if err := commandHandler.env.RSAProcessor.SavePublicKeyToFile(keyPair.Public, publicKeyFilePath); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "e: %s\nn: %s\n", keyPair.Public.E(), keyPair.Public.N())
	fmt.Fprintf(out, "private key: %s\npublic key: %s\n", privateKeyFilePath, publicKeyFilePath)
	return nil
}

// EncryptRSACmd encrypts a decimal message under a public key file
func (commandHandler *RSACommandHandler) EncryptRSACmd(cmd *cobra.Command, _ []string) error {
	publicKeyPath, err := cmd.Flags().GetString("public-key")
	if err != nil {
		return fmt.Errorf("invalid public-key flag: %w", err)
	}
	message, err := requiredBigIntFlag(cmd, "message")
	if err != nil {
		return err
	}

	publicKey, err := commandHandler.env.RSAProcessor.ReadPublicKey(publicKeyPath)
	if err != nil {
		return err
	}

	ciphertext, err := commandHandler.env.RSAProcessor.Encrypt(message, publicKey)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), ciphertext)
	return nil
}

// DecryptRSACmd decrypts a decimal ciphertext with a private key file
func (commandHandler *RSACommandHandler) DecryptRSACmd(cmd *cobra.Command, _ []string) error {
	privateKeyPath, err := cmd.Flags().GetString("private-key")
	if err != nil {
		return fmt.Errorf("invalid private-key flag: %w", err)
	}
	useCRT, err := cmd.Flags().GetBool("crt")
	if err != nil {
		return fmt.Errorf("invalid crt flag: %w", err)
	}
	ciphertext, err := requiredBigIntFlag(cmd, "ciphertext")
	if err != nil {
		return err
	}

	privateKey, err := commandHandler.env.RSAProcessor.ReadPrivateKey(privateKeyPath)
	if err != nil {
		return err
	}

	decrypt := commandHandler.env.RSAProcessor.Decrypt
	if useCRT {
		decrypt = commandHandler.env.RSAProcessor.DecryptCRT
	}
	message, err := decrypt(ciphertext, privateKey)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), message)
	return nil
}

// InitRSACommands registers RSA-related commands
func InitRSACommands(rootCmd *cobra.Command, env *Environment) {
	handler := NewRSACommandHandler(env)

	var generateRSAKeysCmd = &cobra.Command{
		Use:   "generate-rsa-keys",
		Short: "Generate a textbook RSA key pair from primes in [min, max]",
		RunE:  handler.GenerateRSAKeysCmd,
	}
	generateRSAKeysCmd.Flags().StringP("min", "", "", "Lower bound of the prime range (decimal)")
	generateRSAKeysCmd.Flags().StringP("max", "", "", "Upper bound of the prime range (decimal)")
	generateRSAKeysCmd.Flags().StringP("e", "", "", "Fixed public exponent (decimal, random when empty)")
	generateRSAKeysCmd.Flags().StringP("variant", "", string(crypto.TotientEuler), "Totient used to derive d: euler or carmichael")
	generateRSAKeysCmd.Flags().StringP("key-dir", "", ".", "Directory to store the RSA keys")
	rootCmd.AddCommand(generateRSAKeysCmd)

	var encryptRSACmd = &cobra.Command{
		Use:   "encrypt-rsa",
		Short: "Encrypt an integer message with textbook RSA",
		RunE:  handler.EncryptRSACmd,
	}
	encryptRSACmd.Flags().StringP("message", "", "", "Message as a decimal integer below n")
	encryptRSACmd.Flags().StringP("public-key", "", "", "Path to RSA public key")
	rootCmd.AddCommand(encryptRSACmd)

	var decryptRSACmd = &cobra.Command{
		Use:   "decrypt-rsa",
		Short: "Decrypt an integer ciphertext with textbook RSA",
		RunE:  handler.DecryptRSACmd,
	}
	decryptRSACmd.Flags().StringP("ciphertext", "", "", "Ciphertext as a decimal integer")
	decryptRSACmd.Flags().StringP("private-key", "", "", "Path to RSA private key")
	decryptRSACmd.Flags().BoolP("crt", "", false, "Decrypt with the Chinese remainder theorem")
	rootCmd.AddCommand(decryptRSACmd)
}
