package cryptography

import (
	"encoding/pem"
	"errors"
	"fmt"
	"math/big"
	"os"
	"path/filepath"

	"github.com/MGTheTrain/rsa-toolkit/internal/domain/crypto"
	"github.com/fxamacker/cbor/v2"
)

type rawPublicKey struct {
	E []byte
	N []byte
}

type rawPrivateKey struct {
	D []byte
	P []byte
	Q []byte
}

// MarshalPublicKey encodes a public key as a PEM block carrying a CBOR payload.
func MarshalPublicKey(publicKey *crypto.PublicKey) ([]byte, error) {
	payload, err := cbor.Marshal(rawPublicKey{E: publicKey.E().Bytes(), N: publicKey.N().Bytes()})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal public key: %w", err)
	}
	return pem.EncodeToMemory(&pem.Block{Type: crypto.PublicKeyPEMType, Bytes: payload}), nil
}

// MarshalPrivateKey encodes a private key as a PEM block carrying a CBOR payload.
// n is not stored, it is derived from p and q on load.
func MarshalPrivateKey(privateKey *crypto.PrivateKey) ([]byte, error) {
	payload, err := cbor.Marshal(rawPrivateKey{
		D: privateKey.D().Bytes(),
		P: privateKey.P().Bytes(),
		Q: privateKey.Q().Bytes(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal private key: %w", err)
	}
	return pem.EncodeToMemory(&pem.Block{Type: crypto.PrivateKeyPEMType, Bytes: payload}), nil
}

// UnmarshalPublicKey decodes and validates a public key produced by MarshalPublicKey.
func UnmarshalPublicKey(data []byte) (*crypto.PublicKey, error) {
	payload, err := decodePEM(data, crypto.PublicKeyPEMType)
	if err != nil {
		return nil, err
	}

	var raw rawPublicKey
	if err := cbor.Unmarshal(payload, &raw); err != nil {
		return nil, fmt.Errorf("unable to parse public key: %w", err)
	}
	return crypto.NewPublicKey(new(big.Int).SetBytes(raw.E), new(big.Int).SetBytes(raw.N))
}

// UnmarshalPrivateKey decodes and validates a private key produced by MarshalPrivateKey.
func UnmarshalPrivateKey(data []byte) (*crypto.PrivateKey, error) {
	payload, err := decodePEM(data, crypto.PrivateKeyPEMType)
	if err != nil {
		return nil, err
	}

	var raw rawPrivateKey
	if err := cbor.Unmarshal(payload, &raw); err != nil {
		return nil, fmt.Errorf("unable to parse private key: %w", err)
	}
	return crypto.NewPrivateKey(
		new(big.Int).SetBytes(raw.D),
		new(big.Int).SetBytes(raw.P),
		new(big.Int).SetBytes(raw.Q),
	)
}

func decodePEM(data []byte, blockType string) ([]byte, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, errors.New("failed to parse PEM block")
	}
	if block.Type != blockType {
		return nil, fmt.Errorf("unexpected PEM block type %q, want %q", block.Type, blockType)
	}
	return block.Bytes, nil
}

// SavePrivateKeyToFile saves the private key to a PEM-encoded file readable by the owner only.
func (r *rsaProcessor) SavePrivateKeyToFile(privateKey *crypto.PrivateKey, filename string) error {
	if privateKey == nil {
		return errors.New("private key cannot be nil")
	}
	data, err := MarshalPrivateKey(privateKey)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Clean(filename), data, 0o600); err != nil {
		return fmt.Errorf("failed to write private key file: %w", err)
	}

	r.logger.Info("Saved RSA private key ", filename)
	return nil
}

// SavePublicKeyToFile saves the public key to a PEM-encoded file.
func (r *rsaProcessor) SavePublicKeyToFile(publicKey *crypto.PublicKey, filename string) error {
	if publicKey == nil {
		return errors.New("public key cannot be nil")
	}
	data, err := MarshalPublicKey(publicKey)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Clean(filename), data, 0o644); err != nil {
		return fmt.Errorf("failed to write public key file: %w", err)
	}

	r.logger.Info("Saved RSA public key ", filename)
	return nil
}

// ReadPrivateKey reads a private key from a PEM-encoded file.
func (r *rsaProcessor) ReadPrivateKey(privateKeyPath string) (*crypto.PrivateKey, error) {
	data, err := os.ReadFile(filepath.Clean(privateKeyPath))
	if err != nil {
		return nil, fmt.Errorf("unable to read private key file: %w", err)
	}
	return UnmarshalPrivateKey(data)
}

// ReadPublicKey reads a public key from a PEM-encoded file.
func (r *rsaProcessor) ReadPublicKey(publicKeyPath string) (*crypto.PublicKey, error) {
	data, err := os.ReadFile(filepath.Clean(publicKeyPath))
	if err != nil {
		return nil, fmt.Errorf("unable to read public key file: %w", err)
	}
	return UnmarshalPublicKey(data)
}
