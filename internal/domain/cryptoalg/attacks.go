package cryptoalg

import (
	"math/big"

	"github.com/MGTheTrain/rsa-toolkit/internal/domain/crypto"
)

// BroadcastAttacker recovers a message encrypted unpadded under several keys sharing a small public exponent.
type BroadcastAttacker interface {
	// GenerateBroadcast generates count key pairs with exponent e and pairwise coprime moduli from
	// primes in [min, max] and encrypts message under each public key.
	GenerateBroadcast(message *big.Int, e, count int, min, max *big.Int) (crypto.CiphertextSet, int, error)

	// Recover combines the ciphertexts with the Chinese remainder theorem and takes the exact e-th root.
	Recover(set crypto.CiphertextSet, e int) (*big.Int, error)

	// Attack runs GenerateBroadcast with count = e followed by Recover.
	Attack(message *big.Int, e int, min, max *big.Int) (*crypto.BroadcastResult, error)
}

// WienerAttacker factors moduli whose private exponent is below n^(1/4)/3.
type WienerAttacker interface {
	// GenerateVulnerableKey returns a key pair with primes in [qSeed, 2*qSeed) and a small private exponent.
	GenerateVulnerableKey(qSeed *big.Int) (*crypto.KeyPair, error)

	// RecoverPrivateKey searches the convergents of e/n for the private exponent and factors n.
	// Fails with crypto.ErrNotFound when no convergent works.
	RecoverPrivateKey(publicKey *crypto.PublicKey) (*crypto.WienerCandidate, error)

	// Attack alternates key generation and recovery until it succeeds or the attempt limit is hit.
	Attack(qSeed *big.Int) (*crypto.WienerResult, error)
}
