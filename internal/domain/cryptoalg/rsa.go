package cryptoalg

import (
	"math/big"

	"github.com/MGTheTrain/rsa-toolkit/internal/domain/crypto"
)

// RSAProcessor handles textbook RSA: unpadded key generation, encryption and decryption over big integers.
// None of its operations are constant time.
type RSAProcessor interface {
	// GenerateKeys samples two distinct primes from [min, max] and derives a key pair.
	// Fails with crypto.ErrRangeExhausted when the range holds fewer than two primes and
	// crypto.ErrInvalidExponent when a fixed e is unusable or no random e was found.
	GenerateKeys(min, max *big.Int, opts crypto.KeyGenOptions) (*crypto.KeyPair, error)

	// GenerateKeysFromPrimes derives a key pair from the given distinct primes.
	GenerateKeysFromPrimes(p, q *big.Int, opts crypto.KeyGenOptions) (*crypto.KeyPair, error)

	// Encrypt computes message^e mod n.
	Encrypt(message *big.Int, publicKey *crypto.PublicKey) (*big.Int, error)

	// Decrypt computes ciphertext^d mod n.
	Decrypt(ciphertext *big.Int, privateKey *crypto.PrivateKey) (*big.Int, error)

	// DecryptCRT decrypts using the prime factors and Garner's recombination.
	// The result always equals Decrypt.
	DecryptCRT(ciphertext *big.Int, privateKey *crypto.PrivateKey) (*big.Int, error)

	// SavePrivateKeyToFile saves the private key to a PEM-encoded file.
	SavePrivateKeyToFile(privateKey *crypto.PrivateKey, filename string) error

	// SavePublicKeyToFile saves the public key to a PEM-encoded file.
	SavePublicKeyToFile(publicKey *crypto.PublicKey, filename string) error

	// ReadPrivateKey reads a private key from a PEM-encoded file.
	ReadPrivateKey(privateKeyPath string) (*crypto.PrivateKey, error)

	// ReadPublicKey reads a public key from a PEM-encoded file.
	ReadPublicKey(publicKeyPath string) (*crypto.PublicKey, error)
}
