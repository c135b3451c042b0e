package crypto

import (
	"errors"

	"github.com/MGTheTrain/rsa-toolkit/internal/pkg/numtheory"
)

var (
	// ErrRangeExhausted indicates a prime range holds fewer distinct primes than requested
	ErrRangeExhausted = numtheory.ErrRangeExhausted

	// ErrNoInverse indicates a modular inverse does not exist
	ErrNoInverse = numtheory.ErrNoInverse

	// ErrInvalidExponent indicates a public exponent violates 1 < e < totient and gcd(e, totient) = 1
	ErrInvalidExponent = errors.New("invalid public exponent")

	// ErrInsufficientCiphertexts indicates fewer ciphertexts than the broadcast exponent
	ErrInsufficientCiphertexts = errors.New("insufficient ciphertexts for broadcast recovery")

	// ErrRootExtractionFailed indicates the CRT combination is not a perfect e-th power
	ErrRootExtractionFailed = errors.New("recovered value is not a perfect power")

	// ErrNoVulnerableKey indicates no key satisfying the Wiener bound was found within the retry limit
	ErrNoVulnerableKey = errors.New("no vulnerable key found")

	// ErrNotFound indicates no convergent of e/n yields the factorization of n
	ErrNotFound = errors.New("private key not found")

	// ErrMessageOutOfRange indicates a message or ciphertext outside [0, n)
	ErrMessageOutOfRange = errors.New("message out of range")

	// ErrInvalidKey indicates key material violating the key invariants
	ErrInvalidKey = errors.New("invalid key")
)
