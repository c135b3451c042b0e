package cryptography

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"

	"github.com/MGTheTrain/rsa-toolkit/internal/domain/crypto"
	"github.com/MGTheTrain/rsa-toolkit/internal/domain/cryptoalg"
	"github.com/MGTheTrain/rsa-toolkit/internal/pkg/bigmath"
	"github.com/MGTheTrain/rsa-toolkit/internal/pkg/config"
	"github.com/MGTheTrain/rsa-toolkit/internal/pkg/logger"
	"github.com/MGTheTrain/rsa-toolkit/internal/pkg/numtheory"
)

var (
	one = big.NewInt(1)
	two = big.NewInt(2)
)

// rsaProcessor struct that implements the RSAProcessor interface
type rsaProcessor struct {
	primes   numtheory.PrimeSource
	settings config.CipherSettings
	logger   logger.Logger
}

// NewRSAProcessor creates and returns a new instance of rsaProcessor
func NewRSAProcessor(primes numtheory.PrimeSource, settings config.CipherSettings, logger logger.Logger) (cryptoalg.RSAProcessor, error) {
	if primes == nil {
		return nil, errors.New("prime source cannot be nil")
	}
	return &rsaProcessor{
		primes:   primes,
		settings: settings,
		logger:   logger,
	}, nil
}

// GenerateKeys samples two distinct primes from [min, max] and derives a key pair from them.
func (r *rsaProcessor) GenerateKeys(min, max *big.Int, opts crypto.KeyGenOptions) (*crypto.KeyPair, error) {
	p, q, err := numtheory.SamplePrimes(r.primes, min, max)
	if err != nil {
		return nil, fmt.Errorf("failed to generate RSA keys: %w", err)
	}
	return r.GenerateKeysFromPrimes(p, q, opts)
}

// GenerateKeysFromPrimes derives n, the selected totient, e and d from two distinct primes.
func (r *rsaProcessor) GenerateKeysFromPrimes(p, q *big.Int, opts crypto.KeyGenOptions) (*crypto.KeyPair, error) {
	variant := opts.Variant
	if variant == "" {
		variant = crypto.TotientEuler
	}
	if !variant.IsValid() {
		return nil, fmt.Errorf("unsupported totient variant: %s", variant)
	}
	if p == nil || q == nil || p.Cmp(q) == 0 {
		return nil, fmt.Errorf("%w: two distinct primes are required", crypto.ErrInvalidKey)
	}

	totient := numtheory.EulerTotient(p, q)
	if variant == crypto.TotientCarmichael {
		totient = numtheory.Carmichael(p, q)
	}

	var e *big.Int
	var err error
	if opts.FixedE != nil {
		e, err = checkExponent(opts.FixedE, totient)
	} else {
		e, err = randomExponent(totient, opts.ExponentAttempts())
	}
	if err != nil {
		return nil, err
	}

	d, err := numtheory.ModInverse(e, totient)
	if err != nil {
		// e was checked coprime to the totient
		return nil, fmt.Errorf("internal invariant violated: %w", err)
	}

	privateKey, err := crypto.NewPrivateKey(d, p, q)
	if err != nil {
		return nil, err
	}
	publicKey, err := crypto.NewPublicKey(e, privateKey.N())
	if err != nil {
		return nil, err
	}

	r.logger.Debug("Generated RSA key pair ", publicKey, " using the ", string(variant), " totient")
	return &crypto.KeyPair{Public: publicKey, Private: privateKey, Variant: variant}, nil
}

func checkExponent(e, totient *big.Int) (*big.Int, error) {
	if e.Cmp(one) <= 0 || e.Cmp(totient) >= 0 {
		return nil, fmt.Errorf("%w: %s is outside (1, %s)", crypto.ErrInvalidExponent, e, totient)
	}
	if !numtheory.IsCoprime(e, totient) {
		return nil, fmt.Errorf("%w: %s shares a factor with the totient %s", crypto.ErrInvalidExponent, e, totient)
	}
	return new(big.Int).Set(e), nil
}

// randomExponent draws e uniformly from [2, totient) until it is coprime to the totient.
func randomExponent(totient *big.Int, maxAttempts int) (*big.Int, error) {
	if totient.Cmp(two) <= 0 {
		return nil, fmt.Errorf("%w: totient %s leaves no candidate exponent", crypto.ErrInvalidExponent, totient)
	}

	span := new(big.Int).Sub(totient, two)
	for attempt := 0; attempt < maxAttempts; attempt++ {
		e, err := rand.Int(rand.Reader, span)
		if err != nil {
			return nil, fmt.Errorf("failed to draw public exponent: %w", err)
		}
		e.Add(e, two)
		if numtheory.IsCoprime(e, totient) {
			return e, nil
		}
	}
	return nil, fmt.Errorf("%w: no exponent coprime to %s after %d attempts", crypto.ErrInvalidExponent, totient, maxAttempts)
}

// Encrypt computes message^e mod n.
func (r *rsaProcessor) Encrypt(message *big.Int, publicKey *crypto.PublicKey) (*big.Int, error) {
	if publicKey == nil {
		return nil, errors.New("public key cannot be nil")
	}
	n := publicKey.N()
	m, err := r.inRange(message, n, "message")
	if err != nil {
		return nil, err
	}

	c, err := bigmath.ModPow(m, publicKey.E(), n)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt message: %w", err)
	}
	return c, nil
}

// Decrypt computes ciphertext^d mod n.
func (r *rsaProcessor) Decrypt(ciphertext *big.Int, privateKey *crypto.PrivateKey) (*big.Int, error) {
	if privateKey == nil {
		return nil, errors.New("private key cannot be nil")
	}
	n := privateKey.N()
	c, err := r.inRange(ciphertext, n, "ciphertext")
	if err != nil {
		return nil, err
	}

	m, err := bigmath.ModPow(c, privateKey.D(), n)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt ciphertext: %w", err)
	}
	return m, nil
}

// DecryptCRT computes m1 = c^dp mod p and m2 = c^dq mod q and recombines them
// as m = m2 + q * (qinv * (m1 - m2) mod p).
func (r *rsaProcessor) DecryptCRT(ciphertext *big.Int, privateKey *crypto.PrivateKey) (*big.Int, error) {
	if privateKey == nil {
		return nil, errors.New("private key cannot be nil")
	}
	c, err := r.inRange(ciphertext, privateKey.N(), "ciphertext")
	if err != nil {
		return nil, err
	}

	p, q, d := privateKey.P(), privateKey.Q(), privateKey.D()
	m1, err := bigmath.ModPow(c, reducedExponent(d, p), p)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt ciphertext modulo p: %w", err)
	}
	m2, err := bigmath.ModPow(c, reducedExponent(d, q), q)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt ciphertext modulo q: %w", err)
	}

	qInv, err := numtheory.ModInverse(q, p)
	if err != nil {
		return nil, fmt.Errorf("internal invariant violated: %w", err)
	}

	h := new(big.Int).Sub(m1, m2)
	h.Mul(h, qInv)
	h.Mod(h, p)
	h.Mul(h, q)
	return h.Add(h, m2), nil
}

// reducedExponent returns d mod (prime-1). A zero result is replaced by prime-1 so that
// c^0 = 1 is never used for a ciphertext divisible by prime.
func reducedExponent(d, prime *big.Int) *big.Int {
	pm1 := new(big.Int).Sub(prime, one)
	reduced := new(big.Int).Mod(d, pm1)
	if reduced.Sign() == 0 {
		return pm1
	}
	return reduced
}

// inRange checks 0 <= v < n. Values at or above n are reduced with a warning in lenient mode.
func (r *rsaProcessor) inRange(v, n *big.Int, what string) (*big.Int, error) {
	if v == nil {
		return nil, fmt.Errorf("%s cannot be nil", what)
	}
	if v.Sign() < 0 {
		return nil, fmt.Errorf("%w: %s is negative", crypto.ErrMessageOutOfRange, what)
	}
	if v.Cmp(n) < 0 {
		return v, nil
	}
	if !r.settings.Lenient {
		return nil, fmt.Errorf("%w: %s has %d bits, modulus has %d", crypto.ErrMessageOutOfRange, what, v.BitLen(), n.BitLen())
	}
	r.logger.Warn("Reducing ", what, " modulo n, the original value cannot be recovered")
	return new(big.Int).Mod(v, n), nil
}
