package cryptanalysis

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
	three = big.NewInt(3)
	four  = big.NewInt(4)
)

type wienerAttacker struct {
	processor cryptoalg.RSAProcessor
	primes    numtheory.PrimeSource
	settings  config.AttackSettings
	logger    logger.Logger
}

// NewWienerAttacker creates a WienerAttacker generating its keys through processor.
func NewWienerAttacker(processor cryptoalg.RSAProcessor, primes numtheory.PrimeSource, settings config.AttackSettings, logger logger.Logger) (cryptoalg.WienerAttacker, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return &wienerAttacker{
		processor: processor,
		primes:    primes,
		settings:  settings,
		logger:    logger,
	}, nil
}

// WithinWienerBound reports whether 81*d^4 < n, the exact integer form of d < n^(1/4)/3.
func WithinWienerBound(d, n *big.Int) bool {
	bound := new(big.Int).Mul(three, d)
	bound.Exp(bound, four, nil)
	return bound.Cmp(n) < 0
}

// GenerateVulnerableKey samples q < p < 2q from [qSeed, 2*qSeed) and a random private exponent
// d within the Wiener bound, then derives e = d^-1 mod phi(n). Any failed draw spends one of
// WienerMaxKeyAttempts.
func (w *wienerAttacker) GenerateVulnerableKey(qSeed *big.Int) (*crypto.KeyPair, error) {
	if qSeed == nil || qSeed.Cmp(big.NewInt(2)) < 0 {
		return nil, fmt.Errorf("%w: seed must be at least 2", numtheory.ErrInvalidRange)
	}
	max := new(big.Int).Lsh(qSeed, 1)
	max.Sub(max, one)

	var lastErr error
	for attempt := 1; attempt <= w.settings.WienerMaxKeyAttempts; attempt++ {
		p, q, err := numtheory.SamplePrimes(w.primes, qSeed, max)
		if err != nil {
			w.logger.Debug("Failed to sample primes for a vulnerable key, attempt ", attempt, ": ", err)
			lastErr = err
			continue
		}
		if p.Cmp(q) < 0 {
			p, q = q, p
		}

		n := new(big.Int).Mul(p, q)
		phi := numtheory.EulerTotient(p, q)
		d, ok, err := w.smallPrivateExponent(n, phi)
		if err != nil {
			lastErr = err
			continue
		}
		if !ok {
			w.logger.Debug("No private exponent within the Wiener bound for n = ", n, ", attempt ", attempt)
			continue
		}

		e, err := numtheory.ModInverse(d, phi)
		if err != nil {
			return nil, fmt.Errorf("internal invariant violated: %w", err)
		}
		kp, err := w.processor.GenerateKeysFromPrimes(p, q, crypto.KeyGenOptions{Variant: crypto.TotientEuler, FixedE: e})
		if err != nil {
			w.logger.Debug("Failed to derive a vulnerable key for n = ", n, ", attempt ", attempt, ": ", err)
			lastErr = err
			continue
		}
		return kp, nil
	}

	err := fmt.Errorf("%w: seed %s, %d attempts", crypto.ErrNoVulnerableKey, qSeed, w.settings.WienerMaxKeyAttempts)
	if lastErr != nil {
		err = fmt.Errorf("%w, last failure: %w", err, lastErr)
	}
	return nil, err
}

// smallPrivateExponent draws d from [3, floor(n^(1/4))/3] until gcd(d, phi) = 1.
func (w *wienerAttacker) smallPrivateExponent(n, phi *big.Int) (*big.Int, bool, error) {
	root, _, err := bigmath.IntegerRoot(n, 4)
	if err != nil {
		return nil, false, err
	}
	maxD := root.Quo(root, three)
	if maxD.Cmp(three) < 0 {
		return nil, false, nil
	}

	span := new(big.Int).Sub(maxD, big.NewInt(2))
	for i := 0; i < w.settings.WienerMaxDAttempts; i++ {
		d, err := rand.Int(rand.Reader, span)
		if err != nil {
			return nil, false, fmt.Errorf("failed to draw private exponent: %w", err)
		}
		d.Add(d, three)
		if numtheory.IsCoprime(d, phi) && WithinWienerBound(d, n) {
			return d, true, nil
		}
	}
	return nil, false, nil
}

// RecoverPrivateKey runs the convergent search against an arbitrary public key.
func (w *wienerAttacker) RecoverPrivateKey(publicKey *crypto.PublicKey) (*crypto.WienerCandidate, error) {
	if publicKey == nil {
		return nil, errors.New("public key cannot be nil")
	}
	e, n := publicKey.E(), publicKey.N()

	cf, err := NewContinuedFraction(e, n)
	if err != nil {
		return nil, err
	}
	candidate, err := RecoverPrivateKey(e, n, cf)
	if err != nil {
		return nil, err
	}

	w.logger.Info("Recovered private exponent of ", publicKey, " after expanding ", cf.Len(), " convergents")
	return candidate, nil
}

// Attack generates vulnerable keys and attacks them until one is factored or WienerMaxAttacks is reached.
func (w *wienerAttacker) Attack(qSeed *big.Int) (*crypto.WienerResult, error) {
	for attempt := 1; attempt <= w.settings.WienerMaxAttacks; attempt++ {
		kp, err := w.GenerateVulnerableKey(qSeed)
		if err != nil {
			return nil, err
		}

		candidate, err := w.RecoverPrivateKey(kp.Public)
		if errors.Is(err, crypto.ErrNotFound) {
			w.logger.Warn("Wiener attack failed on ", kp.Public, ", regenerating key")
			continue
		}
		if err != nil {
			return nil, err
		}
		if candidate.D.Cmp(kp.Private.D()) != 0 {
			w.logger.Warn("Recovered exponent differs from the generated one for ", kp.Public)
		}

		return &crypto.WienerResult{PublicKey: kp.Public, Candidate: candidate, Attempts: attempt}, nil
	}
	return nil, fmt.Errorf("%w: %d keys attacked", crypto.ErrNotFound, w.settings.WienerMaxAttacks)
}
