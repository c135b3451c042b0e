package primes

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"

	"github.com/MGTheTrain/rsa-toolkit/internal/pkg/numtheory"
)

// RandomSource draws uniform candidates from a range and keeps the probable primes.
type RandomSource struct {
	maxAttempts int
	rand        io.Reader
}

// NewRandomSource creates a random source allowing maxAttempts draws per requested prime.
func NewRandomSource(maxAttempts int) (*RandomSource, error) {
	if maxAttempts < 1 {
		return nil, fmt.Errorf("max attempts must be positive, got %d", maxAttempts)
	}
	return &RandomSource{maxAttempts: maxAttempts, rand: rand.Reader}, nil
}

// Sample draws count distinct probable primes from [min, max]. It fails with
// numtheory.ErrRangeExhausted once count*maxAttempts draws did not produce them.
func (s *RandomSource) Sample(min, max *big.Int, count int) ([]*big.Int, error) {
	if err := numtheory.ValidateRange(min, max); err != nil {
		return nil, err
	}

	width := new(big.Int).Sub(max, min)
	width.Add(width, big.NewInt(1))

	seen := make(map[string]struct{}, count)
	out := make([]*big.Int, 0, count)
	budget := count * s.maxAttempts
	for attempt := 0; attempt < budget && len(out) < count; attempt++ {
		candidate, err := rand.Int(s.rand, width)
		if err != nil {
			return nil, fmt.Errorf("failed to draw candidate: %w", err)
		}
		candidate.Add(candidate, min)
		if !candidate.ProbablyPrime(numtheory.PrimalityRounds) {
			continue
		}
		key := candidate.String()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, candidate)
	}

	if len(out) < count {
		return nil, fmt.Errorf("%w: found %d of %d primes in [%s, %s] after %d draws",
			numtheory.ErrRangeExhausted, len(out), count, min, max, budget)
	}
	return out, nil
}
