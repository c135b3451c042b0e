package primes

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"

	"github.com/MGTheTrain/rsa-toolkit/internal/pkg/numtheory"
)

// smallPrimeLimit bounds the base primes used to strike composites. Survivors above
// smallPrimeLimit^2 are confirmed with Miller-Rabin.
const smallPrimeLimit = 1 << 16

var smallPrimes = eratosthenes(smallPrimeLimit)

// SieveSource enumerates the primes of ranges up to maxWidth integers wide.
type SieveSource struct {
	maxWidth int64
	rand     io.Reader
}

// NewSieveSource creates a sieve source for ranges holding at most maxWidth integers.
func NewSieveSource(maxWidth int64) (*SieveSource, error) {
	if maxWidth < 1 {
		return nil, fmt.Errorf("sieve width must be positive, got %d", maxWidth)
	}
	return &SieveSource{maxWidth: maxWidth, rand: rand.Reader}, nil
}

// Sample draws count distinct primes from [min, max] uniformly without replacement.
func (s *SieveSource) Sample(min, max *big.Int, count int) ([]*big.Int, error) {
	if err := numtheory.ValidateRange(min, max); err != nil {
		return nil, err
	}

	all, err := s.PrimesInRange(min, max)
	if err != nil {
		return nil, err
	}
	if len(all) < count {
		return nil, fmt.Errorf("%w: [%s, %s] holds %d primes, need %d", numtheory.ErrRangeExhausted, min, max, len(all), count)
	}

	// partial Fisher-Yates over the first count slots
	for i := 0; i < count; i++ {
		j, err := rand.Int(s.rand, big.NewInt(int64(len(all)-i)))
		if err != nil {
			return nil, fmt.Errorf("failed to draw sample index: %w", err)
		}
		k := i + int(j.Int64())
		all[i], all[k] = all[k], all[i]
	}
	return all[:count], nil
}

// PrimesInRange returns every prime in [min, max] in ascending order.
func (s *SieveSource) PrimesInRange(min, max *big.Int) ([]*big.Int, error) {
	width := new(big.Int).Sub(max, min)
	width.Add(width, big.NewInt(1))
	if !width.IsInt64() || width.Int64() > s.maxWidth {
		return nil, fmt.Errorf("range [%s, %s] is wider than the sieve limit %d", min, max, s.maxWidth)
	}

	size := width.Int64()
	composite := make([]bool, size)
	rem := new(big.Int)
	for _, sp := range smallPrimes {
		p := big.NewInt(sp)
		if new(big.Int).Mul(p, p).Cmp(max) > 0 {
			break
		}
		// first multiple of p in range that is not p itself
		rem.Mod(min, p)
		var start int64
		if rem.Sign() != 0 {
			start = sp - rem.Int64()
		}
		if new(big.Int).Add(min, big.NewInt(start)).Cmp(p) == 0 {
			start += sp
		}
		for i := start; i < size; i += sp {
			composite[i] = true
		}
	}

	var out []*big.Int
	candidate := new(big.Int)
	for i := int64(0); i < size; i++ {
		if composite[i] {
			continue
		}
		candidate.Add(min, big.NewInt(i))
		if candidate.ProbablyPrime(numtheory.PrimalityRounds) {
			out = append(out, new(big.Int).Set(candidate))
		}
	}
	return out, nil
}

func eratosthenes(limit int) []int64 {
	composite := make([]bool, limit+1)
	var out []int64
	for i := 2; i <= limit; i++ {
		if composite[i] {
			continue
		}
		out = append(out, int64(i))
		for j := i * i; j <= limit; j += i {
			composite[j] = true
		}
	}
	return out
}
