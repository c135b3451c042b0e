package primes

import (
	"fmt"
	"math/big"

	"github.com/MGTheTrain/rsa-toolkit/internal/pkg/config"
	"github.com/MGTheTrain/rsa-toolkit/internal/pkg/numtheory"
)

// AutoSource sieves ranges narrow enough to enumerate and samples randomly otherwise.
type AutoSource struct {
	sieve  *SieveSource
	random *RandomSource
}

// Sample delegates to the sieve or the random source depending on the width of [min, max].
func (a *AutoSource) Sample(min, max *big.Int, count int) ([]*big.Int, error) {
	if err := numtheory.ValidateRange(min, max); err != nil {
		return nil, err
	}

	width := new(big.Int).Sub(max, min)
	if width.IsInt64() && width.Int64() < a.sieve.maxWidth {
		return a.sieve.Sample(min, max, count)
	}
	return a.random.Sample(min, max, count)
}

// NewPrimeSource builds the prime source selected by settings.
func NewPrimeSource(settings config.PrimeSourceSettings) (numtheory.PrimeSource, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	sieve, err := NewSieveSource(settings.SieveMaxWidth)
	if err != nil {
		return nil, err
	}
	random, err := NewRandomSource(settings.MaxSampleAttempts)
	if err != nil {
		return nil, err
	}

	switch settings.Strategy {
	case config.PrimeSourceSieve:
		return sieve, nil
	case config.PrimeSourceRandom:
		return random, nil
	case config.PrimeSourceAuto:
		return &AutoSource{sieve: sieve, random: random}, nil
	default:
		return nil, fmt.Errorf("unsupported prime source strategy: %s", settings.Strategy)
	}
}
