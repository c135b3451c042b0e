package numtheory

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/MGTheTrain/rsa-toolkit/internal/pkg/bigmath"
)

// PrimalityRounds is the number of Miller-Rabin rounds used to verify primes
// handed out by a PrimeSource.
const PrimalityRounds = 20

var (
	// ErrRangeExhausted indicates a range holds fewer distinct primes than requested.
	ErrRangeExhausted = errors.New("not enough primes in range")

	// ErrNoInverse indicates gcd(a, m) != 1, so a has no inverse modulo m.
	ErrNoInverse = errors.New("modular inverse does not exist")

	// ErrInvalidRange indicates min > max or bounds below 2.
	ErrInvalidRange = errors.New("invalid prime range")
)

var one = big.NewInt(1)

// PrimeSource hands out verified primes from a closed range.
// Sample must return count distinct primes drawn without replacement from
// [min, max], or an error wrapping ErrRangeExhausted when the range cannot
// supply them.
type PrimeSource interface {
	Sample(min, max *big.Int, count int) ([]*big.Int, error)
}

// SamplePrimes returns two distinct primes from [min, max] using src.
// Every value is re-verified before it is returned.
func SamplePrimes(src PrimeSource, min, max *big.Int) (*big.Int, *big.Int, error) {
	if err := ValidateRange(min, max); err != nil {
		return nil, nil, err
	}

	primes, err := src.Sample(min, max, 2)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to sample primes in [%s, %s]: %w", min, max, err)
	}
	if len(primes) != 2 {
		return nil, nil, fmt.Errorf("prime source returned %d primes, want 2: %w", len(primes), ErrRangeExhausted)
	}

	p, q := primes[0], primes[1]
	if p.Cmp(q) == 0 {
		return nil, nil, fmt.Errorf("prime source returned duplicate prime %s: %w", p, ErrRangeExhausted)
	}
	for _, v := range primes {
		if v.Cmp(min) < 0 || v.Cmp(max) > 0 || !v.ProbablyPrime(PrimalityRounds) {
			return nil, nil, fmt.Errorf("prime source returned invalid value %s for range [%s, %s]", v, min, max)
		}
	}
	return p, q, nil
}

// ValidateRange checks 2 <= min <= max.
func ValidateRange(min, max *big.Int) error {
	if min == nil || max == nil {
		return fmt.Errorf("%w: bounds must be set", ErrInvalidRange)
	}
	if min.Cmp(big.NewInt(2)) < 0 {
		return fmt.Errorf("%w: lower bound %s is below 2", ErrInvalidRange, min)
	}
	if min.Cmp(max) > 0 {
		return fmt.Errorf("%w: lower bound %s exceeds upper bound %s", ErrInvalidRange, min, max)
	}
	return nil
}

// IsCoprime reports whether gcd(a, b) == 1.
func IsCoprime(a, b *big.Int) bool {
	return bigmath.GCD(a, b).Cmp(one) == 0
}

// EulerTotient returns (p-1)(q-1). It is phi(p*q) only for distinct primes p and q.
func EulerTotient(p, q *big.Int) *big.Int {
	pMinusOne := new(big.Int).Sub(p, one)
	qMinusOne := new(big.Int).Sub(q, one)
	return pMinusOne.Mul(pMinusOne, qMinusOne)
}

// Carmichael returns lambda(p*q) = lcm(p-1, q-1) for distinct primes p and q.
func Carmichael(p, q *big.Int) *big.Int {
	return bigmath.Lcm(new(big.Int).Sub(p, one), new(big.Int).Sub(q, one))
}

// ModInverse returns the unique d in [1, modulus) with a*d = 1 (mod modulus).
// The inverse comes from the Bezout coefficients of the extended Euclidean
// algorithm, so the cost is logarithmic in modulus.
func ModInverse(a, modulus *big.Int) (*big.Int, error) {
	if modulus.Cmp(one) <= 0 {
		return nil, fmt.Errorf("%w: modulus %s must exceed 1", ErrNoInverse, modulus)
	}

	reduced := new(big.Int).Mod(a, modulus)
	g, x, _ := bigmath.ExtendedGCD(reduced, modulus)
	if g.Cmp(one) != 0 {
		return nil, fmt.Errorf("%w: gcd(%s, %s) = %s", ErrNoInverse, a, modulus, g)
	}
	return x.Mod(x, modulus), nil
}

// CombineCRT reconstructs the unique x in [0, N) with x = residues[i] (mod moduli[i])
// for pairwise coprime moduli, where N is the product of the moduli.
// It returns x and N.
func CombineCRT(residues, moduli []*big.Int) (*big.Int, *big.Int, error) {
	if len(residues) != len(moduli) {
		return nil, nil, fmt.Errorf("got %d residues for %d moduli", len(residues), len(moduli))
	}
	if len(moduli) == 0 {
		return nil, nil, errors.New("at least one congruence is required")
	}

	product := big.NewInt(1)
	for _, m := range moduli {
		if m.Sign() <= 0 {
			return nil, nil, fmt.Errorf("modulus %s must be positive", m)
		}
		product.Mul(product, m)
	}

	x := new(big.Int)
	term := new(big.Int)
	for i, m := range moduli {
		partial, err := bigmath.FloorDiv(product, m)
		if err != nil {
			return nil, nil, err
		}
		inv, err := ModInverse(partial, m)
		if err != nil {
			return nil, nil, fmt.Errorf("moduli are not pairwise coprime at index %d: %w", i, err)
		}
		term.Mul(residues[i], inv)
		term.Mul(term, partial)
		x.Add(x, term)
	}
	return x.Mod(x, product), product, nil
}
