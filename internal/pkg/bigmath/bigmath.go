package bigmath

import (
	"errors"
	"fmt"
	"math/big"
)

var (
	one  = big.NewInt(1)
	four = big.NewInt(4)
)

// ErrInvalidArgument is returned when an argument is outside the domain of an operation.
var ErrInvalidArgument = errors.New("bigmath: invalid argument")

// ModPow computes base^exp mod modulus by left-to-right square-and-multiply.
// The full power base^exp is never materialized; every intermediate value is
// reduced below modulus. A negative base is reduced into [0, modulus) first.
func ModPow(base, exp, modulus *big.Int) (*big.Int, error) {
	if modulus.Sign() <= 0 {
		return nil, fmt.Errorf("%w: modulus must be positive", ErrInvalidArgument)
	}
	if exp.Sign() < 0 {
		return nil, fmt.Errorf("%w: exponent must be non-negative", ErrInvalidArgument)
	}
	if modulus.Cmp(one) == 0 {
		return new(big.Int), nil
	}

	b := new(big.Int).Mod(base, modulus)
	result := big.NewInt(1)
	for i := exp.BitLen() - 1; i >= 0; i-- {
		result.Mul(result, result)
		result.Mod(result, modulus)
		if exp.Bit(i) == 1 {
			result.Mul(result, b)
			result.Mod(result, modulus)
		}
	}
	return result, nil
}

// ExtendedGCD solves the Bezout identity a*x + b*y = g where g = gcd(a, b).
// It returns g, x and y. g is non-negative for non-negative inputs.
func ExtendedGCD(a, b *big.Int) (g, x, y *big.Int) {
	if b.Sign() == 0 {
		return new(big.Int).Set(a), big.NewInt(1), big.NewInt(0)
	}

	oldR, r := new(big.Int).Set(a), new(big.Int).Set(b)
	oldS, s := big.NewInt(1), big.NewInt(0)
	oldT, t := big.NewInt(0), big.NewInt(1)

	quotient := new(big.Int)
	tmp := new(big.Int)
	for r.Sign() != 0 {
		quotient.Div(oldR, r)

		oldR, r = r, new(big.Int).Sub(oldR, tmp.Mul(quotient, r))
		oldS, s = s, new(big.Int).Sub(oldS, tmp.Mul(quotient, s))
		oldT, t = t, new(big.Int).Sub(oldT, tmp.Mul(quotient, t))
	}

	if oldR.Sign() < 0 {
		oldR.Neg(oldR)
		oldS.Neg(oldS)
		oldT.Neg(oldT)
	}
	return oldR, oldS, oldT
}

// GCD returns the non-negative greatest common divisor of a and b.
func GCD(a, b *big.Int) *big.Int {
	g, _, _ := ExtendedGCD(new(big.Int).Abs(a), new(big.Int).Abs(b))
	return g
}

// Lcm returns the least common multiple of a and b, or zero if either is zero.
func Lcm(a, b *big.Int) *big.Int {
	if a.Sign() == 0 || b.Sign() == 0 {
		return new(big.Int)
	}
	g := GCD(a, b)
	l := new(big.Int).Quo(new(big.Int).Abs(a), g)
	return l.Mul(l, new(big.Int).Abs(b))
}

// FloorDiv returns floor(a / b). b must be non-zero.
func FloorDiv(a, b *big.Int) (*big.Int, error) {
	if b.Sign() == 0 {
		return nil, fmt.Errorf("%w: division by zero", ErrInvalidArgument)
	}
	q, m := new(big.Int).DivMod(a, b, new(big.Int))
	// DivMod is Euclidean, which only differs from floor division for negative divisors.
	if b.Sign() < 0 && m.Sign() != 0 {
		q.Sub(q, one)
	}
	return q, nil
}
