package bigmath

import (
	"fmt"
	"math/big"
)

// IntegerRoot returns floor(x^(1/n)) for x >= 0 and n >= 1, together with a
// flag reporting whether the root is exact (root^n == x).
//
// The root is found by Newton's iteration over the integers starting from a
// power of two that is known to be at least the true root, so the sequence
// decreases monotonically until it stops.
func IntegerRoot(x *big.Int, n int) (*big.Int, bool, error) {
	if n < 1 {
		return nil, false, fmt.Errorf("%w: root index must be at least 1, got %d", ErrInvalidArgument, n)
	}
	if x.Sign() < 0 {
		return nil, false, fmt.Errorf("%w: cannot take root of negative value", ErrInvalidArgument)
	}
	if x.Sign() == 0 || x.Cmp(one) == 0 || n == 1 {
		return new(big.Int).Set(x), true, nil
	}

	bigN := big.NewInt(int64(n))
	nMinusOne := big.NewInt(int64(n - 1))

	// 2^ceil(bitlen/n) >= x^(1/n)
	r := new(big.Int).Lsh(one, uint((x.BitLen()+n-1)/n))
	next := new(big.Int)
	pow := new(big.Int)
	for {
		// next = ((n-1)*r + x / r^(n-1)) / n
		pow.Exp(r, nMinusOne, nil)
		next.Quo(x, pow)
		pow.Mul(nMinusOne, r)
		next.Add(next, pow)
		next.Quo(next, bigN)
		if next.Cmp(r) >= 0 {
			break
		}
		r.Set(next)
	}

	check := new(big.Int).Exp(r, bigN, nil)
	return r, check.Cmp(x) == 0, nil
}

// IsPerfectSquare reports whether x is the square of an integer and returns its root.
func IsPerfectSquare(x *big.Int) (*big.Int, bool) {
	if x.Sign() < 0 {
		return nil, false
	}
	r := new(big.Int).Sqrt(x)
	return r, new(big.Int).Mul(r, r).Cmp(x) == 0
}

// SolveMonicQuadratic finds the integer roots of x^2 - b*x + c = 0.
// It returns the larger root first. ok is false when the discriminant is
// negative, not a perfect square, or the roots are not integers.
func SolveMonicQuadratic(b, c *big.Int) (hi, lo *big.Int, ok bool) {
	disc := new(big.Int).Mul(b, b)
	disc.Sub(disc, new(big.Int).Mul(four, c))
	if disc.Sign() < 0 {
		return nil, nil, false
	}
	root, exact := IsPerfectSquare(disc)
	if !exact {
		return nil, nil, false
	}

	hi = new(big.Int).Add(b, root)
	lo = new(big.Int).Sub(b, root)
	if hi.Bit(0) != 0 || lo.Bit(0) != 0 {
		return nil, nil, false
	}
	hi.Rsh(hi, 1)
	lo.Rsh(lo, 1)
	return hi, lo, true
}
