package cryptanalysis

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/MGTheTrain/rsa-toolkit/internal/domain/crypto"
	"github.com/MGTheTrain/rsa-toolkit/internal/pkg/bigmath"
)

var one = big.NewInt(1)

// ExpandContinuedFraction returns the partial quotients of num/den by the Euclidean algorithm.
func ExpandContinuedFraction(num, den *big.Int) ([]*big.Int, error) {
	if den.Sign() <= 0 {
		return nil, errors.New("denominator must be positive")
	}
	if num.Sign() < 0 {
		return nil, errors.New("numerator must not be negative")
	}

	a, b := new(big.Int).Set(num), new(big.Int).Set(den)
	var quotients []*big.Int
	for b.Sign() != 0 {
		q, r := new(big.Int).QuoRem(a, b, new(big.Int))
		quotients = append(quotients, q)
		a, b = b, r
	}
	return quotients, nil
}

// Convergents returns the numerators and denominators of the convergents of a continued fraction:
// k[i] = a[i]*k[i-1] + k[i-2] and d[i] = a[i]*d[i-1] + d[i-2], seeded with k[-1] = 1, k[-2] = 0,
// d[-1] = 0, d[-2] = 1.
func Convergents(quotients []*big.Int) ([]*big.Int, []*big.Int) {
	ks := make([]*big.Int, 0, len(quotients))
	ds := make([]*big.Int, 0, len(quotients))

	kPrev, kPrev2 := big.NewInt(1), big.NewInt(0)
	dPrev, dPrev2 := big.NewInt(0), big.NewInt(1)
	for _, a := range quotients {
		k := new(big.Int).Mul(a, kPrev)
		k.Add(k, kPrev2)
		d := new(big.Int).Mul(a, dPrev)
		d.Add(d, dPrev2)

		ks = append(ks, k)
		ds = append(ds, d)
		kPrev, kPrev2 = k, kPrev
		dPrev, dPrev2 = d, dPrev
	}
	return ks, ds
}

// NewContinuedFraction expands num/den together with all of its convergents.
func NewContinuedFraction(num, den *big.Int) (*crypto.ContinuedFraction, error) {
	quotients, err := ExpandContinuedFraction(num, den)
	if err != nil {
		return nil, err
	}
	ks, ds := Convergents(quotients)
	return &crypto.ContinuedFraction{Quotients: quotients, Numerators: ks, Denominators: ds}, nil
}

// RecoverPrivateKey tests every convergent k/d of e/n as a guess for k/d in e*d = 1 + k*phi.
// A guess is accepted when phi = (e*d - 1)/k is integral and x^2 - (n - phi + 1)x + n has
// positive integer roots p, q with p*q = n.
func RecoverPrivateKey(e, n *big.Int, cf *crypto.ContinuedFraction) (*crypto.WienerCandidate, error) {
	if len(cf.Numerators) != len(cf.Denominators) {
		return nil, fmt.Errorf("continued fraction has %d numerators and %d denominators", len(cf.Numerators), len(cf.Denominators))
	}

	phi, rem := new(big.Int), new(big.Int)
	for i, k := range cf.Numerators {
		if k.Sign() == 0 {
			continue
		}
		d := cf.Denominators[i]

		phi.Mul(e, d)
		phi.Sub(phi, one)
		phi.QuoRem(phi, k, rem)
		if rem.Sign() != 0 || phi.Sign() <= 0 {
			continue
		}

		b := new(big.Int).Sub(n, phi)
		b.Add(b, one)
		p, q, ok := bigmath.SolveMonicQuadratic(b, n)
		if !ok {
			continue
		}

		candidate := &crypto.WienerCandidate{P: p, Q: q, D: new(big.Int).Set(d)}
		if candidate.IsValid(n) {
			return candidate, nil
		}
	}
	return nil, fmt.Errorf("%w: none of %d convergents factors n", crypto.ErrNotFound, cf.Len())
}
