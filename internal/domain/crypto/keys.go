package crypto

import (
	"fmt"
	"log/slog"
	"math/big"

	"github.com/MGTheTrain/rsa-toolkit/internal/pkg/numtheory"
)

var one = big.NewInt(1)

// PublicKey is an immutable textbook RSA public key (e, n).
type PublicKey struct {
	e *big.Int
	n *big.Int
}

// NewPublicKey validates and copies e and n. Only 1 < e < n is checked here, the
// totient constraints need the factorization and are checked by KeyPair.Validate.
func NewPublicKey(e, n *big.Int) (*PublicKey, error) {
	if e == nil || n == nil {
		return nil, fmt.Errorf("%w: public exponent and modulus are required", ErrInvalidKey)
	}
	if e.Cmp(one) <= 0 || e.Cmp(n) >= 0 {
		return nil, fmt.Errorf("%w: public exponent %s outside (1, %s)", ErrInvalidKey, e, n)
	}
	return &PublicKey{e: new(big.Int).Set(e), n: new(big.Int).Set(n)}, nil
}

// E returns a copy of the public exponent
func (k *PublicKey) E() *big.Int { return new(big.Int).Set(k.e) }

// N returns a copy of the modulus
func (k *PublicKey) N() *big.Int { return new(big.Int).Set(k.n) }

// Equal reports whether both keys hold the same exponent and modulus.
func (k *PublicKey) Equal(other *PublicKey) bool {
	if k == nil || other == nil {
		return k == other
	}
	return k.e.Cmp(other.e) == 0 && k.n.Cmp(other.n) == 0
}

func (k *PublicKey) String() string {
	return fmt.Sprintf("PublicKey{e: %s, n: %s}", k.e, k.n)
}

// PrivateKey is an immutable textbook RSA private key. It keeps the prime factors so
// that CRT decryption is possible. String and LogValue never print d, p or q.
type PrivateKey struct {
	d *big.Int
	n *big.Int
	p *big.Int
	q *big.Int
}

// NewPrivateKey validates d, p and q and derives n = p*q.
func NewPrivateKey(d, p, q *big.Int) (*PrivateKey, error) {
	if d == nil || p == nil || q == nil {
		return nil, fmt.Errorf("%w: private exponent and primes are required", ErrInvalidKey)
	}
	if d.Sign() <= 0 {
		return nil, fmt.Errorf("%w: private exponent must be positive", ErrInvalidKey)
	}
	if p.Cmp(q) == 0 {
		return nil, fmt.Errorf("%w: primes must be distinct", ErrInvalidKey)
	}
	for _, v := range []*big.Int{p, q} {
		if v.Sign() <= 0 || !v.ProbablyPrime(numtheory.PrimalityRounds) {
			return nil, fmt.Errorf("%w: factor is not prime", ErrInvalidKey)
		}
	}

	n := new(big.Int).Mul(p, q)
	if d.Cmp(n) >= 0 {
		return nil, fmt.Errorf("%w: private exponent must be below the modulus", ErrInvalidKey)
	}
	return &PrivateKey{
		d: new(big.Int).Set(d),
		n: n,
		p: new(big.Int).Set(p),
		q: new(big.Int).Set(q),
	}, nil
}

// D returns a copy of the private exponent
func (k *PrivateKey) D() *big.Int { return new(big.Int).Set(k.d) }

// N returns a copy of the modulus
func (k *PrivateKey) N() *big.Int { return new(big.Int).Set(k.n) }

// P returns a copy of the first prime factor
func (k *PrivateKey) P() *big.Int { return new(big.Int).Set(k.p) }

// Q returns a copy of the second prime factor
func (k *PrivateKey) Q() *big.Int { return new(big.Int).Set(k.q) }

func (k *PrivateKey) String() string {
	return fmt.Sprintf("PrivateKey{n: %s, d: %s, p: %s, q: %s}", k.n, Redacted, Redacted, Redacted)
}

// LogValue implements slog.LogValuer.
func (k *PrivateKey) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("n", k.n.String()),
		slog.String("d", Redacted),
		slog.String("p", Redacted),
		slog.String("q", Redacted),
	)
}

// KeyPair is a public key and the private key generated together with it.
type KeyPair struct {
	Public  *PublicKey
	Private *PrivateKey
	Variant TotientVariant
}

// Totient returns the totient of the pair's modulus under its variant.
// An unset variant is treated as TotientEuler.
func (kp *KeyPair) Totient() *big.Int {
	if kp.Variant == TotientCarmichael {
		return numtheory.Carmichael(kp.Private.p, kp.Private.q)
	}
	return numtheory.EulerTotient(kp.Private.p, kp.Private.q)
}

// Validate checks the RSA invariants binding both halves of the pair:
// a shared modulus, 1 < e < totient, gcd(e, totient) = 1 and e*d = 1 (mod totient).
func (kp *KeyPair) Validate() error {
	if kp.Public == nil || kp.Private == nil {
		return fmt.Errorf("%w: key pair is incomplete", ErrInvalidKey)
	}
	if kp.Variant != "" && !kp.Variant.IsValid() {
		return fmt.Errorf("%w: unknown totient variant %q", ErrInvalidKey, kp.Variant)
	}
	if kp.Public.n.Cmp(kp.Private.n) != 0 {
		return fmt.Errorf("%w: public and private modulus differ", ErrInvalidKey)
	}

	totient := kp.Totient()
	if kp.Public.e.Cmp(totient) >= 0 || !numtheory.IsCoprime(kp.Public.e, totient) {
		return fmt.Errorf("%w: e = %s", ErrInvalidExponent, kp.Public.e)
	}

	check := new(big.Int).Mul(kp.Public.e, kp.Private.d)
	if check.Mod(check, totient).Cmp(one) != 0 {
		return fmt.Errorf("%w: e*d is not congruent to 1 modulo the totient", ErrInvalidKey)
	}
	return nil
}

// Equal reports whether two key pairs hold identical key material.
func (kp *KeyPair) Equal(other *KeyPair) bool {
	return kp.Public.Equal(other.Public) &&
		kp.Private.d.Cmp(other.Private.d) == 0 &&
		kp.Private.n.Cmp(other.Private.n) == 0
}
