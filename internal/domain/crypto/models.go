package crypto

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/MGTheTrain/rsa-toolkit/internal/pkg/validators"
	"github.com/go-playground/validator/v10"
)

// Ciphertext is one encryption of a broadcast message together with the key that produced it.
type Ciphertext struct {
	Value *big.Int
	Key   *PublicKey
}

// CiphertextSet is an ordered collection of ciphertexts of one plaintext under different keys.
type CiphertextSet []Ciphertext

// Residues returns the ciphertext values in order.
func (s CiphertextSet) Residues() []*big.Int {
	out := make([]*big.Int, len(s))
	for i, c := range s {
		out[i] = c.Value
	}
	return out
}

// Moduli returns the modulus of every key in order.
func (s CiphertextSet) Moduli() []*big.Int {
	out := make([]*big.Int, len(s))
	for i, c := range s {
		out[i] = c.Key.N()
	}
	return out
}

// ContinuedFraction holds the partial quotients of a rational number and its convergents
// Numerators[i] / Denominators[i].
type ContinuedFraction struct {
	Quotients    []*big.Int
	Numerators   []*big.Int
	Denominators []*big.Int
}

// Len returns the number of convergents
func (cf *ContinuedFraction) Len() int {
	return len(cf.Denominators)
}

// WienerCandidate is a factorization proposed by convergent testing.
type WienerCandidate struct {
	P *big.Int
	Q *big.Int
	D *big.Int
}

// IsValid reports whether P and Q are positive and multiply to n.
func (c *WienerCandidate) IsValid(n *big.Int) bool {
	if c.P == nil || c.Q == nil || c.D == nil {
		return false
	}
	if c.P.Sign() <= 0 || c.Q.Sign() <= 0 {
		return false
	}
	return new(big.Int).Mul(c.P, c.Q).Cmp(n) == 0
}

// BroadcastResult describes a completed Hastad broadcast attack.
type BroadcastResult struct {
	Plaintext   *big.Int
	Exponent    int
	Ciphertexts CiphertextSet
	// Rejected counts generated keys discarded for a colliding private exponent or a shared factor.
	Rejected int
}

// WienerResult describes a completed Wiener attack.
type WienerResult struct {
	PublicKey *PublicKey
	Candidate *WienerCandidate
	// Attempts is the number of vulnerable keys generated, including the successful one.
	Attempts int
}

// KeyGenOptions controls key generation.
type KeyGenOptions struct {
	Variant TotientVariant
	// FixedE is used as public exponent when set, otherwise e is drawn at random.
	FixedE *big.Int
	// MaxExponentAttempts bounds the random draw of e. Zero means DefaultMaxExponentAttempts.
	MaxExponentAttempts int
}

// ExponentAttempts returns the effective bound for the random draw of e.
func (o KeyGenOptions) ExponentAttempts() int {
	if o.MaxExponentAttempts <= 0 {
		return DefaultMaxExponentAttempts
	}
	return o.MaxExponentAttempts
}

// KeyGenRequest is the textual form of a key generation request as it arrives from the CLI or config.
type KeyGenRequest struct {
	Min     string `validate:"required,bigint"`
	Max     string `validate:"required,bigint,gtebigfield=Min"`
	E       string `validate:"omitempty,bigint"`
	Variant string `validate:"required,oneof=euler carmichael"`
}

// Validate for validating KeyGenRequest struct
func (r *KeyGenRequest) Validate() error {
	validate := validator.New()

	if err := validators.Register(validate); err != nil {
		return fmt.Errorf("failed to register custom validator: %w", err)
	}

	err := validate.Struct(r)
	if err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			var messages []string
			for _, fieldErr := range validationErrors {
				messages = append(messages, fmt.Sprintf("Field: %s, Tag: %s", fieldErr.Field(), fieldErr.Tag()))
			}
			return fmt.Errorf("validation failed: %v", messages)
		}
		return fmt.Errorf("validation error: %w", err)
	}

	return nil
}

// ToOptions validates the request and converts it into a prime range and KeyGenOptions.
func (r *KeyGenRequest) ToOptions(maxExponentAttempts int) (*big.Int, *big.Int, KeyGenOptions, error) {
	if err := r.Validate(); err != nil {
		return nil, nil, KeyGenOptions{}, err
	}

	min, _ := new(big.Int).SetString(r.Min, 10)
	max, _ := new(big.Int).SetString(r.Max, 10)
	opts := KeyGenOptions{
		Variant:             TotientVariant(r.Variant),
		MaxExponentAttempts: maxExponentAttempts,
	}
	if r.E != "" {
		opts.FixedE, _ = new(big.Int).SetString(r.E, 10)
	}
	return min, max, opts, nil
}
