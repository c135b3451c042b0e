package cryptanalysis

import (
	"fmt"
	"math/big"

	"github.com/MGTheTrain/rsa-toolkit/internal/domain/crypto"
	"github.com/MGTheTrain/rsa-toolkit/internal/domain/cryptoalg"
	"github.com/MGTheTrain/rsa-toolkit/internal/pkg/bigmath"
	"github.com/MGTheTrain/rsa-toolkit/internal/pkg/config"
	"github.com/MGTheTrain/rsa-toolkit/internal/pkg/logger"
	"github.com/MGTheTrain/rsa-toolkit/internal/pkg/numtheory"
)

type hastadAttacker struct {
	processor cryptoalg.RSAProcessor
	settings  config.AttackSettings
	logger    logger.Logger
}

// NewHastadAttacker creates a BroadcastAttacker generating its keys through processor.
func NewHastadAttacker(processor cryptoalg.RSAProcessor, settings config.AttackSettings, logger logger.Logger) (cryptoalg.BroadcastAttacker, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return &hastadAttacker{
		processor: processor,
		settings:  settings,
		logger:    logger,
	}, nil
}

// GenerateBroadcast generates count key pairs sharing exponent e and encrypts message under each.
// A failed generation, a private exponent repeating an earlier one or a modulus sharing a factor
// with an earlier modulus rejects the key, up to HastadMaxKeyAttempts rejections.
// The number of rejections is returned with the set.
func (h *hastadAttacker) GenerateBroadcast(message *big.Int, e, count int, min, max *big.Int) (crypto.CiphertextSet, int, error) {
	if e < 2 {
		return nil, 0, fmt.Errorf("%w: broadcast exponent must be at least 2, got %d", crypto.ErrInvalidExponent, e)
	}
	if count <= 0 {
		count = e
	}

	opts := crypto.KeyGenOptions{Variant: crypto.TotientEuler, FixedE: big.NewInt(int64(e))}
	set := make(crypto.CiphertextSet, 0, count)
	var privateExponents []*big.Int
	rejected := 0
	var lastErr error

	for len(set) < count {
		if rejected >= h.settings.HastadMaxKeyAttempts {
			err := fmt.Errorf("%w: generated %d of %d keys before %d rejections",
				crypto.ErrInsufficientCiphertexts, len(set), count, rejected)
			if lastErr != nil {
				err = fmt.Errorf("%w, last failure: %w", err, lastErr)
			}
			return set, rejected, err
		}

		kp, err := h.processor.GenerateKeys(min, max, opts)
		if err != nil {
			h.logger.Debug("Rejected broadcast key: ", err)
			lastErr = err
			rejected++
			continue
		}
		if !h.acceptable(kp, set, privateExponents) {
			rejected++
			continue
		}

		c, err := h.processor.Encrypt(message, kp.Public)
		if err != nil {
			return nil, rejected, fmt.Errorf("failed to encrypt broadcast message: %w", err)
		}
		set = append(set, crypto.Ciphertext{Value: c, Key: kp.Public})
		privateExponents = append(privateExponents, kp.Private.D())
	}

	h.logger.Debug("Generated ", len(set), " broadcast ciphertexts with e = ", e, ", rejected ", rejected, " keys")
	return set, rejected, nil
}

func (h *hastadAttacker) acceptable(kp *crypto.KeyPair, set crypto.CiphertextSet, privateExponents []*big.Int) bool {
	d := kp.Private.D()
	for _, other := range privateExponents {
		if d.Cmp(other) == 0 {
			return false
		}
	}
	n := kp.Public.N()
	for _, c := range set {
		if !numtheory.IsCoprime(n, c.Key.N()) {
			return false
		}
	}
	return true
}

// Recover combines c_i = m^e mod n_i into m^e mod prod(n_i) and returns its exact e-th root.
func (h *hastadAttacker) Recover(set crypto.CiphertextSet, e int) (*big.Int, error) {
	if e < 2 {
		return nil, fmt.Errorf("%w: broadcast exponent must be at least 2, got %d", crypto.ErrInvalidExponent, e)
	}
	if len(set) < e {
		return nil, fmt.Errorf("%w: have %d, need %d", crypto.ErrInsufficientCiphertexts, len(set), e)
	}

	eBig := big.NewInt(int64(e))
	for i, c := range set {
		if c.Key == nil || c.Value == nil {
			return nil, fmt.Errorf("ciphertext %d is incomplete", i)
		}
		if c.Key.E().Cmp(eBig) != 0 {
			return nil, fmt.Errorf("%w: ciphertext %d was encrypted with e = %s, want %d", crypto.ErrInvalidExponent, i, c.Key.E(), e)
		}
	}

	combined, _, err := numtheory.CombineCRT(set.Residues(), set.Moduli())
	if err != nil {
		return nil, fmt.Errorf("failed to combine ciphertexts: %w", err)
	}

	root, exact, err := bigmath.IntegerRoot(combined, e)
	if err != nil {
		return nil, err
	}
	if !exact {
		return nil, fmt.Errorf("%w: combined value of %d bits has no exact %d-th root", crypto.ErrRootExtractionFailed, combined.BitLen(), e)
	}
	return root, nil
}

// Attack encrypts message under e fresh keys and recovers it from the ciphertexts alone.
func (h *hastadAttacker) Attack(message *big.Int, e int, min, max *big.Int) (*crypto.BroadcastResult, error) {
	set, rejected, err := h.GenerateBroadcast(message, e, e, min, max)
	if err != nil {
		return nil, err
	}

	plaintext, err := h.Recover(set, e)
	if err != nil {
		return nil, err
	}

	h.logger.Info("Hastad broadcast attack recovered the plaintext from ", len(set), " ciphertexts with e = ", e)
	return &crypto.BroadcastResult{Plaintext: plaintext, Exponent: e, Ciphertexts: set, Rejected: rejected}, nil
}
