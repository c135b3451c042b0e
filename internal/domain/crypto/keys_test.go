//go:build unit
// +build unit

package crypto

import (
	"bytes"
	"fmt"
	"log/slog"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func textbookPair(t *testing.T, variant TotientVariant, d int64) *KeyPair {
	t.Helper()
	pub, err := NewPublicKey(big.NewInt(17), big.NewInt(3233))
	require.NoError(t, err)
	priv, err := NewPrivateKey(big.NewInt(d), big.NewInt(61), big.NewInt(53))
	require.NoError(t, err)
	return &KeyPair{Public: pub, Private: priv, Variant: variant}
}

func TestNewPublicKey(t *testing.T) {
	tests := []struct {
		name    string
		e, n    *big.Int
		wantErr bool
	}{
		{"valid", big.NewInt(17), big.NewInt(3233), false},
		{"exponent one", big.NewInt(1), big.NewInt(3233), true},
		{"exponent equals modulus", big.NewInt(3233), big.NewInt(3233), true},
		{"nil modulus", big.NewInt(17), nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, err := NewPublicKey(tt.e, tt.n)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidKey)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 0, key.E().Cmp(tt.e))
			assert.Equal(t, 0, key.N().Cmp(tt.n))
		})
	}
}

func TestPublicKey_IsImmutable(t *testing.T) {
	e := big.NewInt(17)
	key, err := NewPublicKey(e, big.NewInt(3233))
	require.NoError(t, err)

	e.SetInt64(5)
	key.E().SetInt64(7)
	assert.Equal(t, int64(17), key.E().Int64())
}

func TestNewPrivateKey(t *testing.T) {
	key, err := NewPrivateKey(big.NewInt(2753), big.NewInt(61), big.NewInt(53))
	require.NoError(t, err)
	assert.Equal(t, int64(3233), key.N().Int64())
	assert.Equal(t, int64(61), key.P().Int64())
	assert.Equal(t, int64(53), key.Q().Int64())

	_, err = NewPrivateKey(big.NewInt(2753), big.NewInt(61), big.NewInt(61))
	assert.ErrorIs(t, err, ErrInvalidKey, "equal primes")

	_, err = NewPrivateKey(big.NewInt(2753), big.NewInt(60), big.NewInt(53))
	assert.ErrorIs(t, err, ErrInvalidKey, "composite factor")

	_, err = NewPrivateKey(big.NewInt(0), big.NewInt(61), big.NewInt(53))
	assert.ErrorIs(t, err, ErrInvalidKey, "zero exponent")

	_, err = NewPrivateKey(big.NewInt(4000), big.NewInt(61), big.NewInt(53))
	assert.ErrorIs(t, err, ErrInvalidKey, "exponent above modulus")
}

func TestPrivateKey_Redaction(t *testing.T) {
	key, err := NewPrivateKey(big.NewInt(2753), big.NewInt(61), big.NewInt(53))
	require.NoError(t, err)

	s := fmt.Sprint(key)
	assert.Contains(t, s, "3233")
	assert.NotContains(t, s, "2753")
	assert.NotContains(t, s, "61")

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey && len(groups) == 0 {
				return slog.Attr{}
			}
			return a
		},
	}))
	logger.Info("generated", "key", key)
	assert.Contains(t, buf.String(), Redacted)
	assert.NotContains(t, buf.String(), "2753")
}

func TestKeyPair_Validate(t *testing.T) {
	t.Run("euler", func(t *testing.T) {
		kp := textbookPair(t, TotientEuler, 2753)
		assert.NoError(t, kp.Validate())
		assert.Equal(t, int64(3120), kp.Totient().Int64())
	})

	t.Run("carmichael", func(t *testing.T) {
		kp := textbookPair(t, TotientCarmichael, 413)
		assert.NoError(t, kp.Validate())
		assert.Equal(t, int64(780), kp.Totient().Int64())
	})

	t.Run("unset variant defaults to euler", func(t *testing.T) {
		kp := textbookPair(t, "", 2753)
		assert.NoError(t, kp.Validate())
	})

	t.Run("wrong private exponent", func(t *testing.T) {
		kp := textbookPair(t, TotientEuler, 2751)
		assert.ErrorIs(t, kp.Validate(), ErrInvalidKey)
	})

	t.Run("exponent sharing a factor with the totient", func(t *testing.T) {
		pub, err := NewPublicKey(big.NewInt(15), big.NewInt(3233))
		require.NoError(t, err)
		kp := textbookPair(t, TotientEuler, 2753)
		kp.Public = pub
		assert.ErrorIs(t, kp.Validate(), ErrInvalidExponent)
	})

	t.Run("modulus mismatch", func(t *testing.T) {
		pub, err := NewPublicKey(big.NewInt(17), big.NewInt(3127))
		require.NoError(t, err)
		kp := textbookPair(t, TotientEuler, 2753)
		kp.Public = pub
		assert.ErrorIs(t, kp.Validate(), ErrInvalidKey)
	})

	t.Run("unknown variant", func(t *testing.T) {
		kp := textbookPair(t, "fermat", 2753)
		assert.ErrorIs(t, kp.Validate(), ErrInvalidKey)
	})
}

func TestKeyPair_Equal(t *testing.T) {
	a := textbookPair(t, TotientEuler, 2753)
	b := textbookPair(t, TotientEuler, 2753)
	c := textbookPair(t, TotientCarmichael, 413)

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}
