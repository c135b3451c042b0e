//go:build unit
// +build unit

package crypto

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyGenRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     KeyGenRequest
		wantErr bool
	}{
		{"valid euler", KeyGenRequest{Min: "100", Max: "1000", Variant: "euler"}, false},
		{"valid carmichael with e", KeyGenRequest{Min: "100", Max: "1000", E: "65537", Variant: "carmichael"}, false},
		{"missing max", KeyGenRequest{Min: "100", Variant: "euler"}, true},
		{"single point range", KeyGenRequest{Min: "1000", Max: "1000", Variant: "euler"}, false},
		{"max below min", KeyGenRequest{Min: "1000", Max: "999", Variant: "euler"}, true},
		{"bad exponent", KeyGenRequest{Min: "100", Max: "1000", E: "three", Variant: "euler"}, true},
		{"unknown variant", KeyGenRequest{Min: "100", Max: "1000", Variant: "fermat"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestKeyGenRequest_ToOptions(t *testing.T) {
	req := KeyGenRequest{Min: "100", Max: "340282366920938463463374607431768211456", E: "3", Variant: "carmichael"}

	min, max, opts, err := req.ToOptions(50)
	require.NoError(t, err)
	assert.Equal(t, int64(100), min.Int64())
	assert.Equal(t, 129, max.BitLen())
	assert.Equal(t, TotientCarmichael, opts.Variant)
	assert.Equal(t, int64(3), opts.FixedE.Int64())
	assert.Equal(t, 50, opts.ExponentAttempts())

	_, _, _, err = (&KeyGenRequest{Min: "x"}).ToOptions(0)
	assert.Error(t, err)
}

func TestKeyGenOptions_DefaultAttempts(t *testing.T) {
	assert.Equal(t, DefaultMaxExponentAttempts, KeyGenOptions{}.ExponentAttempts())
}

func TestCiphertextSet(t *testing.T) {
	k1, err := NewPublicKey(big.NewInt(3), big.NewInt(55))
	require.NoError(t, err)
	k2, err := NewPublicKey(big.NewInt(3), big.NewInt(77))
	require.NoError(t, err)

	set := CiphertextSet{
		{Value: big.NewInt(8), Key: k1},
		{Value: big.NewInt(50), Key: k2},
	}
	assert.Equal(t, []*big.Int{big.NewInt(8), big.NewInt(50)}, set.Residues())
	assert.Equal(t, []*big.Int{big.NewInt(55), big.NewInt(77)}, set.Moduli())
}

func TestWienerCandidate_IsValid(t *testing.T) {
	n := big.NewInt(90581)

	assert.True(t, (&WienerCandidate{P: big.NewInt(379), Q: big.NewInt(239), D: big.NewInt(5)}).IsValid(n))
	assert.False(t, (&WienerCandidate{P: big.NewInt(379), Q: big.NewInt(241), D: big.NewInt(5)}).IsValid(n))
	assert.False(t, (&WienerCandidate{P: big.NewInt(-379), Q: big.NewInt(-239), D: big.NewInt(5)}).IsValid(n))
	assert.False(t, (&WienerCandidate{P: big.NewInt(379)}).IsValid(n))
}

func TestTotientVariant_IsValid(t *testing.T) {
	assert.True(t, TotientEuler.IsValid())
	assert.True(t, TotientCarmichael.IsValid())
	assert.False(t, TotientVariant("").IsValid())
}
