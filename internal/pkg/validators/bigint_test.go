//go:build unit
// +build unit

package validators

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rangeInput struct {
	Min string `validate:"required,bigint"`
	Max string `validate:"required,bigint,gtbigfield=Min"`
}

type closedRangeInput struct {
	Min string `validate:"required,bigint"`
	Max string `validate:"required,bigint,gtebigfield=Min"`
}

func newValidator(t *testing.T) *validator.Validate {
	t.Helper()
	v := validator.New()
	require.NoError(t, Register(v))
	return v
}

func TestBigIntValidations(t *testing.T) {
	v := newValidator(t)

	tests := []struct {
		name  string
		input rangeInput
		valid bool
	}{
		{"small range", rangeInput{Min: "100", Max: "1000"}, true},
		{"huge range", rangeInput{Min: "340282366920938463463374607431768211456", Max: "340282366920938463463374607431768211457"}, true},
		{"equal bounds", rangeInput{Min: "100", Max: "100"}, false},
		{"inverted bounds", rangeInput{Min: "1000", Max: "100"}, false},
		{"negative", rangeInput{Min: "-5", Max: "100"}, false},
		{"not a number", rangeInput{Min: "abc", Max: "100"}, false},
		{"hex is rejected", rangeInput{Min: "0x10", Max: "100"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.input)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestGtBigFieldValidation_UnknownField(t *testing.T) {
	v := newValidator(t)

	type broken struct {
		Max string `validate:"gtbigfield=Missing"`
	}
	assert.Error(t, v.Struct(broken{Max: "10"}))
}

func TestGteBigFieldValidation(t *testing.T) {
	v := newValidator(t)

	tests := []struct {
		name  string
		input closedRangeInput
		valid bool
	}{
		{"single point", closedRangeInput{Min: "29", Max: "29"}, true},
		{"wider range", closedRangeInput{Min: "29", Max: "31"}, true},
		{"inverted bounds", closedRangeInput{Min: "31", Max: "29"}, false},
		{"huge single point", closedRangeInput{Min: "340282366920938463463374607431768211457", Max: "340282366920938463463374607431768211457"}, true},
		{"negative bound", closedRangeInput{Min: "-1", Max: "29"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.input)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
