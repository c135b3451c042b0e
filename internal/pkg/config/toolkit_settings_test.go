//go:build unit
// +build unit

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrimeSourceSettingsValidation(t *testing.T) {
	tests := []struct {
		name     string
		settings PrimeSourceSettings
		wantErr  bool
	}{
		{"auto", PrimeSourceSettings{Strategy: PrimeSourceAuto, SieveMaxWidth: 1 << 20, MaxSampleAttempts: 100}, false},
		{"random", PrimeSourceSettings{Strategy: PrimeSourceRandom, SieveMaxWidth: 1, MaxSampleAttempts: 1}, false},
		{"unknown strategy", PrimeSourceSettings{Strategy: "oracle", SieveMaxWidth: 1 << 20, MaxSampleAttempts: 100}, true},
		{"sieve too wide", PrimeSourceSettings{Strategy: PrimeSourceSieve, SieveMaxWidth: 1 << 31, MaxSampleAttempts: 100}, true},
		{"no attempts", PrimeSourceSettings{Strategy: PrimeSourceSieve, SieveMaxWidth: 1 << 20}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.settings.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBenchmarkSettingsValidation(t *testing.T) {
	valid := BenchmarkSettings{MinBits: 8, MaxBits: 32, Step: 4, Repetitions: 5}
	assert.NoError(t, valid.Validate())

	empty := valid
	empty.MaxBits = empty.MinBits
	assert.Error(t, empty.Validate())

	tooSmall := valid
	tooSmall.MinBits = 2
	assert.Error(t, tooSmall.Validate())

	noStep := valid
	noStep.Step = 0
	assert.Error(t, noStep.Validate())
}
