package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Prime source strategy constants
const (
	PrimeSourceAuto   = "auto"
	PrimeSourceSieve  = "sieve"
	PrimeSourceRandom = "random"
)

// PrimeSourceSettings selects how primes are drawn from a range
type PrimeSourceSettings struct {
	Strategy string `mapstructure:"strategy" validate:"required,oneof=auto sieve random"`
	// SieveMaxWidth is the widest range the sieve enumerates; auto switches to random sampling above it.
	SieveMaxWidth int64 `mapstructure:"sieve_max_width" validate:"min=1,max=1073741824"`
	// MaxSampleAttempts bounds the draws of the random source per requested prime.
	MaxSampleAttempts int `mapstructure:"max_sample_attempts" validate:"min=1"`
}

// Validate checks that all fields in PrimeSourceSettings are valid
func (s *PrimeSourceSettings) Validate() error {
	if err := validator.New().Struct(s); err != nil {
		return fmt.Errorf("validation failed for PrimeSourceSettings: %w", err)
	}
	return nil
}

// CipherSettings controls input checking of the cipher
type CipherSettings struct {
	// Lenient reduces out of range messages modulo n with a warning instead of failing.
	Lenient bool `mapstructure:"lenient"`
}

// AttackSettings holds the retry limits of key generation and both attacks
type AttackSettings struct {
	MaxExponentAttempts  int `mapstructure:"max_exponent_attempts" validate:"min=1"`
	HastadMaxKeyAttempts int `mapstructure:"hastad_max_key_attempts" validate:"min=1"`
	WienerMaxKeyAttempts int `mapstructure:"wiener_max_key_attempts" validate:"min=1"`
	WienerMaxDAttempts   int `mapstructure:"wiener_max_d_attempts" validate:"min=1"`
	WienerMaxAttacks     int `mapstructure:"wiener_max_attacks" validate:"min=1"`
}

// Validate checks that all fields in AttackSettings are valid
func (s *AttackSettings) Validate() error {
	if err := validator.New().Struct(s); err != nil {
		return fmt.Errorf("validation failed for AttackSettings: %w", err)
	}
	return nil
}

// BenchmarkSettings holds the defaults of a timing run
type BenchmarkSettings struct {
	MinBits     int    `mapstructure:"min_bits" validate:"min=4,max=4096"`
	MaxBits     int    `mapstructure:"max_bits" validate:"gtfield=MinBits,max=4096"`
	Step        int    `mapstructure:"step" validate:"min=1"`
	Repetitions int    `mapstructure:"repetitions" validate:"min=1,max=10000"`
	CSVPath     string `mapstructure:"csv_path"`
}

// Validate checks that all fields in BenchmarkSettings are valid
func (s *BenchmarkSettings) Validate() error {
	if err := validator.New().Struct(s); err != nil {
		return fmt.Errorf("validation failed for BenchmarkSettings: %w", err)
	}
	return nil
}
