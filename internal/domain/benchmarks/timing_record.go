package benchmarks

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Operations whose running time is recorded
const (
	OperationPrimeGeneration = "prime_generation"
	OperationKeyGeneration   = "key_generation"
	OperationEncryption      = "encryption"
	OperationDecryption      = "decryption"
	OperationCRTDecryption   = "crt_decryption"
)

// TimingRecord aggregates the repeated timings of one operation over one prime bit window.
// Durations are stored in seconds.
type TimingRecord struct {
	ID    string `validate:"required,uuid4"`
	RunID string `validate:"required,uuid4"`
	// Primes were drawn from [2^MinBits, 2^MaxBits].
	MinBits int `validate:"min=1"`
	MaxBits int `validate:"gtfield=MinBits"`
	// Variant is empty for prime generation, which does not depend on the totient.
	Variant         string    `validate:"omitempty,oneof=euler carmichael"`
	Operation       string    `validate:"required,oneof=prime_generation key_generation encryption decryption crt_decryption"`
	Repetitions     int       `validate:"min=1"`
	MeanSeconds     float64   `validate:"min=0"`
	MedianSeconds   float64   `validate:"min=0"`
	StdDevSeconds   float64   `validate:"min=0"`
	MinSeconds      float64   `validate:"min=0"`
	MaxSeconds      float64   `validate:"gtefield=MinSeconds"`
	DateTimeCreated time.Time `validate:"required"`
}

// Range returns the bit window as "min-max"
func (r *TimingRecord) Range() string {
	return fmt.Sprintf("%d-%d", r.MinBits, r.MaxBits)
}

// Validate for validating TimingRecord struct
func (r *TimingRecord) Validate() error {
	return validateStruct(r)
}

// TimingRecordQuery filters and orders stored timing records
type TimingRecordQuery struct {
	RunID     string `validate:"omitempty,uuid4"`
	Variant   string `validate:"omitempty,oneof=euler carmichael"`
	Operation string `validate:"omitempty,oneof=prime_generation key_generation encryption decryption crt_decryption"`
	SortBy    string `validate:"omitempty,oneof=date_time_created min_bits mean_seconds"`
	SortOrder string `validate:"omitempty,oneof=asc desc"`
	Limit     int    `validate:"omitempty,min=1"`
	Offset    int    `validate:"omitempty,min=0"`
}

// NewTimingRecordQuery returns a query with no filters
func NewTimingRecordQuery() *TimingRecordQuery {
	return &TimingRecordQuery{}
}

// Validate for validating TimingRecordQuery struct
func (q *TimingRecordQuery) Validate() error {
	return validateStruct(q)
}

// BenchmarkRequest describes one timing run. Windows start at MinBits and advance by Step
// while below MaxBits, each spanning [2^s, 2^(s+Step)].
type BenchmarkRequest struct {
	MinBits     int `validate:"min=4,max=4096"`
	MaxBits     int `validate:"gtfield=MinBits,max=4096"`
	Step        int `validate:"min=1"`
	Repetitions int `validate:"min=1,max=10000"`
	// CSVPath is optional. When set the run is also exported there.
	CSVPath string
}

// Validate for validating BenchmarkRequest struct
func (r *BenchmarkRequest) Validate() error {
	return validateStruct(r)
}

// Windows returns the lower bit size of every window in order
func (r *BenchmarkRequest) Windows() []int {
	var sizes []int
	for s := r.MinBits; s < r.MaxBits; s += r.Step {
		sizes = append(sizes, s)
	}
	return sizes
}

// BenchmarkRun is the outcome of one timing run
type BenchmarkRun struct {
	ID      string
	Request BenchmarkRequest
	Records []*TimingRecord
}

func validateStruct(s interface{}) error {
	validate := validator.New()

	err := validate.Struct(s)
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
