package benchmarks

import (
	"context"
	"errors"
)

var (
	// ErrRoundTripFailed is returned when a timed decryption does not give back the encrypted message.
	ErrRoundTripFailed = errors.New("decryption did not recover the message")
	// ErrRecordNotFound is returned by repositories for an unknown record id.
	ErrRecordNotFound = errors.New("timing record not found")
)

// BenchmarkService times the RSA primitives over growing prime sizes.
type BenchmarkService interface {
	// Run times every window of the request, persists the records and exports them when a CSV path is set.
	Run(ctx context.Context, req *BenchmarkRequest) (*BenchmarkRun, error)

	// List retrieves stored timing records matching the query.
	List(ctx context.Context, query *TimingRecordQuery) ([]*TimingRecord, error)
}

// TimingRecordRepository defines the interface for TimingRecord-related operations
type TimingRecordRepository interface {
	Create(ctx context.Context, record *TimingRecord) error
	List(ctx context.Context, query *TimingRecordQuery) ([]*TimingRecord, error)
	GetByID(ctx context.Context, recordID string) (*TimingRecord, error)
	DeleteByRunID(ctx context.Context, runID string) error
}

// ReportExporter writes a finished run to a file.
type ReportExporter interface {
	Export(run *BenchmarkRun, path string) error
}
