package app

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/MGTheTrain/rsa-toolkit/internal/domain/benchmarks"
	"github.com/MGTheTrain/rsa-toolkit/internal/domain/crypto"
	"github.com/MGTheTrain/rsa-toolkit/internal/domain/cryptoalg"
	"github.com/MGTheTrain/rsa-toolkit/internal/pkg/logger"
	"github.com/MGTheTrain/rsa-toolkit/internal/pkg/numtheory"

	"github.com/google/uuid"
	"github.com/montanaflynn/stats"
)

var variants = []crypto.TotientVariant{crypto.TotientEuler, crypto.TotientCarmichael}

// benchmarkService implements the BenchmarkService interface
type benchmarkService struct {
	rsaProcessor cryptoalg.RSAProcessor
	primes       numtheory.PrimeSource
	repo         benchmarks.TimingRecordRepository
	exporter     benchmarks.ReportExporter
	logger       logger.Logger
}

// NewBenchmarkService creates a new benchmarkService instance. exporter may be nil when runs are never exported.
func NewBenchmarkService(
	rsaProcessor cryptoalg.RSAProcessor,
	primes numtheory.PrimeSource,
	repo benchmarks.TimingRecordRepository,
	exporter benchmarks.ReportExporter,
	logger logger.Logger,
) (benchmarks.BenchmarkService, error) {
	if rsaProcessor == nil || primes == nil || repo == nil {
		return nil, errors.New("rsa processor, prime source and repository are required")
	}
	return &benchmarkService{
		rsaProcessor: rsaProcessor,
		primes:       primes,
		repo:         repo,
		exporter:     exporter,
		logger:       logger,
	}, nil
}

// Run times prime sampling and, for each totient variant, key generation, encryption,
// decryption and CRT decryption over every bit window of the request.
func (s *benchmarkService) Run(ctx context.Context, req *benchmarks.BenchmarkRequest) (*benchmarks.BenchmarkRun, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid benchmark request: %w", err)
	}
	if req.CSVPath != "" && s.exporter == nil {
		return nil, errors.New("no report exporter configured")
	}

	run := &benchmarks.BenchmarkRun{ID: uuid.NewString(), Request: *req}
	for _, size := range req.Windows() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		s.logger.Info("Timing primes of ", size, " to ", size+req.Step, " bits")

		records, err := s.timeWindow(run.ID, size, size+req.Step, req.Repetitions)
		if err != nil {
			return nil, fmt.Errorf("window %d-%d: %w", size, size+req.Step, err)
		}
		run.Records = append(run.Records, records...)
	}

	for _, record := range run.Records {
		if err := s.repo.Create(ctx, record); err != nil {
			return nil, fmt.Errorf("failed to store timing record: %w", err)
		}
	}

	if req.CSVPath != "" {
		if err := s.exporter.Export(run, req.CSVPath); err != nil {
			return nil, fmt.Errorf("failed to export benchmark run: %w", err)
		}
	}

	s.logger.Info("Finished benchmark run ", run.ID, " with ", len(run.Records), " records")
	return run, nil
}

// List retrieves stored timing records matching the query
func (s *benchmarkService) List(ctx context.Context, query *benchmarks.TimingRecordQuery) ([]*benchmarks.TimingRecord, error) {
	records, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list timing records: %w", err)
	}
	return records, nil
}

func (s *benchmarkService) timeWindow(runID string, lo, hi, repetitions int) ([]*benchmarks.TimingRecord, error) {
	min := new(big.Int).Lsh(big.NewInt(1), uint(lo))
	max := new(big.Int).Lsh(big.NewInt(1), uint(hi))

	var records []*benchmarks.TimingRecord
	add := func(variant crypto.TotientVariant, operation string, samples []float64) error {
		record, err := newTimingRecord(runID, lo, hi, string(variant), operation, samples)
		if err != nil {
			return err
		}
		records = append(records, record)
		return nil
	}

	var p, q *big.Int
	samples, err := measure(repetitions, func() error {
		var err error
		p, q, err = numtheory.SamplePrimes(s.primes, min, max)
		return err
	})
	if err != nil {
		return nil, err
	}
	if err := add("", benchmarks.OperationPrimeGeneration, samples); err != nil {
		return nil, err
	}

	// below 2^lo and therefore below n = p*q
	message, err := rand.Int(rand.Reader, min)
	if err != nil {
		return nil, fmt.Errorf("failed to draw message: %w", err)
	}

	for _, variant := range variants {
		var keyPair *crypto.KeyPair
		samples, err := measure(repetitions, func() error {
			var err error
			keyPair, err = s.rsaProcessor.GenerateKeysFromPrimes(p, q, crypto.KeyGenOptions{Variant: variant})
			return err
		})
		if err != nil {
			return nil, err
		}
		if err := add(variant, benchmarks.OperationKeyGeneration, samples); err != nil {
			return nil, err
		}

		var ciphertext *big.Int
		samples, err = measure(repetitions, func() error {
			var err error
			ciphertext, err = s.rsaProcessor.Encrypt(message, keyPair.Public)
			return err
		})
		if err != nil {
			return nil, err
		}
		if err := add(variant, benchmarks.OperationEncryption, samples); err != nil {
			return nil, err
		}

		decryptions := []struct {
			operation string
			decrypt   func(*big.Int, *crypto.PrivateKey) (*big.Int, error)
		}{
			{benchmarks.OperationDecryption, s.rsaProcessor.Decrypt},
			{benchmarks.OperationCRTDecryption, s.rsaProcessor.DecryptCRT},
		}
		for _, d := range decryptions {
			samples, err := measure(repetitions, func() error {
				m, err := d.decrypt(ciphertext, keyPair.Private)
				if err != nil {
					return err
				}
				if m.Cmp(message) != 0 {
					s.logger.Error("Broken ", d.operation, " under the ", string(variant), " totient: got ", m, ", expected ", message)
					return benchmarks.ErrRoundTripFailed
				}
				return nil
			})
			if err != nil {
				return nil, err
			}
			if err := add(variant, d.operation, samples); err != nil {
				return nil, err
			}
		}
	}
	return records, nil
}

// measure runs fn repetitions times and returns the wall clock duration of each run in seconds
func measure(repetitions int, fn func() error) ([]float64, error) {
	samples := make([]float64, 0, repetitions)
	for i := 0; i < repetitions; i++ {
		start := time.Now()
		if err := fn(); err != nil {
			return nil, err
		}
		samples = append(samples, time.Since(start).Seconds())
	}
	return samples, nil
}

func newTimingRecord(runID string, lo, hi int, variant, operation string, samples []float64) (*benchmarks.TimingRecord, error) {
	data := stats.Float64Data(samples)

	mean, err := data.Mean()
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate %s timings: %w", operation, err)
	}
	median, err := data.Median()
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate %s timings: %w", operation, err)
	}
	stdDev, err := data.StandardDeviation()
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate %s timings: %w", operation, err)
	}
	fastest, err := data.Min()
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate %s timings: %w", operation, err)
	}
	slowest, err := data.Max()
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate %s timings: %w", operation, err)
	}

	return &benchmarks.TimingRecord{
		ID:              uuid.NewString(),
		RunID:           runID,
		MinBits:         lo,
		MaxBits:         hi,
		Variant:         variant,
		Operation:       operation,
		Repetitions:     len(samples),
		MeanSeconds:     mean,
		MedianSeconds:   median,
		StdDevSeconds:   stdDev,
		MinSeconds:      fastest,
		MaxSeconds:      slowest,
		DateTimeCreated: time.Now(),
	}, nil
}
