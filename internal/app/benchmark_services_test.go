//go:build unit
// +build unit

package app

import (
	"context"
	"errors"
	"testing"

	"github.com/MGTheTrain/rsa-toolkit/internal/domain/benchmarks"
	"github.com/MGTheTrain/rsa-toolkit/internal/infrastructure/cryptography"
	"github.com/MGTheTrain/rsa-toolkit/internal/infrastructure/primes"
	"github.com/MGTheTrain/rsa-toolkit/internal/pkg/config"
	"github.com/MGTheTrain/rsa-toolkit/internal/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupBenchmarkService(t *testing.T, repo benchmarks.TimingRecordRepository, exporter benchmarks.ReportExporter) benchmarks.BenchmarkService {
	t.Helper()

	log := testutil.SetupTestLogger(t)
	source, err := primes.NewPrimeSource(config.PrimeSourceSettings{
		Strategy:          config.PrimeSourceAuto,
		SieveMaxWidth:     1 << 16,
		MaxSampleAttempts: 10000,
	})
	require.NoError(t, err)

	processor, err := cryptography.NewRSAProcessor(source, config.CipherSettings{}, log)
	require.NoError(t, err)

	service, err := NewBenchmarkService(processor, source, repo, exporter, log)
	require.NoError(t, err)
	return service
}

func TestBenchmarkService_Run(t *testing.T) {
	repo := new(MockTimingRecordRepository)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*benchmarks.TimingRecord")).Return(nil)

	service := setupBenchmarkService(t, repo, nil)

	req := &benchmarks.BenchmarkRequest{MinBits: 4, MaxBits: 12, Step: 4, Repetitions: 3}
	run, err := service.Run(context.Background(), req)
	require.NoError(t, err)

	// two windows, each with prime generation plus four operations per variant
	require.Len(t, run.Records, 2*9)
	repo.AssertNumberOfCalls(t, "Create", 18)

	perWindow := map[string]int{}
	for _, r := range run.Records {
		assert.NoError(t, r.Validate())
		assert.Equal(t, run.ID, r.RunID)
		assert.Equal(t, 3, r.Repetitions)
		assert.LessOrEqual(t, r.MinSeconds, r.MedianSeconds)
		assert.LessOrEqual(t, r.MedianSeconds, r.MaxSeconds)
		perWindow[r.Range()]++
	}
	assert.Equal(t, map[string]int{"4-8": 9, "8-12": 9}, perWindow)

	assert.Equal(t, benchmarks.OperationPrimeGeneration, run.Records[0].Operation)
	assert.Empty(t, run.Records[0].Variant)
	assert.Equal(t, "euler", run.Records[1].Variant)
	assert.Equal(t, "carmichael", run.Records[8].Variant)
	assert.Equal(t, benchmarks.OperationCRTDecryption, run.Records[8].Operation)
}

func TestBenchmarkService_Run_Export(t *testing.T) {
	repo := new(MockTimingRecordRepository)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	exporter := new(MockReportExporter)
	exporter.On("Export", mock.AnythingOfType("*benchmarks.BenchmarkRun"), "out/run.csv").Return(nil)

	service := setupBenchmarkService(t, repo, exporter)

	_, err := service.Run(context.Background(), &benchmarks.BenchmarkRequest{MinBits: 8, MaxBits: 9, Step: 1, Repetitions: 1, CSVPath: "out/run.csv"})
	require.NoError(t, err)
	exporter.AssertExpectations(t)
}

func TestBenchmarkService_Run_Errors(t *testing.T) {
	t.Run("invalid request", func(t *testing.T) {
		repo := new(MockTimingRecordRepository)
		service := setupBenchmarkService(t, repo, nil)

		_, err := service.Run(context.Background(), &benchmarks.BenchmarkRequest{MinBits: 8, MaxBits: 4, Step: 1, Repetitions: 1})
		assert.Error(t, err)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("csv path without exporter", func(t *testing.T) {
		service := setupBenchmarkService(t, new(MockTimingRecordRepository), nil)

		_, err := service.Run(context.Background(), &benchmarks.BenchmarkRequest{MinBits: 8, MaxBits: 9, Step: 1, Repetitions: 1, CSVPath: "run.csv"})
		assert.Error(t, err)
	})

	t.Run("repository failure", func(t *testing.T) {
		repo := new(MockTimingRecordRepository)
		repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("disk full"))
		service := setupBenchmarkService(t, repo, nil)

		_, err := service.Run(context.Background(), &benchmarks.BenchmarkRequest{MinBits: 8, MaxBits: 9, Step: 1, Repetitions: 1})
		assert.ErrorContains(t, err, "disk full")
	})

	t.Run("cancelled context", func(t *testing.T) {
		repo := new(MockTimingRecordRepository)
		service := setupBenchmarkService(t, repo, nil)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := service.Run(ctx, &benchmarks.BenchmarkRequest{MinBits: 8, MaxBits: 9, Step: 1, Repetitions: 1})
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestBenchmarkService_List(t *testing.T) {
	repo := new(MockTimingRecordRepository)
	query := &benchmarks.TimingRecordQuery{Operation: benchmarks.OperationEncryption}
	want := []*benchmarks.TimingRecord{{ID: "a"}}
	repo.On("List", mock.Anything, query).Return(want, nil)

	service := setupBenchmarkService(t, repo, nil)
	got, err := service.List(context.Background(), query)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	failing := new(MockTimingRecordRepository)
	failing.On("List", mock.Anything, mock.Anything).Return(nil, errors.New("boom"))
	service = setupBenchmarkService(t, failing, nil)
	_, err = service.List(context.Background(), nil)
	assert.Error(t, err)
}

func TestNewBenchmarkService_RequiresDependencies(t *testing.T) {
	_, err := NewBenchmarkService(nil, nil, nil, nil, testutil.SetupTestLogger(t))
	assert.Error(t, err)
}
