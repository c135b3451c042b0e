//go:build unit
// +build unit

package app

import (
	"context"

	"github.com/MGTheTrain/rsa-toolkit/internal/domain/benchmarks"
	"github.com/stretchr/testify/mock"
)

// MockTimingRecordRepository is a mock implementation of TimingRecordRepository
type MockTimingRecordRepository struct {
	mock.Mock
}

func (m *MockTimingRecordRepository) Create(ctx context.Context, record *benchmarks.TimingRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockTimingRecordRepository) List(ctx context.Context, query *benchmarks.TimingRecordQuery) ([]*benchmarks.TimingRecord, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*benchmarks.TimingRecord), args.Error(1)
}

func (m *MockTimingRecordRepository) GetByID(ctx context.Context, recordID string) (*benchmarks.TimingRecord, error) {
	args := m.Called(ctx, recordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*benchmarks.TimingRecord), args.Error(1)
}

func (m *MockTimingRecordRepository) DeleteByRunID(ctx context.Context, runID string) error {
	args := m.Called(ctx, runID)
	return args.Error(0)
}

// MockReportExporter is a mock implementation of ReportExporter
type MockReportExporter struct {
	mock.Mock
}

func (m *MockReportExporter) Export(run *benchmarks.BenchmarkRun, path string) error {
	args := m.Called(run, path)
	return args.Error(0)
}
