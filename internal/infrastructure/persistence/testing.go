//go:build integration
// +build integration

package persistence

import (
	"strings"
	"testing"
	"time"

	"github.com/MGTheTrain/rsa-toolkit/internal/domain/benchmarks"
	"github.com/MGTheTrain/rsa-toolkit/internal/pkg/config"
	"github.com/MGTheTrain/rsa-toolkit/internal/pkg/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// TestContext holds test database and repositories
type TestContext struct {
	DB               *gorm.DB
	TimingRecordRepo benchmarks.TimingRecordRepository
}

// SetupTestDB initializes a migrated test database with automatic cleanup
func SetupTestDB(t *testing.T, dbType string) *TestContext {
	t.Helper()

	var settings config.DatabaseSettings
	cleanupFunc := func() {}

	switch dbType {
	case config.SqliteDbType:
		settings = config.DatabaseSettings{
			Type: config.SqliteDbType,
			DSN:  ":memory:",
		}

	case config.PostgresDbType:
		uniqueDBName := "test_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
		settings = config.DatabaseSettings{
			Type:   config.PostgresDbType,
			DSN:    "user=postgres password=postgres host=localhost port=5432 sslmode=disable",
			DBName: uniqueDBName,
		}
		cleanupFunc = func() {
			adminDSN := "user=postgres password=postgres host=localhost port=5432 dbname=postgres sslmode=disable"
			_ = DropDatabase(adminDSN, uniqueDBName)
		}

	default:
		t.Fatalf("Unsupported database type: %s", dbType)
	}

	db, err := NewDBConnection(settings)
	require.NoError(t, err, "Failed to create database connection")

	t.Cleanup(func() {
		_ = CloseDB(db)
		cleanupFunc()
	})

	repo, err := NewGormTimingRecordRepository(db, testutil.SetupTestLogger(t))
	require.NoError(t, err, "Failed to create timing record repository")

	return &TestContext{
		DB:               db,
		TimingRecordRepo: repo,
	}
}

// CreateTestRecord creates a timing record of one run with default values
func CreateTestRecord(t *testing.T, runID, variant, operation string, minBits int) *benchmarks.TimingRecord {
	t.Helper()

	if operation == benchmarks.OperationPrimeGeneration {
		variant = ""
	}
	return &benchmarks.TimingRecord{
		ID:              uuid.NewString(),
		RunID:           runID,
		MinBits:         minBits,
		MaxBits:         minBits + 4,
		Variant:         variant,
		Operation:       operation,
		Repetitions:     5,
		MeanSeconds:     float64(minBits) / 1000,
		MedianSeconds:   float64(minBits) / 1000,
		StdDevSeconds:   0,
		MinSeconds:      float64(minBits) / 1000,
		MaxSeconds:      float64(minBits) / 1000,
		DateTimeCreated: time.Now(),
	}
}
