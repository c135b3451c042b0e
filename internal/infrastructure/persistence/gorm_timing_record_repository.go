package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/MGTheTrain/rsa-toolkit/internal/domain/benchmarks"
	"github.com/MGTheTrain/rsa-toolkit/internal/infrastructure/persistence/models"
	"github.com/MGTheTrain/rsa-toolkit/internal/pkg/logger"

	"gorm.io/gorm"
)

type gormTimingRecordRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormTimingRecordRepository creates a new GORM-based TimingRecordRepository implementation
func NewGormTimingRecordRepository(db *gorm.DB, logger logger.Logger) (benchmarks.TimingRecordRepository, error) {
	if db == nil {
		return nil, errors.New("database connection cannot be nil")
	}
	return &gormTimingRecordRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormTimingRecordRepository) Create(ctx context.Context, record *benchmarks.TimingRecord) error {
	if err := record.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.TimingRecordModel{}
	model.FromDomain(record)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create timing record: %w", err)
	}

	r.logger.Debug("Created timing record with id ", record.ID)
	return nil
}

func (r *gormTimingRecordRepository) List(ctx context.Context, query *benchmarks.TimingRecordQuery) ([]*benchmarks.TimingRecord, error) {
	if query == nil {
		query = benchmarks.NewTimingRecordQuery()
	}
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query parameters: %w", err)
	}

	var modelList []*models.TimingRecordModel
	dbQuery := r.db.WithContext(ctx).Model(&models.TimingRecordModel{})

	if query.RunID != "" {
		dbQuery = dbQuery.Where("run_id = ?", query.RunID)
	}
	if query.Variant != "" {
		dbQuery = dbQuery.Where("variant = ?", query.Variant)
	}
	if query.Operation != "" {
		dbQuery = dbQuery.Where("operation = ?", query.Operation)
	}

	if query.SortBy != "" {
		order := query.SortOrder
		if order == "" {
			order = "asc"
		}
		dbQuery = dbQuery.Order(fmt.Sprintf("%s %s", query.SortBy, order))
	} else {
		dbQuery = dbQuery.Order("date_time_created asc").Order("min_bits asc")
	}

	if query.Limit > 0 {
		dbQuery = dbQuery.Limit(query.Limit)
	}
	if query.Offset > 0 {
		dbQuery = dbQuery.Offset(query.Offset)
	}

	if err := dbQuery.Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch timing records: %w", err)
	}

	domainList := make([]*benchmarks.TimingRecord, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}

	return domainList, nil
}

func (r *gormTimingRecordRepository) GetByID(ctx context.Context, recordID string) (*benchmarks.TimingRecord, error) {
	var model models.TimingRecordModel
	if err := r.db.WithContext(ctx).Where("id = ?", recordID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", benchmarks.ErrRecordNotFound, recordID)
		}
		return nil, fmt.Errorf("failed to fetch timing record: %w", err)
	}
	return model.ToDomain(), nil
}

func (r *gormTimingRecordRepository) DeleteByRunID(ctx context.Context, runID string) error {
	result := r.db.WithContext(ctx).Where("run_id = ?", runID).Delete(&models.TimingRecordModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete timing records: %w", result.Error)
	}

	r.logger.Info("Deleted ", result.RowsAffected, " timing records of run ", runID)
	return nil
}
