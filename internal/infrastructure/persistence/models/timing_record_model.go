package models

import (
	"time"

	"github.com/MGTheTrain/rsa-toolkit/internal/domain/benchmarks"
)

// TimingRecordModel is the GORM database model for timing records
type TimingRecordModel struct {
	ID              string    `gorm:"primaryKey;type:uuid"`
	RunID           string    `gorm:"not null;index;type:uuid"`
	MinBits         int       `gorm:"not null"`
	MaxBits         int       `gorm:"not null"`
	Variant         string    `gorm:"type:varchar(20)"`
	Operation       string    `gorm:"not null;index;type:varchar(30)"`
	Repetitions     int       `gorm:"not null"`
	MeanSeconds     float64   `gorm:"not null"`
	MedianSeconds   float64   `gorm:"not null"`
	StdDevSeconds   float64   `gorm:"not null"`
	MinSeconds      float64   `gorm:"not null"`
	MaxSeconds      float64   `gorm:"not null"`
	DateTimeCreated time.Time `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (TimingRecordModel) TableName() string {
	return "timing_records"
}

// ToDomain converts GORM model to domain entity
func (m *TimingRecordModel) ToDomain() *benchmarks.TimingRecord {
	return &benchmarks.TimingRecord{
		ID:              m.ID,
		RunID:           m.RunID,
		MinBits:         m.MinBits,
		MaxBits:         m.MaxBits,
		Variant:         m.Variant,
		Operation:       m.Operation,
		Repetitions:     m.Repetitions,
		MeanSeconds:     m.MeanSeconds,
		MedianSeconds:   m.MedianSeconds,
		StdDevSeconds:   m.StdDevSeconds,
		MinSeconds:      m.MinSeconds,
		MaxSeconds:      m.MaxSeconds,
		DateTimeCreated: m.DateTimeCreated,
	}
}

// FromDomain converts domain entity to GORM model
func (m *TimingRecordModel) FromDomain(r *benchmarks.TimingRecord) {
	m.ID = r.ID
	m.RunID = r.RunID
	m.MinBits = r.MinBits
	m.MaxBits = r.MaxBits
	m.Variant = r.Variant
	m.Operation = r.Operation
	m.Repetitions = r.Repetitions
	m.MeanSeconds = r.MeanSeconds
	m.MedianSeconds = r.MedianSeconds
	m.StdDevSeconds = r.StdDevSeconds
	m.MinSeconds = r.MinSeconds
	m.MaxSeconds = r.MaxSeconds
	m.DateTimeCreated = r.DateTimeCreated
}
