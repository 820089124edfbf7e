// Package store persists generated estimates. Estimates are immutable after
// creation and retrievable by their generated id.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"costpilot/server/internal/models"
)

// ErrEstimateNotFound is returned when no estimate carries the requested id.
var ErrEstimateNotFound = errors.New("estimate not found")

// estimateRecord is the storage row: the request and result are kept as JSON
// snapshots of what the engine produced at creation time.
type estimateRecord struct {
	ID          string `gorm:"primaryKey"`
	RequestJSON string
	ResultJSON  string
	CreatedAt   time.Time
}

func (estimateRecord) TableName() string {
	return "estimates"
}

type EstimateStore struct {
	db *gorm.DB
}

// NewEstimateStore opens the estimate database and migrates its schema.
func NewEstimateStore(dbPath string) (*EstimateStore, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open estimate store: %w", err)
	}
	return NewEstimateStoreWithDB(db)
}

// NewEstimateStoreWithDB wraps an existing gorm connection. Used by tests.
func NewEstimateStoreWithDB(db *gorm.DB) (*EstimateStore, error) {
	if err := db.AutoMigrate(&estimateRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate estimate schema: %w", err)
	}
	return &EstimateStore{db: db}, nil
}

// SaveEstimate assigns a fresh id and persists the request snapshot together
// with the computed result. Returns the stored estimate.
func (s *EstimateStore) SaveEstimate(req models.EstimateRequest, result models.EstimateResult) (*models.Estimate, error) {
	requestJSON, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request snapshot: %w", err)
	}
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	record := estimateRecord{
		ID:          uuid.NewString(),
		RequestJSON: string(requestJSON),
		ResultJSON:  string(resultJSON),
		CreatedAt:   time.Now().UTC(),
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&record).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to store estimate: %w", err)
	}

	return &models.Estimate{
		ID:        record.ID,
		Request:   req,
		Result:    result,
		CreatedAt: record.CreatedAt,
	}, nil
}

// GetEstimate fetches a stored estimate by id.
func (s *EstimateStore) GetEstimate(id string) (*models.Estimate, error) {
	var record estimateRecord
	err := s.db.First(&record, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrEstimateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load estimate: %w", err)
	}

	estimate := models.Estimate{
		ID:        record.ID,
		CreatedAt: record.CreatedAt,
	}
	if err := json.Unmarshal([]byte(record.RequestJSON), &estimate.Request); err != nil {
		return nil, fmt.Errorf("failed to decode request snapshot: %w", err)
	}
	if err := json.Unmarshal([]byte(record.ResultJSON), &estimate.Result); err != nil {
		return nil, fmt.Errorf("failed to decode result: %w", err)
	}
	return &estimate, nil
}
