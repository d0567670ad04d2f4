package repository

import (
	"errors"

	"github.com/tradedeck-server/internal/models"
	"gorm.io/gorm"
)

// MetricsRepository handles performance metrics data access. Rows are
// written by the hosted aggregation job; this surface only reads them.
type MetricsRepository struct {
	db *gorm.DB
}

// NewMetricsRepository creates a new MetricsRepository
func NewMetricsRepository(db *gorm.DB) *MetricsRepository {
	return &MetricsRepository{db: db}
}

// GetByUserIDAndDate retrieves the metrics row for a user on a given date.
// An absent row returns (nil, nil): the dashboard treats a missing day as
// zeroes, not as a failure.
func (r *MetricsRepository) GetByUserIDAndDate(userID uint, date string) (*models.PerformanceMetrics, error) {
	var metrics models.PerformanceMetrics
	result := r.db.Where("user_id = ? AND date = ?", userID, date).First(&metrics)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &metrics, nil
}

// GetByUserID retrieves all metrics rows for a user, newest date first
func (r *MetricsRepository) GetByUserID(userID uint) ([]models.PerformanceMetrics, error) {
	var metrics []models.PerformanceMetrics
	result := r.db.Where("user_id = ?", userID).Order("date DESC").Find(&metrics)
	if result.Error != nil {
		return nil, result.Error
	}
	return metrics, nil
}
