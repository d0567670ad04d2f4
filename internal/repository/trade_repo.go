package repository

import (
	"github.com/tradedeck-server/internal/models"
	"gorm.io/gorm"
)

// TradeRepository handles trade data access. Trades are produced by the
// hosted execution system; this surface only reads them.
type TradeRepository struct {
	db *gorm.DB
}

// NewTradeRepository creates a new TradeRepository
func NewTradeRepository(db *gorm.DB) *TradeRepository {
	return &TradeRepository{db: db}
}

// GetRecentByUserID retrieves the most recent trades for a user, newest
// entry first. An empty store yields an empty slice, never an error.
func (r *TradeRepository) GetRecentByUserID(userID uint, limit int) ([]models.Trade, error) {
	var trades []models.Trade
	result := r.db.Where("user_id = ?", userID).
		Order("entry_time DESC").
		Limit(limit).
		Find(&trades)
	if result.Error != nil {
		return nil, result.Error
	}
	return trades, nil
}

// GetByUserIDPaginated retrieves trades for a user with pagination
func (r *TradeRepository) GetByUserIDPaginated(userID uint, page, pageSize int) ([]models.Trade, int64, error) {
	var trades []models.Trade
	var total int64

	if err := r.db.Model(&models.Trade{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	result := r.db.Where("user_id = ?", userID).
		Order("entry_time DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&trades)

	return trades, total, result.Error
}
