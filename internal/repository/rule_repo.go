package repository

import (
	"errors"

	"github.com/tradedeck-server/internal/models"
	"gorm.io/gorm"
)

var (
	ErrRuleNotFound = errors.New("trading rule not found")
)

// RuleRepository handles trading rule data access
type RuleRepository struct {
	db *gorm.DB
}

// NewRuleRepository creates a new RuleRepository
func NewRuleRepository(db *gorm.DB) *RuleRepository {
	return &RuleRepository{db: db}
}

// Create creates a new trading rule
func (r *RuleRepository) Create(rule *models.TradingRule) error {
	return r.db.Create(rule).Error
}

// GetByIDAndUserID retrieves a rule by ID scoped to its owner
func (r *RuleRepository) GetByIDAndUserID(id, userID uint) (*models.TradingRule, error) {
	var rule models.TradingRule
	result := r.db.Where("id = ? AND user_id = ?", id, userID).First(&rule)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrRuleNotFound
		}
		return nil, result.Error
	}
	return &rule, nil
}

// GetByUserID retrieves all rules for a user, newest first
func (r *RuleRepository) GetByUserID(userID uint) ([]models.TradingRule, error) {
	var rules []models.TradingRule
	result := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&rules)
	if result.Error != nil {
		return nil, result.Error
	}
	return rules, nil
}

// Update updates a trading rule
func (r *RuleRepository) Update(rule *models.TradingRule) error {
	return r.db.Save(rule).Error
}

// SetActive flips the active flag for a rule scoped to its owner
func (r *RuleRepository) SetActive(id, userID uint, active bool) error {
	result := r.db.Model(&models.TradingRule{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_active", active)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRuleNotFound
	}
	return nil
}

// Delete hard-deletes a trading rule scoped to its owner
func (r *RuleRepository) Delete(id, userID uint) error {
	result := r.db.Unscoped().Where("id = ? AND user_id = ?", id, userID).Delete(&models.TradingRule{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRuleNotFound
	}
	return nil
}
