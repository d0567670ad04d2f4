package repository

import (
	"errors"

	"github.com/tradedeck-server/internal/models"
	"gorm.io/gorm"
)

var (
	ErrBrokerConnectionNotFound = errors.New("broker connection not found")
)

// BrokerRepository handles broker connection data access
type BrokerRepository struct {
	db *gorm.DB
}

// NewBrokerRepository creates a new BrokerRepository
func NewBrokerRepository(db *gorm.DB) *BrokerRepository {
	return &BrokerRepository{db: db}
}

// Create creates a new broker connection
func (r *BrokerRepository) Create(conn *models.BrokerConnection) error {
	return r.db.Create(conn).Error
}

// GetByIDAndUserID retrieves a broker connection by ID scoped to its owner
func (r *BrokerRepository) GetByIDAndUserID(id, userID uint) (*models.BrokerConnection, error) {
	var conn models.BrokerConnection
	result := r.db.Where("id = ? AND user_id = ?", id, userID).First(&conn)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrBrokerConnectionNotFound
		}
		return nil, result.Error
	}
	return &conn, nil
}

// GetByUserID retrieves all broker connections for a user
func (r *BrokerRepository) GetByUserID(userID uint) ([]models.BrokerConnection, error) {
	var conns []models.BrokerConnection
	result := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&conns)
	if result.Error != nil {
		return nil, result.Error
	}
	return conns, nil
}

// Update updates a broker connection
func (r *BrokerRepository) Update(conn *models.BrokerConnection) error {
	return r.db.Save(conn).Error
}

// SetActive flips the active flag for a connection scoped to its owner
func (r *BrokerRepository) SetActive(id, userID uint, active bool) error {
	result := r.db.Model(&models.BrokerConnection{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_active", active)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrBrokerConnectionNotFound
	}
	return nil
}

// Delete hard-deletes a broker connection scoped to its owner
func (r *BrokerRepository) Delete(id, userID uint) error {
	result := r.db.Unscoped().Where("id = ? AND user_id = ?", id, userID).Delete(&models.BrokerConnection{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrBrokerConnectionNotFound
	}
	return nil
}
