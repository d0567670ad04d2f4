package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tradedeck-server/internal/config"
	"github.com/tradedeck-server/internal/models"
	"github.com/tradedeck-server/internal/repository"
	"github.com/tradedeck-server/pkg/crypto"
)

// ErrCredentialRequired rejects rotations that would blank out a stored
// credential. A non-nil pointer to "" passes omitempty binding, so the
// service checks explicitly.
var ErrCredentialRequired = errors.New("api key and secret cannot be empty")

// maskPrefixLen is how much of an API key responses may show
const maskPrefixLen = 8

// BrokerService handles broker connection operations
type BrokerService struct {
	brokerRepo       *repository.BrokerRepository
	encryptionConfig config.EncryptionConfig
}

// NewBrokerService creates a new BrokerService
func NewBrokerService(brokerRepo *repository.BrokerRepository, encryptionConfig config.EncryptionConfig) *BrokerService {
	return &BrokerService{
		brokerRepo:       brokerRepo,
		encryptionConfig: encryptionConfig,
	}
}

// CreateBrokerConnectionRequest represents the create request
type CreateBrokerConnectionRequest struct {
	BrokerName models.BrokerName `json:"broker_name" binding:"required,oneof=dhan zerodha upstox angel_one"`
	APIKey     string            `json:"api_key" binding:"required,max=200"`
	APISecret  string            `json:"api_secret" binding:"required,max=200"`
}

// UpdateBrokerConnectionRequest represents the update request. A credential
// rotation replaces both key and secret together.
type UpdateBrokerConnectionRequest struct {
	APIKey      *string `json:"api_key" binding:"omitempty,max=200"`
	APISecret   *string `json:"api_secret" binding:"omitempty,max=200"`
	AccessToken *string `json:"access_token" binding:"omitempty,max=500"`
}

// CreateConnection creates a broker connection for a user. Connections are
// inactive until the user flips them on.
func (s *BrokerService) CreateConnection(userID uint, req *CreateBrokerConnectionRequest) (*models.BrokerConnectionResponse, error) {
	encryptedSecret, err := crypto.EncryptAES(req.APISecret, s.encryptionConfig.AESKey)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt API secret: %w", err)
	}

	conn := &models.BrokerConnection{
		UserID:             userID,
		BrokerName:         req.BrokerName,
		APIKey:             req.APIKey,
		APISecretEncrypted: encryptedSecret,
		IsActive:           false,
	}
	if err := s.brokerRepo.Create(conn); err != nil {
		return nil, fmt.Errorf("failed to create broker connection: %w", err)
	}

	return s.buildResponse(conn), nil
}

// GetConnections retrieves all broker connections for a user
func (s *BrokerService) GetConnections(userID uint) ([]models.BrokerConnectionResponse, error) {
	conns, err := s.brokerRepo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}

	responses := make([]models.BrokerConnectionResponse, len(conns))
	for i := range conns {
		responses[i] = *s.buildResponse(&conns[i])
	}
	return responses, nil
}

// UpdateConnection updates credentials or access token on a connection
func (s *BrokerService) UpdateConnection(userID, connID uint, req *UpdateBrokerConnectionRequest) (*models.BrokerConnectionResponse, error) {
	conn, err := s.brokerRepo.GetByIDAndUserID(connID, userID)
	if err != nil {
		return nil, err
	}

	if req.APIKey != nil {
		if strings.TrimSpace(*req.APIKey) == "" {
			return nil, ErrCredentialRequired
		}
		conn.APIKey = *req.APIKey
	}
	if req.APISecret != nil {
		if strings.TrimSpace(*req.APISecret) == "" {
			return nil, ErrCredentialRequired
		}
		encryptedSecret, err := crypto.EncryptAES(*req.APISecret, s.encryptionConfig.AESKey)
		if err != nil {
			return nil, fmt.Errorf("failed to encrypt API secret: %w", err)
		}
		conn.APISecretEncrypted = encryptedSecret
	}
	if req.AccessToken != nil {
		conn.AccessToken = req.AccessToken
	}

	if err := s.brokerRepo.Update(conn); err != nil {
		return nil, err
	}

	return s.buildResponse(conn), nil
}

// ToggleConnection flips the active flag and returns the refreshed row.
// The flip is a pure boolean inversion, independent of other fields.
func (s *BrokerService) ToggleConnection(userID, connID uint) (*models.BrokerConnectionResponse, error) {
	conn, err := s.brokerRepo.GetByIDAndUserID(connID, userID)
	if err != nil {
		return nil, err
	}

	if err := s.brokerRepo.SetActive(connID, userID, !conn.IsActive); err != nil {
		return nil, err
	}
	conn.IsActive = !conn.IsActive

	return s.buildResponse(conn), nil
}

// DeleteConnection hard-deletes a broker connection
func (s *BrokerService) DeleteConnection(userID, connID uint) error {
	return s.brokerRepo.Delete(connID, userID)
}

func (s *BrokerService) buildResponse(conn *models.BrokerConnection) *models.BrokerConnectionResponse {
	return &models.BrokerConnectionResponse{
		ID:           conn.ID,
		BrokerName:   conn.BrokerName,
		APIKeyMasked: MaskKey(conn.APIKey),
		HasToken:     conn.AccessToken != nil && *conn.AccessToken != "",
		IsActive:     conn.IsActive,
		CreatedAt:    conn.CreatedAt,
		UpdatedAt:    conn.UpdatedAt,
	}
}

// MaskKey reduces an API key to its display prefix. Secrets never leave
// the service at all; keys leave only in this form.
func MaskKey(key string) string {
	if len(key) > maskPrefixLen {
		key = key[:maskPrefixLen]
	}
	return key + "..."
}
