package service

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/datatypes"

	"github.com/tradedeck-server/internal/models"
	"github.com/tradedeck-server/internal/repository"
	"github.com/tradedeck-server/pkg/jsondoc"
)

// ErrRuleNameRequired rejects updates that would blank out a rule's name.
// Create enforces this through binding; the partial-update path has to check
// explicitly because a non-nil pointer to "" passes omitempty.
var ErrRuleNameRequired = errors.New("rule name cannot be empty")

// RuleService handles trading rule operations
type RuleService struct {
	ruleRepo *repository.RuleRepository
}

// NewRuleService creates a new RuleService
func NewRuleService(ruleRepo *repository.RuleRepository) *RuleService {
	return &RuleService{ruleRepo: ruleRepo}
}

// CreateRuleRequest represents the create request. The four strategy
// documents arrive as raw JSON text, exactly as typed in the editor.
type CreateRuleRequest struct {
	Name            string           `json:"name" binding:"required,max=100"`
	Description     *string          `json:"description" binding:"omitempty,max=500"`
	Symbol          string           `json:"symbol" binding:"required,oneof=NIFTY BANKNIFTY FINNIFTY SENSEX"`
	Timeframe       models.Timeframe `json:"timeframe" binding:"required,oneof=1m 5m 15m 30m 1h 4h 1d"`
	Indicators      string           `json:"indicators" binding:"required"`
	EntryConditions string           `json:"entry_conditions" binding:"required"`
	ExitConditions  string           `json:"exit_conditions" binding:"required"`
	RiskSettings    string           `json:"risk_settings" binding:"required"`
}

// UpdateRuleRequest represents the update request; nil fields are left
// untouched.
type UpdateRuleRequest struct {
	Name            *string           `json:"name" binding:"omitempty,max=100"`
	Description     *string           `json:"description" binding:"omitempty,max=500"`
	Symbol          *string           `json:"symbol" binding:"omitempty,oneof=NIFTY BANKNIFTY FINNIFTY SENSEX"`
	Timeframe       *models.Timeframe `json:"timeframe" binding:"omitempty,oneof=1m 5m 15m 30m 1h 4h 1d"`
	Indicators      *string           `json:"indicators"`
	EntryConditions *string           `json:"entry_conditions"`
	ExitConditions  *string           `json:"exit_conditions"`
	RiskSettings    *string           `json:"risk_settings"`
}

// CreateRule validates the strategy documents and persists a new rule.
// A syntax error in any document aborts before the store is touched.
func (s *RuleService) CreateRule(userID uint, req *CreateRuleRequest) (*models.TradingRule, error) {
	if err := validateRuleDocuments(req.Indicators, req.EntryConditions, req.ExitConditions, req.RiskSettings); err != nil {
		return nil, err
	}

	rule := &models.TradingRule{
		UserID:          userID,
		Name:            req.Name,
		Description:     req.Description,
		Symbol:          req.Symbol,
		Timeframe:       req.Timeframe,
		Indicators:      datatypes.JSON(req.Indicators),
		EntryConditions: datatypes.JSON(req.EntryConditions),
		ExitConditions:  datatypes.JSON(req.ExitConditions),
		RiskSettings:    datatypes.JSON(req.RiskSettings),
		IsActive:        false,
	}
	if err := s.ruleRepo.Create(rule); err != nil {
		return nil, fmt.Errorf("failed to create trading rule: %w", err)
	}

	return rule, nil
}

// GetRules retrieves all rules for a user
func (s *RuleService) GetRules(userID uint) ([]models.TradingRule, error) {
	return s.ruleRepo.GetByUserID(userID)
}

// UpdateRule validates any supplied strategy documents and applies the
// partial update.
func (s *RuleService) UpdateRule(userID, ruleID uint, req *UpdateRuleRequest) (*models.TradingRule, error) {
	rule, err := s.ruleRepo.GetByIDAndUserID(ruleID, userID)
	if err != nil {
		return nil, err
	}

	if req.Indicators != nil {
		if err := jsondoc.ValidateArray("indicators", *req.Indicators); err != nil {
			return nil, err
		}
		rule.Indicators = datatypes.JSON(*req.Indicators)
	}
	if req.EntryConditions != nil {
		if err := jsondoc.ValidateObject("entry_conditions", *req.EntryConditions); err != nil {
			return nil, err
		}
		rule.EntryConditions = datatypes.JSON(*req.EntryConditions)
	}
	if req.ExitConditions != nil {
		if err := jsondoc.ValidateObject("exit_conditions", *req.ExitConditions); err != nil {
			return nil, err
		}
		rule.ExitConditions = datatypes.JSON(*req.ExitConditions)
	}
	if req.RiskSettings != nil {
		if err := jsondoc.ValidateObject("risk_settings", *req.RiskSettings); err != nil {
			return nil, err
		}
		rule.RiskSettings = datatypes.JSON(*req.RiskSettings)
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrRuleNameRequired
		}
		rule.Name = *req.Name
	}
	if req.Description != nil {
		rule.Description = req.Description
	}
	if req.Symbol != nil {
		rule.Symbol = *req.Symbol
	}
	if req.Timeframe != nil {
		rule.Timeframe = *req.Timeframe
	}

	if err := s.ruleRepo.Update(rule); err != nil {
		return nil, err
	}

	return rule, nil
}

// ToggleRule flips the active flag and returns the refreshed row
func (s *RuleService) ToggleRule(userID, ruleID uint) (*models.TradingRule, error) {
	rule, err := s.ruleRepo.GetByIDAndUserID(ruleID, userID)
	if err != nil {
		return nil, err
	}

	if err := s.ruleRepo.SetActive(ruleID, userID, !rule.IsActive); err != nil {
		return nil, err
	}
	rule.IsActive = !rule.IsActive

	return rule, nil
}

// DeleteRule hard-deletes a trading rule
func (s *RuleService) DeleteRule(userID, ruleID uint) error {
	return s.ruleRepo.Delete(ruleID, userID)
}

func validateRuleDocuments(indicators, entry, exit, risk string) error {
	if err := jsondoc.ValidateArray("indicators", indicators); err != nil {
		return err
	}
	if err := jsondoc.ValidateObject("entry_conditions", entry); err != nil {
		return err
	}
	if err := jsondoc.ValidateObject("exit_conditions", exit); err != nil {
		return err
	}
	return jsondoc.ValidateObject("risk_settings", risk)
}
