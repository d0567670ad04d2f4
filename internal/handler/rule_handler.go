package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tradedeck-server/internal/middleware"
	"github.com/tradedeck-server/internal/repository"
	"github.com/tradedeck-server/internal/service"
	"github.com/tradedeck-server/pkg/jsondoc"
	"github.com/tradedeck-server/pkg/response"
)

// RuleHandler handles the rules tab and rule editor surface
type RuleHandler struct {
	ruleService *service.RuleService
}

// NewRuleHandler creates a new RuleHandler
func NewRuleHandler(ruleService *service.RuleService) *RuleHandler {
	return &RuleHandler{ruleService: ruleService}
}

// CreateRule creates a trading rule
// POST /api/v1/rules
func (h *RuleHandler) CreateRule(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req service.CreateRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	rule, err := h.ruleService.CreateRule(userID, &req)
	if err != nil {
		if isDocumentError(err) {
			response.BadRequest(c, err.Error())
			return
		}
		response.InternalError(c, err.Error())
		return
	}

	response.Created(c, rule)
}

// GetRules lists all trading rules for the current user
// GET /api/v1/rules
func (h *RuleHandler) GetRules(c *gin.Context) {
	userID := middleware.GetUserID(c)

	rules, err := h.ruleService.GetRules(userID)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, rules)
}

// UpdateRule applies a partial update to a trading rule
// PUT /api/v1/rules/:id
func (h *RuleHandler) UpdateRule(c *gin.Context) {
	userID := middleware.GetUserID(c)

	ruleID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid rule id")
		return
	}

	var req service.UpdateRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	rule, err := h.ruleService.UpdateRule(userID, uint(ruleID), &req)
	if err != nil {
		if errors.Is(err, repository.ErrRuleNotFound) {
			response.NotFound(c, "trading rule not found")
			return
		}
		if isDocumentError(err) || errors.Is(err, service.ErrRuleNameRequired) {
			response.BadRequest(c, err.Error())
			return
		}
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, rule)
}

// ToggleRule flips the active flag
// POST /api/v1/rules/:id/toggle
func (h *RuleHandler) ToggleRule(c *gin.Context) {
	userID := middleware.GetUserID(c)

	ruleID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid rule id")
		return
	}

	rule, err := h.ruleService.ToggleRule(userID, uint(ruleID))
	if err != nil {
		if errors.Is(err, repository.ErrRuleNotFound) {
			response.NotFound(c, "trading rule not found")
			return
		}
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, rule)
}

// DeleteRule hard-deletes a trading rule
// DELETE /api/v1/rules/:id
func (h *RuleHandler) DeleteRule(c *gin.Context) {
	userID := middleware.GetUserID(c)

	ruleID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid rule id")
		return
	}

	if err := h.ruleService.DeleteRule(userID, uint(ruleID)); err != nil {
		if errors.Is(err, repository.ErrRuleNotFound) {
			response.NotFound(c, "trading rule not found")
			return
		}
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, gin.H{"message": "trading rule deleted"})
}

// isDocumentError distinguishes a strategy-document validation failure
// from a store failure so it maps to a 400, not a 500.
func isDocumentError(err error) bool {
	return errors.Is(err, jsondoc.ErrInvalidDocument)
}

// RegisterRoutes registers rule routes
func (h *RuleHandler) RegisterRoutes(rg *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	rules := rg.Group("/rules", authMiddleware)
	{
		rules.POST("", h.CreateRule)
		rules.GET("", h.GetRules)
		rules.PUT("/:id", h.UpdateRule)
		rules.POST("/:id/toggle", h.ToggleRule)
		rules.DELETE("/:id", h.DeleteRule)
	}
}
