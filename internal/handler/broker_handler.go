package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tradedeck-server/internal/middleware"
	"github.com/tradedeck-server/internal/repository"
	"github.com/tradedeck-server/internal/service"
	"github.com/tradedeck-server/pkg/response"
)

// BrokerHandler handles the brokers tab surface
type BrokerHandler struct {
	brokerService *service.BrokerService
}

// NewBrokerHandler creates a new BrokerHandler
func NewBrokerHandler(brokerService *service.BrokerService) *BrokerHandler {
	return &BrokerHandler{brokerService: brokerService}
}

// CreateConnection adds a broker connection
// POST /api/v1/brokers
func (h *BrokerHandler) CreateConnection(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req service.CreateBrokerConnectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	conn, err := h.brokerService.CreateConnection(userID, &req)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Created(c, conn)
}

// GetConnections lists all broker connections for the current user
// GET /api/v1/brokers
func (h *BrokerHandler) GetConnections(c *gin.Context) {
	userID := middleware.GetUserID(c)

	conns, err := h.brokerService.GetConnections(userID)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, conns)
}

// UpdateConnection rotates credentials or sets an access token
// PUT /api/v1/brokers/:id
func (h *BrokerHandler) UpdateConnection(c *gin.Context) {
	userID := middleware.GetUserID(c)

	connID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid connection id")
		return
	}

	var req service.UpdateBrokerConnectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	conn, err := h.brokerService.UpdateConnection(userID, uint(connID), &req)
	if err != nil {
		if errors.Is(err, repository.ErrBrokerConnectionNotFound) {
			response.NotFound(c, "broker connection not found")
			return
		}
		if errors.Is(err, service.ErrCredentialRequired) {
			response.BadRequest(c, err.Error())
			return
		}
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, conn)
}

// ToggleConnection flips the active flag
// POST /api/v1/brokers/:id/toggle
func (h *BrokerHandler) ToggleConnection(c *gin.Context) {
	userID := middleware.GetUserID(c)

	connID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid connection id")
		return
	}

	conn, err := h.brokerService.ToggleConnection(userID, uint(connID))
	if err != nil {
		if errors.Is(err, repository.ErrBrokerConnectionNotFound) {
			response.NotFound(c, "broker connection not found")
			return
		}
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, conn)
}

// DeleteConnection hard-deletes a broker connection
// DELETE /api/v1/brokers/:id
func (h *BrokerHandler) DeleteConnection(c *gin.Context) {
	userID := middleware.GetUserID(c)

	connID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid connection id")
		return
	}

	if err := h.brokerService.DeleteConnection(userID, uint(connID)); err != nil {
		if errors.Is(err, repository.ErrBrokerConnectionNotFound) {
			response.NotFound(c, "broker connection not found")
			return
		}
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, gin.H{"message": "broker connection deleted"})
}

// RegisterRoutes registers broker routes
func (h *BrokerHandler) RegisterRoutes(rg *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	brokers := rg.Group("/brokers", authMiddleware)
	{
		brokers.POST("", h.CreateConnection)
		brokers.GET("", h.GetConnections)
		brokers.PUT("/:id", h.UpdateConnection)
		brokers.POST("/:id/toggle", h.ToggleConnection)
		brokers.DELETE("/:id", h.DeleteConnection)
	}
}
