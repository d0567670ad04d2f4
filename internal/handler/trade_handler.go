package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tradedeck-server/internal/middleware"
	"github.com/tradedeck-server/internal/repository"
	"github.com/tradedeck-server/pkg/response"
)

// TradeHandler exposes the read-only trade surface. Trades are written by
// the hosted execution system; no mutation routes exist here.
type TradeHandler struct {
	tradeRepo *repository.TradeRepository
}

// NewTradeHandler creates a new TradeHandler
func NewTradeHandler(tradeRepo *repository.TradeRepository) *TradeHandler {
	return &TradeHandler{tradeRepo: tradeRepo}
}

// GetTrades lists recent trades for the current user
// GET /api/v1/trades?limit=10
func (h *TradeHandler) GetTrades(c *gin.Context) {
	userID := middleware.GetUserID(c)

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if limit < 1 || limit > 100 {
		limit = 10
	}

	trades, err := h.tradeRepo.GetRecentByUserID(userID, limit)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, trades)
}

// GetTradeHistory lists all trades for the current user with pagination
// GET /api/v1/trades/history?page=1&page_size=20
func (h *TradeHandler) GetTradeHistory(c *gin.Context) {
	userID := middleware.GetUserID(c)

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	trades, total, err := h.tradeRepo.GetByUserIDPaginated(userID, page, pageSize)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.SuccessPaginated(c, trades, total, page, pageSize)
}

// RegisterRoutes registers trade routes
func (h *TradeHandler) RegisterRoutes(rg *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	trades := rg.Group("/trades", authMiddleware)
	{
		trades.GET("", h.GetTrades)
		trades.GET("/history", h.GetTradeHistory)
	}
}
