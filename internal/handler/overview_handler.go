package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/tradedeck-server/internal/middleware"
	"github.com/tradedeck-server/internal/service"
	"github.com/tradedeck-server/pkg/response"
)

// OverviewHandler handles the overview tab surface
type OverviewHandler struct {
	overviewService *service.OverviewService
}

// NewOverviewHandler creates a new OverviewHandler
func NewOverviewHandler(overviewService *service.OverviewService) *OverviewHandler {
	return &OverviewHandler{overviewService: overviewService}
}

// GetOverview returns the derived dashboard summary
// GET /api/v1/overview
func (h *OverviewHandler) GetOverview(c *gin.Context) {
	userID := middleware.GetUserID(c)

	overview, err := h.overviewService.GetOverview(userID)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, overview)
}

// GetPerformanceHistory lists the daily metrics rows for the current user
// GET /api/v1/performance
func (h *OverviewHandler) GetPerformanceHistory(c *gin.Context) {
	userID := middleware.GetUserID(c)

	history, err := h.overviewService.GetPerformanceHistory(userID)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, history)
}

// RegisterRoutes registers overview routes
func (h *OverviewHandler) RegisterRoutes(rg *gin.RouterGroup, authMiddleware gin.HandlerFunc, chart *ChartHandler) {
	overview := rg.Group("/overview", authMiddleware)
	{
		overview.GET("", h.GetOverview)
		overview.GET("/chart", chart.RenderChart)
	}
	rg.GET("/performance", authMiddleware, h.GetPerformanceHistory)
}
