package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/tradedeck-server/internal/middleware"
	"github.com/tradedeck-server/internal/repository"
	"github.com/tradedeck-server/internal/service"
	"github.com/tradedeck-server/pkg/response"
)

// ProfileHandler handles the settings tab surface
type ProfileHandler struct {
	profileService *service.ProfileService
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(profileService *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// GetProfile returns the current user's profile
// GET /api/v1/profile
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID := middleware.GetUserID(c)

	profile, err := h.profileService.GetProfile(userID)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			response.NotFound(c, "profile not found")
			return
		}
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, profile)
}

// UpdateProfile updates the mutable profile fields
// PUT /api/v1/profile
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req service.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	profile, err := h.profileService.UpdateProfile(userID, &req)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			response.NotFound(c, "profile not found")
			return
		}
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, profile)
}

// RegisterRoutes registers profile routes
func (h *ProfileHandler) RegisterRoutes(rg *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	profile := rg.Group("/profile", authMiddleware)
	{
		profile.GET("", h.GetProfile)
		profile.PUT("", h.UpdateProfile)
	}
}
