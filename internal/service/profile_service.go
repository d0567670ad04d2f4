package service

import (
	"github.com/tradedeck-server/internal/models"
	"github.com/tradedeck-server/internal/repository"
)

// ProfileService handles profile operations
type ProfileService struct {
	profileRepo *repository.ProfileRepository
}

// NewProfileService creates a new ProfileService
func NewProfileService(profileRepo *repository.ProfileRepository) *ProfileService {
	return &ProfileService{profileRepo: profileRepo}
}

// UpdateProfileRequest represents the profile update request. Email is
// immutable and deliberately absent.
type UpdateProfileRequest struct {
	FullName *string `json:"full_name" binding:"omitempty,max=100"`
}

// GetProfile retrieves the profile for a user
func (s *ProfileService) GetProfile(userID uint) (*models.Profile, error) {
	return s.profileRepo.GetByUserID(userID)
}

// UpdateProfile updates the mutable profile fields
func (s *ProfileService) UpdateProfile(userID uint, req *UpdateProfileRequest) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}

	if req.FullName != nil {
		profile.FullName = req.FullName
	}

	if err := s.profileRepo.Update(profile); err != nil {
		return nil, err
	}

	return profile, nil
}
