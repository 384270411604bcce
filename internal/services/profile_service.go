package services

import (
	"context"
	"errors"

	"aroundyou/internal/models"
	"aroundyou/internal/repositories"
)

// ProfileService loads the profile behind an authenticated session.
type ProfileService struct {
	userRepo repositories.UserRepository
}

// NewProfileService creates a new ProfileService.
func NewProfileService(userRepo repositories.UserRepository) *ProfileService {
	return &ProfileService{userRepo: userRepo}
}

// Load fetches exactly one profile for userID. A missing row is not an error:
// it returns a nil profile and a nil error, meaning "not provisioned yet".
func (s *ProfileService) Load(ctx context.Context, userID string) (*models.UserProfile, error) {
	profile, err := s.userRepo.GetProfile(ctx, userID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return profile, nil
}
