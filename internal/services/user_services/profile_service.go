// File: internal/services/user_services/profile_service.go
package user_services

import (
	"context"
	"errors"
	"fmt"

	"github.com/sohbetapp/sohbet/internal/domain"
	profilerepo "github.com/sohbetapp/sohbet/internal/repository/profile"
)

// SupportedModels is the catalog of completion models a profile may select.
var SupportedModels = []string{
	"llama-3.1-8b-instant",
	"llama-3.3-70b-versatile",
	"openai/gpt-oss-120b",
}

func supportedModel(model string) bool {
	for _, m := range SupportedModels {
		if m == model {
			return true
		}
	}
	return false
}

// ProfileUpdate carries an explicit settings change. Nil fields are left
// untouched, so a theme toggle does not clear the API key.
type ProfileUpdate struct {
	APIKey        *string
	SelectedModel *string
	Theme         *string
}

type ProfileService struct {
	profileRepo profilerepo.ProfileRepository
	logger      Logger
}

func NewProfileService(profileRepo profilerepo.ProfileRepository, logger Logger) *ProfileService {
	return &ProfileService{profileRepo: profileRepo, logger: logger}
}

func (s *ProfileService) GetProfile(ctx context.Context, userID uint) (*domain.Profile, error) {
	return s.profileRepo.FindByUserID(ctx, userID)
}

// UpdateProfile applies an explicit settings change to the user's profile.
func (s *ProfileService) UpdateProfile(ctx context.Context, userID uint, update ProfileUpdate) (*domain.Profile, error) {
	profile, err := s.profileRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("could not load profile: %w", err)
	}

	if update.APIKey != nil {
		profile.APIKey = *update.APIKey
	}
	if update.SelectedModel != nil {
		if !supportedModel(*update.SelectedModel) {
			return nil, errors.New("unsupported model")
		}
		profile.SelectedModel = *update.SelectedModel
	}
	if update.Theme != nil {
		if *update.Theme != domain.ThemeLight && *update.Theme != domain.ThemeDark {
			return nil, errors.New("theme must be light or dark")
		}
		profile.Theme = *update.Theme
	}

	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, fmt.Errorf("could not update profile: %w", err)
	}

	s.logger.Info("profile updated", "user_id", userID)
	return profile, nil
}

// ToggleTheme flips the theme preference and persists it.
func (s *ProfileService) ToggleTheme(ctx context.Context, userID uint) (*domain.Profile, error) {
	profile, err := s.profileRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("could not load profile: %w", err)
	}

	next := domain.ThemeDark
	if profile.Theme == domain.ThemeDark {
		next = domain.ThemeLight
	}
	return s.UpdateProfile(ctx, userID, ProfileUpdate{Theme: &next})
}
