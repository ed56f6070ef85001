// File: internal/repository/profile/profile_repository.go
package profile

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/sohbetapp/sohbet/internal/domain"
	"gorm.io/gorm"
)

var ErrProfileNotFound = errors.New("profile not found")

type gormProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &gormProfileRepository{db: db}
}

func (r *gormProfileRepository) Create(ctx context.Context, profile *domain.Profile) (*domain.Profile, error) {
	if profile == nil {
		return nil, errors.New("profile cannot be nil")
	}
	if err := profile.IsValid(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if err := r.db.WithContext(ctx).Create(profile).Error; err != nil {
		log.Printf("[ProfileRepository] Database error during profile creation for user ID %d: %v", profile.UserID, err)
		return nil, errors.New("database error creating profile")
	}

	return profile, nil
}

func (r *gormProfileRepository) FindByUserID(ctx context.Context, userID uint) (*domain.Profile, error) {
	if userID == 0 {
		return nil, errors.New("invalid user ID")
	}

	var profile domain.Profile
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		log.Printf("[ProfileRepository] Database error finding profile for user ID %d: %v", userID, err)
		return nil, errors.New("database query failed")
	}

	return &profile, nil
}

func (r *gormProfileRepository) Update(ctx context.Context, profile *domain.Profile) error {
	if profile == nil || profile.ID == 0 {
		return errors.New("invalid profile")
	}
	if err := profile.IsValid(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	if err := r.db.WithContext(ctx).Save(profile).Error; err != nil {
		log.Printf("[ProfileRepository] Database error updating profile for user ID %d: %v", profile.UserID, err)
		return errors.New("database error updating profile")
	}

	return nil
}
