// File: internal/repository/user/gorm_user_repository.go
package user

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/sohbetapp/sohbet/internal/domain"
	"gorm.io/gorm"
)

var ErrUserNotFound = errors.New("user not found")

type gormUserRepository struct {
	db *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) UserRepository {
	return &gormUserRepository{db: db}
}

func (r *gormUserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	if err := r.validateUserInput(user); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		log.Printf("[UserRepository] Database error during user creation: %v", err)
		return nil, errors.New("database error creating user")
	}

	return user, nil
}

func (r *gormUserRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	if id == 0 {
		return nil, errors.New("invalid user ID")
	}

	var user domain.User
	err := r.db.WithContext(ctx).First(&user, id).Error
	return r.handleFindError(err, &user)
}

func (r *gormUserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	if err := r.validateUsername(username); err != nil {
		return nil, fmt.Errorf("username validation failed: %w", err)
	}

	var user domain.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	return r.handleFindError(err, &user)
}

func (r *gormUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	if err := r.validateUsername(username); err != nil {
		return false, fmt.Errorf("username validation failed: %w", err)
	}

	var count int64
	err := r.db.WithContext(ctx).Model(&domain.User{}).Where("username = ?", username).Count(&count).Error
	if err != nil {
		log.Printf("[UserRepository] Database error checking username existence: %v", err)
		return false, errors.New("database error checking username")
	}

	return count > 0, nil
}

func (r *gormUserRepository) validateUserInput(user *domain.User) error {
	if user == nil {
		return errors.New("user cannot be nil")
	}
	if err := r.validateUsername(user.Username); err != nil {
		return err
	}
	if user.Password == "" {
		return errors.New("password hash is required")
	}
	return nil
}

func (r *gormUserRepository) validateUsername(username string) error {
	username = strings.TrimSpace(username)
	if len(username) < 3 || len(username) > 20 {
		return errors.New("username must be 3-20 characters")
	}
	return nil
}

func (r *gormUserRepository) handleFindError(err error, user *domain.User) (*domain.User, error) {
	if err == nil {
		return user, nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}

	log.Printf("[UserRepository] Database error: %v", err)
	return nil, errors.New("database query failed")
}
