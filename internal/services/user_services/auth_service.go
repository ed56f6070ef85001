// File: internal/services/user_services/auth_service.go
package user_services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sohbetapp/sohbet/internal/domain"
	profilerepo "github.com/sohbetapp/sohbet/internal/repository/profile"
	userrepo "github.com/sohbetapp/sohbet/internal/repository/user"
)

var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_]{3,20}$`)

type AuthService struct {
	userRepo     userrepo.UserRepository
	profileRepo  profilerepo.ProfileRepository
	jwtSecretKey string
	logger       Logger
}

func NewAuthService(userRepo userrepo.UserRepository, profileRepo profilerepo.ProfileRepository, jwtSecretKey string, logger Logger) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		profileRepo:  profileRepo,
		jwtSecretKey: jwtSecretKey,
		logger:       logger,
	}
}

// Register creates a user and, alongside it, the profile row holding the
// default model and theme. The profile exists for the whole account
// lifetime and is only ever mutated through settings updates.
func (s *AuthService) Register(ctx context.Context, username, password string) (*domain.User, error) {
	if !usernameRegex.MatchString(username) {
		return nil, errors.New("username must be 3-20 characters, alphanumeric or underscore")
	}

	exists, err := s.userRepo.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("could not check username: %w", err)
	}
	if exists {
		s.logger.Warn("registration failed, username already exists", "username", username)
		return nil, errors.New("username already taken")
	}

	user := &domain.User{Username: username}
	if err := user.HashPassword(password); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	created, err := s.userRepo.Create(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("could not create user: %w", err)
	}

	if _, err := s.profileRepo.Create(ctx, domain.NewProfile(created.ID)); err != nil {
		s.logger.Error("profile creation failed after signup", "user_id", created.ID, "error", err.Error())
		return nil, fmt.Errorf("could not create profile: %w", err)
	}

	s.logger.Info("user registered", "user_id", created.ID)
	return created, nil
}

// Login authenticates a user and returns a signed JWT token.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", errors.New("username and password are required")
	}

	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		s.logger.Warn("login failed, user not found", "username", username)
		return "", errors.New("invalid credentials")
	}

	if err := user.ValidatePassword(password); err != nil {
		s.logger.Warn("login failed, invalid password", "user_id", user.ID)
		return "", errors.New("invalid credentials")
	}

	token, err := s.generateJWTToken(user)
	if err != nil {
		s.logger.Error("JWT token generation failed", "user_id", user.ID, "error", err.Error())
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	s.logger.Info("login successful", "user_id", user.ID)
	return token, nil
}

func (s *AuthService) generateJWTToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"sub": user.ID,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(24 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecretKey))
}

// ValidateJWTToken checks the signature and expiry and returns the user ID.
func (s *AuthService) ValidateJWTToken(tokenString string) (uint, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.jwtSecretKey), nil
	})
	if err != nil {
		return 0, err
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		if userIDFloat, ok := claims["sub"].(float64); ok {
			return uint(userIDFloat), nil
		}
	}

	return 0, errors.New("invalid token")
}
