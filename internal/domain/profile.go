// File: internal/domain/profile.go
package domain

import (
	"errors"
	"time"
)

// Theme preferences stored per profile.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// DefaultModel is the completion model selected for new profiles.
const DefaultModel = "llama-3.3-70b-versatile"

// Profile holds per-user settings: the completion-service credential, the
// selected model, and the theme preference. One profile exists per user,
// created alongside signup and mutated only through explicit settings updates.
type Profile struct {
	ID            uint      `json:"-" gorm:"primarykey"`
	UserID        uint      `json:"user_id" gorm:"uniqueIndex;not null"`
	APIKey        string    `json:"-"`
	SelectedModel string    `json:"selected_model" gorm:"not null"`
	Theme         string    `json:"theme" gorm:"not null"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// HasAPIKey reports whether a completion credential is configured. The send
// pipeline refuses to run without one.
func (p *Profile) HasAPIKey() bool {
	return p.APIKey != ""
}

func (p *Profile) IsValid() error {
	if p.UserID == 0 {
		return errors.New("profile must belong to a user")
	}
	if p.Theme != ThemeLight && p.Theme != ThemeDark {
		return errors.New("theme must be light or dark")
	}
	return nil
}

// NewProfile returns a profile with default settings for a freshly
// registered user.
func NewProfile(userID uint) *Profile {
	return &Profile{
		UserID:        userID,
		SelectedModel: DefaultModel,
		Theme:         ThemeLight,
	}
}
