package profile

import (
	"context"

	"github.com/sohbetapp/sohbet/internal/domain"
)

// ProfileRepository handles per-user settings records. Profiles are created
// alongside signup and only ever mutated through settings updates.
type ProfileRepository interface {
	Create(ctx context.Context, profile *domain.Profile) (*domain.Profile, error)
	FindByUserID(ctx context.Context, userID uint) (*domain.Profile, error)
	Update(ctx context.Context, profile *domain.Profile) error
}
