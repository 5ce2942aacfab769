package ports

import (
	"context"

	"github.com/contactkeep/contacts-api/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	// FindByEmail performs an exact-match lookup and returns
	// domain.ErrUserNotFound when the email is not registered.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// Create persists a new user and returns the record with its assigned id.
	// A duplicate email surfaces as domain.ErrEmailTaken.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// UpdateAvatar stores the avatar URL for the given user id.
	UpdateAvatar(ctx context.Context, id string, url string) error
}
