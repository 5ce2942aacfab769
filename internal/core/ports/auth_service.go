package ports

import (
	"context"
	"io"

	"github.com/contactkeep/contacts-api/internal/core/domain"
)

type AuthService interface {
	Register(ctx context.Context, username, email, password string) (*domain.User, error)
	// Login verifies the credentials and issues an access/refresh token pair.
	// Unknown email and wrong password both yield domain.ErrInvalidCredentials.
	Login(ctx context.Context, email, password string) (*domain.TokenPair, error)
	// UpdateAvatar uploads the file to object storage and stores the returned
	// URL on the user.
	UpdateAvatar(ctx context.Context, user *domain.User, file io.Reader, filename, contentType string) (*domain.User, error)
}
