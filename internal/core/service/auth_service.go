package service

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/contactkeep/contacts-api/internal/core/domain"
	"github.com/contactkeep/contacts-api/internal/core/ports"
)

// dummyHash is compared against when the email is unknown so that lookups of
// unregistered emails cost the same as a wrong password.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// AuthService implements registration, login and avatar updates.
type AuthService struct {
	users      ports.UserRepository
	tokens     ports.TokenIssuer
	avatars    ports.AvatarStore
	throttle   ports.LoginThrottle
	accessTTL  time.Duration
	refreshTTL time.Duration
	logger     zerolog.Logger
}

func NewAuthService(users ports.UserRepository, tokens ports.TokenIssuer, avatars ports.AvatarStore, throttle ports.LoginThrottle, accessTTL, refreshTTL time.Duration, logger zerolog.Logger) *AuthService {
	if accessTTL <= 0 {
		accessTTL = DefaultTokenTTL
	}
	if refreshTTL <= 0 {
		refreshTTL = 7 * 24 * time.Hour
	}
	return &AuthService{
		users:      users,
		tokens:     tokens,
		avatars:    avatars,
		throttle:   throttle,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		logger:     logger,
	}
}

func (s *AuthService) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	if username == "" || email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("email", created.Email).Msg("user registered")
	return created, nil
}

// Login verifies the credentials and issues an access/refresh token pair.
// Unknown email and wrong password are collapsed into the same error so the
// response does not reveal which emails are registered.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.TokenPair, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	if s.throttle != nil {
		blocked, err := s.throttle.TooManyFailures(ctx, email)
		if err != nil {
			// throttle failures never block logins
			s.logger.Warn().Err(err).Msg("login throttle unavailable")
		} else if blocked {
			return nil, domain.ErrTooManyAttempts
		}
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		// burn a comparison so timing matches the wrong-password path
		_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(password))
		s.recordFailure(ctx, email)
		return nil, domain.ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.recordFailure(ctx, email)
		return nil, domain.ErrInvalidCredentials
	}

	access, err := s.tokens.Issue(user.Email, s.accessTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := s.tokens.Issue(user.Email, s.refreshTTL)
	if err != nil {
		return nil, err
	}

	if s.throttle != nil {
		if err := s.throttle.Reset(ctx, email); err != nil {
			s.logger.Warn().Err(err).Msg("login throttle reset failed")
		}
	}

	s.logger.Info().Str("email", user.Email).Msg("user logged in")
	return &domain.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "bearer",
	}, nil
}

// UpdateAvatar uploads the image stream to object storage and stores the
// returned URL on the user record.
func (s *AuthService) UpdateAvatar(ctx context.Context, user *domain.User, file io.Reader, filename, contentType string) (*domain.User, error) {
	url, err := s.avatars.Upload(ctx, file, filename, contentType)
	if err != nil {
		s.logger.Error().Err(err).Str("email", user.Email).Msg("avatar upload failed")
		return nil, domain.ErrUploadFailed
	}

	if err := s.users.UpdateAvatar(ctx, user.ID, url); err != nil {
		return nil, err
	}

	updated := *user
	updated.Avatar = url
	return &updated, nil
}

func (s *AuthService) recordFailure(ctx context.Context, email string) {
	if s.throttle == nil {
		return
	}
	if err := s.throttle.RecordFailure(ctx, email); err != nil {
		s.logger.Warn().Err(err).Msg("login throttle record failed")
	}
}
