package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/contactkeep/contacts-api/internal/core/domain"
	"github.com/contactkeep/contacts-api/internal/core/ports"
)

const (
	defaultListLimit = 100
	maxListLimit     = 100
	birthdayWindow   = 7 // days
)

// ContactService implements owner-scoped contact operations. The ownerID on
// every call comes from the resolved request identity, never from the client.
type ContactService struct {
	repo   ports.ContactRepository
	logger zerolog.Logger
	now    func() time.Time
}

func NewContactService(repo ports.ContactRepository, logger zerolog.Logger) *ContactService {
	return &ContactService{repo: repo, logger: logger, now: time.Now}
}

// WithClock replaces the time source. Intended for tests.
func (s *ContactService) WithClock(now func() time.Time) *ContactService {
	s.now = now
	return s
}

func (s *ContactService) Create(ctx context.Context, input ports.CreateContactInput) (*domain.Contact, error) {
	now := s.now().UTC()
	contact := &domain.Contact{
		OwnerID:   input.OwnerID,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Phone:     input.Phone,
		BirthDate: input.BirthDate,
		Notes:     input.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.repo.Create(ctx, contact)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create contact")
		return nil, err
	}
	return created, nil
}

func (s *ContactService) Get(ctx context.Context, ownerID, id string) (*domain.Contact, error) {
	return s.repo.FindByID(ctx, ownerID, id)
}

func (s *ContactService) List(ctx context.Context, input ports.ListContactsInput) ([]*domain.Contact, error) {
	skip := input.Skip
	if skip < 0 {
		skip = 0
	}
	limit := input.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	if input.Search != "" {
		return s.repo.Search(ctx, input.OwnerID, input.Search, skip, limit)
	}
	return s.repo.List(ctx, input.OwnerID, skip, limit)
}

func (s *ContactService) Update(ctx context.Context, ownerID, id string, patch domain.ContactPatch) (*domain.Contact, error) {
	if patch.Empty() {
		return s.repo.FindByID(ctx, ownerID, id)
	}
	return s.repo.Update(ctx, ownerID, id, patch)
}

func (s *ContactService) Delete(ctx context.Context, ownerID, id string) (*domain.Contact, error) {
	deleted, err := s.repo.Delete(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("contact_id", id).Msg("contact deleted")
	return deleted, nil
}

// UpcomingBirthdays returns contacts whose birthday (month and day, year
// ignored) falls between today and seven days from now.
func (s *ContactService) UpcomingBirthdays(ctx context.Context, ownerID string) ([]*domain.Contact, error) {
	today := s.now().UTC()
	return s.repo.BirthdaysBetween(ctx, ownerID, today, today.AddDate(0, 0, birthdayWindow))
}
