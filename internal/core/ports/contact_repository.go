package ports

import (
	"context"
	"time"

	"github.com/contactkeep/contacts-api/internal/core/domain"
)

// ContactRepository defines persistence operations for contacts. Every query
// is filtered by ownerID so one user can never reach another user's records;
// a contact that exists but is owned by someone else reads as
// domain.ErrContactNotFound.
type ContactRepository interface {
	Create(ctx context.Context, c *domain.Contact) (*domain.Contact, error)
	FindByID(ctx context.Context, ownerID, id string) (*domain.Contact, error)
	List(ctx context.Context, ownerID string, skip, limit int) ([]*domain.Contact, error)
	// Search matches query case-insensitively against first name, last name
	// and email.
	Search(ctx context.Context, ownerID, query string, skip, limit int) ([]*domain.Contact, error)
	// Update applies the non-nil patch fields and returns the updated record.
	Update(ctx context.Context, ownerID, id string, patch domain.ContactPatch) (*domain.Contact, error)
	// Delete removes the contact and returns the deleted record.
	Delete(ctx context.Context, ownerID, id string) (*domain.Contact, error)
	// BirthdaysBetween returns contacts whose birthday (month/day) falls in
	// the [from, to] window, ignoring the year of birth.
	BirthdaysBetween(ctx context.Context, ownerID string, from, to time.Time) ([]*domain.Contact, error)
}
