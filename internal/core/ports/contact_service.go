package ports

import (
	"context"
	"time"

	"github.com/contactkeep/contacts-api/internal/core/domain"
)

// CreateContactInput carries all data needed to create a contact. OwnerID is
// always the authenticated caller's id, never client-supplied.
type CreateContactInput struct {
	OwnerID   string
	FirstName string
	LastName  string
	Email     string
	Phone     string
	BirthDate time.Time
	Notes     string
}

// ListContactsInput carries the parameters for the list endpoint. A non-empty
// Search switches from plain listing to a partial-match query.
type ListContactsInput struct {
	OwnerID string
	Search  string
	Skip    int
	Limit   int
}

// ContactService defines use-case operations for contacts.
type ContactService interface {
	Create(ctx context.Context, input CreateContactInput) (*domain.Contact, error)
	Get(ctx context.Context, ownerID, id string) (*domain.Contact, error)
	List(ctx context.Context, input ListContactsInput) ([]*domain.Contact, error)
	Update(ctx context.Context, ownerID, id string, patch domain.ContactPatch) (*domain.Contact, error)
	Delete(ctx context.Context, ownerID, id string) (*domain.Contact, error)
	// UpcomingBirthdays returns the caller's contacts with a birthday in the
	// next seven days.
	UpcomingBirthdays(ctx context.Context, ownerID string) ([]*domain.Contact, error)
}
