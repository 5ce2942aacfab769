package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/contactkeep/contacts-api/internal/core/domain"
	"github.com/contactkeep/contacts-api/internal/core/ports"
)

type stubContactRepo struct {
	contacts map[string]*domain.Contact
	nextID   int

	lastFrom  time.Time
	lastTo    time.Time
	lastSkip  int
	lastLimit int
}

func newStubContactRepo() *stubContactRepo {
	return &stubContactRepo{contacts: make(map[string]*domain.Contact), nextID: 1}
}

func cloneContact(c *domain.Contact) *domain.Contact {
	if c == nil {
		return nil
	}
	clone := *c
	return &clone
}

func (r *stubContactRepo) Create(_ context.Context, c *domain.Contact) (*domain.Contact, error) {
	copy := cloneContact(c)
	copy.ID = fmt.Sprintf("c%d", r.nextID)
	r.nextID++
	r.contacts[copy.ID] = cloneContact(copy)
	return copy, nil
}

func (r *stubContactRepo) FindByID(_ context.Context, ownerID, id string) (*domain.Contact, error) {
	c, ok := r.contacts[id]
	if !ok || c.OwnerID != ownerID {
		return nil, domain.ErrContactNotFound
	}
	return cloneContact(c), nil
}

func (r *stubContactRepo) List(_ context.Context, ownerID string, skip, limit int) ([]*domain.Contact, error) {
	r.lastSkip, r.lastLimit = skip, limit
	var out []*domain.Contact
	for _, c := range r.contacts {
		if c.OwnerID == ownerID {
			out = append(out, cloneContact(c))
		}
	}
	return out, nil
}

func (r *stubContactRepo) Search(_ context.Context, ownerID, query string, skip, limit int) ([]*domain.Contact, error) {
	var out []*domain.Contact
	for _, c := range r.contacts {
		if c.OwnerID == ownerID && (c.FirstName == query || c.LastName == query || c.Email == query) {
			out = append(out, cloneContact(c))
		}
	}
	return out, nil
}

func (r *stubContactRepo) Update(_ context.Context, ownerID, id string, patch domain.ContactPatch) (*domain.Contact, error) {
	c, ok := r.contacts[id]
	if !ok || c.OwnerID != ownerID {
		return nil, domain.ErrContactNotFound
	}
	if patch.FirstName != nil {
		c.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		c.LastName = *patch.LastName
	}
	if patch.Email != nil {
		c.Email = *patch.Email
	}
	if patch.Phone != nil {
		c.Phone = *patch.Phone
	}
	if patch.BirthDate != nil {
		c.BirthDate = *patch.BirthDate
	}
	if patch.Notes != nil {
		c.Notes = *patch.Notes
	}
	return cloneContact(c), nil
}

func (r *stubContactRepo) Delete(_ context.Context, ownerID, id string) (*domain.Contact, error) {
	c, ok := r.contacts[id]
	if !ok || c.OwnerID != ownerID {
		return nil, domain.ErrContactNotFound
	}
	delete(r.contacts, id)
	return cloneContact(c), nil
}

func (r *stubContactRepo) BirthdaysBetween(_ context.Context, ownerID string, from, to time.Time) ([]*domain.Contact, error) {
	r.lastFrom, r.lastTo = from, to
	var out []*domain.Contact
	for _, c := range r.contacts {
		if c.OwnerID != ownerID {
			continue
		}
		bd := time.Date(from.Year(), c.BirthDate.Month(), c.BirthDate.Day(), 0, 0, 0, 0, time.UTC)
		if !bd.Before(from.Truncate(24*time.Hour)) && !bd.After(to) {
			out = append(out, cloneContact(c))
		}
	}
	return out, nil
}

func seedContact(repo *stubContactRepo, ownerID, first string, birth time.Time) *domain.Contact {
	c, _ := repo.Create(context.Background(), &domain.Contact{
		OwnerID:   ownerID,
		FirstName: first,
		LastName:  "Doe",
		Email:     first + "@example.com",
		BirthDate: birth,
	})
	return c
}

func TestContactService_OwnerScoping(t *testing.T) {
	repo := newStubContactRepo()
	svc := NewContactService(repo, zerolog.Nop())

	c := seedContact(repo, "owner-1", "Jane", time.Date(1990, 3, 14, 0, 0, 0, 0, time.UTC))

	if _, err := svc.Get(context.Background(), "owner-1", c.ID); err != nil {
		t.Fatalf("owner read failed: %v", err)
	}

	// another user sees not-found, not forbidden
	if _, err := svc.Get(context.Background(), "owner-2", c.ID); !errors.Is(err, domain.ErrContactNotFound) {
		t.Fatalf("expected ErrContactNotFound, got %v", err)
	}
	if _, err := svc.Delete(context.Background(), "owner-2", c.ID); !errors.Is(err, domain.ErrContactNotFound) {
		t.Fatalf("cross-user delete: expected ErrContactNotFound, got %v", err)
	}
	if _, err := svc.Update(context.Background(), "owner-2", c.ID, domain.ContactPatch{Notes: ptr("stolen")}); !errors.Is(err, domain.ErrContactNotFound) {
		t.Fatalf("cross-user update: expected ErrContactNotFound, got %v", err)
	}
}

func TestContactService_PatchMerge(t *testing.T) {
	repo := newStubContactRepo()
	svc := NewContactService(repo, zerolog.Nop())

	c := seedContact(repo, "owner-1", "Jane", time.Date(1990, 3, 14, 0, 0, 0, 0, time.UTC))

	updated, err := svc.Update(context.Background(), "owner-1", c.ID, domain.ContactPatch{
		Phone: ptr("+371 20000000"),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Phone != "+371 20000000" {
		t.Fatalf("patched field not applied: %s", updated.Phone)
	}
	if updated.FirstName != "Jane" || updated.Email != "Jane@example.com" {
		t.Fatalf("untouched fields were modified: %+v", updated)
	}
}

func TestContactService_EmptyPatchIsRead(t *testing.T) {
	repo := newStubContactRepo()
	svc := NewContactService(repo, zerolog.Nop())

	c := seedContact(repo, "owner-1", "Jane", time.Date(1990, 3, 14, 0, 0, 0, 0, time.UTC))

	got, err := svc.Update(context.Background(), "owner-1", c.ID, domain.ContactPatch{})
	if err != nil {
		t.Fatalf("empty patch: %v", err)
	}
	if got.ID != c.ID {
		t.Fatalf("unexpected contact: %+v", got)
	}
}

func TestContactService_ListCapsLimit(t *testing.T) {
	repo := newStubContactRepo()
	svc := NewContactService(repo, zerolog.Nop())

	if _, err := svc.List(context.Background(), ports.ListContactsInput{OwnerID: "owner-1", Limit: 10_000, Skip: -5}); err != nil {
		t.Fatalf("list: %v", err)
	}
	if repo.lastLimit != maxListLimit {
		t.Fatalf("expected limit clamped to %d, got %d", maxListLimit, repo.lastLimit)
	}
	if repo.lastSkip != 0 {
		t.Fatalf("expected negative skip clamped to 0, got %d", repo.lastSkip)
	}
}

func TestContactService_UpcomingBirthdaysWindow(t *testing.T) {
	repo := newStubContactRepo()
	now := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	svc := NewContactService(repo, zerolog.Nop()).WithClock(func() time.Time { return now })

	seedContact(repo, "owner-1", "InWindow", time.Date(1985, 3, 14, 0, 0, 0, 0, time.UTC))
	seedContact(repo, "owner-1", "Today", time.Date(1992, 3, 10, 0, 0, 0, 0, time.UTC))
	seedContact(repo, "owner-1", "TooLate", time.Date(1985, 3, 25, 0, 0, 0, 0, time.UTC))
	seedContact(repo, "owner-2", "OtherUser", time.Date(1985, 3, 14, 0, 0, 0, 0, time.UTC))

	got, err := svc.UpcomingBirthdays(context.Background(), "owner-1")
	if err != nil {
		t.Fatalf("birthdays: %v", err)
	}
	names := map[string]bool{}
	for _, c := range got {
		names[c.FirstName] = true
	}
	if !names["InWindow"] || !names["Today"] {
		t.Fatalf("expected InWindow and Today, got %v", names)
	}
	if names["TooLate"] || names["OtherUser"] {
		t.Fatalf("out-of-window or cross-user contact returned: %v", names)
	}

	if repo.lastTo.Sub(repo.lastFrom) != 7*24*time.Hour {
		t.Fatalf("expected a seven day window, got %v", repo.lastTo.Sub(repo.lastFrom))
	}
}

func TestContactService_UpcomingBirthdaysWindowCrossesMonth(t *testing.T) {
	repo := newStubContactRepo()
	now := time.Date(2025, 3, 28, 8, 0, 0, 0, time.UTC)
	svc := NewContactService(repo, zerolog.Nop()).WithClock(func() time.Time { return now })

	if _, err := svc.UpcomingBirthdays(context.Background(), "owner-1"); err != nil {
		t.Fatalf("birthdays: %v", err)
	}

	if repo.lastFrom.Month() != time.March || repo.lastFrom.Day() != 28 {
		t.Fatalf("expected window starting Mar 28, got %v", repo.lastFrom)
	}
	if repo.lastTo.Month() != time.April || repo.lastTo.Day() != 4 {
		t.Fatalf("expected window ending Apr 4, got %v", repo.lastTo)
	}
}

func ptr(s string) *string { return &s }
