package domain

import (
	"errors"
	"time"
)

// ErrContactNotFound covers both an absent contact and one owned by another
// user; callers cannot tell the two apart.
var ErrContactNotFound = errors.New("contact not found")

// Contact is a personal contact record owned by exactly one user. Every
// read, update and delete is scoped by OwnerID.
type Contact struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	OwnerID   string    `json:"-" bson:"owner_id"`
	FirstName string    `json:"first_name" bson:"first_name"`
	LastName  string    `json:"last_name" bson:"last_name"`
	Email     string    `json:"email" bson:"email"`
	Phone     string    `json:"phone" bson:"phone"`
	BirthDate time.Time `json:"birth_date" bson:"birth_date"`
	Notes     string    `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// ContactPatch is a partial update: only non-nil fields are applied to the
// stored contact.
type ContactPatch struct {
	FirstName *string
	LastName  *string
	Email     *string
	Phone     *string
	BirthDate *time.Time
	Notes     *string
}

// Empty reports whether the patch carries no fields at all.
func (p ContactPatch) Empty() bool {
	return p.FirstName == nil && p.LastName == nil && p.Email == nil &&
		p.Phone == nil && p.BirthDate == nil && p.Notes == nil
}
