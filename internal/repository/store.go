package repository

import (
	"context"

	"github.com/carnetapp/carnet-server/internal/model"
)

// UserUpdate carries the mutable profile fields for an update. Email and
// Phone are required by the API; the name pointers distinguish "not sent,
// keep the current value" (nil) from "set to this value".
type UserUpdate struct {
	Email     string
	Phone     string
	FirstName *string
	LastName  *string
}

// ContactUpdate carries a partial contact update. A nil pointer leaves
// the corresponding field untouched.
type ContactUpdate struct {
	FirstName *string
	LastName  *string
	Phone     *string
}

// UserStore is the credential store contract. Two interchangeable
// backends implement it: UserRepo on MySQL and MemoryUserStore for
// development and tests. The backend is selected at startup by
// configuration, never by handler logic.
//
// Email uniqueness is the store's responsibility: Create and Update
// return ErrEmailExists when the email is taken by another live record,
// and the check must hold under concurrent writes (a database unique
// constraint, or the in-memory store's write lock).
type UserStore interface {
	// Create hashes the password with the given bcrypt cost and inserts
	// a new user, returning the stored record.
	Create(ctx context.Context, email, password, phone, firstName, lastName string, cost int) (model.User, error)
	// GetByEmail fetches a user by exact email, ErrNotFound when absent.
	GetByEmail(ctx context.Context, email string) (model.User, error)
	// GetByID fetches a user by id, ErrNotFound when absent.
	GetByID(ctx context.Context, id string) (model.User, error)
	// Update applies profile changes (never the password) after
	// re-checking email uniqueness against all other records.
	Update(ctx context.Context, id string, upd UserUpdate) (model.User, error)
	// Delete removes a user, ErrNotFound when absent.
	Delete(ctx context.Context, id string) error
}

// ContactStore is the contact record contract. Every method that
// addresses a single contact takes the owner id and scopes the lookup
// by it at the query level, so no code path ever loads another owner's
// contact into memory.
type ContactStore interface {
	Create(ctx context.Context, ownerID, firstName, lastName, phone string) (model.Contact, error)
	ListByOwner(ctx context.Context, ownerID string) ([]model.Contact, error)
	GetByID(ctx context.Context, id, ownerID string) (model.Contact, error)
	Update(ctx context.Context, id, ownerID string, upd ContactUpdate) (model.Contact, error)
	Delete(ctx context.Context, id, ownerID string) error
}
