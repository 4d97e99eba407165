package model

import "time"

// Contact mirrors the `contacts` table. Every contact belongs to
// exactly one user; OwnerID references users.id and every query that
// touches this table is scoped by it.
type Contact struct {
	ID        string    // contacts.id
	OwnerID   string    // contacts.owner_id (references users.id)
	FirstName string    // contacts.first_name
	LastName  string    // contacts.last_name
	Phone     string    // contacts.phone
	CreatedAt time.Time // contacts.created_at
	UpdatedAt time.Time // contacts.updated_at
}
