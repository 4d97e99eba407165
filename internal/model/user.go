package model

import "time"

// User represents an account record as stored in the `users` table.
// IDs are opaque UUID strings generated at creation time. The json
// tags are omitted here because these structs are primarily used by
// the repository layer; handlers define separate response types so
// the password hash can never leak into an API response.
//
// Fields:
//  ID           – opaque UUID primary key.
//  Email        – unique email address (uniqueness enforced by the store).
//  PasswordHash – bcrypt hashed password.
//  Phone        – digits only, at least 10 characters.
//  FirstName    – optional, defaults to "".
//  LastName     – optional, defaults to "".
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
	ID           string    // users.id
	Email        string    // users.email
	PasswordHash string    // users.password_hash
	Phone        string    // users.phone
	FirstName    string    // users.first_name
	LastName     string    // users.last_name
	CreatedAt    time.Time // users.created_at
	UpdatedAt    time.Time // users.updated_at
}
