// Package repository defines the credential and contact stores together
// with the sentinel error values shared by their backends. Handlers use
// the sentinels to translate storage failures into HTTP statuses without
// inspecting backend-specific error text.
package repository

import "errors"

// ErrNotFound is returned when no record matches the given id within
// the caller's scope. For contacts the scope always includes the owner,
// so "does not exist" and "exists but belongs to someone else" are
// indistinguishable by design. Handlers translate this into 404.
var ErrNotFound = errors.New("record not found")

// ErrEmailExists is returned when a create or update would leave two
// live users sharing an email. Handlers translate this into 400.
var ErrEmailExists = errors.New("email already exists")
