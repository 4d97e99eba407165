package middleware

// identity.go defines the context keys under which JWTAuth stores the
// verified identity, and the accessors handlers use to read it back.

import (
	"errors"

	"github.com/labstack/echo/v4"
)

const (
	ctxUserID = "user_id"
	ctxEmail  = "email"
)

// ErrNoIdentity is returned when a handler behind JWTAuth cannot find
// an identity in the context. Seeing it means a route was registered
// without the middleware.
var ErrNoIdentity = errors.New("no authenticated identity in context")

// UserID returns the authenticated user's id from the Echo context.
func UserID(c echo.Context) (string, error) {
	if v, ok := c.Get(ctxUserID).(string); ok && v != "" {
		return v, nil
	}
	return "", ErrNoIdentity
}

// Email returns the authenticated user's email, or "" when absent.
// The email claim is a convenience copy, not authoritative; ownership
// decisions use UserID only.
func Email(c echo.Context) string {
	v, _ := c.Get(ctxEmail).(string)
	return v
}
