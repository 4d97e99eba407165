package middleware // contains reusable HTTP middleware functions

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/carnetapp/carnet-server/internal/utils"
)

// JWTAuth returns an Echo middleware that validates a Bearer access
// token and injects the verified identity into the request context.
// The provided secret must match the one used when issuing tokens.
// Handlers behind this middleware read the identity via UserID and
// Email.
//
// Every failure mode (missing header, malformed token, bad signature,
// expired token) produces the same 401 body so the client cannot tell
// which check rejected it. This middleware never touches the stores;
// it only establishes who is asking.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "missing or invalid token"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			claims, err := utils.ParseAccessToken(secret, raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "missing or invalid token"})
			}

			c.Set(ctxUserID, claims.UserID)
			c.Set(ctxEmail, claims.Email)
			return next(c)
		}
	}
}
