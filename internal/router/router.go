// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/carnetapp/carnet-server/internal/config"
	"github.com/carnetapp/carnet-server/internal/handler"
	"github.com/carnetapp/carnet-server/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication on
// the provided Echo instance. Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the account routes. Registration and login are
// public; the profile endpoint sits behind the JWT middleware.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)

	p := e.Group("/auth")
	p.Use(middleware.JWTAuth(jwtSecret))
	p.GET("/profile", a.Profile)
}

// RegisterUsers registers the self-service profile routes. The handler
// enforces that the path id matches the authenticated identity.
func RegisterUsers(e *echo.Echo, u *handler.UserHandler, jwtSecret string) {
	g := e.Group("/utilisateur")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.GET("/:id", u.Get)
	g.PUT("/:id", u.Update)
	g.DELETE("/:id", u.Delete)
}

// RegisterContacts registers the contact CRUD routes. All of them
// require a valid bearer token; the list endpoint additionally goes
// through the per-owner response cache when Redis is available.
func RegisterContacts(e *echo.Echo, h *handler.ContactHandler, jwtSecret string, cacheCfg config.CacheConfig, rdb *redis.Client) {
	g := e.Group("/contacts")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.POST("", h.Create)
	g.GET("", h.List, middleware.ContactsCache(cacheCfg, rdb))
	g.GET("/:id", h.Get)
	g.PATCH("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}
