package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/carnetapp/carnet-server/internal/config"
	"github.com/carnetapp/carnet-server/internal/middleware"
	"github.com/carnetapp/carnet-server/internal/model"
	"github.com/carnetapp/carnet-server/internal/repository"
	"github.com/carnetapp/carnet-server/internal/utils"
)

// AuthHandler bundles dependencies for registration, login and profile.
type AuthHandler struct {
	Cfg   config.Config
	Users repository.UserStore
}

func NewAuthHandler(cfg config.Config, users repository.UserStore) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: users}
}

// ----- DTOs -----

type registerReq struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	Phone     string `json:"phone"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// userPart is the outward shape of a user. It is built from
// model.User by hand so the password hash cannot leak through an
// overlooked json tag.
type userPart struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	CreatedAt time.Time `json:"createdAt"`
}

func toUserPart(u model.User) userPart {
	return userPart{
		ID:        u.ID,
		Email:     u.Email,
		Phone:     u.Phone,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		CreatedAt: u.CreatedAt,
	}
}

// Register creates a new account. Email, password and phone are
// required; names default to "".
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request body"})
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" || req.Phone == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "email, password and phone are required"})
	}
	if !utils.ValidPhone(req.Phone) {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid phone: at least 10 characters, digits only"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.Create(ctx, req.Email, req.Password, req.Phone, req.FirstName, req.LastName, h.Cfg.BcryptCost)
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "email already in use"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "could not create user"})
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "user created",
		"user":    toUserPart(u),
	})
}

// Login verifies credentials and returns a signed bearer token. An
// unknown email yields 404, a wrong password 401; a hashing library
// failure is a 500, never a silent pass or fail.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request body"})
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "email and password are required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "could not load user"})
	}

	ok, err := utils.VerifyPassword(u.PasswordHash, req.Password)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "could not verify password"})
	}
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "incorrect password"})
	}

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.ID, u.Email, h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "could not issue token"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "login successful",
		"token":   access.Token,
		"user":    toUserPart(u),
	})
}

// Profile returns the authenticated user's own record.
func (h *AuthHandler) Profile(c echo.Context) error {
	uid, err := middleware.UserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "missing or invalid token"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "could not load user"})
	}

	return c.JSON(http.StatusOK, toUserPart(u))
}
