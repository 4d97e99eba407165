package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/carnetapp/carnet-server/internal/middleware"
	"github.com/carnetapp/carnet-server/internal/repository"
	"github.com/carnetapp/carnet-server/internal/utils"
)

// UserHandler serves the self-service profile routes under
// /utilisateur/:id. Every operation guards ownership first: the
// path-addressed id must equal the authenticated id, otherwise 403.
type UserHandler struct {
	Users repository.UserStore
}

func NewUserHandler(users repository.UserStore) *UserHandler {
	return &UserHandler{Users: users}
}

type updateUserReq struct {
	Email     string  `json:"email"`
	Phone     string  `json:"phone"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
}

// ownID validates the path id and compares it against the
// authenticated identity. It writes the error response itself and
// returns ok=false when the request must not proceed.
func (h *UserHandler) ownID(c echo.Context) (string, bool) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		_ = c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
		return "", false
	}
	uid, err := middleware.UserID(c)
	if err != nil {
		_ = c.JSON(http.StatusUnauthorized, echo.Map{"message": "missing or invalid token"})
		return "", false
	}
	if uid != id {
		_ = c.JSON(http.StatusForbidden, echo.Map{"message": "you can only access your own account"})
		return "", false
	}
	return id, true
}

// Get returns the caller's own record.
func (h *UserHandler) Get(c echo.Context) error {
	id, ok := h.ownID(c)
	if !ok {
		return nil
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "could not load user"})
	}
	return c.JSON(http.StatusOK, toUserPart(u))
}

// Update changes email, phone and optionally the names. The password
// is never updatable through this route.
func (h *UserHandler) Update(c echo.Context) error {
	id, ok := h.ownID(c)
	if !ok {
		return nil
	}

	var req updateUserReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request body"})
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Phone == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "email and phone are required"})
	}
	if !utils.ValidPhone(req.Phone) {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid phone: at least 10 characters, digits only"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.Update(ctx, id, repository.UserUpdate{
		Email:     req.Email,
		Phone:     req.Phone,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrEmailExists):
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "email already in use"})
		case errors.Is(err, repository.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"message": "user not found"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "could not update user"})
		}
	}
	return c.JSON(http.StatusOK, toUserPart(u))
}

// Delete removes the caller's own account.
func (h *UserHandler) Delete(c echo.Context) error {
	id, ok := h.ownID(c)
	if !ok {
		return nil
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Users.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "could not delete user"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "user deleted"})
}
