package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/carnetapp/carnet-server/internal/config"
	"github.com/carnetapp/carnet-server/internal/middleware"
	"github.com/carnetapp/carnet-server/internal/model"
	"github.com/carnetapp/carnet-server/internal/queue"
	"github.com/carnetapp/carnet-server/internal/repository"
	queue_publisher "github.com/carnetapp/carnet-server/internal/service"
	"github.com/carnetapp/carnet-server/internal/utils"
)

// ContactHandler serves the per-user contact CRUD routes. Ownership is
// never checked here after the fact: the authenticated user id goes
// into every store call and the store scopes its queries by it, so a
// contact belonging to someone else is simply not found.
type ContactHandler struct {
	Contacts repository.ContactStore
	CacheCfg config.CacheConfig
	Redis    *redis.Client // may be nil; cache invalidation becomes a no-op
}

func NewContactHandler(contacts repository.ContactStore, cacheCfg config.CacheConfig, rdb *redis.Client) *ContactHandler {
	return &ContactHandler{Contacts: contacts, CacheCfg: cacheCfg, Redis: rdb}
}

type createContactReq struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
}

type updateContactReq struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Phone     *string `json:"phone"`
}

type contactPart struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"ownerId"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toContactPart(c model.Contact) contactPart {
	return contactPart{
		ID:        c.ID,
		OwnerID:   c.OwnerID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Phone:     c.Phone,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// publishEvent sends a contact audit event without blocking the
// request; the mutation already committed, so a broker failure is only
// logged by the publisher.
func publishEvent(action string, c model.Contact) {
	ev := queue.ContactEvent{
		Action:     action,
		ContactID:  c.ID,
		OwnerID:    c.OwnerID,
		FirstName:  c.FirstName,
		LastName:   c.LastName,
		Phone:      c.Phone,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = queue_publisher.PublishContactEvent(ctx, ev)
	}()
}

func (h *ContactHandler) invalidateCache(ctx context.Context, ownerID string) {
	middleware.InvalidateContactsCache(ctx, h.CacheCfg, h.Redis, ownerID)
}

// contactID validates the :id path parameter.
func contactID(c echo.Context) (string, bool) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		_ = c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
		return "", false
	}
	return id, true
}

// Create stores a new contact owned by the caller.
func (h *ContactHandler) Create(c echo.Context) error {
	uid, err := middleware.UserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "missing or invalid token"})
	}

	var req createContactReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request body"})
	}
	if req.FirstName == "" || req.LastName == "" || req.Phone == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "firstName, lastName and phone are required"})
	}
	if !utils.ValidPhone(req.Phone) {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid phone: at least 10 characters, digits only"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	ct, err := h.Contacts.Create(ctx, uid, req.FirstName, req.LastName, req.Phone)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "could not create contact"})
	}

	h.invalidateCache(ctx, uid)
	publishEvent(queue.ActionCreated, ct)
	return c.JSON(http.StatusCreated, toContactPart(ct))
}

// List returns every contact owned by the caller.
func (h *ContactHandler) List(c echo.Context) error {
	uid, err := middleware.UserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "missing or invalid token"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	list, err := h.Contacts.ListByOwner(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "could not list contacts"})
	}

	out := make([]contactPart, 0, len(list))
	for _, ct := range list {
		out = append(out, toContactPart(ct))
	}
	return c.JSON(http.StatusOK, out)
}

// Get returns one of the caller's contacts by id.
func (h *ContactHandler) Get(c echo.Context) error {
	uid, err := middleware.UserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "missing or invalid token"})
	}
	id, ok := contactID(c)
	if !ok {
		return nil
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	ct, err := h.Contacts.GetByID(ctx, id, uid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "contact not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "could not load contact"})
	}
	return c.JSON(http.StatusOK, toContactPart(ct))
}

// Update applies a partial update to one of the caller's contacts.
func (h *ContactHandler) Update(c echo.Context) error {
	uid, err := middleware.UserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "missing or invalid token"})
	}
	id, ok := contactID(c)
	if !ok {
		return nil
	}

	var req updateContactReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request body"})
	}
	if req.FirstName == nil && req.LastName == nil && req.Phone == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "at least one field to update"})
	}
	if req.Phone != nil && !utils.ValidPhone(*req.Phone) {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid phone: at least 10 characters, digits only"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	ct, err := h.Contacts.Update(ctx, id, uid, repository.ContactUpdate{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "contact not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "could not update contact"})
	}

	h.invalidateCache(ctx, uid)
	return c.JSON(http.StatusOK, toContactPart(ct))
}

// Delete removes one of the caller's contacts.
func (h *ContactHandler) Delete(c echo.Context) error {
	uid, err := middleware.UserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "missing or invalid token"})
	}
	id, ok := contactID(c)
	if !ok {
		return nil
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	ct, err := h.Contacts.GetByID(ctx, id, uid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "contact not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "could not load contact"})
	}
	if err := h.Contacts.Delete(ctx, id, uid); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "contact not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "could not delete contact"})
	}

	h.invalidateCache(ctx, uid)
	publishEvent(queue.ActionDeleted, ct)
	return c.JSON(http.StatusOK, echo.Map{"message": "contact deleted"})
}
