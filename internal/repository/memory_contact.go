package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/carnetapp/carnet-server/internal/model"
)

// MemoryContactStore is the in-process counterpart of ContactRepo,
// paired with MemoryUserStore when no database is configured. Owner
// scoping follows the same rule as the SQL backend: a lookup with the
// wrong owner is indistinguishable from a lookup of a missing id.
type MemoryContactStore struct {
	mu       sync.RWMutex
	contacts map[string]model.Contact // keyed by id
}

func NewMemoryContactStore() *MemoryContactStore {
	return &MemoryContactStore{contacts: make(map[string]model.Contact)}
}

func (s *MemoryContactStore) Create(ctx context.Context, ownerID, firstName, lastName, phone string) (model.Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	c := model.Contact{
		ID:        uuid.NewString(),
		OwnerID:   ownerID,
		FirstName: strings.TrimSpace(firstName),
		LastName:  strings.TrimSpace(lastName),
		Phone:     strings.TrimSpace(phone),
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.contacts[c.ID] = c
	return c, nil
}

func (s *MemoryContactStore) ListByOwner(ctx context.Context, ownerID string) ([]model.Contact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Contact, 0)
	for _, c := range s.contacts {
		if c.OwnerID == ownerID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (s *MemoryContactStore) GetByID(ctx context.Context, id, ownerID string) (model.Contact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.contacts[id]
	if !ok || c.OwnerID != ownerID {
		return model.Contact{}, ErrNotFound
	}
	return c, nil
}

func (s *MemoryContactStore) Update(ctx context.Context, id, ownerID string, upd ContactUpdate) (model.Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.contacts[id]
	if !ok || c.OwnerID != ownerID {
		return model.Contact{}, ErrNotFound
	}
	if upd.FirstName != nil {
		c.FirstName = strings.TrimSpace(*upd.FirstName)
	}
	if upd.LastName != nil {
		c.LastName = strings.TrimSpace(*upd.LastName)
	}
	if upd.Phone != nil {
		c.Phone = strings.TrimSpace(*upd.Phone)
	}
	c.UpdatedAt = time.Now().UTC()
	s.contacts[id] = c
	return c, nil
}

func (s *MemoryContactStore) Delete(ctx context.Context, id, ownerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.contacts[id]
	if !ok || c.OwnerID != ownerID {
		return ErrNotFound
	}
	delete(s.contacts, id)
	return nil
}
