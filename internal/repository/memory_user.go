package repository

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/carnetapp/carnet-server/internal/model"
	"github.com/carnetapp/carnet-server/internal/utils"
)

// MemoryUserStore is the ephemeral, in-process credential store used
// when no database is configured (local development, tests). It
// implements the same UserStore contract as the MySQL backend. The
// email uniqueness check runs inside the write lock, so two concurrent
// registrations with the same email still resolve to exactly one
// success and one ErrEmailExists.
type MemoryUserStore struct {
	mu    sync.RWMutex
	users map[string]model.User // keyed by id
}

func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{users: make(map[string]model.User)}
}

func (s *MemoryUserStore) emailTakenLocked(email, excludeID string) bool {
	for _, u := range s.users {
		if u.Email == email && u.ID != excludeID {
			return true
		}
	}
	return false
}

// Create hashes the password and stores a new user. Hashing happens
// before the lock is taken; bcrypt is slow on purpose and must not
// serialize unrelated requests.
func (s *MemoryUserStore) Create(ctx context.Context, email, password, phone, firstName, lastName string, cost int) (model.User, error) {
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return model.User{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.emailTakenLocked(email, "") {
		return model.User{}, ErrEmailExists
	}
	now := time.Now().UTC()
	u := model.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		Phone:        strings.TrimSpace(phone),
		FirstName:    firstName,
		LastName:     lastName,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	s.users[u.ID] = u
	return u, nil
}

func (s *MemoryUserStore) GetByEmail(ctx context.Context, email string) (model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return model.User{}, ErrNotFound
}

func (s *MemoryUserStore) GetByID(ctx context.Context, id string) (model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return model.User{}, ErrNotFound
	}
	return u, nil
}

func (s *MemoryUserStore) Update(ctx context.Context, id string, upd UserUpdate) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return model.User{}, ErrNotFound
	}
	if s.emailTakenLocked(upd.Email, id) {
		return model.User{}, ErrEmailExists
	}
	u.Email = upd.Email
	u.Phone = strings.TrimSpace(upd.Phone)
	if upd.FirstName != nil {
		u.FirstName = *upd.FirstName
	}
	if upd.LastName != nil {
		u.LastName = *upd.LastName
	}
	u.UpdatedAt = time.Now().UTC()
	s.users[id] = u
	return u, nil
}

func (s *MemoryUserStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return ErrNotFound
	}
	delete(s.users, id)
	return nil
}
