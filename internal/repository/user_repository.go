package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/carnetapp/carnet-server/internal/model"
	"github.com/carnetapp/carnet-server/internal/utils"
)

// UserRepo is the MySQL-backed credential store. The `users` table
// carries a UNIQUE KEY on email, so the duplicate check for two
// concurrent registrations is resolved by the database, not by a
// check-then-write in application code.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// isDuplicateKey detects a MySQL 1062 duplicate-entry error.
func isDuplicateKey(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "1062")
}

// Create hashes the password and inserts the user. Returns
// ErrEmailExists when the email is already taken.
func (r *UserRepo) Create(ctx context.Context, email, password, phone, firstName, lastName string, cost int) (model.User, error) {
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return model.User{}, err
	}
	u := model.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		Phone:        strings.TrimSpace(phone),
		FirstName:    firstName,
		LastName:     lastName,
		CreatedAt:    time.Now().UTC(),
	}
	u.UpdatedAt = u.CreatedAt
	_, err = r.DB.ExecContext(ctx,
		"INSERT INTO users (id, email, password_hash, phone, first_name, last_name, created_at, updated_at) VALUES (?,?,?,?,?,?,?,?)",
		u.ID, u.Email, u.PasswordHash, u.Phone, u.FirstName, u.LastName, u.CreatedAt, u.UpdatedAt)
	if err != nil {
		if isDuplicateKey(err) {
			return model.User{}, ErrEmailExists
		}
		return model.User{}, err
	}
	return u, nil
}

const userColumns = "id,email,password_hash,phone,first_name,last_name,created_at,updated_at"

func scanUser(row *sql.Row) (model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Phone, &u.FirstName, &u.LastName, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, ErrNotFound
	}
	return u, err
}

// GetByEmail fetches a user by exact email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	return scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email=? LIMIT 1", email))
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id string) (model.User, error) {
	return scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id=? LIMIT 1", id))
}

// Update applies profile changes. The UNIQUE KEY on email enforces the
// self-excluding uniqueness rule: rewriting a row with its own email
// does not violate the constraint, taking someone else's does.
func (r *UserRepo) Update(ctx context.Context, id string, upd UserUpdate) (model.User, error) {
	if _, err := r.GetByID(ctx, id); err != nil {
		return model.User{}, err
	}
	_, err := r.DB.ExecContext(ctx,
		"UPDATE users SET email=?, phone=?, first_name=COALESCE(?, first_name), last_name=COALESCE(?, last_name), updated_at=? WHERE id=?",
		upd.Email, strings.TrimSpace(upd.Phone), upd.FirstName, upd.LastName, time.Now().UTC(), id)
	if err != nil {
		if isDuplicateKey(err) {
			return model.User{}, ErrEmailExists
		}
		return model.User{}, err
	}
	return r.GetByID(ctx, id)
}

// Delete removes a user by id.
func (r *UserRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM users WHERE id=?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
