package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/carnetapp/carnet-server/internal/model"
)

// ContactRepo is the MySQL-backed contact store. Every statement that
// addresses a single row filters on both id and owner_id, so a lookup
// with the wrong owner behaves exactly like a lookup of a missing row.
type ContactRepo struct{ DB *sql.DB }

func NewContactRepo(db *sql.DB) *ContactRepo { return &ContactRepo{DB: db} }

const contactColumns = "id,owner_id,first_name,last_name,phone,created_at,updated_at"

func scanContact(row *sql.Row) (model.Contact, error) {
	var c model.Contact
	err := row.Scan(&c.ID, &c.OwnerID, &c.FirstName, &c.LastName, &c.Phone, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Contact{}, ErrNotFound
	}
	return c, err
}

// Create inserts a contact under the given owner.
func (r *ContactRepo) Create(ctx context.Context, ownerID, firstName, lastName, phone string) (model.Contact, error) {
	c := model.Contact{
		ID:        uuid.NewString(),
		OwnerID:   ownerID,
		FirstName: strings.TrimSpace(firstName),
		LastName:  strings.TrimSpace(lastName),
		Phone:     strings.TrimSpace(phone),
		CreatedAt: time.Now().UTC(),
	}
	c.UpdatedAt = c.CreatedAt
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO contacts (id, owner_id, first_name, last_name, phone, created_at, updated_at) VALUES (?,?,?,?,?,?,?)",
		c.ID, c.OwnerID, c.FirstName, c.LastName, c.Phone, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return model.Contact{}, err
	}
	return c, nil
}

// ListByOwner returns every contact owned by ownerID, oldest first.
func (r *ContactRepo) ListByOwner(ctx context.Context, ownerID string) ([]model.Contact, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+contactColumns+" FROM contacts WHERE owner_id=? ORDER BY created_at, id", ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Contact, 0)
	for rows.Next() {
		var c model.Contact
		if err := rows.Scan(&c.ID, &c.OwnerID, &c.FirstName, &c.LastName, &c.Phone, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// GetByID fetches one contact scoped by owner.
func (r *ContactRepo) GetByID(ctx context.Context, id, ownerID string) (model.Contact, error) {
	return scanContact(r.DB.QueryRowContext(ctx,
		"SELECT "+contactColumns+" FROM contacts WHERE id=? AND owner_id=? LIMIT 1", id, ownerID))
}

// Update applies the non-nil fields of upd to the owner's contact.
func (r *ContactRepo) Update(ctx context.Context, id, ownerID string, upd ContactUpdate) (model.Contact, error) {
	if _, err := r.GetByID(ctx, id, ownerID); err != nil {
		return model.Contact{}, err
	}
	var phone *string
	if upd.Phone != nil {
		p := strings.TrimSpace(*upd.Phone)
		phone = &p
	}
	_, err := r.DB.ExecContext(ctx,
		"UPDATE contacts SET first_name=COALESCE(?, first_name), last_name=COALESCE(?, last_name), phone=COALESCE(?, phone), updated_at=? WHERE id=? AND owner_id=?",
		upd.FirstName, upd.LastName, phone, time.Now().UTC(), id, ownerID)
	if err != nil {
		return model.Contact{}, err
	}
	return r.GetByID(ctx, id, ownerID)
}

// Delete removes the owner's contact.
func (r *ContactRepo) Delete(ctx context.Context, id, ownerID string) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM contacts WHERE id=? AND owner_id=?", id, ownerID)
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
