package contacts

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const contactColumns = `id, name, role, company, email, linkedin, status,
relationship_strength, notes, created_at, updated_at`

// Create inserts a contact and returns it with the database-assigned id.
func (r *PGRepo) Create(ctx context.Context, contact Contact) (Contact, error) {
	const query = `
INSERT INTO contacts (
    name, role, company, email, linkedin, status, relationship_strength, notes, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
RETURNING id`
	err := r.DB.QueryRowContext(ctx, query,
		contact.Name,
		contact.Role,
		contact.Company,
		contact.Email,
		contact.LinkedIn,
		string(contact.Status),
		string(contact.RelationshipStrength),
		contact.Notes,
		contact.CreatedAt,
		contact.UpdatedAt,
	).Scan(&contact.ID)
	if err != nil {
		return Contact{}, err
	}
	return contact, nil
}

// Update replaces all mutable columns of a contact.
func (r *PGRepo) Update(ctx context.Context, contact Contact) error {
	const query = `
UPDATE contacts SET
    name = $2, role = $3, company = $4, email = $5, linkedin = $6,
    status = $7, relationship_strength = $8, notes = $9, updated_at = $10
WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query,
		contact.ID,
		contact.Name,
		contact.Role,
		contact.Company,
		contact.Email,
		contact.LinkedIn,
		string(contact.Status),
		string(contact.RelationshipStrength),
		contact.Notes,
		contact.UpdatedAt,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// GetByID returns a contact by id.
func (r *PGRepo) GetByID(ctx context.Context, id int64) (Contact, error) {
	const query = `SELECT ` + contactColumns + ` FROM contacts WHERE id = $1 LIMIT 1`
	contact, err := scanContact(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Contact{}, ErrNotFound
		}
		return Contact{}, err
	}
	return contact, nil
}

// List returns all contacts, newest first.
func (r *PGRepo) List(ctx context.Context) ([]Contact, error) {
	const query = `SELECT ` + contactColumns + ` FROM contacts ORDER BY created_at DESC, id DESC`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Contact
	for rows.Next() {
		contact, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, contact)
	}
	return out, rows.Err()
}

// Delete removes a contact by id.
func (r *PGRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM contacts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanContact(row rowScanner) (Contact, error) {
	var (
		contact  Contact
		status   string
		strength string
	)
	err := row.Scan(
		&contact.ID,
		&contact.Name,
		&contact.Role,
		&contact.Company,
		&contact.Email,
		&contact.LinkedIn,
		&status,
		&strength,
		&contact.Notes,
		&contact.CreatedAt,
		&contact.UpdatedAt,
	)
	if err != nil {
		return Contact{}, err
	}
	contact.Status = Status(status)
	contact.RelationshipStrength = Strength(strength)
	return contact, nil
}

var _ Repo = (*PGRepo)(nil)
