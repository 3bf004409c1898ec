package settings

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const settingsColumns = `id, open_router_api_key, theme, updated_at`

// Get returns the oldest settings row.
func (r *PGRepo) Get(ctx context.Context) (AppSettings, error) {
	const query = `SELECT ` + settingsColumns + ` FROM settings ORDER BY id ASC LIMIT 1`
	s, err := scanSettings(r.DB.QueryRowContext(ctx, query))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return AppSettings{}, ErrNotFound
		}
		return AppSettings{}, err
	}
	return s, nil
}

// Insert stores a settings row and returns it with the database-assigned id.
func (r *PGRepo) Insert(ctx context.Context, s AppSettings) (AppSettings, error) {
	const query = `
INSERT INTO settings (open_router_api_key, theme, updated_at)
VALUES ($1, $2, $3)
RETURNING id`
	err := r.DB.QueryRowContext(ctx, query,
		s.OpenRouterAPIKey,
		string(s.Theme),
		s.UpdatedAt,
	).Scan(&s.ID)
	if err != nil {
		return AppSettings{}, err
	}
	return s, nil
}

// Update replaces the mutable columns of the settings row.
func (r *PGRepo) Update(ctx context.Context, s AppSettings) error {
	const query = `
UPDATE settings SET open_router_api_key = $2, theme = $3, updated_at = $4
WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query,
		s.ID,
		s.OpenRouterAPIKey,
		string(s.Theme),
		s.UpdatedAt,
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

// Reset drops every settings row and installs s as the only one, in a single
// transaction.
func (r *PGRepo) Reset(ctx context.Context, s AppSettings) (AppSettings, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return AppSettings{}, err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM settings`); err != nil {
		return AppSettings{}, err
	}
	const query = `
INSERT INTO settings (open_router_api_key, theme, updated_at)
VALUES ($1, $2, $3)
RETURNING id`
	err = tx.QueryRowContext(ctx, query,
		s.OpenRouterAPIKey,
		string(s.Theme),
		s.UpdatedAt,
	).Scan(&s.ID)
	if err != nil {
		return AppSettings{}, err
	}
	if err := tx.Commit(); err != nil {
		return AppSettings{}, err
	}
	return s, nil
}

func scanSettings(row *sql.Row) (AppSettings, error) {
	var (
		s     AppSettings
		theme string
	)
	err := row.Scan(&s.ID, &s.OpenRouterAPIKey, &theme, &s.UpdatedAt)
	if err != nil {
		return AppSettings{}, err
	}
	s.Theme = Theme(theme)
	return s, nil
}

var _ Repo = (*PGRepo)(nil)
