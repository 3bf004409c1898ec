package backup

import (
	"context"
	"database/sql"
	"time"

	"jobos-backend/internal/settings"
)

// PGWiper clears all user tables in one transaction, so the wipe either
// happens completely or not at all.
type PGWiper struct {
	DB  *sql.DB
	Now func() time.Time
}

// NewPGWiper constructs a PGWiper.
func NewPGWiper(db *sql.DB) *PGWiper {
	return &PGWiper{DB: db, Now: time.Now}
}

// Wipe deletes every job, profile and settings row and inserts the default
// settings, all inside a single transaction.
func (w *PGWiper) Wipe(ctx context.Context) error {
	now := w.Now
	if now == nil {
		now = time.Now
	}
	tx, err := w.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, stmt := range []string{
		`DELETE FROM jobs`,
		`DELETE FROM profiles`,
		`DELETE FROM settings`,
	} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	defaults := settings.Defaults()
	_, err = tx.ExecContext(ctx,
		`INSERT INTO settings (open_router_api_key, theme, updated_at) VALUES ($1, $2, $3)`,
		defaults.OpenRouterAPIKey,
		string(defaults.Theme),
		now().UTC(),
	)
	if err != nil {
		return err
	}
	return tx.Commit()
}

var _ Wiper = (*PGWiper)(nil)
