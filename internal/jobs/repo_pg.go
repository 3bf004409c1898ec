package jobs

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
)

// PGRepo implements Repo using Postgres. Keywords are stored as a JSONB
// array.
type PGRepo struct {
	DB *sql.DB
}

const jobColumns = `id, company, role, location, status, date_applied, source, profile_id,
description, resume_snapshot, cover_letter_snapshot, keywords, notes, created_at, updated_at`

// Create inserts a job and returns it with the database-assigned id.
func (r *PGRepo) Create(ctx context.Context, job Job) (Job, error) {
	const query = `
INSERT INTO jobs (
    company, role, location, status, date_applied, source, profile_id,
    description, resume_snapshot, cover_letter_snapshot, keywords, notes, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
RETURNING id`
	keywords, err := marshalKeywords(job.Keywords)
	if err != nil {
		return Job{}, err
	}
	err = r.DB.QueryRowContext(ctx, query,
		job.Company,
		job.Role,
		job.Location,
		string(job.Status),
		job.DateApplied,
		job.Source,
		job.ProfileID,
		job.Description,
		job.ResumeSnapshot,
		job.CoverLetterSnapshot,
		keywords,
		job.Notes,
		job.CreatedAt,
		job.UpdatedAt,
	).Scan(&job.ID)
	if err != nil {
		return Job{}, err
	}
	return job, nil
}

// Update replaces all mutable columns of a job.
func (r *PGRepo) Update(ctx context.Context, job Job) error {
	const query = `
UPDATE jobs SET
    company = $2, role = $3, location = $4, status = $5, date_applied = $6,
    source = $7, profile_id = $8, description = $9, resume_snapshot = $10,
    cover_letter_snapshot = $11, keywords = $12, notes = $13, updated_at = $14
WHERE id = $1`
	keywords, err := marshalKeywords(job.Keywords)
	if err != nil {
		return err
	}
	res, err := r.DB.ExecContext(ctx, query,
		job.ID,
		job.Company,
		job.Role,
		job.Location,
		string(job.Status),
		job.DateApplied,
		job.Source,
		job.ProfileID,
		job.Description,
		job.ResumeSnapshot,
		job.CoverLetterSnapshot,
		keywords,
		job.Notes,
		job.UpdatedAt,
	)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

// GetByID returns a job by id.
func (r *PGRepo) GetByID(ctx context.Context, id int64) (Job, error) {
	const query = `SELECT ` + jobColumns + ` FROM jobs WHERE id = $1 LIMIT 1`
	job, err := scanJob(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Job{}, ErrNotFound
		}
		return Job{}, err
	}
	return job, nil
}

// List returns all jobs, newest first.
func (r *PGRepo) List(ctx context.Context) ([]Job, error) {
	const query = `SELECT ` + jobColumns + ` FROM jobs ORDER BY created_at DESC, id DESC`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, job)
	}
	return out, rows.Err()
}

// Delete removes a job by id.
func (r *PGRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

// Clear removes all jobs.
func (r *PGRepo) Clear(ctx context.Context) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM jobs`)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(row rowScanner) (Job, error) {
	var (
		job      Job
		status   string
		keywords []byte
	)
	err := row.Scan(
		&job.ID,
		&job.Company,
		&job.Role,
		&job.Location,
		&status,
		&job.DateApplied,
		&job.Source,
		&job.ProfileID,
		&job.Description,
		&job.ResumeSnapshot,
		&job.CoverLetterSnapshot,
		&keywords,
		&job.Notes,
		&job.CreatedAt,
		&job.UpdatedAt,
	)
	if err != nil {
		return Job{}, err
	}
	job.Status = Status(status)
	if len(keywords) > 0 {
		if err := json.Unmarshal(keywords, &job.Keywords); err != nil {
			return Job{}, err
		}
	}
	return job, nil
}

func marshalKeywords(keywords []string) ([]byte, error) {
	if keywords == nil {
		keywords = []string{}
	}
	return json.Marshal(keywords)
}

func requireRowAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

var _ Repo = (*PGRepo)(nil)
