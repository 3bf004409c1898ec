package profiles

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
)

// PGRepo implements Repo using Postgres. Nested lists and grouped fields are
// stored as JSONB columns; their items carry client-generated UUIDs.
type PGRepo struct {
	DB *sql.DB
}

const profileColumns = `id, name, target_role, intro, skills, contact_info, hr_data,
experience, projects, education, certifications, photo, updated_at`

// Create inserts a profile and returns it with the database-assigned id.
func (r *PGRepo) Create(ctx context.Context, profile Profile) (Profile, error) {
	const query = `
INSERT INTO profiles (
    name, target_role, intro, skills, contact_info, hr_data,
    experience, projects, education, certifications, photo, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
RETURNING id`
	cols, err := marshalProfile(profile)
	if err != nil {
		return Profile{}, err
	}
	err = r.DB.QueryRowContext(ctx, query,
		profile.Name,
		profile.TargetRole,
		profile.Intro,
		cols.skills,
		cols.contactInfo,
		cols.hrData,
		cols.experience,
		cols.projects,
		cols.education,
		cols.certifications,
		profile.Photo,
		profile.UpdatedAt,
	).Scan(&profile.ID)
	if err != nil {
		return Profile{}, err
	}
	return profile, nil
}

// Update replaces all mutable columns of a profile.
func (r *PGRepo) Update(ctx context.Context, profile Profile) error {
	const query = `
UPDATE profiles SET
    name = $2, target_role = $3, intro = $4, skills = $5, contact_info = $6,
    hr_data = $7, experience = $8, projects = $9, education = $10,
    certifications = $11, photo = $12, updated_at = $13
WHERE id = $1`
	cols, err := marshalProfile(profile)
	if err != nil {
		return err
	}
	res, err := r.DB.ExecContext(ctx, query,
		profile.ID,
		profile.Name,
		profile.TargetRole,
		profile.Intro,
		cols.skills,
		cols.contactInfo,
		cols.hrData,
		cols.experience,
		cols.projects,
		cols.education,
		cols.certifications,
		profile.Photo,
		profile.UpdatedAt,
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

// GetByID returns a profile by id.
func (r *PGRepo) GetByID(ctx context.Context, id int64) (Profile, error) {
	const query = `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1 LIMIT 1`
	profile, err := scanProfile(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Profile{}, ErrNotFound
		}
		return Profile{}, err
	}
	return profile, nil
}

// List returns all profiles, most recently updated first.
func (r *PGRepo) List(ctx context.Context) ([]Profile, error) {
	const query = `SELECT ` + profileColumns + ` FROM profiles ORDER BY updated_at DESC, id DESC`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Profile
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, profile)
	}
	return out, rows.Err()
}

// Delete removes a profile by id.
func (r *PGRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM profiles WHERE id = $1`, id)
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

// Clear removes all profiles.
func (r *PGRepo) Clear(ctx context.Context) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM profiles`)
	return err
}

type profileColumnsJSON struct {
	skills         []byte
	contactInfo    []byte
	hrData         []byte
	experience     []byte
	projects       []byte
	education      []byte
	certifications []byte
}

func marshalProfile(p Profile) (profileColumnsJSON, error) {
	var (
		cols profileColumnsJSON
		err  error
	)
	if p.Skills == nil {
		p.Skills = []string{}
	}
	if p.Experience == nil {
		p.Experience = []Experience{}
	}
	if p.Projects == nil {
		p.Projects = []Project{}
	}
	if p.Education == nil {
		p.Education = []Education{}
	}
	if p.Certifications == nil {
		p.Certifications = []Certification{}
	}
	if cols.skills, err = json.Marshal(p.Skills); err != nil {
		return cols, err
	}
	if cols.contactInfo, err = json.Marshal(p.ContactInfo); err != nil {
		return cols, err
	}
	if cols.hrData, err = json.Marshal(p.HRData); err != nil {
		return cols, err
	}
	if cols.experience, err = json.Marshal(p.Experience); err != nil {
		return cols, err
	}
	if cols.projects, err = json.Marshal(p.Projects); err != nil {
		return cols, err
	}
	if cols.education, err = json.Marshal(p.Education); err != nil {
		return cols, err
	}
	if cols.certifications, err = json.Marshal(p.Certifications); err != nil {
		return cols, err
	}
	return cols, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfile(row rowScanner) (Profile, error) {
	var (
		p    Profile
		cols profileColumnsJSON
	)
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.TargetRole,
		&p.Intro,
		&cols.skills,
		&cols.contactInfo,
		&cols.hrData,
		&cols.experience,
		&cols.projects,
		&cols.education,
		&cols.certifications,
		&p.Photo,
		&p.UpdatedAt,
	)
	if err != nil {
		return Profile{}, err
	}
	for raw, dest := range map[*[]byte]any{
		&cols.skills:         &p.Skills,
		&cols.contactInfo:    &p.ContactInfo,
		&cols.hrData:         &p.HRData,
		&cols.experience:     &p.Experience,
		&cols.projects:       &p.Projects,
		&cols.education:      &p.Education,
		&cols.certifications: &p.Certifications,
	} {
		if len(*raw) == 0 {
			continue
		}
		if err := json.Unmarshal(*raw, dest); err != nil {
			return Profile{}, err
		}
	}
	return p, nil
}

var _ Repo = (*PGRepo)(nil)
