package profiles

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo stores profiles in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu     sync.RWMutex
	byID   map[int64]Profile
	nextID int64
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byID: make(map[int64]Profile)}
}

// Create stores the profile and assigns the next sequential id.
func (r *MemoryRepo) Create(ctx context.Context, profile Profile) (Profile, error) {
	if err := ctx.Err(); err != nil {
		return Profile{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	profile.ID = r.nextID
	r.byID[profile.ID] = cloneProfile(profile)
	return profile, nil
}

// Update replaces the stored profile.
func (r *MemoryRepo) Update(ctx context.Context, profile Profile) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[profile.ID]; !ok {
		return ErrNotFound
	}
	r.byID[profile.ID] = cloneProfile(profile)
	return nil
}

// GetByID returns a profile by id.
func (r *MemoryRepo) GetByID(ctx context.Context, id int64) (Profile, error) {
	if err := ctx.Err(); err != nil {
		return Profile{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	profile, ok := r.byID[id]
	if !ok {
		return Profile{}, ErrNotFound
	}
	return cloneProfile(profile), nil
}

// List returns all profiles, most recently updated first.
func (r *MemoryRepo) List(ctx context.Context) ([]Profile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Profile, 0, len(r.byID))
	for _, profile := range r.byID {
		out = append(out, cloneProfile(profile))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}

// Delete removes a profile by id. Jobs referencing it are left untouched.
func (r *MemoryRepo) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

// Clear removes all profiles.
func (r *MemoryRepo) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID = make(map[int64]Profile)
	return nil
}

func cloneProfile(p Profile) Profile {
	if p.Skills != nil {
		p.Skills = append([]string(nil), p.Skills...)
	}
	if p.Experience != nil {
		p.Experience = append([]Experience(nil), p.Experience...)
	}
	if p.Projects != nil {
		p.Projects = append([]Project(nil), p.Projects...)
	}
	if p.Education != nil {
		p.Education = append([]Education(nil), p.Education...)
	}
	if p.Certifications != nil {
		p.Certifications = append([]Certification(nil), p.Certifications...)
	}
	return p
}

var _ Repo = (*MemoryRepo)(nil)
