package settings

import (
	"context"
	"sync"
)

// MemoryRepo stores the settings singleton in memory.
type MemoryRepo struct {
	mu      sync.RWMutex
	current *AppSettings
	nextID  int64
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{}
}

// Get returns the settings row, or ErrNotFound before the first seed.
func (r *MemoryRepo) Get(ctx context.Context) (AppSettings, error) {
	if err := ctx.Err(); err != nil {
		return AppSettings{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.current == nil {
		return AppSettings{}, ErrNotFound
	}
	return *r.current, nil
}

// Insert stores the first settings row. A row that already exists wins; the
// existing one is returned unchanged so concurrent seeds converge.
func (r *MemoryRepo) Insert(ctx context.Context, s AppSettings) (AppSettings, error) {
	if err := ctx.Err(); err != nil {
		return AppSettings{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.current != nil {
		return *r.current, nil
	}
	r.nextID++
	s.ID = r.nextID
	r.current = &s
	return s, nil
}

// Update replaces the stored settings row.
func (r *MemoryRepo) Update(ctx context.Context, s AppSettings) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.current == nil || r.current.ID != s.ID {
		return ErrNotFound
	}
	r.current = &s
	return nil
}

// Reset installs s as the only settings row.
func (r *MemoryRepo) Reset(ctx context.Context, s AppSettings) (AppSettings, error) {
	if err := ctx.Err(); err != nil {
		return AppSettings{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	s.ID = r.nextID
	r.current = &s
	return s, nil
}

var _ Repo = (*MemoryRepo)(nil)
