package contacts

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo stores contacts in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu     sync.RWMutex
	byID   map[int64]Contact
	nextID int64
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byID: make(map[int64]Contact)}
}

// Create stores the contact and assigns the next sequential id.
func (r *MemoryRepo) Create(ctx context.Context, contact Contact) (Contact, error) {
	if err := ctx.Err(); err != nil {
		return Contact{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	contact.ID = r.nextID
	r.byID[contact.ID] = contact
	return contact, nil
}

// Update replaces the stored contact.
func (r *MemoryRepo) Update(ctx context.Context, contact Contact) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[contact.ID]; !ok {
		return ErrNotFound
	}
	r.byID[contact.ID] = contact
	return nil
}

// GetByID returns a contact by id.
func (r *MemoryRepo) GetByID(ctx context.Context, id int64) (Contact, error) {
	if err := ctx.Err(); err != nil {
		return Contact{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	contact, ok := r.byID[id]
	if !ok {
		return Contact{}, ErrNotFound
	}
	return contact, nil
}

// List returns all contacts, newest first.
func (r *MemoryRepo) List(ctx context.Context) ([]Contact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Contact, 0, len(r.byID))
	for _, contact := range r.byID {
		out = append(out, contact)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// Delete removes a contact by id.
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

var _ Repo = (*MemoryRepo)(nil)
