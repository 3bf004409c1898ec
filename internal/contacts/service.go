package contacts

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Service contains business logic for contacts.
type Service struct {
	Repo Repo
	Now  func() time.Time
}

// NewService constructs a Service over the given repo.
func NewService(repo Repo) *Service {
	return &Service{Repo: repo, Now: time.Now}
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Create validates and stores a new contact. Empty status and strength are
// defaulted rather than rejected.
func (s *Service) Create(ctx context.Context, contact Contact) (Contact, error) {
	applyDefaults(&contact)
	if err := validate(contact); err != nil {
		return Contact{}, err
	}
	now := s.now().UTC()
	contact.CreatedAt = now
	contact.UpdatedAt = now
	return s.Repo.Create(ctx, contact)
}

// Update validates and replaces an existing contact.
func (s *Service) Update(ctx context.Context, contact Contact) (Contact, error) {
	if contact.ID <= 0 {
		return Contact{}, ErrInvalidInput
	}
	applyDefaults(&contact)
	if err := validate(contact); err != nil {
		return Contact{}, err
	}
	existing, err := s.Repo.GetByID(ctx, contact.ID)
	if err != nil {
		return Contact{}, err
	}
	contact.CreatedAt = existing.CreatedAt
	contact.UpdatedAt = s.now().UTC()
	if err := s.Repo.Update(ctx, contact); err != nil {
		return Contact{}, err
	}
	return contact, nil
}

// Get returns a single contact.
func (s *Service) Get(ctx context.Context, id int64) (Contact, error) {
	if id <= 0 {
		return Contact{}, ErrInvalidInput
	}
	return s.Repo.GetByID(ctx, id)
}

// List returns all contacts.
func (s *Service) List(ctx context.Context) ([]Contact, error) {
	return s.Repo.List(ctx)
}

// Delete removes a contact.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidInput
	}
	return s.Repo.Delete(ctx, id)
}

func applyDefaults(contact *Contact) {
	if contact.Status == "" {
		contact.Status = StatusContacted
	}
	if contact.RelationshipStrength == "" {
		contact.RelationshipStrength = StrengthWeak
	}
}

func validate(contact Contact) error {
	if strings.TrimSpace(contact.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if !contact.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidInput, contact.Status)
	}
	if !contact.RelationshipStrength.Valid() {
		return fmt.Errorf("%w: unknown relationship strength %q", ErrInvalidInput, contact.RelationshipStrength)
	}
	return nil
}
