package profiles

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Service contains business logic for profiles.
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

// Create validates and stores a new profile. Sub-records without an id get a
// fresh UUID; the skills list is deduplicated preserving first occurrence.
func (s *Service) Create(ctx context.Context, profile Profile) (Profile, error) {
	if strings.TrimSpace(profile.Name) == "" {
		return Profile{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	normalize(&profile)
	profile.UpdatedAt = s.now().UTC()
	return s.Repo.Create(ctx, profile)
}

// Update validates and replaces an existing profile. Existing sub-record ids
// are preserved; new items get UUIDs. Items absent from the incoming lists
// are removed by identity match.
func (s *Service) Update(ctx context.Context, profile Profile) (Profile, error) {
	if profile.ID <= 0 {
		return Profile{}, ErrInvalidInput
	}
	if strings.TrimSpace(profile.Name) == "" {
		return Profile{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	normalize(&profile)
	profile.UpdatedAt = s.now().UTC()
	if err := s.Repo.Update(ctx, profile); err != nil {
		return Profile{}, err
	}
	return profile, nil
}

// Get returns a single profile.
func (s *Service) Get(ctx context.Context, id int64) (Profile, error) {
	if id <= 0 {
		return Profile{}, ErrInvalidInput
	}
	return s.Repo.GetByID(ctx, id)
}

// List returns all profiles.
func (s *Service) List(ctx context.Context) ([]Profile, error) {
	return s.Repo.List(ctx)
}

// Delete removes a profile. Jobs referencing this profile keep their weak
// reference; there is no cascade.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidInput
	}
	return s.Repo.Delete(ctx, id)
}

func normalize(p *Profile) {
	p.Skills = dedupeSkills(p.Skills)
	for i := range p.Experience {
		if p.Experience[i].ID == "" {
			p.Experience[i].ID = uuid.NewString()
		}
	}
	for i := range p.Projects {
		if p.Projects[i].ID == "" {
			p.Projects[i].ID = uuid.NewString()
		}
	}
	for i := range p.Education {
		if p.Education[i].ID == "" {
			p.Education[i].ID = uuid.NewString()
		}
	}
	for i := range p.Certifications {
		if p.Certifications[i].ID == "" {
			p.Certifications[i].ID = uuid.NewString()
		}
	}
}

func dedupeSkills(skills []string) []string {
	seen := make(map[string]struct{}, len(skills))
	out := make([]string, 0, len(skills))
	for _, skill := range skills {
		if _, ok := seen[skill]; ok {
			continue
		}
		seen[skill] = struct{}{}
		out = append(out, skill)
	}
	return out
}
