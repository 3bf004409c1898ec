package settings

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Service owns the settings singleton. Reads lazily seed the default row so
// callers always observe exactly one settings record.
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

// Get returns the settings row, seeding the defaults on first access.
func (s *Service) Get(ctx context.Context) (AppSettings, error) {
	current, err := s.Repo.Get(ctx)
	if err == nil {
		return current, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return AppSettings{}, err
	}
	seeded := Defaults()
	seeded.UpdatedAt = s.now().UTC()
	return s.Repo.Insert(ctx, seeded)
}

// Update applies the given API key and theme to the singleton.
func (s *Service) Update(ctx context.Context, apiKey string, theme Theme) (AppSettings, error) {
	if theme == "" {
		theme = ThemeSystem
	}
	if !theme.Valid() {
		return AppSettings{}, fmt.Errorf("%w: unknown theme %q", ErrInvalidInput, theme)
	}
	current, err := s.Get(ctx)
	if err != nil {
		return AppSettings{}, err
	}
	current.OpenRouterAPIKey = apiKey
	current.Theme = theme
	current.UpdatedAt = s.now().UTC()
	if err := s.Repo.Update(ctx, current); err != nil {
		return AppSettings{}, err
	}
	return current, nil
}

// Reset reinstalls the defaults as the only settings row.
func (s *Service) Reset(ctx context.Context) (AppSettings, error) {
	seeded := Defaults()
	seeded.UpdatedAt = s.now().UTC()
	return s.Repo.Reset(ctx, seeded)
}

// APIKey returns the stored OpenRouter key. It may be empty; the gateway
// treats an empty key as a configuration error.
func (s *Service) APIKey(ctx context.Context) (string, error) {
	current, err := s.Get(ctx)
	if err != nil {
		return "", err
	}
	return current.OpenRouterAPIKey, nil
}
