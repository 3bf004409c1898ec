package backup

import (
	"context"
	"sync"

	"jobos-backend/internal/jobs"
	"jobos-backend/internal/profiles"
	"jobos-backend/internal/settings"
)

// MemoryWiper clears the in-memory repos. Wipes are serialized so a reader
// never observes a half-finished wipe interleaved with another.
type MemoryWiper struct {
	mu       sync.Mutex
	Jobs     jobs.Repo
	Profiles profiles.Repo
	Settings *settings.Service
}

// NewMemoryWiper constructs a MemoryWiper.
func NewMemoryWiper(j jobs.Repo, p profiles.Repo, s *settings.Service) *MemoryWiper {
	return &MemoryWiper{Jobs: j, Profiles: p, Settings: s}
}

// Wipe clears jobs and profiles and reinstalls the default settings row.
func (w *MemoryWiper) Wipe(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.Jobs.Clear(ctx); err != nil {
		return err
	}
	if err := w.Profiles.Clear(ctx); err != nil {
		return err
	}
	_, err := w.Settings.Reset(ctx)
	return err
}

var _ Wiper = (*MemoryWiper)(nil)
