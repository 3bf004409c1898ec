package backup

import (
	"context"
	"time"

	"jobos-backend/internal/jobs"
	"jobos-backend/internal/profiles"
	"jobos-backend/internal/settings"
	"jobos-backend/internal/shared/telemetry"
)

// Version identifies the export envelope format.
const Version = "1.0.0"

// Export is a full snapshot of the local database. Settings is a slice even
// though the store holds one row, so the envelope mirrors the per-table
// array shape of the other sections.
type Export struct {
	Jobs       []jobs.JobResponse          `json:"jobs"`
	Profiles   []profiles.Profile          `json:"profiles"`
	Settings   []settings.SettingsResponse `json:"settings"`
	ExportedAt time.Time                   `json:"exportedAt"`
	Version    string                      `json:"version"`
}

// Wiper clears all user data and reinstalls default settings as one unit.
type Wiper interface {
	Wipe(ctx context.Context) error
}

// Service produces backups and performs the wipe-all operation.
type Service struct {
	Jobs     *jobs.Service
	Profiles *profiles.Service
	Settings *settings.Service
	Wiper    Wiper
	Now      func() time.Time
}

// NewService constructs a backup Service.
func NewService(j *jobs.Service, p *profiles.Service, s *settings.Service, w Wiper) *Service {
	return &Service{Jobs: j, Profiles: p, Settings: s, Wiper: w, Now: time.Now}
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Snapshot assembles the export envelope from the current store contents.
func (s *Service) Snapshot(ctx context.Context) (Export, error) {
	allJobs, err := s.Jobs.List(ctx)
	if err != nil {
		return Export{}, err
	}
	allProfiles, err := s.Profiles.List(ctx)
	if err != nil {
		return Export{}, err
	}
	current, err := s.Settings.Get(ctx)
	if err != nil {
		return Export{}, err
	}

	jobDTOs := make([]jobs.JobResponse, 0, len(allJobs))
	for _, job := range allJobs {
		jobDTOs = append(jobDTOs, jobs.ToResponse(job))
	}
	if allProfiles == nil {
		allProfiles = []profiles.Profile{}
	}
	return Export{
		Jobs:       jobDTOs,
		Profiles:   allProfiles,
		Settings:   []settings.SettingsResponse{settings.ToResponse(current)},
		ExportedAt: s.now().UTC(),
		Version:    Version,
	}, nil
}

// WipeAll removes every job, profile and settings row, then reinstalls the
// default settings so exactly one row remains.
func (s *Service) WipeAll(ctx context.Context) error {
	if err := s.Wiper.Wipe(ctx); err != nil {
		telemetry.Error("backup.wipe", map[string]any{"error": err.Error()})
		return err
	}
	telemetry.Info("backup.wiped", nil)
	return nil
}
