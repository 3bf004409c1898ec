package jobs

import (
	"context"
	"fmt"
	"strings"
	"time"

	"jobos-backend/internal/shared/telemetry"
)

// Service contains business logic for jobs.
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

// Create validates and stores a new job.
func (s *Service) Create(ctx context.Context, job Job) (Job, error) {
	if err := validate(job); err != nil {
		return Job{}, err
	}
	now := s.now().UTC()
	job.CreatedAt = now
	job.UpdatedAt = now
	if job.DateApplied.IsZero() {
		job.DateApplied = now
	}
	return s.Repo.Create(ctx, job)
}

// Update validates and replaces an existing job.
func (s *Service) Update(ctx context.Context, job Job) (Job, error) {
	if job.ID <= 0 {
		return Job{}, ErrInvalidInput
	}
	if err := validate(job); err != nil {
		return Job{}, err
	}
	existing, err := s.Repo.GetByID(ctx, job.ID)
	if err != nil {
		return Job{}, err
	}
	job.CreatedAt = existing.CreatedAt
	job.UpdatedAt = s.now().UTC()
	if err := s.Repo.Update(ctx, job); err != nil {
		return Job{}, err
	}
	return job, nil
}

// Get returns a single job.
func (s *Service) Get(ctx context.Context, id int64) (Job, error) {
	if id <= 0 {
		return Job{}, ErrInvalidInput
	}
	return s.Repo.GetByID(ctx, id)
}

// List returns all jobs after sweeping stale Applied entries to Ghosted.
func (s *Service) List(ctx context.Context) ([]Job, error) {
	if err := s.SweepGhosted(ctx); err != nil {
		telemetry.Error("jobs.sweep", map[string]any{"error": err.Error()})
	}
	return s.Repo.List(ctx)
}

// Delete removes a job. Deletion does not cascade to other entities.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidInput
	}
	return s.Repo.Delete(ctx, id)
}

// UpdateStatus transitions a job to the given status.
func (s *Service) UpdateStatus(ctx context.Context, id int64, status Status) (Job, error) {
	if id <= 0 || !status.Valid() {
		return Job{}, ErrInvalidInput
	}
	job, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return Job{}, err
	}
	job.Status = status
	job.UpdatedAt = s.now().UTC()
	if err := s.Repo.Update(ctx, job); err != nil {
		return Job{}, err
	}
	return job, nil
}

// SweepGhosted transitions Applied jobs to Ghosted once strictly more than
// GhostedAfter has elapsed since dateApplied. Other statuses never move.
func (s *Service) SweepGhosted(ctx context.Context) error {
	now := s.now()
	all, err := s.Repo.List(ctx)
	if err != nil {
		return err
	}
	for _, job := range all {
		if job.Status != StatusApplied {
			continue
		}
		if now.Sub(job.DateApplied) <= GhostedAfter {
			continue
		}
		job.Status = StatusGhosted
		job.UpdatedAt = now.UTC()
		if err := s.Repo.Update(ctx, job); err != nil {
			return fmt.Errorf("ghost job %d: %w", job.ID, err)
		}
		telemetry.Info("jobs.ghosted", map[string]any{
			"job_id":       job.ID,
			"date_applied": job.DateApplied,
		})
	}
	return nil
}

func validate(job Job) error {
	if strings.TrimSpace(job.Company) == "" || strings.TrimSpace(job.Role) == "" {
		return fmt.Errorf("%w: company and role are required", ErrInvalidInput)
	}
	if !job.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidInput, job.Status)
	}
	return nil
}
