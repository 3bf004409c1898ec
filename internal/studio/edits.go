package studio

import (
	"context"

	"jobos-backend/internal/jobs"
	"jobos-backend/internal/normalize"
)

// EditResult is the outcome of committing a manual edit.
type EditResult struct {
	Job      jobs.JobResponse    `json:"job"`
	Analysis *normalize.Analysis `json:"analysis,omitempty"`
}

// BeginEdit opens a manual-edit session over a copy of the job's snapshot.
func (s *Service) BeginEdit(ctx context.Context, jobID int64, field SnapshotField) (EditSession, error) {
	if !field.Valid() {
		return EditSession{}, validationf("unknown snapshot field %q", field)
	}
	job, err := s.Jobs.Get(ctx, jobID)
	if err != nil {
		return EditSession{}, err
	}
	text := job.ResumeSnapshot
	if field == FieldCoverLetter {
		text = job.CoverLetterSnapshot
	}
	return s.Edits.Begin(jobID, field, text), nil
}

// UpdateEdit replaces the working copy of an open session.
func (s *Service) UpdateEdit(id string, text string) (EditSession, error) {
	return s.Edits.Update(id, text)
}

// SaveEdit commits the session's working copy back into the job. A resume
// edit triggers rescoring; a cover-letter edit never does.
func (s *Service) SaveEdit(ctx context.Context, id string) (EditResult, error) {
	session, err := s.Edits.Take(id)
	if err != nil {
		return EditResult{}, err
	}
	job, err := s.Jobs.Get(ctx, session.JobID)
	if err != nil {
		return EditResult{}, err
	}
	if session.Field == FieldCoverLetter {
		job.CoverLetterSnapshot = session.Text
	} else {
		job.ResumeSnapshot = session.Text
	}
	updated, err := s.Jobs.Update(ctx, job)
	if err != nil {
		return EditResult{}, err
	}

	result := EditResult{Job: jobs.ToResponse(updated)}
	if session.Field == FieldResume {
		result.Analysis = s.rescore(ctx, updated.ResumeSnapshot, updated.Description)
	}
	return result, nil
}

// CancelEdit discards the session unconditionally. Cancelling an unknown or
// already-closed session is a no-op.
func (s *Service) CancelEdit(id string) {
	s.Edits.Discard(id)
}

// SaveDraft upserts an ephemeral job draft.
func (s *Service) SaveDraft(d Draft) Draft {
	return s.Drafts.Save(d)
}

// GetDraft returns an ephemeral job draft.
func (s *Service) GetDraft(id string) (Draft, error) {
	return s.Drafts.Get(id)
}

// DiscardDraft drops an ephemeral job draft.
func (s *Service) DiscardDraft(id string) {
	s.Drafts.Delete(id)
}

// CommitDraft persists a draft as a real job and discards the draft.
func (s *Service) CommitDraft(ctx context.Context, id string) (jobs.Job, error) {
	draft, err := s.Drafts.Get(id)
	if err != nil {
		return jobs.Job{}, err
	}
	job, err := s.Jobs.Create(ctx, jobs.FromRequest(draft.Job))
	if err != nil {
		return jobs.Job{}, err
	}
	s.Drafts.Delete(id)
	return job, nil
}
