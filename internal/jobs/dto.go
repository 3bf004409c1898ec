package jobs

import "time"

// JobResponse is the outward-facing representation of a job.
type JobResponse struct {
	ID                  int64     `json:"id"`
	Company             string    `json:"company"`
	Role                string    `json:"role"`
	Location            string    `json:"location"`
	Status              string    `json:"status"`
	DateApplied         time.Time `json:"dateApplied"`
	Source              string    `json:"source"`
	ProfileID           *int64    `json:"profileId,omitempty"`
	Description         string    `json:"description"`
	ResumeSnapshot      string    `json:"resumeSnapshot"`
	CoverLetterSnapshot string    `json:"coverLetterSnapshot"`
	Keywords            []string  `json:"keywords"`
	Notes               string    `json:"notes"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

// JobRequest is the inbound payload for creating or updating a job.
type JobRequest struct {
	Company             string     `json:"company"`
	Role                string     `json:"role"`
	Location            string     `json:"location"`
	Status              string     `json:"status"`
	DateApplied         *time.Time `json:"dateApplied"`
	Source              string     `json:"source"`
	ProfileID           *int64     `json:"profileId"`
	Description         string     `json:"description"`
	ResumeSnapshot      string     `json:"resumeSnapshot"`
	CoverLetterSnapshot string     `json:"coverLetterSnapshot"`
	Keywords            []string   `json:"keywords"`
	Notes               string     `json:"notes"`
}

// ToResponse converts a job into its outward-facing form.
func ToResponse(job Job) JobResponse {
	keywords := job.Keywords
	if keywords == nil {
		keywords = []string{}
	}
	return JobResponse{
		ID:                  job.ID,
		Company:             job.Company,
		Role:                job.Role,
		Location:            job.Location,
		Status:              string(job.Status),
		DateApplied:         job.DateApplied,
		Source:              job.Source,
		ProfileID:           job.ProfileID,
		Description:         job.Description,
		ResumeSnapshot:      job.ResumeSnapshot,
		CoverLetterSnapshot: job.CoverLetterSnapshot,
		Keywords:            keywords,
		Notes:               job.Notes,
		CreatedAt:           job.CreatedAt,
		UpdatedAt:           job.UpdatedAt,
	}
}

// FromRequest converts an inbound payload into the domain model.
func FromRequest(req JobRequest) Job {
	status := Status(req.Status)
	if req.Status == "" {
		status = StatusSaved
	}
	job := Job{
		Company:             req.Company,
		Role:                req.Role,
		Location:            req.Location,
		Status:              status,
		Source:              req.Source,
		ProfileID:           req.ProfileID,
		Description:         req.Description,
		ResumeSnapshot:      req.ResumeSnapshot,
		CoverLetterSnapshot: req.CoverLetterSnapshot,
		Keywords:            req.Keywords,
		Notes:               req.Notes,
	}
	if req.DateApplied != nil {
		job.DateApplied = *req.DateApplied
	}
	return job
}
