package jobs

import "time"

// Status is the lifecycle state of a job application.
type Status string

const (
	StatusSaved     Status = "Saved"
	StatusApplied   Status = "Applied"
	StatusInterview Status = "Interview"
	StatusOffer     Status = "Offer"
	StatusRejected  Status = "Rejected"
	StatusGhosted   Status = "Ghosted"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusSaved, StatusApplied, StatusInterview, StatusOffer, StatusRejected, StatusGhosted:
		return true
	}
	return false
}

// GhostedAfter is how long an Applied job may sit without movement before it
// is considered ghosted.
const GhostedAfter = 14 * 24 * time.Hour

// Job is one tracked application.
type Job struct {
	ID                  int64
	Company             string
	Role                string
	Location            string
	Status              Status
	DateApplied         time.Time
	Source              string
	ProfileID           *int64
	Description         string
	ResumeSnapshot      string
	CoverLetterSnapshot string
	Keywords            []string
	Notes               string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}
