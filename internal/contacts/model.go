package contacts

import "time"

// Status tracks where an outreach thread stands.
type Status string

const (
	StatusContacted    Status = "contacted"
	StatusReplied      Status = "replied"
	StatusInterviewing Status = "interviewing"
	StatusGhosted      Status = "ghosted"
	StatusRejected     Status = "rejected"
	StatusOffer        Status = "offer"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusContacted, StatusReplied, StatusInterviewing, StatusGhosted, StatusRejected, StatusOffer:
		return true
	}
	return false
}

// Strength rates how well the contact knows the candidate.
type Strength string

const (
	StrengthWeak     Strength = "weak"
	StrengthModerate Strength = "moderate"
	StrengthStrong   Strength = "strong"
)

// Valid reports whether s is a known strength.
func (s Strength) Valid() bool {
	switch s {
	case StrengthWeak, StrengthModerate, StrengthStrong:
		return true
	}
	return false
}

// Contact is one networking record.
type Contact struct {
	ID                   int64
	Name                 string
	Role                 string
	Company              string
	Email                string
	LinkedIn             string
	Status               Status
	RelationshipStrength Strength
	Notes                string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}
