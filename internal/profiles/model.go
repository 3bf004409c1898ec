package profiles

import "time"

// WorkPreference is the candidate's preferred work arrangement.
type WorkPreference string

const (
	WorkRemote WorkPreference = "Remote"
	WorkOnSite WorkPreference = "On-Site"
	WorkHybrid WorkPreference = "Hybrid"
)

// Experience is a nested work-history entry. Its id is a client-generated
// UUID assigned at creation, stable across edits.
type Experience struct {
	ID          string `json:"id"`
	Company     string `json:"company"`
	Role        string `json:"role"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

// Project is a nested project entry.
type Project struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	URL         string `json:"url,omitempty"`
}

// Education is a nested education entry.
type Education struct {
	ID          string `json:"id"`
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
}

// Certification is a nested certification entry.
type Certification struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Issuer string `json:"issuer"`
	Year   string `json:"year"`
	URL    string `json:"url,omitempty"`
}

// ContactInfo groups the optional contact fields.
type ContactInfo struct {
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Location string `json:"location,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	GitHub   string `json:"github,omitempty"`
	Website  string `json:"website,omitempty"`
}

// HRData groups recruiter-facing availability fields.
type HRData struct {
	WorkPreference WorkPreference `json:"workPreference,omitempty"`
	NoticePeriod   string         `json:"noticePeriod,omitempty"`
}

// Profile is a reusable persona for tailoring documents. The skills list
// never contains duplicate values.
type Profile struct {
	ID             int64           `json:"id"`
	Name           string          `json:"name"`
	TargetRole     string          `json:"targetRole"`
	Intro          string          `json:"intro"`
	Skills         []string        `json:"skills"`
	ContactInfo    ContactInfo     `json:"contactInfo"`
	HRData         HRData          `json:"hrData"`
	Experience     []Experience    `json:"experience"`
	Projects       []Project       `json:"projects"`
	Education      []Education     `json:"education"`
	Certifications []Certification `json:"certifications"`
	Photo          string          `json:"photo,omitempty"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}
