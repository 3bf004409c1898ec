package studio

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"jobos-backend/internal/extract"
	"jobos-backend/internal/profiles"
	"jobos-backend/internal/prompts"
	"jobos-backend/internal/shared/telemetry"
)

// ImportResume extracts text from an uploaded PDF or DOCX resume, asks the
// model for a structured profile and returns it as an unsaved draft. Nested
// records receive fresh uuids; the caller persists the profile explicitly.
func (s *Service) ImportResume(ctx context.Context, data []byte, mimeType, fileName string) (profiles.Profile, error) {
	text, err := extract.Text(ctx, data, mimeType, fileName)
	if err != nil {
		return profiles.Profile{}, err
	}
	if strings.TrimSpace(text) == "" {
		return profiles.Profile{}, validationf("no readable text found in %s", fileName)
	}

	prompt := prompts.ParseProfile(text)
	raw, err := s.complete(ctx, prompt)
	if err != nil {
		telemetry.Error("studio.import", map[string]any{"file": fileName, "error": err.Error()})
		return profiles.Profile{}, err
	}
	profile, err := decodeProfile(raw)
	if err != nil {
		telemetry.Error("studio.import_parse", map[string]any{"file": fileName, "error": err.Error()})
		return profiles.Profile{}, fmt.Errorf("failed to parse resume: %w", err)
	}
	return profile, nil
}

// parsedProfile mirrors the JSON shape the parse prompt asks for. Every field
// is optional; missing ones default below.
type parsedProfile struct {
	Name        string               `json:"name"`
	TargetRole  string               `json:"targetRole"`
	Intro       string               `json:"intro"`
	Skills      []string             `json:"skills"`
	ContactInfo profiles.ContactInfo `json:"contactInfo"`
	Experience  []struct {
		Company     string `json:"company"`
		Role        string `json:"role"`
		StartDate   string `json:"startDate"`
		EndDate     string `json:"endDate"`
		Current     bool   `json:"current"`
		Description string `json:"description"`
	} `json:"experience"`
	Projects []struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		URL         string `json:"url"`
	} `json:"projects"`
	Education []struct {
		Degree      string `json:"degree"`
		Institution string `json:"institution"`
		StartDate   string `json:"startDate"`
		EndDate     string `json:"endDate"`
	} `json:"education"`
	Certifications []struct {
		Name   string `json:"name"`
		Issuer string `json:"issuer"`
		Year   string `json:"year"`
		URL    string `json:"url"`
	} `json:"certifications"`
}

// decodeProfile parses the model's profile JSON, tolerating surrounding
// prose the same way the ATS normalizer does.
func decodeProfile(raw string) (profiles.Profile, error) {
	content := raw
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start != -1 && end != -1 && end > start {
		content = content[start : end+1]
	}

	var parsed parsedProfile
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return profiles.Profile{}, err
	}

	out := profiles.Profile{
		Name:        strings.TrimSpace(parsed.Name),
		TargetRole:  parsed.TargetRole,
		Intro:       parsed.Intro,
		Skills:      parsed.Skills,
		ContactInfo: parsed.ContactInfo,
	}
	if out.Name == "" {
		out.Name = "Imported Profile"
	}
	if out.Skills == nil {
		out.Skills = []string{}
	}
	for _, e := range parsed.Experience {
		out.Experience = append(out.Experience, profiles.Experience{
			ID:          uuid.NewString(),
			Company:     e.Company,
			Role:        e.Role,
			StartDate:   e.StartDate,
			EndDate:     e.EndDate,
			Current:     e.Current,
			Description: e.Description,
		})
	}
	for _, p := range parsed.Projects {
		out.Projects = append(out.Projects, profiles.Project{
			ID:          uuid.NewString(),
			Name:        p.Name,
			Description: p.Description,
			URL:         p.URL,
		})
	}
	for _, e := range parsed.Education {
		out.Education = append(out.Education, profiles.Education{
			ID:          uuid.NewString(),
			Degree:      e.Degree,
			Institution: e.Institution,
			StartDate:   e.StartDate,
			EndDate:     e.EndDate,
		})
	}
	for _, c := range parsed.Certifications {
		out.Certifications = append(out.Certifications, profiles.Certification{
			ID:     uuid.NewString(),
			Name:   c.Name,
			Issuer: c.Issuer,
			Year:   c.Year,
			URL:    c.URL,
		})
	}
	return out, nil
}
