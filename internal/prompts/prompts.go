// Package prompts builds the (system, user) message pair for each AI task.
// Every builder is a pure function of its inputs; temperature is fixed per
// task, low for extraction and scoring, higher for prose generation.
package prompts

import (
	_ "embed"
	"fmt"
	"strings"
	"time"

	"jobos-backend/internal/llm"
)

var (
	//go:embed templates/keywords_system.txt
	keywordsSystem string
	//go:embed templates/ats_system.txt
	atsSystem string
	//go:embed templates/resume_system.txt
	resumeSystem string
	//go:embed templates/refine_system.txt
	refineSystem string
	//go:embed templates/cover_letter_system.txt
	coverLetterSystem string
	//go:embed templates/parse_profile_system.txt
	parseProfileSystem string
)

// Prompt is a ready-to-send chat request minus the model identifier.
type Prompt struct {
	Messages    []llm.Message
	Temperature float32
	JSONObject  bool
}

// JobDetails carries the job fields the templates interpolate.
type JobDetails struct {
	Company     string
	Role        string
	Description string
}

// Candidate carries the profile fields used in the cover-letter signature.
type Candidate struct {
	Name     string
	Email    string
	Phone    string
	LinkedIn string
}

// ExtractKeywords instructs the model to return a JSON array of individual
// skill and technology strings from a job description.
func ExtractKeywords(jobDescription string) Prompt {
	return Prompt{
		Messages: []llm.Message{
			{Role: "system", Content: keywordsSystem},
			{Role: "user", Content: jobDescription},
		},
		Temperature: 0.1,
		JSONObject:  true,
	}
}

// ATSScore instructs a weighted scoring rubric over a (resume, job
// description) pair with a strict {score, feedback, missingKeywords} shape.
func ATSScore(resumeText, jobDescription string) Prompt {
	user := fmt.Sprintf("JOB DESCRIPTION:\n%s\n\nRESUME CONTENT:\n%s\n\nReturn the analysis in JSON format.", jobDescription, resumeText)
	return Prompt{
		Messages: []llm.Message{
			{Role: "system", Content: atsSystem},
			{Role: "user", Content: user},
		},
		Temperature: 0.1,
		JSONObject:  true,
	}
}

// ResumeDraft instructs a locked markdown resume format tailored to the job.
// profileJSON is the serialized candidate profile.
func ResumeDraft(profileJSON string, job JobDetails, keywords []string) Prompt {
	keywordLine := "None specified. Extract relevant keywords from the description."
	if len(keywords) > 0 {
		keywordLine = strings.Join(keywords, ", ")
	}
	user := fmt.Sprintf(`PROFILE:
%s

JOB DETAILS:
Company: %s
Role: %s
Description:
%s

MANDATORY KEYWORDS TO INTEGRATE:
%s`, profileJSON, job.Company, job.Role, job.Description, keywordLine)

	return Prompt{
		Messages: []llm.Message{
			{Role: "system", Content: resumeSystem},
			{Role: "user", Content: user},
		},
		Temperature: 0.7,
	}
}

// RefineResume applies free-form instructions to an existing draft without
// altering the locked format.
func RefineResume(currentResume, instructions string) Prompt {
	user := fmt.Sprintf("CURRENT RESUME:\n%s\n\nINSTRUCTIONS:\n%s", currentResume, instructions)
	return Prompt{
		Messages: []llm.Message{
			{Role: "system", Content: refineSystem},
			{Role: "user", Content: user},
		},
		Temperature: 0.5,
	}
}

// CoverLetter instructs a business-letter structure capped at ~300 words,
// dated with now and signed with the candidate's name and contact lines.
func CoverLetter(profileJSON string, job JobDetails, candidate Candidate, now time.Time) Prompt {
	replacer := strings.NewReplacer(
		"{{DATE}}", now.Format("January 2, 2006"),
		"{{NAME}}", candidate.Name,
		"{{EMAIL}}", candidate.Email,
		"{{PHONE}}", candidate.Phone,
		"{{LINKEDIN}}", candidate.LinkedIn,
	)
	user := fmt.Sprintf(`CANDIDATE PROFILE:
%s

JOB DETAILS:
Company: %s
Role: %s
Description:
%s`, profileJSON, job.Company, job.Role, job.Description)

	return Prompt{
		Messages: []llm.Message{
			{Role: "system", Content: replacer.Replace(coverLetterSystem)},
			{Role: "user", Content: user},
		},
		Temperature: 0.7,
	}
}

// ParseProfile instructs structured profile extraction from raw resume text.
func ParseProfile(resumeText string) Prompt {
	return Prompt{
		Messages: []llm.Message{
			{Role: "system", Content: parseProfileSystem},
			{Role: "user", Content: resumeText},
		},
		Temperature: 0.1,
		JSONObject:  true,
	}
}
