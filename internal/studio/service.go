package studio

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"jobos-backend/internal/jobs"
	"jobos-backend/internal/llm"
	"jobos-backend/internal/normalize"
	"jobos-backend/internal/profiles"
	"jobos-backend/internal/prompts"
	"jobos-backend/internal/shared/telemetry"
)

// autoExtractThreshold is the paste length above which keyword extraction
// fires without an explicit user action.
const autoExtractThreshold = 50

// Service ties user actions to the gateway, the prompt builders, the
// normalizer and the store. Every action validates before any network call
// and logs failures with context before surfacing them.
type Service struct {
	LLM      llm.Client
	Model    string
	Jobs     *jobs.Service
	Profiles *profiles.Service
	Drafts   *DraftStore
	Edits    *EditStore
	Now      func() time.Time
}

// NewService constructs a studio Service.
func NewService(client llm.Client, model string, j *jobs.Service, p *profiles.Service) *Service {
	return &Service{
		LLM:      client,
		Model:    model,
		Jobs:     j,
		Profiles: p,
		Drafts:   NewDraftStore(),
		Edits:    NewEditStore(),
		Now:      time.Now,
	}
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// DocumentResult is a generated document plus the ATS analysis that followed
// it, when one ran.
type DocumentResult struct {
	Text     string              `json:"text"`
	Analysis *normalize.Analysis `json:"analysis,omitempty"`
}

// ExtractKeywords extracts keywords from a job description and merges them
// into the existing list, duplicates removed by exact string match.
func (s *Service) ExtractKeywords(ctx context.Context, description string, existing []string) ([]string, error) {
	if strings.TrimSpace(description) == "" {
		return nil, validationf("please add a job description first")
	}
	prompt := prompts.ExtractKeywords(description)
	raw, err := s.complete(ctx, prompt)
	if err != nil {
		telemetry.Error("studio.keywords", map[string]any{"error": err.Error()})
		return nil, err
	}
	return normalize.MergeKeywords(existing, normalize.Keywords(raw)), nil
}

// AutoExtractOnPaste runs keyword extraction for a pasted description, but
// only when the paste is longer than the threshold and no keywords exist yet.
// The second return reports whether extraction fired.
func (s *Service) AutoExtractOnPaste(ctx context.Context, pasted string, existing []string) ([]string, bool, error) {
	if len(strings.TrimSpace(pasted)) <= autoExtractThreshold || len(existing) > 0 {
		return existing, false, nil
	}
	merged, err := s.ExtractKeywords(ctx, pasted, existing)
	if err != nil {
		return existing, false, err
	}
	return merged, true, nil
}

// ScoreResume computes the ATS analysis for a (resume, description) pair.
// Both inputs must be non-empty.
func (s *Service) ScoreResume(ctx context.Context, resumeText, description string) (normalize.Analysis, error) {
	if strings.TrimSpace(resumeText) == "" || strings.TrimSpace(description) == "" {
		return normalize.Analysis{}, validationf("both resume text and a job description are required for scoring")
	}
	prompt := prompts.ATSScore(resumeText, description)
	raw, err := s.complete(ctx, prompt)
	if err != nil {
		telemetry.Error("studio.score", map[string]any{"error": err.Error()})
		return normalize.Analysis{}, err
	}
	return normalize.ATS(raw), nil
}

// GenerateResume drafts a tailored resume for the job from the given profile,
// stores it as the job's resume snapshot and rescores it. Requires a selected
// profile and a non-empty job description; no network call is made otherwise.
func (s *Service) GenerateResume(ctx context.Context, jobID, profileID int64) (DocumentResult, error) {
	if profileID <= 0 {
		return DocumentResult{}, validationf("please select a profile first")
	}
	job, err := s.Jobs.Get(ctx, jobID)
	if err != nil {
		return DocumentResult{}, err
	}
	if strings.TrimSpace(job.Description) == "" {
		return DocumentResult{}, validationf("please add a job description first")
	}
	profile, err := s.Profiles.Get(ctx, profileID)
	if err != nil {
		return DocumentResult{}, err
	}

	prompt := prompts.ResumeDraft(profileJSON(profile), jobDetails(job), job.Keywords)
	raw, err := s.complete(ctx, prompt)
	if err != nil {
		telemetry.Error("studio.resume", map[string]any{"job_id": jobID, "error": err.Error()})
		return DocumentResult{}, err
	}
	text := normalize.Markdown(raw)

	job.ResumeSnapshot = text
	job.ProfileID = &profileID
	if _, err := s.Jobs.Update(ctx, job); err != nil {
		return DocumentResult{}, err
	}
	return DocumentResult{Text: text, Analysis: s.rescore(ctx, text, job.Description)}, nil
}

// RefineResume applies free-form instructions to the job's current resume
// snapshot, stores the result and rescores it.
func (s *Service) RefineResume(ctx context.Context, jobID int64, instructions string) (DocumentResult, error) {
	if strings.TrimSpace(instructions) == "" {
		return DocumentResult{}, validationf("please enter refinement instructions")
	}
	job, err := s.Jobs.Get(ctx, jobID)
	if err != nil {
		return DocumentResult{}, err
	}
	if strings.TrimSpace(job.ResumeSnapshot) == "" {
		return DocumentResult{}, validationf("generate a resume before refining it")
	}

	prompt := prompts.RefineResume(job.ResumeSnapshot, instructions)
	raw, err := s.complete(ctx, prompt)
	if err != nil {
		telemetry.Error("studio.refine", map[string]any{"job_id": jobID, "error": err.Error()})
		return DocumentResult{}, err
	}
	text := normalize.Markdown(raw)

	job.ResumeSnapshot = text
	if _, err := s.Jobs.Update(ctx, job); err != nil {
		return DocumentResult{}, err
	}
	return DocumentResult{Text: text, Analysis: s.rescore(ctx, text, job.Description)}, nil
}

// GenerateCoverLetter streams a cover letter for the job, delivering each
// fragment through onFragment as it arrives. When the stream dies before
// producing any content the call falls back to a buffered request and
// delivers the whole text as one fragment. A stream that dies after partial
// content keeps the partial text. The final text is stored as the job's
// cover-letter snapshot; cover letters are never rescored.
func (s *Service) GenerateCoverLetter(ctx context.Context, jobID, profileID int64, onFragment func(string) error) (string, error) {
	if profileID <= 0 {
		return "", validationf("please select a profile first")
	}
	job, err := s.Jobs.Get(ctx, jobID)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(job.Description) == "" {
		return "", validationf("please add a job description first")
	}
	profile, err := s.Profiles.Get(ctx, profileID)
	if err != nil {
		return "", err
	}

	prompt := prompts.CoverLetter(profileJSON(profile), jobDetails(job), candidate(profile), s.now())
	req := llm.Request{
		Model:       s.Model,
		Messages:    prompt.Messages,
		Temperature: prompt.Temperature,
		JSONObject:  prompt.JSONObject,
	}

	text, err := s.streamWithFallback(ctx, req, onFragment)
	if err != nil {
		telemetry.Error("studio.cover_letter", map[string]any{"job_id": jobID, "error": err.Error()})
		if text == "" {
			return "", err
		}
		// Partial content is kept; the failure has been logged.
	}

	job.CoverLetterSnapshot = text
	if _, err := s.Jobs.Update(ctx, job); err != nil {
		return "", err
	}
	return text, nil
}

// errEmptyStream marks a stream that finished without producing any content.
// Some providers close cleanly after nothing but a terminator line.
var errEmptyStream = errors.New("stream returned empty content")

// streamWithFallback consumes a streaming completion, accumulating the full
// text. A stream that ends with zero content, whether it failed or closed
// cleanly, is retried once as a buffered call.
func (s *Service) streamWithFallback(ctx context.Context, req llm.Request, onFragment func(string) error) (string, error) {
	stream, err := s.LLM.Stream(ctx, req)
	if err != nil {
		return s.bufferedFallback(ctx, req, onFragment, err)
	}
	defer stream.Close()

	var buf strings.Builder
	for stream.Next() {
		fragment := stream.Text()
		buf.WriteString(fragment)
		if onFragment != nil {
			if err := onFragment(fragment); err != nil {
				return buf.String(), err
			}
		}
	}
	if err := stream.Err(); err != nil {
		if buf.Len() == 0 {
			return s.bufferedFallback(ctx, req, onFragment, err)
		}
		return buf.String(), err
	}
	if buf.Len() == 0 {
		return s.bufferedFallback(ctx, req, onFragment, errEmptyStream)
	}
	return buf.String(), nil
}

func (s *Service) bufferedFallback(ctx context.Context, req llm.Request, onFragment func(string) error, cause error) (string, error) {
	if errors.Is(cause, llm.ErrMissingAPIKey) || errors.Is(cause, ErrValidation) {
		return "", cause
	}
	telemetry.Warn("studio.stream_fallback", map[string]any{"error": cause.Error()})
	text, err := s.LLM.Complete(ctx, req)
	if err != nil {
		return "", err
	}
	if onFragment != nil && text != "" {
		if err := onFragment(text); err != nil {
			return text, err
		}
	}
	return text, nil
}

// rescore runs the ATS analysis after a resume change. Both texts must be
// non-empty; a scoring failure is logged and swallowed so it never undoes a
// successful generation.
func (s *Service) rescore(ctx context.Context, resumeText, description string) *normalize.Analysis {
	if strings.TrimSpace(resumeText) == "" || strings.TrimSpace(description) == "" {
		return nil
	}
	analysis, err := s.ScoreResume(ctx, resumeText, description)
	if err != nil {
		telemetry.Error("studio.rescore", map[string]any{"error": err.Error()})
		return nil
	}
	return &analysis
}

func (s *Service) complete(ctx context.Context, prompt prompts.Prompt) (string, error) {
	return s.LLM.Complete(ctx, llm.Request{
		Model:       s.Model,
		Messages:    prompt.Messages,
		Temperature: prompt.Temperature,
		JSONObject:  prompt.JSONObject,
	})
}

// profileJSON serializes a profile for prompt interpolation. The embedded
// photo is dropped to keep the prompt small.
func profileJSON(p profiles.Profile) string {
	p.Photo = ""
	raw, err := json.Marshal(p)
	if err != nil {
		return "{}"
	}
	return string(raw)
}

func jobDetails(job jobs.Job) prompts.JobDetails {
	return prompts.JobDetails{
		Company:     job.Company,
		Role:        job.Role,
		Description: job.Description,
	}
}

func candidate(p profiles.Profile) prompts.Candidate {
	return prompts.Candidate{
		Name:     p.Name,
		Email:    p.ContactInfo.Email,
		Phone:    p.ContactInfo.Phone,
		LinkedIn: p.ContactInfo.LinkedIn,
	}
}
