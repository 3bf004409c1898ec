package studio

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"jobos-backend/internal/jobs"
	"jobos-backend/internal/llm"
	"jobos-backend/internal/profiles"
)

type fakeStream struct {
	fragments []string
	err       error
	pos       int
	closed    bool
}

func (f *fakeStream) Next() bool {
	if f.pos >= len(f.fragments) {
		return false
	}
	f.pos++
	return true
}

func (f *fakeStream) Text() string { return f.fragments[f.pos-1] }
func (f *fakeStream) Err() error {
	if f.pos >= len(f.fragments) {
		return f.err
	}
	return nil
}
func (f *fakeStream) Close() error {
	f.closed = true
	return nil
}

type fakeLLM struct {
	responses     []string
	completeErr   error
	stream        llm.Stream
	streamErr     error
	completeCalls int
	streamCalls   int
	requests      []llm.Request
}

func (f *fakeLLM) Complete(ctx context.Context, req llm.Request) (string, error) {
	f.completeCalls++
	f.requests = append(f.requests, req)
	if f.completeErr != nil {
		return "", f.completeErr
	}
	if len(f.responses) == 0 {
		return "", nil
	}
	out := f.responses[0]
	f.responses = f.responses[1:]
	return out, nil
}

func (f *fakeLLM) Stream(ctx context.Context, req llm.Request) (llm.Stream, error) {
	f.streamCalls++
	f.requests = append(f.requests, req)
	if f.streamErr != nil {
		return nil, f.streamErr
	}
	return f.stream, nil
}

func newTestStudio(t *testing.T, client llm.Client) *Service {
	t.Helper()
	jobsSvc := jobs.NewService(jobs.NewMemoryRepo())
	profilesSvc := profiles.NewService(profiles.NewMemoryRepo())
	return NewService(client, "test-model", jobsSvc, profilesSvc)
}

func seedJob(t *testing.T, svc *Service, job jobs.Job) jobs.Job {
	t.Helper()
	if job.Company == "" {
		job.Company = "Acme"
	}
	if job.Role == "" {
		job.Role = "Engineer"
	}
	if job.Status == "" {
		job.Status = jobs.StatusSaved
	}
	created, err := svc.Jobs.Create(context.Background(), job)
	if err != nil {
		t.Fatalf("seed job: %v", err)
	}
	return created
}

func seedProfile(t *testing.T, svc *Service) profiles.Profile {
	t.Helper()
	created, err := svc.Profiles.Create(context.Background(), profiles.Profile{
		Name:        "Jo",
		Skills:      []string{"Go"},
		ContactInfo: profiles.ContactInfo{Email: "jo@example.com"},
	})
	if err != nil {
		t.Fatalf("seed profile: %v", err)
	}
	return created
}

func TestExtractKeywordsMergesIntoEmptyList(t *testing.T) {
	client := &fakeLLM{responses: []string{`["Node.js","React.js","AWS"]`}}
	svc := newTestStudio(t, client)

	got, err := svc.ExtractKeywords(context.Background(),
		"Looking for a Node.js and React.js engineer with AWS experience,", nil)
	if err != nil {
		t.Fatalf("ExtractKeywords: %v", err)
	}
	want := []string{"Node.js", "React.js", "AWS"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("keywords = %v, want %v", got, want)
	}
	if client.requests[0].Model != "test-model" || !client.requests[0].JSONObject {
		t.Fatalf("unexpected request: %+v", client.requests[0])
	}
}

func TestExtractKeywordsRequiresDescription(t *testing.T) {
	client := &fakeLLM{}
	svc := newTestStudio(t, client)

	_, err := svc.ExtractKeywords(context.Background(), "  ", nil)
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if client.completeCalls != 0 {
		t.Fatalf("network call made despite validation failure")
	}
}

func TestAutoExtractOnPaste(t *testing.T) {
	long := strings.Repeat("Looking for a senior Go engineer. ", 3)

	tests := []struct {
		name     string
		pasted   string
		existing []string
		wantFire bool
	}{
		{name: "short paste", pasted: "Go engineer", wantFire: false},
		{name: "long paste no keywords", pasted: long, wantFire: true},
		{name: "long paste with keywords", pasted: long, existing: []string{"Go"}, wantFire: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeLLM{responses: []string{`["Go","AWS"]`}}
			svc := newTestStudio(t, client)

			_, fired, err := svc.AutoExtractOnPaste(context.Background(), tt.pasted, tt.existing)
			if err != nil {
				t.Fatalf("AutoExtractOnPaste: %v", err)
			}
			if fired != tt.wantFire {
				t.Fatalf("fired = %v, want %v", fired, tt.wantFire)
			}
			wantCalls := 0
			if tt.wantFire {
				wantCalls = 1
			}
			if client.completeCalls != wantCalls {
				t.Fatalf("completeCalls = %d, want %d", client.completeCalls, wantCalls)
			}
		})
	}
}

func TestScoreResumeExtractsFromProse(t *testing.T) {
	client := &fakeLLM{responses: []string{
		`Here you go: {"score": 82, "feedback": "Strong match.", "missingKeywords": ["Docker"]}`,
	}}
	svc := newTestStudio(t, client)

	got, err := svc.ScoreResume(context.Background(), "## Summary\nresume", "job description")
	if err != nil {
		t.Fatalf("ScoreResume: %v", err)
	}
	if got.Score != 82 || got.Feedback != "Strong match." {
		t.Fatalf("analysis = %+v", got)
	}
	if len(got.MissingKeywords) != 1 || got.MissingKeywords[0] != "Docker" {
		t.Fatalf("missingKeywords = %v", got.MissingKeywords)
	}
}

func TestScoreResumeRequiresBothInputs(t *testing.T) {
	client := &fakeLLM{}
	svc := newTestStudio(t, client)

	if _, err := svc.ScoreResume(context.Background(), "", "desc"); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for empty resume, got %v", err)
	}
	if _, err := svc.ScoreResume(context.Background(), "resume", ""); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for empty description, got %v", err)
	}
	if client.completeCalls != 0 {
		t.Fatal("network call made despite validation failure")
	}
}

func TestGenerateResumeValidatesBeforeNetwork(t *testing.T) {
	client := &fakeLLM{}
	svc := newTestStudio(t, client)
	job := seedJob(t, svc, jobs.Job{})

	if _, err := svc.GenerateResume(context.Background(), job.ID, 0); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation without profile, got %v", err)
	}

	profile := seedProfile(t, svc)
	if _, err := svc.GenerateResume(context.Background(), job.ID, profile.ID); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation without description, got %v", err)
	}
	if client.completeCalls != 0 {
		t.Fatal("network call made despite validation failure")
	}
}

func TestGenerateResumeCleansAndPersists(t *testing.T) {
	client := &fakeLLM{responses: []string{
		"Sure! Here's your tailored resume:\n\n## PROFESSIONAL SUMMARY\nBuilder of things.",
		`{"score": 77, "feedback": "Good.", "missingKeywords": []}`,
	}}
	svc := newTestStudio(t, client)
	job := seedJob(t, svc, jobs.Job{Description: "Build things in Go."})
	profile := seedProfile(t, svc)

	result, err := svc.GenerateResume(context.Background(), job.ID, profile.ID)
	if err != nil {
		t.Fatalf("GenerateResume: %v", err)
	}
	if !strings.HasPrefix(result.Text, "## PROFESSIONAL SUMMARY") {
		t.Fatalf("preamble survived cleanup: %q", result.Text)
	}
	if result.Analysis == nil || result.Analysis.Score != 77 {
		t.Fatalf("expected rescore after generation, got %+v", result.Analysis)
	}

	stored, err := svc.Jobs.Get(context.Background(), job.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if stored.ResumeSnapshot != result.Text {
		t.Fatalf("snapshot not persisted: %q", stored.ResumeSnapshot)
	}
	if stored.ProfileID == nil || *stored.ProfileID != profile.ID {
		t.Fatalf("profile reference not recorded: %v", stored.ProfileID)
	}
}

func TestGenerateResumeRescoreFailureDoesNotUndoGeneration(t *testing.T) {
	client := &fakeLLM{responses: []string{"## Summary\nText."}}
	svc := newTestStudio(t, client)
	job := seedJob(t, svc, jobs.Job{Description: "desc"})
	profile := seedProfile(t, svc)

	// Second Complete call (the rescore) returns empty; normalize still
	// produces a zero-score analysis rather than failing the generation.
	result, err := svc.GenerateResume(context.Background(), job.ID, profile.ID)
	if err != nil {
		t.Fatalf("GenerateResume: %v", err)
	}
	if result.Text != "## Summary\nText." {
		t.Fatalf("text = %q", result.Text)
	}
}

func TestRefineResumeRequiresExistingDraft(t *testing.T) {
	client := &fakeLLM{}
	svc := newTestStudio(t, client)
	job := seedJob(t, svc, jobs.Job{Description: "desc"})

	if _, err := svc.RefineResume(context.Background(), job.ID, "shorter"); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation without a draft, got %v", err)
	}
	if client.completeCalls != 0 {
		t.Fatal("network call made despite validation failure")
	}
}

func TestGenerateCoverLetterStreams(t *testing.T) {
	stream := &fakeStream{fragments: []string{"Dear ", "Hiring Manager,", " I am writing."}}
	client := &fakeLLM{stream: stream}
	svc := newTestStudio(t, client)
	job := seedJob(t, svc, jobs.Job{Description: "desc"})
	profile := seedProfile(t, svc)

	var got []string
	text, err := svc.GenerateCoverLetter(context.Background(), job.ID, profile.ID, func(fragment string) error {
		got = append(got, fragment)
		return nil
	})
	if err != nil {
		t.Fatalf("GenerateCoverLetter: %v", err)
	}
	if text != "Dear Hiring Manager, I am writing." {
		t.Fatalf("text = %q", text)
	}
	if len(got) != 3 {
		t.Fatalf("fragments delivered = %d, want 3", len(got))
	}
	if !stream.closed {
		t.Fatal("stream not closed")
	}
	if client.completeCalls != 0 {
		t.Fatal("cover letters must not trigger rescoring")
	}

	stored, err := svc.Jobs.Get(context.Background(), job.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if stored.CoverLetterSnapshot != text {
		t.Fatalf("snapshot not persisted: %q", stored.CoverLetterSnapshot)
	}
}

func TestGenerateCoverLetterFallsBackOnZeroContent(t *testing.T) {
	stream := &fakeStream{err: errors.New("connection reset")}
	client := &fakeLLM{stream: stream, responses: []string{"Dear Hiring Manager, fallback text."}}
	svc := newTestStudio(t, client)
	job := seedJob(t, svc, jobs.Job{Description: "desc"})
	profile := seedProfile(t, svc)

	var got []string
	text, err := svc.GenerateCoverLetter(context.Background(), job.ID, profile.ID, func(fragment string) error {
		got = append(got, fragment)
		return nil
	})
	if err != nil {
		t.Fatalf("GenerateCoverLetter: %v", err)
	}
	if text != "Dear Hiring Manager, fallback text." {
		t.Fatalf("text = %q", text)
	}
	if client.completeCalls != 1 {
		t.Fatalf("completeCalls = %d, want buffered fallback", client.completeCalls)
	}
	if len(got) != 1 || got[0] != text {
		t.Fatalf("expected the full text delivered as one fragment, got %v", got)
	}
}

func TestGenerateCoverLetterFallsBackOnCleanEmptyStream(t *testing.T) {
	// The provider may close the stream after nothing but a terminator line,
	// so zero accumulated content triggers the buffered retry even without a
	// stream error.
	stream := &fakeStream{}
	client := &fakeLLM{stream: stream, responses: []string{"Dear Hiring Manager, recovered text."}}
	svc := newTestStudio(t, client)
	job := seedJob(t, svc, jobs.Job{Description: "desc"})
	profile := seedProfile(t, svc)

	text, err := svc.GenerateCoverLetter(context.Background(), job.ID, profile.ID, nil)
	if err != nil {
		t.Fatalf("GenerateCoverLetter: %v", err)
	}
	if text != "Dear Hiring Manager, recovered text." {
		t.Fatalf("text = %q", text)
	}
	if client.completeCalls != 1 {
		t.Fatalf("completeCalls = %d, want 1 (buffered fallback on empty stream)", client.completeCalls)
	}

	stored, err := svc.Jobs.Get(context.Background(), job.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if stored.CoverLetterSnapshot != text {
		t.Fatalf("snapshot = %q, want the fallback text", stored.CoverLetterSnapshot)
	}
}

func TestGenerateCoverLetterKeepsPartialContent(t *testing.T) {
	stream := &fakeStream{fragments: []string{"Dear ", "Hiring Manager,"}, err: errors.New("connection reset")}
	client := &fakeLLM{stream: stream}
	svc := newTestStudio(t, client)
	job := seedJob(t, svc, jobs.Job{Description: "desc"})
	profile := seedProfile(t, svc)

	text, err := svc.GenerateCoverLetter(context.Background(), job.ID, profile.ID, nil)
	if err != nil {
		t.Fatalf("GenerateCoverLetter: %v", err)
	}
	if text != "Dear Hiring Manager," {
		t.Fatalf("partial text = %q", text)
	}
	if client.completeCalls != 0 {
		t.Fatal("buffered retry must not run after partial content")
	}

	stored, err := svc.Jobs.Get(context.Background(), job.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if stored.CoverLetterSnapshot != text {
		t.Fatalf("partial content not retained: %q", stored.CoverLetterSnapshot)
	}
}

func TestGenerateCoverLetterMissingKeyNoFallback(t *testing.T) {
	client := &fakeLLM{streamErr: llm.ErrMissingAPIKey}
	svc := newTestStudio(t, client)
	job := seedJob(t, svc, jobs.Job{Description: "desc"})
	profile := seedProfile(t, svc)

	_, err := svc.GenerateCoverLetter(context.Background(), job.ID, profile.ID, nil)
	if !errors.Is(err, llm.ErrMissingAPIKey) {
		t.Fatalf("expected ErrMissingAPIKey, got %v", err)
	}
	if client.completeCalls != 0 {
		t.Fatal("buffered retry must not run for a configuration error")
	}
}

func TestSaveEditRescoresResumeOnly(t *testing.T) {
	client := &fakeLLM{responses: []string{`{"score": 64, "feedback": "Edited.", "missingKeywords": []}`}}
	svc := newTestStudio(t, client)
	job := seedJob(t, svc, jobs.Job{Description: "desc", ResumeSnapshot: "## Summary\nOld."})

	session, err := svc.BeginEdit(context.Background(), job.ID, FieldResume)
	if err != nil {
		t.Fatalf("BeginEdit: %v", err)
	}
	if session.Text != "## Summary\nOld." {
		t.Fatalf("session holds wrong copy: %q", session.Text)
	}

	if _, err := svc.UpdateEdit(session.ID, "## Summary\nNew."); err != nil {
		t.Fatalf("UpdateEdit: %v", err)
	}
	result, err := svc.SaveEdit(context.Background(), session.ID)
	if err != nil {
		t.Fatalf("SaveEdit: %v", err)
	}
	if result.Job.ResumeSnapshot != "## Summary\nNew." {
		t.Fatalf("snapshot = %q", result.Job.ResumeSnapshot)
	}
	if result.Analysis == nil || result.Analysis.Score != 64 {
		t.Fatalf("expected rescore after resume edit, got %+v", result.Analysis)
	}
}

func TestSaveEditCoverLetterNeverRescores(t *testing.T) {
	client := &fakeLLM{}
	svc := newTestStudio(t, client)
	job := seedJob(t, svc, jobs.Job{Description: "desc", CoverLetterSnapshot: "Dear..."})

	session, err := svc.BeginEdit(context.Background(), job.ID, FieldCoverLetter)
	if err != nil {
		t.Fatalf("BeginEdit: %v", err)
	}
	if _, err := svc.UpdateEdit(session.ID, "Dear Hiring Manager,"); err != nil {
		t.Fatalf("UpdateEdit: %v", err)
	}
	result, err := svc.SaveEdit(context.Background(), session.ID)
	if err != nil {
		t.Fatalf("SaveEdit: %v", err)
	}
	if result.Analysis != nil {
		t.Fatalf("cover-letter edit triggered a rescore: %+v", result.Analysis)
	}
	if client.completeCalls != 0 {
		t.Fatal("network call made for a cover-letter edit")
	}
}

func TestCancelEditDiscardsUnconditionally(t *testing.T) {
	client := &fakeLLM{}
	svc := newTestStudio(t, client)
	job := seedJob(t, svc, jobs.Job{Description: "desc", ResumeSnapshot: "original"})

	session, err := svc.BeginEdit(context.Background(), job.ID, FieldResume)
	if err != nil {
		t.Fatalf("BeginEdit: %v", err)
	}
	if _, err := svc.UpdateEdit(session.ID, "scratch work"); err != nil {
		t.Fatalf("UpdateEdit: %v", err)
	}
	svc.CancelEdit(session.ID)

	if _, err := svc.SaveEdit(context.Background(), session.ID); !errors.Is(err, ErrDraftNotFound) {
		t.Fatalf("expected ErrDraftNotFound after cancel, got %v", err)
	}
	stored, err := svc.Jobs.Get(context.Background(), job.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if stored.ResumeSnapshot != "original" {
		t.Fatalf("cancelled edit leaked into the job: %q", stored.ResumeSnapshot)
	}

	// Cancelling twice is a no-op.
	svc.CancelEdit(session.ID)
}

func TestDraftLifecycle(t *testing.T) {
	client := &fakeLLM{}
	svc := newTestStudio(t, client)

	draft := svc.SaveDraft(Draft{Job: jobs.JobRequest{Company: "Acme", Role: "Engineer"}})
	if draft.ID == "" {
		t.Fatal("draft id not assigned")
	}

	committed, err := svc.CommitDraft(context.Background(), draft.ID)
	if err != nil {
		t.Fatalf("CommitDraft: %v", err)
	}
	if committed.ID == 0 || committed.Company != "Acme" {
		t.Fatalf("committed job = %+v", committed)
	}
	if _, err := svc.GetDraft(draft.ID); !errors.Is(err, ErrDraftNotFound) {
		t.Fatalf("draft survived commit: %v", err)
	}
}

func TestDecodeProfileDefaults(t *testing.T) {
	raw := `Here is the profile: {"targetRole":"Engineer","skills":["Go"],"experience":[{"company":"Acme","role":"Dev"}]} done`

	got, err := decodeProfile(raw)
	if err != nil {
		t.Fatalf("decodeProfile: %v", err)
	}
	if got.Name != "Imported Profile" {
		t.Fatalf("name = %q, want imported default", got.Name)
	}
	if len(got.Experience) != 1 || got.Experience[0].ID == "" {
		t.Fatalf("experience entry missing fresh uuid: %+v", got.Experience)
	}
	if got.ID != 0 {
		t.Fatalf("imported profile must be unsaved, got id %d", got.ID)
	}
}

func TestDecodeProfileUnparseable(t *testing.T) {
	if _, err := decodeProfile("no json here"); err == nil {
		t.Fatal("expected error for unparseable output")
	}
}
