package studio

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"jobos-backend/internal/extract"
	"jobos-backend/internal/jobs"
	"jobos-backend/internal/llm"
	"jobos-backend/internal/profiles"
	"jobos-backend/internal/shared/server/respond"
)

// Handler wires the studio actions to HTTP.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches the AI action, draft and edit-session routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/ai/keywords", h.extractKeywords)
	rg.POST("/ai/keywords/auto", h.autoExtract)
	rg.POST("/ai/score", h.score)
	rg.POST("/ai/resume", h.generateResume)
	rg.POST("/ai/resume/refine", h.refineResume)
	rg.POST("/ai/cover-letter", h.coverLetter)
	rg.POST("/ai/import-resume", h.importResume)

	rg.POST("/drafts", h.saveDraft)
	rg.GET("/drafts/:id", h.getDraft)
	rg.PUT("/drafts/:id", h.updateDraft)
	rg.DELETE("/drafts/:id", h.discardDraft)
	rg.POST("/drafts/:id/commit", h.commitDraft)

	rg.POST("/jobs/:id/edits", h.beginEdit)
	rg.PUT("/edits/:id", h.updateEdit)
	rg.POST("/edits/:id/save", h.saveEdit)
	rg.POST("/edits/:id/cancel", h.cancelEdit)
}

type keywordsRequest struct {
	Description string   `json:"description"`
	Keywords    []string `json:"keywords"`
}

func (h *Handler) extractKeywords(c *gin.Context) {
	var req keywordsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	merged, err := h.Svc.ExtractKeywords(c.Request.Context(), req.Description, req.Keywords)
	if err != nil {
		writeActionError(c, err)
		return
	}
	respond.OK(c, gin.H{"keywords": merged})
}

type autoExtractRequest struct {
	Pasted   string   `json:"pasted"`
	Keywords []string `json:"keywords"`
}

func (h *Handler) autoExtract(c *gin.Context) {
	var req autoExtractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	merged, extracted, err := h.Svc.AutoExtractOnPaste(c.Request.Context(), req.Pasted, req.Keywords)
	if err != nil {
		writeActionError(c, err)
		return
	}
	if merged == nil {
		merged = []string{}
	}
	respond.OK(c, gin.H{"keywords": merged, "extracted": extracted})
}

type scoreRequest struct {
	ResumeText  string `json:"resumeText"`
	Description string `json:"description"`
}

func (h *Handler) score(c *gin.Context) {
	var req scoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	analysis, err := h.Svc.ScoreResume(c.Request.Context(), req.ResumeText, req.Description)
	if err != nil {
		writeActionError(c, err)
		return
	}
	respond.OK(c, analysis)
}

type generateRequest struct {
	JobID     int64 `json:"jobId"`
	ProfileID int64 `json:"profileId"`
}

func (h *Handler) generateResume(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	result, err := h.Svc.GenerateResume(c.Request.Context(), req.JobID, req.ProfileID)
	if err != nil {
		writeActionError(c, err)
		return
	}
	respond.OK(c, result)
}

type refineRequest struct {
	JobID        int64  `json:"jobId"`
	Instructions string `json:"instructions"`
}

func (h *Handler) refineResume(c *gin.Context) {
	var req refineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	result, err := h.Svc.RefineResume(c.Request.Context(), req.JobID, req.Instructions)
	if err != nil {
		writeActionError(c, err)
		return
	}
	respond.OK(c, result)
}

// coverLetter streams the generated letter as server-sent events. Each
// fragment arrives as `data: {"delta": ...}`; the final event carries the
// full text. Errors before the first fragment use the normal JSON envelope.
func (h *Handler) coverLetter(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	started := false
	start := func() {
		if started {
			return
		}
		started = true
		c.Writer.Header().Set("Content-Type", "text/event-stream")
		c.Writer.Header().Set("Cache-Control", "no-cache")
		c.Writer.Header().Set("Connection", "keep-alive")
		c.Writer.WriteHeader(http.StatusOK)
	}
	onFragment := func(fragment string) error {
		start()
		return writeEvent(c, gin.H{"delta": fragment})
	}

	text, err := h.Svc.GenerateCoverLetter(c.Request.Context(), req.JobID, req.ProfileID, onFragment)
	if err != nil {
		if !started {
			writeActionError(c, err)
			return
		}
		_ = writeEvent(c, gin.H{"error": err.Error()})
		return
	}
	start()
	_ = writeEvent(c, gin.H{"done": true, "text": text})
}

func writeEvent(c *gin.Context, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(c.Writer, "data: %s\n\n", raw); err != nil {
		return err
	}
	c.Writer.Flush()
	return nil
}

func (h *Handler) importResume(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "a resume file is required", nil)
		return
	}
	file, err := header.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "failed to read uploaded file", nil)
		return
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "failed to read uploaded file", nil)
		return
	}

	profile, err := h.Svc.ImportResume(c.Request.Context(), data, header.Header.Get("Content-Type"), header.Filename)
	if err != nil {
		writeActionError(c, err)
		return
	}
	respond.OK(c, profile)
}

func (h *Handler) saveDraft(c *gin.Context) {
	var draft Draft
	if err := c.ShouldBindJSON(&draft); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	draft.ID = ""
	respond.Created(c, h.Svc.SaveDraft(draft))
}

func (h *Handler) getDraft(c *gin.Context) {
	draft, err := h.Svc.GetDraft(c.Param("id"))
	if err != nil {
		writeActionError(c, err)
		return
	}
	respond.OK(c, draft)
}

func (h *Handler) updateDraft(c *gin.Context) {
	var draft Draft
	if err := c.ShouldBindJSON(&draft); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if _, err := h.Svc.GetDraft(c.Param("id")); err != nil {
		writeActionError(c, err)
		return
	}
	draft.ID = c.Param("id")
	respond.OK(c, h.Svc.SaveDraft(draft))
}

func (h *Handler) discardDraft(c *gin.Context) {
	h.Svc.DiscardDraft(c.Param("id"))
	c.Status(http.StatusNoContent)
}

func (h *Handler) commitDraft(c *gin.Context) {
	job, err := h.Svc.CommitDraft(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeActionError(c, err)
		return
	}
	respond.Created(c, jobs.ToResponse(job))
}

type beginEditRequest struct {
	Field string `json:"field"`
}

func (h *Handler) beginEdit(c *gin.Context) {
	jobID, ok := pathID(c)
	if !ok {
		return
	}
	var req beginEditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	session, err := h.Svc.BeginEdit(c.Request.Context(), jobID, SnapshotField(req.Field))
	if err != nil {
		writeActionError(c, err)
		return
	}
	respond.Created(c, session)
}

type updateEditRequest struct {
	Text string `json:"text"`
}

func (h *Handler) updateEdit(c *gin.Context) {
	var req updateEditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	session, err := h.Svc.UpdateEdit(c.Param("id"), req.Text)
	if err != nil {
		writeActionError(c, err)
		return
	}
	respond.OK(c, session)
}

func (h *Handler) saveEdit(c *gin.Context) {
	result, err := h.Svc.SaveEdit(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeActionError(c, err)
		return
	}
	respond.OK(c, result)
}

func (h *Handler) cancelEdit(c *gin.Context) {
	h.Svc.CancelEdit(c.Param("id"))
	c.Status(http.StatusNoContent)
}

func pathID(c *gin.Context) (int64, bool) {
	var id int64
	if _, err := fmt.Sscan(c.Param("id"), &id); err != nil || id <= 0 {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid id", nil)
		return 0, false
	}
	return id, true
}

// writeActionError maps studio action failures onto the error envelope. AI
// call failures surface the most specific message available.
func writeActionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case errors.Is(err, llm.ErrMissingAPIKey):
		respond.Error(c, http.StatusBadRequest, "configuration_error", err.Error(), nil)
	case errors.Is(err, extract.ErrUnsupportedType):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case errors.Is(err, ErrDraftNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", err.Error(), nil)
	case errors.Is(err, jobs.ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "job not found", nil)
	case errors.Is(err, profiles.ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "profile not found", nil)
	case errors.Is(err, jobs.ErrInvalidInput), errors.Is(err, profiles.ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	default:
		respond.Error(c, http.StatusBadGateway, "ai_error", err.Error(), nil)
	}
}
