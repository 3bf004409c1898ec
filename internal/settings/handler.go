package settings

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"jobos-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches settings routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/settings", h.get)
	rg.PUT("/settings", h.update)
}

// SettingsResponse is the outward-facing representation of the settings row.
type SettingsResponse struct {
	ID               int64     `json:"id"`
	OpenRouterAPIKey string    `json:"openRouterApiKey"`
	Theme            string    `json:"theme"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

type settingsRequest struct {
	OpenRouterAPIKey string `json:"openRouterApiKey"`
	Theme            string `json:"theme"`
}

// ToResponse converts the settings row into its outward-facing form.
func ToResponse(s AppSettings) SettingsResponse {
	return SettingsResponse{
		ID:               s.ID,
		OpenRouterAPIKey: s.OpenRouterAPIKey,
		Theme:            string(s.Theme),
		UpdatedAt:        s.UpdatedAt,
	}
}

func (h *Handler) get(c *gin.Context) {
	current, err := h.Svc.Get(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load settings", nil)
		return
	}
	respond.OK(c, ToResponse(current))
}

func (h *Handler) update(c *gin.Context) {
	var req settingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	updated, err := h.Svc.Update(c.Request.Context(), req.OpenRouterAPIKey, Theme(req.Theme))
	if err != nil {
		if errors.Is(err, ErrInvalidInput) {
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to save settings", nil)
		return
	}
	respond.OK(c, ToResponse(updated))
}
