package backup

import (
	"net/http"

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

// RegisterRoutes attaches backup routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/backup/export", h.export)
	rg.POST("/backup/wipe", h.wipe)
}

func (h *Handler) export(c *gin.Context) {
	snapshot, err := h.Svc.Snapshot(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to export data", nil)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="job-os-backup.json"`)
	respond.OK(c, snapshot)
}

func (h *Handler) wipe(c *gin.Context) {
	if err := h.Svc.WipeAll(c.Request.Context()); err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to clear data", nil)
		return
	}
	c.Status(http.StatusNoContent)
}
