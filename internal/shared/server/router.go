package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"jobos-backend/internal/shared/config"
	"jobos-backend/internal/shared/server/middleware"
	"jobos-backend/internal/shared/server/respond"
)

// RouteRegistrar registers a handler's routes on a group.
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// RouterDeps carries the handlers the router wires up.
type RouterDeps struct {
	Config          config.Config
	JobsHandler     RouteRegistrar
	ProfilesHandler RouteRegistrar
	ContactsHandler RouteRegistrar
	SettingsHandler RouteRegistrar
	BackupHandler   RouteRegistrar
	StudioHandler   RouteRegistrar
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.RateLimit(middleware.RateLimitConfig{
			// AI actions hit a paid model API; everything else is local CRUD.
			Rules: map[string]middleware.RateLimitRule{
				"ai": {Rate: 0.5, Burst: 5},
			},
			GroupFor: func(c *gin.Context) string {
				if strings.HasPrefix(c.Request.URL.Path, "/api/v1/ai") {
					return "ai"
				}
				return ""
			},
		}),
	)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	for _, h := range []RouteRegistrar{
		deps.JobsHandler,
		deps.ProfilesHandler,
		deps.ContactsHandler,
		deps.SettingsHandler,
		deps.BackupHandler,
		deps.StudioHandler,
	} {
		if h != nil {
			h.RegisterRoutes(api)
		}
	}

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
