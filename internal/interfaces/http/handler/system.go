package handler

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/shopadmin/backend/internal/interfaces/http/dto"
)

// Pinger reports whether a backing dependency is reachable
type Pinger interface {
	Ping() error
}

// SystemHandler handles health and liveness endpoints
type SystemHandler struct {
	BaseHandler
	db        Pinger
	startTime time.Time
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(db Pinger) *SystemHandler {
	return &SystemHandler{
		db:        db,
		startTime: time.Now(),
	}
}

// RegisterRoutes mounts the health route on rg
func (h *SystemHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/health", h.Health)
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string `json:"status" example:"ok"`
	Database  string `json:"database" example:"ok"`
	GoVersion string `json:"goVersion" example:"go1.24.0"`
	Uptime    string `json:"uptime" example:"1h30m45s"`
	Timestamp string `json:"timestamp" example:"2026-08-31T12:00:00Z"`
}

// Health godoc
// @Summary  Health check
// @Tags     system
// @Produce  json
// @Success  200 {object} dto.Response
// @Failure  503 {object} dto.Response
// @Router   /health [get]
func (h *SystemHandler) Health(c *gin.Context) {
	info := HealthResponse{
		Status:    "ok",
		Database:  "ok",
		GoVersion: runtime.Version(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	if h.db != nil {
		if err := h.db.Ping(); err != nil {
			info.Status = "unhealthy"
			info.Database = "error"
			c.JSON(http.StatusServiceUnavailable, dto.NewSuccessResponse(info))
			return
		}
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(info))
}

// Root godoc
// @Summary  API liveness banner
// @Tags     system
// @Produce  json
// @Success  200 {object} dto.Response
// @Router   / [get]
func (h *SystemHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, dto.NewMessageResponse("Shop administration API is running"))
}
