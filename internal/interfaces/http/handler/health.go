package handler

import (
	"net/http"
	"time"

	"github.com/craftshop/backend/internal/infrastructure/persistence"
	"github.com/craftshop/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// HealthHandler handles liveness and readiness probes
type HealthHandler struct {
	BaseHandler
	db      *persistence.Database
	appName string
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(db *persistence.Database, appName string) *HealthHandler {
	return &HealthHandler{db: db, appName: appName}
}

// Health handles GET /api/v1/health
func (h *HealthHandler) Health(c *gin.Context) {
	h.Success(c, gin.H{
		"app":    h.appName,
		"status": "ok",
		"time":   time.Now().UTC(),
	})
}

// Ready handles GET /api/v1/ready. Not ready until the database answers.
func (h *HealthHandler) Ready(c *gin.Context) {
	if err := h.db.Ping(); err != nil {
		c.JSON(http.StatusServiceUnavailable,
			dto.NewErrorResponse("NOT_READY", "Database is unreachable"))
		return
	}
	h.Success(c, gin.H{"status": "ready"})
}
