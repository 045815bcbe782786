package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/scamhive/honeypot-service/internal/api/dto"
	"github.com/scamhive/honeypot-service/internal/core/collector"
	"github.com/scamhive/honeypot-service/internal/services/session"
)

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	store *session.Store
	sink  collector.Sink
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(store *session.Store, sink collector.Sink) *HealthHandler {
	return &HealthHandler{
		store: store,
		sink:  sink,
	}
}

// Health handles the /api/v1/health endpoint.
// @Summary Health check
// @Description Reports process-wide active session count
// @Tags Health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Router /api/v1/health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, dto.HealthResponse{
		Status:         "healthy",
		ActiveSessions: h.store.Count(),
	})
}

// Ready handles the /api/v1/ready endpoint. Readiness includes the
// collector sink; the conversational path itself has no dependencies.
// @Summary Readiness check
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /api/v1/ready [get]
func (h *HealthHandler) Ready(c *gin.Context) {
	if err := h.sink.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not ready",
			"reason": "collector unavailable",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
	})
}
