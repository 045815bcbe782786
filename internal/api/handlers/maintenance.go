package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/scamhive/honeypot-service/internal/api/dto"
	"github.com/scamhive/honeypot-service/internal/services/session"
)

// MaintenanceHandler handles operational maintenance endpoints.
type MaintenanceHandler struct {
	store *session.Store
}

// NewMaintenanceHandler creates a new MaintenanceHandler.
func NewMaintenanceHandler(store *session.Store) *MaintenanceHandler {
	return &MaintenanceHandler{store: store}
}

// Cleanup handles the /api/v1/cleanup endpoint: it sweeps expired sessions
// and reports the result.
// @Summary Sweep expired sessions
// @Tags Maintenance
// @Produce json
// @Success 200 {object} dto.CleanupResponse
// @Router /api/v1/cleanup [post]
func (h *MaintenanceHandler) Cleanup(c *gin.Context) {
	removed := h.store.SweepExpired()

	c.JSON(http.StatusOK, dto.CleanupResponse{
		Status:         "success",
		Removed:        removed,
		ActiveSessions: h.store.Count(),
	})
}
