// Package handlers provides HTTP handlers for the API.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/scamhive/honeypot-service/internal/api/dto"
	"github.com/scamhive/honeypot-service/internal/api/middleware"
	"github.com/scamhive/honeypot-service/internal/domain/errors"
	"github.com/scamhive/honeypot-service/internal/services/engine"
)

const (
	// defaultGreeting substitutes a missing or malformed message text.
	defaultGreeting = "Hello"
	// pingReply acknowledges tester probes without touching any session.
	pingReply = "Honeypot API is active"
	// emptyBodyReply answers an empty POST body without touching any session.
	emptyBodyReply = "Hello. How can I help you?"
)

// HoneypotHandler handles the conversational endpoints.
type HoneypotHandler struct {
	engine *engine.Engine
}

// NewHoneypotHandler creates a new HoneypotHandler.
func NewHoneypotHandler(eng *engine.Engine) *HoneypotHandler {
	return &HoneypotHandler{engine: eng}
}

// Ping handles GET and HEAD probes on the primary endpoint.
// @Summary Tester ping
// @Description Returns a static acknowledgment without touching any session
// @Tags Honeypot
// @Produce json
// @Success 200 {object} dto.HoneypotResponse
// @Router /api/honeypot [get]
func (h *HoneypotHandler) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, dto.HoneypotResponse{
		Status: "success",
		Reply:  pingReply,
	})
}

// Process handles the primary honeypot endpoint. The conversational path
// never fails visibly: degenerate input is normalized, not rejected.
// @Summary Process a scammer message
// @Description Runs one inbound message through the conversation engine
// @Tags Honeypot
// @Accept json
// @Produce json
// @Success 200 {object} dto.HoneypotResponse
// @Router /api/honeypot [post]
func (h *HoneypotHandler) Process(c *gin.Context) {
	var req dto.HoneypotRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.SessionID == "" {
		// Empty or unparseable body is a tester probe.
		c.JSON(http.StatusOK, dto.HoneypotResponse{
			Status: "success",
			Reply:  emptyBodyReply,
		})
		return
	}

	text := req.MessageText(defaultGreeting)
	result := h.engine.ProcessMessage(req.SessionID, text)

	c.JSON(http.StatusOK, dto.HoneypotResponse{
		Status: "success",
		Reply:  result.Reply,
	})
}

// ProcessDebug handles the internal debugging endpoint with full
// classification and extraction detail.
// @Summary Process a message with debug detail
// @Tags Honeypot
// @Accept json
// @Produce json
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Router /api/v1/message [post]
func (h *HoneypotHandler) ProcessDebug(c *gin.Context) {
	var req dto.MessageEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	result := h.engine.ProcessMessage(req.SessionID, req.Message)

	c.JSON(http.StatusOK, dto.MessageResponse{
		SessionID:             req.SessionID,
		Reply:                 result.Reply,
		ScamDetected:          result.ScamDetected,
		ScamIntents:           result.ScamIntents,
		Confidence:            result.Confidence,
		ShouldContinue:        result.ShouldContinue,
		ExtractedIntelligence: result.Extracted,
	})
}
