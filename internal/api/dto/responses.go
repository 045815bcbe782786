// Package dto provides Data Transfer Objects for API requests and responses.
package dto

import "github.com/scamhive/honeypot-service/internal/domain/models"

// HoneypotResponse is the strict primary-endpoint response: always success,
// always a reply, no internal detail.
type HoneypotResponse struct {
	Status string `json:"status"`
	Reply  string `json:"reply"`
}

// MessageResponse is the debug-endpoint response with classification and
// extraction detail.
type MessageResponse struct {
	SessionID             string                    `json:"sessionId"`
	Reply                 string                    `json:"reply"`
	ScamDetected          bool                      `json:"scamDetected"`
	ScamIntents           []models.ScamIntent       `json:"scamIntents"`
	Confidence            float64                   `json:"confidence"`
	ShouldContinue        bool                      `json:"shouldContinue"`
	ExtractedIntelligence models.IntelligenceReport `json:"extractedIntelligence"`
}

// HealthResponse reports process-wide session state.
type HealthResponse struct {
	Status         string `json:"status"`
	ActiveSessions int    `json:"active_sessions"`
}

// CleanupResponse reports the result of an expiry sweep.
type CleanupResponse struct {
	Status         string `json:"status"`
	Removed        int    `json:"removed"`
	ActiveSessions int    `json:"active_sessions"`
}
