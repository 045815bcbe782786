// Package logsink provides a collector sink that only logs report summaries.
// It is the default when no external collector is configured.
package logsink

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/scamhive/honeypot-service/internal/domain/models"
)

// Sink logs terminated-session summaries without external delivery.
type Sink struct {
	logger zerolog.Logger
}

// NewSink creates a new log sink.
func NewSink(logger zerolog.Logger) *Sink {
	return &Sink{
		logger: logger.With().Str("component", "collector").Logger(),
	}
}

// Deliver logs a summary of the report.
func (s *Sink) Deliver(_ context.Context, report *models.SessionReport) error {
	intents := make([]string, 0, len(report.ScamIntents))
	for _, intent := range report.ScamIntents {
		intents = append(intents, string(intent))
	}

	s.logger.Info().
		Str("report_id", report.ReportID).
		Str("session_id", report.SessionID).
		Bool("scam_detected", report.ScamDetected).
		Strs("intents", intents).
		Float64("max_confidence", report.MaxConfidence).
		Int("message_count", report.MessageCount).
		Int("intel_items", report.Intelligence.ItemCount()).
		Str("termination_reason", string(report.TerminationReason)).
		Msg("session report")
	return nil
}

// Ping always succeeds.
func (s *Sink) Ping(_ context.Context) error {
	return nil
}

// Close is a no-op.
func (s *Sink) Close() error {
	return nil
}
