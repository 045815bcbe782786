package models

import "time"

// SessionStatus represents the lifecycle state of a session.
type SessionStatus string

const (
	// StatusActive means the session is still accepting messages.
	StatusActive SessionStatus = "ACTIVE"
	// StatusTerminated is terminal; a terminated session is never reactivated.
	StatusTerminated SessionStatus = "TERMINATED"
)

// TerminationReason records why a session was terminated.
type TerminationReason string

const (
	// ReasonMaxMessages means the scammer-message ceiling was reached.
	ReasonMaxMessages TerminationReason = "MAX_MESSAGES_REACHED"
	// ReasonTimeout means the session exceeded its idle TTL.
	ReasonTimeout TerminationReason = "SESSION_TIMEOUT"
	// ReasonSufficientIntel means enough intelligence and confidence signal
	// accumulated to stop engaging.
	ReasonSufficientIntel TerminationReason = "SUFFICIENT_INTELLIGENCE"
)

// SessionReport is an immutable snapshot of a terminated session, handed to
// the collector pipeline. It carries everything the external collector needs
// so the live session can be evicted without waiting for delivery.
type SessionReport struct {
	ReportID          string             `json:"reportId" bson:"_id"`
	SessionID         string             `json:"sessionId" bson:"sessionId"`
	ScamDetected      bool               `json:"scamDetected" bson:"scamDetected"`
	ScamIntents       []ScamIntent       `json:"scamIntents" bson:"scamIntents"`
	MaxConfidence     float64            `json:"maxConfidence" bson:"maxConfidence"`
	LastConfidence    float64            `json:"lastConfidence" bson:"lastConfidence"`
	MessageCount      int                `json:"messageCount" bson:"messageCount"`
	Transcript        []Message          `json:"transcript" bson:"transcript"`
	Intelligence      IntelligenceReport `json:"intelligence" bson:"intelligence"`
	TerminationReason TerminationReason  `json:"terminationReason" bson:"terminationReason"`
	CreatedAt         time.Time          `json:"createdAt" bson:"createdAt"`
	TerminatedAt      time.Time          `json:"terminatedAt" bson:"terminatedAt"`
}
