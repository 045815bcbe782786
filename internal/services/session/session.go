// Package session provides the conversation session entity and its
// in-memory store.
package session

import (
	"sync"
	"time"

	"github.com/scamhive/honeypot-service/internal/domain/models"
	"github.com/scamhive/honeypot-service/internal/services/intel"
)

// Policy holds the termination policy knobs for a session.
type Policy struct {
	// MaxMessages is the scammer-message ceiling per session.
	MaxMessages int
	// TTL is the maximum idle time before a session expires.
	TTL time.Duration
	// MinEngagementMessages is the minimum number of scammer messages before
	// the sufficient-intelligence trigger is considered.
	MinEngagementMessages int
	// ConfidenceThreshold is the minimum peak confidence for the
	// sufficient-intelligence trigger.
	ConfidenceThreshold float64
	// MinIntelItems is the number of distinct intelligence items required by
	// the sufficient-intelligence trigger. Zero disables the trigger.
	MinIntelItems int
}

// Session is one ongoing simulated conversation with a single remote
// counterpart. All methods are safe for concurrent use; each method is
// atomic with respect to other operations on the same session.
type Session struct {
	mu sync.Mutex

	id                string
	messages          []models.Message
	messageCount      int // scammer-authored messages only
	scamIntents       models.IntentSet
	confidenceScores  []float64
	intelligence      models.IntelligenceReport
	status            models.SessionStatus
	terminationReason models.TerminationReason
	createdAt         time.Time
	lastActivityAt    time.Time
}

// New creates an empty active session.
func New(id string) *Session {
	now := time.Now().UTC()
	return &Session{
		id:             id,
		scamIntents:    make(models.IntentSet),
		status:         models.StatusActive,
		createdAt:      now,
		lastActivityAt: now,
	}
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// AddMessage appends a message to the conversation history. Scammer-authored
// messages advance the message count that drives reply staging.
func (s *Session) AddMessage(role models.MessageRole, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.messages = append(s.messages, models.Message{
		Role:      role,
		Text:      text,
		Timestamp: time.Now().UTC(),
	})
	if role == models.RoleScammer {
		s.messageCount++
	}
	s.lastActivityAt = time.Now().UTC()
}

// AddIntents unions the detected intents into the accumulated set. The set
// never shrinks.
func (s *Session) AddIntents(intents []models.ScamIntent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, intent := range intents {
		s.scamIntents.Add(intent)
	}
}

// AddConfidenceScore appends a per-message confidence value to the history.
func (s *Session) AddConfidenceScore(score float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.confidenceScores = append(s.confidenceScores, score)
}

// MergeIntelligence merges newly extracted findings into the accumulated
// report by field-wise set union.
func (s *Session) MergeIntelligence(report models.IntelligenceReport) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.intelligence = intel.Merge(s.intelligence, report)
}

// ShouldTerminate evaluates the termination policy. Checks run in a fixed
// order (message ceiling, idle timeout, sufficient intelligence) so a single
// call reports at most one reason.
func (s *Session) ShouldTerminate(p Policy) (bool, models.TerminationReason) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status == models.StatusTerminated {
		return false, ""
	}

	if s.messageCount >= p.MaxMessages {
		return true, models.ReasonMaxMessages
	}

	if time.Since(s.lastActivityAt) > p.TTL {
		return true, models.ReasonTimeout
	}

	if p.MinIntelItems > 0 &&
		s.messageCount >= p.MinEngagementMessages &&
		s.intelligence.ItemCount() >= p.MinIntelItems &&
		maxScore(s.confidenceScores) >= p.ConfidenceThreshold {
		return true, models.ReasonSufficientIntel
	}

	return false, ""
}

// Terminate transitions the session to TERMINATED with the given reason and
// reports whether this call performed the transition. The transition happens
// at most once; later calls return false and the recorded reason never
// changes. Callers racing the same trigger use the return value to decide
// which of them owns the terminal work.
func (s *Session) Terminate(reason models.TerminationReason) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status == models.StatusTerminated {
		return false
	}
	s.status = models.StatusTerminated
	s.terminationReason = reason
	return true
}

// Status returns the current lifecycle state.
func (s *Session) Status() models.SessionStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// TerminationReason returns the recorded termination reason, empty while the
// session is still active.
func (s *Session) TerminationReason() models.TerminationReason {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.terminationReason
}

// MessageCount returns the number of scammer-authored messages received.
func (s *Session) MessageCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.messageCount
}

// Intents returns the accumulated intent set as a list, substituting a NONE
// marker when empty.
func (s *Session) Intents() []models.ScamIntent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scamIntents.List()
}

// IntentSet returns a copy of the accumulated intent set.
func (s *Session) IntentSet() models.IntentSet {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(models.IntentSet, len(s.scamIntents))
	for intent := range s.scamIntents {
		out.Add(intent)
	}
	return out
}

// Intelligence returns the accumulated intelligence report.
func (s *Session) Intelligence() models.IntelligenceReport {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.intelligence
}

// LastActivityAt returns the time of the most recent message.
func (s *Session) LastActivityAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActivityAt
}

// Expired reports whether the session has been idle longer than ttl.
func (s *Session) Expired(now time.Time, ttl time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastActivityAt) > ttl
}

// Snapshot builds an immutable report of the session for the collector
// pipeline. The snapshot owns copies of all mutable state, so it stays valid
// after the session is evicted.
func (s *Session) Snapshot(reportID string) *models.SessionReport {
	s.mu.Lock()
	defer s.mu.Unlock()

	transcript := make([]models.Message, len(s.messages))
	copy(transcript, s.messages)

	last := 0.0
	if n := len(s.confidenceScores); n > 0 {
		last = s.confidenceScores[n-1]
	}

	return &models.SessionReport{
		ReportID:          reportID,
		SessionID:         s.id,
		ScamDetected:      len(s.scamIntents) > 0,
		ScamIntents:       s.scamIntents.List(),
		MaxConfidence:     maxScore(s.confidenceScores),
		LastConfidence:    last,
		MessageCount:      s.messageCount,
		Transcript:        transcript,
		Intelligence:      s.intelligence,
		TerminationReason: s.terminationReason,
		CreatedAt:         s.createdAt,
		TerminatedAt:      time.Now().UTC(),
	}
}

func maxScore(scores []float64) float64 {
	max := 0.0
	for _, v := range scores {
		if v > max {
			max = v
		}
	}
	return max
}
