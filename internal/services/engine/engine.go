// Package engine implements the per-session conversation engine: it folds
// classification and extraction results into session state, applies the
// termination policy, and selects replies.
package engine

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/scamhive/honeypot-service/internal/domain/models"
	"github.com/scamhive/honeypot-service/internal/services/detector"
	"github.com/scamhive/honeypot-service/internal/services/intel"
	"github.com/scamhive/honeypot-service/internal/services/notifier"
	"github.com/scamhive/honeypot-service/internal/services/reply"
	"github.com/scamhive/honeypot-service/internal/services/session"
)

// DefaultReply is substituted whenever the generator yields empty output.
// The conversational path never surfaces an error to the remote party.
const DefaultReply = "Why is my account being suspended?"

// Recorder observes engine activity. *metrics.Metrics satisfies it; nil
// disables recording.
type Recorder interface {
	RecordMessage(scamDetected bool)
	RecordTermination(reason string)
	RecordIntelItems(field string, count int)
}

// Result is the outcome of processing one inbound message.
type Result struct {
	SessionID      string
	Reply          string
	ScamDetected   bool
	ScamIntents    []models.ScamIntent
	Confidence     float64
	ShouldContinue bool
	// Extracted holds the findings from this message only; the session
	// carries the accumulated report.
	Extracted models.IntelligenceReport
}

// Config holds the engine dependencies.
type Config struct {
	Store      *session.Store
	Detector   detector.Detector
	Extractor  *intel.Extractor
	Replies    *reply.Generator
	Dispatcher *notifier.Dispatcher
	Policy     session.Policy
	Recorder   Recorder
	Logger     zerolog.Logger
}

// Engine processes inbound messages against the session store.
type Engine struct {
	store      *session.Store
	detector   detector.Detector
	extractor  *intel.Extractor
	replies    *reply.Generator
	dispatcher *notifier.Dispatcher
	policy     session.Policy
	recorder   Recorder
	logger     zerolog.Logger
}

// New creates a new Engine.
func New(cfg Config) *Engine {
	return &Engine{
		store:      cfg.Store,
		detector:   cfg.Detector,
		extractor:  cfg.Extractor,
		replies:    cfg.Replies,
		dispatcher: cfg.Dispatcher,
		policy:     cfg.Policy,
		recorder:   cfg.Recorder,
		logger:     cfg.Logger.With().Str("component", "engine").Logger(),
	}
}

// ProcessMessage runs one inbound message through the full control flow and
// returns the reply. It never fails: collaborator errors degrade to neutral
// results and the reply falls back to DefaultReply.
func (e *Engine) ProcessMessage(sessionID, text string) Result {
	s := e.store.GetOrCreate(sessionID)
	s.AddMessage(models.RoleScammer, text)

	detection, err := e.detector.Detect(text)
	if err != nil {
		// A failing detector yields a neutral classification, never an
		// aborted request.
		e.logger.Error().Err(err).Str("session_id", sessionID).Msg("detector failed")
		detection = detector.Result{}
	}

	s.AddIntents(detection.Intents)
	s.AddConfidenceScore(detection.Confidence)

	extracted := e.extractor.Extract(text)
	s.MergeIntelligence(extracted)
	e.recordIntel(extracted)

	if e.recorder != nil {
		e.recorder.RecordMessage(detection.IsScam)
	}

	terminate, reason := s.ShouldTerminate(e.policy)

	var replyText string
	if terminate {
		replyText = e.replies.GenerateGoodbye()
		if replyText == "" {
			replyText = DefaultReply
		}
		e.terminate(s, reason, replyText)
	} else {
		// turnIndex counts the scammer messages before this one.
		replyText = e.replies.GenerateReply(text, s.IntentSet(), s.MessageCount()-1)
		if replyText == "" {
			replyText = DefaultReply
		}
		s.AddMessage(models.RoleAgent, replyText)
	}

	return Result{
		SessionID:      sessionID,
		Reply:          replyText,
		ScamDetected:   detection.IsScam,
		ScamIntents:    intentsOrNone(detection.Intents),
		Confidence:     detection.Confidence,
		ShouldContinue: !terminate,
		Extracted:      extracted,
	}
}

// terminate transitions the session, schedules the report, and evicts the
// session. Concurrent messages for the same id can race the same trigger;
// only the caller that wins the ACTIVE to TERMINATED transition snapshots
// and reports, so the collector sees one report per session. The goodbye
// reply is already computed; eviction after reply generation is an ordering
// requirement because reply selection reads session state.
func (e *Engine) terminate(s *session.Session, reason models.TerminationReason, goodbye string) {
	if !s.Terminate(reason) {
		return
	}
	s.AddMessage(models.RoleAgent, goodbye)

	report := s.Snapshot(uuid.NewString())
	e.dispatcher.Enqueue(report)

	e.store.Delete(s.ID())

	if e.recorder != nil {
		e.recorder.RecordTermination(string(reason))
	}
	e.logger.Info().
		Str("session_id", s.ID()).
		Str("reason", string(reason)).
		Int("message_count", report.MessageCount).
		Msg("session terminated")
}

func (e *Engine) recordIntel(r models.IntelligenceReport) {
	if e.recorder == nil {
		return
	}
	e.recorder.RecordIntelItems("upi_ids", len(r.UPIIDs))
	e.recorder.RecordIntelItems("phone_numbers", len(r.PhoneNumbers))
	e.recorder.RecordIntelItems("urls", len(r.URLs))
	e.recorder.RecordIntelItems("bank_accounts", len(r.BankAccounts))
	e.recorder.RecordIntelItems("email_addresses", len(r.EmailAddresses))
}

func intentsOrNone(intents []models.ScamIntent) []models.ScamIntent {
	if len(intents) == 0 {
		return []models.ScamIntent{models.IntentNone}
	}
	return intents
}
