package engine_test

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scamhive/honeypot-service/internal/domain/models"
	"github.com/scamhive/honeypot-service/internal/services/detector"
	"github.com/scamhive/honeypot-service/internal/services/engine"
	"github.com/scamhive/honeypot-service/internal/services/intel"
	"github.com/scamhive/honeypot-service/internal/services/notifier"
	"github.com/scamhive/honeypot-service/internal/services/reply"
	"github.com/scamhive/honeypot-service/internal/services/session"
)

// Reply categories the scenarios assert against. The wording mirrors the
// generator's template sets.
var initialReplies = []string{
	"Hello! Thanks for reaching out. What is this about?",
	"Hi there! I got your message. Can you tell me more?",
	"Hey! I'm interested. Please explain more.",
	"Hello! This sounds interesting. What do I need to do?",
}

var goodbyeReplies = []string{
	"I need to go now. Thanks for the information.",
	"I'll think about it and let you know.",
	"Sorry, I have to leave. Talk later.",
	"I need to check this with someone. Bye for now.",
}

type memorySink struct {
	mu      sync.Mutex
	reports []*models.SessionReport
}

func (m *memorySink) Deliver(_ context.Context, r *models.SessionReport) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reports = append(m.reports, r)
	return nil
}

func (m *memorySink) Ping(context.Context) error { return nil }
func (m *memorySink) Close() error               { return nil }

func (m *memorySink) all() []*models.SessionReport {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*models.SessionReport, len(m.reports))
	copy(out, m.reports)
	return out
}

// slowDetector widens the window between the termination check and the
// transition so concurrent messages race the same trigger.
type slowDetector struct {
	delay time.Duration
}

func (d slowDetector) Detect(string) (detector.Result, error) {
	time.Sleep(d.delay)
	return detector.Result{}, nil
}

type failingDetector struct{}

func (failingDetector) Detect(string) (detector.Result, error) {
	return detector.Result{}, fmt.Errorf("classifier unavailable")
}

type harness struct {
	engine     *engine.Engine
	store      *session.Store
	sink       *memorySink
	dispatcher *notifier.Dispatcher
}

func newHarness(t *testing.T, det detector.Detector, policy session.Policy) *harness {
	t.Helper()

	store := session.NewStore(policy.TTL, zerolog.Nop())
	sink := &memorySink{}
	dispatcher := notifier.NewDispatcher(notifier.Config{
		Sink:        sink,
		Workers:     1,
		BufferSize:  256,
		MinMessages: 0,
		Logger:      zerolog.Nop(),
	})
	dispatcher.Start()
	t.Cleanup(dispatcher.Stop)

	eng := engine.New(engine.Config{
		Store:      store,
		Detector:   det,
		Extractor:  intel.NewExtractor(),
		Replies:    reply.NewGeneratorWithSource(rand.NewSource(42)),
		Dispatcher: dispatcher,
		Policy:     policy,
		Logger:     zerolog.Nop(),
	})

	return &harness{engine: eng, store: store, sink: sink, dispatcher: dispatcher}
}

func defaultPolicy() session.Policy {
	return session.Policy{
		MaxMessages:           20,
		TTL:                   time.Hour,
		MinEngagementMessages: 3,
		ConfidenceThreshold:   0.6,
		MinIntelItems:         0,
	}
}

func TestProcessMessage_FirstPrizeMessage(t *testing.T) {
	h := newHarness(t, detector.NewKeywordDetector(0.6), defaultPolicy())

	result := h.engine.ProcessMessage("s1", "Hello, you won a prize! Send your UPI ID.")

	assert.Contains(t, result.ScamIntents, models.IntentFakePrize)
	// turnIndex 0 overrides intent-specific staging.
	assert.Contains(t, initialReplies, result.Reply)
	assert.True(t, result.ShouldContinue)
	assert.Equal(t, 1, h.store.Count())
}

func TestProcessMessage_ExtractsIntelligence(t *testing.T) {
	h := newHarness(t, detector.NewKeywordDetector(0.6), defaultPolicy())

	result := h.engine.ProcessMessage("s1", "pay to merchant@ybl now")

	assert.Contains(t, result.Extracted.UPIIDs, "merchant@ybl")
	assert.NotContains(t, result.Extracted.EmailAddresses, "merchant@ybl")

	s, ok := h.store.Get("s1")
	require.True(t, ok)
	assert.Contains(t, s.Intelligence().UPIIDs, "merchant@ybl")
}

func TestProcessMessage_MaxMessagesTerminates(t *testing.T) {
	h := newHarness(t, detector.NewKeywordDetector(0.6), defaultPolicy())

	var last engine.Result
	for i := 0; i < 20; i++ {
		last = h.engine.ProcessMessage("s1", fmt.Sprintf("keep talking %d", i))
	}

	assert.False(t, last.ShouldContinue)
	assert.Contains(t, goodbyeReplies, last.Reply)

	// The session is evicted immediately after the goodbye.
	_, ok := h.store.Get("s1")
	assert.False(t, ok)
	assert.Equal(t, 0, h.store.Count())

	h.dispatcher.Stop()
	reports := h.sink.all()
	require.Len(t, reports, 1)
	assert.Equal(t, "s1", reports[0].SessionID)
	assert.Equal(t, models.ReasonMaxMessages, reports[0].TerminationReason)
	assert.Equal(t, 20, reports[0].MessageCount)
}

func TestProcessMessage_FreshSessionAfterTermination(t *testing.T) {
	policy := defaultPolicy()
	policy.MaxMessages = 2
	h := newHarness(t, detector.NewKeywordDetector(0.6), policy)

	h.engine.ProcessMessage("s1", "one")
	terminal := h.engine.ProcessMessage("s1", "two")
	assert.False(t, terminal.ShouldContinue)

	// The same id starts over with a clean history.
	fresh := h.engine.ProcessMessage("s1", "three")
	assert.True(t, fresh.ShouldContinue)
	s, ok := h.store.Get("s1")
	require.True(t, ok)
	assert.Equal(t, 1, s.MessageCount())
}

func TestProcessMessage_SufficientIntelligenceTerminates(t *testing.T) {
	policy := defaultPolicy()
	policy.MinIntelItems = 2
	h := newHarness(t, detector.NewKeywordDetector(0.6), policy)

	h.engine.ProcessMessage("s1", "you won a lottery prize, claim your reward")
	h.engine.ProcessMessage("s1", "pay the fee to merchant@ybl")
	result := h.engine.ProcessMessage("s1", "or call 9876543210 to claim your prize reward")

	assert.False(t, result.ShouldContinue)
	assert.Contains(t, goodbyeReplies, result.Reply)

	h.dispatcher.Stop()
	reports := h.sink.all()
	require.Len(t, reports, 1)
	assert.Equal(t, models.ReasonSufficientIntel, reports[0].TerminationReason)
}

func TestProcessMessage_ConcurrentMessagesReportOnce(t *testing.T) {
	policy := defaultPolicy()
	policy.MaxMessages = 2
	h := newHarness(t, slowDetector{delay: 2 * time.Millisecond}, policy)

	const sessions = 25
	var wg sync.WaitGroup
	for i := 0; i < sessions; i++ {
		id := fmt.Sprintf("s%d", i)
		for j := 0; j < 2; j++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				h.engine.ProcessMessage(id, "hello")
			}()
		}
	}
	wg.Wait()

	h.dispatcher.Stop()
	reports := h.sink.all()
	require.Len(t, reports, sessions)

	seen := make(map[string]bool, sessions)
	for _, r := range reports {
		assert.False(t, seen[r.SessionID], "session %s reported twice", r.SessionID)
		seen[r.SessionID] = true
		assert.Equal(t, models.ReasonMaxMessages, r.TerminationReason)
	}
}

func TestProcessMessage_DetectorFailureIsNeutral(t *testing.T) {
	h := newHarness(t, failingDetector{}, defaultPolicy())

	result := h.engine.ProcessMessage("s1", "you won a prize")

	assert.False(t, result.ScamDetected)
	assert.Equal(t, []models.ScamIntent{models.IntentNone}, result.ScamIntents)
	assert.Zero(t, result.Confidence)
	assert.NotEmpty(t, result.Reply)
	assert.True(t, result.ShouldContinue)
}

func TestProcessMessage_IntentsAccumulateAcrossMessages(t *testing.T) {
	h := newHarness(t, detector.NewKeywordDetector(0.6), defaultPolicy())

	h.engine.ProcessMessage("s1", "you won a prize")
	h.engine.ProcessMessage("s1", "send your upi id")

	s, ok := h.store.Get("s1")
	require.True(t, ok)
	intents := s.Intents()
	assert.Contains(t, intents, models.IntentFakePrize)
	assert.Contains(t, intents, models.IntentUPIScam)
}
