// Package reply generates human-like victim replies to keep scammers engaged.
package reply

import (
	"math/rand"
	"sync"
	"time"

	"github.com/scamhive/honeypot-service/internal/domain/models"
)

var initialResponses = []string{
	"Hello! Thanks for reaching out. What is this about?",
	"Hi there! I got your message. Can you tell me more?",
	"Hey! I'm interested. Please explain more.",
	"Hello! This sounds interesting. What do I need to do?",
}

var curiousResponses = []string{
	"That sounds interesting. Can you provide more details?",
	"I'm not sure I understand. Can you explain further?",
	"This is new to me. How does it work exactly?",
	"Could you tell me more about this?",
}

var cautiousResponses = []string{
	"I want to be sure about this. What are the next steps?",
	"This seems unusual. Can you verify your identity?",
	"I need to think about this. Can you send me more information?",
	"I'm a bit confused. Can you clarify what you need from me?",
}

var financialResponses = []string{
	"What payment method do you accept?",
	"How much do I need to pay?",
	"Can you send me your payment details?",
	"Is there a processing fee involved?",
	"What's your UPI ID or bank account number?",
}

var prizeResponses = []string{
	"Really? I won something? That's amazing!",
	"What prize did I win? How do I claim it?",
	"This is exciting! What do I need to do to get my prize?",
	"I didn't enter any contest. Are you sure it's me?",
}

var jobResponses = []string{
	"This job sounds perfect! What are the details?",
	"I'm looking for work. What's the salary?",
	"Is this full-time or part-time? What are the requirements?",
	"When can I start? Do I need to pay anything upfront?",
}

var stallingResponses = []string{
	"Let me check my account and get back to you.",
	"I need to discuss this with my family first.",
	"Can you give me some time to think about it?",
	"I'm at work right now. Can we continue this later?",
}

var engagementResponses = []string{
	"Okay, I'm ready. What should I do next?",
	"I understand. Please guide me through the process.",
	"I'm interested in proceeding. What's the next step?",
	"Sounds good. How do we move forward?",
}

var windDownResponses = []string{
	"I think I need more time to consider this.",
	"Let me verify this information first.",
	"I'll get back to you after checking.",
	"This is taking longer than I expected. Can we pause?",
}

var goodbyeResponses = []string{
	"I need to go now. Thanks for the information.",
	"I'll think about it and let you know.",
	"Sorry, I have to leave. Talk later.",
	"I need to check this with someone. Bye for now.",
}

// financialIntents are the intents that justify probing for payment details.
var financialIntents = []models.ScamIntent{
	models.IntentFinancialFraud,
	models.IntentUPIScam,
	models.IntentFakePrize,
}

// Generator selects staged reply templates. Selection within a category is
// uniform-random; the random source is injectable so tests can assert
// category membership deterministically.
type Generator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewGenerator creates a Generator with a time-seeded random source.
func NewGenerator() *Generator {
	return NewGeneratorWithSource(rand.NewSource(time.Now().UnixNano()))
}

// NewGeneratorWithSource creates a Generator with the given random source.
func NewGeneratorWithSource(src rand.Source) *Generator {
	return &Generator{rng: rand.New(src)}
}

// GenerateReply selects a reply for the current conversation stage.
// turnIndex is the zero-based count of scammer messages before this one.
func (g *Generator) GenerateReply(message string, intents models.IntentSet, turnIndex int) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	// First message: show initial interest regardless of intent.
	if turnIndex == 0 {
		return g.pick(initialResponses)
	}

	// Early conversation: show curiosity, intent-specific where possible.
	if turnIndex <= 3 {
		switch {
		case intents.Contains(models.IntentFakePrize):
			return g.pick(prizeResponses)
		case intents.Contains(models.IntentJobScam):
			return g.pick(jobResponses)
		default:
			return g.pick(curiousResponses)
		}
	}

	// Mid conversation: probe for payment details.
	if turnIndex <= 8 {
		if intents.ContainsAny(financialIntents...) && g.rng.Float64() < 0.6 {
			return g.pick(financialResponses)
		}
		if g.rng.Float64() < 0.4 {
			return g.pick(cautiousResponses)
		}
		return g.pick(engagementResponses)
	}

	// Late conversation: stall while still probing.
	if turnIndex <= 15 {
		if g.rng.Float64() < 0.5 {
			return g.pick(stallingResponses)
		}
		return g.pick(financialResponses)
	}

	// Very late: prepare to wind down.
	return g.pick(windDownResponses)
}

// GenerateGoodbye selects a natural session-ending reply.
func (g *Generator) GenerateGoodbye() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.pick(goodbyeResponses)
}

func (g *Generator) pick(templates []string) string {
	return templates[g.rng.Intn(len(templates))]
}
