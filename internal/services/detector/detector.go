// Package detector provides scam classification for inbound messages.
package detector

import (
	"strings"

	"github.com/scamhive/honeypot-service/internal/domain/models"
)

// Result is the outcome of classifying a single message.
type Result struct {
	IsScam     bool
	Intents    []models.ScamIntent
	Confidence float64
}

// Detector classifies message text. The engine treats implementations as
// external collaborators: a failing Detect is folded into a neutral result,
// never an aborted request.
type Detector interface {
	Detect(text string) (Result, error)
}

// intentKeywords maps each intent to the lowercase phrases that signal it.
var intentKeywords = map[models.ScamIntent][]string{
	models.IntentFakePrize: {
		"prize", "won", "winner", "lottery", "lucky draw", "congratulations", "reward", "claim",
	},
	models.IntentUPIScam: {
		"upi", "paytm", "phonepe", "gpay", "google pay", "bhim", "collect request", "qr code",
	},
	models.IntentFinancialFraud: {
		"bank", "account", "transfer", "payment", "processing fee", "refund",
		"kyc", "deposit", "transaction", "wallet",
	},
	models.IntentJobScam: {
		"job", "salary", "work from home", "hiring", "part-time", "part time",
		"earn money", "vacancy", "recruitment",
	},
	models.IntentPhishing: {
		"password", "otp", "verify your", "login", "click here", "suspended",
		"blocked", "update your", "expire",
	},
}

// keywordDetector is the default lexicon-based classifier.
type keywordDetector struct {
	threshold float64
}

// NewKeywordDetector creates the default keyword-based Detector. The
// threshold determines when accumulated signal counts as a scam verdict.
func NewKeywordDetector(threshold float64) Detector {
	return &keywordDetector{threshold: threshold}
}

// Detect scans the text for intent keywords. Confidence grows with the
// number of distinct keyword hits and is clamped to [0, 1].
func (d *keywordDetector) Detect(text string) (Result, error) {
	lowered := strings.ToLower(text)

	var intents []models.ScamIntent
	hits := 0
	for _, intent := range []models.ScamIntent{
		models.IntentFakePrize,
		models.IntentUPIScam,
		models.IntentFinancialFraud,
		models.IntentJobScam,
		models.IntentPhishing,
	} {
		count := 0
		for _, kw := range intentKeywords[intent] {
			if strings.Contains(lowered, kw) {
				count++
			}
		}
		if count > 0 {
			intents = append(intents, intent)
			hits += count
		}
	}

	if len(intents) == 0 {
		return Result{IsScam: false, Intents: nil, Confidence: 0.0}, nil
	}

	confidence := 0.3 + 0.15*float64(hits)
	if confidence > 0.95 {
		confidence = 0.95
	}

	return Result{
		IsScam:     confidence >= d.threshold,
		Intents:    intents,
		Confidence: confidence,
	}, nil
}
