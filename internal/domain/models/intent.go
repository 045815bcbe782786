// Package models contains domain models for the honeypot service.
package models

// ScamIntent represents a classifier-assigned scam category tag.
type ScamIntent string

const (
	// IntentNone indicates no scam intent was detected.
	IntentNone ScamIntent = "NONE"
	// IntentFinancialFraud indicates a generic financial fraud attempt.
	IntentFinancialFraud ScamIntent = "FINANCIAL_FRAUD"
	// IntentUPIScam indicates a UPI payment scam.
	IntentUPIScam ScamIntent = "UPI_SCAM"
	// IntentFakePrize indicates a fake prize or lottery scam.
	IntentFakePrize ScamIntent = "FAKE_PRIZE"
	// IntentJobScam indicates a fake job offer scam.
	IntentJobScam ScamIntent = "JOB_SCAM"
	// IntentPhishing indicates a credential or OTP phishing attempt.
	IntentPhishing ScamIntent = "PHISHING"
)

// IntentSet is an accumulating set of scam intents. The zero value is usable.
type IntentSet map[ScamIntent]struct{}

// Add inserts an intent into the set.
func (s IntentSet) Add(intent ScamIntent) {
	s[intent] = struct{}{}
}

// Contains reports whether the set contains the given intent.
func (s IntentSet) Contains(intent ScamIntent) bool {
	_, ok := s[intent]
	return ok
}

// ContainsAny reports whether the set contains any of the given intents.
func (s IntentSet) ContainsAny(intents ...ScamIntent) bool {
	for _, intent := range intents {
		if s.Contains(intent) {
			return true
		}
	}
	return false
}

// List returns the intents as a slice. When the set is empty a single
// IntentNone marker is returned so callers always see a non-empty list.
func (s IntentSet) List() []ScamIntent {
	if len(s) == 0 {
		return []ScamIntent{IntentNone}
	}
	out := make([]ScamIntent, 0, len(s))
	for intent := range s {
		out = append(out, intent)
	}
	return out
}
