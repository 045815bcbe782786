// Package intel provides intelligence extraction from scammer messages.
package intel

import (
	"regexp"
	"sort"
	"strings"

	"github.com/scamhive/honeypot-service/internal/domain/models"
)

var (
	upiPattern   = regexp.MustCompile(`(?i)\b([a-zA-Z0-9._-]+@[a-zA-Z]+)\b`)
	phonePattern = regexp.MustCompile(`\b(?:\+91|91)?[-.\s]?([6-9]\d{9})\b`)
	urlPattern   = regexp.MustCompile(`(?i)https?://(?:www\.)?[-a-zA-Z0-9@:%._+~#=]{1,256}\.[a-zA-Z0-9()]{1,6}\b(?:[-a-zA-Z0-9()@:%_+.~#?&/=]*)`)
	bankPattern  = regexp.MustCompile(`(?i)\b(?:account|a/c|ac)(?:\s+no\.?|\s+number)?\s*:?\s*(\d{9,18})\b`)
	emailPattern = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
)

// upiHandles are well-known payment-handle fragments. An email-shaped match
// whose domain contains one of these is treated as a payment identifier, not
// an email address. Substring matching is deliberately loose: the occasional
// false positive costs less than double-classifying the same identifier.
var upiHandles = []string{"paytm", "oksbi", "ybl", "apl", "axl", "ibl", "icici"}

// Extractor extracts structured scam intelligence from raw message text.
// It is stateless and safe for concurrent use.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract applies all pattern families to the text and returns the
// deduplicated findings. Empty text yields an all-empty report.
func (e *Extractor) Extract(text string) models.IntelligenceReport {
	report := models.IntelligenceReport{
		UPIIDs:       dedup(captureGroups(upiPattern, text)),
		PhoneNumbers: dedup(captureGroups(phonePattern, text)),
		URLs:         dedup(urlPattern.FindAllString(text, -1)),
		BankAccounts: dedup(captureGroups(bankPattern, text)),
	}

	emails := make([]string, 0)
	for _, match := range emailPattern.FindAllString(text, -1) {
		if !isUPIID(match) {
			emails = append(emails, match)
		}
	}
	report.EmailAddresses = dedup(emails)

	return report
}

// MergeReports merges multiple reports by field-wise set union. Merging is
// associative and commutative; an empty report is the identity element.
func (e *Extractor) MergeReports(reports []models.IntelligenceReport) models.IntelligenceReport {
	return Merge(reports...)
}

// Merge is the package-level merge used by callers that do not hold an
// Extractor.
func Merge(reports ...models.IntelligenceReport) models.IntelligenceReport {
	var merged models.IntelligenceReport
	for _, r := range reports {
		merged.UPIIDs = append(merged.UPIIDs, r.UPIIDs...)
		merged.PhoneNumbers = append(merged.PhoneNumbers, r.PhoneNumbers...)
		merged.URLs = append(merged.URLs, r.URLs...)
		merged.BankAccounts = append(merged.BankAccounts, r.BankAccounts...)
		merged.EmailAddresses = append(merged.EmailAddresses, r.EmailAddresses...)
	}

	merged.UPIIDs = dedup(merged.UPIIDs)
	merged.PhoneNumbers = dedup(merged.PhoneNumbers)
	merged.URLs = dedup(merged.URLs)
	merged.BankAccounts = dedup(merged.BankAccounts)
	merged.EmailAddresses = dedup(merged.EmailAddresses)

	return merged
}

// isUPIID checks whether an email-like string is a payment identifier.
func isUPIID(email string) bool {
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return false
	}
	domain := strings.ToLower(email[at+1:])
	for _, handle := range upiHandles {
		if strings.Contains(domain, handle) {
			return true
		}
	}
	return false
}

// captureGroups returns the first capture group of every match.
func captureGroups(re *regexp.Regexp, text string) []string {
	matches := re.FindAllStringSubmatch(text, -1)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m[1])
	}
	return out
}

// dedup removes duplicates and returns a sorted slice. Sorting is not part
// of the contract but keeps log output stable.
func dedup(values []string) []string {
	// Non-nil even when empty so the fields marshal as [] rather than null.
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
