package models

// IntelligenceReport holds structured data points extracted from free text.
// Each field is a deduplicated set of strings with no order guarantee.
type IntelligenceReport struct {
	UPIIDs         []string `json:"upiIds"`
	PhoneNumbers   []string `json:"phoneNumbers"`
	URLs           []string `json:"urls"`
	BankAccounts   []string `json:"bankAccounts"`
	EmailAddresses []string `json:"emailAddresses"`
}

// ItemCount returns the total number of distinct intelligence items.
func (r IntelligenceReport) ItemCount() int {
	return len(r.UPIIDs) + len(r.PhoneNumbers) + len(r.URLs) +
		len(r.BankAccounts) + len(r.EmailAddresses)
}

// Empty reports whether the report contains no items.
func (r IntelligenceReport) Empty() bool {
	return r.ItemCount() == 0
}
