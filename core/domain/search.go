// ABOUTME: Search domain models for company lookups in the business registry
// ABOUTME: Defines the candidate list entries returned by the query resolver

package domain

// SearchResult is one candidate company returned by a registry search
type SearchResult struct {
	// KvkNumber is the 8 digit chamber of commerce registration number
	KvkNumber string `json:"kvkNummer"`

	// Name is the trade name as registered
	Name string `json:"naam"`

	// Address is a single-line visiting address
	Address string `json:"adres,omitempty"`

	// City is the place of establishment
	City string `json:"plaats,omitempty"`

	// LegalForm is the registered legal form (e.g. "Besloten Vennootschap")
	LegalForm string `json:"rechtsvorm,omitempty"`

	// Active is false for dissolved or deregistered companies
	Active bool `json:"actief"`

	// SbiCodes lists the registered activity codes
	SbiCodes []string `json:"sbiCodes,omitempty"`
}
