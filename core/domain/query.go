// ABOUTME: Search query domain model for company lookups against the business registry
// ABOUTME: Normalizes and validates the query before any upstream source is called

package domain

import (
	"regexp"
	"strings"

	coreerrors "kvk-insights-api/core/errors"
)

// SearchType selects which field of the query drives the registry lookup
type SearchType string

const (
	SearchByName               SearchType = "name"
	SearchByRegistrationNumber SearchType = "registrationNumber"
	SearchByPostalCode         SearchType = "postalCode"
	SearchByIndustryCode       SearchType = "industryCode"
)

// Section and enrichment keys. These are the names reported in meta.bronnen
// and meta.errors.
const (
	KeyBaseProfile = "basisprofiel"
	KeyDirectors   = "directors"
	KeyRelations   = "relations"
	KeyLegalStatus = "legalStatus"
	KeyFinancial   = "financial"
	KeyWebsite     = "website"
	KeySocials     = "socials"
	KeyTechStack   = "techStack"
	KeyNews        = "news"
	KeyReviews     = "reviews"
	KeyAIAnalysis  = "aiAnalysis"
)

var (
	kvkNumberPattern    = regexp.MustCompile(`^\d{8}$`)
	postalCodePattern   = regexp.MustCompile(`^\d{4}[A-Z]{2}$`)
	industryCodePattern = regexp.MustCompile(`^\d{2,5}$`)
)

// Include selects the registry-backed profile sections
type Include struct {
	Directors   bool `json:"bestuurders"`
	Relations   bool `json:"relaties"`
	LegalStatus bool `json:"juridischeStatus"`
	Financial   bool `json:"financieel"`
}

// Enrichments selects the secondary enrichment sources
type Enrichments struct {
	Website    bool `json:"website"`
	Socials    bool `json:"socials"`
	TechStack  bool `json:"techStack"`
	News       bool `json:"nieuws"`
	Reviews    bool `json:"reviews"`
	AIAnalysis bool `json:"aiAnalyse"`
}

// AllSections requests every registry-backed section
func AllSections() Include {
	return Include{Directors: true, Relations: true, LegalStatus: true, Financial: true}
}

// AllEnrichments requests every enrichment
func AllEnrichments() Enrichments {
	return Enrichments{Website: true, Socials: true, TechStack: true, News: true, Reviews: true, AIAnalysis: true}
}

// Keys returns the requested section keys in a stable order
func (i Include) Keys() []string {
	var keys []string
	if i.Directors {
		keys = append(keys, KeyDirectors)
	}
	if i.Relations {
		keys = append(keys, KeyRelations)
	}
	if i.LegalStatus {
		keys = append(keys, KeyLegalStatus)
	}
	if i.Financial {
		keys = append(keys, KeyFinancial)
	}
	return keys
}

// Keys returns the requested enrichment keys in a stable order
func (e Enrichments) Keys() []string {
	var keys []string
	if e.Website {
		keys = append(keys, KeyWebsite)
	}
	if e.Socials {
		keys = append(keys, KeySocials)
	}
	if e.TechStack {
		keys = append(keys, KeyTechStack)
	}
	if e.News {
		keys = append(keys, KeyNews)
	}
	if e.Reviews {
		keys = append(keys, KeyReviews)
	}
	if e.AIAnalysis {
		keys = append(keys, KeyAIAnalysis)
	}
	return keys
}

// SearchQuery is the Query Resolver input
type SearchQuery struct {
	Text            string      `json:"tekst,omitempty"`
	Type            SearchType  `json:"type"`
	City            string      `json:"plaats,omitempty"`
	PostalCode      string      `json:"postcode,omitempty"`
	IndustryCode    string      `json:"sbiCode,omitempty"`
	IncludeInactive bool        `json:"inclusiefInactief"`
	FullProfile     bool        `json:"volledigProfiel"`
	Include         Include     `json:"include"`
	Enrichments     Enrichments `json:"enrichments"`

	// PaymentToken is attached when a parked query is replayed after payment.
	// It is opaque here; the payment collaborator validates it.
	PaymentToken string `json:"betaalToken,omitempty"`
}

// Normalize trims input and canonicalizes registration numbers, postal codes
// and industry codes. For number-like search types a value given in Text is
// moved into the dedicated field.
func (q *SearchQuery) Normalize() {
	q.Text = strings.TrimSpace(q.Text)
	q.City = strings.TrimSpace(q.City)
	q.PostalCode = NormalizePostalCode(q.PostalCode)
	q.IndustryCode = NormalizeIndustryCode(q.IndustryCode)

	switch q.Type {
	case SearchByRegistrationNumber:
		q.Text = NormalizeKvkNumber(q.Text)
	case SearchByPostalCode:
		if q.PostalCode == "" {
			q.PostalCode = NormalizePostalCode(q.Text)
		}
	case SearchByIndustryCode:
		if q.IndustryCode == "" {
			q.IndustryCode = NormalizeIndustryCode(q.Text)
		}
	}
}

// Validate checks that the field required by the search type is populated
// and well-formed
func (q *SearchQuery) Validate() error {
	switch q.Type {
	case SearchByName:
		if len([]rune(q.Text)) < 2 {
			return &coreerrors.ValidationError{Field: "tekst", Message: "name search needs at least 2 characters"}
		}
		if len(q.Text) > 100 {
			return &coreerrors.ValidationError{Field: "tekst", Message: "name search cannot exceed 100 characters"}
		}
	case SearchByRegistrationNumber:
		if !IsValidKvkNumber(q.Text) {
			return &coreerrors.ValidationError{Field: "tekst", Message: "registration number must be exactly 8 digits"}
		}
	case SearchByPostalCode:
		if !postalCodePattern.MatchString(q.PostalCode) {
			return &coreerrors.ValidationError{Field: "postcode", Message: "postal code must look like 1234AB"}
		}
	case SearchByIndustryCode:
		if !industryCodePattern.MatchString(q.IndustryCode) {
			return &coreerrors.ValidationError{Field: "sbiCode", Message: "industry code must be 2 to 5 digits"}
		}
	case "":
		return &coreerrors.ValidationError{Field: "type", Message: "search type is required"}
	default:
		return &coreerrors.ValidationError{Field: "type", Message: "unknown search type " + string(q.Type)}
	}

	if q.PostalCode != "" && !postalCodePattern.MatchString(q.PostalCode) {
		return &coreerrors.ValidationError{Field: "postcode", Message: "postal code must look like 1234AB"}
	}
	return nil
}

// WantsProfile reports whether the resolver should short-circuit into the
// profile aggregator
func (q *SearchQuery) WantsProfile() bool {
	return q.FullProfile && q.Type == SearchByRegistrationNumber
}

// NormalizeKvkNumber strips the separators people commonly type
func NormalizeKvkNumber(s string) string {
	r := strings.NewReplacer(" ", "", ".", "", "-", "")
	return r.Replace(strings.TrimSpace(s))
}

// IsValidKvkNumber reports whether s is an 8 digit registration number
func IsValidKvkNumber(s string) bool {
	return kvkNumberPattern.MatchString(s)
}

// NormalizePostalCode upper-cases and removes spaces: "1234 ab" -> "1234AB"
func NormalizePostalCode(s string) string {
	return strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), " ", ""))
}

// NormalizeIndustryCode removes dots from SBI codes: "62.01" -> "6201"
func NormalizeIndustryCode(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), ".", "")
}
