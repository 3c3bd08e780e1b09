// ABOUTME: Request DTOs for company search and the pay-then-replay flow
// ABOUTME: Section and enrichment switches default to on when omitted

package requests

import "kvk-insights-api/core/domain"

// SearchRequest represents the request body for a company search
type SearchRequest struct {
	// Text is the company name or registration number
	Text string `json:"text,omitempty" maxLength:"100" doc:"Company name or 8 digit KVK number"`

	// Type selects which field drives the lookup
	Type string `json:"type" enum:"name,registrationNumber,postalCode,industryCode" doc:"Search type"`

	City         string `json:"city,omitempty" maxLength:"80" doc:"Optional place of establishment"`
	PostalCode   string `json:"postalCode,omitempty" maxLength:"7" doc:"Dutch postal code, e.g. 1012LG"`
	IndustryCode string `json:"industryCode,omitempty" maxLength:"6" doc:"SBI activity code"`

	IncludeInactive bool `json:"includeInactive,omitempty" doc:"Also return dissolved companies"`

	// FullProfile requests the profile directly for registration number searches
	FullProfile bool `json:"fullProfile,omitempty" doc:"Return the full profile for a registrationNumber search"`

	Include     *IncludeOptions    `json:"include,omitempty" doc:"Registry sections of the full profile"`
	Enrichments *EnrichmentOptions `json:"enrichments,omitempty" doc:"Enrichment sources of the full profile"`
}

// IncludeOptions selects the registry-backed profile sections
type IncludeOptions struct {
	Directors   *bool `json:"directors,omitempty" default:"true" doc:"Directors and officers"`
	Relations   *bool `json:"relations,omitempty" default:"true" doc:"Parent, subsidiaries and related entities"`
	LegalStatus *bool `json:"legalStatus,omitempty" default:"true" doc:"Insolvency and dissolution records"`
	Financial   *bool `json:"financial,omitempty" default:"true" doc:"Credit score and risk indicators"`
}

// EnrichmentOptions selects the secondary enrichment sources
type EnrichmentOptions struct {
	Website    *bool `json:"website,omitempty" default:"true" doc:"Website contact details and brand colour"`
	Socials    *bool `json:"socials,omitempty" default:"true" doc:"Social media profiles"`
	TechStack  *bool `json:"techStack,omitempty" default:"true" doc:"Detected website technologies"`
	News       *bool `json:"news,omitempty" default:"true" doc:"Recent news mentions"`
	Reviews    *bool `json:"reviews,omitempty" default:"true" doc:"Review platform ratings"`
	AIAnalysis *bool `json:"aiAnalysis,omitempty" default:"true" doc:"Narrative analysis with scores"`
}

// ApplyDefaults turns on every section and enrichment not explicitly set
func (r *SearchRequest) ApplyDefaults() {
	if r.Include == nil {
		r.Include = &IncludeOptions{}
	}
	for _, p := range []**bool{&r.Include.Directors, &r.Include.Relations, &r.Include.LegalStatus, &r.Include.Financial} {
		setDefault(p)
	}

	if r.Enrichments == nil {
		r.Enrichments = &EnrichmentOptions{}
	}
	e := r.Enrichments
	for _, p := range []**bool{&e.Website, &e.Socials, &e.TechStack, &e.News, &e.Reviews, &e.AIAnalysis} {
		setDefault(p)
	}
}

// ToQuery converts the request to the resolver's query
func (r *SearchRequest) ToQuery() domain.SearchQuery {
	r.ApplyDefaults()
	return domain.SearchQuery{
		Text:            r.Text,
		Type:            domain.SearchType(r.Type),
		City:            r.City,
		PostalCode:      r.PostalCode,
		IndustryCode:    r.IndustryCode,
		IncludeInactive: r.IncludeInactive,
		FullProfile:     r.FullProfile,
		Include: domain.Include{
			Directors:   *r.Include.Directors,
			Relations:   *r.Include.Relations,
			LegalStatus: *r.Include.LegalStatus,
			Financial:   *r.Include.Financial,
		},
		Enrichments: domain.Enrichments{
			Website:    *r.Enrichments.Website,
			Socials:    *r.Enrichments.Socials,
			TechStack:  *r.Enrichments.TechStack,
			News:       *r.Enrichments.News,
			Reviews:    *r.Enrichments.Reviews,
			AIAnalysis: *r.Enrichments.AIAnalysis,
		},
	}
}

func setDefault(p **bool) {
	if *p == nil {
		enabled := true
		*p = &enabled
	}
}
