// ABOUTME: Response DTOs for company search, profiles and parked queries
// ABOUTME: A search response carries either a candidate list or a full profile

package responses

import (
	"time"

	"kvk-insights-api/core/domain"
)

// SearchResponse is {type:"search", results, total, meta} or {type:"profile", profile}
type SearchResponse struct {
	Type    string                 `json:"type" enum:"search,profile" doc:"Which shape this response has"`
	Results *[]domain.SearchResult `json:"results,omitempty" doc:"Candidates in registry order"`
	Total   int                    `json:"total" doc:"Number of candidates before capping"`
	Meta    *SearchMeta            `json:"meta,omitempty"`
	Profile *domain.CompanyProfile `json:"profile,omitempty"`
}

// SearchMeta describes how a candidate list was produced
type SearchMeta struct {
	Query            QueryEcho `json:"query"`
	ProcessingTimeMs int64     `json:"processingTimeMs"`
	Capped           bool      `json:"capped" doc:"More candidates matched than were returned"`
	Cached           bool      `json:"cached"`
}

// QueryEcho is the normalized query as the resolver saw it
type QueryEcho struct {
	Text            string `json:"text,omitempty"`
	Type            string `json:"type"`
	City            string `json:"city,omitempty"`
	PostalCode      string `json:"postalCode,omitempty"`
	IndustryCode    string `json:"industryCode,omitempty"`
	IncludeInactive bool   `json:"includeInactive"`
}

// PendingResponse is returned when a query is parked for payment
type PendingResponse struct {
	Token     string    `json:"token" doc:"Token to replay the query after payment"`
	ExpiresAt time.Time `json:"expiresAt"`
}
