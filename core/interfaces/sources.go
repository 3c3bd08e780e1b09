// ABOUTME: Upstream source interfaces used by the resolver and the profile aggregator
// ABOUTME: Each source is independent so one can fail without affecting the others

package interfaces

import (
	"context"

	"kvk-insights-api/core/domain"
)

// RegistrySource is the business registry: the resolver's primary source and
// the aggregator's identity source
type RegistrySource interface {
	// Search returns candidates in the registry's own relevance order
	Search(ctx context.Context, query domain.SearchQuery) ([]domain.SearchResult, error)

	// BaseProfile returns identity, address and websites.
	// Returns a NotFoundError for unknown registration numbers.
	BaseProfile(ctx context.Context, kvkNumber string) (*domain.RegistryRecord, error)

	// Officers returns the current and past directors
	Officers(ctx context.Context, kvkNumber string) ([]domain.Director, error)

	// Relations returns the one-hop ownership graph
	Relations(ctx context.Context, kvkNumber string) (*domain.Relations, error)
}

// LegalStatusSource queries the insolvency and announcement registers
type LegalStatusSource interface {
	LegalStatus(ctx context.Context, kvkNumber string) (*domain.LegalStatus, error)
}

// FinancialSource queries the financial-risk provider
type FinancialSource interface {
	Indicators(ctx context.Context, kvkNumber string) (*domain.FinancialIndicators, error)
}

// ReviewSource collects ratings from review platforms
type ReviewSource interface {
	Reviews(ctx context.Context, companyName, city string) (*domain.Reviews, error)
}

// NewsSource searches news articles mentioning a company
type NewsSource interface {
	News(ctx context.Context, companyName string) ([]domain.NewsItem, error)
}

// NarrativeInput is what the narrative generator gets to work with
type NarrativeInput struct {
	Profile   *domain.CompanyProfile
	Scores    domain.Scores
	AboutText string
}

// Narrative is the generated free-text part of the analysis
type Narrative struct {
	Summary         string   `json:"samenvatting"`
	Strengths       []string `json:"sterktes"`
	Concerns        []string `json:"aandachtspunten"`
	Recommendations []string `json:"aanbevelingen"`
}

// NarrativeGenerator writes the analysis narrative, typically via an LLM
type NarrativeGenerator interface {
	Generate(ctx context.Context, input NarrativeInput) (*Narrative, error)
}

// ChatMessage is one turn in a chat conversation
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatCompleter sends a conversation to the hosted chat model
type ChatCompleter interface {
	Complete(ctx context.Context, messages []ChatMessage) (string, error)
}
