// ABOUTME: Mappers from resolver and unlock results to API DTOs
// ABOUTME: Keeps the HTTP shape independent of the core result types

package mappers

import (
	"kvk-insights-api/api/dto/responses"
	"kvk-insights-api/core/domain"
	"kvk-insights-api/core/resolver"
)

// ToSearchResponse converts a resolution to the search response shape
func ToSearchResponse(res *resolver.Resolution) *responses.SearchResponse {
	if res == nil {
		return nil
	}

	if res.Kind == resolver.KindProfile {
		return &responses.SearchResponse{
			Type:    resolver.KindProfile,
			Total:   res.Total,
			Profile: res.Profile,
		}
	}

	results := res.Results
	if results == nil {
		results = []domain.SearchResult{}
	}
	out := &responses.SearchResponse{
		Type:    resolver.KindSearch,
		Results: &results,
		Total:   res.Total,
	}
	if res.Meta != nil {
		q := res.Meta.Query
		out.Meta = &responses.SearchMeta{
			Query: responses.QueryEcho{
				Text:            q.Text,
				Type:            string(q.Type),
				City:            q.City,
				PostalCode:      q.PostalCode,
				IndustryCode:    q.IndustryCode,
				IncludeInactive: q.IncludeInactive,
			},
			ProcessingTimeMs: res.Meta.ProcessingTimeMs,
			Capped:           res.Meta.Capped,
			Cached:           res.Meta.Cached,
		}
	}
	return out
}

// ToPendingResponse converts a parked query to its token response
func ToPendingResponse(p *domain.PendingQuery) *responses.PendingResponse {
	if p == nil {
		return nil
	}
	return &responses.PendingResponse{Token: p.Token, ExpiresAt: p.ExpiresAt}
}
