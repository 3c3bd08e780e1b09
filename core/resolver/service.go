// ABOUTME: Query resolver turning a validated search query into registry candidates
// ABOUTME: Short-circuits registration-number queries that ask for a full profile into the aggregator

package resolver

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"kvk-insights-api/core/domain"
	coreerrors "kvk-insights-api/core/errors"
	"kvk-insights-api/core/interfaces"
	"kvk-insights-api/pkg/featureflags"
)

const (
	// MaxResults caps the candidate list shown to the user
	MaxResults = 10

	// RegistrySource names the registry in errors and metrics
	RegistrySource = "kvk"

	searchCacheTTL = 15 * time.Minute
)

// Resolution kinds
const (
	KindSearch  = "search"
	KindProfile = "profile"
)

// ProfileAggregator builds the composite profile for one registration number
type ProfileAggregator interface {
	Aggregate(ctx context.Context, kvkNumber string, include domain.Include, enrichments domain.Enrichments) (*domain.CompanyProfile, error)
}

// SearchMeta describes how a candidate list was produced
type SearchMeta struct {
	Query            domain.SearchQuery `json:"query"`
	ProcessingTimeMs int64              `json:"verwerkingstijdMs"`
	// Capped is true when more candidates matched than were returned
	Capped bool `json:"afgekapt"`
	Cached bool `json:"uitCache"`
}

// Resolution is either a candidate list or a full profile
type Resolution struct {
	Kind    string                 `json:"type"`
	Results []domain.SearchResult  `json:"results,omitempty"`
	Total   int                    `json:"total"`
	Meta    *SearchMeta            `json:"meta,omitempty"`
	Profile *domain.CompanyProfile `json:"profile,omitempty"`
}

// Service resolves search queries
type Service struct {
	registry   interfaces.RegistrySource
	aggregator ProfileAggregator
	deps       interfaces.Dependencies
}

// NewService creates a resolver. aggregator may be nil when only candidate
// search is needed.
func NewService(registry interfaces.RegistrySource, aggregator ProfileAggregator, deps interfaces.Dependencies) *Service {
	return &Service{
		registry:   registry,
		aggregator: aggregator,
		deps:       deps,
	}
}

// Resolve validates query and returns candidates or, for the registration
// number fast path, a profile. Zero candidates is a successful result.
func (s *Service) Resolve(ctx context.Context, query domain.SearchQuery) (*Resolution, error) {
	start := time.Now()

	query.Normalize()
	if err := query.Validate(); err != nil {
		return nil, err
	}

	if query.WantsProfile() {
		if s.aggregator == nil {
			return nil, errors.New("profile aggregation not configured")
		}
		profile, err := s.aggregator.Aggregate(ctx, query.Text, query.Include, query.Enrichments)
		if err != nil {
			return nil, err
		}
		return &Resolution{Kind: KindProfile, Total: 1, Profile: profile}, nil
	}

	candidates, cached, err := s.search(ctx, query)
	if err != nil {
		return nil, err
	}

	echoed := query
	echoed.PaymentToken = ""

	total := len(candidates)
	results := candidates
	if total > MaxResults {
		results = candidates[:MaxResults]
	}

	return &Resolution{
		Kind:    KindSearch,
		Results: results,
		Total:   total,
		Meta: &SearchMeta{
			Query:            echoed,
			ProcessingTimeMs: time.Since(start).Milliseconds(),
			Capped:           total > MaxResults,
			Cached:           cached,
		},
	}, nil
}

// search returns the filtered candidate list in registry order
func (s *Service) search(ctx context.Context, query domain.SearchQuery) ([]domain.SearchResult, bool, error) {
	useCache := s.deps.Cache != nil && featureflags.IsEnabled(ctx, featureflags.CacheEnabled)
	key := cacheKey(query)

	if useCache {
		if data, err := s.deps.Cache.Get(ctx, key); err == nil && data != nil {
			var results []domain.SearchResult
			if err := json.Unmarshal(data, &results); err == nil {
				return results, true, nil
			}
		}
	}

	started := time.Now()
	raw, err := s.registry.Search(ctx, query)
	s.recordSource(time.Since(started), err)
	if err != nil {
		s.logWarn("Registry search failed", map[string]interface{}{
			"type":  string(query.Type),
			"error": err.Error(),
		})
		return nil, false, coreerrors.NewSourceUnavailable(RegistrySource, err)
	}

	results := make([]domain.SearchResult, 0, len(raw))
	for _, r := range raw {
		if !r.Active && !query.IncludeInactive {
			continue
		}
		results = append(results, r)
	}

	if useCache {
		if data, err := json.Marshal(results); err == nil {
			_ = s.deps.Cache.Set(ctx, key, data, searchCacheTTL)
		}
	}

	return results, false, nil
}

func (s *Service) recordSource(d time.Duration, err error) {
	if s.deps.Metrics != nil {
		s.deps.Metrics.RecordSource(RegistrySource+".search", d, err)
	}
}

func (s *Service) logWarn(msg string, fields map[string]interface{}) {
	if s.deps.Logger != nil {
		s.deps.Logger.Warn(msg, fields)
	}
}

// cacheKey hashes the fields that affect the registry call
func cacheKey(q domain.SearchQuery) string {
	keyed := struct {
		Text            string
		Type            domain.SearchType
		City            string
		PostalCode      string
		IndustryCode    string
		IncludeInactive bool
	}{q.Text, q.Type, q.City, q.PostalCode, q.IndustryCode, q.IncludeInactive}

	data, _ := json.Marshal(keyed)
	sum := sha1.Sum(data)
	return "search:" + hex.EncodeToString(sum[:])
}
