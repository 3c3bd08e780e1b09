// ABOUTME: Company search handlers for the Huma API
// ABOUTME: Provides search, query parking and paid replay endpoints

package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"kvk-insights-api/api/dto/mappers"
	"kvk-insights-api/api/dto/requests"
	"kvk-insights-api/api/dto/responses"
	"kvk-insights-api/core/domain"
	"kvk-insights-api/core/errors"
	"kvk-insights-api/core/resolver"
)

// Resolver resolves search queries into candidates or a profile
type Resolver interface {
	Resolve(ctx context.Context, query domain.SearchQuery) (*resolver.Resolution, error)
}

// UnlockService parks queries for payment and replays them once
type UnlockService interface {
	Park(ctx context.Context, query domain.SearchQuery) (*domain.PendingQuery, error)
	Consume(ctx context.Context, token, paymentSession string) (*domain.SearchQuery, error)
	Restore(ctx context.Context, token string, query domain.SearchQuery) error
}

// KvkHandler handles company search requests
type KvkHandler struct {
	resolver Resolver
	unlock   UnlockService
}

// NewKvkHandler creates a new company search handler
func NewKvkHandler(resolver Resolver, unlock UnlockService) *KvkHandler {
	return &KvkHandler{
		resolver: resolver,
		unlock:   unlock,
	}
}

// RegisterRoutes registers all company search routes
func (h *KvkHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "searchCompanies",
		Method:      http.MethodPost,
		Path:        "/kvk/search",
		Summary:     "Search the business registry",
		Description: "Returns candidate companies, or the full profile for a registrationNumber search with fullProfile set",
		Tags:        []string{"KVK"},
	}, h.Search)

	huma.Register(api, huma.Operation{
		OperationID:   "parkQuery",
		Method:        http.MethodPost,
		Path:          "/kvk/pending",
		Summary:       "Park a query during payment",
		Description:   "Stores the query for 30 minutes and returns a token to replay it once after payment",
		Tags:          []string{"KVK"},
		DefaultStatus: http.StatusCreated,
	}, h.Park)

	huma.Register(api, huma.Operation{
		OperationID: "replayQuery",
		Method:      http.MethodPost,
		Path:        "/kvk/pending/{token}/replay",
		Summary:     "Replay a parked query",
		Description: "Consumes the parked query and resolves it with the payment session attached",
		Tags:        []string{"KVK"},
	}, h.Replay)
}

// SearchInput defines the input for the Search operation
type SearchInput struct {
	Body requests.SearchRequest
}

// SearchOutput defines the output for the Search and Replay operations
type SearchOutput struct {
	Body *responses.SearchResponse
}

// Search handles the POST /kvk/search endpoint
func (h *KvkHandler) Search(ctx context.Context, input *SearchInput) (*SearchOutput, error) {
	res, err := h.resolver.Resolve(ctx, input.Body.ToQuery())
	if err != nil {
		return nil, toHumaError(err)
	}
	return &SearchOutput{Body: mappers.ToSearchResponse(res)}, nil
}

// ParkOutput defines the output for the Park operation
type ParkOutput struct {
	Body *responses.PendingResponse
}

// Park handles the POST /kvk/pending endpoint
func (h *KvkHandler) Park(ctx context.Context, input *SearchInput) (*ParkOutput, error) {
	if h.unlock == nil {
		return nil, huma.Error503ServiceUnavailable("Query parking is not configured")
	}
	pending, err := h.unlock.Park(ctx, input.Body.ToQuery())
	if err != nil {
		return nil, toHumaError(err)
	}
	return &ParkOutput{Body: mappers.ToPendingResponse(pending)}, nil
}

// ReplayInput defines the input for the Replay operation
type ReplayInput struct {
	Token          string `path:"token" doc:"Token returned when the query was parked"`
	PaymentSession string `header:"X-Payment-Session" doc:"Payment session from the payment processor"`
}

// Replay handles the POST /kvk/pending/{token}/replay endpoint
func (h *KvkHandler) Replay(ctx context.Context, input *ReplayInput) (*SearchOutput, error) {
	if h.unlock == nil {
		return nil, huma.Error503ServiceUnavailable("Query parking is not configured")
	}
	query, err := h.unlock.Consume(ctx, input.Token, input.PaymentSession)
	if err != nil {
		return nil, toHumaError(err)
	}

	res, err := h.resolver.Resolve(ctx, *query)
	if err != nil {
		// Registry outage: keep the token replayable
		if errors.IsSourceUnavailable(err) {
			_ = h.unlock.Restore(context.WithoutCancel(ctx), input.Token, *query)
		}
		return nil, toHumaError(err)
	}
	return &SearchOutput{Body: mappers.ToSearchResponse(res)}, nil
}
