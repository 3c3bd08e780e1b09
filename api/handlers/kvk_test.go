package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kvk-insights-api/core/domain"
	"kvk-insights-api/core/errors"
	"kvk-insights-api/core/resolver"
)

func TestKvkHandler_RegisterRoutes(t *testing.T) {
	_, api := humatest.New(t)
	NewKvkHandler(&mockResolver{}, &mockUnlock{}).RegisterRoutes(api)

	openapi := api.OpenAPI()
	for _, path := range []string{"/kvk/search", "/kvk/pending", "/kvk/pending/{token}/replay"} {
		item, ok := openapi.Paths[path]
		if assert.True(t, ok, "missing path %s", path) {
			assert.NotNil(t, item.Post, "missing POST on %s", path)
		}
	}
}

func TestKvkHandler_SearchReturnsCandidates(t *testing.T) {
	var received domain.SearchQuery
	res := &mockResolver{
		resolveFunc: func(ctx context.Context, query domain.SearchQuery) (*resolver.Resolution, error) {
			received = query
			return &resolver.Resolution{
				Kind: resolver.KindSearch,
				Results: []domain.SearchResult{
					{KvkNumber: "12345678", Name: "Acme B.V.", City: "Utrecht"},
				},
				Total: 1,
				Meta:  &resolver.SearchMeta{Query: query, ProcessingTimeMs: 12},
			}, nil
		},
	}

	_, api := humatest.New(t)
	NewKvkHandler(res, &mockUnlock{}).RegisterRoutes(api)

	resp := api.Post("/kvk/search", map[string]any{
		"text": "acme",
		"type": "name",
		"city": "Utrecht",
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	assert.Equal(t, domain.SearchByName, received.Type)
	assert.Equal(t, "acme", received.Text)
	assert.Equal(t, "Utrecht", received.City)

	var body map[string]any
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "search", body["type"])
	assert.EqualValues(t, 1, body["total"])
	results, ok := body["results"].([]any)
	require.True(t, ok)
	assert.Len(t, results, 1)
}

func TestKvkHandler_SearchDefaultsAllSections(t *testing.T) {
	var received domain.SearchQuery
	res := &mockResolver{
		resolveFunc: func(ctx context.Context, query domain.SearchQuery) (*resolver.Resolution, error) {
			received = query
			return &resolver.Resolution{
				Kind:    resolver.KindProfile,
				Profile: &domain.CompanyProfile{KvkNumber: query.Text},
				Total:   1,
			}, nil
		},
	}

	_, api := humatest.New(t)
	NewKvkHandler(res, &mockUnlock{}).RegisterRoutes(api)

	resp := api.Post("/kvk/search", map[string]any{
		"text":        "12345678",
		"type":        "registrationNumber",
		"fullProfile": true,
		"enrichments": map[string]any{"news": false},
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	assert.True(t, received.FullProfile)
	assert.True(t, received.Include.Directors)
	assert.True(t, received.Include.Financial)
	assert.True(t, received.Enrichments.Website)
	assert.False(t, received.Enrichments.News)

	var body map[string]any
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "profile", body["type"])
	assert.NotNil(t, body["profile"])
}

func TestKvkHandler_SearchErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"invalid number", &errors.ValidationError{Field: "text", Message: "registration number must be exactly 8 digits"}, http.StatusBadRequest},
		{"unknown company", &errors.NotFoundError{Resource: "company", ID: "87654321"}, http.StatusNotFound},
		{"registry down", errors.NewSourceUnavailable("kvk", context.DeadlineExceeded), http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := &mockResolver{
				resolveFunc: func(ctx context.Context, query domain.SearchQuery) (*resolver.Resolution, error) {
					return nil, tt.err
				},
			}
			_, api := humatest.New(t)
			NewKvkHandler(res, &mockUnlock{}).RegisterRoutes(api)

			resp := api.Post("/kvk/search", map[string]any{"text": "87654321", "type": "registrationNumber"})
			assert.Equal(t, tt.status, resp.Code)
		})
	}
}

func TestKvkHandler_SearchRejectsUnknownType(t *testing.T) {
	_, api := humatest.New(t)
	NewKvkHandler(&mockResolver{}, &mockUnlock{}).RegisterRoutes(api)

	resp := api.Post("/kvk/search", map[string]any{"text": "acme", "type": "phone"})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
}

func TestKvkHandler_Park(t *testing.T) {
	expires := time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC)
	var parked domain.SearchQuery
	unlock := &mockUnlock{
		parkFunc: func(ctx context.Context, query domain.SearchQuery) (*domain.PendingQuery, error) {
			parked = query
			return &domain.PendingQuery{
				Token:     "0b4e5c1a-6f1d-4d1c-9a55-1e0f0b8f9a10",
				Query:     query,
				ExpiresAt: expires,
			}, nil
		},
	}

	_, api := humatest.New(t)
	NewKvkHandler(&mockResolver{}, unlock).RegisterRoutes(api)

	resp := api.Post("/kvk/pending", map[string]any{"text": "12345678", "type": "registrationNumber", "fullProfile": true})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	assert.Equal(t, "12345678", parked.Text)

	var body map[string]any
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "0b4e5c1a-6f1d-4d1c-9a55-1e0f0b8f9a10", body["token"])
}

func TestKvkHandler_ReplayResolvesStoredQuery(t *testing.T) {
	stored := domain.SearchQuery{Text: "12345678", Type: domain.SearchByRegistrationNumber, FullProfile: true}

	var gotToken, gotSession string
	unlock := &mockUnlock{
		consumeFunc: func(ctx context.Context, token, paymentSession string) (*domain.SearchQuery, error) {
			gotToken, gotSession = token, paymentSession
			q := stored
			q.PaymentToken = paymentSession
			return &q, nil
		},
	}

	var resolved domain.SearchQuery
	res := &mockResolver{
		resolveFunc: func(ctx context.Context, query domain.SearchQuery) (*resolver.Resolution, error) {
			resolved = query
			return &resolver.Resolution{Kind: resolver.KindProfile, Profile: &domain.CompanyProfile{KvkNumber: query.Text}, Total: 1}, nil
		},
	}

	_, api := humatest.New(t)
	NewKvkHandler(res, unlock).RegisterRoutes(api)

	resp := api.Post("/kvk/pending/abc-token/replay", "X-Payment-Session: cs_test_123")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	assert.Equal(t, "abc-token", gotToken)
	assert.Equal(t, "cs_test_123", gotSession)
	assert.Equal(t, "cs_test_123", resolved.PaymentToken)
	assert.Equal(t, "12345678", resolved.Text)
}

func TestKvkHandler_ReplayExpiredToken(t *testing.T) {
	unlock := &mockUnlock{
		consumeFunc: func(ctx context.Context, token, paymentSession string) (*domain.SearchQuery, error) {
			return nil, &errors.NotFoundError{Resource: "pending query", ID: token}
		},
	}
	resolverCalled := false
	res := &mockResolver{
		resolveFunc: func(ctx context.Context, query domain.SearchQuery) (*resolver.Resolution, error) {
			resolverCalled = true
			return nil, nil
		},
	}

	_, api := humatest.New(t)
	NewKvkHandler(res, unlock).RegisterRoutes(api)

	resp := api.Post("/kvk/pending/gone/replay", "X-Payment-Session: cs_test_123")
	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.False(t, resolverCalled)
}

func TestKvkHandler_ReplayRestoresQueryWhenRegistryUnavailable(t *testing.T) {
	stored := domain.SearchQuery{Text: "12345678", Type: domain.SearchByRegistrationNumber, FullProfile: true}

	var restoredToken string
	var restored domain.SearchQuery
	unlock := &mockUnlock{
		consumeFunc: func(ctx context.Context, token, paymentSession string) (*domain.SearchQuery, error) {
			q := stored
			q.PaymentToken = paymentSession
			return &q, nil
		},
		restoreFunc: func(ctx context.Context, token string, query domain.SearchQuery) error {
			restoredToken, restored = token, query
			return nil
		},
	}
	res := &mockResolver{
		resolveFunc: func(ctx context.Context, query domain.SearchQuery) (*resolver.Resolution, error) {
			return nil, errors.NewSourceUnavailable(resolver.RegistrySource, fmt.Errorf("dial tcp: i/o timeout"))
		},
	}

	_, api := humatest.New(t)
	NewKvkHandler(res, unlock).RegisterRoutes(api)

	resp := api.Post("/kvk/pending/abc-token/replay", "X-Payment-Session: cs_test_123")
	assert.Equal(t, http.StatusServiceUnavailable, resp.Code)
	assert.Equal(t, "abc-token", restoredToken)
	assert.Equal(t, "12345678", restored.Text)
}

func TestKvkHandler_ReplayDoesNotRestoreOnOtherErrors(t *testing.T) {
	restoreCalled := false
	unlock := &mockUnlock{
		consumeFunc: func(ctx context.Context, token, paymentSession string) (*domain.SearchQuery, error) {
			return &domain.SearchQuery{Text: "12345678", Type: domain.SearchByRegistrationNumber}, nil
		},
		restoreFunc: func(ctx context.Context, token string, query domain.SearchQuery) error {
			restoreCalled = true
			return nil
		},
	}
	res := &mockResolver{
		resolveFunc: func(ctx context.Context, query domain.SearchQuery) (*resolver.Resolution, error) {
			return nil, &errors.NotFoundError{Resource: "company", ID: query.Text}
		},
	}

	_, api := humatest.New(t)
	NewKvkHandler(res, unlock).RegisterRoutes(api)

	resp := api.Post("/kvk/pending/abc-token/replay", "X-Payment-Session: cs_test_123")
	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.False(t, restoreCalled)
}

func TestKvkHandler_WithoutUnlockService(t *testing.T) {
	_, api := humatest.New(t)
	NewKvkHandler(&mockResolver{}, nil).RegisterRoutes(api)

	resp := api.Post("/kvk/pending", map[string]any{"text": "12345678", "type": "registrationNumber"})
	assert.Equal(t, http.StatusServiceUnavailable, resp.Code)
}
