package handlers

import (
	"context"

	"kvk-insights-api/core/domain"
	"kvk-insights-api/core/interfaces"
	"kvk-insights-api/core/resolver"
)

type mockResolver struct {
	resolveFunc func(ctx context.Context, query domain.SearchQuery) (*resolver.Resolution, error)
}

func (m *mockResolver) Resolve(ctx context.Context, query domain.SearchQuery) (*resolver.Resolution, error) {
	if m.resolveFunc != nil {
		return m.resolveFunc(ctx, query)
	}
	return &resolver.Resolution{Kind: resolver.KindSearch}, nil
}

type mockUnlock struct {
	parkFunc    func(ctx context.Context, query domain.SearchQuery) (*domain.PendingQuery, error)
	consumeFunc func(ctx context.Context, token, paymentSession string) (*domain.SearchQuery, error)
	restoreFunc func(ctx context.Context, token string, query domain.SearchQuery) error
}

func (m *mockUnlock) Park(ctx context.Context, query domain.SearchQuery) (*domain.PendingQuery, error) {
	if m.parkFunc != nil {
		return m.parkFunc(ctx, query)
	}
	return nil, nil
}

func (m *mockUnlock) Consume(ctx context.Context, token, paymentSession string) (*domain.SearchQuery, error) {
	if m.consumeFunc != nil {
		return m.consumeFunc(ctx, token, paymentSession)
	}
	return nil, nil
}

func (m *mockUnlock) Restore(ctx context.Context, token string, query domain.SearchQuery) error {
	if m.restoreFunc != nil {
		return m.restoreFunc(ctx, token, query)
	}
	return nil
}

type mockCalculator struct {
	calculateFunc func(input domain.SalaryInput) (*domain.SalaryBreakdown, error)
}

func (m *mockCalculator) Calculate(input domain.SalaryInput) (*domain.SalaryBreakdown, error) {
	if m.calculateFunc != nil {
		return m.calculateFunc(input)
	}
	return &domain.SalaryBreakdown{Input: input}, nil
}

type mockCompleter struct {
	completeFunc func(ctx context.Context, messages []interfaces.ChatMessage) (string, error)
}

func (m *mockCompleter) Complete(ctx context.Context, messages []interfaces.ChatMessage) (string, error) {
	if m.completeFunc != nil {
		return m.completeFunc(ctx, messages)
	}
	return "", nil
}

type mockSnapshotter struct {
	counters map[string]int64
}

func (m *mockSnapshotter) Snapshot() map[string]int64 {
	return m.counters
}
