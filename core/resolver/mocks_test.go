package resolver

import (
	"context"
	"errors"
	"sync"
	"time"

	"kvk-insights-api/core/domain"
)

// mockRegistry is a mock implementation of the RegistrySource interface
type mockRegistry struct {
	searchFunc func(ctx context.Context, query domain.SearchQuery) ([]domain.SearchResult, error)
	calls      int
}

func (m *mockRegistry) Search(ctx context.Context, query domain.SearchQuery) ([]domain.SearchResult, error) {
	m.calls++
	if m.searchFunc != nil {
		return m.searchFunc(ctx, query)
	}
	return nil, nil
}

func (m *mockRegistry) BaseProfile(ctx context.Context, kvkNumber string) (*domain.RegistryRecord, error) {
	return nil, errors.New("not implemented")
}

func (m *mockRegistry) Officers(ctx context.Context, kvkNumber string) ([]domain.Director, error) {
	return nil, errors.New("not implemented")
}

func (m *mockRegistry) Relations(ctx context.Context, kvkNumber string) (*domain.Relations, error) {
	return nil, errors.New("not implemented")
}

// mockAggregator is a mock implementation of the ProfileAggregator interface
type mockAggregator struct {
	aggregateFunc func(ctx context.Context, kvkNumber string, include domain.Include, enrichments domain.Enrichments) (*domain.CompanyProfile, error)
}

func (m *mockAggregator) Aggregate(ctx context.Context, kvkNumber string, include domain.Include, enrichments domain.Enrichments) (*domain.CompanyProfile, error) {
	return m.aggregateFunc(ctx, kvkNumber, include, enrichments)
}

// mockCache is a mock implementation of the Cache interface
type mockCache struct {
	mu     sync.Mutex
	data   map[string][]byte
	getErr error
}

func newMockCache() *mockCache {
	return &mockCache{data: map[string][]byte{}}
}

func (m *mockCache) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	v, ok := m.data[key]
	if !ok {
		return nil, errors.New("miss")
	}
	return v, nil
}

func (m *mockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *mockCache) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// mockLogger is a mock implementation of the Logger interface
type mockLogger struct {
	warnings []string
}

func (m *mockLogger) Debug(msg string, fields map[string]interface{}) {}
func (m *mockLogger) Info(msg string, fields map[string]interface{})  {}
func (m *mockLogger) Warn(msg string, fields map[string]interface{}) {
	m.warnings = append(m.warnings, msg)
}
func (m *mockLogger) Error(msg string, fields map[string]interface{}) {}

// mockMetrics is a mock implementation of the Metrics interface
type mockMetrics struct {
	sources  []string
	failures int
}

func (m *mockMetrics) RecordSource(source string, duration time.Duration, err error) {
	m.sources = append(m.sources, source)
	if err != nil {
		m.failures++
	}
}

func (m *mockMetrics) Inc(name string) {}
