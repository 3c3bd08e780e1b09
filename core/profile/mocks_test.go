package profile

import (
	"context"
	"sync"
	"time"

	"kvk-insights-api/core/domain"
	"kvk-insights-api/core/interfaces"
)

// mockRegistry is a mock implementation of the RegistrySource interface
type mockRegistry struct {
	baseFunc      func(ctx context.Context, kvkNumber string) (*domain.RegistryRecord, error)
	officersFunc  func(ctx context.Context, kvkNumber string) ([]domain.Director, error)
	relationsFunc func(ctx context.Context, kvkNumber string) (*domain.Relations, error)
}

func (m *mockRegistry) Search(ctx context.Context, query domain.SearchQuery) ([]domain.SearchResult, error) {
	return nil, nil
}

func (m *mockRegistry) BaseProfile(ctx context.Context, kvkNumber string) (*domain.RegistryRecord, error) {
	return m.baseFunc(ctx, kvkNumber)
}

func (m *mockRegistry) Officers(ctx context.Context, kvkNumber string) ([]domain.Director, error) {
	return m.officersFunc(ctx, kvkNumber)
}

func (m *mockRegistry) Relations(ctx context.Context, kvkNumber string) (*domain.Relations, error) {
	return m.relationsFunc(ctx, kvkNumber)
}

// mockLegal is a mock implementation of the LegalStatusSource interface
type mockLegal struct {
	legalFunc func(ctx context.Context, kvkNumber string) (*domain.LegalStatus, error)
}

func (m *mockLegal) LegalStatus(ctx context.Context, kvkNumber string) (*domain.LegalStatus, error) {
	return m.legalFunc(ctx, kvkNumber)
}

// mockFinancial is a mock implementation of the FinancialSource interface
type mockFinancial struct {
	indicatorsFunc func(ctx context.Context, kvkNumber string) (*domain.FinancialIndicators, error)
}

func (m *mockFinancial) Indicators(ctx context.Context, kvkNumber string) (*domain.FinancialIndicators, error) {
	return m.indicatorsFunc(ctx, kvkNumber)
}

// mockReviews is a mock implementation of the ReviewSource interface
type mockReviews struct {
	reviewsFunc func(ctx context.Context, name, city string) (*domain.Reviews, error)
}

func (m *mockReviews) Reviews(ctx context.Context, name, city string) (*domain.Reviews, error) {
	return m.reviewsFunc(ctx, name, city)
}

// mockNews is a mock implementation of the NewsSource interface
type mockNews struct {
	newsFunc func(ctx context.Context, name string) ([]domain.NewsItem, error)
}

func (m *mockNews) News(ctx context.Context, name string) ([]domain.NewsItem, error) {
	return m.newsFunc(ctx, name)
}

// mockWeb is a mock implementation of the WebEnricher interface
type mockWeb struct {
	websiteFunc func(ctx context.Context, site string) (*domain.WebPresence, error)
	socialsFunc func(ctx context.Context, site string) (*domain.SocialProfiles, error)
	techFunc    func(ctx context.Context, site string) (*domain.TechStack, error)
	aboutFunc   func(ctx context.Context, site string) (string, error)
}

func (m *mockWeb) Website(ctx context.Context, site string) (*domain.WebPresence, error) {
	return m.websiteFunc(ctx, site)
}

func (m *mockWeb) Socials(ctx context.Context, site string) (*domain.SocialProfiles, error) {
	return m.socialsFunc(ctx, site)
}

func (m *mockWeb) TechStack(ctx context.Context, site string) (*domain.TechStack, error) {
	return m.techFunc(ctx, site)
}

func (m *mockWeb) AboutText(ctx context.Context, site string) (string, error) {
	if m.aboutFunc == nil {
		return "", nil
	}
	return m.aboutFunc(ctx, site)
}

// mockNarrative is a mock implementation of the NarrativeGenerator interface
type mockNarrative struct {
	generateFunc func(ctx context.Context, input interfaces.NarrativeInput) (*interfaces.Narrative, error)
}

func (m *mockNarrative) Generate(ctx context.Context, input interfaces.NarrativeInput) (*interfaces.Narrative, error) {
	return m.generateFunc(ctx, input)
}

// mockMetrics is a mock implementation of the Metrics interface
type mockMetrics struct {
	mu       sync.Mutex
	sources  map[string]int
	failures map[string]int
}

func newMockMetrics() *mockMetrics {
	return &mockMetrics{sources: map[string]int{}, failures: map[string]int{}}
}

func (m *mockMetrics) RecordSource(source string, duration time.Duration, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sources[source]++
	if err != nil {
		m.failures[source]++
	}
}

func (m *mockMetrics) Inc(name string) {}
