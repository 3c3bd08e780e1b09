package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"time"

	"kvk-insights-api/core/domain"
	"kvk-insights-api/core/interfaces"
)

// mockHTTPClient is a mock implementation of the HTTPClient interface
type mockHTTPClient struct {
	getFunc func(ctx context.Context, url string) (interfaces.Response, error)
	calls   int
	mu      sync.Mutex
}

func (m *mockHTTPClient) Get(ctx context.Context, url string) (interfaces.Response, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	if m.getFunc != nil {
		return m.getFunc(ctx, url)
	}
	return nil, errors.New("not implemented")
}

func (m *mockHTTPClient) Post(ctx context.Context, url string, body io.Reader) (interfaces.Response, error) {
	return nil, errors.New("not implemented")
}

func (m *mockHTTPClient) Do(ctx context.Context, req interfaces.Request) (interfaces.Response, error) {
	return m.Get(ctx, req.URL)
}

// mockResponse is a mock implementation of the Response interface
type mockResponse struct {
	statusCode int
	body       []byte
	headers    map[string]string
}

func (m *mockResponse) StatusCode() int {
	return m.statusCode
}

func (m *mockResponse) Body() io.ReadCloser {
	return io.NopCloser(bytes.NewReader(m.body))
}

func (m *mockResponse) Header(key string) string {
	return m.headers[strings.ToLower(key)]
}

// mapCache is a minimal in-process Cache
type mapCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMapCache() *mapCache {
	return &mapCache{data: map[string][]byte{}}
}

func (c *mapCache) Get(ctx context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	if !ok {
		return nil, errors.New("miss")
	}
	return v, nil
}

func (c *mapCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	return nil
}

func (c *mapCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

// mockLogger is a mock implementation of the Logger interface
type mockLogger struct{}

func (m *mockLogger) Debug(msg string, fields map[string]interface{}) {}
func (m *mockLogger) Info(msg string, fields map[string]interface{})  {}
func (m *mockLogger) Warn(msg string, fields map[string]interface{})  {}
func (m *mockLogger) Error(msg string, fields map[string]interface{}) {}

// mockCrawler is a mock implementation of the WebsiteService interface
type mockCrawler struct {
	crawlFunc func(ctx context.Context, siteURL string) (*interfaces.WebsiteSnapshot, error)
}

func (m *mockCrawler) Crawl(ctx context.Context, siteURL string) (*interfaces.WebsiteSnapshot, error) {
	return m.crawlFunc(ctx, siteURL)
}

// mockColors is a mock implementation of the BrandColorService interface
type mockColors struct {
	extractFunc func(ctx context.Context, imageURL string) (string, error)
}

func (m *mockColors) ExtractColor(ctx context.Context, imageURL string) (string, error) {
	return m.extractFunc(ctx, imageURL)
}

// mockAbout is a mock implementation of the AboutReader interface
type mockAbout struct {
	aboutFunc func(ctx context.Context, pageURL string) (string, error)
}

func (m *mockAbout) About(ctx context.Context, pageURL string) (string, error) {
	return m.aboutFunc(ctx, pageURL)
}

// mockDetector is a mock implementation of the TechStackDetector interface
type mockDetector struct{}

func (m *mockDetector) Detect(snapshot *interfaces.WebsiteSnapshot) *domain.TechStack {
	return &domain.TechStack{CMS: []string{"WordPress"}}
}
