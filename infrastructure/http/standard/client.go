// ABOUTME: Standard HTTP client implementation with retry logic and timeout support
// ABOUTME: Retries idempotent requests with exponential backoff; used by every upstream source

package standard

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"kvk-insights-api/core/interfaces"
)

const (
	defaultMaxRetries = 3
	defaultUserAgent  = "KvkInsightsAPI/1.0 (+https://kvk-insights.nl)"
)

// StandardHTTPClient implements the HTTPClient interface using standard library
type StandardHTTPClient struct {
	client     *http.Client
	userAgent  string
	maxRetries int
	logger     interfaces.Logger
}

// Option configures a StandardHTTPClient
type Option func(*StandardHTTPClient)

// WithUserAgent overrides the User-Agent header
func WithUserAgent(ua string) Option {
	return func(c *StandardHTTPClient) { c.userAgent = ua }
}

// WithMaxRetries sets the number of attempts for idempotent requests
func WithMaxRetries(n int) Option {
	return func(c *StandardHTTPClient) {
		if n > 0 {
			c.maxRetries = n
		}
	}
}

// WithLogger reports retried attempts
func WithLogger(logger interfaces.Logger) Option {
	return func(c *StandardHTTPClient) { c.logger = logger }
}

// WithTransport replaces the round tripper, e.g. to log upstream calls
func WithTransport(rt http.RoundTripper) Option {
	return func(c *StandardHTTPClient) {
		if rt != nil {
			c.client.Transport = rt
		}
	}
}

// NewStandardHTTPClient creates a new HTTP client with the specified timeout
func NewStandardHTTPClient(timeout time.Duration, opts ...Option) *StandardHTTPClient {
	c := &StandardHTTPClient{
		client: &http.Client{
			Timeout: timeout,
		},
		userAgent:  defaultUserAgent,
		maxRetries: defaultMaxRetries,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// HTTPClient exposes the underlying client so tests can install a mock transport
func (c *StandardHTTPClient) HTTPClient() *http.Client {
	return c.client
}

// Get performs an HTTP GET request
func (c *StandardHTTPClient) Get(ctx context.Context, url string) (interfaces.Response, error) {
	return c.Do(ctx, interfaces.Request{Method: http.MethodGet, URL: url})
}

// Post performs an HTTP POST request with a JSON body
func (c *StandardHTTPClient) Post(ctx context.Context, url string, body io.Reader) (interfaces.Response, error) {
	return c.Do(ctx, interfaces.Request{
		Method: http.MethodPost,
		URL:    url,
		Header: map[string]string{"Content-Type": "application/json"},
		Body:   body,
	})
}

// Do performs the request. GET and HEAD are retried on transport errors and
// 5xx responses; other methods are sent once.
func (c *StandardHTTPClient) Do(ctx context.Context, r interfaces.Request) (interfaces.Response, error) {
	method := r.Method
	if method == "" {
		method = http.MethodGet
	}

	attempts := 1
	if method == http.MethodGet || method == http.MethodHead {
		attempts = c.maxRetries
	}

	var resp *http.Response
	var lastErr error

	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			// Exponential backoff: 100ms, 200ms, 400ms
			backoff := time.Duration(100*(1<<(attempt-1))) * time.Millisecond
			if c.logger != nil {
				c.logger.Debug("Retrying upstream request", map[string]interface{}{
					"url":     r.URL,
					"attempt": attempt + 1,
					"error":   fmt.Sprint(lastErr),
				})
			}
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		req, err := http.NewRequestWithContext(ctx, method, r.URL, r.Body)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", c.userAgent)
		for k, v := range r.Header {
			req.Header.Set(k, v)
		}

		resp, err = c.client.Do(req)
		if err != nil {
			resp = nil
			lastErr = err
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			continue
		}

		// Don't retry on success or 4xx errors
		if resp.StatusCode < 500 || attempt == attempts-1 {
			break
		}

		resp.Body.Close()
		lastErr = fmt.Errorf("server returned %d", resp.StatusCode)
		resp = nil
	}

	if resp == nil {
		return nil, lastErr
	}

	return &httpResponse{
		statusCode: resp.StatusCode,
		body:       resp.Body,
		headers:    resp.Header,
	}, nil
}

// httpResponse implements the Response interface
type httpResponse struct {
	statusCode int
	body       io.ReadCloser
	headers    http.Header
}

// StatusCode returns the HTTP status code
func (r *httpResponse) StatusCode() int {
	return r.statusCode
}

// Body returns the response body
func (r *httpResponse) Body() io.ReadCloser {
	return r.body
}

// Header returns the value of the specified header
func (r *httpResponse) Header(key string) string {
	return r.headers.Get(key)
}
