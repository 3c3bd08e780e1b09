// ABOUTME: Main client for the KVK Insights library: search, profiles, parked queries and salary
// ABOUTME: Offers the core functionality without the HTTP layer; the API server is built on it

package kvkinsights

import (
	"context"
	"io"
	"sync"
	"time"

	"kvk-insights-api/core/domain"
	coreerrors "kvk-insights-api/core/errors"
	"kvk-insights-api/core/interfaces"
	"kvk-insights-api/core/profile"
	"kvk-insights-api/core/resolver"
	"kvk-insights-api/core/salary"
	"kvk-insights-api/core/unlock"
	"kvk-insights-api/infrastructure/metrics"
)

// Client is the main entry point for the library
type Client struct {
	resolver   *resolver.Service
	aggregator *profile.Aggregator
	unlock     *unlock.Service
	calculator *salary.Calculator
	chat       interfaces.ChatCompleter
	metrics    *metrics.Registry

	deps    interfaces.Dependencies
	closers []io.Closer

	mu     sync.RWMutex
	closed bool
}

// NewClient creates a new client with the given options
func NewClient(options ...Option) (*Client, error) {
	config := defaultConfig()

	for _, opt := range options {
		if err := opt(&config); err != nil {
			return nil, err
		}
	}

	settings := config.Settings
	c := &Client{calculator: salary.NewCalculator()}

	logger := config.Logger
	if logger == nil {
		logger = QuietLogger()
	}

	cache := config.Cache
	if cache == nil {
		built, closer, err := NewCache(settings.Cache, logger)
		if err != nil {
			return nil, err
		}
		cache = built
		c.addCloser(closer)
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = DefaultHTTPClient(upstreamTimeout(settings), logger)
	}

	c.metrics = config.Metrics
	if c.metrics == nil {
		c.metrics = metrics.NewRegistry()
	}

	c.deps = interfaces.Dependencies{
		Cache:      cache,
		HTTPClient: httpClient,
		Logger:     logger,
		Metrics:    c.metrics,
	}

	var sources profile.Sources
	if config.Sources != nil {
		sources = *config.Sources
		if chat, ok := sources.Narrative.(interfaces.ChatCompleter); ok {
			c.chat = chat
		}
	} else {
		built, llm := NewSources(settings.Sources, c.deps)
		sources = built
		if llm != nil {
			c.chat = llm
		}
	}

	store := config.PendingStore
	if store == nil {
		built, closer, err := NewPendingStore(context.Background(), settings.Storage, cache)
		if err != nil {
			c.Close()
			return nil, err
		}
		store = built
		c.addCloser(closer)
	}

	c.aggregator = profile.NewAggregator(sources, c.deps, profile.Options{
		SourceTimeout:    settings.Timeouts.Source,
		NarrativeTimeout: settings.Timeouts.Narrative,
	})
	c.resolver = resolver.NewService(sources.Registry, c.aggregator, c.deps)
	c.unlock = unlock.NewService(store, logger)

	return c, nil
}

func (c *Client) addCloser(closer io.Closer) {
	if closer != nil {
		c.closers = append(c.closers, closer)
	}
}

// Close releases the cache and store connections the client opened
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true

	var firstErr error
	for _, closer := range c.closers {
		if err := closer.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (c *Client) checkOpen() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return ErrClientClosed
	}
	return nil
}

// Search resolves a query into candidates or, for a registration number with
// FullProfile set, a profile
func (c *Client) Search(ctx context.Context, query domain.SearchQuery) (*resolver.Resolution, error) {
	if err := c.checkOpen(); err != nil {
		return nil, err
	}
	return c.resolver.Resolve(ctx, query)
}

// Profile builds the full profile for a registration number
func (c *Client) Profile(ctx context.Context, kvkNumber string, include domain.Include, enrichments domain.Enrichments) (*domain.CompanyProfile, error) {
	if err := c.checkOpen(); err != nil {
		return nil, err
	}
	return c.aggregator.Aggregate(ctx, domain.NormalizeKvkNumber(kvkNumber), include, enrichments)
}

// Park stores a query while the user pays
func (c *Client) Park(ctx context.Context, query domain.SearchQuery) (*domain.PendingQuery, error) {
	if err := c.checkOpen(); err != nil {
		return nil, err
	}
	return c.unlock.Park(ctx, query)
}

// Replay consumes a parked query and resolves it with the payment session
func (c *Client) Replay(ctx context.Context, token, paymentSession string) (*resolver.Resolution, error) {
	if err := c.checkOpen(); err != nil {
		return nil, err
	}
	query, err := c.unlock.Consume(ctx, token, paymentSession)
	if err != nil {
		return nil, err
	}
	res, err := c.resolver.Resolve(ctx, *query)
	if coreerrors.IsSourceUnavailable(err) {
		_ = c.unlock.Restore(context.WithoutCancel(ctx), token, *query)
	}
	return res, err
}

// RunPurger removes expired parked queries every interval until ctx is done
func (c *Client) RunPurger(ctx context.Context, interval time.Duration) {
	c.unlock.RunPurger(ctx, interval)
}

// CalculateSalary returns the net salary breakdown
func (c *Client) CalculateSalary(input domain.SalaryInput) (*domain.SalaryBreakdown, error) {
	return c.calculator.Calculate(input)
}

// GrossForNet returns the yearly gross that yields netYear
func (c *Client) GrossForNet(input domain.SalaryInput, netYear float64) (float64, error) {
	return c.calculator.GrossForNet(input, netYear)
}

// Chat sends a conversation to the chat model
func (c *Client) Chat(ctx context.Context, messages []interfaces.ChatMessage) (string, error) {
	if err := c.checkOpen(); err != nil {
		return "", err
	}
	if c.chat == nil {
		return "", ErrChatNotConfigured
	}
	return c.chat.Complete(ctx, messages)
}

// Resolver exposes the resolver for the HTTP handlers
func (c *Client) Resolver() *resolver.Service { return c.resolver }

// Unlock exposes the parked-query service for the HTTP handlers
func (c *Client) Unlock() *unlock.Service { return c.unlock }

// Calculator exposes the salary calculator
func (c *Client) Calculator() *salary.Calculator { return c.calculator }

// ChatCompleter returns the chat model, or nil when none is configured
func (c *Client) ChatCompleter() interfaces.ChatCompleter { return c.chat }

// Metrics returns the registry upstream calls are recorded in
func (c *Client) Metrics() *metrics.Registry { return c.metrics }
