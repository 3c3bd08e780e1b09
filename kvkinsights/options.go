// ABOUTME: Configuration options for the KVK Insights library client
// ABOUTME: Functional options; anything not set is built from the settings

package kvkinsights

import (
	"time"

	"kvk-insights-api/core/interfaces"
	"kvk-insights-api/core/profile"
	"kvk-insights-api/infrastructure/metrics"
	"kvk-insights-api/pkg/config"
)

// Option is a functional option for configuring the client
type Option func(*Config) error

// Config holds the configuration for the client
type Config struct {
	// Settings carries upstream endpoints, cache and storage choices
	Settings *config.Config

	Cache      interfaces.Cache
	HTTPClient interfaces.HTTPClient
	Logger     interfaces.Logger
	Metrics    *metrics.Registry

	// PendingStore holds parked queries; defaults to SQLite or the cache
	PendingStore interfaces.PendingQueryStorage

	// Sources replaces the upstream clients built from Settings
	Sources *profile.Sources
}

// WithSettings sets the endpoints, timeouts and backends to use
func WithSettings(settings *config.Config) Option {
	return func(c *Config) error {
		if settings == nil {
			return NewError(ErrorTypeConfiguration, "settings cannot be nil")
		}
		c.Settings = settings
		return nil
	}
}

// WithCache sets a custom cache implementation
func WithCache(cache interfaces.Cache) Option {
	return func(c *Config) error {
		c.Cache = cache
		return nil
	}
}

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(client interfaces.HTTPClient) Option {
	return func(c *Config) error {
		c.HTTPClient = client
		return nil
	}
}

// WithLogger sets a custom logger
func WithLogger(logger interfaces.Logger) Option {
	return func(c *Config) error {
		c.Logger = logger
		return nil
	}
}

// WithMetrics sets the registry source calls are recorded in
func WithMetrics(registry *metrics.Registry) Option {
	return func(c *Config) error {
		c.Metrics = registry
		return nil
	}
}

// WithPendingStore sets where parked queries are kept
func WithPendingStore(store interfaces.PendingQueryStorage) Option {
	return func(c *Config) error {
		c.PendingStore = store
		return nil
	}
}

// WithSources replaces the upstream clients. Registry is required.
func WithSources(sources profile.Sources) Option {
	return func(c *Config) error {
		if sources.Registry == nil {
			return NewError(ErrorTypeConfiguration, "sources need a registry")
		}
		c.Sources = &sources
		return nil
	}
}

// WithQuietMode configures the client to suppress all log output
func WithQuietMode() Option {
	return func(c *Config) error {
		c.Logger = QuietLogger()
		return nil
	}
}

// DefaultSettings returns the settings used when none are given: the public
// registry endpoint, an in-memory cache and no optional sources.
func DefaultSettings() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Port: "8000"},
		Cache: config.CacheConfig{
			Type:   "memory",
			Memory: config.MemoryConfig{DefaultExpiration: 3600},
		},
		Sources: config.SourcesConfig{
			Registry: config.SourceConfig{BaseURL: "https://api.kvk.nl/api"},
		},
		Timeouts: config.TimeoutConfig{
			Source:    profile.DefaultSourceTimeout,
			Narrative: profile.DefaultNarrativeTimeout,
		},
		RateLimit: config.RateLimitConfig{RequestsPerMinute: 30, Burst: 10},
	}
}

// defaultConfig returns the default client configuration
func defaultConfig() Config {
	return Config{
		Settings: DefaultSettings(),
	}
}

// upstreamTimeout is the HTTP client timeout; the aggregator's per-source
// deadline is usually shorter
func upstreamTimeout(settings *config.Config) time.Duration {
	if settings.Timeouts.Narrative > settings.Timeouts.Source {
		return settings.Timeouts.Narrative
	}
	if settings.Timeouts.Source > 0 {
		return settings.Timeouts.Source
	}
	return 30 * time.Second
}
