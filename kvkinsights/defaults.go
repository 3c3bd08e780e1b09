// ABOUTME: Default implementations for library dependencies
// ABOUTME: Builds the cache, HTTP client, pending store and upstream sources from settings

package kvkinsights

import (
	"context"
	"io"
	"time"

	"kvk-insights-api/core/interfaces"
	"kvk-insights-api/core/profile"
	"kvk-insights-api/core/services"
	"kvk-insights-api/infrastructure/cache/memory"
	"kvk-insights-api/infrastructure/cache/redis"
	"kvk-insights-api/infrastructure/cache/sqlite"
	httpInfra "kvk-insights-api/infrastructure/http/standard"
	"kvk-insights-api/infrastructure/sources/financial"
	"kvk-insights-api/infrastructure/sources/insolvency"
	"kvk-insights-api/infrastructure/sources/kvk"
	"kvk-insights-api/infrastructure/sources/narrative"
	"kvk-insights-api/infrastructure/sources/news"
	"kvk-insights-api/infrastructure/sources/reviews"
	"kvk-insights-api/infrastructure/storage/cached"
	sqlitestore "kvk-insights-api/infrastructure/storage/sqlite"
	"kvk-insights-api/pkg/config"
)

// QuietLogger creates a logger that discards all output
func QuietLogger() interfaces.Logger {
	return &quietLogger{}
}

// quietLogger is a logger that discards all output
type quietLogger struct{}

func (q *quietLogger) Debug(msg string, fields map[string]interface{}) {}
func (q *quietLogger) Info(msg string, fields map[string]interface{})  {}
func (q *quietLogger) Warn(msg string, fields map[string]interface{})  {}
func (q *quietLogger) Error(msg string, fields map[string]interface{}) {}

// DefaultHTTPClient creates the retrying HTTP client used for upstream calls
func DefaultHTTPClient(timeout time.Duration, logger interfaces.Logger) interfaces.HTTPClient {
	return httpInfra.NewStandardHTTPClient(timeout, httpInfra.WithLogger(logger))
}

// NewCache builds the cache backend named in settings. An unreachable Redis
// falls back to memory. The returned closer is nil for memory.
func NewCache(settings config.CacheConfig, logger interfaces.Logger) (interfaces.Cache, io.Closer, error) {
	switch settings.Type {
	case "redis":
		redisCache, err := redis.NewRedisCache(settings.Redis)
		if err != nil {
			logger.Error("Failed to create Redis cache, falling back to memory", map[string]interface{}{
				"error": err.Error(),
			})
			return newMemoryCache(settings), nil, nil
		}
		logger.Info("Using Redis cache", map[string]interface{}{
			"address": settings.Redis.Address,
		})
		return redisCache, redisCache, nil
	case "sqlite":
		sqliteCache, err := sqlite.NewSQLiteCacheWithLogger(settings.SQLitePath, logger)
		if err != nil {
			return nil, nil, NewError(ErrorTypeConfiguration, "cannot open sqlite cache").WithCause(err).
				WithContext("path", settings.SQLitePath)
		}
		logger.Info("Using SQLite cache", map[string]interface{}{
			"path": settings.SQLitePath,
		})
		return sqliteCache, sqliteCache, nil
	default:
		logger.Info("Using memory cache", nil)
		return newMemoryCache(settings), nil, nil
	}
}

func newMemoryCache(settings config.CacheConfig) interfaces.Cache {
	return memory.NewMemoryCache(time.Duration(settings.Memory.DefaultExpiration) * time.Second)
}

// NewPendingStore opens the SQLite store when a path is set and otherwise
// keeps parked queries in cache
func NewPendingStore(ctx context.Context, settings config.StorageConfig, cache interfaces.Cache) (interfaces.PendingQueryStorage, io.Closer, error) {
	if settings.PendingDBPath == "" {
		return cached.NewPendingStore(cache), nil, nil
	}
	store, err := sqlitestore.NewPendingStore(ctx, settings.PendingDBPath)
	if err != nil {
		return nil, nil, NewError(ErrorTypeConfiguration, "cannot open pending query store").WithCause(err).
			WithContext("path", settings.PendingDBPath)
	}
	return store, store, nil
}

// NewSources builds the upstream clients. Optional sources without an
// endpoint stay nil so their sections report "source not configured".
// The narrative client doubles as the chat completer.
func NewSources(settings config.SourcesConfig, deps interfaces.Dependencies) (profile.Sources, *narrative.Client) {
	sources := profile.Sources{
		Registry: kvk.NewClient(settings.Registry, deps.HTTPClient, deps.Logger),
		Web:      services.NewWebEnrichmentService(deps),
	}

	if settings.Insolvency.Enabled() {
		sources.LegalStatus = insolvency.NewClient(settings.Insolvency, deps.HTTPClient)
	}
	if settings.Financial.Enabled() {
		sources.Financial = financial.NewClient(settings.Financial, deps.HTTPClient)
	}
	if settings.Reviews.Enabled() {
		sources.Reviews = reviews.NewClient(settings.Reviews, deps.HTTPClient)
	}
	if settings.NewsFeedURL != "" {
		sources.News = news.NewClient(settings.NewsFeedURL, deps.HTTPClient)
	}

	var llm *narrative.Client
	if settings.LLM.Enabled() && settings.LLM.APIKey != "" {
		llm = narrative.NewClient(settings.LLM, deps.HTTPClient, narrative.WithModel(settings.LLMModel))
		sources.Narrative = llm
	}

	return sources, llm
}
