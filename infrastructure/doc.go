// Package infrastructure provides concrete implementations of the interfaces
// defined in the core package: caches, the HTTP client, logging, metrics,
// persistence and the upstream data sources.
//
// The infrastructure package is organized by technical concern:
//
//   - cache/memory: in-memory cache on patrickmn/go-cache
//   - cache/redis: Redis cache on go-redis
//   - cache/sqlite: file cache on go-sqlite3
//   - http/standard: HTTP client with retries for idempotent requests
//   - logger/logrus: JSON logger with optional lumberjack file rotation
//   - metrics: go-metrics registry for per-source latency and failures
//   - sqlitedb: shared SQLite opening, key validation and a query builder
//   - storage/cached, storage/sqlite: parked-query stores
//   - sources/*: business registry, insolvency register, financial risk,
//     reviews, news and the LLM narrative client
//
// # Cache Implementations
//
//	cache := memory.NewMemoryCache(time.Hour)
//	err := cache.Set(ctx, "search:3f2a9c", payload, 15*time.Minute)
//	value, err := cache.Get(ctx, "search:3f2a9c")
//
//	cache, err := redis.NewRedisCache(config.RedisConfig{Address: "localhost:6379"})
//
// # HTTP Client
//
// GET and HEAD requests are retried on transport errors and 5xx responses
// with exponential backoff:
//
//	client := standard.NewStandardHTTPClient(8*time.Second, standard.WithLogger(logger))
//	resp, err := client.Get(ctx, "https://api.kvk.nl/api/v1/zoeken?naam=acme")
//	if err != nil {
//	    // Handle error
//	}
//	defer resp.Body().Close()
//
// # Logger
//
//	logger := logrus.New(logrus.Options{Level: "info", File: "/var/log/kvk-insights.log"})
//	logger.Info("Profile aggregated", map[string]interface{}{
//	    "kvk_number": "12345678",
//	    "sources":    7,
//	})
package infrastructure
