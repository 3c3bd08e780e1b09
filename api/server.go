// ABOUTME: Huma API server configuration and setup
// ABOUTME: Provides OpenAPI documentation and request/response validation

package api

import (
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"kvk-insights-api/api/middleware"
	"kvk-insights-api/core/interfaces"
	"kvk-insights-api/pkg/featureflags"
)

const (
	apiTitle   = "KVK Insights API"
	apiVersion = "1.0.0"
)

// APIConfig holds configuration for the API
type APIConfig struct {
	Logger interfaces.Logger
	Flags  featureflags.Manager

	// AllowedOrigins defaults to every origin when empty
	AllowedOrigins []string

	RequestsPerMinute int
	Burst             int

	// Stop ends the rate limiter cleanup goroutine
	Stop <-chan struct{}
}

func corsOptions(origins []string) cors.Options {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Payment-Session", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID", "Retry-After"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}
}

func humaConfig() huma.Config {
	config := huma.DefaultConfig(apiTitle, apiVersion)
	config.Info.Description = "Company lookups in the Dutch business registry enriched with web, news and review data, plus a Dutch net salary calculator"
	return config
}

// NewAPI creates and configures a new Huma API instance
func NewAPI() (huma.API, chi.Router) {
	router := chi.NewRouter()
	router.Use(cors.Handler(corsOptions(nil)))

	// The OpenAPI spec is automatically available at /openapi.json
	// The Swagger UI is automatically available at /docs
	api := humachi.New(router, humaConfig())

	return api, router
}

// NewAPIWithMiddleware creates a new API with middleware configured
func NewAPIWithMiddleware(cfg APIConfig) (huma.API, chi.Router) {
	router := chi.NewRouter()

	// CORS first so preflight requests never count against the rate limit
	router.Use(cors.Handler(corsOptions(cfg.AllowedOrigins)))

	if cfg.Flags != nil {
		router.Use(middleware.FeatureFlagMiddleware(cfg.Flags))
	}

	if cfg.Logger != nil {
		router.Use(middleware.RequestLoggingMiddleware(cfg.Logger))
	}

	if cfg.RequestsPerMinute > 0 {
		limiter := middleware.NewRateLimiter(cfg.RequestsPerMinute, cfg.Burst, cfg.Stop)
		router.Use(middleware.RateLimitMiddleware(limiter))
	}

	api := humachi.New(router, humaConfig())

	return api, router
}
