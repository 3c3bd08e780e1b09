// ABOUTME: Configuration management for the application with environment variable support
// ABOUTME: Defines configuration for server, cache, upstream sources, timeouts and storage

package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server contains HTTP server configuration
	Server ServerConfig

	// Cache contains cache configuration
	Cache CacheConfig

	// Sources contains upstream endpoints and credentials
	Sources SourcesConfig

	// Timeouts bounds each upstream call made during aggregation
	Timeouts TimeoutConfig

	// RateLimit contains per-client request limits
	RateLimit RateLimitConfig

	// Storage contains persistence configuration for parked queries
	Storage StorageConfig

	// Log contains logger configuration
	Log LogConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	// Port is the HTTP server port
	Port string

	// AllowedOrigins lists the CORS origins of the marketing site
	AllowedOrigins []string
}

// CacheConfig holds cache backend configuration
type CacheConfig struct {
	// Type specifies the cache backend (redis/memory/sqlite)
	Type string

	// Redis contains Redis-specific configuration
	Redis RedisConfig

	// Memory contains in-memory cache configuration
	Memory MemoryConfig

	// SQLitePath is the database file used when Type is sqlite
	SQLitePath string
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	// Address is the Redis server address
	Address string

	// Password is the Redis authentication password
	Password string

	// DB is the Redis database number
	DB int
}

// MemoryConfig holds in-memory cache configuration
type MemoryConfig struct {
	// DefaultExpiration is the default TTL for cache entries in seconds
	DefaultExpiration int
}

// SourceConfig is one upstream API
type SourceConfig struct {
	BaseURL string
	APIKey  string
}

// Enabled reports whether the source has an endpoint configured
func (s SourceConfig) Enabled() bool {
	return s.BaseURL != ""
}

// SourcesConfig holds every upstream the resolver and aggregator call
type SourcesConfig struct {
	Registry   SourceConfig
	Insolvency SourceConfig
	Financial  SourceConfig
	Reviews    SourceConfig
	// NewsFeedURL is a search feed template; %s is replaced by the company name
	NewsFeedURL string
	LLM         SourceConfig
	LLMModel    string
}

// TimeoutConfig bounds upstream calls
type TimeoutConfig struct {
	// Source is the per-call timeout for every fan-out task
	Source time.Duration

	// Narrative is the timeout for the narrative generator
	Narrative time.Duration
}

// profileSourceStages counts the sequential source-bounded steps of a full
// profile: registry stage, enrichment stage and the about-page fetch
const profileSourceStages = 3

// ResponseMargin is added on top of the longest profile build for encoding
// and writing the response
const ResponseMargin = 15 * time.Second

// WriteTimeout is the longest a full profile request may take: every
// sequential source stage plus the narrative plus ResponseMargin
func (t TimeoutConfig) WriteTimeout() time.Duration {
	return profileSourceStages*t.Source + t.Narrative + ResponseMargin
}

// RateLimitConfig holds per-IP token bucket settings
type RateLimitConfig struct {
	RequestsPerMinute int
	Burst             int
}

// StorageConfig holds parked-query persistence settings
type StorageConfig struct {
	// PendingDBPath is the SQLite file for parked queries; empty uses the cache
	PendingDBPath string
}

// LogConfig holds logger settings
type LogConfig struct {
	Level string
	// File enables rotated file output in addition to stdout
	File string
}

// LoadFromEnv loads configuration from environment variables.
// A .env file in the working directory is read first when present.
func LoadFromEnv() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:           getEnvOrDefault("PORT", "8000"),
			AllowedOrigins: getEnvAsListOrDefault("ALLOWED_ORIGINS", []string{"*"}),
		},
		Cache: CacheConfig{
			Type: getEnvOrDefault("CACHE_TYPE", "memory"),
			Redis: RedisConfig{
				Address:  getEnvOrDefault("REDIS_ADDRESS", "localhost:6379"),
				Password: getEnvOrDefault("REDIS_PASSWORD", ""),
				DB:       getEnvAsIntOrDefault("REDIS_DB", 0),
			},
			Memory: MemoryConfig{
				DefaultExpiration: getEnvAsIntOrDefault("MEMORY_CACHE_EXPIRATION", 3600),
			},
			SQLitePath: getEnvOrDefault("SQLITE_CACHE_PATH", "cache.db"),
		},
		Sources: SourcesConfig{
			Registry: SourceConfig{
				BaseURL: getEnvOrDefault("KVK_BASE_URL", "https://api.kvk.nl/api"),
				APIKey:  getEnvOrDefault("KVK_API_KEY", ""),
			},
			Insolvency: SourceConfig{
				BaseURL: getEnvOrDefault("INSOLVENCY_BASE_URL", ""),
				APIKey:  getEnvOrDefault("INSOLVENCY_API_KEY", ""),
			},
			Financial: SourceConfig{
				BaseURL: getEnvOrDefault("FINANCIAL_BASE_URL", ""),
				APIKey:  getEnvOrDefault("FINANCIAL_API_KEY", ""),
			},
			Reviews: SourceConfig{
				BaseURL: getEnvOrDefault("REVIEWS_BASE_URL", ""),
				APIKey:  getEnvOrDefault("REVIEWS_API_KEY", ""),
			},
			NewsFeedURL: getEnvOrDefault("NEWS_FEED_URL", "https://news.google.com/rss/search?hl=nl&gl=NL&ceid=NL:nl&q=%s"),
			LLM: SourceConfig{
				BaseURL: getEnvOrDefault("LLM_BASE_URL", "https://api.openai.com/v1"),
				APIKey:  getEnvOrDefault("LLM_API_KEY", ""),
			},
			LLMModel: getEnvOrDefault("LLM_MODEL", "gpt-4o-mini"),
		},
		Timeouts: TimeoutConfig{
			Source:    getEnvAsDurationOrDefault("SOURCE_TIMEOUT", 8*time.Second),
			Narrative: getEnvAsDurationOrDefault("NARRATIVE_TIMEOUT", 20*time.Second),
		},
		RateLimit: RateLimitConfig{
			RequestsPerMinute: getEnvAsIntOrDefault("RATE_LIMIT_PER_MINUTE", 30),
			Burst:             getEnvAsIntOrDefault("RATE_LIMIT_BURST", 10),
		},
		Storage: StorageConfig{
			PendingDBPath: getEnvOrDefault("PENDING_DB_PATH", ""),
		},
		Log: LogConfig{
			Level: getEnvOrDefault("LOG_LEVEL", "info"),
			File:  getEnvOrDefault("LOG_FILE", ""),
		},
	}

	return cfg, nil
}

// getEnvOrDefault returns the environment variable value or a default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault returns the environment variable as int or a default
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsDurationOrDefault accepts Go durations ("8s") or plain seconds ("8")
func getEnvAsDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}

// getEnvAsListOrDefault splits a comma separated variable
func getEnvAsListOrDefault(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("port cannot be empty")
	}

	switch c.Cache.Type {
	case "redis":
		if c.Cache.Redis.Address == "" {
			return errors.New("redis address cannot be empty when using redis cache")
		}
	case "memory":
	case "sqlite":
		if c.Cache.SQLitePath == "" {
			return errors.New("sqlite path cannot be empty when using sqlite cache")
		}
	default:
		return errors.New("cache type must be 'redis', 'memory' or 'sqlite'")
	}

	if !c.Sources.Registry.Enabled() {
		return errors.New("registry base URL cannot be empty")
	}

	if c.Timeouts.Source <= 0 || c.Timeouts.Narrative <= 0 {
		return errors.New("timeouts must be positive")
	}

	if c.RateLimit.RequestsPerMinute < 1 || c.RateLimit.Burst < 1 {
		return errors.New("rate limit and burst must be at least 1")
	}

	return nil
}
