// ABOUTME: SQLite-based cache implementation for persistent caching
// ABOUTME: Provides a file-based cache that survives application restarts

package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"kvk-insights-api/core/interfaces"
	"kvk-insights-api/infrastructure/sqlitedb"
)

// ErrNotFound is returned on a miss or an expired entry
var ErrNotFound = fmt.Errorf("key not found or expired: %w", interfaces.ErrCacheMiss)

// noExpiry is stored for entries written with a zero TTL
const noExpiry = int64(1<<63 - 1)

const schema = `
	CREATE TABLE IF NOT EXISTS cache (
		key TEXT PRIMARY KEY,
		value BLOB NOT NULL,
		expiry INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_cache_expiry ON cache(expiry);
`

var (
	getQuery = sqlitedb.NewQueryBuilder().
			Select("value").From("cache").
			Where("key", "=", nil).Where("expiry", ">", nil).MustBuild()
	setQuery = sqlitedb.NewQueryBuilder().
			InsertOrReplace("cache").
			Values([]string{"key", "value", "expiry"}, []interface{}{nil, nil, nil}).MustBuild()
	deleteQuery  = sqlitedb.NewQueryBuilder().Delete("cache").Where("key", "=", nil).MustBuild()
	cleanupQuery = sqlitedb.NewQueryBuilder().Delete("cache").Where("expiry", "<=", nil).MustBuild()
)

// Client implements the Cache interface using SQLite
type Client struct {
	db       *sql.DB
	filePath string
	logger   interfaces.Logger
	stop     chan struct{}
}

// NewSQLiteCache creates a new SQLite cache client
func NewSQLiteCache(filePath string) (*Client, error) {
	return NewSQLiteCacheWithLogger(filePath, nil)
}

// NewSQLiteCacheWithLogger creates a client that reports suspicious keys and
// cleanup failures to logger
func NewSQLiteCacheWithLogger(filePath string, logger interfaces.Logger) (*Client, error) {
	if filePath == "" {
		filePath = "cache.db"
	}

	db, err := sqlitedb.Open(context.Background(), filePath, schema)
	if err != nil {
		return nil, err
	}

	client := &Client{
		db:       db,
		filePath: filePath,
		logger:   logger,
		stop:     make(chan struct{}),
	}

	go client.cleanupRoutine(5 * time.Minute)

	return client, nil
}

func (c *Client) validateKey(key string) error {
	if c.logger == nil {
		return sqlitedb.ValidateKey(key, nil)
	}
	return sqlitedb.ValidateKey(key, c.logger)
}

// Get retrieves a value from the cache
func (c *Client) Get(ctx context.Context, key string) ([]byte, error) {
	if err := c.validateKey(key); err != nil {
		return nil, err
	}

	var value []byte
	err := c.db.QueryRowContext(ctx, getQuery, key, time.Now().Unix()).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get value: %w", err)
	}

	return value, nil
}

// Set stores a value in the cache with TTL; zero TTL never expires
func (c *Client) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := c.validateKey(key); err != nil {
		return err
	}
	if err := sqlitedb.ValidateValue(value); err != nil {
		return err
	}

	expiry := noExpiry
	if ttl > 0 {
		expiry = time.Now().Add(ttl).Unix()
	}

	if _, err := c.db.ExecContext(ctx, setQuery, key, value, expiry); err != nil {
		return fmt.Errorf("failed to set value: %w", err)
	}

	return nil
}

// Delete removes a value from the cache
func (c *Client) Delete(ctx context.Context, key string) error {
	if err := c.validateKey(key); err != nil {
		return err
	}

	if _, err := c.db.ExecContext(ctx, deleteQuery, key); err != nil {
		return fmt.Errorf("failed to delete value: %w", err)
	}

	return nil
}

func (c *Client) cleanupRoutine(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if _, err := c.cleanup(context.Background()); err != nil && c.logger != nil {
				c.logger.Warn("Cache cleanup failed", map[string]interface{}{
					"error": err.Error(),
				})
			}
		case <-c.stop:
			return
		}
	}
}

// cleanup removes expired entries and returns how many were removed
func (c *Client) cleanup(ctx context.Context) (int64, error) {
	res, err := c.db.ExecContext(ctx, cleanupQuery, time.Now().Unix())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Close stops the cleanup routine and closes the database connection
func (c *Client) Close() error {
	close(c.stop)
	return c.db.Close()
}
