// ABOUTME: Parked-query store backed by the configured cache
// ABOUTME: Used when no SQLite path is set; expiry is delegated to the cache TTL

package cached

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"kvk-insights-api/core/domain"
	coreerrors "kvk-insights-api/core/errors"
	"kvk-insights-api/core/interfaces"
)

const keyPrefix = "pending:"

// StoreName identifies this store in unavailability errors
const StoreName = "pending-store"

// PendingStore implements PendingQueryStorage on a Cache. Take is serialized
// within the process; across replicas a shared cache may let a token race.
type PendingStore struct {
	cache interfaces.Cache
	mu    sync.Mutex
}

// NewPendingStore wraps cache
func NewPendingStore(cache interfaces.Cache) *PendingStore {
	return &PendingStore{cache: cache}
}

// Save stores the query until it expires
func (s *PendingStore) Save(ctx context.Context, pending *domain.PendingQuery) error {
	if pending == nil || pending.Token == "" {
		return &coreerrors.ValidationError{Field: "token", Message: "pending query needs a token"}
	}

	ttl := time.Until(pending.ExpiresAt)
	if ttl <= 0 {
		return &coreerrors.ValidationError{Field: "expiresAt", Message: "pending query already expired"}
	}

	data, err := json.Marshal(pending)
	if err != nil {
		return fmt.Errorf("encode pending query: %w", err)
	}
	return s.cache.Set(ctx, keyPrefix+pending.Token, data, ttl)
}

// Take returns the query for token and deletes it
func (s *PendingStore) Take(ctx context.Context, token string) (*domain.PendingQuery, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := keyPrefix + token
	data, err := s.cache.Get(ctx, key)
	if errors.Is(err, interfaces.ErrCacheMiss) {
		return nil, &coreerrors.NotFoundError{Resource: "pending query", ID: token}
	}
	if err != nil {
		return nil, coreerrors.NewSourceUnavailable(StoreName, err)
	}
	if err := s.cache.Delete(ctx, key); err != nil {
		return nil, coreerrors.NewSourceUnavailable(StoreName, err)
	}

	var pending domain.PendingQuery
	if err := json.Unmarshal(data, &pending); err != nil {
		return nil, fmt.Errorf("decode pending query: %w", err)
	}
	if pending.IsExpired() {
		return nil, &coreerrors.NotFoundError{Resource: "pending query", ID: token}
	}
	return &pending, nil
}

// PurgeExpired is a no-op; the cache drops entries on its own
func (s *PendingStore) PurgeExpired(ctx context.Context) (int, error) {
	return 0, nil
}
