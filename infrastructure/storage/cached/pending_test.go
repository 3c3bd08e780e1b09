package cached

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kvk-insights-api/core/domain"
	coreerrors "kvk-insights-api/core/errors"
	"kvk-insights-api/infrastructure/cache/memory"
)

type failingCache struct {
	getFunc    func(ctx context.Context, key string) ([]byte, error)
	deleteFunc func(ctx context.Context, key string) error
}

func (f *failingCache) Get(ctx context.Context, key string) ([]byte, error) {
	return f.getFunc(ctx, key)
}

func (f *failingCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return nil
}

func (f *failingCache) Delete(ctx context.Context, key string) error {
	if f.deleteFunc != nil {
		return f.deleteFunc(ctx, key)
	}
	return nil
}

func TestPendingStore_SaveTake(t *testing.T) {
	store := NewPendingStore(memory.NewMemoryCache(time.Minute))
	ctx := context.Background()

	p, err := domain.NewPendingQuery(domain.SearchQuery{Text: "12345678", Type: domain.SearchByRegistrationNumber}, time.Minute)
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, p))

	got, err := store.Take(ctx, p.Token)
	require.NoError(t, err)
	assert.Equal(t, domain.SearchByRegistrationNumber, got.Query.Type)

	_, err = store.Take(ctx, p.Token)
	assert.True(t, coreerrors.IsNotFound(err))
}

func TestPendingStore_RejectsExpired(t *testing.T) {
	store := NewPendingStore(memory.NewMemoryCache(time.Minute))

	p := &domain.PendingQuery{Token: "t", ExpiresAt: time.Now().Add(-time.Second)}
	err := store.Save(context.Background(), p)
	assert.True(t, coreerrors.IsValidation(err))
}

func TestPendingStore_Unknown(t *testing.T) {
	store := NewPendingStore(memory.NewMemoryCache(time.Minute))

	_, err := store.Take(context.Background(), "missing")
	assert.True(t, coreerrors.IsNotFound(err))

	n, err := store.PurgeExpired(context.Background())
	assert.NoError(t, err)
	assert.Zero(t, n)
}

func TestPendingStore_BackendOutageIsNotNotFound(t *testing.T) {
	outage := errors.New("dial tcp 10.0.0.5:6379: connection refused")
	store := NewPendingStore(&failingCache{
		getFunc: func(ctx context.Context, key string) ([]byte, error) {
			return nil, outage
		},
	})

	_, err := store.Take(context.Background(), "3b1f0c4e-8a7d-4a51-9a55-0d6b2d0e9f11")
	require.Error(t, err)
	assert.False(t, coreerrors.IsNotFound(err))
	assert.True(t, coreerrors.IsSourceUnavailable(err))
	assert.ErrorIs(t, err, outage)
}

func TestPendingStore_DeleteFailureKeepsError(t *testing.T) {
	outage := errors.New("redis: connection pool timeout")
	store := NewPendingStore(&failingCache{
		getFunc: func(ctx context.Context, key string) ([]byte, error) {
			return []byte(`{}`), nil
		},
		deleteFunc: func(ctx context.Context, key string) error {
			return outage
		},
	})

	_, err := store.Take(context.Background(), "token")
	assert.True(t, coreerrors.IsSourceUnavailable(err))
	assert.ErrorIs(t, err, outage)
}
