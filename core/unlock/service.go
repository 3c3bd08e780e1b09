// ABOUTME: Pay-then-replay flow: parks a search query under a token and replays it once
// ABOUTME: The payment session is attached to the replayed query but never validated here

package unlock

import (
	"context"
	"time"

	"github.com/google/uuid"

	"kvk-insights-api/core/domain"
	coreerrors "kvk-insights-api/core/errors"
	"kvk-insights-api/core/interfaces"
)

// Service parks and consumes pending queries
type Service struct {
	store  interfaces.PendingQueryStorage
	logger interfaces.Logger
	ttl    time.Duration
}

// NewService creates an unlock service with the standard replay window
func NewService(store interfaces.PendingQueryStorage, logger interfaces.Logger) *Service {
	return &Service{
		store:  store,
		logger: logger,
		ttl:    domain.PendingQueryTTL,
	}
}

// Park validates query and stores it until the replay window closes
func (s *Service) Park(ctx context.Context, query domain.SearchQuery) (*domain.PendingQuery, error) {
	query.Normalize()
	if err := query.Validate(); err != nil {
		return nil, err
	}
	query.PaymentToken = ""

	pending, err := domain.NewPendingQuery(query, s.ttl)
	if err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, pending); err != nil {
		return nil, coreerrors.WrapError(err, "park query")
	}

	s.log("Query parked", map[string]interface{}{
		"token":      pending.Token,
		"type":       string(query.Type),
		"expires_at": pending.ExpiresAt.Format(time.RFC3339),
	})
	return pending, nil
}

// Consume returns the parked query for token with paymentSession attached.
// A token can be consumed once; unknown and expired tokens are NotFound.
func (s *Service) Consume(ctx context.Context, token, paymentSession string) (*domain.SearchQuery, error) {
	if _, err := uuid.Parse(token); err != nil {
		return nil, &coreerrors.ValidationError{Field: "token", Message: "token must be a UUID"}
	}
	if paymentSession == "" {
		return nil, &coreerrors.ValidationError{Field: "X-Payment-Session", Message: "payment session is required"}
	}

	pending, err := s.store.Take(ctx, token)
	if err != nil {
		return nil, err
	}
	if pending.IsExpired() {
		return nil, &coreerrors.NotFoundError{Resource: "pending query", ID: token}
	}

	query := pending.Query
	query.PaymentToken = paymentSession

	s.log("Query replayed", map[string]interface{}{
		"token":  token,
		"age_ms": time.Since(pending.CreatedAt).Milliseconds(),
	})
	return &query, nil
}

// Restore parks query again under the token it was consumed with, with a
// fresh replay window. Replays whose resolution failed upstream use it so the
// paid query stays replayable.
func (s *Service) Restore(ctx context.Context, token string, query domain.SearchQuery) error {
	query.PaymentToken = ""

	now := time.Now()
	pending := &domain.PendingQuery{
		Token:     token,
		Query:     query,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	if err := s.store.Save(ctx, pending); err != nil {
		if s.logger != nil {
			s.logger.Warn("Failed to restore query after failed replay", map[string]interface{}{
				"token": token,
				"error": err.Error(),
			})
		}
		return coreerrors.WrapError(err, "restore query")
	}

	s.log("Query restored after failed replay", map[string]interface{}{
		"token":      token,
		"expires_at": pending.ExpiresAt.Format(time.RFC3339),
	})
	return nil
}

// RunPurger removes expired queries every interval until ctx is done
func (s *Service) RunPurger(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			n, err := s.store.PurgeExpired(ctx)
			if err != nil {
				if s.logger != nil {
					s.logger.Warn("Pending query purge failed", map[string]interface{}{"error": err.Error()})
				}
				continue
			}
			if n > 0 {
				s.log("Expired pending queries purged", map[string]interface{}{"count": n})
			}
		case <-ctx.Done():
			return
		}
	}
}

func (s *Service) log(msg string, fields map[string]interface{}) {
	if s.logger != nil {
		s.logger.Info(msg, fields)
	}
}
