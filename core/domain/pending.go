// ABOUTME: Pending query domain model for the pay-then-replay unlock flow
// ABOUTME: A parked query is consumed at most once and expires after a fixed window

package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// PendingQueryTTL is how long a parked query can be replayed
const PendingQueryTTL = 30 * time.Minute

// PendingQuery is a search query parked while the user completes payment
type PendingQuery struct {
	// Token is the unique identifier (UUID) handed to the payment flow
	Token string `json:"token"`

	// Query is the stored search request
	Query SearchQuery `json:"query"`

	// CreatedAt is when the query was parked
	CreatedAt time.Time `json:"createdAt"`

	// ExpiresAt is when the query can no longer be replayed
	ExpiresAt time.Time `json:"expiresAt"`
}

// NewPendingQuery creates a parked query that expires after ttl
func NewPendingQuery(query SearchQuery, ttl time.Duration) (*PendingQuery, error) {
	if ttl <= 0 {
		return nil, errors.New("ttl must be positive")
	}

	now := time.Now()
	return &PendingQuery{
		Token:     uuid.New().String(),
		Query:     query,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}, nil
}

// IsExpired checks if the pending query can no longer be replayed
func (p *PendingQuery) IsExpired() bool {
	return time.Now().After(p.ExpiresAt)
}
