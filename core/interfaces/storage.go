// ABOUTME: Storage interfaces for persisting domain entities
// ABOUTME: Defines contracts for data persistence operations

package interfaces

import (
	"context"

	"kvk-insights-api/core/domain"
)

// PendingQueryStorage defines the interface for parked query persistence
type PendingQueryStorage interface {
	// Save persists a pending query
	Save(ctx context.Context, pending *domain.PendingQuery) error

	// Take retrieves and removes a pending query in one step.
	// Returns a NotFoundError when the token is unknown.
	Take(ctx context.Context, token string) (*domain.PendingQuery, error)

	// PurgeExpired removes queries whose expiry has passed
	PurgeExpired(ctx context.Context) (int, error)
}
