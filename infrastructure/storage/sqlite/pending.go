// ABOUTME: SQLite store for parked queries awaiting payment
// ABOUTME: Take reads and deletes in one transaction so a token is replayed at most once

package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"kvk-insights-api/core/domain"
	coreerrors "kvk-insights-api/core/errors"
	"kvk-insights-api/infrastructure/sqlitedb"
)

const schema = `
	CREATE TABLE IF NOT EXISTS pending_queries (
		token TEXT PRIMARY KEY,
		payload BLOB NOT NULL,
		expires_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_pending_expires ON pending_queries(expires_at);
`

var (
	insertQuery = sqlitedb.NewQueryBuilder().
			Insert("pending_queries").
			Values([]string{"token", "payload", "expires_at"}, []interface{}{nil, nil, nil}).MustBuild()
	selectQuery = sqlitedb.NewQueryBuilder().
			Select("payload", "expires_at").From("pending_queries").
			Where("token", "=", nil).MustBuild()
	deleteQuery = sqlitedb.NewQueryBuilder().Delete("pending_queries").Where("token", "=", nil).MustBuild()
	purgeQuery  = sqlitedb.NewQueryBuilder().Delete("pending_queries").Where("expires_at", "<=", nil).MustBuild()
)

// PendingStore implements PendingQueryStorage on SQLite
type PendingStore struct {
	db *sql.DB
}

// NewPendingStore opens the store at path, creating the table if needed
func NewPendingStore(ctx context.Context, path string) (*PendingStore, error) {
	db, err := sqlitedb.Open(ctx, path, schema)
	if err != nil {
		return nil, err
	}
	return &PendingStore{db: db}, nil
}

// Save persists a pending query. Tokens are never overwritten.
func (s *PendingStore) Save(ctx context.Context, pending *domain.PendingQuery) error {
	if pending == nil || pending.Token == "" {
		return &coreerrors.ValidationError{Field: "token", Message: "pending query needs a token"}
	}

	payload, err := json.Marshal(pending)
	if err != nil {
		return fmt.Errorf("encode pending query: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, insertQuery, pending.Token, payload, pending.ExpiresAt.UnixMilli()); err != nil {
		return fmt.Errorf("save pending query: %w", err)
	}
	return nil
}

// Take returns the query for token and deletes it. Unknown and expired
// tokens both yield a NotFoundError.
func (s *PendingStore) Take(ctx context.Context, token string) (*domain.PendingQuery, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin take: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var payload []byte
	var expiresAt int64
	err = tx.QueryRowContext(ctx, selectQuery, token).Scan(&payload, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &coreerrors.NotFoundError{Resource: "pending query", ID: token}
	}
	if err != nil {
		return nil, fmt.Errorf("load pending query: %w", err)
	}

	if _, err := tx.ExecContext(ctx, deleteQuery, token); err != nil {
		return nil, fmt.Errorf("delete pending query: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit take: %w", err)
	}

	if time.Now().UnixMilli() >= expiresAt {
		return nil, &coreerrors.NotFoundError{Resource: "pending query", ID: token}
	}

	var pending domain.PendingQuery
	if err := json.Unmarshal(payload, &pending); err != nil {
		return nil, fmt.Errorf("decode pending query: %w", err)
	}
	return &pending, nil
}

// PurgeExpired deletes every expired row
func (s *PendingStore) PurgeExpired(ctx context.Context) (int, error) {
	res, err := s.db.ExecContext(ctx, purgeQuery, time.Now().UnixMilli())
	if err != nil {
		return 0, fmt.Errorf("purge pending queries: %w", err)
	}
	n, err := res.RowsAffected()
	return int(n), err
}

// Close closes the database
func (s *PendingStore) Close() error {
	return s.db.Close()
}
