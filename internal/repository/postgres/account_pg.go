// internal/repository/postgres/account_pg.go
package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"

	"mobivoice/internal/domain"
	"mobivoice/internal/repository"
)

// Store implements repository.SnapshotStore for PostgreSQL. Each account is
// stored as one JSONB document keyed by user id, so a save is a set of
// idempotent upserts rather than a relational decomposition of the ledger.
type Store struct {
	db *sqlx.DB
}

var _ repository.SnapshotStore = (*Store)(nil)

// New creates the store and ensures the accounts table exists.
func New(db *sqlx.DB) (*Store, error) {
	schema := `CREATE TABLE IF NOT EXISTS accounts (
        user_id    TEXT PRIMARY KEY,
        snapshot   JSONB NOT NULL,
        updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
    )`
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to ensure accounts table: %w", err)
	}
	return &Store{db: db}, nil
}

type accountRow struct {
	UserID   string `db:"user_id"`
	Snapshot []byte `db:"snapshot"`
}

// Load reads every persisted account snapshot.
func (s *Store) Load(ctx context.Context) (map[string]*domain.Account, error) {
	var rows []accountRow
	query := `SELECT user_id, snapshot FROM accounts`
	if err := s.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to load account snapshots: %w", err)
	}

	accounts := make(map[string]*domain.Account, len(rows))
	for _, row := range rows {
		var acc domain.Account
		if err := json.Unmarshal(row.Snapshot, &acc); err != nil {
			return nil, fmt.Errorf("failed to decode account %q: %w", row.UserID, err)
		}
		accounts[row.UserID] = &acc
	}
	return accounts, nil
}

// Save upserts one row per account inside a single database transaction.
func (s *Store) Save(ctx context.Context, accounts map[string]*domain.Account) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin snapshot transaction: %w", err)
	}
	defer tx.Rollback()

	query := `INSERT INTO accounts (user_id, snapshot, updated_at)
              VALUES ($1, $2, now())
              ON CONFLICT (user_id) DO UPDATE SET snapshot = EXCLUDED.snapshot, updated_at = now()`
	for id, acc := range accounts {
		data, err := json.Marshal(acc)
		if err != nil {
			return fmt.Errorf("failed to encode account %q: %w", id, err)
		}
		if _, err := tx.ExecContext(ctx, query, id, data); err != nil {
			return fmt.Errorf("failed to upsert account %q: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit snapshot transaction: %w", err)
	}
	return nil
}

// Ping verifies the database connection is alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the underlying connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}
