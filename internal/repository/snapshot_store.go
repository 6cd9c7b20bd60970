// internal/repository/snapshot_store.go
package repository

import (
	"context"

	"mobivoice/internal/domain"
)

// SnapshotStore persists the full account set as a single snapshot keyed by
// user identifier. The ledger saves synchronously after every successful
// mutation and treats a failed save as non-fatal, so the durable copy is
// best-effort and may lag the in-memory state.
type SnapshotStore interface {
	// Load returns every persisted account. An empty map and nil error means
	// no snapshot exists yet.
	Load(ctx context.Context) (map[string]*domain.Account, error)
	// Save writes the complete account set, replacing any previous snapshot
	// for the same user ids.
	Save(ctx context.Context, accounts map[string]*domain.Account) error
	// Ping reports whether the backing storage is reachable.
	Ping(ctx context.Context) error
	// Close releases the underlying resources.
	Close() error
}
