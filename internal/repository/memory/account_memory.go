// internal/repository/memory/account_memory.go
package memory

import (
	"context"
	"sync"

	"mobivoice/internal/domain"
	"mobivoice/internal/repository"
)

// Store is an in-process SnapshotStore. It backs tests and deployments that
// accept losing state on restart.
type Store struct {
	mu       sync.Mutex
	accounts map[string]*domain.Account
}

// New creates an empty in-memory snapshot store.
func New() *Store {
	return &Store{accounts: make(map[string]*domain.Account)}
}

var _ repository.SnapshotStore = (*Store)(nil)

// Load returns a deep copy of the stored account set.
func (s *Store) Load(ctx context.Context) (map[string]*domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]*domain.Account, len(s.accounts))
	for id, acc := range s.accounts {
		out[id] = acc.Clone()
	}
	return out, nil
}

// Save replaces the stored snapshot with a deep copy of accounts.
func (s *Store) Save(ctx context.Context, accounts map[string]*domain.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, acc := range accounts {
		s.accounts[id] = acc.Clone()
	}
	return nil
}

// Ping always succeeds for the in-memory store.
func (s *Store) Ping(ctx context.Context) error { return nil }

// Close is a no-op.
func (s *Store) Close() error { return nil }
