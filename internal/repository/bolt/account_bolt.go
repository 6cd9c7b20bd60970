// internal/repository/bolt/account_bolt.go

// Package bolt provides a BoltDB-backed SnapshotStore. BoltDB is an embedded
// key/value store keeping all data in a single file, so the default
// deployment needs no external database process.
package bolt

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	bolt "github.com/boltdb/bolt"

	"mobivoice/internal/domain"
	"mobivoice/internal/repository"
)

const bucketName = "accounts"

// Store wraps a BoltDB database and persists one JSON document per account,
// keyed by user identifier.
type Store struct {
	db *bolt.DB
}

var _ repository.SnapshotStore = (*Store)(nil)

// New opens (or creates) a BoltDB database at the given path and ensures the
// accounts bucket exists.
func New(path string) (*Store, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt database at %s: %w", path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create accounts bucket: %w", err)
	}

	return &Store{db: db}, nil
}

// Load reads every persisted account from the accounts bucket.
func (s *Store) Load(ctx context.Context) (map[string]*domain.Account, error) {
	accounts := make(map[string]*domain.Account)

	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))
		return b.ForEach(func(k, v []byte) error {
			var acc domain.Account
			if err := json.Unmarshal(v, &acc); err != nil {
				return fmt.Errorf("failed to decode account %q: %w", string(k), err)
			}
			accounts[string(k)] = &acc
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return accounts, nil
}

// Save writes every account as one JSON document in a single bolt transaction.
func (s *Store) Save(ctx context.Context, accounts map[string]*domain.Account) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))
		for id, acc := range accounts {
			data, err := json.Marshal(acc)
			if err != nil {
				return fmt.Errorf("failed to encode account %q: %w", id, err)
			}
			if err := b.Put([]byte(id), data); err != nil {
				return fmt.Errorf("failed to persist account %q: %w", id, err)
			}
		}
		return nil
	})
}

// Ping verifies the database file is still usable by opening a read
// transaction.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.View(func(tx *bolt.Tx) error {
		if tx.Bucket([]byte(bucketName)) == nil {
			return fmt.Errorf("accounts bucket missing")
		}
		return nil
	})
}

// Close closes the underlying database file.
func (s *Store) Close() error {
	return s.db.Close()
}
