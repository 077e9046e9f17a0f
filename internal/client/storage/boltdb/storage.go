package boltdb

import (
	"context"
	"fmt"

	"go.etcd.io/bbolt"
)

var (
	// BoltDB bucket names
	bucketTokens = []byte("tokens")
	bucketPrefs  = []byte("prefs")
)

// Storage is the BoltDB-backed client storage. It holds the persisted
// token pair and local preferences in one file.
type Storage struct {
	db *bbolt.DB
}

// New opens (or creates) the BoltDB file at dbPath and makes sure all
// buckets exist.
func New(ctx context.Context, dbPath string) (*Storage, error) {
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open boltdb: %w", err)
	}

	storage := &Storage{db: db}

	if err := storage.initBuckets(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize buckets: %w", err)
	}

	return storage, nil
}

// Close closes the database connection
func (s *Storage) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Storage) initBuckets() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketTokens); err != nil {
			return fmt.Errorf("failed to create tokens bucket: %w", err)
		}
		if _, err := tx.CreateBucketIfNotExists(bucketPrefs); err != nil {
			return fmt.Errorf("failed to create prefs bucket: %w", err)
		}
		return nil
	})
}
