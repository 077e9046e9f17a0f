package boltdb

import (
	"context"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/nberthel/formadmin/internal/client/storage"
)

var tokensKey = []byte("current")

// Compile-time check that Storage implements TokenStorage
var _ storage.TokenStorage = (*Storage)(nil)

// SaveTokens stores the token pair, overwriting any previous pair.
func (s *Storage) SaveTokens(ctx context.Context, pair *storage.TokenPair) error {
	if pair == nil {
		return fmt.Errorf("token pair is nil")
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketTokens)
		if bucket == nil {
			return fmt.Errorf("tokens bucket not found")
		}

		data, err := json.Marshal(pair)
		if err != nil {
			return fmt.Errorf("failed to marshal token pair: %w", err)
		}

		if err := bucket.Put(tokensKey, data); err != nil {
			return fmt.Errorf("failed to save token pair: %w", err)
		}

		return nil
	})
}

// GetTokens retrieves the stored token pair.
func (s *Storage) GetTokens(ctx context.Context) (*storage.TokenPair, error) {
	var pair *storage.TokenPair

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketTokens)
		if bucket == nil {
			return fmt.Errorf("tokens bucket not found")
		}

		data := bucket.Get(tokensKey)
		if data == nil {
			return storage.ErrTokensNotFound
		}

		pair = &storage.TokenPair{}
		if err := json.Unmarshal(data, pair); err != nil {
			return fmt.Errorf("failed to unmarshal token pair: %w", err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return pair, nil
}

// ClearTokens removes the stored token pair. Idempotent: clearing an
// empty store succeeds.
func (s *Storage) ClearTokens(ctx context.Context) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketTokens)
		if bucket == nil {
			return fmt.Errorf("tokens bucket not found")
		}

		if err := bucket.Delete(tokensKey); err != nil {
			return fmt.Errorf("failed to delete token pair: %w", err)
		}

		return nil
	})
}
