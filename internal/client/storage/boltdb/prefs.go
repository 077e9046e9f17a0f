package boltdb

import (
	"context"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/nberthel/formadmin/internal/client/storage"
)

var themeKey = []byte("theme")

// Compile-time check that Storage implements PrefsStorage
var _ storage.PrefsStorage = (*Storage)(nil)

// SaveTheme stores the UI theme preference.
func (s *Storage) SaveTheme(ctx context.Context, theme string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketPrefs)
		if bucket == nil {
			return fmt.Errorf("prefs bucket not found")
		}

		if err := bucket.Put(themeKey, []byte(theme)); err != nil {
			return fmt.Errorf("failed to save theme: %w", err)
		}

		return nil
	})
}

// GetTheme returns the stored theme preference.
func (s *Storage) GetTheme(ctx context.Context) (string, error) {
	var theme string

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketPrefs)
		if bucket == nil {
			return fmt.Errorf("prefs bucket not found")
		}

		data := bucket.Get(themeKey)
		if data == nil {
			return storage.ErrPrefNotFound
		}

		theme = string(data)
		return nil
	})

	if err != nil {
		return "", err
	}

	return theme, nil
}
