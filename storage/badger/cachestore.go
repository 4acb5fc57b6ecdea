package badger

import (
	"context"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/knograph/storage"
)

// CacheStore implements storage.CacheStore for BadgerDB.
// Entries carry a badger TTL so expiry needs no sweeper.
type CacheStore struct {
	backend *Backend
}

var _ storage.CacheStore = (*CacheStore)(nil)

// NewCacheStore creates a new CacheStore.
func NewCacheStore(backend *Backend) (*CacheStore, error) {
	return &CacheStore{
		backend: backend,
	}, nil
}

// SetCached stores a serialized extraction with a time-to-live.
func (s *CacheStore) SetCached(ctx context.Context, fingerprint uint64, value []byte, ttl time.Duration) error {
	entry := badger.NewEntry(makeCacheKey(fingerprint), value)
	if ttl > 0 {
		entry = entry.WithTTL(ttl)
	}
	return s.backend.SetEntry(entry)
}

// GetCached retrieves a serialized extraction.
func (s *CacheStore) GetCached(ctx context.Context, fingerprint uint64) ([]byte, error) {
	var result []byte
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeCacheKey(fingerprint))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return storage.ErrNotFound
			}
			return err
		}
		result, err = item.ValueCopy(nil)
		return err
	}, false)
	return result, err
}
