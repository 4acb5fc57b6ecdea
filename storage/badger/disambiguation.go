package badger

import (
	"context"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/knograph/core"
	"github.com/poiesic/knograph/storage"
)

// DisambiguationRepository implements storage.DisambiguationRepository for BadgerDB.
//
// History records are stored under a content-derived id so a replayed
// append is a no-op. The raw-name index is first-write-wins: once a raw
// name resolves to a canonical entity the resolution never changes.
type DisambiguationRepository struct {
	backend *Backend
}

var _ storage.DisambiguationRepository = (*DisambiguationRepository)(nil)

// NewDisambiguationRepository creates a new DisambiguationRepository.
func NewDisambiguationRepository(backend *Backend) (*DisambiguationRepository, error) {
	return &DisambiguationRepository{
		backend: backend,
	}, nil
}

// Close releases resources. DisambiguationRepository has no resources to release.
func (r *DisambiguationRepository) Close() error {
	return nil
}

// AppendRecord appends a disambiguation record to the history.
func (r *DisambiguationRepository) AppendRecord(ctx context.Context, record *core.DisambiguationRecord) error {
	if record.RawName == "" {
		return core.ErrEmptyName
	}
	if err := core.ValidateEntityType(record.EntityType); err != nil {
		return err
	}
	return r.backend.WithTx(func(tx *badger.Txn) error {
		// Id covers the full resolution so a replayed append is a no-op
		// while a conflicting resolution still lands in the history.
		if record.Id == 0 {
			record.Id = core.IDFromContent(record.Tuple() + "->" + record.CanonicalName + "@" + record.Rule)
		}
		if record.CreatedAt.IsZero() {
			record.CreatedAt = time.Now().UTC()
		}

		key := makeDisambRecordKey(record.Id)
		value := storage.MarshalDisambiguationRecord(record)
		if err := tx.Set(key, value); err != nil {
			return err
		}

		// First resolution for a raw name wins; do not overwrite.
		nameKey := makeDisambNameKey(record.RawName, record.EntityType)
		_, err := tx.Get(nameKey)
		if err == badger.ErrKeyNotFound {
			if err := tx.Set(nameKey, storage.MarshalID(record.Id)); err != nil {
				return err
			}
		} else if err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// FindResolution returns the recorded resolution for a raw name and type.
func (r *DisambiguationRepository) FindResolution(ctx context.Context, rawName string, entityType core.EntityType) (*core.DisambiguationRecord, error) {
	var result *core.DisambiguationRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		nameKey := makeDisambNameKey(rawName, entityType)
		item, err := tx.Get(nameKey)
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return storage.ErrNotFound
			}
			return err
		}

		var recordID core.ID
		err = item.Value(func(val []byte) error {
			recordID, err = storage.UnmarshalID(val)
			return err
		})
		if err != nil {
			return err
		}

		recItem, err := tx.Get(makeDisambRecordKey(recordID))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return storage.ErrNotFound
			}
			return err
		}
		return recItem.Value(func(val []byte) error {
			var err error
			result, err = storage.UnmarshalDisambiguationRecord(val)
			return err
		})
	}, false)
	return result, err
}

// GetAllRecords retrieves the full resolution history.
func (r *DisambiguationRepository) GetAllRecords(ctx context.Context) ([]*core.DisambiguationRecord, error) {
	var results []*core.DisambiguationRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		iter := tx.NewIterator(opts)
		defer iter.Close()

		prefix := []byte(disambRecordPrefix + ":")
		for iter.Seek(prefix); iter.Valid(); iter.Next() {
			item := iter.Item()
			if !hasPrefix(item.Key(), prefix) {
				break
			}

			var record *core.DisambiguationRecord
			err := item.Value(func(val []byte) error {
				var err error
				record, err = storage.UnmarshalDisambiguationRecord(val)
				return err
			})
			if err != nil {
				return err
			}
			if record != nil {
				results = append(results, record)
			}
		}
		return nil
	}, false)
	return results, err
}
