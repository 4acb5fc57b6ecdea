package badger

import (
	"context"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/knograph/core"
	"github.com/poiesic/knograph/storage"
)

// RelationRepository implements storage.RelationRepository for BadgerDB.
type RelationRepository struct {
	backend *Backend
}

var _ storage.RelationRepository = (*RelationRepository)(nil)

// NewRelationRepository creates a new RelationRepository.
func NewRelationRepository(backend *Backend) (*RelationRepository, error) {
	return &RelationRepository{
		backend: backend,
	}, nil
}

// Close releases resources. RelationRepository has no resources to release.
func (r *RelationRepository) Close() error {
	return nil
}

// PutRelation stores a relation and maintains the triple index.
func (r *RelationRepository) PutRelation(ctx context.Context, relation *core.Relation) error {
	if err := core.ValidateRelation(relation); err != nil {
		return err
	}
	return r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeRelationKey(relation.Id)
		value := storage.MarshalRelation(relation)
		if err := tx.Set(key, value); err != nil {
			return err
		}

		tripleKey := makeRelationTripleKey(relation.FromId, relation.ToId, relation.RelType)
		if err := tx.Set(tripleKey, storage.MarshalID(relation.Id)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// GetRelation retrieves a single relation by ID.
func (r *RelationRepository) GetRelation(ctx context.Context, id core.ID) (*core.Relation, error) {
	var result *core.Relation
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeRelationKey(id)
		var err error
		result, err = readRelation(tx, key)
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// FindRelationByTriple finds a relation by its (from, to, type) triple.
func (r *RelationRepository) FindRelationByTriple(ctx context.Context, fromId, toId core.ID, relType string) (*core.Relation, error) {
	var result *core.Relation
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		tripleKey := makeRelationTripleKey(fromId, toId, relType)
		item, err := tx.Get(tripleKey)
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return storage.ErrNotFound
			}
			return err
		}

		var relationID core.ID
		err = item.Value(func(val []byte) error {
			relationID, err = storage.UnmarshalID(val)
			return err
		})
		if err != nil {
			return err
		}

		result, err = readRelation(tx, makeRelationKey(relationID))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// GetAllRelations retrieves all relations from storage.
func (r *RelationRepository) GetAllRelations(ctx context.Context) ([]*core.Relation, error) {
	var results []*core.Relation
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		iter := tx.NewIterator(opts)
		defer iter.Close()

		prefix := []byte(relationPrefix + ":")
		for iter.Seek(prefix); iter.Valid(); iter.Next() {
			item := iter.Item()
			if !hasPrefix(item.Key(), prefix) {
				break
			}

			var relation *core.Relation
			err := item.Value(func(val []byte) error {
				var err error
				relation, err = storage.UnmarshalRelation(val)
				return err
			})
			if err != nil {
				return err
			}
			if relation != nil {
				results = append(results, relation)
			}
		}
		return nil
	}, false)
	return results, err
}

// readRelation reads a relation from the transaction.
func readRelation(tx *badger.Txn, key []byte) (*core.Relation, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var relation *core.Relation
	err = item.Value(func(val []byte) error {
		var err error
		relation, err = storage.UnmarshalRelation(val)
		return err
	})
	return relation, err
}
