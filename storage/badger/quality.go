package badger

import (
	"context"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/knograph/core"
	"github.com/poiesic/knograph/storage"
)

// QualityRepository implements storage.QualityRepository for BadgerDB.
type QualityRepository struct {
	backend *Backend
}

var _ storage.QualityRepository = (*QualityRepository)(nil)

// NewQualityRepository creates a new QualityRepository.
func NewQualityRepository(backend *Backend) (*QualityRepository, error) {
	return &QualityRepository{
		backend: backend,
	}, nil
}

// Close releases resources. QualityRepository has no resources to release.
func (r *QualityRepository) Close() error {
	return nil
}

// PutAssessment stores an assessment, replacing any previous one for the subject.
func (r *QualityRepository) PutAssessment(ctx context.Context, assessment *core.QualityAssessment) error {
	if !core.IsValidScore(assessment.QualityScore) {
		return core.ErrScoreOutOfRange
	}
	return r.backend.WithTx(func(tx *badger.Txn) error {
		if assessment.LastAssessed.IsZero() {
			assessment.LastAssessed = time.Now().UTC()
		}
		key := makeQualityKey(assessment.SubjectKind, assessment.SubjectId)
		value := storage.MarshalQualityAssessment(assessment)
		if err := tx.Set(key, value); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// GetAssessment retrieves the current assessment of a subject.
func (r *QualityRepository) GetAssessment(ctx context.Context, kind core.SubjectKind, id core.ID) (*core.QualityAssessment, error) {
	var result *core.QualityAssessment
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeQualityKey(kind, id))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return storage.ErrNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			var err error
			result, err = storage.UnmarshalQualityAssessment(val)
			return err
		})
	}, false)
	return result, err
}

// GetAllAssessments retrieves every current assessment.
func (r *QualityRepository) GetAllAssessments(ctx context.Context) ([]*core.QualityAssessment, error) {
	var results []*core.QualityAssessment
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		iter := tx.NewIterator(opts)
		defer iter.Close()

		prefix := []byte(qualityPrefix + ":")
		for iter.Seek(prefix); iter.Valid(); iter.Next() {
			item := iter.Item()
			if !hasPrefix(item.Key(), prefix) {
				break
			}

			var assessment *core.QualityAssessment
			err := item.Value(func(val []byte) error {
				var err error
				assessment, err = storage.UnmarshalQualityAssessment(val)
				return err
			})
			if err != nil {
				return err
			}
			if assessment != nil {
				results = append(results, assessment)
			}
		}
		return nil
	}, false)
	return results, err
}
