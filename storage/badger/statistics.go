package badger

import (
	"context"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/knograph/core"
	"github.com/poiesic/knograph/storage"
)

// StatisticsRepository implements storage.StatisticsRepository for BadgerDB.
type StatisticsRepository struct {
	backend *Backend
}

var _ storage.StatisticsRepository = (*StatisticsRepository)(nil)

// NewStatisticsRepository creates a new StatisticsRepository.
func NewStatisticsRepository(backend *Backend) (*StatisticsRepository, error) {
	return &StatisticsRepository{
		backend: backend,
	}, nil
}

// Close releases resources. StatisticsRepository has no resources to release.
func (r *StatisticsRepository) Close() error {
	return nil
}

// PutDailyStatistics upserts the statistics row for stats.Date.
func (r *StatisticsRepository) PutDailyStatistics(ctx context.Context, stats *core.DailyStatistics) error {
	if err := core.ValidateStatisticsDate(stats.Date); err != nil {
		return err
	}
	return r.backend.WithTx(func(tx *badger.Txn) error {
		if stats.ComputedAt.IsZero() {
			stats.ComputedAt = time.Now().UTC()
		}
		key := makeStatisticsKey(stats.Date)
		value := storage.MarshalDailyStatistics(stats)
		if err := tx.Set(key, value); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// GetDailyStatistics retrieves the row for a date.
func (r *StatisticsRepository) GetDailyStatistics(ctx context.Context, date string) (*core.DailyStatistics, error) {
	if err := core.ValidateStatisticsDate(date); err != nil {
		return nil, err
	}
	var result *core.DailyStatistics
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeStatisticsKey(date))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return storage.ErrNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			var err error
			result, err = storage.UnmarshalDailyStatistics(val)
			return err
		})
	}, false)
	return result, err
}
