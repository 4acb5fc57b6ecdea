package graph

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/knograph/core"
	"github.com/poiesic/knograph/storage/badger"
)

func newTestWriter(t *testing.T, opts ...Option) (*Writer, *badger.MemoryRepositories) {
	t.Helper()
	repos, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() { repos.Close() })

	writer, err := NewWriter(repos.Entities, repos.Relations, opts...)
	require.NoError(t, err)
	return writer, repos
}

func personEntity(confidence float64, attrs map[string]string) *core.Entity {
	return &core.Entity{
		Id:         core.IDFromContent("(person,张三)"),
		Type:       core.EntityTypePerson,
		Name:       "张三",
		Attributes: attrs,
		Confidence: confidence,
	}
}

func TestUpsertEntityInsertsAtVersionOne(t *testing.T) {
	writer, _ := newTestWriter(t)

	entity, err := writer.UpsertEntity(context.Background(), personEntity(0.8, nil))
	require.NoError(t, err)
	assert.Equal(t, uint32(1), entity.Version)
	assert.False(t, entity.CreatedAt.IsZero())
	assert.Equal(t, entity.CreatedAt, entity.UpdatedAt)
}

func TestUpsertEntityIncrementsVersionByOne(t *testing.T) {
	writer, _ := newTestWriter(t)
	ctx := context.Background()

	first, err := writer.UpsertEntity(ctx, personEntity(0.8, nil))
	require.NoError(t, err)

	second, err := writer.UpsertEntity(ctx, personEntity(0.6, nil))
	require.NoError(t, err)
	assert.Equal(t, first.Version+1, second.Version)
	assert.Equal(t, first.CreatedAt, second.CreatedAt)
}

func TestUpsertEntityFieldLevelMerge(t *testing.T) {
	writer, _ := newTestWriter(t)
	ctx := context.Background()

	_, err := writer.UpsertEntity(ctx, personEntity(0.8, map[string]string{
		"profession": "演员",
		"birth_date": "1990-01-15",
	}))
	require.NoError(t, err)

	// Lower confidence: only fills gaps, never overwrites
	merged, err := writer.UpsertEntity(ctx, personEntity(0.5, map[string]string{
		"profession":  "导演",
		"nationality": "中国",
	}))
	require.NoError(t, err)
	assert.Equal(t, "演员", merged.Attributes["profession"])
	assert.Equal(t, "中国", merged.Attributes["nationality"])
	assert.Equal(t, "1990-01-15", merged.Attributes["birth_date"])
	assert.Equal(t, 0.8, merged.Confidence)

	// Higher confidence: overwrites conflicting fields
	merged, err = writer.UpsertEntity(ctx, personEntity(0.95, map[string]string{
		"profession": "导演",
	}))
	require.NoError(t, err)
	assert.Equal(t, "导演", merged.Attributes["profession"])
	assert.Equal(t, "1990-01-15", merged.Attributes["birth_date"])
	assert.Equal(t, 0.95, merged.Confidence)
}

func TestUpsertEntityConcurrentVersioning(t *testing.T) {
	writer, repos := newTestWriter(t)
	ctx := context.Background()

	const writers = 20
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := writer.UpsertEntity(ctx, personEntity(0.7, nil))
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	stored, err := repos.Entities.GetEntity(ctx, core.IDFromContent("(person,张三)"))
	require.NoError(t, err)
	assert.Equal(t, uint32(writers), stored.Version)
}

func TestUpsertRelationDeduplicatesByTriple(t *testing.T) {
	writer, repos := newTestWriter(t)
	ctx := context.Background()

	relation := &core.Relation{
		FromId:     core.ID(1),
		ToId:       core.ID(2),
		RelType:    "主演",
		Confidence: 0.7,
		SourceInfo: "first pass",
	}
	first, err := writer.UpsertRelation(ctx, relation)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), first.Version)

	second, err := writer.UpsertRelation(ctx, &core.Relation{
		FromId:     core.ID(1),
		ToId:       core.ID(2),
		RelType:    "主演",
		Confidence: 0.9,
		SourceInfo: "second pass",
	})
	require.NoError(t, err)
	assert.Equal(t, first.Id, second.Id)
	assert.Equal(t, uint32(2), second.Version)
	assert.Equal(t, 0.9, second.Confidence)
	assert.Equal(t, "second pass", second.SourceInfo)

	all, err := repos.Relations.GetAllRelations(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestUpsertRelationToleratesDanglingEndpoints(t *testing.T) {
	writer, _ := newTestWriter(t)

	// Neither endpoint exists in entity storage
	relation, err := writer.UpsertRelation(context.Background(), &core.Relation{
		FromId:     core.ID(111),
		ToId:       core.ID(222),
		RelType:    "导演",
		Confidence: 0.6,
	})
	require.NoError(t, err)
	assert.Equal(t, uint32(1), relation.Version)
}

func TestUpsertRelationLowerConfidenceKeepsSource(t *testing.T) {
	writer, _ := newTestWriter(t)
	ctx := context.Background()

	_, err := writer.UpsertRelation(ctx, &core.Relation{
		FromId: core.ID(1), ToId: core.ID(2), RelType: "出演",
		Confidence: 0.9, SourceInfo: "trusted",
	})
	require.NoError(t, err)

	merged, err := writer.UpsertRelation(ctx, &core.Relation{
		FromId: core.ID(1), ToId: core.ID(2), RelType: "出演",
		Confidence: 0.4, SourceInfo: "weak",
	})
	require.NoError(t, err)
	assert.Equal(t, 0.9, merged.Confidence)
	assert.Equal(t, "trusted", merged.SourceInfo)
}

func TestLockTimeout(t *testing.T) {
	locks := newKeyLocks(1, 50*time.Millisecond)

	release, err := locks.acquire(context.Background(), 1)
	require.NoError(t, err)

	_, err = locks.acquire(context.Background(), 1)
	assert.ErrorIs(t, err, ErrLockTimeout)

	release()
	release2, err := locks.acquire(context.Background(), 1)
	require.NoError(t, err)
	release2()
}

func TestUpsertRetriesAfterLockTimeout(t *testing.T) {
	writer, _ := newTestWriter(t, WithLockStripes(1), WithLockTimeout(50*time.Millisecond))

	release, err := writer.locks.acquire(context.Background(), 1)
	require.NoError(t, err)
	go func() {
		time.Sleep(70 * time.Millisecond)
		release()
	}()

	// First acquire times out while the lock is held; the retry succeeds
	// once it is released.
	stored, err := writer.UpsertEntity(context.Background(), &core.Entity{
		Id:         1,
		Type:       core.EntityTypePerson,
		Name:       "张三",
		Confidence: 0.9,
	})
	require.NoError(t, err)
	assert.Equal(t, uint32(1), stored.Version)
}

func TestLockRespectsContext(t *testing.T) {
	locks := newKeyLocks(1, time.Minute)

	release, err := locks.acquire(context.Background(), 1)
	require.NoError(t, err)
	defer release()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()
	_, err = locks.acquire(ctx, 1)
	assert.ErrorIs(t, err, context.Canceled)
}
