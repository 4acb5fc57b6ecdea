package disambiguate

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/knograph/cache"
	"github.com/poiesic/knograph/core"
	"github.com/poiesic/knograph/storage/badger"
)

func newTestDisambiguator(t *testing.T, opts ...Option) (*Disambiguator, *badger.MemoryRepositories) {
	t.Helper()
	repos, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() { repos.Close() })

	d, err := NewDisambiguator(context.Background(), repos.Entities, repos.Disambiguations, opts...)
	require.NoError(t, err)
	return d, repos
}

func seedEntity(t *testing.T, repos *badger.MemoryRepositories, name string, entityType core.EntityType) core.ID {
	t.Helper()
	now := time.Now().UTC()
	entity := &core.Entity{
		Id:         core.IDFromContent("(" + entityType.String() + "," + name + ")"),
		Type:       entityType,
		Name:       name,
		Confidence: 0.9,
		Version:    1,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	require.NoError(t, repos.Entities.PutEntity(context.Background(), entity))
	return entity.Id
}

func TestStringSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{"identical", "张三", "张三", 1.0},
		{"case insensitive", "Nolan", "nolan", 1.0},
		{"trimmed", " 张三 ", "张三", 1.0},
		{"both empty", "", "", 1.0},
		{"one empty", "张三", "", 0.0},
		{"disjoint", "ab", "xy", 0.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, stringSimilarity(tt.a, tt.b), 0.001)
		})
	}

	// One edit over four runes
	assert.InDelta(t, 0.75, stringSimilarity("张三丰啊", "张三丰呀"), 0.001)
}

func TestResolveNewEntityMintsIdentity(t *testing.T) {
	d, _ := newTestDisambiguator(t)

	record, err := d.Resolve(context.Background(), "张三", core.EntityTypePerson, "some text")
	require.NoError(t, err)
	assert.Equal(t, RuleNewEntity, record.Rule)
	assert.Equal(t, "张三", record.CanonicalName)
	assert.Equal(t, 1.0, record.Similarity)
	assert.NotZero(t, record.CanonicalId)
}

func TestResolveMergesSimilarName(t *testing.T) {
	d, repos := newTestDisambiguator(t, WithThreshold(0.7))
	canonicalId := seedEntity(t, repos, "Christopher Nolan", core.EntityTypePerson)

	record, err := d.Resolve(context.Background(), "Christopher Nolam", core.EntityTypePerson, "")
	require.NoError(t, err)
	assert.Equal(t, RuleSimilarityMerge, record.Rule)
	assert.Equal(t, "Christopher Nolan", record.CanonicalName)
	assert.Equal(t, canonicalId, record.CanonicalId)
	assert.Greater(t, record.Similarity, 0.9)
}

func TestResolveBelowThresholdMintsNew(t *testing.T) {
	d, repos := newTestDisambiguator(t)
	seedEntity(t, repos, "张三", core.EntityTypePerson)

	record, err := d.Resolve(context.Background(), "王五", core.EntityTypePerson, "")
	require.NoError(t, err)
	assert.Equal(t, RuleNewEntity, record.Rule)
	assert.Equal(t, "王五", record.CanonicalName)
}

func TestResolveIsIdempotent(t *testing.T) {
	d, repos := newTestDisambiguator(t)

	first, err := d.Resolve(context.Background(), "张三丰", core.EntityTypePerson, "")
	require.NoError(t, err)

	second, err := d.Resolve(context.Background(), "张三丰", core.EntityTypePerson, "different context")
	require.NoError(t, err)
	assert.Equal(t, first.CanonicalId, second.CanonicalId)
	assert.Equal(t, first.Rule, second.Rule)

	// Only one history record was appended
	all, err := repos.Disambiguations.GetAllRecords(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestResolveScopedByType(t *testing.T) {
	d, repos := newTestDisambiguator(t)
	personId := seedEntity(t, repos, "流浪地球", core.EntityTypeWork)

	record, err := d.Resolve(context.Background(), "流浪地球", core.EntityTypePerson, "")
	require.NoError(t, err)
	// Same name as the work, but persons index is empty: new identity
	assert.Equal(t, RuleNewEntity, record.Rule)
	assert.NotEqual(t, personId, record.CanonicalId)
}

func TestResolveSurvivesRestart(t *testing.T) {
	repos, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	defer repos.Close()

	ctx := context.Background()
	d1, err := NewDisambiguator(ctx, repos.Entities, repos.Disambiguations)
	require.NoError(t, err)
	first, err := d1.Resolve(ctx, "小李", core.EntityTypePerson, "")
	require.NoError(t, err)

	// A fresh disambiguator over the same storage resolves identically
	d2, err := NewDisambiguator(ctx, repos.Entities, repos.Disambiguations)
	require.NoError(t, err)
	second, err := d2.Resolve(ctx, "小李", core.EntityTypePerson, "")
	require.NoError(t, err)
	assert.Equal(t, first.CanonicalId, second.CanonicalId)
}

func TestResolveUsesSubCache(t *testing.T) {
	tiered, err := cache.NewTieredCache(nil)
	require.NoError(t, err)
	defer tiered.Close()

	d, repos := newTestDisambiguator(t, WithCache(tiered))

	record, err := d.Resolve(context.Background(), "张三", core.EntityTypePerson, "")
	require.NoError(t, err)

	cached, found := tiered.GetCanonical("张三", core.EntityTypePerson)
	require.True(t, found)
	assert.Equal(t, record.CanonicalId, cached.CanonicalId)

	// Repository resolution is also in place
	stored, err := repos.Disambiguations.FindResolution(context.Background(), "张三", core.EntityTypePerson)
	require.NoError(t, err)
	assert.Equal(t, record.CanonicalId, stored.CanonicalId)
}

func TestResolveRejectsEmptyName(t *testing.T) {
	d, _ := newTestDisambiguator(t)
	_, err := d.Resolve(context.Background(), "", core.EntityTypePerson, "")
	assert.ErrorIs(t, err, core.ErrEmptyName)
}
