package stats

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/knograph/core"
	"github.com/poiesic/knograph/disambiguate"
	"github.com/poiesic/knograph/storage/badger"
)

func newTestAggregator(t *testing.T) (*Aggregator, *badger.MemoryRepositories) {
	t.Helper()
	repos, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() { repos.Close() })

	aggregator, err := NewAggregator(
		repos.Entities, repos.Relations, repos.Disambiguations,
		repos.Quality, repos.Statistics, slog.Default())
	require.NoError(t, err)
	return aggregator, repos
}

func putEntity(t *testing.T, repos *badger.MemoryRepositories, name string, entityType core.EntityType) core.ID {
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

func TestRollupEmptyStore(t *testing.T) {
	aggregator, _ := newTestAggregator(t)

	row, err := aggregator.Rollup(context.Background(), "2026-08-29")
	require.NoError(t, err)
	assert.Equal(t, 0, row.TotalEntities)
	assert.Equal(t, 0.0, row.AvgQuality)
	assert.Equal(t, 0.0, row.DisambiguationRate)
}

func TestRollupCounts(t *testing.T) {
	aggregator, repos := newTestAggregator(t)
	ctx := context.Background()

	personId := putEntity(t, repos, "张三", core.EntityTypePerson)
	putEntity(t, repos, "李四", core.EntityTypePerson)
	workId := putEntity(t, repos, "流浪地球", core.EntityTypeWork)
	putEntity(t, repos, "金鸡奖", core.EntityTypeEvent)

	relation := &core.Relation{
		FromId: personId, ToId: workId, RelType: "主演",
		Confidence: 0.9, Version: 1,
		CreatedAt: time.Now().UTC(), UpdatedAt: time.Now().UTC(),
	}
	relation.Id = core.IDFromContent(relation.Triple())
	require.NoError(t, repos.Relations.PutRelation(ctx, relation))

	for _, a := range []*core.QualityAssessment{
		{SubjectKind: core.SubjectKindEntity, SubjectId: personId, QualityScore: 0.9, Grade: core.GradeExcellent, Method: core.MethodAuto},
		{SubjectKind: core.SubjectKindEntity, SubjectId: workId, QualityScore: 0.5, Grade: core.GradeFair, Method: core.MethodAuto},
		{SubjectKind: core.SubjectKindRelation, SubjectId: relation.Id, QualityScore: 0.7, Grade: core.GradeFair, Method: core.MethodAuto},
	} {
		require.NoError(t, repos.Quality.PutAssessment(ctx, a))
	}

	for _, r := range []*core.DisambiguationRecord{
		{RawName: "张三丰", CanonicalName: "张三", CanonicalId: personId, Similarity: 0.9, Rule: disambiguate.RuleSimilarityMerge, EntityType: core.EntityTypePerson},
		{RawName: "李四", CanonicalName: "李四", CanonicalId: 2, Similarity: 1.0, Rule: disambiguate.RuleNewEntity, EntityType: core.EntityTypePerson},
	} {
		require.NoError(t, repos.Disambiguations.AppendRecord(ctx, r))
	}

	row, err := aggregator.Rollup(ctx, "2026-08-29")
	require.NoError(t, err)
	assert.Equal(t, 4, row.TotalEntities)
	assert.Equal(t, 1, row.TotalRelations)
	assert.Equal(t, 2, row.PersonCount)
	assert.Equal(t, 1, row.WorkCount)
	assert.Equal(t, 1, row.EventCount)
	assert.InDelta(t, (0.9+0.5+0.7)/3.0, row.AvgQuality, 0.001)
	assert.Equal(t, 1, row.HighQualityEntities)
	assert.InDelta(t, 0.5, row.DisambiguationRate, 0.001)

	// The row is persisted
	stored, err := repos.Statistics.GetDailyStatistics(ctx, "2026-08-29")
	require.NoError(t, err)
	assert.Equal(t, row.TotalEntities, stored.TotalEntities)
}

func TestRollupIsIdempotent(t *testing.T) {
	aggregator, repos := newTestAggregator(t)
	ctx := context.Background()

	_, err := aggregator.Rollup(ctx, "2026-08-29")
	require.NoError(t, err)

	putEntity(t, repos, "张三", core.EntityTypePerson)

	// Second run overwrites with fresh counts
	row, err := aggregator.Rollup(ctx, "2026-08-29")
	require.NoError(t, err)
	assert.Equal(t, 1, row.TotalEntities)

	stored, err := repos.Statistics.GetDailyStatistics(ctx, "2026-08-29")
	require.NoError(t, err)
	assert.Equal(t, 1, stored.TotalEntities)
}

func TestRollupRejectsMalformedDate(t *testing.T) {
	aggregator, _ := newTestAggregator(t)
	_, err := aggregator.Rollup(context.Background(), "29/08/2026")
	assert.Error(t, err)
}

func TestSchedulerValidatesExpression(t *testing.T) {
	aggregator, _ := newTestAggregator(t)

	_, err := NewScheduler(aggregator, WithSchedule("not a cron line"))
	assert.Error(t, err)

	scheduler, err := NewScheduler(aggregator)
	require.NoError(t, err)
	scheduler.Start()
	scheduler.Stop()
}
