package quality

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/poiesic/knograph/core"
)

func completePerson() *core.Entity {
	return &core.Entity{
		Id:   core.ID(1),
		Type: core.EntityTypePerson,
		Name: "张三",
		Attributes: map[string]string{
			"nationality": "中国",
			"profession":  "演员",
			"birth_date":  "1990-01-15",
		},
		Confidence: 0.9,
		Version:    1,
	}
}

func TestScoreCompletePerson(t *testing.T) {
	scorer := NewScorer()
	assessment := scorer.ScoreEntity(completePerson(), core.TrustTierProvider)

	assert.Equal(t, 1.0, assessment.Completeness)
	assert.Equal(t, 1.0, assessment.Consistency)
	assert.Equal(t, 0.9, assessment.Accuracy)
	assert.InDelta(t, (1.0+1.0+0.9)/3.0, assessment.QualityScore, 0.001)
	assert.Equal(t, core.GradeExcellent, assessment.Grade)
	assert.Equal(t, core.MethodAuto, assessment.Method)
	assert.Empty(t, assessment.Issues)
	assert.False(t, assessment.LastAssessed.IsZero())
}

func TestScoreIncompletePerson(t *testing.T) {
	scorer := NewScorer()
	entity := completePerson()
	entity.Attributes = map[string]string{"profession": "演员"}

	assessment := scorer.ScoreEntity(entity, core.TrustTierProvider)
	assert.InDelta(t, 1.0/3.0, assessment.Completeness, 0.001)
	assert.Len(t, assessment.Suggestions, 2)
}

func TestScoreMalformedDate(t *testing.T) {
	scorer := NewScorer()
	entity := &core.Entity{
		Id:         core.ID(2),
		Type:       core.EntityTypeWork,
		Name:       "流浪地球",
		Attributes: map[string]string{"work_type": "movie", "release_date": "next spring"},
		Confidence: 0.8,
	}

	assessment := scorer.ScoreEntity(entity, core.TrustTierProvider)
	assert.Equal(t, 1.0, assessment.Completeness)
	// name ok, confidence ok, date check fails: 2 of 3
	assert.InDelta(t, 2.0/3.0, assessment.Consistency, 0.001)
	assert.NotEmpty(t, assessment.Issues)
}

func TestDateLikeFormats(t *testing.T) {
	for _, value := range []string{"2019", "2019-02", "2019-02-05", "2019/2/5", "2019年2月5日"} {
		assert.True(t, dateLikePattern.MatchString(value), value)
	}
	for _, value := range []string{"", "unknown", "spring 2019", "19-02-05"} {
		assert.False(t, dateLikePattern.MatchString(value), value)
	}
}

func TestFallbackTierPenalizesAccuracy(t *testing.T) {
	scorer := NewScorer()
	entity := completePerson()

	provider := scorer.ScoreEntity(entity, core.TrustTierProvider)
	fallback := scorer.ScoreEntity(entity, core.TrustTierFallback)

	assert.InDelta(t, provider.Accuracy*0.8, fallback.Accuracy, 0.001)
	assert.Less(t, fallback.QualityScore, provider.QualityScore)
}

func TestScoreRelation(t *testing.T) {
	scorer := NewScorer()
	relation := &core.Relation{
		Id:         core.ID(3),
		FromId:     core.ID(1),
		ToId:       core.ID(2),
		RelType:    "主演",
		Confidence: 0.85,
		SourceInfo: "provider",
	}

	assessment := scorer.ScoreRelation(relation, core.TrustTierProvider)
	assert.Equal(t, core.SubjectKindRelation, assessment.SubjectKind)
	assert.Equal(t, 1.0, assessment.Completeness)
	assert.Equal(t, 1.0, assessment.Consistency)
	assert.Equal(t, 0.85, assessment.Accuracy)
}

func TestScoreSelfReferentialRelation(t *testing.T) {
	scorer := NewScorer()
	relation := &core.Relation{
		Id:         core.ID(4),
		FromId:     core.ID(7),
		ToId:       core.ID(7),
		RelType:    "合作",
		Confidence: 0.6,
	}

	assessment := scorer.ScoreRelation(relation, core.TrustTierProvider)
	// endpoints present, but identical; confidence ok: 2 of 3
	assert.InDelta(t, 2.0/3.0, assessment.Consistency, 0.001)
	// relation type present, source info missing
	assert.Equal(t, 0.5, assessment.Completeness)
}

func TestCustomWeights(t *testing.T) {
	scorer := NewScorer(WithWeights(Weights{Completeness: 0, Consistency: 0, Accuracy: 1}))
	entity := completePerson()
	entity.Attributes = nil // completeness 0 no longer matters

	assessment := scorer.ScoreEntity(entity, core.TrustTierProvider)
	assert.InDelta(t, 0.9, assessment.QualityScore, 0.001)
}

func TestScoresAlwaysInRange(t *testing.T) {
	scorer := NewScorer()
	entities := []*core.Entity{
		completePerson(),
		{Id: 1, Type: core.EntityTypeWork, Name: "", Confidence: 1.5},
		{Id: 2, Type: core.EntityTypeEvent, Confidence: -0.3},
	}
	for _, entity := range entities {
		a := scorer.ScoreEntity(entity, core.TrustTierFallback)
		for _, score := range []float64{a.Completeness, a.Consistency, a.Accuracy, a.QualityScore} {
			assert.GreaterOrEqual(t, score, 0.0)
			assert.LessOrEqual(t, score, 1.0)
		}
	}
}
