package parse

import (
	"errors"
	"testing"

	"github.com/poiesic/knograph/ai"
	"github.com/poiesic/knograph/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rawResult(payload string) *ai.RawExtraction {
	return &ai.RawExtraction{
		Payload:   payload,
		TrustTier: core.TrustTierProvider,
		Model:     "test",
	}
}

func TestParse_FullPayload(t *testing.T) {
	p := NewParser(0.6)

	records, err := p.Parse(rawResult(`{
		"entities": {
			"persons": [{"name": "张三", "confidence": 0.95, "attributes": {"profession": "演员"}}],
			"works": [{"name": "A", "confidence": 0.9, "attributes": {"work_type": "movie"}}],
			"events": []
		},
		"relations": [{"source": "张三", "target": "A", "type": "主演", "confidence": 0.9}]
	}`))
	require.NoError(t, err)

	require.Len(t, records.Entities, 2)
	assert.Equal(t, "张三", records.Entities[0].Name)
	assert.Equal(t, core.EntityTypePerson, records.Entities[0].Type)
	assert.Equal(t, "演员", records.Entities[0].Attributes["profession"])
	assert.InDelta(t, 0.95, records.Entities[0].Confidence, 0.001)

	assert.Equal(t, core.EntityTypeWork, records.Entities[1].Type)
	assert.Equal(t, "movie", records.Entities[1].Attributes["work_type"])

	require.Len(t, records.Relations, 1)
	assert.Equal(t, "张三", records.Relations[0].SourceName)
	assert.Equal(t, "A", records.Relations[0].TargetName)
	assert.Equal(t, "主演", records.Relations[0].RelType)
	assert.Equal(t, core.TrustTierProvider, records.TrustTier)
}

func TestParse_MissingRelationsContainer(t *testing.T) {
	p := NewParser(0.6)

	records, err := p.Parse(rawResult(`{
		"entities": {"persons": [{"name": "张三"}], "works": [], "events": []}
	}`))
	require.NoError(t, err, "missing relations container must be tolerated")
	assert.Empty(t, records.Relations)
	require.Len(t, records.Entities, 1)
}

func TestParse_MissingEntitiesContainer(t *testing.T) {
	p := NewParser(0.6)

	_, err := p.Parse(rawResult(`{"relations": []}`))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedPayload))
	assert.True(t, errors.Is(err, ErrMissingEntities))
}

func TestParse_NotJSON(t *testing.T) {
	p := NewParser(0.6)

	_, err := p.Parse(rawResult(`I could not extract anything, sorry!`))
	assert.True(t, errors.Is(err, ErrMalformedPayload))
}

func TestParse_CodeFences(t *testing.T) {
	p := NewParser(0.6)

	records, err := p.Parse(rawResult("```json\n" + `{
		"entities": {"persons": [{"name": "张三"}], "works": [], "events": []},
		"relations": []
	}` + "\n```"))
	require.NoError(t, err)
	require.Len(t, records.Entities, 1)
}

func TestParse_DefaultConfidence(t *testing.T) {
	p := NewParser(0.6)

	records, err := p.Parse(rawResult(`{
		"entities": {"persons": [{"name": "张三"}], "works": [], "events": []},
		"relations": []
	}`))
	require.NoError(t, err)
	require.Len(t, records.Entities, 1)
	assert.InDelta(t, 0.6, records.Entities[0].Confidence, 0.001)
}

func TestParse_ConfidenceClamped(t *testing.T) {
	p := NewParser(0.6)

	records, err := p.Parse(rawResult(`{
		"entities": {"persons": [{"name": "张三", "confidence": 1.8}], "works": [], "events": []},
		"relations": [{"source": "a", "target": "b", "type": "knows", "confidence": -2}]
	}`))
	require.NoError(t, err)
	assert.InDelta(t, 1.0, records.Entities[0].Confidence, 0.001)
	assert.InDelta(t, 0.0, records.Relations[0].Confidence, 0.001)
}

func TestParse_SkipsInvalidRecords(t *testing.T) {
	p := NewParser(0.6)

	records, err := p.Parse(rawResult(`{
		"entities": {
			"persons": [{"name": ""}, {"name": "  "}, {"name": "张三"}],
			"works": [],
			"events": []
		},
		"relations": [
			{"source": "", "target": "A", "type": "主演"},
			{"source": "张三", "target": "A", "type": ""}
		]
	}`))
	require.NoError(t, err)
	require.Len(t, records.Entities, 1)
	assert.Empty(t, records.Relations)
}

func TestParse_RepairsUnquotedKeys(t *testing.T) {
	p := NewParser(0.6)

	// Missing the opening quote before "type" — a common local-model glitch.
	records, err := p.Parse(rawResult(`{
		"entities": {"persons": [{"name": "张三"}], "works": [], "events": []},
		"relations": [{"source": "张三", "target": "A", type": "主演"}]
	}`))
	require.NoError(t, err)
	require.Len(t, records.Relations, 1)
	assert.Equal(t, "主演", records.Relations[0].RelType)
}

func TestParse_NilExtraction(t *testing.T) {
	p := NewParser(0.6)

	_, err := p.Parse(nil)
	assert.True(t, errors.Is(err, ErrMalformedPayload))
}
