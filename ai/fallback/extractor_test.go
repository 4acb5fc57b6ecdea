package fallback

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/poiesic/knograph/ai"
	"github.com/poiesic/knograph/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestExtractor(t *testing.T) *Extractor {
	t.Helper()
	e, err := newExtractor(ai.NewConfig())
	require.NoError(t, err)
	return e
}

func decodePayload(t *testing.T, raw *ai.RawExtraction) *ai.Payload {
	t.Helper()
	var payload ai.Payload
	require.NoError(t, json.Unmarshal([]byte(raw.Payload), &payload))
	require.NotNil(t, payload.Entities)
	return &payload
}

func TestExtract_CJKStarringPattern(t *testing.T) {
	e := newTestExtractor(t)

	raw, err := e.Extract(context.Background(), "张三主演电影《A》", ai.ExtractOptions{})
	require.NoError(t, err)
	assert.Equal(t, core.TrustTierFallback, raw.TrustTier)
	assert.Equal(t, "fallback", raw.Model)

	payload := decodePayload(t, raw)
	require.Len(t, payload.Entities.Persons, 1)
	assert.Equal(t, "张三", payload.Entities.Persons[0].Name)
	require.Len(t, payload.Entities.Works, 1)
	assert.Equal(t, "A", payload.Entities.Works[0].Name)

	require.Len(t, payload.Relations, 1)
	assert.Equal(t, "张三", payload.Relations[0].Source)
	assert.Equal(t, "A", payload.Relations[0].Target)
	assert.Equal(t, "主演", payload.Relations[0].Type)
}

func TestExtract_LatinNames(t *testing.T) {
	e := newTestExtractor(t)

	raw, err := e.Extract(context.Background(), `Christopher Nolan directed 《Inception》`, ai.ExtractOptions{})
	require.NoError(t, err)

	payload := decodePayload(t, raw)
	require.Len(t, payload.Entities.Persons, 1)
	assert.Equal(t, "Christopher Nolan", payload.Entities.Persons[0].Name)
	require.Len(t, payload.Entities.Works, 1)
	assert.Equal(t, "Inception", payload.Entities.Works[0].Name)
	require.Len(t, payload.Relations, 1)
	assert.Equal(t, "directed", payload.Relations[0].Type)
}

func TestExtract_EmptyText(t *testing.T) {
	e := newTestExtractor(t)

	raw, err := e.Extract(context.Background(), "no entities here", ai.ExtractOptions{})
	require.NoError(t, err)

	payload := decodePayload(t, raw)
	assert.Empty(t, payload.Entities.Persons)
	assert.Empty(t, payload.Entities.Works)
	assert.Empty(t, payload.Entities.Events)
	assert.Empty(t, payload.Relations)
}

func TestExtract_ConfidenceCapped(t *testing.T) {
	e, err := newExtractor(ai.NewConfig(ai.WithFallbackConfidence(0.25)))
	require.NoError(t, err)

	raw, err := e.Extract(context.Background(), "张三主演电影《A》", ai.ExtractOptions{})
	require.NoError(t, err)

	payload := decodePayload(t, raw)
	for _, p := range payload.Entities.Persons {
		require.NotNil(t, p.Confidence)
		assert.InDelta(t, 0.25, *p.Confidence, 0.001)
	}
	for _, r := range payload.Relations {
		require.NotNil(t, r.Confidence)
		assert.InDelta(t, 0.25, *r.Confidence, 0.001)
	}
}

func TestExtract_EventHint(t *testing.T) {
	e := newTestExtractor(t)

	raw, err := e.Extract(context.Background(), "张三出席金鸡奖颁奖礼", ai.ExtractOptions{})
	require.NoError(t, err)

	payload := decodePayload(t, raw)
	require.Len(t, payload.Entities.Events, 1)
	assert.Contains(t, payload.Entities.Events[0].Name, "颁奖礼")
}
