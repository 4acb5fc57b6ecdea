package mock

import (
	"context"
	"sync"

	"github.com/poiesic/knograph/ai"
	"github.com/poiesic/knograph/core"
)

// MockExtractor is a test double for ai.Extractor.
// It allows custom behavior injection via function fields.
type MockExtractor struct {
	// ExtractFunc is called by Extract if set.
	// If nil, returns a fixed single-person payload.
	ExtractFunc func(ctx context.Context, text string, opts ai.ExtractOptions) (*ai.RawExtraction, error)

	mu        sync.Mutex
	callCount int
}

// NewMockExtractor creates a mock extractor with default behavior.
// Note: Returns concrete type to allow test assertions.
func NewMockExtractor() *MockExtractor {
	return &MockExtractor{}
}

// DefaultPayload is the canned payload returned by the default behavior.
const DefaultPayload = `{
  "entities": {
    "persons": [{"name": "张三", "confidence": 0.9, "attributes": {"profession": "演员"}}],
    "works": [{"name": "A", "confidence": 0.85, "attributes": {"work_type": "movie"}}],
    "events": []
  },
  "relations": [{"source": "张三", "target": "A", "type": "主演", "confidence": 0.9}]
}`

// Extract returns the canned payload or delegates to ExtractFunc.
func (m *MockExtractor) Extract(ctx context.Context, text string, opts ai.ExtractOptions) (*ai.RawExtraction, error) {
	m.mu.Lock()
	m.callCount++
	m.mu.Unlock()

	if m.ExtractFunc != nil {
		return m.ExtractFunc(ctx, text, opts)
	}

	return &ai.RawExtraction{
		Payload:   DefaultPayload,
		TrustTier: core.TrustTierProvider,
		Model:     "mock",
	}, nil
}

// CallCount returns the number of times Extract was called.
func (m *MockExtractor) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// Reset clears the call count and custom functions.
func (m *MockExtractor) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCount = 0
	m.ExtractFunc = nil
}
