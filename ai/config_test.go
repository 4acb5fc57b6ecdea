package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "http://localhost:11434/v1", cfg.Host)
	assert.NotEmpty(t, cfg.Model)
	assert.Equal(t, "none", cfg.Token)
	assert.InDelta(t, 0.6, cfg.DefaultConfidence, 0.001)
	assert.InDelta(t, 0.3, cfg.FallbackConfidence, 0.001)
}

func TestNewConfig_Options(t *testing.T) {
	cfg := NewConfig(
		WithHost("http://example.com:9100"),
		WithModel("gpt-4o-mini"),
		WithToken("secret"),
		WithDefaultConfidence(0.7),
		WithFallbackConfidence(0.2),
	)

	require.NoError(t, cfg.Validate())
	assert.Equal(t, "http://example.com:9100/v1", cfg.Host)
	assert.Equal(t, "gpt-4o-mini", cfg.Model)
	assert.Equal(t, "secret", cfg.Token)
	assert.InDelta(t, 0.7, cfg.DefaultConfidence, 0.001)
	assert.InDelta(t, 0.2, cfg.FallbackConfidence, 0.001)
}

func TestConfig_Normalize(t *testing.T) {
	tests := []struct {
		name string
		host string
		want string
	}{
		{"adds v1 suffix", "http://localhost:11434", "http://localhost:11434/v1"},
		{"strips trailing slash", "http://localhost:11434/", "http://localhost:11434/v1"},
		{"keeps existing v1", "http://localhost:11434/v1", "http://localhost:11434/v1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig(WithHost(tt.host))
			cfg.Normalize()
			assert.Equal(t, tt.want, cfg.Host)
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Run("missing host", func(t *testing.T) {
		cfg := NewConfig()
		cfg.Host = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("missing model", func(t *testing.T) {
		cfg := NewConfig()
		cfg.Model = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("confidence out of range", func(t *testing.T) {
		cfg := NewConfig(WithDefaultConfidence(1.2))
		assert.Error(t, cfg.Validate())

		cfg = NewConfig(WithFallbackConfidence(-0.1))
		assert.Error(t, cfg.Validate())
	})

	t.Run("empty token normalized", func(t *testing.T) {
		cfg := NewConfig(WithToken(""))
		require.NoError(t, cfg.Validate())
		assert.Equal(t, "none", cfg.Token)
	})
}

func TestExtractOptions_Normalize(t *testing.T) {
	opts := ExtractOptions{}
	opts.Normalize()

	assert.Equal(t, ModeGeneral, opts.Mode)
	assert.Equal(t, "entities,relations", opts.Types)

	social := ExtractOptions{Mode: ModeSocial, Types: "relations"}
	social.Normalize()
	assert.Equal(t, ModeSocial, social.Mode)
	assert.Equal(t, "relations", social.Types)
}
