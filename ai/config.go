// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package ai

import (
	"errors"
	"strings"
)

// Config holds configuration for the inference provider.
type Config struct {
	// Host is the base URL for the OpenAI-compatible extraction API.
	// Example: "http://localhost:11434/v1" for a local server
	Host string

	// Model is the model identifier to use for entity extraction.
	// Example: "qwen2.5:3b", "gpt-4o-mini"
	Model string

	// Token is the API token. Use "none" for local services that don't
	// require authentication.
	Token string

	// DefaultConfidence is assigned to extracted records whose confidence
	// the provider did not report. Must lie in [0,1].
	// Default: 0.6
	DefaultConfidence float64

	// FallbackConfidence caps the confidence of records produced by the
	// local heuristic fallback extractor. Must lie in [0,1].
	// Default: 0.3
	FallbackConfidence float64
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithHost sets the provider host URL.
func WithHost(host string) ConfigOption {
	return func(c *Config) {
		c.Host = host
	}
}

// WithModel sets the extraction model identifier.
func WithModel(model string) ConfigOption {
	return func(c *Config) {
		c.Model = model
	}
}

// WithToken sets the API token.
func WithToken(token string) ConfigOption {
	return func(c *Config) {
		c.Token = token
	}
}

// WithDefaultConfidence sets the confidence assigned to records without a
// provider-reported confidence.
func WithDefaultConfidence(confidence float64) ConfigOption {
	return func(c *Config) {
		c.DefaultConfidence = confidence
	}
}

// WithFallbackConfidence sets the confidence cap for fallback results.
func WithFallbackConfidence(confidence float64) ConfigOption {
	return func(c *Config) {
		c.FallbackConfidence = confidence
	}
}

// DefaultConfig returns a Config with sensible defaults for local
// OpenAI-compatible services.
func DefaultConfig() *Config {
	return &Config{
		Host:               "http://localhost:11434/v1",
		Model:              "qwen2.5:3b",
		Token:              "none",
		DefaultConfidence:  0.6,
		FallbackConfidence: 0.3,
	}
}

// NewConfig creates a Config with the default values and applies the provided
// options. This is the recommended way to create a Config with custom settings.
//
// Example:
//
//	cfg := ai.NewConfig(
//	    ai.WithHost("http://localhost:11434"),
//	    ai.WithModel("gpt-4o-mini"),
//	)
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize ensures the configuration is in a canonical form.
// It automatically adds the /v1 suffix to the host if missing, which is
// required by most OpenAI-compatible APIs (Ollama, LocalAI, vLLM, etc).
func (c *Config) Normalize() {
	if c.Host != "" && !strings.HasSuffix(c.Host, "/v1") {
		c.Host = strings.TrimSuffix(c.Host, "/")
		c.Host = c.Host + "/v1"
	}
	if c.Token == "" {
		c.Token = "none"
	}
}

// Validate checks that the configuration is valid and complete.
// It automatically normalizes the configuration before validation.
func (c *Config) Validate() error {
	c.Normalize()

	if c.Host == "" {
		return errors.New("ai config: Host is required")
	}
	if c.Model == "" {
		return errors.New("ai config: Model is required")
	}
	if c.DefaultConfidence < 0 || c.DefaultConfidence > 1 {
		return errors.New("ai config: DefaultConfidence must be between 0 and 1")
	}
	if c.FallbackConfidence < 0 || c.FallbackConfidence > 1 {
		return errors.New("ai config: FallbackConfidence must be between 0 and 1")
	}
	return nil
}
