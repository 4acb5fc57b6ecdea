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


package openai

import (
	"context"
	"log/slog"

	"github.com/poiesic/knograph/ai"
	"github.com/poiesic/knograph/core"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// Extractor implements ai.Extractor using OpenAI-compatible chat APIs.
type Extractor struct {
	client llms.Model
	model  string
	logger *slog.Logger
}

// newExtractor is an internal constructor that returns the concrete type.
func newExtractor(config *ai.Config) (*Extractor, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.Host),
		openai.WithToken(config.Token),
		openai.WithModel(config.Model),
	)
	if err != nil {
		return nil, err
	}

	return &Extractor{
		client: client,
		model:  config.Model,
		logger: slog.Default().With("component", "openai-extractor"),
	}, nil
}

// NewExtractor creates a new entity extractor using the provided configuration.
//
// Returns ai.Extractor interface to enforce abstraction.
func NewExtractor(config *ai.Config) (ai.Extractor, error) {
	return newExtractor(config)
}

// Extract sends the text to the provider and returns its raw structured
// payload. The payload is not validated here; the parse package is the
// single place that turns provider output into typed records.
func (e *Extractor) Extract(ctx context.Context, text string, opts ai.ExtractOptions) (*ai.RawExtraction, error) {
	opts.Normalize()

	if opts.MaskSensitive {
		text = MaskSensitive(text)
	}
	text = scrubString(text)

	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(buildSystemPrompt(opts.Mode)),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(text),
			},
		},
	}

	response, err := e.client.GenerateContent(ctx, content, llms.WithTemperature(0.0), llms.WithJSONMode())
	if err != nil {
		e.logger.Error("failed to generate content", "mode", opts.Mode.String(), "err", err)
		return nil, err
	}

	if len(response.Choices) < 1 {
		e.logger.Debug("no choices returned from model")
		return &ai.RawExtraction{
			Payload:   `{"entities":{"persons":[],"works":[],"events":[]},"relations":[]}`,
			TrustTier: core.TrustTierProvider,
			Model:     e.model,
		}, nil
	}

	e.logger.Debug("extraction payload received",
		"mode", opts.Mode.String(),
		"bytes", len(response.Choices[0].Content))

	return &ai.RawExtraction{
		Payload:   response.Choices[0].Content,
		TrustTier: core.TrustTierProvider,
		Model:     e.model,
	}, nil
}
