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


// Package ai provides abstractions for the inference services used in knograph.
//
// This package defines the Extractor interface that turns unstructured text
// into a raw structured extraction payload, along with the wire types both
// implementations produce. It follows the dependency inversion principle:
// the pipeline and gateway depend on the abstraction, never on a concrete
// provider.
//
// # Implementation Packages
//
// The ai package includes three implementation sub-packages:
//
//   - ai/openai: Production implementation using OpenAI-compatible APIs
//   - ai/fallback: Local heuristic extractor used when the provider is down
//   - ai/mock: Test doubles for unit testing without external dependencies
//
// # Constructor Return Type Pattern
//
// Public constructors (openai.NewExtractor, fallback.NewExtractor) return the
// ai.Extractor INTERFACE to enforce abstraction and prevent accidental
// coupling to implementation details:
//
//	extractor, err := openai.NewExtractor(config)  // returns ai.Extractor
//
// Test utility constructors (mock.NewMockExtractor) return CONCRETE types to
// enable test assertions and behavior injection via the mock's public methods
// (CallCount, ExtractFunc, Reset).
//
// # Usage Example
//
//	cfg := ai.NewConfig(ai.WithHost("http://localhost:11434"))
//	extractor, err := openai.NewExtractor(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	raw, err := extractor.Extract(ctx, "张三主演电影《A》", ai.ExtractOptions{})
package ai
