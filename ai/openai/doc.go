// Package openai implements the ai.Extractor interface using
// OpenAI-compatible chat completion APIs (OpenAI, Ollama, LocalAI, vLLM).
//
// The extractor asks the model for JSON-mode output that follows a fixed
// schema; the raw payload is returned untouched and validated by the parse
// package, so malformed model output never fails at this layer.
package openai
