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


package gateway

import "time"

// Config holds the gateway's concurrency, retry and timeout settings.
type Config struct {
	// MaxConcurrent is the number of provider calls in flight at once.
	MaxConcurrent int

	// QueueCapacity bounds how many calls may wait for a worker before
	// the gateway refuses new work with ErrOverloaded.
	QueueCapacity int

	// RetryCount is the maximum number of provider attempts per call.
	RetryCount int

	// RetryBaseDelay is the wait before the first retry. Each further
	// retry doubles the wait up to RetryMaxDelay.
	RetryBaseDelay time.Duration

	// RetryMaxDelay caps the backoff wait.
	RetryMaxDelay time.Duration

	// BaseTimeout is the per-attempt timeout for an empty input.
	BaseTimeout time.Duration

	// TimeoutPer1000Chars extends the per-attempt timeout for longer
	// inputs, in steps of 1000 characters.
	TimeoutPer1000Chars time.Duration

	// MaxTimeout caps the per-attempt timeout.
	MaxTimeout time.Duration

	// EnableFallback routes calls to the heuristic extractor when the
	// provider is exhausted or fails permanently.
	EnableFallback bool
}

// DefaultConfig returns the default gateway configuration.
func DefaultConfig() Config {
	return Config{
		MaxConcurrent:       5,
		QueueCapacity:       10,
		RetryCount:          4,
		RetryBaseDelay:      2 * time.Second,
		RetryMaxDelay:       30 * time.Second,
		BaseTimeout:         10 * time.Second,
		TimeoutPer1000Chars: 2 * time.Second,
		MaxTimeout:          60 * time.Second,
		EnableFallback:      true,
	}
}

// Normalize fills zero values with defaults.
func (c *Config) Normalize() {
	def := DefaultConfig()
	if c.MaxConcurrent <= 0 {
		c.MaxConcurrent = def.MaxConcurrent
	}
	if c.QueueCapacity <= 0 {
		c.QueueCapacity = def.QueueCapacity
	}
	if c.RetryCount <= 0 {
		c.RetryCount = def.RetryCount
	}
	if c.RetryBaseDelay <= 0 {
		c.RetryBaseDelay = def.RetryBaseDelay
	}
	if c.RetryMaxDelay <= 0 {
		c.RetryMaxDelay = def.RetryMaxDelay
	}
	if c.BaseTimeout <= 0 {
		c.BaseTimeout = def.BaseTimeout
	}
	if c.TimeoutPer1000Chars <= 0 {
		c.TimeoutPer1000Chars = def.TimeoutPer1000Chars
	}
	if c.MaxTimeout <= 0 {
		c.MaxTimeout = def.MaxTimeout
	}
}

// TimeoutFor returns the per-attempt timeout for an input of textLen
// characters: BaseTimeout plus one TimeoutPer1000Chars step per started
// 1000 characters, capped at MaxTimeout.
func (c *Config) TimeoutFor(textLen int) time.Duration {
	steps := textLen / 1000
	if textLen%1000 != 0 {
		steps++
	}
	timeout := c.BaseTimeout + time.Duration(steps)*c.TimeoutPer1000Chars
	if timeout > c.MaxTimeout {
		timeout = c.MaxTimeout
	}
	return timeout
}
