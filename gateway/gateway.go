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

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/knograph/ai"
)

// Gateway funnels extraction calls through a bounded worker pool with
// per-attempt timeouts, exponential backoff and an optional heuristic
// fallback. When the pool and its wait queue are full, new calls fail
// fast with ErrOverloaded instead of piling up.
type Gateway struct {
	extractor ai.Extractor
	fallback  ai.Extractor
	pool      *ants.Pool
	cfg       Config
	sink      MetricsSink
	logger    *slog.Logger
}

// Option configures a Gateway.
type Option func(*Gateway) error

// WithConfig replaces the default configuration.
func WithConfig(cfg Config) Option {
	return func(g *Gateway) error {
		cfg.Normalize()
		g.cfg = cfg
		return nil
	}
}

// WithFallback sets the heuristic extractor used when the provider is
// exhausted. Ignored unless the configuration enables fallback.
func WithFallback(fallback ai.Extractor) Option {
	return func(g *Gateway) error {
		g.fallback = fallback
		return nil
	}
}

// WithMetricsSink sets the observer for call lifecycle events.
// Default is a no-op sink.
func WithMetricsSink(sink MetricsSink) Option {
	return func(g *Gateway) error {
		if sink == nil {
			sink = &noopSink{}
		}
		g.sink = sink
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(g *Gateway) error {
		if logger == nil {
			logger = slog.Default()
		}
		g.logger = logger.With("component", "gateway")
		return nil
	}
}

// NewGateway creates a gateway around the given primary extractor.
func NewGateway(extractor ai.Extractor, opts ...Option) (*Gateway, error) {
	if extractor == nil {
		return nil, ErrExtractorRequired
	}

	g := &Gateway{
		extractor: extractor,
		cfg:       DefaultConfig(),
		sink:      &noopSink{},
		logger:    slog.Default().With("component", "gateway"),
	}

	for _, opt := range opts {
		if err := opt(g); err != nil {
			return nil, err
		}
	}

	pool, err := ants.NewPool(g.cfg.MaxConcurrent,
		ants.WithMaxBlockingTasks(g.cfg.QueueCapacity))
	if err != nil {
		return nil, err
	}
	g.pool = pool

	return g, nil
}

// Release releases the worker pool.
// The gateway should not be used after calling Release.
func (g *Gateway) Release() {
	if g.pool != nil {
		g.pool.Release()
	}
}

// Extract runs one extraction call through the pool.
// Returns ErrOverloaded without attempting the call when the pool and
// its wait queue are both full.
func (g *Gateway) Extract(ctx context.Context, text string, opts ai.ExtractOptions) (*ai.RawExtraction, error) {
	type callResult struct {
		raw *ai.RawExtraction
		err error
	}

	requestId := uuid.NewString()
	done := make(chan callResult, 1)

	err := g.pool.Submit(func() {
		raw, err := g.run(ctx, requestId, text, opts)
		done <- callResult{raw: raw, err: err}
	})
	if err != nil {
		if errors.Is(err, ants.ErrPoolOverload) {
			g.logger.Warn("call refused, queue full", "request_id", requestId)
			return nil, ErrOverloaded
		}
		return nil, err
	}

	select {
	case res := <-done:
		return res.raw, res.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// run drives the call state machine for one request.
func (g *Gateway) run(ctx context.Context, requestId, text string, opts ai.ExtractOptions) (*ai.RawExtraction, error) {
	start := time.Now()
	timeout := g.cfg.TimeoutFor(len(text))
	machine := newCallMachine(g.cfg)

	g.sink.CallStarted(requestId, len(text))
	machine.Begin()

	var raw *ai.RawExtraction
	usedFallback := false

	for {
		switch machine.State() {
		case StateCalling:
			// The attempt is bounded by its own timeout only; a caller
			// that stops waiting does not kill an in-flight provider call
			attemptCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
			var err error
			raw, err = g.extractor.Extract(attemptCtx, text, opts)
			cancel()
			machine.Observe(err)

		case StateRetryWait:
			wait := machine.RetryDelay()
			g.sink.CallRetried(requestId, machine.Attempt(), wait, machine.LastErr())
			g.logger.Debug("retrying extraction",
				"request_id", requestId,
				"attempt", machine.Attempt(),
				"wait", wait,
				"err", machine.LastErr())
			select {
			case <-time.After(wait):
			case <-ctx.Done():
				g.finish(requestId, machine, start, usedFallback, raw, ctx.Err())
				return nil, ctx.Err()
			}
			machine.Resume()

		case StateFallbackCalling:
			if g.fallback == nil {
				machine.ObserveFallback(machine.LastErr())
				continue
			}
			usedFallback = true
			g.sink.CallFellBack(requestId, machine.LastErr())
			g.logger.Info("provider exhausted, using fallback",
				"request_id", requestId,
				"attempts", machine.Attempt(),
				"err", machine.LastErr())
			var err error
			raw, err = g.fallback.Extract(ctx, text, opts)
			machine.ObserveFallback(err)

		case StateDone:
			g.finish(requestId, machine, start, usedFallback, raw, nil)
			return raw, nil

		case StateFailed:
			err := fmt.Errorf("%w after %d attempts: %w",
				ErrExtractionFailed, machine.Attempt(), machine.LastErr())
			g.finish(requestId, machine, start, usedFallback, raw, err)
			return nil, err

		default:
			machine.Begin()
		}
	}
}

func (g *Gateway) finish(requestId string, machine *callMachine, start time.Time, usedFallback bool, raw *ai.RawExtraction, err error) {
	metrics := CallMetrics{
		RequestId:    requestId,
		Attempts:     machine.Attempt(),
		UsedFallback: usedFallback,
		Duration:     time.Since(start),
		Err:          err,
	}
	if raw != nil {
		metrics.TrustTier = raw.TrustTier
	}
	g.sink.CallFinished(metrics)
}
