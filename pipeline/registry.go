package pipeline

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/poiesic/knograph/ai"
	"github.com/poiesic/knograph/core"
	"github.com/poiesic/knograph/stats"
)

// Operation names accepted by the registry.
const (
	OpExtract       = "extract"
	OpExtractSocial = "extract_social"
	OpRollup        = "rollup"
)

// Request carries the inputs of one registry operation. Fields that an
// operation does not use are ignored.
type Request struct {
	// Text is the input for the extraction operations.
	Text string

	// Types narrows the extraction to "entities", "relations" or both.
	Types string

	// MaskSensitive scrubs contact details before extraction.
	MaskSensitive bool

	// Date selects the statistics day for rollup, "YYYY-MM-DD".
	// Empty means today.
	Date string
}

// Handler executes one named operation.
type Handler func(ctx context.Context, req Request) *Response

// Registry maps operation names to handlers. The table is built once at
// construction and never changes, so dispatch is a plain map lookup and the
// set of supported operations is explicit.
type Registry struct {
	handlers map[string]Handler
}

// NewRegistry builds the operation table over the orchestrator and the
// statistics aggregator.
func NewRegistry(orchestrator *Orchestrator, aggregator *stats.Aggregator) *Registry {
	handlers := map[string]Handler{
		OpExtract: func(ctx context.Context, req Request) *Response {
			return orchestrator.Process(ctx, req.Text, ai.ExtractOptions{
				Mode:          ai.ModeGeneral,
				Types:         req.Types,
				MaskSensitive: req.MaskSensitive,
			})
		},
		OpExtractSocial: func(ctx context.Context, req Request) *Response {
			return orchestrator.Process(ctx, req.Text, ai.ExtractOptions{
				Mode:          ai.ModeSocial,
				Types:         req.Types,
				MaskSensitive: req.MaskSensitive,
			})
		},
		OpRollup: func(ctx context.Context, req Request) *Response {
			return rollup(ctx, aggregator, req.Date)
		},
	}
	return &Registry{handlers: handlers}
}

// Dispatch runs the named operation. Unknown names fail with
// ErrUnknownOperation before any work happens.
func (r *Registry) Dispatch(ctx context.Context, operation string, req Request) (*Response, error) {
	handler, ok := r.handlers[operation]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownOperation, operation)
	}
	return handler(ctx, req), nil
}

// Operations returns the supported operation names in sorted order.
func (r *Registry) Operations() []string {
	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func rollup(ctx context.Context, aggregator *stats.Aggregator, date string) *Response {
	var (
		daily *core.DailyStatistics
		err   error
	)
	if date == "" {
		daily, err = aggregator.RollupToday(ctx)
	} else {
		daily, err = aggregator.Rollup(ctx, date)
	}
	if err != nil {
		return failureResponse("rollup failed")
	}
	return &Response{
		Success: true,
		Message: fmt.Sprintf("statistics for %s: %d entities, %d relations",
			daily.Date, daily.TotalEntities, daily.TotalRelations),
		Timestamp: time.Now().UTC(),
	}
}
