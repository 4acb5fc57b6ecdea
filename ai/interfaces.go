package ai

import (
	"context"

	"github.com/poiesic/knograph/core"
)

// Extractor turns unstructured text into a raw structured extraction payload.
// Implementations must be thread-safe for concurrent use.
type Extractor interface {
	// Extract analyzes text and returns the provider's raw structured payload
	// containing entities and relations. The payload is opaque at this level;
	// the parse package turns it into typed records.
	// Returns an error if the extraction call fails.
	Extract(ctx context.Context, text string, opts ExtractOptions) (*RawExtraction, error)
}

// ExtractMode selects the extraction focus.
type ExtractMode int

const (
	// ModeGeneral extracts persons, works, events and their relations.
	ModeGeneral ExtractMode = iota + 1
	// ModeSocial focuses on interpersonal relations between persons.
	ModeSocial
)

// String returns the lowercase mode name.
func (m ExtractMode) String() string {
	switch m {
	case ModeSocial:
		return "social"
	default:
		return "general"
	}
}

// ExtractOptions holds per-request extraction parameters.
// Identical text with identical options collapses to one cache entry.
type ExtractOptions struct {
	// Mode selects the extraction focus. Zero value resolves to ModeGeneral.
	Mode ExtractMode

	// Types is a comma-separated list of result kinds to extract.
	// Default: "entities,relations".
	Types string

	// MaskSensitive scrubs email addresses and phone numbers from the text
	// before it is sent to the provider.
	MaskSensitive bool
}

// Normalize fills in option defaults.
func (o *ExtractOptions) Normalize() {
	if o.Mode == 0 {
		o.Mode = ModeGeneral
	}
	if o.Types == "" {
		o.Types = "entities,relations"
	}
}

// RawExtraction is the untyped result of one extraction call.
type RawExtraction struct {
	// Payload is the raw structured text returned by the extractor,
	// expected to be JSON but not yet validated.
	Payload string

	// TrustTier marks whether the provider or the local fallback produced
	// the payload.
	TrustTier core.TrustTier

	// Model is the identifier of the model that produced the payload,
	// or "fallback" for heuristic results.
	Model string
}
