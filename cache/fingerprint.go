package cache

import (
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/poiesic/knograph/ai"
	"github.com/poiesic/knograph/core"
)

// Fingerprint derives the cache key for an extraction request.
// Text is whitespace-normalized first so trivial formatting differences
// collapse to one entry. Options are part of the key since they change
// what the provider returns.
func Fingerprint(text string, opts ai.ExtractOptions) uint64 {
	opts.Normalize()
	digest := xxhash.New()
	digest.WriteString(normalizeText(text))
	digest.WriteString("\x00")
	digest.WriteString(opts.Mode.String())
	digest.WriteString("\x00")
	digest.WriteString(opts.Types)
	if opts.MaskSensitive {
		digest.WriteString("\x00masked")
	}
	return digest.Sum64()
}

// CanonicalFingerprint derives the key for a name resolution entry.
func CanonicalFingerprint(rawName string, entityType core.EntityType) uint64 {
	digest := xxhash.New()
	digest.WriteString(entityType.String())
	digest.WriteString("\x00")
	digest.WriteString(strings.TrimSpace(rawName))
	return digest.Sum64()
}

// normalizeText collapses all whitespace runs to single spaces.
func normalizeText(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
