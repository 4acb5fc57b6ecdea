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


// Package cache provides the two-tier extraction result cache: an
// in-process ristretto tier in front of a persistent badger-backed tier.
// The cache fails open; a broken slow tier degrades to misses, never to
// request failures.
package cache

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/dgraph-io/ristretto/v2"
	"github.com/poiesic/knograph/core"
	"github.com/poiesic/knograph/storage"
)

const (
	defaultFastEntries      = 4096
	defaultCanonicalEntries = 8192
	defaultProviderTTL      = 24 * time.Hour
	defaultFallbackTTL      = time.Hour
	defaultAccessAge        = 6 * time.Hour
)

// fastEntry wraps a cached extraction with its last read time so entries
// nobody asks for expire before their write TTL.
type fastEntry struct {
	cached     *core.CachedExtraction
	lastAccess atomic.Int64
}

func newFastEntry(cached *core.CachedExtraction) *fastEntry {
	entry := &fastEntry{cached: cached}
	entry.lastAccess.Store(time.Now().UnixNano())
	return entry
}

func (e *fastEntry) idle(window time.Duration) bool {
	return time.Since(time.Unix(0, e.lastAccess.Load())) > window
}

func (e *fastEntry) touch() {
	e.lastAccess.Store(time.Now().UnixNano())
}

// TieredCache caches resolved extractions keyed by request fingerprint,
// plus an in-memory sub-cache of name resolutions.
type TieredCache struct {
	fast        *ristretto.Cache[uint64, *fastEntry]
	canonical   *ristretto.Cache[uint64, *core.DisambiguationRecord]
	store       storage.CacheStore
	providerTTL time.Duration
	fallbackTTL time.Duration
	accessAge   time.Duration
	fastEntries int64
	logger      *slog.Logger
}

// Option configures a TieredCache.
type Option func(*TieredCache)

// WithFastEntries sets the capacity of the in-process tier.
// Default is 4096 entries.
func WithFastEntries(entries int64) Option {
	return func(c *TieredCache) {
		if entries > 0 {
			c.fastEntries = entries
		}
	}
}

// WithProviderTTL sets the lifetime of provider-tier entries.
// Default is 24 hours.
func WithProviderTTL(ttl time.Duration) Option {
	return func(c *TieredCache) {
		if ttl > 0 {
			c.providerTTL = ttl
		}
	}
}

// WithFallbackTTL sets the lifetime of fallback-tier entries. Fallback
// results are lower quality so they expire sooner.
// Default is 1 hour.
func WithFallbackTTL(ttl time.Duration) Option {
	return func(c *TieredCache) {
		if ttl > 0 {
			c.fallbackTTL = ttl
		}
	}
}

// WithAccessAge sets how long a fast-tier entry may sit unread before it
// expires. The write TTL still applies; whichever is shorter wins.
// Default is 6 hours.
func WithAccessAge(window time.Duration) Option {
	return func(c *TieredCache) {
		if window > 0 {
			c.accessAge = window
		}
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *TieredCache) {
		if logger == nil {
			logger = slog.Default()
		}
		c.logger = logger.With("component", "cache")
	}
}

// NewTieredCache creates a tiered cache. The store may be nil, in which
// case only the in-process tier is used.
func NewTieredCache(store storage.CacheStore, opts ...Option) (*TieredCache, error) {
	c := &TieredCache{
		store:       store,
		providerTTL: defaultProviderTTL,
		fallbackTTL: defaultFallbackTTL,
		accessAge:   defaultAccessAge,
		fastEntries: defaultFastEntries,
		logger:      slog.Default().With("component", "cache"),
	}
	for _, opt := range opts {
		opt(c)
	}

	fast, err := ristretto.NewCache(&ristretto.Config[uint64, *fastEntry]{
		NumCounters: c.fastEntries * 10,
		MaxCost:     c.fastEntries,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}
	canonical, err := ristretto.NewCache(&ristretto.Config[uint64, *core.DisambiguationRecord]{
		NumCounters: defaultCanonicalEntries * 10,
		MaxCost:     defaultCanonicalEntries,
		BufferItems: 64,
	})
	if err != nil {
		fast.Close()
		return nil, err
	}

	c.fast = fast
	c.canonical = canonical
	return c, nil
}

// Close releases both in-process tiers.
func (c *TieredCache) Close() {
	c.fast.Close()
	c.canonical.Close()
}

// TTLFor returns the entry lifetime for a trust tier.
func (c *TieredCache) TTLFor(tier core.TrustTier) time.Duration {
	if tier == core.TrustTierFallback {
		return c.fallbackTTL
	}
	return c.providerTTL
}

// Get looks up a cached extraction, checking the in-process tier first.
// A slow-tier hit is promoted to the in-process tier.
func (c *TieredCache) Get(ctx context.Context, fingerprint uint64) (*core.CachedExtraction, bool) {
	if entry, found := c.fast.Get(fingerprint); found {
		if !entry.idle(c.accessAge) {
			entry.touch()
			return entry.cached, true
		}
		// Idle past the access window; drop it and consult the slow tier
		c.fast.Del(fingerprint)
	}
	if c.store == nil {
		return nil, false
	}

	data, err := c.store.GetCached(ctx, fingerprint)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			c.logger.Warn("slow tier read failed", "fingerprint", fingerprint, "err", err)
		}
		return nil, false
	}

	cached, err := storage.UnmarshalCachedExtraction(data)
	if err != nil {
		c.logger.Warn("slow tier entry corrupt", "fingerprint", fingerprint, "err", err)
		return nil, false
	}

	// Honor the remaining lifetime when promoting
	remaining := c.TTLFor(cached.TrustTier) - time.Since(cached.CachedAt)
	if remaining <= 0 {
		return nil, false
	}
	c.fast.SetWithTTL(fingerprint, newFastEntry(cached), 1, remaining)
	c.fast.Wait()
	return cached, true
}

// Put stores an extraction in both tiers with a tier-dependent TTL.
func (c *TieredCache) Put(ctx context.Context, fingerprint uint64, cached *core.CachedExtraction) {
	if cached.CachedAt.IsZero() {
		cached.CachedAt = time.Now().UTC()
	}
	ttl := c.TTLFor(cached.TrustTier)

	c.fast.SetWithTTL(fingerprint, newFastEntry(cached), 1, ttl)
	c.fast.Wait()

	if c.store == nil {
		return
	}
	if err := c.store.SetCached(ctx, fingerprint, storage.MarshalCachedExtraction(cached), ttl); err != nil {
		c.logger.Warn("slow tier write failed", "fingerprint", fingerprint, "err", err)
	}
}

// GetCanonical looks up a cached name resolution.
func (c *TieredCache) GetCanonical(rawName string, entityType core.EntityType) (*core.DisambiguationRecord, bool) {
	return c.canonical.Get(CanonicalFingerprint(rawName, entityType))
}

// PutCanonical stores a name resolution in the in-process sub-cache.
// Resolutions are durable in the disambiguation repository; this tier
// only saves the lookup.
func (c *TieredCache) PutCanonical(record *core.DisambiguationRecord) {
	c.canonical.Set(CanonicalFingerprint(record.RawName, record.EntityType), record, 1)
	c.canonical.Wait()
}
