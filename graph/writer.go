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


// Package graph performs confidence-weighted, versioned upserts of
// entities and relations. Writes to one key are serialized so the
// version of a record increases by exactly 1 per accepted write, even
// under concurrent extraction jobs touching the same subject.
package graph

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/poiesic/knograph/core"
	"github.com/poiesic/knograph/storage"
)

const (
	defaultLockStripes = 128
	defaultLockTimeout = 5 * time.Second
)

var (
	// ErrEntityRepositoryRequired indicates a missing entity repository.
	ErrEntityRepositoryRequired = errors.New("entity repository is required")
	// ErrRelationRepositoryRequired indicates a missing relation repository.
	ErrRelationRepositoryRequired = errors.New("relation repository is required")
)

// Writer upserts entities and relations into storage.
type Writer struct {
	entities  storage.EntityRepository
	relations storage.RelationRepository
	locks     *keyLocks
	logger    *slog.Logger

	lockStripes int
	lockTimeout time.Duration
}

// Option configures a Writer.
type Option func(*Writer)

// WithLockStripes sets the number of lock stripes.
// Default is 128.
func WithLockStripes(stripes int) Option {
	return func(w *Writer) {
		if stripes > 0 {
			w.lockStripes = stripes
		}
	}
}

// WithLockTimeout bounds the wait for a per-key write lock.
// Default is 5 seconds.
func WithLockTimeout(timeout time.Duration) Option {
	return func(w *Writer) {
		if timeout > 0 {
			w.lockTimeout = timeout
		}
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(w *Writer) {
		if logger == nil {
			logger = slog.Default()
		}
		w.logger = logger.With("component", "graph-writer")
	}
}

// NewWriter creates a graph writer.
func NewWriter(entities storage.EntityRepository, relations storage.RelationRepository, opts ...Option) (*Writer, error) {
	if entities == nil {
		return nil, ErrEntityRepositoryRequired
	}
	if relations == nil {
		return nil, ErrRelationRepositoryRequired
	}

	w := &Writer{
		entities:    entities,
		relations:   relations,
		logger:      slog.Default().With("component", "graph-writer"),
		lockStripes: defaultLockStripes,
		lockTimeout: defaultLockTimeout,
	}
	for _, opt := range opts {
		opt(w)
	}
	w.locks = newKeyLocks(w.lockStripes, w.lockTimeout)
	return w, nil
}

// UpsertEntity inserts or merges an entity by canonical id.
// On merge, each attribute independently takes the higher-confidence
// source, confidence takes the max, and version increments by exactly 1.
func (w *Writer) UpsertEntity(ctx context.Context, incoming *core.Entity) (*core.Entity, error) {
	if err := core.ValidateEntity(incoming); err != nil {
		return nil, err
	}

	release, err := w.acquireLock(ctx, uint64(incoming.Id))
	if err != nil {
		return nil, err
	}
	defer release()

	now := time.Now().UTC()
	existing, err := w.entities.GetEntity(ctx, incoming.Id)
	if errors.Is(err, storage.ErrNotFound) {
		inserted := *incoming
		inserted.Version = 1
		inserted.CreatedAt = now
		inserted.UpdatedAt = now
		if err := w.entities.PutEntity(ctx, &inserted); err != nil {
			return nil, err
		}
		return &inserted, nil
	}
	if err != nil {
		return nil, err
	}

	merged := *existing
	merged.Attributes = mergeAttributes(existing, incoming)
	if incoming.Confidence > merged.Confidence {
		merged.Confidence = incoming.Confidence
	}
	merged.Version = existing.Version + 1
	merged.UpdatedAt = now

	if err := w.entities.PutEntity(ctx, &merged); err != nil {
		return nil, err
	}
	w.logger.Debug("merged entity",
		"id", merged.Id,
		"name", merged.Name,
		"version", merged.Version)
	return &merged, nil
}

// UpsertRelation inserts or merges a relation by its
// (from, to, type) triple. Endpoints are not checked for existence;
// dangling references are tolerated.
func (w *Writer) UpsertRelation(ctx context.Context, incoming *core.Relation) (*core.Relation, error) {
	if err := core.ValidateRelation(incoming); err != nil {
		return nil, err
	}
	if incoming.Id == 0 {
		incoming.Id = core.IDFromContent(incoming.Triple())
	}

	release, err := w.acquireLock(ctx, uint64(incoming.Id))
	if err != nil {
		return nil, err
	}
	defer release()

	now := time.Now().UTC()
	existing, err := w.relations.FindRelationByTriple(ctx, incoming.FromId, incoming.ToId, incoming.RelType)
	if errors.Is(err, storage.ErrNotFound) {
		inserted := *incoming
		inserted.Version = 1
		inserted.CreatedAt = now
		inserted.UpdatedAt = now
		if err := w.relations.PutRelation(ctx, &inserted); err != nil {
			return nil, err
		}
		return &inserted, nil
	}
	if err != nil {
		return nil, err
	}

	merged := *existing
	if incoming.Confidence > merged.Confidence {
		merged.Confidence = incoming.Confidence
		if incoming.SourceInfo != "" {
			merged.SourceInfo = incoming.SourceInfo
		}
	}
	if merged.SourceInfo == "" {
		merged.SourceInfo = incoming.SourceInfo
	}
	merged.Version = existing.Version + 1
	merged.UpdatedAt = now

	if err := w.relations.PutRelation(ctx, &merged); err != nil {
		return nil, err
	}
	return &merged, nil
}

// acquireLock takes the per-key write lock, retrying once after a timeout.
// A timed-out lock usually means another writer held the key through a slow
// storage round trip, not a deadlock.
func (w *Writer) acquireLock(ctx context.Context, key uint64) (func(), error) {
	release, err := w.locks.acquire(ctx, key)
	if errors.Is(err, ErrLockTimeout) {
		w.logger.Warn("write lock timed out, retrying", "key", key)
		release, err = w.locks.acquire(ctx, key)
	}
	return release, err
}

// mergeAttributes merges attribute maps field by field, preferring the
// higher-confidence record for keys both sides carry.
func mergeAttributes(existing, incoming *core.Entity) map[string]string {
	merged := make(map[string]string, len(existing.Attributes)+len(incoming.Attributes))
	for key, value := range existing.Attributes {
		merged[key] = value
	}
	for key, value := range incoming.Attributes {
		if value == "" {
			continue
		}
		if _, ok := merged[key]; !ok || incoming.Confidence > existing.Confidence {
			merged[key] = value
		}
	}
	return merged
}
