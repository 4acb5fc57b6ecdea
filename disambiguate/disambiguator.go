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


// Package disambiguate maps raw extracted names onto canonical entity
// identities. Resolution is sticky: once a raw name resolves to a
// canonical entity, every later occurrence resolves the same way.
package disambiguate

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/poiesic/knograph/cache"
	"github.com/poiesic/knograph/core"
	"github.com/poiesic/knograph/storage"
)

const (
	// RuleSimilarityMerge marks a resolution onto an existing canonical
	// entity via the similarity threshold.
	RuleSimilarityMerge = "similarity-merge"
	// RuleNewEntity marks the minting of a new canonical identity.
	RuleNewEntity = "new-entity"

	defaultThreshold = 0.85
)

var (
	// ErrEntityRepositoryRequired indicates a missing entity repository.
	ErrEntityRepositoryRequired = errors.New("entity repository is required")
	// ErrDisambiguationRepositoryRequired indicates a missing disambiguation repository.
	ErrDisambiguationRepositoryRequired = errors.New("disambiguation repository is required")
)

// indexEntry is one canonical name known to the in-memory index.
type indexEntry struct {
	name string
	id   core.ID
}

// Disambiguator resolves raw names to canonical entity identities.
// It keeps a per-type canonical-name index in memory; the index is
// loaded once at construction and extended as new identities are minted.
type Disambiguator struct {
	entities  storage.EntityRepository
	records   storage.DisambiguationRepository
	cache     *cache.TieredCache
	threshold float64
	logger    *slog.Logger

	mutex sync.RWMutex
	index map[core.EntityType][]indexEntry
}

// Option configures a Disambiguator.
type Option func(*Disambiguator)

// WithCache sets the resolution sub-cache.
func WithCache(c *cache.TieredCache) Option {
	return func(d *Disambiguator) {
		d.cache = c
	}
}

// WithThreshold sets the merge threshold.
// Default is 0.85.
func WithThreshold(threshold float64) Option {
	return func(d *Disambiguator) {
		if threshold > 0 && threshold <= 1 {
			d.threshold = threshold
		}
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(d *Disambiguator) {
		if logger == nil {
			logger = slog.Default()
		}
		d.logger = logger.With("component", "disambiguator")
	}
}

// NewDisambiguator creates a disambiguator and loads the canonical-name
// index from the entity repository.
func NewDisambiguator(ctx context.Context, entities storage.EntityRepository, records storage.DisambiguationRepository, opts ...Option) (*Disambiguator, error) {
	if entities == nil {
		return nil, ErrEntityRepositoryRequired
	}
	if records == nil {
		return nil, ErrDisambiguationRepositoryRequired
	}

	d := &Disambiguator{
		entities:  entities,
		records:   records,
		threshold: defaultThreshold,
		logger:    slog.Default().With("component", "disambiguator"),
		index:     make(map[core.EntityType][]indexEntry),
	}
	for _, opt := range opts {
		opt(d)
	}

	if err := d.loadIndex(ctx); err != nil {
		return nil, err
	}
	return d, nil
}

// loadIndex fills the in-memory index from stored entities.
func (d *Disambiguator) loadIndex(ctx context.Context) error {
	all, err := d.entities.GetAllEntities(ctx)
	if err != nil {
		return err
	}
	d.mutex.Lock()
	defer d.mutex.Unlock()
	for _, entity := range all {
		d.index[entity.Type] = append(d.index[entity.Type], indexEntry{
			name: entity.Name,
			id:   entity.Id,
		})
	}
	return nil
}

// Threshold returns the merge threshold in use.
func (d *Disambiguator) Threshold() float64 {
	return d.threshold
}

// Resolve maps a raw name of the given type to its canonical identity.
// The returned record carries the canonical id, the similarity score and
// the rule applied.
func (d *Disambiguator) Resolve(ctx context.Context, rawName string, entityType core.EntityType, observedIn string) (*core.DisambiguationRecord, error) {
	if rawName == "" {
		return nil, core.ErrEmptyName
	}
	if err := core.ValidateEntityType(entityType); err != nil {
		return nil, err
	}

	// Sub-cache first
	if d.cache != nil {
		if record, found := d.cache.GetCanonical(rawName, entityType); found {
			return record, nil
		}
	}

	// Then the durable resolution history
	record, err := d.records.FindResolution(ctx, rawName, entityType)
	if err == nil {
		if d.cache != nil {
			d.cache.PutCanonical(record)
		}
		return record, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}

	// New raw name: score against the canonical index for this type
	bestName, bestId, bestScore := d.bestMatch(rawName, entityType)

	if bestScore >= d.threshold {
		record = &core.DisambiguationRecord{
			RawName:       rawName,
			CanonicalName: bestName,
			CanonicalId:   bestId,
			Similarity:    bestScore,
			Rule:          RuleSimilarityMerge,
			EntityType:    entityType,
			Context:       observedIn,
			CreatedAt:     time.Now().UTC(),
		}
	} else {
		id := core.IDFromContent("(" + entityType.String() + "," + rawName + ")")
		record = &core.DisambiguationRecord{
			RawName:       rawName,
			CanonicalName: rawName,
			CanonicalId:   id,
			Similarity:    1.0,
			Rule:          RuleNewEntity,
			EntityType:    entityType,
			Context:       observedIn,
			CreatedAt:     time.Now().UTC(),
		}
		d.addToIndex(entityType, rawName, id)
	}

	if err := d.records.AppendRecord(ctx, record); err != nil {
		return nil, err
	}
	if d.cache != nil {
		d.cache.PutCanonical(record)
	}

	d.logger.Debug("resolved name",
		"raw", rawName,
		"canonical", record.CanonicalName,
		"rule", record.Rule,
		"similarity", record.Similarity)
	return record, nil
}

// bestMatch returns the closest canonical name of the given type.
func (d *Disambiguator) bestMatch(rawName string, entityType core.EntityType) (string, core.ID, float64) {
	d.mutex.RLock()
	defer d.mutex.RUnlock()

	var bestName string
	var bestId core.ID
	bestScore := -1.0
	for _, entry := range d.index[entityType] {
		score := stringSimilarity(rawName, entry.name)
		if score > bestScore {
			bestName, bestId, bestScore = entry.name, entry.id, score
		}
	}
	return bestName, bestId, bestScore
}

func (d *Disambiguator) addToIndex(entityType core.EntityType, name string, id core.ID) {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	d.index[entityType] = append(d.index[entityType], indexEntry{name: name, id: id})
}
