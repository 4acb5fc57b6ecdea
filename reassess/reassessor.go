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


package reassess

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/poiesic/knograph/core"
	"github.com/poiesic/knograph/quality"
	"github.com/poiesic/knograph/storage"
)

// Config holds configuration for a reassessment run.
type Config struct {
	// BatchSize is the number of subjects to score between write retries
	BatchSize int

	// ReportInterval is how often to report progress (number of subjects)
	ReportInterval int

	// MaxRetries is the maximum number of retry attempts for failed writes
	MaxRetries int

	// RetryDelay is the base delay for exponential backoff
	RetryDelay time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BatchSize:      100,
		ReportInterval: 100,
		MaxRetries:     3,
		RetryDelay:     1 * time.Second,
	}
}

// Reassessor re-scores every stored entity and relation with the current
// scoring rules and overwrites their quality assessments. Running it after a
// rules change brings old assessments up to date without touching the graph
// itself.
type Reassessor struct {
	entities    storage.EntityRepository
	relations   storage.RelationRepository
	assessments storage.QualityRepository
	scorer      *quality.Scorer
	config      *Config
	progress    io.Writer
}

// NewReassessor creates a new reassessor.
// progress: where to write progress output (typically os.Stderr)
func NewReassessor(
	entities storage.EntityRepository,
	relations storage.RelationRepository,
	assessments storage.QualityRepository,
	scorer *quality.Scorer,
	config *Config,
	progress io.Writer,
) (*Reassessor, error) {
	if entities == nil || relations == nil || assessments == nil {
		return nil, ErrRepositoriesRequired
	}
	if scorer == nil {
		return nil, ErrScorerRequired
	}
	if config == nil {
		config = DefaultConfig()
	}
	if progress == nil {
		progress = io.Discard
	}

	return &Reassessor{
		entities:    entities,
		relations:   relations,
		assessments: assessments,
		scorer:      scorer,
		config:      config,
		progress:    progress,
	}, nil
}

// Run executes the reassessment. All stored entities and relations are
// scored again and their assessments replaced. Stored subjects have already
// survived merging, so they are scored at the provider tier.
func (r *Reassessor) Run(ctx context.Context) error {
	entities, err := r.entities.GetAllEntities(ctx)
	if err != nil {
		return fmt.Errorf("failed to query entities: %w", err)
	}
	relations, err := r.relations.GetAllRelations(ctx)
	if err != nil {
		return fmt.Errorf("failed to query relations: %w", err)
	}

	total := len(entities) + len(relations)
	if total == 0 {
		fmt.Fprintf(r.progress, "No subjects found in database (0 records)\n")
		return nil
	}

	fmt.Fprintf(r.progress, "Starting reassessment of %d subjects (batch size: %d)\n",
		total, r.config.BatchSize)

	tracker := NewProgressTracker(r.progress, total, r.config.ReportInterval)
	tracker.Start()

	if err := forEachBatch(ctx, entities, r.config.BatchSize, func(batch []*core.Entity) error {
		assessments := make([]*core.QualityAssessment, len(batch))
		for i, entity := range batch {
			assessments[i] = r.scorer.ScoreEntity(entity, core.TrustTierProvider)
		}
		if err := r.writeBatch(ctx, assessments); err != nil {
			return err
		}
		tracker.Increment(len(batch))
		return nil
	}); err != nil {
		return err
	}

	if err := forEachBatch(ctx, relations, r.config.BatchSize, func(batch []*core.Relation) error {
		assessments := make([]*core.QualityAssessment, len(batch))
		for i, relation := range batch {
			assessments[i] = r.scorer.ScoreRelation(relation, core.TrustTierProvider)
		}
		if err := r.writeBatch(ctx, assessments); err != nil {
			return err
		}
		tracker.Increment(len(batch))
		return nil
	}); err != nil {
		return err
	}

	tracker.Finish()

	elapsed := tracker.Elapsed()
	fmt.Fprintf(r.progress, "Reassessment complete. Scored %d subjects in %v (%.1f subjects/sec)\n",
		total, elapsed.Round(time.Second), float64(total)/elapsed.Seconds())

	return nil
}

// writeBatch persists a batch of assessments with retry.
func (r *Reassessor) writeBatch(ctx context.Context, assessments []*core.QualityAssessment) error {
	err := RetryWithBackoff(ctx, func() error {
		for _, assessment := range assessments {
			if err := r.assessments.PutAssessment(ctx, assessment); err != nil {
				return err
			}
		}
		return nil
	}, r.config.MaxRetries, r.config.RetryDelay)
	if err != nil {
		return fmt.Errorf("failed to write assessments after %d attempts: %w", r.config.MaxRetries, err)
	}
	return nil
}

// forEachBatch calls fn for consecutive slices of at most batchSize items.
// Iteration stops on the first error from fn. Context cancellation is
// checked between batches.
func forEachBatch[T any](ctx context.Context, items []*T, batchSize int, fn func([]*T) error) error {
	if batchSize <= 0 {
		batchSize = DefaultConfig().BatchSize
	}

	for i := 0; i < len(items); i += batchSize {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		end := i + batchSize
		if end > len(items) {
			end = len(items)
		}
		if err := fn(items[i:end]); err != nil {
			return err
		}
	}
	return nil
}
