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


// Package stats rolls up daily knowledge-graph statistics: one row per
// calendar date, recomputed idempotently from persisted records only.
package stats

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/poiesic/knograph/core"
	"github.com/poiesic/knograph/disambiguate"
	"github.com/poiesic/knograph/storage"
)

const highQualityThreshold = 0.8

var (
	// ErrRepositoriesRequired indicates that a required repository is missing.
	ErrRepositoriesRequired = errors.New("entity, relation, disambiguation, quality and statistics repositories are required")
)

// Aggregator computes daily roll-ups from persisted records.
// It reads entities, relations, assessments and the resolution history;
// it writes only its own statistics rows.
type Aggregator struct {
	entities        storage.EntityRepository
	relations       storage.RelationRepository
	disambiguations storage.DisambiguationRepository
	quality         storage.QualityRepository
	statistics      storage.StatisticsRepository
	logger          *slog.Logger
}

// NewAggregator creates an aggregator over the given repositories.
func NewAggregator(
	entities storage.EntityRepository,
	relations storage.RelationRepository,
	disambiguations storage.DisambiguationRepository,
	quality storage.QualityRepository,
	statistics storage.StatisticsRepository,
	logger *slog.Logger,
) (*Aggregator, error) {
	if entities == nil || relations == nil || disambiguations == nil || quality == nil || statistics == nil {
		return nil, ErrRepositoriesRequired
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Aggregator{
		entities:        entities,
		relations:       relations,
		disambiguations: disambiguations,
		quality:         quality,
		statistics:      statistics,
		logger:          logger.With("component", "stats"),
	}, nil
}

// Rollup recomputes and upserts the statistics row for a date formatted
// as core.StatisticsDateFormat. Re-running for the same date overwrites
// the row.
func (a *Aggregator) Rollup(ctx context.Context, date string) (*core.DailyStatistics, error) {
	if err := core.ValidateStatisticsDate(date); err != nil {
		return nil, err
	}

	entities, err := a.entities.GetAllEntities(ctx)
	if err != nil {
		return nil, err
	}
	relations, err := a.relations.GetAllRelations(ctx)
	if err != nil {
		return nil, err
	}
	assessments, err := a.quality.GetAllAssessments(ctx)
	if err != nil {
		return nil, err
	}
	resolutions, err := a.disambiguations.GetAllRecords(ctx)
	if err != nil {
		return nil, err
	}

	row := &core.DailyStatistics{
		Date:           date,
		TotalEntities:  len(entities),
		TotalRelations: len(relations),
		ComputedAt:     time.Now().UTC(),
	}

	for _, entity := range entities {
		switch entity.Type {
		case core.EntityTypePerson:
			row.PersonCount++
		case core.EntityTypeWork:
			row.WorkCount++
		case core.EntityTypeEvent:
			row.EventCount++
		}
	}

	var qualitySum float64
	for _, assessment := range assessments {
		qualitySum += assessment.QualityScore
		if assessment.SubjectKind == core.SubjectKindEntity && assessment.QualityScore >= highQualityThreshold {
			row.HighQualityEntities++
		}
	}
	if len(assessments) > 0 {
		row.AvgQuality = qualitySum / float64(len(assessments))
	}

	merged := 0
	for _, resolution := range resolutions {
		if resolution.Rule == disambiguate.RuleSimilarityMerge {
			merged++
		}
	}
	if len(resolutions) > 0 {
		row.DisambiguationRate = float64(merged) / float64(len(resolutions))
	}

	if err := a.statistics.PutDailyStatistics(ctx, row); err != nil {
		return nil, err
	}

	a.logger.Info("daily roll-up complete",
		"date", date,
		"entities", row.TotalEntities,
		"relations", row.TotalRelations,
		"avg_quality", row.AvgQuality)
	return row, nil
}

// RollupToday rolls up the current UTC date.
func (a *Aggregator) RollupToday(ctx context.Context) (*core.DailyStatistics, error) {
	return a.Rollup(ctx, time.Now().UTC().Format(core.StatisticsDateFormat))
}
