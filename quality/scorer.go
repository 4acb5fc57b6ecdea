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


// Package quality computes completeness, consistency and accuracy
// sub-scores plus an overall grade for entities and relations.
package quality

import (
	"fmt"
	"regexp"
	"time"

	"github.com/poiesic/knograph/core"
)

// expectedEntityFields lists the attributes a complete entity of each
// type is expected to carry.
var expectedEntityFields = map[core.EntityType][]string{
	core.EntityTypePerson: {"nationality", "profession", "birth_date"},
	core.EntityTypeWork:   {"work_type", "release_date"},
	core.EntityTypeEvent:  {"event_type", "event_date"},
}

// dateAttributes are checked for date-like content when present.
var dateAttributes = []string{"birth_date", "release_date", "event_date"}

// dateLikePattern accepts "2019", "2019-02", "2019/2/5", "2019年2月5日".
var dateLikePattern = regexp.MustCompile(`^\d{4}([-/.年]\d{1,2})?([-/.月]\d{1,2}日?)?$`)

// Weights holds the relative weight of each sub-score.
type Weights struct {
	Completeness float64
	Consistency  float64
	Accuracy     float64
}

// DefaultWeights weighs the three sub-scores equally.
func DefaultWeights() Weights {
	return Weights{Completeness: 1, Consistency: 1, Accuracy: 1}
}

func (w Weights) total() float64 {
	return w.Completeness + w.Consistency + w.Accuracy
}

// Scorer computes quality assessments.
type Scorer struct {
	weights         Weights
	fallbackPenalty float64
}

// Option configures a Scorer.
type Option func(*Scorer)

// WithWeights replaces the equal default weights.
func WithWeights(weights Weights) Option {
	return func(s *Scorer) {
		if weights.total() > 0 {
			s.weights = weights
		}
	}
}

// WithFallbackPenalty sets the factor applied to the accuracy sub-score
// of fallback-tier records.
// Default is 0.8.
func WithFallbackPenalty(penalty float64) Option {
	return func(s *Scorer) {
		if penalty > 0 && penalty <= 1 {
			s.fallbackPenalty = penalty
		}
	}
}

// NewScorer creates a scorer.
func NewScorer(opts ...Option) *Scorer {
	s := &Scorer{
		weights:         DefaultWeights(),
		fallbackPenalty: 0.8,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ScoreEntity assesses one entity. The trust tier penalizes the accuracy
// sub-score of fallback-produced records.
func (s *Scorer) ScoreEntity(entity *core.Entity, tier core.TrustTier) *core.QualityAssessment {
	var issues, suggestions []string

	// Completeness: expected attributes present and non-empty
	expected := expectedEntityFields[entity.Type]
	filled := 0
	for _, field := range expected {
		if entity.Attributes[field] != "" {
			filled++
		} else {
			suggestions = append(suggestions, fmt.Sprintf("add %s attribute", field))
		}
	}
	completeness := 1.0
	if len(expected) > 0 {
		completeness = float64(filled) / float64(len(expected))
	}

	// Consistency: cross-field sanity checks
	checks, passed := 0, 0
	checks++
	if entity.Name != "" {
		passed++
	} else {
		issues = append(issues, "empty name")
	}
	checks++
	if core.IsValidScore(entity.Confidence) {
		passed++
	} else {
		issues = append(issues, "confidence out of range")
	}
	for _, attr := range dateAttributes {
		value, ok := entity.Attributes[attr]
		if !ok || value == "" {
			continue
		}
		checks++
		if dateLikePattern.MatchString(value) {
			passed++
		} else {
			issues = append(issues, fmt.Sprintf("%s is not date-like: %q", attr, value))
		}
	}
	consistency := float64(passed) / float64(checks)

	accuracy := s.accuracy(entity.Confidence, tier)

	return s.assemble(core.SubjectKindEntity, entity.Id, completeness, consistency, accuracy, issues, suggestions)
}

// ScoreRelation assesses one relation.
func (s *Scorer) ScoreRelation(relation *core.Relation, tier core.TrustTier) *core.QualityAssessment {
	var issues, suggestions []string

	// Completeness: relation type and provenance present
	filled := 0
	if relation.RelType != "" {
		filled++
	} else {
		suggestions = append(suggestions, "add relation type")
	}
	if relation.SourceInfo != "" {
		filled++
	} else {
		suggestions = append(suggestions, "add source info")
	}
	completeness := float64(filled) / 2.0

	// Consistency: endpoints non-empty and distinct, confidence in range
	checks, passed := 0, 0
	checks++
	if relation.FromId != 0 && relation.ToId != 0 {
		passed++
	} else {
		issues = append(issues, "missing endpoint")
	}
	checks++
	if relation.FromId != relation.ToId {
		passed++
	} else {
		issues = append(issues, "self-referential endpoints")
	}
	checks++
	if core.IsValidScore(relation.Confidence) {
		passed++
	} else {
		issues = append(issues, "confidence out of range")
	}
	consistency := float64(passed) / float64(checks)

	accuracy := s.accuracy(relation.Confidence, tier)

	return s.assemble(core.SubjectKindRelation, relation.Id, completeness, consistency, accuracy, issues, suggestions)
}

// accuracy defaults to the inference confidence, penalized for
// fallback-tier results.
func (s *Scorer) accuracy(confidence float64, tier core.TrustTier) float64 {
	accuracy := core.ClampScore(confidence)
	if tier == core.TrustTierFallback {
		accuracy *= s.fallbackPenalty
	}
	return accuracy
}

func (s *Scorer) assemble(kind core.SubjectKind, id core.ID, completeness, consistency, accuracy float64, issues, suggestions []string) *core.QualityAssessment {
	w := s.weights
	score := (completeness*w.Completeness + consistency*w.Consistency + accuracy*w.Accuracy) / w.total()
	return &core.QualityAssessment{
		SubjectKind:  kind,
		SubjectId:    id,
		Completeness: completeness,
		Consistency:  consistency,
		Accuracy:     accuracy,
		QualityScore: score,
		Grade:        core.GradeForScore(score),
		Issues:       issues,
		Suggestions:  suggestions,
		Method:       core.MethodAuto,
		LastAssessed: time.Now().UTC(),
	}
}
