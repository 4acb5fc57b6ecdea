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


package core

import (
	"fmt"
	"time"
)

// StatisticsDateFormat is the canonical layout of DailyStatistics.Date.
const StatisticsDateFormat = "2006-01-02"

// ValidateEntity validates an Entity according to domain rules.
//
// Validation rules:
//   - Name must not be empty
//   - Type must be a known EntityType
//   - Confidence must lie in [0,1]
//
// NOT validated (populated by the graph writer):
//   - Version (0 is valid before the first accepted write)
//   - Timestamps
func ValidateEntity(entity *Entity) error {
	if entity == nil {
		return fmt.Errorf("%w: entity is nil", ErrInvalidEntity)
	}

	if entity.Name == "" {
		return fmt.Errorf("%w: %w", ErrInvalidEntity, ErrEmptyName)
	}

	if err := ValidateEntityType(entity.Type); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidEntity, err)
	}

	if !IsValidScore(entity.Confidence) {
		return fmt.Errorf("%w: %w", ErrInvalidEntity, ErrConfidenceOutOfRange)
	}

	return nil
}

// ValidateRelation validates a Relation according to domain rules.
//
// Validation rules:
//   - RelType must not be empty
//   - Confidence must lie in [0,1]
//
// NOT validated:
//   - Endpoint existence: relations may reference entities not yet in storage
//   - Version and timestamps (populated by the graph writer)
func ValidateRelation(relation *Relation) error {
	if relation == nil {
		return fmt.Errorf("%w: relation is nil", ErrInvalidRelation)
	}

	if relation.RelType == "" {
		return fmt.Errorf("%w: %w", ErrInvalidRelation, ErrEmptyRelationType)
	}

	if !IsValidScore(relation.Confidence) {
		return fmt.Errorf("%w: %w", ErrInvalidRelation, ErrConfidenceOutOfRange)
	}

	return nil
}

// ValidateEntityType validates that an EntityType has a valid value.
func ValidateEntityType(t EntityType) error {
	if t != EntityTypePerson && t != EntityTypeWork && t != EntityTypeEvent {
		return fmt.Errorf("%w: value %d", ErrInvalidEntityType, t)
	}
	return nil
}

// ValidateStatisticsDate validates a DailyStatistics date key.
func ValidateStatisticsDate(date string) error {
	if _, err := time.Parse(StatisticsDateFormat, date); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	return nil
}

// IsValidScore checks that a confidence or quality score lies in [0,1].
func IsValidScore(score float64) bool {
	return score >= 0.0 && score <= 1.0
}

// ClampScore forces a score into [0,1]. Out-of-range provider output is
// clamped rather than rejected.
func ClampScore(score float64) float64 {
	if score < 0.0 {
		return 0.0
	}
	if score > 1.0 {
		return 1.0
	}
	return score
}
