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

import "errors"

// Domain validation errors
var (
	// ErrInvalidEntity indicates an Entity failed validation.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrInvalidRelation indicates a Relation failed validation.
	ErrInvalidRelation = errors.New("invalid relation")

	// ErrInvalidEntityType indicates an invalid EntityType value.
	ErrInvalidEntityType = errors.New("invalid entity type")

	// ErrEmptyName indicates the Name field is empty.
	ErrEmptyName = errors.New("name cannot be empty")

	// ErrEmptyRelationType indicates the RelType field is empty.
	ErrEmptyRelationType = errors.New("relation type cannot be empty")

	// ErrConfidenceOutOfRange indicates a confidence score outside [0,1].
	ErrConfidenceOutOfRange = errors.New("confidence must be in [0,1]")

	// ErrScoreOutOfRange indicates a quality score outside [0,1].
	ErrScoreOutOfRange = errors.New("score must be in [0,1]")

	// ErrInvalidDate indicates a date string that does not parse as yyyy-mm-dd.
	ErrInvalidDate = errors.New("date must be formatted as yyyy-mm-dd")
)
