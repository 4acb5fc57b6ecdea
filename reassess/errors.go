package reassess

import "errors"

var (
	// ErrInvalidMaxAttempts is returned when maxAttempts is <= 0
	ErrInvalidMaxAttempts = errors.New("maxAttempts must be greater than 0")

	// ErrScorerRequired indicates a missing quality scorer.
	ErrScorerRequired = errors.New("scorer is required")

	// ErrRepositoriesRequired indicates a missing repository dependency.
	ErrRepositoriesRequired = errors.New("entity, relation and quality repositories are required")
)
