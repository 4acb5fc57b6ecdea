package pipeline

import "errors"

var (
	// ErrGatewayRequired indicates a missing inference gateway.
	ErrGatewayRequired = errors.New("gateway is required")

	// ErrCacheRequired indicates a missing tiered cache.
	ErrCacheRequired = errors.New("cache is required")

	// ErrParserRequired indicates a missing response parser.
	ErrParserRequired = errors.New("parser is required")

	// ErrDisambiguatorRequired indicates a missing disambiguator.
	ErrDisambiguatorRequired = errors.New("disambiguator is required")

	// ErrScorerRequired indicates a missing quality scorer.
	ErrScorerRequired = errors.New("scorer is required")

	// ErrWriterRequired indicates a missing graph writer.
	ErrWriterRequired = errors.New("graph writer is required")

	// ErrQualityRepositoryRequired indicates a missing quality repository.
	ErrQualityRepositoryRequired = errors.New("quality repository is required")

	// ErrUnknownOperation indicates an operation name absent from the registry.
	ErrUnknownOperation = errors.New("unknown operation")
)
