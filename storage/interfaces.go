package storage

import (
	"context"
	"time"

	"github.com/poiesic/knograph/core"
)

// Repository provides common operations shared across all repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// Close closes the repository and releases resources.
	Close() error
}

// EntityRepository provides operations for managing graph entities.
// Merging and versioning live in the graph writer; the repository is a
// plain keyed store.
type EntityRepository interface {
	Repository
	// PutEntity stores an entity under its canonical id, overwriting any
	// previous row.
	PutEntity(ctx context.Context, entity *core.Entity) error

	// GetEntity retrieves a single entity by canonical id.
	// Returns ErrNotFound if the entity doesn't exist.
	GetEntity(ctx context.Context, id core.ID) (*core.Entity, error)

	// GetEntities retrieves multiple entities by their ids.
	// Returns only the entities that exist (no error for missing ones).
	GetEntities(ctx context.Context, ids ...core.ID) ([]*core.Entity, error)

	// GetEntitiesByType retrieves all entities of one type.
	GetEntitiesByType(ctx context.Context, entityType core.EntityType) ([]*core.Entity, error)

	// GetAllEntities retrieves every stored entity.
	GetAllEntities(ctx context.Context) ([]*core.Entity, error)
}

// RelationRepository provides operations for managing graph relations.
type RelationRepository interface {
	Repository
	// PutRelation stores a relation under its id and maintains the triple
	// index, overwriting any previous row.
	PutRelation(ctx context.Context, relation *core.Relation) error

	// GetRelation retrieves a single relation by id.
	// Returns ErrNotFound if the relation doesn't exist.
	GetRelation(ctx context.Context, id core.ID) (*core.Relation, error)

	// FindRelationByTriple finds a relation by its (from, to, type) triple.
	// Returns ErrNotFound if no matching relation exists.
	FindRelationByTriple(ctx context.Context, fromId, toId core.ID, relType string) (*core.Relation, error)

	// GetAllRelations retrieves every stored relation.
	GetAllRelations(ctx context.Context) ([]*core.Relation, error)
}

// DisambiguationRepository provides append-only storage for name resolutions.
type DisambiguationRepository interface {
	Repository
	// AppendRecord appends a disambiguation record. The first record for a
	// given (raw name, entity type) pair wins the lookup index; later
	// appends extend the history without changing the resolution.
	AppendRecord(ctx context.Context, record *core.DisambiguationRecord) error

	// FindResolution returns the recorded resolution for a raw name and
	// entity type. Returns ErrNotFound if the name has never been resolved.
	FindResolution(ctx context.Context, rawName string, entityType core.EntityType) (*core.DisambiguationRecord, error)

	// GetAllRecords retrieves the full resolution history.
	GetAllRecords(ctx context.Context) ([]*core.DisambiguationRecord, error)
}

// QualityRepository keeps one current assessment per subject.
type QualityRepository interface {
	Repository
	// PutAssessment stores an assessment, overwriting the previous row for
	// the same (subject kind, subject id).
	PutAssessment(ctx context.Context, assessment *core.QualityAssessment) error

	// GetAssessment retrieves the current assessment of a subject.
	// Returns ErrNotFound if the subject has never been assessed.
	GetAssessment(ctx context.Context, kind core.SubjectKind, id core.ID) (*core.QualityAssessment, error)

	// GetAllAssessments retrieves every current assessment.
	GetAllAssessments(ctx context.Context) ([]*core.QualityAssessment, error)
}

// StatisticsRepository keeps one roll-up row per date.
type StatisticsRepository interface {
	Repository
	// PutDailyStatistics upserts the row for stats.Date. Re-running the
	// roll-up for the same date overwrites rather than duplicates.
	PutDailyStatistics(ctx context.Context, stats *core.DailyStatistics) error

	// GetDailyStatistics retrieves the row for a date formatted as
	// core.StatisticsDateFormat. Returns ErrNotFound if absent.
	GetDailyStatistics(ctx context.Context, date string) (*core.DailyStatistics, error)
}

// CacheStore is the persistent slow tier of the result cache.
// Values are opaque serialized extractions keyed by fingerprint.
type CacheStore interface {
	// SetCached stores a serialized extraction with a time-to-live.
	SetCached(ctx context.Context, fingerprint uint64, value []byte, ttl time.Duration) error

	// GetCached retrieves a serialized extraction.
	// Returns ErrNotFound if absent or expired.
	GetCached(ctx context.Context, fingerprint uint64) ([]byte, error)
}
