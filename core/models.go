package core

//go:generate go run ../cmd/musgen

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing so identical content
// always resolves to the same identifier.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// EntityType identifies the kind of a knowledge-graph entity.
type EntityType int

const (
	// EntityTypePerson represents a person.
	EntityTypePerson EntityType = iota + 1
	// EntityTypeWork represents a creative work (film, book, album, ...).
	EntityTypeWork
	// EntityTypeEvent represents an event.
	EntityTypeEvent
)

// String returns the lowercase name of the entity type.
func (t EntityType) String() string {
	switch t {
	case EntityTypePerson:
		return "person"
	case EntityTypeWork:
		return "work"
	case EntityTypeEvent:
		return "event"
	default:
		return "unknown"
	}
}

// TrustTier marks where an extraction result came from.
// Fallback results are produced by the local heuristic extractor and are
// penalized downstream.
type TrustTier int

const (
	// TrustTierProvider marks a result produced by the inference provider.
	TrustTierProvider TrustTier = iota + 1
	// TrustTierFallback marks a result produced by the local fallback extractor.
	TrustTierFallback
)

// Entity represents a canonical knowledge-graph entity.
// It is owned by the graph writer and mutated only through upsert.
type Entity struct {
	Id         ID
	Type       EntityType
	Name       string            // Canonical display name
	Attributes map[string]string // Type-specific attributes (e.g. nationality, work_type)
	Confidence float64           // [0,1] estimate of correctness
	Version    uint32            // Starts at 1, +1 per accepted update
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Tuple returns a string representation of the entity identity as "(type,name)".
// This is used for generating deterministic IDs.
func (e *Entity) Tuple() string {
	return "(" + e.Type.String() + "," + e.Name + ")"
}

// Relation represents a typed edge between two entities.
// Uniqueness is logical on (FromId, ToId, RelType); duplicates are merged.
// Endpoints may reference entities that do not (yet) exist in storage.
type Relation struct {
	Id         ID
	FromId     ID
	ToId       ID
	RelType    string
	Confidence float64
	SourceInfo string // Provenance of the extraction
	Version    uint32
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Triple returns a string representation of the relation identity combining
// both endpoints and the relation type. This is used for generating
// deterministic IDs and for logical dedup.
func (r *Relation) Triple() string {
	var buf [16]byte
	binary.BigEndian.PutUint64(buf[:8], uint64(r.FromId))
	binary.BigEndian.PutUint64(buf[8:], uint64(r.ToId))
	return "(" + string(buf[:]) + "," + r.RelType + ")"
}

// DisambiguationRecord captures one resolution of a raw observed name to a
// canonical entity. Records are append-only; the history of resolutions is kept.
type DisambiguationRecord struct {
	Id            ID
	RawName       string
	CanonicalName string
	CanonicalId   ID
	Similarity    float64 // [0,1] similarity between raw and canonical name
	Rule          string  // Strategy identifier, e.g. "similarity-merge", "new-entity"
	EntityType    EntityType
	Context       string // Free-form extraction context
	CreatedAt     time.Time
}

// Tuple returns a string representation of the resolution identity as
// "(type,rawName)". This is used for generating deterministic record IDs.
func (d *DisambiguationRecord) Tuple() string {
	return "(" + d.EntityType.String() + "," + d.RawName + ")"
}

// SubjectKind identifies what a quality assessment applies to.
type SubjectKind int

const (
	// SubjectKindEntity marks an assessment of an entity.
	SubjectKindEntity SubjectKind = iota + 1
	// SubjectKindRelation marks an assessment of a relation.
	SubjectKindRelation
)

// AssessmentMethod identifies how a quality assessment was produced.
type AssessmentMethod int

const (
	// MethodAuto marks an automatically computed assessment.
	MethodAuto AssessmentMethod = iota + 1
	// MethodManual marks a human-supplied assessment.
	MethodManual
	// MethodHybrid marks an assessment combining both.
	MethodHybrid
)

// QualityGrade is a discrete quality bucket derived from a quality score.
type QualityGrade int

const (
	// GradeVeryPoor is a quality score below 0.25.
	GradeVeryPoor QualityGrade = iota + 1
	// GradePoor is a quality score in [0.25, 0.5).
	GradePoor
	// GradeFair is a quality score in [0.5, 0.75).
	GradeFair
	// GradeGood is a quality score in [0.75, 0.9).
	GradeGood
	// GradeExcellent is a quality score of 0.9 or above.
	GradeExcellent
)

// Fixed grade thresholds. GradeForScore is a pure function of the score.
const (
	gradeThresholdExcellent = 0.90
	gradeThresholdGood      = 0.75
	gradeThresholdFair      = 0.50
	gradeThresholdPoor      = 0.25
)

// GradeForScore maps a quality score to its grade bucket.
func GradeForScore(score float64) QualityGrade {
	switch {
	case score >= gradeThresholdExcellent:
		return GradeExcellent
	case score >= gradeThresholdGood:
		return GradeGood
	case score >= gradeThresholdFair:
		return GradeFair
	case score >= gradeThresholdPoor:
		return GradePoor
	default:
		return GradeVeryPoor
	}
}

// String returns the canonical uppercase grade name.
func (g QualityGrade) String() string {
	switch g {
	case GradeExcellent:
		return "EXCELLENT"
	case GradeGood:
		return "GOOD"
	case GradeFair:
		return "FAIR"
	case GradePoor:
		return "POOR"
	default:
		return "VERY_POOR"
	}
}

// QualityAssessment holds the quality sub-scores for one entity or relation.
// There is one current row per subject; re-assessment overwrites the sub-scores
// and bumps LastAssessed.
type QualityAssessment struct {
	SubjectKind  SubjectKind
	SubjectId    ID
	Completeness float64 // Fraction of expected fields that are non-empty
	Consistency  float64 // Fraction of cross-field sanity checks passed
	Accuracy     float64 // Inference confidence unless manually overridden
	QualityScore float64 // Weighted average of the three sub-scores
	Grade        QualityGrade
	Issues       []string
	Suggestions  []string
	Method       AssessmentMethod
	LastAssessed time.Time
}

// DailyStatistics is one roll-up row per calendar date.
// Re-running the roll-up for the same date overwrites the row.
type DailyStatistics struct {
	Date                string // "2006-01-02", unique per row
	TotalEntities       int
	TotalRelations      int
	PersonCount         int
	WorkCount           int
	EventCount          int
	AvgQuality          float64
	DisambiguationRate  float64 // Fraction of resolutions merged into an existing entity
	HighQualityEntities int     // Entities with quality score >= 0.8
	ComputedAt          time.Time
}

// CachedExtraction is the unit stored in the result cache: the fully resolved
// output of one extraction pass.
type CachedExtraction struct {
	Entities  []Entity
	Relations []Relation
	TrustTier TrustTier
	CachedAt  time.Time
}
