package badger

import (
	"encoding/binary"
	"fmt"

	"github.com/poiesic/knograph/core"
)

// Key prefixes for different data types
const (
	entityRecordPrefix  = "entrec"
	entityTypePrefix    = "enttyp"
	relationPrefix      = "relrec"
	relationTriplePrefix = "reltri"
	disambRecordPrefix  = "disrec"
	disambNamePrefix    = "disraw"
	qualityPrefix       = "qualrec"
	statisticsPrefix    = "statrec"
	cacheRecordPrefix   = "cacherec"
)

// makeEntityKey generates a key for an entity by ID.
func makeEntityKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", entityRecordPrefix, id))
}

// makeEntityTypeKey generates a composite key for the type index.
// Format: prefix:type:id
func makeEntityTypeKey(entityType core.EntityType, id core.ID) []byte {
	prefix := entityTypePrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 9 // 1 byte for type + 8 bytes for ID
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	buf[offset] = byte(entityType)
	offset++
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makePartialEntityTypeKey generates a partial key for type scans.
// Format: prefix:type
func makePartialEntityTypeKey(entityType core.EntityType) []byte {
	prefix := entityTypePrefix + ":"
	prefixBytes := []byte(prefix)
	buf := make([]byte, len(prefixBytes)+1)
	offset := copy(buf, prefixBytes)
	buf[offset] = byte(entityType)
	return buf
}

// makeRelationKey generates a key for a relation by ID.
func makeRelationKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", relationPrefix, id))
}

// makeRelationTripleKey generates a composite key for the triple index.
// Format: prefix:fromId:toId:relType
func makeRelationTripleKey(fromId, toId core.ID, relType string) []byte {
	prefix := relationTriplePrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 16 + len(relType)
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(fromId))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(toId))
	offset += 8
	copy(buf[offset:], []byte(relType))
	return buf
}

// makeDisambRecordKey generates a key for a disambiguation history record.
// Format: prefix:id
func makeDisambRecordKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", disambRecordPrefix, id))
}

// makeDisambNameKey generates a composite key for the raw-name index.
// Format: prefix:type:rawName
func makeDisambNameKey(rawName string, entityType core.EntityType) []byte {
	prefix := disambNamePrefix + ":"
	prefixBytes := []byte(prefix)
	totalSize := len(prefixBytes) + 1 + len(rawName)
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	buf[offset] = byte(entityType)
	offset++
	copy(buf[offset:], []byte(rawName))
	return buf
}

// makeQualityKey generates a key for a quality assessment.
// Format: prefix:kind:subjectId
func makeQualityKey(kind core.SubjectKind, id core.ID) []byte {
	prefix := qualityPrefix + ":"
	prefixBytes := []byte(prefix)
	totalSize := len(prefixBytes) + 9 // 1 byte for kind + 8 bytes for ID
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	buf[offset] = byte(kind)
	offset++
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makeStatisticsKey generates a key for a daily statistics row.
// Dates in core.StatisticsDateFormat sort lexicographically.
func makeStatisticsKey(date string) []byte {
	return []byte(fmt.Sprintf("%s:%s", statisticsPrefix, date))
}

// makeCacheKey generates a key for a cached extraction by fingerprint.
func makeCacheKey(fingerprint uint64) []byte {
	prefix := cacheRecordPrefix + ":"
	prefixBytes := []byte(prefix)
	buf := make([]byte, len(prefixBytes)+8)
	offset := copy(buf, prefixBytes)
	binary.BigEndian.PutUint64(buf[offset:], fingerprint)
	return buf
}
