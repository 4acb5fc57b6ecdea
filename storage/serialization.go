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


package storage

import (
	"github.com/poiesic/knograph/core"
)

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, core.IDMUS.Size(id))
	core.IDMUS.Marshal(id, buf)
	return buf
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	var id core.ID
	id, _, err := core.IDMUS.Unmarshal(data)
	return id, err
}

// MarshalEntity serializes an Entity to bytes.
func MarshalEntity(entity *core.Entity) []byte {
	buf := make([]byte, core.EntityMUS.Size(*entity))
	core.EntityMUS.Marshal(*entity, buf)
	return buf
}

// UnmarshalEntity deserializes an Entity from bytes.
func UnmarshalEntity(data []byte) (*core.Entity, error) {
	entity, _, err := core.EntityMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &entity, nil
}

// MarshalRelation serializes a Relation to bytes.
func MarshalRelation(relation *core.Relation) []byte {
	buf := make([]byte, core.RelationMUS.Size(*relation))
	core.RelationMUS.Marshal(*relation, buf)
	return buf
}

// UnmarshalRelation deserializes a Relation from bytes.
func UnmarshalRelation(data []byte) (*core.Relation, error) {
	relation, _, err := core.RelationMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &relation, nil
}

// MarshalDisambiguationRecord serializes a DisambiguationRecord to bytes.
func MarshalDisambiguationRecord(record *core.DisambiguationRecord) []byte {
	buf := make([]byte, core.DisambiguationRecordMUS.Size(*record))
	core.DisambiguationRecordMUS.Marshal(*record, buf)
	return buf
}

// UnmarshalDisambiguationRecord deserializes a DisambiguationRecord from bytes.
func UnmarshalDisambiguationRecord(data []byte) (*core.DisambiguationRecord, error) {
	record, _, err := core.DisambiguationRecordMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// MarshalQualityAssessment serializes a QualityAssessment to bytes.
func MarshalQualityAssessment(assessment *core.QualityAssessment) []byte {
	buf := make([]byte, core.QualityAssessmentMUS.Size(*assessment))
	core.QualityAssessmentMUS.Marshal(*assessment, buf)
	return buf
}

// UnmarshalQualityAssessment deserializes a QualityAssessment from bytes.
func UnmarshalQualityAssessment(data []byte) (*core.QualityAssessment, error) {
	assessment, _, err := core.QualityAssessmentMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &assessment, nil
}

// MarshalDailyStatistics serializes a DailyStatistics to bytes.
func MarshalDailyStatistics(stats *core.DailyStatistics) []byte {
	buf := make([]byte, core.DailyStatisticsMUS.Size(*stats))
	core.DailyStatisticsMUS.Marshal(*stats, buf)
	return buf
}

// UnmarshalDailyStatistics deserializes a DailyStatistics from bytes.
func UnmarshalDailyStatistics(data []byte) (*core.DailyStatistics, error) {
	stats, _, err := core.DailyStatisticsMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// MarshalCachedExtraction serializes a CachedExtraction to bytes.
func MarshalCachedExtraction(cached *core.CachedExtraction) []byte {
	buf := make([]byte, core.CachedExtractionMUS.Size(*cached))
	core.CachedExtractionMUS.Marshal(*cached, buf)
	return buf
}

// UnmarshalCachedExtraction deserializes a CachedExtraction from bytes.
func UnmarshalCachedExtraction(data []byte) (*core.CachedExtraction, error) {
	cached, _, err := core.CachedExtractionMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &cached, nil
}
