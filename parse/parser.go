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


// Package parse turns raw extraction payloads into typed records.
//
// The parser is lenient with record-level noise (missing optional fields,
// records without a name) and strict with structure: a payload that is not a
// JSON object or lacks the entities container is a hard parse failure.
package parse

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/poiesic/knograph/ai"
	"github.com/poiesic/knograph/core"
)

// RawEntity is a parsed but not yet disambiguated entity record.
type RawEntity struct {
	Name       string
	Type       core.EntityType
	Attributes map[string]string
	Confidence float64
}

// RawRelation is a parsed relation record whose endpoints are still raw names.
type RawRelation struct {
	SourceName string
	TargetName string
	RelType    string
	Confidence float64
	SourceInfo string
}

// Records is the typed output of one parse pass.
type Records struct {
	Entities  []RawEntity
	Relations []RawRelation
	TrustTier core.TrustTier
}

// Parser converts raw provider output into typed records.
type Parser struct {
	defaultConfidence float64
	logger            *slog.Logger
}

// NewParser creates a parser. defaultConfidence is assigned to records whose
// confidence the extractor did not report; it is clamped into [0,1].
func NewParser(defaultConfidence float64) *Parser {
	return &Parser{
		defaultConfidence: core.ClampScore(defaultConfidence),
		logger:            slog.Default().With("component", "parser"),
	}
}

// Parse decodes and validates a raw extraction.
//
// Structural failures (not JSON, missing entities container) return an error
// wrapping ErrMalformedPayload. Record-level problems (empty name, confidence
// out of range) are tolerated: the offending record is skipped or clamped.
// A missing relations container yields an empty relation list, not an error.
func (p *Parser) Parse(raw *ai.RawExtraction) (*Records, error) {
	if raw == nil {
		return nil, fmt.Errorf("%w: nil extraction", ErrMalformedPayload)
	}

	text := stripCodeFences(raw.Payload)
	text = repairJSON(text)

	var payload ai.Payload
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		p.logger.Warn("undecodable extraction payload", "err", err)
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	if payload.Entities == nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedPayload, ErrMissingEntities)
	}

	records := &Records{TrustTier: raw.TrustTier}

	p.appendEntities(records, payload.Entities.Persons, core.EntityTypePerson)
	p.appendEntities(records, payload.Entities.Works, core.EntityTypeWork)
	p.appendEntities(records, payload.Entities.Events, core.EntityTypeEvent)

	records.Relations = make([]RawRelation, 0, len(payload.Relations))
	skippedRelations := 0
	for _, wire := range payload.Relations {
		source := strings.TrimSpace(wire.Source)
		target := strings.TrimSpace(wire.Target)
		relType := strings.TrimSpace(wire.Type)
		if source == "" || target == "" || relType == "" {
			skippedRelations++
			continue
		}
		records.Relations = append(records.Relations, RawRelation{
			SourceName: source,
			TargetName: target,
			RelType:    relType,
			Confidence: p.confidence(wire.Confidence),
			SourceInfo: wire.SourceInfo,
		})
	}

	if skippedRelations > 0 {
		p.logger.Debug("skipped structurally invalid relations", "count", skippedRelations)
	}

	return records, nil
}

// appendEntities converts one wire container. The container decides the
// entity type; the per-record type tag is not guessed from attributes.
func (p *Parser) appendEntities(records *Records, wires []ai.WireEntity, entityType core.EntityType) {
	for _, wire := range wires {
		name := strings.TrimSpace(wire.Name)
		if name == "" {
			continue
		}
		records.Entities = append(records.Entities, RawEntity{
			Name:       name,
			Type:       entityType,
			Attributes: cloneAttributes(wire.Attributes),
			Confidence: p.confidence(wire.Confidence),
		})
	}
}

func (p *Parser) confidence(reported *float64) float64 {
	if reported == nil {
		return p.defaultConfidence
	}
	return core.ClampScore(*reported)
}

func cloneAttributes(attrs map[string]string) map[string]string {
	if len(attrs) == 0 {
		return nil
	}
	out := make(map[string]string, len(attrs))
	for k, v := range attrs {
		if strings.TrimSpace(v) == "" {
			continue
		}
		out[k] = v
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// stripCodeFences removes markdown code fences the model sometimes wraps
// around its JSON output.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
