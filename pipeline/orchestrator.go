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

// Package pipeline wires extraction, parsing, disambiguation, scoring and
// graph writes into a single text ingestion flow. The Orchestrator is the
// entry point: it checks the cache, drives the inference gateway, resolves
// entity mentions to canonical ids and persists the result, returning a
// structured Response either way.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"

	"github.com/poiesic/knograph/ai"
	"github.com/poiesic/knograph/cache"
	"github.com/poiesic/knograph/core"
	"github.com/poiesic/knograph/disambiguate"
	"github.com/poiesic/knograph/gateway"
	"github.com/poiesic/knograph/graph"
	"github.com/poiesic/knograph/parse"
	"github.com/poiesic/knograph/quality"
	"github.com/poiesic/knograph/storage"
)

const (
	defaultBatchWorkers   = 4
	defaultRequestTimeout = 2 * time.Minute
	batchDrainGracePeriod = 10 * time.Second
)

// Orchestrator runs the full ingestion flow for a piece of text.
type Orchestrator struct {
	gateway       *gateway.Gateway
	cache         *cache.TieredCache
	parser        *parse.Parser
	disambiguator *disambiguate.Disambiguator
	scorer        *quality.Scorer
	writer        *graph.Writer
	assessments   storage.QualityRepository

	batchWorkers   int
	batchPool      *ants.Pool
	requestTimeout time.Duration
	logger         *slog.Logger
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithBatchWorkers sets the number of concurrent workers used by
// ProcessBatch.
func WithBatchWorkers(n int) Option {
	return func(o *Orchestrator) {
		if n > 0 {
			o.batchWorkers = n
		}
	}
}

// WithRequestTimeout bounds the wall-clock time of one Process call.
func WithRequestTimeout(d time.Duration) Option {
	return func(o *Orchestrator) {
		if d > 0 {
			o.requestTimeout = d
		}
	}
}

// WithLogger sets the logger used by the orchestrator.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger.With("component", "pipeline")
		}
	}
}

// NewOrchestrator creates an Orchestrator over the given collaborators.
// All of them are required.
func NewOrchestrator(
	gw *gateway.Gateway,
	tiered *cache.TieredCache,
	parser *parse.Parser,
	disambiguator *disambiguate.Disambiguator,
	scorer *quality.Scorer,
	writer *graph.Writer,
	assessments storage.QualityRepository,
	opts ...Option,
) (*Orchestrator, error) {
	if gw == nil {
		return nil, ErrGatewayRequired
	}
	if tiered == nil {
		return nil, ErrCacheRequired
	}
	if parser == nil {
		return nil, ErrParserRequired
	}
	if disambiguator == nil {
		return nil, ErrDisambiguatorRequired
	}
	if scorer == nil {
		return nil, ErrScorerRequired
	}
	if writer == nil {
		return nil, ErrWriterRequired
	}
	if assessments == nil {
		return nil, ErrQualityRepositoryRequired
	}

	o := &Orchestrator{
		gateway:        gw,
		cache:          tiered,
		parser:         parser,
		disambiguator:  disambiguator,
		scorer:         scorer,
		writer:         writer,
		assessments:    assessments,
		batchWorkers:   defaultBatchWorkers,
		requestTimeout: defaultRequestTimeout,
		logger:         slog.Default().With("component", "pipeline"),
	}
	for _, opt := range opts {
		opt(o)
	}

	pool, err := ants.NewPool(o.batchWorkers)
	if err != nil {
		return nil, err
	}
	o.batchPool = pool
	return o, nil
}

// Close drains the batch worker pool, waiting up to a grace period for
// running jobs.
func (o *Orchestrator) Close() {
	if err := o.batchPool.ReleaseTimeout(batchDrainGracePeriod); err != nil {
		o.logger.Warn("batch pool drain timed out", "error", err)
	}
}

// Process ingests one piece of text. It never returns an error; failures are
// reported through the Response so callers and transports see a uniform
// shape. A cache hit short-circuits the provider entirely and is marked in
// the response metadata.
func (o *Orchestrator) Process(ctx context.Context, text string, opts ai.ExtractOptions) *Response {
	start := time.Now()
	requestId := uuid.NewString()

	if strings.TrimSpace(text) == "" {
		return failureResponse("empty input text")
	}

	fingerprint := cache.Fingerprint(text, opts)

	if cached, ok := o.cache.Get(ctx, fingerprint); ok {
		o.logger.Debug("cache hit", "request_id", requestId, "fingerprint", fingerprint)
		return o.respond(cached, requestId, true, start)
	}

	// The provider call and everything past it run detached from the
	// caller, bounded only by the request timeout. An abandoned request
	// still finishes and populates the cache; the caller just stops
	// waiting for the answer.
	workCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), o.requestTimeout)
	done := make(chan *Response, 1)
	go func() {
		defer cancel()
		done <- o.execute(workCtx, requestId, text, fingerprint, opts, start)
	}()

	select {
	case resp := <-done:
		return resp
	case <-ctx.Done():
		o.logger.Info("caller gone, finishing in background", "request_id", requestId)
		return failureResponse("request cancelled")
	}
}

// execute runs the extraction stages for one request and caches the result.
func (o *Orchestrator) execute(ctx context.Context, requestId, text string, fingerprint uint64, opts ai.ExtractOptions, start time.Time) *Response {
	raw, err := o.gateway.Extract(ctx, text, opts)
	if err != nil {
		o.logger.Warn("extraction failed", "request_id", requestId, "error", err)
		switch {
		case errors.Is(err, gateway.ErrOverloaded):
			return failureResponse("service overloaded, retry later")
		case ctx.Err() != nil:
			return failureResponse("request cancelled")
		default:
			return failureResponse("extraction failed")
		}
	}

	// A result arriving near the request deadline is still ingested and
	// cached so a retry of the same text becomes a hit
	ctx = context.WithoutCancel(ctx)

	records, err := o.parser.Parse(raw)
	if err != nil {
		o.logger.Warn("unparseable provider payload", "request_id", requestId, "model", raw.Model, "error", err)
		return failureResponse("invalid provider response")
	}

	extraction, err := o.ingest(ctx, text, records)
	if err != nil {
		o.logger.Error("ingestion failed", "request_id", requestId, "error", err)
		return failureResponse("ingestion failed")
	}

	o.cache.Put(ctx, fingerprint, extraction)

	return o.respond(extraction, requestId, false, start)
}

// ProcessBatch runs Process over every text concurrently and returns the
// responses in input order.
func (o *Orchestrator) ProcessBatch(ctx context.Context, texts []string, opts ai.ExtractOptions) []*Response {
	responses := make([]*Response, len(texts))
	if len(texts) == 0 {
		return responses
	}

	var wg sync.WaitGroup
	for i, text := range texts {
		wg.Add(1)
		if submitErr := o.batchPool.Submit(func() {
			defer wg.Done()
			responses[i] = o.Process(ctx, text, opts)
		}); submitErr != nil {
			wg.Done()
			responses[i] = o.Process(ctx, text, opts)
		}
	}
	wg.Wait()
	return responses
}

// ProcessSocial ingests text with the extraction focused on interpersonal
// relations.
func (o *Orchestrator) ProcessSocial(ctx context.Context, text string, opts ai.ExtractOptions) *Response {
	opts.Mode = ai.ModeSocial
	return o.Process(ctx, text, opts)
}

// resolvedMention maps a raw provider name to its canonical identity.
type resolvedMention struct {
	id   core.ID
	name string
}

// ingest resolves, scores and persists parsed records, returning the stored
// extraction used for both the response and the cache entry.
func (o *Orchestrator) ingest(ctx context.Context, text string, records *parse.Records) (*core.CachedExtraction, error) {
	tier := records.TrustTier

	// Resolve every mention first, collapsing raw names that map to the
	// same canonical id into a single entity before anything is written.
	mentions := make(map[string]resolvedMention, len(records.Entities))
	merged := make(map[core.ID]*core.Entity, len(records.Entities))
	order := make([]core.ID, 0, len(records.Entities))

	for i := range records.Entities {
		rawEntity := &records.Entities[i]
		record, err := o.disambiguator.Resolve(ctx, rawEntity.Name, rawEntity.Type, text)
		if err != nil {
			return nil, fmt.Errorf("resolving %q: %w", rawEntity.Name, err)
		}
		mentions[mentionKey(rawEntity.Name, rawEntity.Type)] = resolvedMention{
			id:   record.CanonicalId,
			name: record.CanonicalName,
		}

		if existing, ok := merged[record.CanonicalId]; ok {
			mergeMention(existing, rawEntity)
			continue
		}
		merged[record.CanonicalId] = &core.Entity{
			Id:         record.CanonicalId,
			Type:       rawEntity.Type,
			Name:       record.CanonicalName,
			Attributes: cloneAttributes(rawEntity.Attributes),
			Confidence: rawEntity.Confidence,
		}
		order = append(order, record.CanonicalId)
	}

	extraction := &core.CachedExtraction{
		Entities:  make([]core.Entity, 0, len(order)),
		Relations: make([]core.Relation, 0, len(records.Relations)),
		TrustTier: tier,
		CachedAt:  time.Now(),
	}

	for _, id := range order {
		stored, err := o.writer.UpsertEntity(ctx, merged[id])
		if err != nil {
			return nil, fmt.Errorf("upserting entity %q: %w", merged[id].Name, err)
		}
		o.assess(ctx, o.scorer.ScoreEntity(stored, tier))
		extraction.Entities = append(extraction.Entities, *stored)
	}

	for i := range records.Relations {
		rawRelation := &records.Relations[i]
		from, err := o.resolveEndpoint(ctx, mentions, rawRelation.SourceName, text)
		if err != nil {
			return nil, err
		}
		to, err := o.resolveEndpoint(ctx, mentions, rawRelation.TargetName, text)
		if err != nil {
			return nil, err
		}

		relation := &core.Relation{
			FromId:     from.id,
			ToId:       to.id,
			RelType:    rawRelation.RelType,
			Confidence: rawRelation.Confidence,
			SourceInfo: rawRelation.SourceInfo,
		}
		stored, err := o.writer.UpsertRelation(ctx, relation)
		if err != nil {
			return nil, fmt.Errorf("upserting relation %q: %w", rawRelation.RelType, err)
		}
		o.assess(ctx, o.scorer.ScoreRelation(stored, tier))
		extraction.Relations = append(extraction.Relations, *stored)
	}

	o.logger.Info("text ingested",
		"entities", len(extraction.Entities),
		"relations", len(extraction.Relations),
		"tier", tierName(tier))
	return extraction, nil
}

// resolveEndpoint maps a relation endpoint name to a canonical id. Names that
// never appeared in the entity list are resolved as persons; the resulting
// relation may reference an entity that does not exist yet, which the graph
// tolerates.
func (o *Orchestrator) resolveEndpoint(ctx context.Context, mentions map[string]resolvedMention, name, text string) (resolvedMention, error) {
	for _, entityType := range []core.EntityType{core.EntityTypePerson, core.EntityTypeWork, core.EntityTypeEvent} {
		if mention, ok := mentions[mentionKey(name, entityType)]; ok {
			return mention, nil
		}
	}

	record, err := o.disambiguator.Resolve(ctx, name, core.EntityTypePerson, text)
	if err != nil {
		return resolvedMention{}, fmt.Errorf("resolving endpoint %q: %w", name, err)
	}
	mention := resolvedMention{id: record.CanonicalId, name: record.CanonicalName}
	mentions[mentionKey(name, core.EntityTypePerson)] = mention
	return mention, nil
}

// assess persists a quality assessment. Scoring is advisory, so a failed
// write is logged rather than failing the ingestion.
func (o *Orchestrator) assess(ctx context.Context, assessment *core.QualityAssessment) {
	if err := o.assessments.PutAssessment(ctx, assessment); err != nil {
		o.logger.Warn("assessment write failed",
			"subject", assessment.SubjectId,
			"error", err)
	}
}

// respond builds the success response for a stored extraction. Cache hits
// and fresh results go through the same code path so both render the same
// content.
func (o *Orchestrator) respond(extraction *core.CachedExtraction, requestId string, cacheHit bool, start time.Time) *Response {
	names := make(map[core.ID]string, len(extraction.Entities))
	lists := EntityLists{}
	var confidenceSum float64
	var confidenceCount int

	for i := range extraction.Entities {
		entity := &extraction.Entities[i]
		names[entity.Id] = entity.Name
		view := EntityView{
			Name:       entity.Name,
			Type:       entity.Type.String(),
			Attributes: entity.Attributes,
			Confidence: entity.Confidence,
		}
		switch entity.Type {
		case core.EntityTypePerson:
			lists.Persons = append(lists.Persons, view)
		case core.EntityTypeWork:
			lists.Works = append(lists.Works, view)
		case core.EntityTypeEvent:
			lists.Events = append(lists.Events, view)
		}
		confidenceSum += entity.Confidence
		confidenceCount++
	}

	relations := make([]RelationView, 0, len(extraction.Relations))
	for i := range extraction.Relations {
		relation := &extraction.Relations[i]
		source, sourceOk := names[relation.FromId]
		target, targetOk := names[relation.ToId]
		if !sourceOk || !targetOk {
			// Endpoint outside this extraction, nothing to render.
			continue
		}
		relations = append(relations, RelationView{
			Source: source,
			Target: target,
			Type:   relation.RelType,
		})
		confidenceSum += relation.Confidence
		confidenceCount++
	}

	metadata := Metadata{
		RequestId:      requestId,
		ProcessingTime: time.Since(start).String(),
		CacheHit:       cacheHit,
		TrustTier:      tierName(extraction.TrustTier),
	}
	if confidenceCount > 0 {
		mean := confidenceSum / float64(confidenceCount)
		metadata.Confidence = &mean
	}

	return &Response{
		Success: true,
		Data: &Data{
			Entities:  lists,
			Relations: relations,
		},
		Metadata:  &metadata,
		Timestamp: time.Now().UTC(),
	}
}

func mentionKey(name string, entityType core.EntityType) string {
	return entityType.String() + "\x00" + strings.TrimSpace(name)
}

func mergeMention(dst *core.Entity, src *parse.RawEntity) {
	if dst.Attributes == nil && len(src.Attributes) > 0 {
		dst.Attributes = make(map[string]string, len(src.Attributes))
	}
	for key, value := range src.Attributes {
		if value == "" {
			continue
		}
		if existing, ok := dst.Attributes[key]; !ok || existing == "" || src.Confidence > dst.Confidence {
			dst.Attributes[key] = value
		}
	}
	if src.Confidence > dst.Confidence {
		dst.Confidence = src.Confidence
	}
}

func cloneAttributes(attrs map[string]string) map[string]string {
	if len(attrs) == 0 {
		return nil
	}
	out := make(map[string]string, len(attrs))
	for key, value := range attrs {
		out[key] = value
	}
	return out
}
