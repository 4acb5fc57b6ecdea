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


package knograph

import (
	"context"
	"log/slog"
	"os"

	"github.com/poiesic/knograph/ai"
	"github.com/poiesic/knograph/ai/fallback"
	"github.com/poiesic/knograph/ai/openai"
	"github.com/poiesic/knograph/cache"
	"github.com/poiesic/knograph/core"
	"github.com/poiesic/knograph/disambiguate"
	"github.com/poiesic/knograph/gateway"
	"github.com/poiesic/knograph/graph"
	"github.com/poiesic/knograph/parse"
	"github.com/poiesic/knograph/pipeline"
	"github.com/poiesic/knograph/quality"
	"github.com/poiesic/knograph/reassess"
	"github.com/poiesic/knograph/stats"
	"github.com/poiesic/knograph/storage"
	"github.com/poiesic/knograph/storage/badger"
)

// Service bundles the storage, cache, gateway and pipeline of one knowledge
// graph instance behind a single handle.
type Service struct {
	backend         *badger.Backend
	entities        storage.EntityRepository
	relations       storage.RelationRepository
	disambiguations storage.DisambiguationRepository
	quality         storage.QualityRepository
	statistics      storage.StatisticsRepository

	tiered       *cache.TieredCache
	gateway      *gateway.Gateway
	orchestrator *pipeline.Orchestrator
	registry     *pipeline.Registry
	aggregator   *stats.Aggregator
	scheduler    *stats.Scheduler
	scorer       *quality.Scorer
	logger       *slog.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*serviceOptions)

type serviceOptions struct {
	aiConfig      *ai.Config
	gatewayConfig gateway.Config
	extractor     ai.Extractor
	inMemory      bool
	schedule      string
	logger        *slog.Logger
}

// WithAIConfig sets the provider configuration used to build the default
// extractor.
func WithAIConfig(config *ai.Config) ServiceOption {
	return func(o *serviceOptions) {
		if config != nil {
			o.aiConfig = config
		}
	}
}

// WithGatewayConfig overrides the gateway concurrency and retry settings.
func WithGatewayConfig(config gateway.Config) ServiceOption {
	return func(o *serviceOptions) {
		o.gatewayConfig = config
	}
}

// WithExtractor injects a custom primary extractor, bypassing the OpenAI
// client. Mainly for tests and local experimentation.
func WithExtractor(extractor ai.Extractor) ServiceOption {
	return func(o *serviceOptions) {
		o.extractor = extractor
	}
}

// WithInMemoryStorage keeps the whole database in memory.
func WithInMemoryStorage() ServiceOption {
	return func(o *serviceOptions) {
		o.inMemory = true
	}
}

// WithStatsSchedule sets the cron expression of the nightly roll-up.
func WithStatsSchedule(schedule string) ServiceOption {
	return func(o *serviceOptions) {
		if schedule != "" {
			o.schedule = schedule
		}
	}
}

// WithServiceLogger sets the logger shared by all components.
func WithServiceLogger(logger *slog.Logger) ServiceOption {
	return func(o *serviceOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// NewService opens the database at filePath and wires up the full pipeline.
// Callers must Close the returned service.
func NewService(filePath string, opts ...ServiceOption) (*Service, error) {
	options := &serviceOptions{
		aiConfig:      ai.DefaultConfig(),
		gatewayConfig: gateway.DefaultConfig(),
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	entities, err := badger.NewEntityRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}
	relations, err := badger.NewRelationRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}
	disambiguations, err := badger.NewDisambiguationRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}
	assessments, err := badger.NewQualityRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}
	statistics, err := badger.NewStatisticsRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}
	cacheStore, err := badger.NewCacheStore(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	tiered, err := cache.NewTieredCache(cacheStore, cache.WithLogger(options.logger))
	if err != nil {
		backend.Close()
		return nil, err
	}

	extractor := options.extractor
	if extractor == nil {
		extractor, err = openai.NewExtractor(options.aiConfig)
		if err != nil {
			tiered.Close()
			backend.Close()
			return nil, err
		}
	}

	gatewayOpts := []gateway.Option{
		gateway.WithConfig(options.gatewayConfig),
		gateway.WithLogger(options.logger),
	}
	if options.gatewayConfig.EnableFallback {
		heuristic, err := fallback.NewExtractor(options.aiConfig)
		if err != nil {
			tiered.Close()
			backend.Close()
			return nil, err
		}
		gatewayOpts = append(gatewayOpts, gateway.WithFallback(heuristic))
	}
	gw, err := gateway.NewGateway(extractor, gatewayOpts...)
	if err != nil {
		tiered.Close()
		backend.Close()
		return nil, err
	}

	disambiguator, err := disambiguate.NewDisambiguator(context.Background(),
		entities, disambiguations,
		disambiguate.WithCache(tiered),
		disambiguate.WithLogger(options.logger))
	if err != nil {
		gw.Release()
		tiered.Close()
		backend.Close()
		return nil, err
	}

	writer, err := graph.NewWriter(entities, relations, graph.WithLogger(options.logger))
	if err != nil {
		gw.Release()
		tiered.Close()
		backend.Close()
		return nil, err
	}

	scorer := quality.NewScorer()

	orchestrator, err := pipeline.NewOrchestrator(gw, tiered, parserFor(options.aiConfig),
		disambiguator, scorer, writer, assessments,
		pipeline.WithLogger(options.logger))
	if err != nil {
		gw.Release()
		tiered.Close()
		backend.Close()
		return nil, err
	}

	aggregator, err := stats.NewAggregator(entities, relations, disambiguations,
		assessments, statistics, options.logger)
	if err != nil {
		gw.Release()
		tiered.Close()
		backend.Close()
		return nil, err
	}

	schedulerOpts := []stats.SchedulerOption{stats.WithSchedulerLogger(options.logger)}
	if options.schedule != "" {
		schedulerOpts = append(schedulerOpts, stats.WithSchedule(options.schedule))
	}
	scheduler, err := stats.NewScheduler(aggregator, schedulerOpts...)
	if err != nil {
		gw.Release()
		tiered.Close()
		backend.Close()
		return nil, err
	}

	return &Service{
		backend:         backend,
		entities:        entities,
		relations:       relations,
		disambiguations: disambiguations,
		quality:         assessments,
		statistics:      statistics,
		tiered:          tiered,
		gateway:         gw,
		orchestrator:    orchestrator,
		registry:        pipeline.NewRegistry(orchestrator, aggregator),
		aggregator:      aggregator,
		scheduler:       scheduler,
		scorer:          scorer,
		logger:          options.logger,
	}, nil
}

// Close releases the gateway worker pool, stops the scheduler, shuts down
// the in-process cache tiers and closes the repositories and the backing
// database.
func (s *Service) Close() error {
	s.scheduler.Stop()
	s.orchestrator.Close()
	s.gateway.Release()
	s.tiered.Close()

	if err := s.entities.Close(); err != nil {
		s.logger.Error("error closing entity repository", "err", err)
		return err
	}
	if err := s.relations.Close(); err != nil {
		s.logger.Error("error closing relation repository", "err", err)
		return err
	}
	if err := s.disambiguations.Close(); err != nil {
		s.logger.Error("error closing disambiguation repository", "err", err)
		return err
	}
	if err := s.quality.Close(); err != nil {
		s.logger.Error("error closing quality repository", "err", err)
		return err
	}
	if err := s.statistics.Close(); err != nil {
		s.logger.Error("error closing statistics repository", "err", err)
		return err
	}
	if err := s.backend.Close(); err != nil {
		s.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

// Dispatch runs a named operation through the registry.
func (s *Service) Dispatch(ctx context.Context, operation string, req pipeline.Request) (*pipeline.Response, error) {
	return s.registry.Dispatch(ctx, operation, req)
}

// Operations returns the names the registry accepts.
func (s *Service) Operations() []string {
	return s.registry.Operations()
}

// Process ingests one piece of text through the full pipeline.
func (s *Service) Process(ctx context.Context, text string, opts ai.ExtractOptions) *pipeline.Response {
	return s.orchestrator.Process(ctx, text, opts)
}

// ProcessSocial ingests text with the extraction focused on interpersonal
// relations.
func (s *Service) ProcessSocial(ctx context.Context, text string, opts ai.ExtractOptions) *pipeline.Response {
	return s.orchestrator.ProcessSocial(ctx, text, opts)
}

// ProcessBatch ingests several texts concurrently.
func (s *Service) ProcessBatch(ctx context.Context, texts []string, opts ai.ExtractOptions) []*pipeline.Response {
	return s.orchestrator.ProcessBatch(ctx, texts, opts)
}

// Rollup recomputes the statistics row for a date.
func (s *Service) Rollup(ctx context.Context, date string) (*core.DailyStatistics, error) {
	return s.aggregator.Rollup(ctx, date)
}

// StartScheduler begins running the nightly statistics roll-up.
func (s *Service) StartScheduler() {
	s.scheduler.Start()
}

// NewReassessor builds a reassessor over this service's storage. Progress is
// written to stderr.
func (s *Service) NewReassessor(config *reassess.Config) (*reassess.Reassessor, error) {
	return reassess.NewReassessor(s.entities, s.relations, s.quality, s.scorer, config, os.Stderr)
}

// EntityRepository exposes the entity store for read access.
func (s *Service) EntityRepository() storage.EntityRepository {
	return s.entities
}

// RelationRepository exposes the relation store for read access.
func (s *Service) RelationRepository() storage.RelationRepository {
	return s.relations
}

// StatisticsRepository exposes the statistics store for read access.
func (s *Service) StatisticsRepository() storage.StatisticsRepository {
	return s.statistics
}

func parserFor(config *ai.Config) *parse.Parser {
	return parse.NewParser(config.DefaultConfidence)
}
