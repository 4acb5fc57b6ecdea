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


package badger

import "github.com/poiesic/knograph/storage"

// MemoryRepositories bundles the in-memory repositories used by tests.
type MemoryRepositories struct {
	Entities        storage.EntityRepository
	Relations       storage.RelationRepository
	Disambiguations storage.DisambiguationRepository
	Quality         storage.QualityRepository
	Statistics      storage.StatisticsRepository
	Cache           storage.CacheStore
	Backend         *Backend
}

// NewMemoryRepositories creates in-memory repositories for testing.
// Caller must call Close when done.
func NewMemoryRepositories() (*MemoryRepositories, error) {
	backend, err := OpenBackend("", true)
	if err != nil {
		return nil, err
	}

	entities, err := NewEntityRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}
	relations, err := NewRelationRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}
	disambiguations, err := NewDisambiguationRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}
	quality, err := NewQualityRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}
	statistics, err := NewStatisticsRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}
	cache, err := NewCacheStore(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	return &MemoryRepositories{
		Entities:        entities,
		Relations:       relations,
		Disambiguations: disambiguations,
		Quality:         quality,
		Statistics:      statistics,
		Cache:           cache,
		Backend:         backend,
	}, nil
}

// Close closes all repositories and the backing database.
func (m *MemoryRepositories) Close() error {
	m.Entities.Close()
	m.Relations.Close()
	m.Disambiguations.Close()
	m.Quality.Close()
	m.Statistics.Close()
	return m.Backend.Close()
}
