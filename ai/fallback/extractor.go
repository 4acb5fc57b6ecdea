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


// Package fallback implements a local, low-confidence heuristic extractor.
// It is used by the inference gateway when all provider retries are
// exhausted, so a degraded result is still better than none. Results carry
// the fallback trust tier and a capped confidence so downstream scoring
// penalizes them.
package fallback

import (
	"context"
	"encoding/json"
	"log/slog"
	"regexp"
	"strings"

	"github.com/poiesic/knograph/ai"
	"github.com/poiesic/knograph/core"
)

// Extractor implements ai.Extractor with pattern-based heuristics.
// It never calls out to the network.
type Extractor struct {
	confidence float64
	logger     *slog.Logger
}

var (
	// Titles inside CJK book-title marks or double quotes.
	titleMarkPattern = regexp.MustCompile(`《([^《》]+)》|“([^“”]+)”`)

	// Han-character run immediately preceding a role verb.
	cjkSubjectVerb = regexp.MustCompile(`(\p{Han}{2,4})(主演|导演|执导|出演|饰演|编剧|演唱)`)

	// Two or more capitalized Latin words in a row.
	latinName = regexp.MustCompile(`\b[A-Z][a-z]+(?: [A-Z][a-z]+)+\b`)

	// English role verbs connecting a name to a quoted title.
	latinVerb = regexp.MustCompile(`\b(directed|starred in|wrote|composed)\b`)

	eventHint = regexp.MustCompile(`(\p{Han}{2,8}(?:典礼|晚会|电影节|颁奖礼))|\b([A-Z][a-z]+ (?:Festival|Awards|Ceremony))\b`)
)

// newExtractor is an internal constructor that returns the concrete type.
func newExtractor(config *ai.Config) (*Extractor, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Extractor{
		confidence: config.FallbackConfidence,
		logger:     slog.Default().With("component", "fallback-extractor"),
	}, nil
}

// NewExtractor creates the heuristic extractor.
//
// Returns ai.Extractor interface to enforce abstraction.
func NewExtractor(config *ai.Config) (ai.Extractor, error) {
	return newExtractor(config)
}

// Extract scans the text with fixed patterns and assembles a payload in the
// same wire shape the provider produces.
func (e *Extractor) Extract(ctx context.Context, text string, opts ai.ExtractOptions) (*ai.RawExtraction, error) {
	opts.Normalize()

	lists := ai.WireEntityLists{
		Persons: []ai.WireEntity{},
		Works:   []ai.WireEntity{},
		Events:  []ai.WireEntity{},
	}
	relations := []ai.WireRelation{}

	seenPersons := map[string]bool{}
	seenWorks := map[string]bool{}
	seenEvents := map[string]bool{}

	addPerson := func(name string) {
		if name != "" && !seenPersons[name] {
			seenPersons[name] = true
			lists.Persons = append(lists.Persons, e.wireEntity(name, nil))
		}
	}
	addWork := func(name string) {
		if name != "" && !seenWorks[name] {
			seenWorks[name] = true
			lists.Works = append(lists.Works, e.wireEntity(name, nil))
		}
	}

	// Works from title marks.
	for _, m := range titleMarkPattern.FindAllStringSubmatch(text, -1) {
		title := m[1]
		if title == "" {
			title = m[2]
		}
		addWork(strings.TrimSpace(title))
	}

	// CJK subject + role verb; the relation target is the first marked title
	// appearing after the verb.
	for _, idx := range cjkSubjectVerb.FindAllStringSubmatchIndex(text, -1) {
		subject := text[idx[2]:idx[3]]
		verb := text[idx[4]:idx[5]]
		addPerson(subject)

		rest := text[idx[5]:]
		if tm := titleMarkPattern.FindStringSubmatch(rest); tm != nil {
			title := tm[1]
			if title == "" {
				title = tm[2]
			}
			title = strings.TrimSpace(title)
			addWork(title)
			relations = append(relations, e.wireRelation(subject, title, verb))
		}
	}

	// Latin names and verbs.
	for _, name := range latinName.FindAllString(text, -1) {
		addPerson(name)
	}
	if vi := latinVerb.FindStringSubmatchIndex(text); vi != nil && len(lists.Persons) > 0 && len(lists.Works) > 0 {
		relations = append(relations, e.wireRelation(
			lists.Persons[0].Name, lists.Works[0].Name, text[vi[2]:vi[3]]))
	}

	// Events from ceremony/festival hints.
	for _, m := range eventHint.FindAllStringSubmatch(text, -1) {
		name := m[1]
		if name == "" {
			name = m[2]
		}
		name = strings.TrimSpace(name)
		if name != "" && !seenEvents[name] {
			seenEvents[name] = true
			lists.Events = append(lists.Events, e.wireEntity(name, nil))
		}
	}

	payload, err := json.Marshal(ai.Payload{Entities: &lists, Relations: relations})
	if err != nil {
		return nil, err
	}

	e.logger.Debug("heuristic extraction",
		"persons", len(lists.Persons),
		"works", len(lists.Works),
		"events", len(lists.Events),
		"relations", len(relations))

	return &ai.RawExtraction{
		Payload:   string(payload),
		TrustTier: core.TrustTierFallback,
		Model:     "fallback",
	}, nil
}

func (e *Extractor) wireEntity(name string, attrs map[string]string) ai.WireEntity {
	confidence := e.confidence
	return ai.WireEntity{
		Name:       name,
		Confidence: &confidence,
		Attributes: attrs,
	}
}

func (e *Extractor) wireRelation(source, target, relType string) ai.WireRelation {
	confidence := e.confidence
	return ai.WireRelation{
		Source:     source,
		Target:     target,
		Type:       relType,
		Confidence: &confidence,
		SourceInfo: "heuristic",
	}
}
