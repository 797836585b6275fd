// Copyright 2026 Tessier Labs
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


package search

import (
	"context"
	"log/slog"
	"sort"

	"github.com/tessierlabs/dossier/core"
	"github.com/tessierlabs/dossier/corpus"
)

// Combined score weights. Vector similarity dominates when available;
// with no vector capability the lexical share carries the ranking alone.
const (
	vectorWeight  = 0.6
	lexicalWeight = 0.4
)

// Ranker merges lexical and vector scores into a single ranking. The
// vector scorer is an optional capability: a nil scorer or a failing
// call degrades the rank to lexical-only, never fails it.
type Ranker struct {
	vector VectorScorer
	logger *slog.Logger
}

// RankerOption configures a Ranker.
type RankerOption func(*Ranker) error

// WithVectorScorer attaches the optional vector scoring capability.
func WithVectorScorer(scorer VectorScorer) RankerOption {
	return func(r *Ranker) error {
		r.vector = scorer
		return nil
	}
}

// WithRankerLogger sets a custom logger.
// Default is slog.Default().
func WithRankerLogger(logger *slog.Logger) RankerOption {
	return func(r *Ranker) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// NewRanker creates a ranker.
func NewRanker(opts ...RankerOption) (*Ranker, error) {
	r := &Ranker{logger: slog.Default()}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Rank scores the documents against the question and returns the top k
// by combined score, keyed by document index. An empty result means no
// document scored above zero; the caller falls back to the simple
// matcher.
func (r *Ranker) Rank(ctx context.Context, question string, index *LexicalIndex, docs []core.Document, k int) []core.RankedResult {
	return r.RankWithMonitor(ctx, question, index, docs, k, nil)
}

// RankWithMonitor ranks with monitoring. The monitor receives callbacks
// at each stage of the scoring process.
func (r *Ranker) RankWithMonitor(ctx context.Context, question string, index *LexicalIndex, docs []core.Document, k int, monitor RankMonitor) []core.RankedResult {
	if monitor == nil {
		monitor = &noopMonitor{}
	}
	monitor.Start(question)

	if len(docs) == 0 || k <= 0 {
		monitor.Finish(nil)
		return nil
	}

	lexical := make([]float64, len(docs))
	if index != nil && index.Len() == len(docs) {
		lexical = index.Score(question)
	}
	monitor.AfterLexicalScores(lexical)

	// Normalize lexical scores to [0,1] by the maximum nonzero score.
	maxLexical := 0.0
	for _, s := range lexical {
		if s > maxLexical {
			maxLexical = s
		}
	}
	if maxLexical > 0 {
		for i := range lexical {
			lexical[i] /= maxLexical
		}
	}

	vector := make([]float64, len(docs))
	if r.vector != nil {
		scores, err := r.vector.Similarity(ctx, question, docs)
		if err != nil || len(scores) != len(docs) {
			r.logger.Warn("vector scorer unavailable for this call", "err", err)
			monitor.VectorUnavailable(err)
		} else {
			vector = scores
			monitor.AfterVectorScores(vector)
		}
	}

	results := make([]core.RankedResult, 0, len(docs))
	for i := range docs {
		if corpus.IsExcludedDocument(&docs[i]) {
			continue
		}
		combined := vectorWeight*vector[i] + lexicalWeight*lexical[i]
		if combined <= 0 {
			continue
		}
		results = append(results, core.RankedResult{Index: i, Score: combined})
	}

	// Stable sort: equal scores keep ingestion order.
	sort.SliceStable(results, func(a, b int) bool {
		return results[a].Score > results[b].Score
	})

	if len(results) > k {
		results = results[:k]
	}
	monitor.Finish(results)
	return results
}
