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
	"fmt"
	"math"

	"github.com/tessierlabs/dossier/ai"
	"github.com/tessierlabs/dossier/core"
)

// VectorScorer is an optional ranking capability. Implementations
// return one similarity value per document, in document order. The
// ranker treats a nil scorer and a failing call the same way: lexical
// scores carry the ranking alone.
type VectorScorer interface {
	Similarity(ctx context.Context, query string, docs []core.Document) ([]float64, error)
}

// EmbeddingScorer scores documents by embedding-space proximity. The
// query is embedded per call; document vectors must already be present
// on the documents. Documents without a vector score 0.
type EmbeddingScorer struct {
	embedder ai.Embedder
}

var _ VectorScorer = (*EmbeddingScorer)(nil)

// NewEmbeddingScorer creates a scorer backed by the given embedder.
func NewEmbeddingScorer(embedder ai.Embedder) (*EmbeddingScorer, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	return &EmbeddingScorer{embedder: embedder}, nil
}

// Similarity implements VectorScorer. Similarity is 1 / (1 + d) where
// d is the euclidean distance between the query vector and the
// document vector.
func (s *EmbeddingScorer) Similarity(ctx context.Context, query string, docs []core.Document) ([]float64, error) {
	queryVec, err := s.embedder.EmbedText(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScorerUnavailable, err)
	}

	scores := make([]float64, len(docs))
	for i, doc := range docs {
		if len(doc.Vector) == 0 || len(doc.Vector) != len(queryVec) {
			continue
		}
		scores[i] = 1 / (1 + euclideanDistance(queryVec, doc.Vector))
	}
	return scores, nil
}

func euclideanDistance(a, b []float32) float64 {
	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return math.Sqrt(sum)
}
