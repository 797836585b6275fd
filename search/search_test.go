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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tessierlabs/dossier/core"
)

func TestTokenize(t *testing.T) {
	t.Run("lowercases and splits on word boundaries", func(t *testing.T) {
		tokens := Tokenize("Où enregistrer LA résiliation?")
		assert.Equal(t, []string{"où", "enregistrer", "la", "résiliation"}, tokens)
	})

	t.Run("keeps accented letters inside tokens", func(t *testing.T) {
		tokens := Tokenize("procédure d'été")
		assert.Equal(t, []string{"procédure", "d", "été"}, tokens)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, Tokenize(""))
		assert.Empty(t, Tokenize("  ... !!"))
	})
}

func TestDistinctTokens(t *testing.T) {
	tokens := DistinctTokens("la procédure, la règle, la procédure")
	assert.Equal(t, []string{"la", "procédure", "règle"}, tokens)
}

func TestLexicalIndex(t *testing.T) {
	docs := []core.Document{
		{SourceID: 1, Title: "Procédure résiliation", Text: "Enregistrer la demande de résiliation dans le CRM sous 48h."},
		{SourceID: 2, Title: "Contrat assurance", Text: "Le contrat couvre les dégâts des eaux et le vol."},
		{SourceID: 3, Title: "Notes diverses", Text: "Réunion lundi à dix heures."},
	}
	idx := NewLexicalIndex(docs)

	t.Run("ranks the overlapping document highest", func(t *testing.T) {
		scores := idx.Score("où enregistrer la résiliation")
		require.Len(t, scores, 3)
		assert.Greater(t, scores[0], scores[1])
		assert.Greater(t, scores[0], scores[2])
	})

	t.Run("zero for documents with no term overlap", func(t *testing.T) {
		scores := idx.Score("xylophone quantique")
		for _, s := range scores {
			assert.Zero(t, s)
		}
	})

	t.Run("empty query scores all zero", func(t *testing.T) {
		scores := idx.Score("")
		for _, s := range scores {
			assert.Zero(t, s)
		}
	})

	t.Run("empty corpus", func(t *testing.T) {
		empty := NewLexicalIndex(nil)
		assert.Empty(t, empty.Score("résiliation"))
		assert.Equal(t, 0, empty.Len())
	})
}

// fixedScorer returns preset vector scores, or an error.
type fixedScorer struct {
	scores []float64
	err    error
}

func (f *fixedScorer) Similarity(_ context.Context, _ string, _ []core.Document) ([]float64, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.scores, nil
}

func TestRanker(t *testing.T) {
	docs := []core.Document{
		{SourceID: 1, Title: "Procédure résiliation", Text: "Enregistrer la demande de résiliation dans le CRM sous 48h."},
		{SourceID: 2, Title: "Contrat assurance", Text: "Le contrat couvre les dégâts des eaux."},
		{SourceID: 3, Title: "Notes diverses", Text: "Réunion lundi."},
	}
	idx := NewLexicalIndex(docs)

	t.Run("lexical only ranks overlap first", func(t *testing.T) {
		r, err := NewRanker()
		require.NoError(t, err)

		results := r.Rank(context.Background(), "où enregistrer la résiliation", idx, docs, 5)
		require.NotEmpty(t, results)
		assert.Equal(t, 0, results[0].Index)
	})

	t.Run("vector scores dominate", func(t *testing.T) {
		r, err := NewRanker(WithVectorScorer(&fixedScorer{scores: []float64{0, 0, 0.9}}))
		require.NoError(t, err)

		results := r.Rank(context.Background(), "contrat", idx, docs, 5)
		require.NotEmpty(t, results)
		// 0.6*0.9 beats 0.4*1.0 for the lexical winner.
		assert.Equal(t, 2, results[0].Index)
	})

	t.Run("failing vector scorer degrades to lexical", func(t *testing.T) {
		r, err := NewRanker(WithVectorScorer(&fixedScorer{err: errors.New("remote down")}))
		require.NoError(t, err)

		results := r.Rank(context.Background(), "résiliation", idx, docs, 5)
		require.NotEmpty(t, results)
		assert.Equal(t, 0, results[0].Index)
	})

	t.Run("all zero scores return empty", func(t *testing.T) {
		r, err := NewRanker()
		require.NoError(t, err)

		results := r.Rank(context.Background(), "xylophone quantique", idx, docs, 5)
		assert.Empty(t, results)
	})

	t.Run("ties keep ingestion order", func(t *testing.T) {
		r, err := NewRanker(WithVectorScorer(&fixedScorer{scores: []float64{0.5, 0.5, 0.5}}))
		require.NoError(t, err)

		// No lexical overlap, identical vector scores: pure tie.
		results := r.Rank(context.Background(), "xylophone", idx, docs, 5)
		require.Len(t, results, 3)
		assert.Equal(t, 0, results[0].Index)
		assert.Equal(t, 1, results[1].Index)
		assert.Equal(t, 2, results[2].Index)
	})

	t.Run("honors k", func(t *testing.T) {
		r, err := NewRanker()
		require.NoError(t, err)

		results := r.Rank(context.Background(), "la le de", idx, docs, 1)
		assert.LessOrEqual(t, len(results), 1)
	})

	t.Run("excluded documents never ranked", func(t *testing.T) {
		withExcluded := append([]core.Document{}, docs...)
		withExcluded = append(withExcluded, core.Document{
			SourceID: 9,
			Title:    "Procédures Internes",
			Text:     "résiliation résiliation résiliation",
		})
		exIdx := NewLexicalIndex(withExcluded)

		r, err := NewRanker()
		require.NoError(t, err)

		results := r.Rank(context.Background(), "résiliation", exIdx, withExcluded, 5)
		for _, res := range results {
			assert.NotEqual(t, 3, res.Index)
		}
	})
}

func TestSimpleMatch(t *testing.T) {
	docs := []core.Document{
		{SourceID: 1, Title: "Procédure résiliation", Text: "Enregistrer la demande dans le CRM sous 48h."},
		{SourceID: 2, Title: "Contrat assurance", Text: "Le contrat couvre les dégâts des eaux."},
	}

	t.Run("title match alone qualifies", func(t *testing.T) {
		results := SimpleMatch("où enregistrer la résiliation", docs, 5)
		require.NotEmpty(t, results)
		assert.Equal(t, 0, results[0].Index)
		// "résiliation" in the title alone is worth 20, above the gate.
		assert.GreaterOrEqual(t, results[0].Score, float64(qualifyThreshold))
	})

	t.Run("below threshold is dropped entirely", func(t *testing.T) {
		results := SimpleMatch("le", docs, 5)
		assert.Empty(t, results)
	})

	t.Run("no overlap yields nothing", func(t *testing.T) {
		results := SimpleMatch("xylophone quantique", docs, 5)
		assert.Empty(t, results)
	})

	t.Run("co-occurrence rewards multi-concept documents", func(t *testing.T) {
		target := []core.Document{
			{SourceID: 1, Title: "A", Text: "la procédure seule"},
			{SourceID: 2, Title: "B", Text: "la procédure et la résiliation ensemble"},
		}
		results := SimpleMatch("procédure résiliation", target, 5)
		require.NotEmpty(t, results)
		assert.Equal(t, 1, results[0].Index)
	})

	t.Run("excluded documents never match", func(t *testing.T) {
		withExcluded := append([]core.Document{}, docs...)
		withExcluded = append(withExcluded, core.Document{
			SourceID: 9,
			Title:    "Mes Notes Administratives",
			Text:     "résiliation procédure contrat assurance",
		})
		results := SimpleMatch("résiliation procédure", withExcluded, 5)
		for _, res := range results {
			assert.NotEqual(t, 2, res.Index)
		}
	})

	t.Run("empty question", func(t *testing.T) {
		assert.Empty(t, SimpleMatch("", docs, 5))
	})
}

func TestEmbeddingScorer(t *testing.T) {
	t.Run("requires embedder", func(t *testing.T) {
		_, err := NewEmbeddingScorer(nil)
		require.ErrorIs(t, err, ErrEmbedderRequired)
	})

	t.Run("documents without vectors score zero", func(t *testing.T) {
		scorer, err := NewEmbeddingScorer(stubEmbedder{vec: []float32{1, 0}})
		require.NoError(t, err)

		docs := []core.Document{
			{SourceID: 1, Vector: []float32{1, 0}},
			{SourceID: 2},
		}
		scores, err := scorer.Similarity(context.Background(), "q", docs)
		require.NoError(t, err)
		require.Len(t, scores, 2)
		assert.Equal(t, 1.0, scores[0]) // identical vector, distance 0
		assert.Zero(t, scores[1])
	})

	t.Run("closer vectors score higher", func(t *testing.T) {
		scorer, err := NewEmbeddingScorer(stubEmbedder{vec: []float32{1, 0}})
		require.NoError(t, err)

		docs := []core.Document{
			{SourceID: 1, Vector: []float32{0.9, 0}},
			{SourceID: 2, Vector: []float32{-1, 0}},
		}
		scores, err := scorer.Similarity(context.Background(), "q", docs)
		require.NoError(t, err)
		assert.Greater(t, scores[0], scores[1])
	})

	t.Run("embedder failure wraps ErrScorerUnavailable", func(t *testing.T) {
		scorer, err := NewEmbeddingScorer(stubEmbedder{err: errors.New("connection refused")})
		require.NoError(t, err)

		_, err = scorer.Similarity(context.Background(), "q", nil)
		require.ErrorIs(t, err, ErrScorerUnavailable)
	})
}

// stubEmbedder returns a fixed vector or error for every text.
type stubEmbedder struct {
	vec []float32
	err error
}

func (s stubEmbedder) EmbedText(_ context.Context, _ string) ([]float32, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.vec, nil
}

func (s stubEmbedder) EmbedTexts(_ context.Context, texts []string) ([][]float32, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := make([][]float32, len(texts))
	for i := range out {
		out[i] = s.vec
	}
	return out, nil
}
