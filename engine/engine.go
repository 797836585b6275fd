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


package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/tessierlabs/dossier/ai"
	"github.com/tessierlabs/dossier/answer"
	"github.com/tessierlabs/dossier/core"
	"github.com/tessierlabs/dossier/corpus"
	"github.com/tessierlabs/dossier/search"
)

// Owner-facing canned responses, kept in the language of the documents
// they describe.
const (
	msgNoDocuments = "❌ Vous n'avez pas encore de documents personnels."
	msgNotIndexed  = "⏳ Vos documents ne sont pas encore indexés. Actualisez votre espace documentaire."
	msgNoMatch     = "❌ Aucune information trouvée dans vos documents."
	msgNoAnswer    = "❌ Aucune réponse n'a pu être extraite de vos documents."
)

const (
	topK            = 3
	maxStatusTitles = 15
	maxSuggestions  = 3
	embedBatchSize  = 16
)

// ownerState is one owner's live retrieval state. Refresh holds the
// write lock for its full duration so queries never observe a
// partially rebuilt corpus; concurrent queries share the read lock.
type ownerState struct {
	mu          sync.RWMutex
	corpus      *corpus.Corpus
	index       *search.LexicalIndex
	totalFiles  int
	initialized bool
}

// Engine composes the corpus store, the ranking layers and the answer
// extractor into the owner-facing query, refresh and status operations.
type Engine struct {
	store    *corpus.Store
	ranker   *search.Ranker
	embedder ai.Embedder
	logger   *slog.Logger

	maxRetries     int
	retryBaseDelay time.Duration

	mu     sync.Mutex
	owners map[core.Owner]*ownerState
}

// Option configures an Engine.
type Option func(*Engine) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// WithEmbedder enables the vector scoring capability. Documents are
// embedded at rebuild time and the ranker gains an embedding scorer.
// Without it the engine runs lexical-only.
func WithEmbedder(embedder ai.Embedder) Option {
	return func(e *Engine) error {
		e.embedder = embedder
		return nil
	}
}

// WithRetryPolicy tunes the retry behavior of embedding calls.
// Defaults are 3 attempts with a 500ms base delay.
func WithRetryPolicy(maxAttempts int, baseDelay time.Duration) Option {
	return func(e *Engine) error {
		if maxAttempts <= 0 {
			return ErrInvalidMaxAttempts
		}
		e.maxRetries = maxAttempts
		e.retryBaseDelay = baseDelay
		return nil
	}
}

// New creates an engine over the given corpus store.
func New(store *corpus.Store, opts ...Option) (*Engine, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}

	e := &Engine{
		store:          store,
		logger:         slog.Default(),
		maxRetries:     3,
		retryBaseDelay: 500 * time.Millisecond,
		owners:         make(map[core.Owner]*ownerState),
	}

	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}

	rankerOpts := []search.RankerOption{search.WithRankerLogger(e.logger)}
	if e.embedder != nil {
		scorer, err := search.NewEmbeddingScorer(e.embedder)
		if err != nil {
			return nil, err
		}
		rankerOpts = append(rankerOpts, search.WithVectorScorer(scorer))
	}
	ranker, err := search.NewRanker(rankerOpts...)
	if err != nil {
		return nil, err
	}
	e.ranker = ranker

	return e, nil
}

func (e *Engine) ownerState(owner core.Owner) *ownerState {
	e.mu.Lock()
	defer e.mu.Unlock()

	st, ok := e.owners[owner]
	if !ok {
		st = &ownerState{}
		e.owners[owner] = st
	}
	return st
}

// ensureInitialized builds the owner's state on first use. A non-empty
// catalog always wins over the persisted snapshot; the snapshot is
// consulted only when the catalog has nothing to rebuild from.
func (e *Engine) ensureInitialized(ctx context.Context, st *ownerState, owner core.Owner) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	if st.initialized {
		return nil
	}

	c, total, err := e.store.Rebuild(ctx, owner)
	if err != nil {
		return err
	}
	if total == 0 && c.Len() == 0 {
		c = e.store.Restore(ctx, owner)
	} else {
		e.embedCorpus(ctx, owner, c)
	}

	st.corpus = c
	st.index = search.NewLexicalIndex(c.Documents())
	st.totalFiles = total
	st.initialized = true
	return nil
}

// embedCorpus computes document vectors in batches with retry. Failure
// leaves the corpus without vectors: ranking degrades to lexical, the
// operation itself never fails.
func (e *Engine) embedCorpus(ctx context.Context, owner core.Owner, c *corpus.Corpus) {
	if e.embedder == nil || c.Len() == 0 {
		return
	}

	docs := c.Documents()
	vectors := make([][]float32, 0, len(docs))
	for start := 0; start < len(docs); start += embedBatchSize {
		end := start + embedBatchSize
		if end > len(docs) {
			end = len(docs)
		}
		texts := make([]string, 0, end-start)
		for _, doc := range docs[start:end] {
			texts = append(texts, doc.Title+"\n"+doc.Text)
		}

		var batch [][]float32
		err := RetryWithBackoff(ctx, e.logger, func() error {
			var embedErr error
			batch, embedErr = e.embedder.EmbedTexts(ctx, texts)
			return embedErr
		}, e.maxRetries, e.retryBaseDelay)
		if err != nil {
			e.logger.Warn("embedding unavailable, ranking degrades to lexical",
				"user", owner.UserID, "err", err)
			return
		}
		vectors = append(vectors, batch...)
	}

	if err := c.SetVectors(vectors); err != nil {
		e.logger.Warn("discarding mismatched embedding batch", "user", owner.UserID, "err", err)
	}
}

// Query answers a free-text question from the owner's documents.
func (e *Engine) Query(ctx context.Context, owner core.Owner, question string) (*core.QueryAnswer, error) {
	if err := core.ValidateOwner(owner); err != nil {
		return nil, err
	}

	st := e.ownerState(owner)
	if err := e.ensureInitialized(ctx, st, owner); err != nil {
		return nil, err
	}

	st.mu.RLock()
	defer st.mu.RUnlock()

	result := &core.QueryAnswer{Question: question, Quality: "low"}

	if st.corpus.Len() == 0 {
		result.Answer = msgNoDocuments
		return result, nil
	}
	if st.index == nil || st.index.Len() == 0 {
		result.Answer = msgNotIndexed
		return result, nil
	}

	docs := st.corpus.Documents()
	ranked := e.ranker.Rank(ctx, question, st.index, docs, topK)
	if len(ranked) == 0 {
		ranked = search.SimpleMatch(question, docs, topK)
	}
	if len(ranked) == 0 {
		result.Answer = msgNoMatch
		result.Suggestions = st.corpus.Titles(maxSuggestions)
		return result, nil
	}

	matched := make([]core.Document, 0, len(ranked))
	for _, r := range ranked {
		matched = append(matched, docs[r.Index])
	}

	text, ok := answer.Extract(question, matched)
	if !ok {
		result.Answer = msgNoAnswer
		result.Suggestions = st.corpus.Titles(maxSuggestions)
		return result, nil
	}

	result.Answer = text
	result.HasResults = true
	result.Sources = describeSources(matched)
	result.Relevance = relevance(question, text)
	result.Quality = qualityTier(result.Relevance)
	result.DocumentsCount = len(matched)
	return result, nil
}

// Refresh rebuilds the owner's corpus from the catalog and persists
// the result. Persistence failures are returned: silently losing an
// index update would leave the snapshot serving stale content.
func (e *Engine) Refresh(ctx context.Context, owner core.Owner) (*core.RefreshResult, error) {
	if err := core.ValidateOwner(owner); err != nil {
		return nil, err
	}

	st := e.ownerState(owner)
	st.mu.Lock()
	defer st.mu.Unlock()

	c, total, err := e.store.Rebuild(ctx, owner)
	if err != nil {
		return nil, err
	}
	e.embedCorpus(ctx, owner, c)

	if err := e.store.Persist(ctx, owner, c); err != nil {
		return nil, fmt.Errorf("persisting rebuilt corpus: %w", err)
	}

	st.corpus = c
	st.index = search.NewLexicalIndex(c.Documents())
	st.totalFiles = total
	st.initialized = true

	return &core.RefreshResult{
		TotalFiles:   total,
		IndexedFiles: c.IngestedCount(),
		Documents:    c.Len(),
	}, nil
}

// Status reports the owner's corpus readiness and a capped title list.
func (e *Engine) Status(ctx context.Context, owner core.Owner) (*core.Status, error) {
	if err := core.ValidateOwner(owner); err != nil {
		return nil, err
	}

	st := e.ownerState(owner)
	if err := e.ensureInitialized(ctx, st, owner); err != nil {
		return nil, err
	}

	st.mu.RLock()
	defer st.mu.RUnlock()

	return &core.Status{
		Ready:        st.corpus.Len() > 0,
		TotalFiles:   st.totalFiles,
		IndexedFiles: st.corpus.IngestedCount(),
		Titles:       st.corpus.Titles(maxStatusTitles),
	}, nil
}

func describeSources(docs []core.Document) []string {
	sources := make([]string, 0, len(docs))
	for _, doc := range docs {
		if doc.Filename != "" {
			sources = append(sources, fmt.Sprintf("%s (%s)", doc.Title, doc.Filename))
		} else {
			sources = append(sources, doc.Title)
		}
	}
	return sources
}

// relevance is the share of distinct question words present in the
// answer, clamped to [0,1].
func relevance(question, answerText string) float64 {
	questionWords := search.TokenSet(question)
	if len(questionWords) == 0 {
		return 0
	}
	answerWords := search.TokenSet(answerText)

	shared := 0
	for word := range questionWords {
		if _, ok := answerWords[word]; ok {
			shared++
		}
	}
	r := float64(shared) / float64(len(questionWords))
	if r > 1 {
		r = 1
	}
	return r
}

func qualityTier(relevance float64) string {
	switch {
	case relevance >= 0.7:
		return "excellent"
	case relevance >= 0.5:
		return "good"
	case relevance >= 0.3:
		return "medium"
	default:
		return "low"
	}
}
