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


package corpus

import (
	"fmt"
	"sort"

	"github.com/tessierlabs/dossier/core"
)

// Corpus is the ordered document sequence of a single owner together
// with the ingested source id ledger. Documents keep their insertion
// order; a document's position is the stable index all score maps key
// on.
//
// Corpus itself is not synchronized; the engine guards each owner's
// corpus with its own lock.
type Corpus struct {
	docs     []core.Document
	ingested map[int64]struct{}
}

// New creates an empty corpus.
func New() *Corpus {
	return &Corpus{
		ingested: make(map[int64]struct{}),
	}
}

// Add appends a document to the corpus.
// Returns ErrDuplicateSource when the source id is already in the
// ledger and ErrExcludedDocument for bootstrap sample content; in both
// cases the corpus is unchanged.
func (c *Corpus) Add(doc core.Document) error {
	if err := core.ValidateDocument(&doc); err != nil {
		return err
	}
	if IsExcludedDocument(&doc) {
		return fmt.Errorf("%w: %q", ErrExcludedDocument, doc.Title)
	}
	if _, ok := c.ingested[doc.SourceID]; ok {
		return fmt.Errorf("%w: %d", ErrDuplicateSource, doc.SourceID)
	}

	c.docs = append(c.docs, doc)
	c.ingested[doc.SourceID] = struct{}{}
	return nil
}

// markIngested records source ids in the ledger without adding
// documents. Used when restoring a snapshot whose ledger is wider than
// its document sequence.
func (c *Corpus) markIngested(ids ...int64) {
	for _, id := range ids {
		c.ingested[id] = struct{}{}
	}
}

// Len returns the number of documents in the corpus.
func (c *Corpus) Len() int {
	return len(c.docs)
}

// IngestedCount returns the size of the source id ledger.
func (c *Corpus) IngestedCount() int {
	return len(c.ingested)
}

// Contains reports whether a source id is in the ledger.
func (c *Corpus) Contains(sourceID int64) bool {
	_, ok := c.ingested[sourceID]
	return ok
}

// Documents returns the document sequence in insertion order.
// The returned slice is shared; callers must treat it as read-only.
func (c *Corpus) Documents() []core.Document {
	return c.docs
}

// Document returns the document at the given corpus index.
func (c *Corpus) Document(index int) *core.Document {
	if index < 0 || index >= len(c.docs) {
		return nil
	}
	return &c.docs[index]
}

// SourceIDs returns the ledger as a sorted slice.
func (c *Corpus) SourceIDs() []int64 {
	ids := make([]int64, 0, len(c.ingested))
	for id := range c.ingested {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Titles returns up to limit non-excluded document titles in insertion
// order. The exclusion check is repeated here defensively even though
// Add already refuses excluded documents.
func (c *Corpus) Titles(limit int) []string {
	if limit <= 0 {
		return nil
	}
	titles := make([]string, 0, min(limit, len(c.docs)))
	for i := range c.docs {
		if len(titles) >= limit {
			break
		}
		if IsExcludedDocument(&c.docs[i]) {
			continue
		}
		titles = append(titles, c.docs[i].Title)
	}
	return titles
}

// SetVectors assigns embedding vectors to documents by corpus index.
// The slice must be index-aligned with Documents().
func (c *Corpus) SetVectors(vectors [][]float32) error {
	if len(vectors) != len(c.docs) {
		return fmt.Errorf("vector count mismatch: %d vectors for %d documents", len(vectors), len(c.docs))
	}
	for i := range c.docs {
		c.docs[i].Vector = vectors[i]
	}
	return nil
}
