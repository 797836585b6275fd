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
	"math"

	"github.com/tessierlabs/dossier/core"
)

// BM25 parameters, standard Okapi values.
const (
	bm25K1 = 1.2
	bm25B  = 0.75
)

// LexicalIndex is a term-frequency structure over one corpus snapshot,
// scoring documents with BM25. It is built once per corpus state and
// rebuilt whenever the corpus changes.
type LexicalIndex struct {
	termFreqs []map[string]int // per document
	docLens   []int
	docFreq   map[string]int // documents containing each term
	avgDocLen float64
}

// NewLexicalIndex tokenizes the documents (title and text together) and
// builds the frequency tables.
func NewLexicalIndex(docs []core.Document) *LexicalIndex {
	idx := &LexicalIndex{
		termFreqs: make([]map[string]int, len(docs)),
		docLens:   make([]int, len(docs)),
		docFreq:   make(map[string]int),
	}

	totalLen := 0
	for i, doc := range docs {
		tokens := Tokenize(doc.Title + " " + doc.Text)
		freqs := make(map[string]int, len(tokens))
		for _, tok := range tokens {
			freqs[tok]++
		}
		for term := range freqs {
			idx.docFreq[term]++
		}
		idx.termFreqs[i] = freqs
		idx.docLens[i] = len(tokens)
		totalLen += len(tokens)
	}

	if len(docs) > 0 {
		idx.avgDocLen = float64(totalLen) / float64(len(docs))
	}
	return idx
}

// Len returns the number of indexed documents.
func (idx *LexicalIndex) Len() int {
	return len(idx.termFreqs)
}

// Score computes one BM25 score per indexed document, in document
// order. Documents sharing no term with the query score exactly 0.
func (idx *LexicalIndex) Score(query string) []float64 {
	scores := make([]float64, len(idx.termFreqs))
	queryTerms := DistinctTokens(query)
	if len(queryTerms) == 0 || len(idx.termFreqs) == 0 {
		return scores
	}

	n := float64(len(idx.termFreqs))
	for _, term := range queryTerms {
		df := idx.docFreq[term]
		if df == 0 {
			continue
		}
		// Smoothed idf keeps scores positive for very common terms.
		idf := math.Log(1 + (n-float64(df)+0.5)/(float64(df)+0.5))

		for i, freqs := range idx.termFreqs {
			tf := float64(freqs[term])
			if tf == 0 {
				continue
			}
			norm := 1 - bm25B + bm25B*float64(idx.docLens[i])/idx.avgDocLen
			scores[i] += idf * (tf * (bm25K1 + 1)) / (tf + bm25K1*norm)
		}
	}
	return scores
}
