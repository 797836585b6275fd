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
	"sort"
	"strings"

	"github.com/tessierlabs/dossier/core"
	"github.com/tessierlabs/dossier/corpus"
)

// Simple matcher scoring constants. A document below the qualifying
// threshold is dropped entirely, not ranked low.
const (
	titleTokenPoints   = 20
	contentTokenPoints = 5
	distinctHitPoints  = 3
	pairPoints         = 15
	qualifyThreshold   = 10
)

// SimpleMatch is the token-overlap fallback used when hybrid ranking
// yields nothing. Title hits weigh heaviest, then content hits, with a
// co-occurrence bonus for documents touching several query concepts at
// once. Returns the top k qualifying documents keyed by index.
func SimpleMatch(question string, docs []core.Document, k int) []core.RankedResult {
	if k <= 0 {
		return nil
	}
	tokens := DistinctTokens(question)
	if len(tokens) == 0 {
		return nil
	}

	results := make([]core.RankedResult, 0, len(docs))
	for i := range docs {
		if corpus.IsExcludedDocument(&docs[i]) {
			continue
		}

		title := strings.ToLower(docs[i].Title)
		content := strings.ToLower(docs[i].Text)

		score := 0
		matched := make([]string, 0, len(tokens))
		for _, tok := range tokens {
			if len([]rune(tok)) > 2 && strings.Contains(title, tok) {
				score += titleTokenPoints
			}
			if strings.Contains(content, tok) {
				if len([]rune(tok)) > 3 {
					score += contentTokenPoints
				}
				score += distinctHitPoints
				matched = append(matched, tok)
			}
		}

		// Co-occurrence bonus: each pair of matched tokens long enough
		// to carry meaning.
		for a := 0; a < len(matched); a++ {
			if len([]rune(matched[a])) <= 2 {
				continue
			}
			for b := a + 1; b < len(matched); b++ {
				if len([]rune(matched[b])) > 2 {
					score += pairPoints
				}
			}
		}

		if score < qualifyThreshold {
			continue
		}
		results = append(results, core.RankedResult{Index: i, Score: float64(score)})
	}

	sort.SliceStable(results, func(a, b int) bool {
		return results[a].Score > results[b].Score
	})
	if len(results) > k {
		results = results[:k]
	}
	return results
}
