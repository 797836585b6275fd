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


// Package search ranks an owner's documents against a free-text question.
//
// Three layers cooperate:
//   - LexicalIndex: BM25 term scoring over the corpus
//   - VectorScorer: optional embedding-similarity capability
//   - Ranker: weighted combination of both, 0.6 vector + 0.4 lexical
//
// When the hybrid rank produces nothing, SimpleMatch applies a
// token-overlap heuristic with a qualifying threshold as the last
// retrieval resort. All results are keyed by document index within the
// corpus, never by runtime identity.
package search
