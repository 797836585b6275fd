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


package core

import "time"

// Owner identifies the tenant and user whose private document set is
// indexed. Every piece of data handled by the engine is partitioned by
// Owner; nothing is ever shared across owners.
type Owner struct {
	ClientID int64
	UserID   int64
}

// Document is one ingested unit of text belonging to a single owner.
type Document struct {
	SourceID         int64 // stable identifier from the record catalog, unique per owner
	Title            string
	Filename         string
	OriginalFilename string
	Tags             string // comma-delimited free text, optional
	Text             string

	// Vector is the embedding used for semantic scoring. It is populated
	// at rebuild time when an embedder is configured and is never
	// persisted; a restored corpus starts without vectors and degrades to
	// lexical scoring until the next rebuild.
	Vector []float32
}

// Snapshot is the durable state of one owner's corpus: the ordered
// document sequence, the ingested source id ledger and the save time.
type Snapshot struct {
	Owner             Owner
	Documents         []Document
	IngestedSourceIDs []int64
	SavedAt           time.Time
}

// RankedResult pairs a corpus position with a ranking score.
// Scores are always keyed by the document's index within its corpus,
// never by runtime identity. RankedResults are ephemeral.
type RankedResult struct {
	Index int
	Score float64
}

// QueryAnswer is the orchestrator's output for a single question.
type QueryAnswer struct {
	Question       string
	Answer         string
	Sources        []string // "Title (filename)" descriptions, best match first
	Suggestions    []string // available titles offered when nothing matched
	HasResults     bool
	Relevance      float64 // word-overlap relevance in [0,1]
	Quality        string  // coarse confidence tier derived from Relevance
	DocumentsCount int     // documents consulted for the answer
}

// RefreshResult reports the outcome of a corpus rebuild.
type RefreshResult struct {
	TotalFiles   int // catalog entries seen
	IndexedFiles int // distinct source ids ingested
	Documents    int // documents in the rebuilt corpus
}

// Status describes the readiness of one owner's index.
type Status struct {
	Ready        bool
	TotalFiles   int
	IndexedFiles int
	Titles       []string // non-excluded titles, capped
}
